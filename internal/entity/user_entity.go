package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	Id                uuid.UUID
	Name              string
	Email             string
	PasswordHash      string
	Address           string
	Role              UserRole
	IsAccountVerified bool
	VerifyOtp         string
	VerifyOtpExpireAt *time.Time
	ResetOtp          string
	ResetOtpExpireAt  *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Requester is the owner summary attached to admin listings and notification emails.
type Requester struct {
	Id    uuid.UUID
	Name  string
	Email string
}
