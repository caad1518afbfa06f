package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Email             string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash      string    `gorm:"type:varchar(255);not null"`
	Address           string    `gorm:"type:text;not null;default:''"`
	Role              string    `gorm:"type:varchar(20);not null;default:'user'"`
	IsAccountVerified bool      `gorm:"not null;default:false"`
	VerifyOtp         string    `gorm:"type:varchar(6);not null;default:''"`
	VerifyOtpExpireAt *time.Time
	ResetOtp          string `gorm:"type:varchar(6);not null;default:''"`
	ResetOtpExpireAt  *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
