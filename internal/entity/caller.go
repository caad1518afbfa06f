package entity

import "github.com/google/uuid"

// Caller is the authenticated account behind a request, resolved from the users table.
type Caller struct {
	UserId     uuid.UUID
	Email      string
	Role       UserRole
	IsVerified bool
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == UserRoleAdmin
}
