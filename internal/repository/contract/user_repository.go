package contract

import (
	"context"
	"time"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	Update(ctx context.Context, user *entity.User) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// OTP and credential state
	SetVerifyOtp(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error
	MarkAccountVerified(ctx context.Context, id uuid.UUID) error
	SetResetOtp(ctx context.Context, id uuid.UUID, otp string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error
}
