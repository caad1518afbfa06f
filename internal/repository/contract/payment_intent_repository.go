package contract

import (
	"context"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/repository/specification"
)

type PaymentIntentRepository interface {
	Create(ctx context.Context, intent *entity.PaymentIntent) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentIntent, error)
	UpdateStatus(ctx context.Context, id string, status entity.PaymentIntentStatus) error
}
