package contract

import (
	"context"
	"time"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/pkg/workflow"

	"github.com/google/uuid"
)

// Guarded writes report applied=false when the row was no longer in the
// expected state; callers translate that into a conflict.
type CertificateRepository interface {
	Create(ctx context.Context, req *entity.CertificateRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CertificateRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CertificateRequest, error)

	Decide(ctx context.Context, id uuid.UUID, next workflow.State, remark string) (applied bool, err error)
	MarkPaid(ctx context.Context, id uuid.UUID, paymentId string, paidAt time.Time) (applied bool, err error)
	SetDeliverable(ctx context.Context, id uuid.UUID, path string, deliveredAt time.Time) (applied bool, err error)
}

type MassBookingRepository interface {
	Create(ctx context.Context, booking *entity.MassBooking) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MassBooking, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MassBooking, error)

	Decide(ctx context.Context, id uuid.UUID, next workflow.State, remark string) (applied bool, err error)
	MarkPaid(ctx context.Context, id uuid.UUID, paymentId string, paidAt time.Time) (applied bool, err error)
}
