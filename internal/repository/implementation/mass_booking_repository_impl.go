package implementation

import (
	"context"
	"errors"
	"time"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/mapper"
	"parish-portal-be/internal/model"
	"parish-portal-be/internal/repository/contract"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/pkg/workflow"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MassBookingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MassBookingMapper
}

func NewMassBookingRepository(db *gorm.DB) contract.MassBookingRepository {
	return &MassBookingRepositoryImpl{
		db:     db,
		mapper: mapper.NewMassBookingMapper(),
	}
}

func (r *MassBookingRepositoryImpl) Create(ctx context.Context, booking *entity.MassBooking) error {
	m := r.mapper.ToModel(booking)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*booking = *r.mapper.ToEntity(m)
	return nil
}

func (r *MassBookingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MassBooking, error) {
	var m model.MassBooking
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *MassBookingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MassBooking, error) {
	var rows []*model.MassBooking
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *MassBookingRepositoryImpl) Decide(ctx context.Context, id uuid.UUID, next workflow.State, remark string) (bool, error) {
	return guardedUpdate(ctx, r.db, &model.MassBooking{}, id,
		map[string]interface{}{
			"status":         string(workflow.StatusPending),
			"payment_status": string(workflow.PaymentNotRequired),
		},
		map[string]interface{}{
			"status":         string(next.Status),
			"payment_status": string(next.PaymentStatus),
			"admin_remark":   remark,
		},
	)
}

func (r *MassBookingRepositoryImpl) MarkPaid(ctx context.Context, id uuid.UUID, paymentId string, paidAt time.Time) (bool, error) {
	return guardedUpdate(ctx, r.db, &model.MassBooking{}, id,
		map[string]interface{}{
			"status":         string(workflow.StatusApproved),
			"payment_status": string(workflow.PaymentPending),
		},
		map[string]interface{}{
			"payment_status": string(workflow.PaymentPaid),
			"payment_id":     paymentId,
			"paid_at":        paidAt,
		},
	)
}
