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

type CertificateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CertificateMapper
}

func NewCertificateRepository(db *gorm.DB) contract.CertificateRepository {
	return &CertificateRepositoryImpl{
		db:     db,
		mapper: mapper.NewCertificateMapper(),
	}
}

func (r *CertificateRepositoryImpl) Create(ctx context.Context, req *entity.CertificateRequest) error {
	m := r.mapper.ToModel(req)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*req = *r.mapper.ToEntity(m)
	return nil
}

func (r *CertificateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CertificateRequest, error) {
	var m model.CertificateRequest
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CertificateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CertificateRequest, error) {
	var rows []*model.CertificateRequest
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *CertificateRepositoryImpl) Decide(ctx context.Context, id uuid.UUID, next workflow.State, remark string) (bool, error) {
	return guardedUpdate(ctx, r.db, &model.CertificateRequest{}, id,
		map[string]interface{}{
			"status":         string(workflow.StatusPending),
			"payment_status": string(workflow.PaymentNotRequired),
		},
		map[string]interface{}{
			"status":         string(next.Status),
			"payment_status": string(next.PaymentStatus),
			"remark":         remark,
		},
	)
}

func (r *CertificateRepositoryImpl) MarkPaid(ctx context.Context, id uuid.UUID, paymentId string, paidAt time.Time) (bool, error) {
	return guardedUpdate(ctx, r.db, &model.CertificateRequest{}, id,
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

func (r *CertificateRepositoryImpl) SetDeliverable(ctx context.Context, id uuid.UUID, path string, deliveredAt time.Time) (bool, error) {
	return guardedUpdate(ctx, r.db, &model.CertificateRequest{}, id,
		map[string]interface{}{
			"status":         string(workflow.StatusApproved),
			"payment_status": string(workflow.PaymentPaid),
		},
		map[string]interface{}{
			"certificate_pdf": path,
			"delivered_at":    deliveredAt,
		},
	)
}
