package implementation

import (
	"context"
	"errors"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/mapper"
	"parish-portal-be/internal/model"
	"parish-portal-be/internal/repository/contract"
	"parish-portal-be/internal/repository/specification"

	"gorm.io/gorm"
)

type PaymentIntentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentIntentMapper
}

func NewPaymentIntentRepository(db *gorm.DB) contract.PaymentIntentRepository {
	return &PaymentIntentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentIntentMapper(),
	}
}

func (r *PaymentIntentRepositoryImpl) Create(ctx context.Context, intent *entity.PaymentIntent) error {
	m := r.mapper.ToModel(intent)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*intent = *r.mapper.ToEntity(m)
	return nil
}

func (r *PaymentIntentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.PaymentIntent, error) {
	var m model.PaymentIntent
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PaymentIntentRepositoryImpl) UpdateStatus(ctx context.Context, id string, status entity.PaymentIntentStatus) error {
	return r.db.WithContext(ctx).Model(&model.PaymentIntent{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}
