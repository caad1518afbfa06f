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

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AnnouncementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.AnnouncementMapper
}

func NewAnnouncementRepository(db *gorm.DB) contract.AnnouncementRepository {
	return &AnnouncementRepositoryImpl{
		db:     db,
		mapper: mapper.NewAnnouncementMapper(),
	}
}

func (r *AnnouncementRepositoryImpl) Create(ctx context.Context, a *entity.Announcement) error {
	m := r.mapper.ToModel(a)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*a = *r.mapper.ToEntity(m)
	return nil
}

func (r *AnnouncementRepositoryImpl) Update(ctx context.Context, a *entity.Announcement) error {
	m := r.mapper.ToModel(a)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*a = *r.mapper.ToEntity(m)
	return nil
}

func (r *AnnouncementRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Announcement{}).Error
}

func (r *AnnouncementRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Announcement, error) {
	var m model.Announcement
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *AnnouncementRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Announcement, error) {
	var rows []*model.Announcement
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}

func (r *AnnouncementRepositoryImpl) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&model.Announcement{})
	return result.RowsAffected, result.Error
}

type CalendarEventRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CalendarEventMapper
}

func NewCalendarEventRepository(db *gorm.DB) contract.CalendarEventRepository {
	return &CalendarEventRepositoryImpl{
		db:     db,
		mapper: mapper.NewCalendarEventMapper(),
	}
}

func (r *CalendarEventRepositoryImpl) Create(ctx context.Context, e *entity.CalendarEvent) error {
	m := r.mapper.ToModel(e)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*e = *r.mapper.ToEntity(m)
	return nil
}

func (r *CalendarEventRepositoryImpl) Update(ctx context.Context, e *entity.CalendarEvent) error {
	m := r.mapper.ToModel(e)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*e = *r.mapper.ToEntity(m)
	return nil
}

func (r *CalendarEventRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.CalendarEvent{}).Error
}

func (r *CalendarEventRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CalendarEvent, error) {
	var m model.CalendarEvent
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *CalendarEventRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CalendarEvent, error) {
	var rows []*model.CalendarEvent
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(rows), nil
}
