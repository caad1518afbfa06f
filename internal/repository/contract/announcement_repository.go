package contract

import (
	"context"
	"time"

	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/repository/specification"

	"github.com/google/uuid"
)

type AnnouncementRepository interface {
	Create(ctx context.Context, a *entity.Announcement) error
	Update(ctx context.Context, a *entity.Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Announcement, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Announcement, error)
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type CalendarEventRepository interface {
	Create(ctx context.Context, e *entity.CalendarEvent) error
	Update(ctx context.Context, e *entity.CalendarEvent) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CalendarEvent, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CalendarEvent, error)
}
