package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/repository/memory"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const (
	announcementListKey = "announcements"
	maxTitleLength      = 200
	maxSummaryLength    = 1000
)

type IAnnouncementService interface {
	List(ctx context.Context) ([]*dto.AnnouncementResponse, error)
	Get(ctx context.Context, id string) (*dto.AnnouncementResponse, error)
	Create(ctx context.Context, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error)
	Update(ctx context.Context, id string, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error)
	Delete(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int64, error)
	RunJanitor(ctx context.Context, every time.Duration)
}

type announcementService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ListingCache
	log        logger.ILogger
	now        func() time.Time
}

func NewAnnouncementService(uowFactory unitofwork.RepositoryFactory, cache *memory.ListingCache, log logger.ILogger) IAnnouncementService {
	return &announcementService{
		uowFactory: uowFactory,
		cache:      cache,
		log:        log,
		now:        time.Now,
	}
}

func toAnnouncementResponse(a *entity.Announcement) *dto.AnnouncementResponse {
	return &dto.AnnouncementResponse{
		Id:        a.Id.String(),
		Title:     a.Title,
		Summary:   a.Summary,
		Date:      a.Date,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (s *announcementService) visibleSince() specification.CreatedAfter {
	return specification.CreatedAfter{Since: s.now().Add(-entity.AnnouncementTTL)}
}

func (s *announcementService) List(ctx context.Context) ([]*dto.AnnouncementResponse, error) {
	if cached, ok := s.cache.Get(announcementListKey); ok {
		return cached.([]*dto.AnnouncementResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.AnnouncementRepository().FindAll(ctx, s.visibleSince(), specification.NewestFirst())
	if err != nil {
		return nil, err
	}

	res := make([]*dto.AnnouncementResponse, 0, len(rows))
	for _, a := range rows {
		res = append(res, toAnnouncementResponse(a))
	}
	s.cache.Set(announcementListKey, res)
	return res, nil
}

func (s *announcementService) find(ctx context.Context, uow unitofwork.UnitOfWork, raw string) (*entity.Announcement, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperror.NotFound("Announcement not found")
	}
	a, err := uow.AnnouncementRepository().FindOne(ctx, specification.ByID{ID: id}, s.visibleSince())
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperror.NotFound("Announcement not found")
	}
	return a, nil
}

func (s *announcementService) Get(ctx context.Context, id string) (*dto.AnnouncementResponse, error) {
	a, err := s.find(ctx, s.uowFactory.NewUnitOfWork(ctx), id)
	if err != nil {
		return nil, err
	}
	return toAnnouncementResponse(a), nil
}

func checkAnnouncementText(title string, summary string) error {
	if utf8.RuneCountInString(title) > maxTitleLength {
		return apperror.Validation("Title cannot exceed 200 characters")
	}
	if utf8.RuneCountInString(summary) > maxSummaryLength {
		return apperror.Validation("Summary cannot exceed 1000 characters")
	}
	return nil
}

func (s *announcementService) Create(ctx context.Context, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error) {
	var title, summary string
	if req.Title != nil {
		title = strings.TrimSpace(*req.Title)
	}
	if req.Summary != nil {
		summary = strings.TrimSpace(*req.Summary)
	}
	if title == "" {
		return nil, apperror.Validation("Title is required")
	}
	if err := checkAnnouncementText(title, summary); err != nil {
		return nil, err
	}

	now := s.now()
	date := now
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		parsed, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		date = *parsed
	}

	a := &entity.Announcement{
		Id:        uuid.New(),
		Title:     title,
		Summary:   summary,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.AnnouncementRepository().Create(ctx, a); err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	s.log.Info("ANNOUNCEMENT", "Announcement created", map[string]interface{}{"id": a.Id.String()})
	return toAnnouncementResponse(a), nil
}

func (s *announcementService) Update(ctx context.Context, id string, req *dto.AnnouncementRequest) (*dto.AnnouncementResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	a, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Validation("Title cannot be empty")
		}
		a.Title = title
	}
	if req.Summary != nil {
		a.Summary = strings.TrimSpace(*req.Summary)
	}
	if err := checkAnnouncementText(a.Title, a.Summary); err != nil {
		return nil, err
	}
	if req.Date != nil && strings.TrimSpace(*req.Date) != "" {
		parsed, err := dto.ParseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		a.Date = *parsed
	}
	a.UpdatedAt = s.now()

	if err := uow.AnnouncementRepository().Update(ctx, a); err != nil {
		return nil, err
	}
	s.cache.Invalidate()
	return toAnnouncementResponse(a), nil
}

func (s *announcementService) Delete(ctx context.Context, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	a, err := s.find(ctx, uow, id)
	if err != nil {
		return err
	}
	if err := uow.AnnouncementRepository().Delete(ctx, a.Id); err != nil {
		return err
	}
	s.cache.Invalidate()

	s.log.Info("ANNOUNCEMENT", "Announcement deleted", map[string]interface{}{"id": a.Id.String()})
	return nil
}

// PurgeExpired removes announcements that have dropped out of the listing.
func (s *announcementService) PurgeExpired(ctx context.Context) (int64, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	n, err := uow.AnnouncementRepository().DeleteCreatedBefore(ctx, s.now().Add(-entity.AnnouncementTTL))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.cache.Invalidate()
	}
	return n, nil
}

// RunJanitor blocks until ctx is done.
func (s *announcementService) RunJanitor(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				s.log.Error("ANNOUNCEMENT", "Purge failed", map[string]interface{}{"error": err.Error()})
				continue
			}
			if n > 0 {
				s.log.Info("ANNOUNCEMENT", "Purged expired announcements", map[string]interface{}{"count": n})
			}
		}
	}
}
