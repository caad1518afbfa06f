package service

import (
	"context"
	"strings"
	"time"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/repository/memory"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const calendarListKey = "calendar-events"

type ICalendarEventService interface {
	List(ctx context.Context) ([]*dto.CalendarEventRecord, error)
	Create(ctx context.Context, caller *entity.Caller, req *dto.CalendarEventRequest) (*dto.CalendarEventRecord, error)
	Update(ctx context.Context, id string, req *dto.CalendarEventRequest) (*dto.CalendarEventRecord, error)
	Delete(ctx context.Context, id string) error
}

type calendarEventService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ListingCache
	log        logger.ILogger
}

func NewCalendarEventService(uowFactory unitofwork.RepositoryFactory, cache *memory.ListingCache, log logger.ILogger) ICalendarEventService {
	return &calendarEventService{
		uowFactory: uowFactory,
		cache:      cache,
		log:        log,
	}
}

func toCalendarEventRecord(e *entity.CalendarEvent) *dto.CalendarEventRecord {
	return &dto.CalendarEventRecord{
		Id:          e.Id.String(),
		Title:       e.Title,
		Date:        e.Start,
		Start:       e.Start,
		End:         e.End,
		Description: e.Description,
		Type:        string(e.Type),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// eventFields resolves the two accepted request shapes: start wins over
// date, and flat description/type win over extendedProps.
func eventFields(req *dto.CalendarEventRequest) (start, description string, kind entity.CalendarEventType, err error) {
	start = strings.TrimSpace(req.Start)
	if start == "" {
		start = strings.TrimSpace(req.Date)
	}

	description = req.Description
	raw := strings.TrimSpace(req.Type)
	if req.ExtendedProps != nil {
		if description == "" {
			description = req.ExtendedProps.Description
		}
		if raw == "" {
			raw = strings.TrimSpace(req.ExtendedProps.Type)
		}
	}

	kind = entity.CalendarEventEvent
	if raw != "" {
		kind = entity.CalendarEventType(raw)
	}
	switch kind {
	case entity.CalendarEventFeast, entity.CalendarEventMass, entity.CalendarEventSpecial, entity.CalendarEventEvent:
	default:
		return "", "", "", apperror.Validation("Invalid event type")
	}
	return start, strings.TrimSpace(description), kind, nil
}

func (s *calendarEventService) List(ctx context.Context) ([]*dto.CalendarEventRecord, error) {
	if cached, ok := s.cache.Get(calendarListKey); ok {
		return cached.([]*dto.CalendarEventRecord), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.CalendarEventRepository().FindAll(ctx, specification.OrderBy{Field: "start"})
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CalendarEventRecord, 0, len(rows))
	for _, e := range rows {
		res = append(res, toCalendarEventRecord(e))
	}
	s.cache.Set(calendarListKey, res)
	return res, nil
}

func (s *calendarEventService) Create(ctx context.Context, caller *entity.Caller, req *dto.CalendarEventRequest) (*dto.CalendarEventRecord, error) {
	title := strings.TrimSpace(req.Title)
	start, description, kind, err := eventFields(req)
	if err != nil {
		return nil, err
	}
	if title == "" || start == "" {
		return nil, apperror.Validation("Title and date/start are required")
	}

	end := strings.TrimSpace(req.End)
	if end == "" {
		end = start
	}
	createdBy := "admin"
	if caller != nil && caller.Email != "" {
		createdBy = caller.Email
	}

	now := time.Now()
	e := &entity.CalendarEvent{
		Id:          uuid.New(),
		Title:       title,
		Start:       start,
		End:         end,
		Description: description,
		Type:        kind,
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CalendarEventRepository().Create(ctx, e); err != nil {
		return nil, err
	}
	s.cache.Invalidate()

	s.log.Info("CALENDAR", "Event created", map[string]interface{}{
		"id":        e.Id.String(),
		"createdBy": createdBy,
	})
	return toCalendarEventRecord(e), nil
}

func (s *calendarEventService) find(ctx context.Context, uow unitofwork.UnitOfWork, raw string) (*entity.CalendarEvent, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, apperror.NotFound("Event not found")
	}
	e, err := uow.CalendarEventRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, apperror.NotFound("Event not found")
	}
	return e, nil
}

// Update keeps the stored end unless a new one is sent. Description and type
// are always rewritten from the request, falling back to empty and "event".
func (s *calendarEventService) Update(ctx context.Context, id string, req *dto.CalendarEventRequest) (*dto.CalendarEventRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	e, err := s.find(ctx, uow, id)
	if err != nil {
		return nil, err
	}

	start, description, kind, err := eventFields(req)
	if err != nil {
		return nil, err
	}
	if title := strings.TrimSpace(req.Title); title != "" {
		e.Title = title
	}
	if start != "" {
		e.Start = start
	}
	if end := strings.TrimSpace(req.End); end != "" {
		e.End = end
	}
	e.Description = description
	e.Type = kind
	e.UpdatedAt = time.Now()

	if err := uow.CalendarEventRepository().Update(ctx, e); err != nil {
		return nil, err
	}
	s.cache.Invalidate()
	return toCalendarEventRecord(e), nil
}

func (s *calendarEventService) Delete(ctx context.Context, id string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	e, err := s.find(ctx, uow, id)
	if err != nil {
		return err
	}
	if err := uow.CalendarEventRepository().Delete(ctx, e.Id); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}
