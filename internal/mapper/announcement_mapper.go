package mapper

import (
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/model"
)

type AnnouncementMapper struct{}

func NewAnnouncementMapper() *AnnouncementMapper {
	return &AnnouncementMapper{}
}

func (m *AnnouncementMapper) ToEntity(a *model.Announcement) *entity.Announcement {
	if a == nil {
		return nil
	}
	return &entity.Announcement{
		Id:        a.Id,
		Title:     a.Title,
		Summary:   a.Summary,
		Date:      a.Date,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (m *AnnouncementMapper) ToModel(a *entity.Announcement) *model.Announcement {
	if a == nil {
		return nil
	}
	return &model.Announcement{
		Id:        a.Id,
		Title:     a.Title,
		Summary:   a.Summary,
		Date:      a.Date,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (m *AnnouncementMapper) ToEntities(rows []*model.Announcement) []*entity.Announcement {
	entities := make([]*entity.Announcement, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

type CalendarEventMapper struct{}

func NewCalendarEventMapper() *CalendarEventMapper {
	return &CalendarEventMapper{}
}

func (m *CalendarEventMapper) ToEntity(e *model.CalendarEvent) *entity.CalendarEvent {
	if e == nil {
		return nil
	}
	return &entity.CalendarEvent{
		Id:          e.Id,
		Title:       e.Title,
		Start:       e.Start,
		End:         e.End,
		Description: e.Description,
		Type:        entity.CalendarEventType(e.Type),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *CalendarEventMapper) ToModel(e *entity.CalendarEvent) *model.CalendarEvent {
	if e == nil {
		return nil
	}
	return &model.CalendarEvent{
		Id:          e.Id,
		Title:       e.Title,
		Start:       e.Start,
		End:         e.End,
		Description: e.Description,
		Type:        string(e.Type),
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func (m *CalendarEventMapper) ToEntities(rows []*model.CalendarEvent) []*entity.CalendarEvent {
	entities := make([]*entity.CalendarEvent, len(rows))
	for i, r := range rows {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
