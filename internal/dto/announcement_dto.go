package dto

import "time"

// AnnouncementRequest is used for create and partial update; nil fields are
// left untouched on update.
type AnnouncementRequest struct {
	Title   *string `json:"title"`
	Summary *string `json:"summary"`
	Date    *string `json:"date"`
}

type AnnouncementResponse struct {
	Id        string    `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CalendarEventExtendedProps struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

// CalendarEventRequest accepts both the calendar widget shape (start/end,
// extendedProps) and the flat legacy shape (date, description, type).
type CalendarEventRequest struct {
	Title         string                      `json:"title"`
	Date          string                      `json:"date"`
	Start         string                      `json:"start"`
	End           string                      `json:"end"`
	Description   string                      `json:"description"`
	Type          string                      `json:"type"`
	ExtendedProps *CalendarEventExtendedProps `json:"extendedProps"`
}

// CalendarEventResponse is the shape the calendar widget consumes.
type CalendarEventResponse struct {
	LegacyId      string                     `json:"_id"`
	Id            string                     `json:"id"`
	Title         string                     `json:"title"`
	Start         string                     `json:"start"`
	End           string                     `json:"end"`
	ExtendedProps CalendarEventExtendedProps `json:"extendedProps"`
}

type CalendarEventRecord struct {
	Id          string    `json:"_id"`
	Title       string    `json:"title"`
	Date        string    `json:"date"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type CalendarEventListResponse struct {
	Success bool                   `json:"success"`
	Events  []*CalendarEventRecord `json:"events"`
}

type CalendarEventItemResponse struct {
	Success bool                 `json:"success"`
	Event   *CalendarEventRecord `json:"event"`
}

type CalendarEventMessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CalendarFormat renders a stored event for the calendar widget.
func (r *CalendarEventRecord) CalendarFormat() *CalendarEventResponse {
	end := r.End
	if end == "" {
		end = r.Start
	}
	kind := r.Type
	if kind == "" {
		kind = "event"
	}
	return &CalendarEventResponse{
		LegacyId: r.Id,
		Id:       r.Id,
		Title:    r.Title,
		Start:    r.Start,
		End:      end,
		ExtendedProps: CalendarEventExtendedProps{
			Description: r.Description,
			Type:        kind,
		},
	}
}
