package entity

import (
	"time"

	"github.com/google/uuid"
)

// AnnouncementTTL is how long an announcement stays listed after it was created.
const AnnouncementTTL = 14 * 24 * time.Hour

type Announcement struct {
	Id        uuid.UUID
	Title     string
	Summary   string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CalendarEventType string

const (
	CalendarEventFeast   CalendarEventType = "feast"
	CalendarEventMass    CalendarEventType = "mass"
	CalendarEventSpecial CalendarEventType = "special"
	CalendarEventEvent   CalendarEventType = "event"
)

type CalendarEvent struct {
	Id          uuid.UUID
	Title       string
	Start       string // YYYY-MM-DD or RFC 3339, as sent by the calendar client
	End         string
	Description string
	Type        CalendarEventType
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
