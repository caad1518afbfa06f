package model

import (
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Summary   string    `gorm:"type:varchar(1000);not null;default:''"`
	Date      time.Time `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Announcement) TableName() string {
	return "announcements"
}

type CalendarEvent struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Start       string    `gorm:"type:varchar(40);not null;index"`
	End         string    `gorm:"type:varchar(40);not null"`
	Description string    `gorm:"type:text;not null;default:''"`
	Type        string    `gorm:"type:varchar(20);not null;default:'event'"`
	CreatedBy   string    `gorm:"type:varchar(255);not null;default:'admin'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (CalendarEvent) TableName() string {
	return "calendar_events"
}
