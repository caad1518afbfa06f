package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentIntent struct {
	Id           string            `gorm:"type:varchar(64);primaryKey"`
	RecordKind   string            `gorm:"type:varchar(20);not null;index:idx_payment_intent_record"`
	RecordId     uuid.UUID         `gorm:"type:uuid;not null;index:idx_payment_intent_record"`
	UserId       uuid.UUID         `gorm:"type:uuid;not null;index"`
	AmountMinor  int64             `gorm:"not null"`
	Currency     string            `gorm:"type:varchar(3);not null"`
	ClientSecret string            `gorm:"type:text;not null"`
	RedirectURL  string            `gorm:"type:text"`
	Status       string            `gorm:"type:varchar(20);not null;default:'created'"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt    time.Time         `gorm:"autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime"`
}

func (PaymentIntent) TableName() string {
	return "payment_intents"
}
