package entity

import (
	"time"

	"github.com/google/uuid"
)

type PaymentIntentStatus string

const (
	PaymentIntentCreated PaymentIntentStatus = "created"
	PaymentIntentSettled PaymentIntentStatus = "settled"
	PaymentIntentFailed  PaymentIntentStatus = "failed"
)

// PaymentIntent binds one provider order id to exactly one request record.
type PaymentIntent struct {
	Id           string // pi_<hex>, doubles as the provider order id
	RecordKind   RecordKind
	RecordId     uuid.UUID
	UserId       uuid.UUID
	AmountMinor  int64
	Currency     string
	ClientSecret string
	RedirectURL  string
	Status       PaymentIntentStatus
	Metadata     map[string]string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
