package entity

import (
	"time"

	"parish-portal-be/pkg/workflow"

	"github.com/google/uuid"
)

type MassType string

const (
	MassTypeThanksgiving       MassType = "THANKSGIVING"
	MassTypeSoulOf             MassType = "SOULOF"
	MassTypeMonthMind          MassType = "MONTHMIND"
	MassTypeDeathAnniversary   MassType = "DEATHANNIVERSARY"
	MassTypeBirthday           MassType = "BIRTHDAY"
	MassTypeWeddingAnniversary MassType = "WEDDINGANNIVERSARY"
	MassTypeIntentions         MassType = "INTENTIONS"
	MassTypeGoodHealth         MassType = "GOODHEALTH"
)

type MassBooking struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	MassType     MassType
	OfferForName string
	OfferByName  string
	Email        string
	PreferedDate time.Time
	PreferedTime string

	YearOfMarriage     string
	Dob                *time.Time
	Age                *int
	RelationToDeceased string
	YearSinceDeath     string
	DateOfDeath        *time.Time

	Lifecycle

	Requester *Requester

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (m *MassBooking) State() workflow.State {
	return workflow.State{Status: m.Status, PaymentStatus: m.PaymentStatus}
}
