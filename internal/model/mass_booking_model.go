package model

import (
	"time"

	"github.com/google/uuid"
)

type MassBooking struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID `gorm:"type:uuid;not null;index"`
	User         *User     `gorm:"foreignKey:UserId"`
	MassType     string    `gorm:"type:varchar(32);not null"`
	OfferForName string    `gorm:"type:varchar(255);not null"`
	OfferByName  string    `gorm:"type:varchar(255);not null"`
	Email        string    `gorm:"type:varchar(255)"`
	PreferedDate time.Time `gorm:"type:date;not null"`
	PreferedTime string    `gorm:"type:varchar(32);not null"`

	YearOfMarriage     string     `gorm:"type:varchar(16)"`
	Dob                *time.Time `gorm:"type:date"`
	Age                *int
	RelationToDeceased string     `gorm:"type:varchar(255)"`
	YearSinceDeath     string     `gorm:"type:varchar(16)"`
	DateOfDeath        *time.Time `gorm:"type:date"`

	Status        string  `gorm:"type:varchar(20);not null;default:'pending';index"`
	AdminRemark   string  `gorm:"type:text;not null;default:''"`
	PaymentStatus string  `gorm:"type:varchar(20);not null;default:'notRequired'"`
	PaymentId     *string `gorm:"type:varchar(64);uniqueIndex"`
	PaidAt        *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MassBooking) TableName() string {
	return "mass_bookings"
}
