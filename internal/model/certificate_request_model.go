package model

import (
	"time"

	"github.com/google/uuid"
)

type CertificateRequest struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;index"`
	User              *User     `gorm:"foreignKey:UserId"`
	CertificateType   string    `gorm:"type:varchar(20);not null"`
	RequestPurpose    string    `gorm:"type:text;not null"`
	RequesterName     string    `gorm:"type:varchar(255);not null"`
	RequesterRelation string    `gorm:"type:varchar(255);not null"`

	DateOfBaptism *time.Time `gorm:"type:date"`
	FatherName    string     `gorm:"type:varchar(255)"`
	MotherName    string     `gorm:"type:varchar(255)"`

	GroomsName     string     `gorm:"type:varchar(255)"`
	BridesName     string     `gorm:"type:varchar(255)"`
	DateOfMarriage *time.Time `gorm:"type:date"`
	MarriageRegNo  *int64
	ExpirationDate *time.Time `gorm:"type:date"`

	Status        string  `gorm:"type:varchar(20);not null;default:'pending';index"`
	Remark        string  `gorm:"type:text;not null;default:''"`
	PaymentStatus string  `gorm:"type:varchar(20);not null;default:'notRequired'"`
	PaymentId     *string `gorm:"type:varchar(64);uniqueIndex"`
	PaidAt        *time.Time

	CertificatePdf string `gorm:"type:text;not null;default:''"`
	DeliveredAt    *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CertificateRequest) TableName() string {
	return "certificate_requests"
}
