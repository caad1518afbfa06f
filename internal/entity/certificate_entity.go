package entity

import (
	"time"

	"parish-portal-be/pkg/workflow"

	"github.com/google/uuid"
)

type CertificateType string

const (
	CertificateTypeBaptism  CertificateType = "BAPTISM"
	CertificateTypeMarriage CertificateType = "MARRIAGE"
)

type CertificateRequest struct {
	Id                uuid.UUID
	UserId            uuid.UUID
	CertificateType   CertificateType
	RequestPurpose    string
	RequesterName     string
	RequesterRelation string

	DateOfBaptism *time.Time
	FatherName    string
	MotherName    string

	GroomsName     string
	BridesName     string
	DateOfMarriage *time.Time
	MarriageRegNo  *int64
	ExpirationDate *time.Time

	Lifecycle
	CertificatePdf string
	DeliveredAt    *time.Time

	// Populated by admin listings.
	Requester *Requester

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c *CertificateRequest) State() workflow.State {
	return workflow.State{
		Status:        c.Status,
		PaymentStatus: c.PaymentStatus,
		Delivered:     c.CertificatePdf != "",
	}
}
