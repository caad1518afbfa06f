package entity

import (
	"time"

	"parish-portal-be/pkg/workflow"
)

// Lifecycle is the approval and payment state carried by every request record.
type Lifecycle struct {
	Status        workflow.Status
	Remark        string
	PaymentStatus workflow.PaymentStatus
	PaymentId     *string
	PaidAt        *time.Time
}

func NewLifecycle() Lifecycle {
	return Lifecycle{
		Status:        workflow.StatusPending,
		PaymentStatus: workflow.PaymentNotRequired,
	}
}

type RecordKind string

const (
	RecordKindCertificate RecordKind = "certificate"
	RecordKindMass        RecordKind = "mass"
)
