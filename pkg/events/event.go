package events

import (
	"context"
	"time"
)

// Event is anything that can be put on the bus.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

const (
	RecordSubmitted = "RECORD_SUBMITTED"
	RecordApproved  = "RECORD_APPROVED"
	RecordRejected  = "RECORD_REJECTED"
	PaymentStarted  = "PAYMENT_STARTED"
	PaymentSettled  = "PAYMENT_SETTLED"
	PaymentFailed   = "PAYMENT_FAILED"
	RecordDelivered = "RECORD_DELIVERED"
	UserRegistered  = "USER_REGISTERED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// RecordEvent builds the event emitted for a workflow transition on a
// certificate request or mass booking.
func RecordEvent(eventType, kind, recordId, actorId string, extra map[string]interface{}) BaseEvent {
	data := map[string]interface{}{
		"kind":     kind,
		"recordId": recordId,
		"actorId":  actorId,
	}
	for k, v := range extra {
		data[k] = v
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher is satisfied by the NATS publisher and by NopPublisher when the
// bus is not configured.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
