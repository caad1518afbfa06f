package service

import (
	"context"

	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/pkg/events"
	pktNats "parish-portal-be/pkg/nats"
)

const (
	auditSubject = pktNats.SubjectPrefix + ">"
	auditDurable = "audit-trail-worker"
)

// EventSubscriber is satisfied by the NATS subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

// AuditService copies every workflow event into the isolated audit log.
type AuditService struct {
	subscriber EventSubscriber
	audit      logger.ILogger
	log        logger.ILogger
}

func NewAuditService(sub EventSubscriber, audit logger.ILogger, log logger.ILogger) *AuditService {
	return &AuditService{
		subscriber: sub,
		audit:      audit,
		log:        log,
	}
}

func (s *AuditService) Start(ctx context.Context) error {
	if err := s.subscriber.Subscribe(ctx, auditSubject, auditDurable, s.handleEvent); err != nil {
		s.log.Error("AUDIT", "Failed to start audit subscriber", map[string]interface{}{"error": err.Error()})
		return err
	}
	s.log.Info("AUDIT", "Audit subscriber started", map[string]interface{}{"subject": auditSubject})
	return nil
}

func (s *AuditService) handleEvent(ctx context.Context, event events.Event) error {
	details := make(map[string]interface{}, len(event.Payload())+1)
	for k, v := range event.Payload() {
		details[k] = v
	}
	details["occurredAt"] = event.Timestamp()

	s.audit.Info("AUDIT", event.EventType(), details)
	return nil
}
