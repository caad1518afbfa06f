package mailer

import (
	"context"
	"encoding/json"

	"parish-portal-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Dispatcher queues mail for asynchronous delivery. Enqueue never fails the
// caller; problems are logged.
type Dispatcher interface {
	Enqueue(ctx context.Context, msg Message)
}

type queueDispatcher struct {
	publisher message.Publisher
	topic     string
	log       logger.ILogger
}

func NewDispatcher(publisher message.Publisher, topic string, log logger.ILogger) Dispatcher {
	return &queueDispatcher{
		publisher: publisher,
		topic:     topic,
		log:       log,
	}
}

func (d *queueDispatcher) Enqueue(ctx context.Context, msg Message) {
	if msg.To == "" {
		d.log.Warn("MAILER", "Skipping email without recipient", map[string]interface{}{"subject": msg.Subject})
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		d.log.Error("MAILER", "Failed to encode email", map[string]interface{}{"error": err})
		return
	}

	if err := d.publisher.Publish(d.topic, message.NewMessage(watermill.NewUUID(), payload)); err != nil {
		d.log.Error("MAILER", "Failed to queue email", map[string]interface{}{
			"to":    msg.To,
			"error": err,
		})
	}
}
