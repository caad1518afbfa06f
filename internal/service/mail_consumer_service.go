package service

import (
	"context"
	"encoding/json"

	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IMailConsumerService interface {
	Consume(ctx context.Context) error
}

type mailConsumerService struct {
	subscriber message.Subscriber
	topicName  string
	sender     mailer.IEmailService
	log        logger.ILogger
}

func NewMailConsumerService(
	subscriber message.Subscriber,
	topicName string,
	sender mailer.IEmailService,
	log logger.ILogger,
) IMailConsumerService {
	return &mailConsumerService{
		subscriber: subscriber,
		topicName:  topicName,
		sender:     sender,
		log:        log,
	}
}

// Consume starts delivering queued mail in the background and returns once
// subscribed.
func (cs *mailConsumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

// processMessage always acks: an undeliverable mail is logged and dropped so
// it never blocks the queue.
func (cs *mailConsumerService) processMessage(msg *message.Message) {
	defer msg.Ack()

	var mail mailer.Message
	if err := json.Unmarshal(msg.Payload, &mail); err != nil {
		cs.log.Error("MAIL", "Failed to unmarshal mail message", map[string]interface{}{
			"uuid":  msg.UUID,
			"error": err.Error(),
		})
		return
	}

	if err := cs.sender.Send(mail); err != nil {
		cs.log.Error("MAIL", "Failed to send email", map[string]interface{}{
			"to":      mail.To,
			"subject": mail.Subject,
			"error":   err.Error(),
		})
		return
	}

	cs.log.Info("MAIL", "Email sent", map[string]interface{}{
		"to":      mail.To,
		"subject": mail.Subject,
	})
}
