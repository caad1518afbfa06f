package service

import (
	"context"
	"time"

	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/pkg/mailer"
	"parish-portal-be/pkg/events"
)

const publishTimeout = 3 * time.Second

// sideEffects groups the fire-and-forget work that follows a committed
// change. Nothing here can fail the calling operation.
type sideEffects struct {
	mail      mailer.Dispatcher
	publisher events.Publisher
	log       logger.ILogger
	module    string
}

func newSideEffects(mail mailer.Dispatcher, publisher events.Publisher, log logger.ILogger, module string) sideEffects {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return sideEffects{mail: mail, publisher: publisher, log: log, module: module}
}

func (s sideEffects) email(ctx context.Context, msg mailer.Message) {
	s.mail.Enqueue(ctx, msg)
}

// emit publishes on a detached context so a slow bus never holds the request.
func (s sideEffects) emit(ev events.Event) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.log.Warn(s.module, "Failed to publish event", map[string]interface{}{
				"type":  ev.EventType(),
				"error": err.Error(),
			})
		}
	}()
}
