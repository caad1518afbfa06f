package mailer

import (
	"fmt"

	"parish-portal-be/internal/pkg/logger"

	"gopkg.in/gomail.v2"
)

// Message is a rendered email ready for the transport.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type IEmailService interface {
	Send(msg Message) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	log    logger.ILogger
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string, log logger.ILogger) IEmailService {
	from := senderEmail
	if senderName != "" {
		from = fmt.Sprintf("%s <%s>", senderName, senderEmail)
	}
	return &emailService{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

func (s *emailService) Send(msg Message) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.log.Error("MAILER", "Failed to send email", map[string]interface{}{
			"to":      msg.To,
			"subject": msg.Subject,
			"error":   err,
		})
		return err
	}

	s.log.Info("MAILER", "Email sent", map[string]interface{}{
		"to":      msg.To,
		"subject": msg.Subject,
	})
	return nil
}
