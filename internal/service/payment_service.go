package service

import (
	"context"
	"time"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/pkg/mailer"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/internal/repository/unitofwork"
	"parish-portal-be/pkg/events"
	"parish-portal-be/pkg/payment"
)

// IPaymentService consumes provider notifications. Both workflows can also be
// settled from here when the client never calls mark-paid.
type IPaymentService interface {
	HandleNotification(ctx context.Context, n *dto.MidtransNotification) error
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	serverKey  string
	effects    sideEffects
	log        logger.ILogger
}

func NewPaymentService(
	uowFactory unitofwork.RepositoryFactory,
	serverKey string,
	mail mailer.Dispatcher,
	publisher events.Publisher,
	log logger.ILogger,
) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		serverKey:  serverKey,
		effects:    newSideEffects(mail, publisher, log, "PAYMENT"),
		log:        log,
	}
}

func (s *paymentService) HandleNotification(ctx context.Context, n *dto.MidtransNotification) error {
	if !payment.VerifySignature(s.serverKey, n.OrderId, n.StatusCode, n.GrossAmount, n.SignatureKey) {
		s.log.Warn("PAYMENT", "Rejected notification with bad signature", map[string]interface{}{
			"orderId": n.OrderId,
		})
		return apperror.Authorization("Invalid signature")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	intent, err := uow.PaymentIntentRepository().FindOne(ctx, specification.ByStringID{ID: n.OrderId})
	if err != nil {
		return err
	}
	if intent == nil {
		// not ours; acknowledge so the provider stops retrying
		s.log.Warn("PAYMENT", "Notification for unknown order", map[string]interface{}{"orderId": n.OrderId})
		return nil
	}

	status := payment.TransactionStatus{
		PaymentId:         n.OrderId,
		TransactionStatus: n.TransactionStatus,
		FraudStatus:       n.FraudStatus,
		GrossAmount:       n.GrossAmount,
	}

	switch {
	case status.Settled():
		return s.settle(ctx, uow, intent)
	case status.Failed():
		if err := uow.PaymentIntentRepository().UpdateStatus(ctx, intent.Id, entity.PaymentIntentFailed); err != nil {
			return err
		}
		s.effects.emit(events.RecordEvent(events.PaymentFailed, string(intent.RecordKind), intent.RecordId.String(), "provider", map[string]interface{}{
			"paymentId": intent.Id,
			"status":    n.TransactionStatus,
		}))
	}
	return nil
}

// settle marks the linked record paid. A record that is already paid is left
// alone.
func (s *paymentService) settle(ctx context.Context, uow unitofwork.UnitOfWork, intent *entity.PaymentIntent) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PaymentIntentRepository().UpdateStatus(ctx, intent.Id, entity.PaymentIntentSettled); err != nil {
		return err
	}

	paidAt := time.Now()
	var (
		applied bool
		err     error
	)
	switch intent.RecordKind {
	case entity.RecordKindCertificate:
		applied, err = uow.CertificateRepository().MarkPaid(ctx, intent.RecordId, intent.Id, paidAt)
	case entity.RecordKindMass:
		applied, err = uow.MassBookingRepository().MarkPaid(ctx, intent.RecordId, intent.Id, paidAt)
	}
	if err != nil {
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	if !applied {
		return nil
	}

	s.notifyPaid(ctx, intent, paidAt)
	return nil
}

func (s *paymentService) notifyPaid(ctx context.Context, intent *entity.PaymentIntent, paidAt time.Time) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	switch intent.RecordKind {
	case entity.RecordKindCertificate:
		rec, err := uow.CertificateRepository().FindOne(ctx, specification.ByID{ID: intent.RecordId}, specification.WithRequester{})
		if err == nil && rec != nil && rec.Requester != nil {
			s.effects.email(ctx, mailer.PaymentMail(rec.Requester.Name, rec.Requester.Email, certificateNoun, intent.Id, paidAt, nil))
		}
	case entity.RecordKindMass:
		booking, err := uow.MassBookingRepository().FindOne(ctx, specification.ByID{ID: intent.RecordId}, specification.WithRequester{})
		if err == nil && booking != nil && booking.Requester != nil {
			s.effects.email(ctx, mailer.PaymentMail(booking.Requester.Name, booking.Requester.Email, massPaymentNoun, intent.Id, paidAt, &booking.PreferedDate))
		}
	}

	s.effects.emit(events.RecordEvent(events.PaymentSettled, string(intent.RecordKind), intent.RecordId.String(), "provider", map[string]interface{}{
		"paymentId": intent.Id,
	}))
}
