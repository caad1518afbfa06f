package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"parish-portal-be/internal/dto"
	"parish-portal-be/internal/entity"
	"parish-portal-be/internal/pkg/apperror"
	"parish-portal-be/internal/pkg/logger"
	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/internal/repository/unitofwork"
	"parish-portal-be/pkg/payment"
	"parish-portal-be/pkg/workflow"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

const (
	MsgInvalidPaymentId    = "Invalid payment ID"
	MsgPaymentNotVerified  = "payment not verified"
	MsgPaymentIdRequired   = "Payment ID required"
	purposeCertificatePaid = "Certificate Payment"
	purposeMassPaid        = "Mass Payment"
)

type PaymentSettings struct {
	Currency    string
	AmountMinor int64
}

// paymentGate is shared by both workflows: it opens provider intents, binds
// them to a record, and checks them before a record may be marked paid.
type paymentGate struct {
	gateway  payment.Gateway
	settings PaymentSettings
	log      logger.ILogger
}

type intentTarget struct {
	Kind     entity.RecordKind
	RecordId uuid.UUID
	OwnerId  uuid.UUID
	Name     string
	Email    string
	Purpose  string
}

func (g paymentGate) amount() *money.Money {
	return money.New(g.settings.AmountMinor, g.settings.Currency)
}

func (g paymentGate) createIntent(ctx context.Context, uow unitofwork.UnitOfWork, t intentTarget) (*dto.PaymentIntentResponse, error) {
	amount := g.amount()
	paymentId := payment.NewPaymentId()
	metadata := map[string]string{
		"recordId": t.RecordId.String(),
		"kind":     string(t.Kind),
		"userId":   t.OwnerId.String(),
		"purpose":  t.Purpose,
	}

	intent, err := g.gateway.CreateIntent(ctx, payment.IntentRequest{
		PaymentId:     paymentId,
		Amount:        amount,
		Description:   t.Purpose,
		CustomerName:  t.Name,
		CustomerEmail: t.Email,
		Metadata:      metadata,
	})
	if err != nil {
		g.log.Error("PAYMENT", "Provider rejected intent", map[string]interface{}{
			"recordId": t.RecordId.String(),
			"error":    err,
		})
		return nil, apperror.Upstream("Payment provider unavailable", err)
	}

	now := time.Now()
	record := &entity.PaymentIntent{
		Id:           paymentId,
		RecordKind:   t.Kind,
		RecordId:     t.RecordId,
		UserId:       t.OwnerId,
		AmountMinor:  amount.Amount(),
		Currency:     amount.Currency().Code,
		ClientSecret: intent.ClientSecret,
		RedirectURL:  intent.RedirectURL,
		Status:       entity.PaymentIntentCreated,
		Metadata:     metadata,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.PaymentIntentRepository().Create(ctx, record); err != nil {
		return nil, err
	}

	return &dto.PaymentIntentResponse{
		ClientSecret: intent.ClientSecret,
		PaymentId:    paymentId,
		RedirectURL:  intent.RedirectURL,
		Amount:       amount.Amount(),
		Currency:     amount.Currency().Code,
		Display:      amount.Display(),
	}, nil
}

// checkPaymentId is the format gate applied before any lookup.
func checkPaymentId(paymentId string) (string, error) {
	paymentId = strings.TrimSpace(paymentId)
	if paymentId == "" {
		return "", apperror.Validation(MsgPaymentIdRequired)
	}
	if !payment.ValidPaymentId(paymentId) {
		return "", apperror.Validation(MsgInvalidPaymentId)
	}
	return paymentId, nil
}

// verify succeeds only when paymentId was issued for this record and owner
// and the provider reports it settled.
func (g paymentGate) verify(ctx context.Context, uow unitofwork.UnitOfWork, kind entity.RecordKind, recordId, ownerId uuid.UUID, paymentId string) error {
	intent, err := uow.PaymentIntentRepository().FindOne(ctx, specification.ByStringID{ID: paymentId})
	if err != nil {
		return err
	}
	if intent == nil || intent.RecordKind != kind || intent.RecordId != recordId || intent.UserId != ownerId {
		return apperror.InvalidState(MsgPaymentNotVerified)
	}
	if intent.Status == entity.PaymentIntentSettled {
		return nil
	}

	status, err := g.gateway.GetTransaction(ctx, paymentId)
	if err != nil {
		g.log.Warn("PAYMENT", "Could not verify transaction", map[string]interface{}{
			"paymentId": paymentId,
			"error":     err.Error(),
		})
		return apperror.Upstream("Payment provider unavailable", err)
	}

	switch {
	case status.Settled():
		return uow.PaymentIntentRepository().UpdateStatus(ctx, paymentId, entity.PaymentIntentSettled)
	case status.Failed():
		if err := uow.PaymentIntentRepository().UpdateStatus(ctx, paymentId, entity.PaymentIntentFailed); err != nil {
			return err
		}
	}
	return apperror.InvalidState(MsgPaymentNotVerified)
}

// transitionError maps a refused lifecycle move onto the HTTP error taxonomy.
func transitionError(err error) error {
	var te *workflow.TransitionError
	if errors.As(err, &te) {
		if te.Kind == workflow.Conflict {
			return apperror.Conflict(te.Message)
		}
		return apperror.InvalidState(te.Message)
	}
	return err
}

func decisionEvent(status workflow.Status) (workflow.Event, error) {
	switch status {
	case workflow.StatusApproved:
		return workflow.EventApprove, nil
	case workflow.StatusRejected:
		return workflow.EventReject, nil
	}
	return "", apperror.Validation("status must be approved or rejected")
}

func decisionRemark(status workflow.Status, remark string) (string, error) {
	remark = strings.TrimSpace(remark)
	if status == workflow.StatusRejected && remark == "" {
		return "", apperror.Validation("Remark is required when rejecting")
	}
	return remark, nil
}

func parseRecordId(raw, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, apperror.Validation("Invalid " + label)
	}
	return id, nil
}

// blank reports whether any of values is empty.
func blank(values ...string) bool {
	for _, v := range values {
		if v == "" {
			return true
		}
	}
	return false
}
