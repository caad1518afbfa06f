package service

import (
	"context"
	"strings"
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
	"parish-portal-be/pkg/workflow"

	"github.com/google/uuid"
)

const (
	msgMassNotFound  = "Mass booking not found"
	massDecisionNoun = "mass request"
	massPaymentNoun  = "mass booking"
)

type IMassBookingService interface {
	Submit(ctx context.Context, caller *entity.Caller, req *dto.CreateMassBookingRequest) (*dto.MassBookingResponse, error)
	ListOwn(ctx context.Context, caller *entity.Caller) ([]*dto.MassBookingResponse, error)
	ListAll(ctx context.Context, caller *entity.Caller) ([]*dto.MassBookingResponse, error)
	UpdateStatus(ctx context.Context, caller *entity.Caller, req *dto.UpdateMassStatusRequest) (*dto.MassBookingResponse, error)
	CreatePayment(ctx context.Context, caller *entity.Caller, req *dto.MassIdRequest) (*dto.PaymentIntentResponse, error)
	MarkPaid(ctx context.Context, caller *entity.Caller, req *dto.MarkMassPaidRequest) (*dto.MassBookingResponse, error)
}

type massBookingService struct {
	uowFactory unitofwork.RepositoryFactory
	gate       paymentGate
	effects    sideEffects
}

func NewMassBookingService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	paymentSettings PaymentSettings,
	mail mailer.Dispatcher,
	publisher events.Publisher,
	log logger.ILogger,
) IMassBookingService {
	return &massBookingService{
		uowFactory: uowFactory,
		gate:       paymentGate{gateway: gateway, settings: paymentSettings, log: log},
		effects:    newSideEffects(mail, publisher, log, "MASS"),
	}
}

func (s *massBookingService) Submit(ctx context.Context, caller *entity.Caller, req *dto.CreateMassBookingRequest) (*dto.MassBookingResponse, error) {
	if !caller.IsVerified {
		return nil, apperror.Authorization("user not verified")
	}

	preferedDate, err := dto.ParseDate(req.PreferedDate)
	if err != nil {
		return nil, err
	}
	if preferedDate == nil {
		return nil, apperror.Validation("Missing required fields")
	}
	dob, err := dto.ParseDate(req.Dob)
	if err != nil {
		return nil, err
	}

	booking := &entity.MassBooking{
		Id:           uuid.New(),
		UserId:       caller.UserId,
		MassType:     entity.MassType(req.MassType),
		OfferForName: strings.TrimSpace(req.OfferForName),
		OfferByName:  strings.TrimSpace(req.OfferByName),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PreferedDate: *preferedDate,
		PreferedTime: strings.TrimSpace(req.PreferedTime),
		Dob:          dob,
		Lifecycle:    entity.NewLifecycle(),
	}

	switch booking.MassType {
	case entity.MassTypeWeddingAnniversary:
		booking.YearOfMarriage = strings.TrimSpace(req.YearOfMarriage)
	case entity.MassTypeBirthday:
		age := req.Age
		booking.Age = &age
	case entity.MassTypeMonthMind:
		booking.RelationToDeceased = strings.TrimSpace(req.RelationToDeceased)
	case entity.MassTypeDeathAnniversary:
		booking.YearSinceDeath = strings.TrimSpace(req.YearSinceDeath)
		if booking.DateOfDeath, err = dto.ParseDate(req.DateOfDeath); err != nil {
			return nil, err
		}
	}

	if err := checkMassBookingFields(booking); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.MassBookingRepository().Create(ctx, booking); err != nil {
		return nil, err
	}

	s.effects.emit(events.RecordEvent(events.RecordSubmitted, string(entity.RecordKindMass), booking.Id.String(), caller.UserId.String(), map[string]interface{}{
		"massType": string(booking.MassType),
	}))
	return toMassBookingResponse(booking), nil
}

func checkMassBookingFields(b *entity.MassBooking) error {
	if blank(b.OfferForName, b.OfferByName, b.PreferedTime) {
		return apperror.Validation("Missing required fields")
	}
	switch b.MassType {
	case entity.MassTypeWeddingAnniversary:
		if b.YearOfMarriage == "" {
			return apperror.Validation("Year of marriage is required")
		}
	case entity.MassTypeBirthday:
		if b.Age == nil || *b.Age <= 0 {
			return apperror.Validation("Age is required")
		}
	case entity.MassTypeMonthMind:
		if b.RelationToDeceased == "" {
			return apperror.Validation("Relation to deceased is required")
		}
	case entity.MassTypeDeathAnniversary:
		if b.YearSinceDeath == "" || b.DateOfDeath == nil {
			return apperror.Validation("Death details are required")
		}
	case entity.MassTypeThanksgiving, entity.MassTypeSoulOf, entity.MassTypeIntentions, entity.MassTypeGoodHealth:
	default:
		return apperror.Validation("Invalid mass type")
	}
	return nil
}

func (s *massBookingService) ListOwn(ctx context.Context, caller *entity.Caller) ([]*dto.MassBookingResponse, error) {
	if !caller.IsVerified {
		return nil, apperror.Authorization("Please verify your email to view mass status")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookings, err := uow.MassBookingRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: caller.UserId},
		specification.NewestFirst(),
	)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, apperror.NotFound("No mass bookings found")
	}
	return toMassBookingResponses(bookings), nil
}

func (s *massBookingService) ListAll(ctx context.Context, caller *entity.Caller) ([]*dto.MassBookingResponse, error) {
	if !caller.IsAdmin() {
		return nil, apperror.Authorization("Admin access only")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	bookings, err := uow.MassBookingRepository().FindAll(ctx,
		specification.WithRequester{},
		specification.NewestFirst(),
	)
	if err != nil {
		return nil, err
	}
	return toMassBookingResponses(bookings), nil
}

func (s *massBookingService) UpdateStatus(ctx context.Context, caller *entity.Caller, req *dto.UpdateMassStatusRequest) (*dto.MassBookingResponse, error) {
	if !caller.IsAdmin() {
		return nil, apperror.Authorization("Admin access only")
	}
	id, err := parseRecordId(req.MassId, "mass ID")
	if err != nil {
		return nil, err
	}
	status := workflow.Status(req.Status)
	ev, err := decisionEvent(status)
	if err != nil {
		return nil, err
	}
	remark, err := decisionRemark(status, req.Remark)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.MassBookingRepository()

	booking, err := repo.FindOne(ctx, specification.ByID{ID: id}, specification.WithRequester{})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound(msgMassNotFound)
	}

	next, err := workflow.Next(booking.State(), ev)
	if err != nil {
		return nil, transitionError(err)
	}
	applied, err := repo.Decide(ctx, id, next, remark)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.Conflict(workflow.MsgOnlyPending)
	}

	booking.Status, booking.PaymentStatus, booking.Remark = next.Status, next.PaymentStatus, remark

	if booking.Requester != nil {
		s.effects.email(ctx, mailer.DecisionMail(booking.Requester.Name, booking.Requester.Email, massDecisionNoun, status == workflow.StatusApproved, remark))
	}
	s.effects.emit(events.RecordEvent(decisionEventType(status), string(entity.RecordKindMass), id.String(), caller.UserId.String(), map[string]interface{}{
		"remark": remark,
	}))
	return toMassBookingResponse(booking), nil
}

func (s *massBookingService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, caller *entity.Caller, rawId string) (*entity.MassBooking, error) {
	id, err := parseRecordId(rawId, "mass ID")
	if err != nil {
		return nil, err
	}
	booking, err := uow.MassBookingRepository().FindOne(ctx, specification.ByID{ID: id}, specification.WithRequester{})
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NotFound(msgMassNotFound)
	}
	if booking.UserId != caller.UserId {
		return nil, apperror.Authorization("Not your mass booking")
	}
	return booking, nil
}

func (s *massBookingService) CreatePayment(ctx context.Context, caller *entity.Caller, req *dto.MassIdRequest) (*dto.PaymentIntentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := s.findOwned(ctx, uow, caller, req.MassId)
	if err != nil {
		return nil, err
	}
	if _, err := workflow.Next(booking.State(), workflow.EventStartPayment); err != nil {
		return nil, transitionError(err)
	}

	target := intentTarget{
		Kind:     entity.RecordKindMass,
		RecordId: booking.Id,
		OwnerId:  booking.UserId,
		Purpose:  purposeMassPaid,
		Name:     booking.OfferByName,
		Email:    booking.Email,
	}
	if booking.Requester != nil {
		target.Name, target.Email = booking.Requester.Name, booking.Requester.Email
	}

	resp, err := s.gate.createIntent(ctx, uow, target)
	if err != nil {
		return nil, err
	}
	s.effects.emit(events.RecordEvent(events.PaymentStarted, string(entity.RecordKindMass), booking.Id.String(), caller.UserId.String(), map[string]interface{}{
		"paymentId": resp.PaymentId,
	}))
	return resp, nil
}

func (s *massBookingService) MarkPaid(ctx context.Context, caller *entity.Caller, req *dto.MarkMassPaidRequest) (*dto.MassBookingResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	booking, err := s.findOwned(ctx, uow, caller, req.MassId)
	if err != nil {
		return nil, err
	}
	paymentId, err := checkPaymentId(req.PaymentId)
	if err != nil {
		return nil, err
	}
	if _, err := workflow.Next(booking.State(), workflow.EventConfirmPayment); err != nil {
		return nil, transitionError(err)
	}
	if err := s.gate.verify(ctx, uow, entity.RecordKindMass, booking.Id, booking.UserId, paymentId); err != nil {
		return nil, err
	}

	paidAt := time.Now()
	applied, err := uow.MassBookingRepository().MarkPaid(ctx, booking.Id, paymentId, paidAt)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.Conflict(workflow.MsgAlreadyPaid)
	}

	booking.PaymentStatus, booking.PaymentId, booking.PaidAt = workflow.PaymentPaid, &paymentId, &paidAt
	if booking.Requester != nil {
		s.effects.email(ctx, mailer.PaymentMail(booking.Requester.Name, booking.Requester.Email, massPaymentNoun, paymentId, paidAt, &booking.PreferedDate))
	}
	s.effects.emit(events.RecordEvent(events.PaymentSettled, string(entity.RecordKindMass), booking.Id.String(), caller.UserId.String(), map[string]interface{}{
		"paymentId": paymentId,
	}))
	return toMassBookingResponse(booking), nil
}

func toMassBookingResponse(m *entity.MassBooking) *dto.MassBookingResponse {
	res := &dto.MassBookingResponse{
		Id:                 m.Id.String(),
		MassType:           string(m.MassType),
		OfferForName:       m.OfferForName,
		OfferByName:        m.OfferByName,
		Email:              m.Email,
		PreferedDate:       dto.FormatDate(&m.PreferedDate),
		PreferedTime:       m.PreferedTime,
		YearOfMarriage:     m.YearOfMarriage,
		Dob:                dto.FormatDate(m.Dob),
		Age:                m.Age,
		RelationToDeceased: m.RelationToDeceased,
		YearSinceDeath:     m.YearSinceDeath,
		DateOfDeath:        dto.FormatDate(m.DateOfDeath),
		Status:             string(m.Status),
		AdminRemark:        m.Remark,
		PaymentStatus:      string(m.PaymentStatus),
		PaymentId:          m.PaymentId,
		PaidAt:             m.PaidAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.Requester != nil {
		res.User = &dto.Requester{Id: m.Requester.Id.String(), Name: m.Requester.Name, Email: m.Requester.Email}
	}
	return res
}

func toMassBookingResponses(bookings []*entity.MassBooking) []*dto.MassBookingResponse {
	out := make([]*dto.MassBookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toMassBookingResponse(b))
	}
	return out
}
