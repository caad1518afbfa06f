package service

import (
	"context"
	"errors"
	"fmt"
	"io"
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
	"parish-portal-be/pkg/store"
	"parish-portal-be/pkg/workflow"

	"github.com/google/uuid"
)

const (
	msgCertificateNotFound = "Certificate request not found"
	certificateNoun        = "certificate request"
)

type ICertificateService interface {
	Submit(ctx context.Context, caller *entity.Caller, req *dto.CreateCertificateRequest) (*dto.CertificateResponse, error)
	ListOwn(ctx context.Context, caller *entity.Caller) ([]*dto.CertificateResponse, error)
	ListAll(ctx context.Context, caller *entity.Caller) ([]*dto.CertificateResponse, error)
	UpdateStatus(ctx context.Context, caller *entity.Caller, req *dto.UpdateCertificateStatusRequest) (*dto.CertificateResponse, error)
	CreatePayment(ctx context.Context, caller *entity.Caller, req *dto.CertificateIdRequest) (*dto.PaymentIntentResponse, error)
	MarkPaid(ctx context.Context, caller *entity.Caller, req *dto.MarkCertificatePaidRequest) (*dto.CertificateResponse, error)
	UploadPdf(ctx context.Context, caller *entity.Caller, certificateId, filename string, file io.Reader) (*dto.CertificateResponse, error)
	Download(ctx context.Context, caller *entity.Caller, certificateId string) (io.ReadCloser, string, error)
}

type certificateService struct {
	uowFactory unitofwork.RepositoryFactory
	gate       paymentGate
	files      store.FileStore
	effects    sideEffects
	log        logger.ILogger
}

func NewCertificateService(
	uowFactory unitofwork.RepositoryFactory,
	gateway payment.Gateway,
	paymentSettings PaymentSettings,
	files store.FileStore,
	mail mailer.Dispatcher,
	publisher events.Publisher,
	log logger.ILogger,
) ICertificateService {
	return &certificateService{
		uowFactory: uowFactory,
		gate:       paymentGate{gateway: gateway, settings: paymentSettings, log: log},
		files:      files,
		effects:    newSideEffects(mail, publisher, log, "CERTIFICATE"),
		log:        log,
	}
}

func (s *certificateService) Submit(ctx context.Context, caller *entity.Caller, req *dto.CreateCertificateRequest) (*dto.CertificateResponse, error) {
	if !caller.IsVerified {
		return nil, apperror.Authorization("User not verified!")
	}

	rec := &entity.CertificateRequest{
		Id:                uuid.New(),
		UserId:            caller.UserId,
		CertificateType:   entity.CertificateType(req.CertificateType),
		RequestPurpose:    strings.TrimSpace(req.RequestPurpose),
		RequesterName:     strings.TrimSpace(req.RequesterName),
		RequesterRelation: strings.TrimSpace(req.RequesterRelation),
		MarriageRegNo:     req.MarriageRegNo,
		Lifecycle:         entity.NewLifecycle(),
	}

	// only the fields the chosen type asks for are kept
	var err error
	switch rec.CertificateType {
	case entity.CertificateTypeBaptism:
		rec.FatherName = strings.TrimSpace(req.FatherName)
		rec.MotherName = strings.TrimSpace(req.MotherName)
		if rec.DateOfBaptism, err = dto.ParseDate(req.DateOfBaptism); err != nil {
			return nil, err
		}
	case entity.CertificateTypeMarriage:
		rec.GroomsName = strings.TrimSpace(req.GroomsName)
		rec.BridesName = strings.TrimSpace(req.BridesName)
		if rec.DateOfMarriage, err = dto.ParseDate(req.DateOfMarriage); err != nil {
			return nil, err
		}
	default:
		return nil, apperror.Validation("Invalid certificate type")
	}
	if rec.ExpirationDate, err = dto.ParseDate(req.ExpirationDate); err != nil {
		return nil, err
	}
	if err := checkCertificateFields(rec); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CertificateRepository().Create(ctx, rec); err != nil {
		return nil, err
	}

	s.effects.emit(events.RecordEvent(events.RecordSubmitted, string(entity.RecordKindCertificate), rec.Id.String(), caller.UserId.String(), map[string]interface{}{
		"certificateType": string(rec.CertificateType),
	}))
	return toCertificateResponse(rec), nil
}

// checkCertificateFields runs after trimming, so whitespace-only values count
// as missing.
func checkCertificateFields(rec *entity.CertificateRequest) error {
	if blank(rec.RequestPurpose, rec.RequesterName, rec.RequesterRelation) {
		return apperror.Validation("Missing required fields")
	}
	switch rec.CertificateType {
	case entity.CertificateTypeBaptism:
		if blank(rec.FatherName, rec.MotherName) || rec.DateOfBaptism == nil {
			return apperror.Validation("Complete baptism details are required")
		}
	case entity.CertificateTypeMarriage:
		if blank(rec.GroomsName, rec.BridesName) || rec.DateOfMarriage == nil {
			return apperror.Validation("Complete marriage details are required")
		}
	}
	return nil
}

func (s *certificateService) ListOwn(ctx context.Context, caller *entity.Caller) ([]*dto.CertificateResponse, error) {
	if !caller.IsVerified {
		return nil, apperror.Authorization("User not verified")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	recs, err := uow.CertificateRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: caller.UserId},
		specification.NewestFirst(),
	)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, apperror.NotFound("no request found")
	}
	return toCertificateResponses(recs), nil
}

func (s *certificateService) ListAll(ctx context.Context, caller *entity.Caller) ([]*dto.CertificateResponse, error) {
	if !caller.IsAdmin() {
		return nil, apperror.Authorization("Admin access only")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	recs, err := uow.CertificateRepository().FindAll(ctx,
		specification.WithRequester{},
		specification.NewestFirst(),
	)
	if err != nil {
		return nil, err
	}
	return toCertificateResponses(recs), nil
}

func (s *certificateService) UpdateStatus(ctx context.Context, caller *entity.Caller, req *dto.UpdateCertificateStatusRequest) (*dto.CertificateResponse, error) {
	if !caller.IsAdmin() {
		return nil, apperror.Authorization("Admin access only")
	}
	id, err := parseRecordId(req.CertificateId, "certificate ID")
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
	repo := uow.CertificateRepository()

	rec, err := repo.FindOne(ctx, specification.ByID{ID: id}, specification.WithRequester{})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound(msgCertificateNotFound)
	}

	next, err := workflow.Next(rec.State(), ev)
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

	rec.Status, rec.PaymentStatus, rec.Remark = next.Status, next.PaymentStatus, remark

	if rec.Requester != nil {
		s.effects.email(ctx, mailer.DecisionMail(rec.Requester.Name, rec.Requester.Email, certificateNoun, status == workflow.StatusApproved, remark))
	}
	s.effects.emit(events.RecordEvent(decisionEventType(status), string(entity.RecordKindCertificate), id.String(), caller.UserId.String(), map[string]interface{}{
		"remark": remark,
	}))
	return toCertificateResponse(rec), nil
}

// findOwned loads a record and hides it from anyone but its owner.
func (s *certificateService) findOwned(ctx context.Context, uow unitofwork.UnitOfWork, caller *entity.Caller, rawId string) (*entity.CertificateRequest, error) {
	id, err := parseRecordId(rawId, "certificate ID")
	if err != nil {
		return nil, err
	}
	rec, err := uow.CertificateRepository().FindOne(ctx, specification.ByID{ID: id}, specification.WithRequester{})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound(msgCertificateNotFound)
	}
	if rec.UserId != caller.UserId {
		return nil, apperror.Authorization("Not your certificate request")
	}
	return rec, nil
}

func (s *certificateService) CreatePayment(ctx context.Context, caller *entity.Caller, req *dto.CertificateIdRequest) (*dto.PaymentIntentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rec, err := s.findOwned(ctx, uow, caller, req.CertificateId)
	if err != nil {
		return nil, err
	}
	if _, err := workflow.Next(rec.State(), workflow.EventStartPayment); err != nil {
		return nil, transitionError(err)
	}

	target := intentTarget{
		Kind:     entity.RecordKindCertificate,
		RecordId: rec.Id,
		OwnerId:  rec.UserId,
		Purpose:  purposeCertificatePaid,
		Name:     rec.RequesterName,
	}
	if rec.Requester != nil {
		target.Name, target.Email = rec.Requester.Name, rec.Requester.Email
	}

	resp, err := s.gate.createIntent(ctx, uow, target)
	if err != nil {
		return nil, err
	}
	s.effects.emit(events.RecordEvent(events.PaymentStarted, string(entity.RecordKindCertificate), rec.Id.String(), caller.UserId.String(), map[string]interface{}{
		"paymentId": resp.PaymentId,
	}))
	return resp, nil
}

func (s *certificateService) MarkPaid(ctx context.Context, caller *entity.Caller, req *dto.MarkCertificatePaidRequest) (*dto.CertificateResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rec, err := s.findOwned(ctx, uow, caller, req.CertificateId)
	if err != nil {
		return nil, err
	}
	paymentId, err := checkPaymentId(req.PaymentId)
	if err != nil {
		return nil, err
	}
	if _, err := workflow.Next(rec.State(), workflow.EventConfirmPayment); err != nil {
		return nil, transitionError(err)
	}
	if err := s.gate.verify(ctx, uow, entity.RecordKindCertificate, rec.Id, rec.UserId, paymentId); err != nil {
		return nil, err
	}

	paidAt := time.Now()
	applied, err := uow.CertificateRepository().MarkPaid(ctx, rec.Id, paymentId, paidAt)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, apperror.Conflict(workflow.MsgAlreadyPaid)
	}

	rec.PaymentStatus, rec.PaymentId, rec.PaidAt = workflow.PaymentPaid, &paymentId, &paidAt
	s.afterPaid(ctx, rec, caller.UserId.String())
	return toCertificateResponse(rec), nil
}

func (s *certificateService) afterPaid(ctx context.Context, rec *entity.CertificateRequest, actorId string) {
	if rec.Requester != nil {
		s.effects.email(ctx, mailer.PaymentMail(rec.Requester.Name, rec.Requester.Email, certificateNoun, *rec.PaymentId, *rec.PaidAt, nil))
	}
	s.effects.emit(events.RecordEvent(events.PaymentSettled, string(entity.RecordKindCertificate), rec.Id.String(), actorId, map[string]interface{}{
		"paymentId": *rec.PaymentId,
	}))
}

func (s *certificateService) UploadPdf(ctx context.Context, caller *entity.Caller, certificateId, filename string, file io.Reader) (*dto.CertificateResponse, error) {
	if !caller.IsAdmin() {
		return nil, apperror.Authorization("Admin access only")
	}
	id, err := parseRecordId(certificateId, "certificate ID")
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperror.Validation("Certificate ID and PDF file are required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.CertificateRepository()

	rec, err := repo.FindOne(ctx, specification.ByID{ID: id}, specification.WithRequester{})
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, apperror.NotFound(msgCertificateNotFound)
	}
	if _, err := workflow.Next(rec.State(), workflow.EventDeliver); err != nil {
		return nil, transitionError(err)
	}

	path, err := s.files.SavePDF(filename, file)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotPDF):
			return nil, apperror.Validation("Only PDF files allowed")
		case errors.Is(err, store.ErrTooLarge):
			return nil, apperror.Validation("PDF exceeds the upload limit")
		}
		return nil, err
	}

	deliveredAt := time.Now()
	applied, err := repo.SetDeliverable(ctx, id, path, deliveredAt)
	if err != nil || !applied {
		s.discardFile(path)
		if err != nil {
			return nil, err
		}
		// state moved between the read and the write
		return nil, apperror.InvalidState(workflow.MsgPaymentNotComplete)
	}

	if previous := rec.CertificatePdf; previous != "" && previous != path {
		s.discardFile(previous)
	}
	rec.CertificatePdf, rec.DeliveredAt = path, &deliveredAt
	if rec.Requester != nil {
		s.effects.email(ctx, mailer.DeliveredMail(rec.Requester.Name, rec.Requester.Email, "certificate"))
	}
	s.effects.emit(events.RecordEvent(events.RecordDelivered, string(entity.RecordKindCertificate), id.String(), caller.UserId.String(), nil))
	return toCertificateResponse(rec), nil
}

// discardFile removes an artifact no record points at. Failures are logged.
func (s *certificateService) discardFile(path string) {
	if err := s.files.Remove(path); err != nil {
		s.log.Warn("CERTIFICATE", "Failed to remove stale certificate file", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
	}
}

// Download is open to the owner and to admins.
func (s *certificateService) Download(ctx context.Context, caller *entity.Caller, certificateId string) (io.ReadCloser, string, error) {
	id, err := parseRecordId(certificateId, "certificate ID")
	if err != nil {
		return nil, "", err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	rec, err := uow.CertificateRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, "", err
	}
	if rec == nil || rec.CertificatePdf == "" {
		return nil, "", apperror.NotFound("Certificate not available")
	}
	if rec.UserId != caller.UserId && !caller.IsAdmin() {
		return nil, "", apperror.Authorization("Not your certificate")
	}

	f, err := s.files.Open(rec.CertificatePdf)
	if err != nil {
		s.log.Error("CERTIFICATE", "Stored certificate missing", map[string]interface{}{
			"certificateId": id.String(),
			"path":          rec.CertificatePdf,
			"error":         err,
		})
		return nil, "", apperror.NotFound("Certificate not available")
	}
	return f, fmt.Sprintf("certificate-%s.pdf", id), nil
}

func decisionEventType(status workflow.Status) string {
	if status == workflow.StatusApproved {
		return events.RecordApproved
	}
	return events.RecordRejected
}

func toCertificateResponse(c *entity.CertificateRequest) *dto.CertificateResponse {
	res := &dto.CertificateResponse{
		Id:                c.Id.String(),
		CertificateType:   string(c.CertificateType),
		RequestPurpose:    c.RequestPurpose,
		RequesterName:     c.RequesterName,
		RequesterRelation: c.RequesterRelation,
		DateOfBaptism:     dto.FormatDate(c.DateOfBaptism),
		FatherName:        c.FatherName,
		MotherName:        c.MotherName,
		GroomsName:        c.GroomsName,
		BridesName:        c.BridesName,
		DateOfMarriage:    dto.FormatDate(c.DateOfMarriage),
		MarriageRegNo:     c.MarriageRegNo,
		ExpirationDate:    dto.FormatDate(c.ExpirationDate),
		Status:            string(c.Status),
		Remark:            c.Remark,
		PaymentStatus:     string(c.PaymentStatus),
		PaymentId:         c.PaymentId,
		PaidAt:            c.PaidAt,
		CertificatePdf:    c.CertificatePdf,
		DeliveredAt:       c.DeliveredAt,
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
	if c.Requester != nil {
		res.User = &dto.Requester{Id: c.Requester.Id.String(), Name: c.Requester.Name, Email: c.Requester.Email}
	}
	return res
}

func toCertificateResponses(recs []*entity.CertificateRequest) []*dto.CertificateResponse {
	out := make([]*dto.CertificateResponse, 0, len(recs))
	for _, r := range recs {
		out = append(out, toCertificateResponse(r))
	}
	return out
}
