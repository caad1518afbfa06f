package unitofwork

import (
	"context"

	"parish-portal-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	CertificateRepository() contract.CertificateRepository
	MassBookingRepository() contract.MassBookingRepository
	PaymentIntentRepository() contract.PaymentIntentRepository
	AnnouncementRepository() contract.AnnouncementRepository
	CalendarEventRepository() contract.CalendarEventRepository
}
