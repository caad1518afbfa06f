package implementation

import (
	"context"
	"testing"
	"time"

	"parish-portal-be/internal/repository/specification"
	"parish-portal-be/pkg/workflow"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

const decideGuard = `UPDATE "certificate_requests" SET .* WHERE id = \$\d+ AND .*status = \$\d+ AND .*status = \$\d+`

func TestCertificateDecideApplied(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCertificateRepository(db)

	mock.ExpectExec(decideGuard).WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := repo.Decide(context.Background(), uuid.New(),
		workflow.State{Status: workflow.StatusApproved, PaymentStatus: workflow.PaymentPending}, "")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateDecideLostRace(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCertificateRepository(db)

	// a concurrent admin already moved the row out of pending
	mock.ExpectExec(decideGuard).WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := repo.Decide(context.Background(), uuid.New(),
		workflow.State{Status: workflow.StatusRejected, PaymentStatus: workflow.PaymentNotRequired}, "duplicate")
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMassMarkPaidGuardsOnPendingPayment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMassBookingRepository(db)

	mock.ExpectExec(`UPDATE "mass_bookings" SET .*"paid_at".*"payment_id".*"payment_status".* WHERE id = \$\d+ AND`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := repo.MarkPaid(context.Background(), uuid.New(), "pi_123abc", time.Now())
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateSetDeliverable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCertificateRepository(db)

	mock.ExpectExec(`UPDATE "certificate_requests" SET .*"certificate_pdf".*"delivered_at"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	applied, err := repo.SetDeliverable(context.Background(), uuid.New(), "uploads/certificates/1-a.pdf", time.Now())
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOneNotFoundReturnsNil(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCertificateRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "certificate_requests" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.FindOne(context.Background(), specification.ByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
