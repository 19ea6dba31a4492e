package usecase

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"salon-booking/internal/infrastructure/database"
	"salon-booking/internal/notifier"
	"salon-booking/internal/repository"
	"salon-booking/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMessage struct {
	to      string
	channel notifier.Channel
	body    string
}

type fakeNotifier struct {
	mu   sync.Mutex
	err  error
	sent []sentMessage
}

func (f *fakeNotifier) Enabled(notifier.Channel) bool {
	return true
}

func (f *fakeNotifier) Send(_ context.Context, to string, channel notifier.Channel, body string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, sentMessage{to: to, channel: channel, body: body})
	return "SM1", nil
}

func (f *fakeNotifier) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}

type testEnv struct {
	db        *gorm.DB
	notifier  *fakeNotifier
	bookings  BookingUsecase
	treatment TreatmentUsecase
	audits    AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, nil)
}

// newTestEnvWithStore lets a test wrap the appointment store, e.g. to
// interleave another write with the call under test.
func newTestEnvWithStore(t *testing.T, wrap func(service.AppointmentStore) service.AppointmentStore) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "test.db"), "test", log)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	require.NoError(t, database.SeedTreatments(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	customerRepo := repository.NewCustomerRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	treatmentRepo := repository.NewTreatmentRepository()
	notificationLogRepo := repository.NewNotificationLogRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditLogRepo)
	var store service.AppointmentStore = service.NewAppointmentStore(log, appointmentRepo, service.NewSlotChecker(appointmentRepo), auditService)
	if wrap != nil {
		store = wrap(store)
	}

	fake := &fakeNotifier{}
	dispatcher := service.NewNotificationDispatcher(db, log, fake, notificationLogRepo,
		service.DefaultMessageTemplates(), "Pedicure Ana", time.Second)

	return &testEnv{
		db:        db,
		notifier:  fake,
		bookings:  NewBookingUsecase(db, log, customerRepo, treatmentRepo, notificationLogRepo, store, dispatcher, auditService),
		treatment: NewTreatmentUsecase(db, log, treatmentRepo, auditService),
		audits:    NewAuditLogUsecase(db, log, auditLogRepo),
	}
}
