package service

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/infrastructure/database"
	"salon-booking/internal/notifier"
	"salon-booking/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "test.db"), "test", quietLogger())
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestStore() AppointmentStore {
	appointmentRepo := repository.NewAppointmentRepository()
	return NewAppointmentStore(
		quietLogger(),
		appointmentRepo,
		NewSlotChecker(appointmentRepo),
		NewAuditService(quietLogger(), repository.NewAuditLogRepository()),
	)
}

func seedCustomer(t *testing.T, db *gorm.DB, name, phone string, pref entity.NotificationPreference) *entity.Customer {
	t.Helper()
	customer, err := repository.NewCustomerRepository().Upsert(context.Background(), db, &entity.Customer{
		Name:                   name,
		Phone:                  phone,
		NotificationPreference: pref,
	})
	require.NoError(t, err)
	return customer
}

type sentMessage struct {
	to      string
	channel notifier.Channel
	body    string
}

// fakeNotifier records messages. block makes Send wait until the context
// ends, err makes it fail.
type fakeNotifier struct {
	mu       sync.Mutex
	disabled bool
	block    bool
	err      error
	sent     []sentMessage
}

func (f *fakeNotifier) Enabled(notifier.Channel) bool {
	return !f.disabled
}

func (f *fakeNotifier) Send(ctx context.Context, to string, channel notifier.Channel, body string) (string, error) {
	if f.block {
		<-ctx.Done()
		time.Sleep(10 * time.Millisecond)
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{to: to, channel: channel, body: body})
	return "SM" + to, nil
}

func (f *fakeNotifier) messages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.sent...)
}
