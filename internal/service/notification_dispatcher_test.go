package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/notifier"
	"salon-booking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDispatcher(db *gorm.DB, n notifier.Notifier, timeout time.Duration) NotificationDispatcher {
	return NewNotificationDispatcher(db, quietLogger(), n, repository.NewNotificationLogRepository(),
		DefaultMessageTemplates(), "Pedicure Ana", timeout)
}

func bookedFor(t *testing.T, db *gorm.DB, customer *entity.Customer, slot entity.Slot) *entity.Appointment {
	t.Helper()
	appointment, err := newTestStore().Book(context.Background(), db, customer.ID, slot, "Luxe pedicure")
	require.NoError(t, err)
	return appointment
}

func TestNotificationDispatcher_SendsOnPreferredChannel(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeNotifier{}
	dispatcher := newTestDispatcher(db, fake, time.Second)
	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceWhatsApp)
	appointment := bookedFor(t, db, ana, slot10)

	result := dispatcher.Notify(context.Background(), ana, appointment, entity.NotificationActionConfirmed)

	assert.Equal(t, entity.DeliveryStatusSent, result.Status)
	assert.Equal(t, entity.PreferenceWhatsApp, result.Channel)
	assert.Equal(t, "WhatsApp sent!", result.Text())

	messages := fake.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "+321", messages[0].to)
	assert.Equal(t, notifier.ChannelWhatsApp, messages[0].channel)
	assert.Equal(t, "Hi Ana, your appointment for Luxe pedicure at Pedicure Ana on 2024-06-01 at 10:00 is confirmed.", messages[0].body)

	logs, err := repository.NewNotificationLogRepository().FindByAppointmentID(context.Background(), db, appointment.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.DeliveryStatusSent, logs[0].Status)
	assert.Equal(t, "SM+321", logs[0].ProviderID)
}

func TestNotificationDispatcher_Disabled(t *testing.T) {
	db := newTestDB(t)
	dispatcher := newTestDispatcher(db, notifier.Disabled{}, time.Second)
	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceSMS)
	appointment := bookedFor(t, db, ana, slot10)

	result := dispatcher.Notify(context.Background(), ana, appointment, entity.NotificationActionCancelled)

	assert.Equal(t, entity.DeliveryStatusDisabled, result.Status)
	assert.Equal(t, "SMS/WhatsApp disabled", result.Text())
}

func TestNotificationDispatcher_TransportFailure(t *testing.T) {
	db := newTestDB(t)
	dispatcher := newTestDispatcher(db, &fakeNotifier{err: errors.New("unreachable")}, time.Second)
	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceSMS)
	appointment := bookedFor(t, db, ana, slot10)

	result := dispatcher.Notify(context.Background(), ana, appointment, entity.NotificationActionMoved)

	assert.Equal(t, entity.DeliveryStatusFailed, result.Status)
	assert.Equal(t, "Failed: unreachable", result.Text())

	logs, err := repository.NewNotificationLogRepository().FindByAppointmentID(context.Background(), db, appointment.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "unreachable", logs[0].ErrorMessage)
}

func TestNotificationDispatcher_Timeout(t *testing.T) {
	db := newTestDB(t)
	dispatcher := newTestDispatcher(db, &fakeNotifier{block: true}, 20*time.Millisecond)
	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceSMS)
	appointment := bookedFor(t, db, ana, slot10)

	start := time.Now()
	result := dispatcher.Notify(context.Background(), ana, appointment, entity.NotificationActionConfirmed)

	assert.Equal(t, entity.DeliveryStatusFailed, result.Status)
	assert.Contains(t, result.Reason, "timed out")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestNotificationDispatcher_IgnoresCallerCancellation(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeNotifier{}
	dispatcher := newTestDispatcher(db, fake, time.Second)
	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceSMS)
	appointment := bookedFor(t, db, ana, slot10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := dispatcher.Notify(ctx, ana, appointment, entity.NotificationActionConfirmed)
	assert.Equal(t, entity.DeliveryStatusSent, result.Status)
	assert.Len(t, fake.messages(), 1)
}

func TestNotificationDispatcher_UnknownPreferenceFallsBackToSMS(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeNotifier{}
	dispatcher := newTestDispatcher(db, fake, time.Second)
	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceSMS)
	appointment := bookedFor(t, db, ana, slot10)
	ana.NotificationPreference = "pigeon"

	result := dispatcher.Notify(context.Background(), ana, appointment, entity.NotificationActionConfirmed)

	assert.Equal(t, entity.PreferenceSMS, result.Channel)
	require.Len(t, fake.messages(), 1)
	assert.Equal(t, notifier.ChannelSMS, fake.messages()[0].channel)
}
