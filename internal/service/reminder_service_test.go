package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderService_SendDueReminders(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeNotifier{}
	dispatcher := newTestDispatcher(db, fake, time.Second)
	store := newTestStore()
	ctx := context.Background()

	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceSMS)
	bob := seedCustomer(t, db, "Bob", "+999", entity.PreferenceWhatsApp)

	_, err := store.Book(ctx, db, ana.ID, entity.Slot{Date: "2024-06-02", Time: "10:00"}, "")
	require.NoError(t, err)
	cancelled, err := store.Book(ctx, db, bob.ID, entity.Slot{Date: "2024-06-02", Time: "11:00"}, "")
	require.NoError(t, err)
	_, err = store.Cancel(ctx, db, cancelled.ID)
	require.NoError(t, err)
	_, err = store.Book(ctx, db, bob.ID, entity.Slot{Date: "2024-06-03", Time: "11:00"}, "")
	require.NoError(t, err)

	reminders := NewReminderService(db, quietLogger(), repository.NewAppointmentRepository(),
		repository.NewNotificationLogRepository(), dispatcher, "0 9 * * *", 1)
	reminders.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	sent, err := reminders.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	messages := fake.messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "+321", messages[0].to)
	assert.Contains(t, messages[0].body, "a reminder of your appointment")

	// A second run does not remind twice.
	sent, err = reminders.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)
	assert.Len(t, fake.messages(), 1)
}

func TestReminderService_RemindsAgainAfterReschedule(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeNotifier{}
	dispatcher := newTestDispatcher(db, fake, time.Second)
	store := newTestStore()
	ctx := context.Background()

	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceSMS)
	booked, err := store.Book(ctx, db, ana.ID, entity.Slot{Date: "2024-06-02", Time: "10:00"}, "")
	require.NoError(t, err)

	reminders := NewReminderService(db, quietLogger(), repository.NewAppointmentRepository(),
		repository.NewNotificationLogRepository(), dispatcher, "0 9 * * *", 1)
	reminders.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	sent, err := reminders.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	_, err = store.Reschedule(ctx, db, booked.ID, entity.Slot{Date: "2024-06-03", Time: "14:00"})
	require.NoError(t, err)

	reminders.now = func() time.Time { return time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC) }
	sent, err = reminders.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	messages := fake.messages()
	require.Len(t, messages, 2)
	assert.Contains(t, messages[1].body, "on 2024-06-03 at 14:00")

	logs, err := repository.NewNotificationLogRepository().FindByAppointmentID(ctx, db, booked.ID)
	require.NoError(t, err)
	dates := make([]string, 0, len(logs))
	for _, l := range logs {
		dates = append(dates, l.SlotDate)
	}
	assert.ElementsMatch(t, []string{"2024-06-02", "2024-06-03"}, dates)
}

func TestReminderService_RetriesFailedReminders(t *testing.T) {
	db := newTestDB(t)
	fake := &fakeNotifier{err: errors.New("unreachable")}
	dispatcher := newTestDispatcher(db, fake, time.Second)
	ctx := context.Background()

	ana := seedCustomer(t, db, "Ana", "+321", entity.PreferenceSMS)
	_, err := newTestStore().Book(ctx, db, ana.ID, entity.Slot{Date: "2024-06-02", Time: "10:00"}, "")
	require.NoError(t, err)

	reminders := NewReminderService(db, quietLogger(), repository.NewAppointmentRepository(),
		repository.NewNotificationLogRepository(), dispatcher, "0 9 * * *", 1)
	reminders.now = func() time.Time { return time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC) }

	sent, err := reminders.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, sent)

	fake.err = nil
	sent, err = reminders.SendDueReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestReminderService_StartRejectsBadSchedule(t *testing.T) {
	reminders := NewReminderService(nil, quietLogger(), nil, nil, nil, "every tuesday", 1)

	assert.Error(t, reminders.Start())
}
