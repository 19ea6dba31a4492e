package service

import (
	"context"
	"fmt"
	"time"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderService messages customers about appointments LeadDays ahead.
// An appointment gets at most one successfully sent reminder.
type ReminderService struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	notificationLogRepo repository.NotificationLogRepository
	dispatcher          NotificationDispatcher
	schedule            string
	leadDays            int
	cron                *cron.Cron
	now                 func() time.Time
}

func NewReminderService(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	notificationLogRepo repository.NotificationLogRepository,
	dispatcher NotificationDispatcher,
	schedule string,
	leadDays int,
) *ReminderService {
	return &ReminderService{
		db:                  db,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		notificationLogRepo: notificationLogRepo,
		dispatcher:          dispatcher,
		schedule:            schedule,
		leadDays:            leadDays,
		cron:                cron.New(),
		now:                 time.Now,
	}
}

// Start registers the reminder job and starts the scheduler.
func (s *ReminderService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if _, err := s.SendDueReminders(ctx); err != nil {
			s.log.Errorf("Reminder run failed: %+v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid reminder schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.Infof("Reminder scheduler started: schedule=%q, lead_days=%d", s.schedule, s.leadDays)
	return nil
}

// Stop waits for a running job to finish.
func (s *ReminderService) Stop() {
	<-s.cron.Stop().Done()
}

// SendDueReminders sends reminders for booked appointments on the target
// date and returns how many were sent.
func (s *ReminderService) SendDueReminders(ctx context.Context) (int, error) {
	date := s.now().AddDate(0, 0, s.leadDays).Format(entity.DateLayout)

	appointments, err := s.appointmentRepo.FindActiveByDate(ctx, s.db, date)
	if err != nil {
		return 0, fmt.Errorf("find appointments on %s: %w", date, err)
	}

	sent := 0
	for i := range appointments {
		appointment := &appointments[i]

		delivered, err := s.notificationLogRepo.HasDelivered(ctx, s.db, appointment.ID, entity.NotificationActionReminder, appointment.Slot())
		if err != nil {
			s.log.Warnf("Failed to check reminder state for appointment %s: %+v", appointment.ID, err)
			continue
		}
		if delivered {
			continue
		}

		result := s.dispatcher.Notify(ctx, &appointment.Customer, appointment, entity.NotificationActionReminder)
		if result.Status == entity.DeliveryStatusSent {
			sent++
		}
	}

	s.log.Infof("Reminder run for %s: %d appointment(s), %d reminder(s) sent", date, len(appointments), sent)
	return sent, nil
}
