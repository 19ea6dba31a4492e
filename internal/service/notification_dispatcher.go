package service

import (
	"context"
	"errors"
	"time"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/notifier"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// NotificationDispatcher turns an appointment event into one outbound
// message. It never fails the caller: every outcome is a DeliveryResult.
type NotificationDispatcher interface {
	Notify(ctx context.Context, customer *entity.Customer, appointment *entity.Appointment, action entity.NotificationAction) entity.DeliveryResult
}

type notificationDispatcher struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	notifier            notifier.Notifier
	notificationLogRepo repository.NotificationLogRepository
	templates           MessageTemplates
	salonName           string
	timeout             time.Duration
}

func NewNotificationDispatcher(
	db *gorm.DB,
	log *logrus.Logger,
	n notifier.Notifier,
	notificationLogRepo repository.NotificationLogRepository,
	templates MessageTemplates,
	salonName string,
	timeout time.Duration,
) NotificationDispatcher {
	return &notificationDispatcher{
		db:                  db,
		log:                 log,
		notifier:            n,
		notificationLogRepo: notificationLogRepo,
		templates:           templates,
		salonName:           salonName,
		timeout:             timeout,
	}
}

type sendOutcome struct {
	messageID string
	err       error
}

func (d *notificationDispatcher) Notify(ctx context.Context, customer *entity.Customer, appointment *entity.Appointment, action entity.NotificationAction) entity.DeliveryResult {
	if customer == nil || appointment == nil {
		return entity.DeliveryResult{Status: entity.DeliveryStatusSkipped, Reason: "no recipient"}
	}

	// Unknown preferences fall back to SMS.
	channel := customer.NotificationPreference
	if !channel.IsValid() {
		channel = entity.PreferenceSMS
	}

	body, err := d.templates.Render(action, MessageData{
		Name:      customer.Name,
		Date:      appointment.SlotDate,
		Time:      appointment.SlotTime,
		Treatment: appointment.Treatment,
		Salon:     d.salonName,
	})
	if err != nil {
		d.log.Errorf("Failed to render %s message for appointment %s: %+v", action, appointment.ID, err)
		return d.record(ctx, customer, appointment, action, "", entity.DeliveryResult{
			Status: entity.DeliveryStatusFailed, Channel: channel, Reason: err.Error(),
		})
	}

	transport := notifier.Channel(channel)
	if !d.notifier.Enabled(transport) {
		return d.record(ctx, customer, appointment, action, body, entity.DeliveryResult{
			Status: entity.DeliveryStatusDisabled, Channel: channel, Reason: notifier.ErrDisabled.Error(),
		})
	}

	// The booking is already committed; a client that goes away must not
	// cut the send short, only the timeout may.
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
	defer cancel()

	done := make(chan sendOutcome, 1)
	go func() {
		id, err := d.notifier.Send(sendCtx, customer.Phone, transport, body)
		done <- sendOutcome{messageID: id, err: err}
	}()

	var result entity.DeliveryResult
	select {
	case outcome := <-done:
		switch {
		case outcome.err == nil:
			result = entity.DeliveryResult{Status: entity.DeliveryStatusSent, Channel: channel, MessageID: outcome.messageID}
		case errors.Is(outcome.err, notifier.ErrDisabled):
			result = entity.DeliveryResult{Status: entity.DeliveryStatusDisabled, Channel: channel, Reason: outcome.err.Error()}
		default:
			result = entity.DeliveryResult{Status: entity.DeliveryStatusFailed, Channel: channel, Reason: outcome.err.Error()}
		}
	case <-sendCtx.Done():
		result = entity.DeliveryResult{Status: entity.DeliveryStatusFailed, Channel: channel, Reason: "timed out after " + d.timeout.String()}
	}

	if result.Status == entity.DeliveryStatusFailed {
		d.log.Warnf("Failed to send %s %s message for appointment %s: %s", channel, action, appointment.ID, result.Reason)
	}

	return d.record(ctx, customer, appointment, action, body, result)
}

// record stores the attempt. A failed insert is logged and does not change
// the result.
func (d *notificationDispatcher) record(ctx context.Context, customer *entity.Customer, appointment *entity.Appointment, action entity.NotificationAction, body string, result entity.DeliveryResult) entity.DeliveryResult {
	entry := &entity.NotificationLog{
		AppointmentID: appointment.ID,
		CustomerID:    customer.ID,
		Action:        action,
		SlotDate:      appointment.SlotDate,
		SlotTime:      appointment.SlotTime,
		Channel:       result.Channel,
		Status:        result.Status,
		Destination:   customer.Phone,
		Message:       body,
		ProviderID:    result.MessageID,
		ErrorMessage:  result.Reason,
	}

	if err := d.notificationLogRepo.Create(context.WithoutCancel(ctx), d.db, entry); err != nil {
		d.log.Warnf("Failed to record notification for appointment %s: %+v", appointment.ID, err)
	}
	return result
}
