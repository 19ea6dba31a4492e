package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"salon-booking/internal/converter"
	"salon-booking/internal/delivery/dto"
	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"
	"salon-booking/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BookingUsecase is the entry point for customer requests. Every call is
// self-contained: state changes commit first, then one message is sent.
type BookingUsecase interface {
	RequestBooking(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResultResponse, error)
	Lookup(ctx context.Context, phone string) (*dto.AppointmentListResponse, error)
	RequestCancel(ctx context.Context, id uuid.UUID) (*dto.CancelAppointmentResponse, error)
	RequestReschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResultResponse, error)
	GetNotifications(ctx context.Context, id uuid.UUID) (*dto.NotificationLogListResponse, error)
}

type bookingUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	customerRepo        repository.CustomerRepository
	treatmentRepo       repository.TreatmentRepository
	notificationLogRepo repository.NotificationLogRepository
	appointmentStore    service.AppointmentStore
	dispatcher          service.NotificationDispatcher
	auditService        service.AuditService
}

func NewBookingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	customerRepo repository.CustomerRepository,
	treatmentRepo repository.TreatmentRepository,
	notificationLogRepo repository.NotificationLogRepository,
	appointmentStore service.AppointmentStore,
	dispatcher service.NotificationDispatcher,
	auditService service.AuditService,
) BookingUsecase {
	return &bookingUsecase{
		db:                  db,
		log:                 log,
		customerRepo:        customerRepo,
		treatmentRepo:       treatmentRepo,
		notificationLogRepo: notificationLogRepo,
		appointmentStore:    appointmentStore,
		dispatcher:          dispatcher,
		auditService:        auditService,
	}
}

type bookingInput struct {
	name       string
	phone      string
	email      string
	preference entity.NotificationPreference
	slot       entity.Slot
	treatment  string
}

// RequestBooking registers or refreshes the customer and books the slot in
// one transaction. On ErrSlotTaken nothing is stored and nothing is sent.
func (u *bookingUsecase) RequestBooking(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResultResponse, error) {
	in, err := u.validateBooking(ctx, req)
	if err != nil {
		return nil, err
	}

	var customer *entity.Customer
	var appointment *entity.Appointment

	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		customer, err = u.customerRepo.Upsert(ctx, tx, &entity.Customer{
			Name:                   in.name,
			Phone:                  in.phone,
			Email:                  in.email,
			NotificationPreference: in.preference,
		})
		if err != nil {
			return fmt.Errorf("upsert customer: %w", err)
		}

		if err := u.auditService.LogUpdate(ctx, tx, entity.AuditActionCustomerUpsert, entity.AuditEntityCustomer, customer.ID.String(),
			nil, map[string]interface{}{"notification_preference": customer.NotificationPreference}); err != nil {
			return err
		}

		appointment, err = u.appointmentStore.Book(ctx, tx, customer.ID, in.slot, in.treatment)
		return err
	})
	if err != nil {
		if errors.Is(err, service.ErrSlotTaken) {
			u.log.Infof("Booking rejected, slot %s is taken", in.slot)
			return nil, err
		}
		u.log.Errorf("Failed to book slot %s: %+v", in.slot, err)
		return nil, err
	}

	delivery := u.dispatcher.Notify(ctx, customer, appointment, entity.NotificationActionConfirmed)

	return &dto.AppointmentResultResponse{
		Appointment:  *converter.AppointmentToResponse(appointment, customer),
		Notification: converter.DeliveryToResponse(delivery),
	}, nil
}

// Lookup lists the booked appointments of a phone number, earliest first.
func (u *bookingUsecase) Lookup(ctx context.Context, phone string) (*dto.AppointmentListResponse, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, &ValidationError{Fields: map[string]string{"phone": "phone is required"}}
	}

	appointments, err := u.appointmentStore.FindActiveByPhone(ctx, u.db, phone)
	if err != nil {
		u.log.Warnf("Failed to look up appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

// RequestCancel cancels a booked appointment and tells the customer which
// slot was cancelled. Unknown or already cancelled ids succeed without a
// message.
func (u *bookingUsecase) RequestCancel(ctx context.Context, id uuid.UUID) (*dto.CancelAppointmentResponse, error) {
	skipped := &dto.CancelAppointmentResponse{
		AppointmentID: id,
		Cancelled:     false,
		Notification: converter.DeliveryToResponse(entity.DeliveryResult{
			Status: entity.DeliveryStatusSkipped,
			Reason: "no booked appointment with this id",
		}),
	}

	// The store returns the row as it was locked, so the message names the
	// slot that was actually freed.
	cancelled, err := u.appointmentStore.Cancel(ctx, u.db, id)
	if err != nil {
		u.log.Errorf("Failed to cancel appointment %s: %+v", id, err)
		return nil, err
	}
	if cancelled == nil {
		return skipped, nil
	}

	customer, err := u.customerRepo.FindByID(ctx, u.db, cancelled.CustomerID)
	if err != nil {
		// Already committed; report success without a message.
		u.log.Warnf("Failed to load customer %s after cancel: %+v", cancelled.CustomerID, err)
	}

	delivery := entity.DeliveryResult{Status: entity.DeliveryStatusSkipped, Reason: "customer not found"}
	if customer != nil {
		delivery = u.dispatcher.Notify(ctx, customer, cancelled, entity.NotificationActionCancelled)
	}

	return &dto.CancelAppointmentResponse{
		AppointmentID: id,
		Cancelled:     true,
		Notification:  converter.DeliveryToResponse(delivery),
	}, nil
}

// RequestReschedule moves a booked appointment and tells the customer the
// new slot. On conflict the appointment keeps its slot and nothing is sent.
func (u *bookingUsecase) RequestReschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResultResponse, error) {
	errs := fieldErrors{}
	slot := parseSlot(req.Date, req.Time, errs)
	if err := errs.err(); err != nil {
		return nil, err
	}

	moved, err := u.appointmentStore.Reschedule(ctx, u.db, id, slot)
	if err != nil {
		if !IsDomainError(err) {
			u.log.Errorf("Failed to reschedule appointment %s: %+v", id, err)
		}
		return nil, err
	}

	customer, err := u.customerRepo.FindByID(ctx, u.db, moved.CustomerID)
	if err != nil {
		// Already committed; report success without a message.
		u.log.Warnf("Failed to load customer %s after reschedule: %+v", moved.CustomerID, err)
	}

	var delivery entity.DeliveryResult
	if customer != nil {
		delivery = u.dispatcher.Notify(ctx, customer, moved, entity.NotificationActionMoved)
	} else {
		delivery = entity.DeliveryResult{Status: entity.DeliveryStatusSkipped, Reason: "customer not found"}
	}

	return &dto.AppointmentResultResponse{
		Appointment:  *converter.AppointmentToResponse(moved, customer),
		Notification: converter.DeliveryToResponse(delivery),
	}, nil
}

// GetNotifications lists the messages sent for an appointment.
func (u *bookingUsecase) GetNotifications(ctx context.Context, id uuid.UUID) (*dto.NotificationLogListResponse, error) {
	appointment, err := u.appointmentStore.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, service.ErrAppointmentNotFound
	}

	logs, err := u.notificationLogRepo.FindByAppointmentID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find notifications for appointment %s: %+v", id, err)
		return nil, err
	}

	return &dto.NotificationLogListResponse{
		Notifications: converter.NotificationLogsToResponses(logs),
		Total:         len(logs),
	}, nil
}

func (u *bookingUsecase) validateBooking(ctx context.Context, req *dto.CreateAppointmentRequest) (*bookingInput, error) {
	errs := fieldErrors{}
	in := &bookingInput{
		name:      strings.TrimSpace(req.Name),
		phone:     strings.TrimSpace(req.Phone),
		email:     strings.TrimSpace(req.Email),
		treatment: strings.TrimSpace(req.Treatment),
	}

	if in.name == "" {
		errs.add("name", "name is required")
	}
	if in.phone == "" {
		errs.add("phone", "phone is required")
	}

	if strings.TrimSpace(req.Preference) == "" {
		errs.add("preference", "preference is required")
	} else if pref, ok := entity.ParseNotificationPreference(req.Preference); ok {
		in.preference = pref
	} else {
		errs.add("preference", "preference must be sms or whatsapp")
	}

	in.slot = parseSlot(req.Date, req.Time, errs)

	if in.treatment != "" {
		treatment, err := u.treatmentRepo.FindByName(ctx, u.db, in.treatment)
		if err != nil {
			u.log.Warnf("Failed to find treatment %q: %+v", in.treatment, err)
			return nil, err
		}
		if treatment == nil || !treatment.IsActive {
			errs.add("treatment", "treatment is not offered")
		} else {
			in.treatment = treatment.Name
		}
	}

	if err := errs.err(); err != nil {
		return nil, err
	}
	return in, nil
}

func parseSlot(date, clock string, errs fieldErrors) entity.Slot {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)

	switch {
	case date == "":
		errs.add("date", "date is required")
	case !matchesLayout(entity.DateLayout, date):
		errs.add("date", "date must be formatted as YYYY-MM-DD")
	}

	switch {
	case clock == "":
		errs.add("time", "time is required")
	case !matchesLayout(entity.ClockLayout, clock):
		errs.add("time", "time must be formatted as HH:MM")
	}

	slot, err := entity.ParseSlot(date, clock)
	if err != nil {
		return entity.Slot{}
	}
	return slot
}

func matchesLayout(layout, value string) bool {
	_, err := time.Parse(layout, value)
	return err == nil
}
