package service

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AppointmentStore owns the appointment state machine:
//
//	booked --cancel-->     cancelled (terminal)
//	booked --reschedule--> booked (new slot)
//
// Every write runs in its own transaction, or as a savepoint when db is
// already a transaction. The partial unique index on booked slots backs the
// occupancy check, so two writers racing for one slot cannot both commit.
type AppointmentStore interface {
	Book(ctx context.Context, db *gorm.DB, customerID uuid.UUID, slot entity.Slot, treatment string) (*entity.Appointment, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindActiveByPhone(ctx context.Context, db *gorm.DB, phone string) ([]entity.Appointment, error)
	Cancel(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	Reschedule(ctx context.Context, db *gorm.DB, id uuid.UUID, slot entity.Slot) (*entity.Appointment, error)
}

type appointmentStore struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	slotChecker     SlotChecker
	auditService    AuditService
}

func NewAppointmentStore(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	slotChecker SlotChecker,
	auditService AuditService,
) AppointmentStore {
	return &appointmentStore{
		log:             log,
		appointmentRepo: appointmentRepo,
		slotChecker:     slotChecker,
		auditService:    auditService,
	}
}

// Book creates a booked appointment in a free slot or returns ErrSlotTaken.
func (s *appointmentStore) Book(ctx context.Context, db *gorm.DB, customerID uuid.UUID, slot entity.Slot, treatment string) (*entity.Appointment, error) {
	appointment := &entity.Appointment{
		CustomerID: customerID,
		SlotDate:   slot.Date,
		SlotTime:   slot.Time,
		Treatment:  treatment,
		Status:     entity.AppointmentStatusBooked,
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		occupied, err := s.slotChecker.IsOccupied(ctx, tx, slot, nil)
		if err != nil {
			return fmt.Errorf("check slot %s: %w", slot, err)
		}
		if occupied {
			return ErrSlotTaken
		}

		if err := s.appointmentRepo.Create(ctx, tx, appointment); err != nil {
			if errors.Is(err, repository.ErrUniqueViolation) {
				return ErrSlotTaken
			}
			return fmt.Errorf("create appointment: %w", err)
		}

		return s.auditService.LogCreate(ctx, tx, entity.AuditActionAppointmentBook, entity.AuditEntityAppointment,
			appointment.ID.String(), appointmentAuditValue(appointment))
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Appointment booked: id=%s, customer=%s, slot=%s", appointment.ID, customerID, slot)
	return appointment, nil
}

func (s *appointmentStore) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, db, id)
	if err != nil {
		return nil, fmt.Errorf("find appointment %s: %w", id, err)
	}
	return appointment, nil
}

// FindActiveByPhone lists booked appointments of the customer with this
// phone, earliest slot first.
func (s *appointmentStore) FindActiveByPhone(ctx context.Context, db *gorm.DB, phone string) ([]entity.Appointment, error) {
	appointments, err := s.appointmentRepo.FindActiveByPhone(ctx, db, phone)
	if err != nil {
		return nil, fmt.Errorf("find appointments for phone: %w", err)
	}
	return appointments, nil
}

// Cancel moves a booked appointment to cancelled and returns it with the
// slot it held at that moment. Unknown and already cancelled ids are no-ops
// and return nil.
func (s *appointmentStore) Cancel(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var cancelled *entity.Appointment

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.appointmentRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("find appointment %s: %w", id, err)
		}
		if current == nil || !current.IsBooked() {
			return nil
		}

		affected, err := s.appointmentRepo.CancelAppointment(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("cancel appointment %s: %w", id, err)
		}
		if affected == 0 {
			return nil
		}

		current.Status = entity.AppointmentStatusCancelled
		cancelled = current

		return s.auditService.LogUpdate(ctx, tx, entity.AuditActionAppointmentCancel, entity.AuditEntityAppointment, id.String(),
			map[string]interface{}{"status": entity.AppointmentStatusBooked},
			appointmentAuditValue(current))
	})
	if err != nil {
		return nil, err
	}

	if cancelled != nil {
		s.log.Infof("Appointment cancelled: id=%s, slot=%s", id, cancelled.Slot())
	}
	return cancelled, nil
}

// Reschedule moves a booked appointment to slot. Moving an appointment to
// the slot it already holds succeeds.
func (s *appointmentStore) Reschedule(ctx context.Context, db *gorm.DB, id uuid.UUID, slot entity.Slot) (*entity.Appointment, error) {
	var moved *entity.Appointment

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := s.appointmentRepo.FindByIDForUpdate(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("find appointment %s: %w", id, err)
		}
		if current == nil {
			return ErrAppointmentNotFound
		}
		if current.IsCancelled() {
			return ErrAppointmentCancelled
		}

		occupied, err := s.slotChecker.IsOccupied(ctx, tx, slot, &id)
		if err != nil {
			return fmt.Errorf("check slot %s: %w", slot, err)
		}
		if occupied {
			return ErrSlotTaken
		}

		previous := current.Slot()
		affected, err := s.appointmentRepo.UpdateSlot(ctx, tx, id, slot)
		if err != nil {
			if errors.Is(err, repository.ErrUniqueViolation) {
				return ErrSlotTaken
			}
			return fmt.Errorf("move appointment %s: %w", id, err)
		}
		if affected == 0 {
			// Cancelled between the read and the update.
			return ErrAppointmentCancelled
		}

		current.SlotDate = slot.Date
		current.SlotTime = slot.Time
		moved = current

		return s.auditService.LogUpdate(ctx, tx, entity.AuditActionAppointmentReschedule, entity.AuditEntityAppointment, id.String(),
			slotAuditValue(previous), slotAuditValue(slot))
	})
	if err != nil {
		return nil, err
	}

	s.log.Infof("Appointment rescheduled: id=%s, slot=%s", id, slot)
	return moved, nil
}

func appointmentAuditValue(a *entity.Appointment) map[string]interface{} {
	return map[string]interface{}{
		"customer_id": a.CustomerID.String(),
		"slot_date":   a.SlotDate,
		"slot_time":   a.SlotTime,
		"treatment":   a.Treatment,
		"status":      a.Status,
	}
}

func slotAuditValue(slot entity.Slot) map[string]interface{} {
	return map[string]interface{}{
		"slot_date": slot.Date,
		"slot_time": slot.Time,
	}
}
