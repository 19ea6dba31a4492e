package service

import (
	"context"

	"salon-booking/internal/domain/entity"
	"salon-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SlotChecker answers whether a slot is held by a booked appointment.
// Cancelled appointments never occupy a slot.
type SlotChecker interface {
	IsOccupied(ctx context.Context, db *gorm.DB, slot entity.Slot, excludingID *uuid.UUID) (bool, error)
}

type slotChecker struct {
	appointmentRepo repository.AppointmentRepository
}

func NewSlotChecker(appointmentRepo repository.AppointmentRepository) SlotChecker {
	return &slotChecker{appointmentRepo: appointmentRepo}
}

// IsOccupied ignores the appointment with excludingID, so an appointment
// never conflicts with itself when rescheduled.
func (c *slotChecker) IsOccupied(ctx context.Context, db *gorm.DB, slot entity.Slot, excludingID *uuid.UUID) (bool, error) {
	count, err := c.appointmentRepo.CountActiveInSlot(ctx, db, slot, excludingID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
