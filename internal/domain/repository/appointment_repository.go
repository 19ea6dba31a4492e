package repository

import (
	"context"

	"salon-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindActiveByPhone(ctx context.Context, db *gorm.DB, phone string) ([]entity.Appointment, error)
	FindActiveByDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Appointment, error)
	CountActiveInSlot(ctx context.Context, db *gorm.DB, slot entity.Slot, excludingID *uuid.UUID) (int64, error)
	CancelAppointment(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
	UpdateSlot(ctx context.Context, db *gorm.DB, id uuid.UUID, slot entity.Slot) (int64, error)
}
