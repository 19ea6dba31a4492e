package repository

import (
	"context"
	"errors"

	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	err := db.WithContext(ctx).Omit(clause.Associations).Create(appointment).Error
	return translateWriteError(err)
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Preload("Customer").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

// FindByIDForUpdate locks the row until the surrounding transaction ends.
// SQLite has no row locks; its single writer already serialises updates.
func (r *appointmentRepository) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	query := db.WithContext(ctx)
	if db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var appointment entity.Appointment
	err := query.Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindActiveByPhone(ctx context.Context, db *gorm.DB, phone string) ([]entity.Appointment, error) {
	customerIDs := db.Session(&gorm.Session{NewDB: true}).
		Model(&entity.Customer{}).
		Select("id").
		Where("phone = ?", phone)

	var appointments []entity.Appointment
	err := db.WithContext(ctx).Preload("Customer").
		Where("customer_id IN (?) AND status = ?", customerIDs, entity.AppointmentStatusBooked).
		Order("slot_date ASC, slot_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveByDate(ctx context.Context, db *gorm.DB, date string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).Preload("Customer").
		Where("slot_date = ? AND status = ?", date, entity.AppointmentStatusBooked).
		Order("slot_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountActiveInSlot(ctx context.Context, db *gorm.DB, slot entity.Slot, excludingID *uuid.UUID) (int64, error) {
	query := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("slot_date = ? AND slot_time = ? AND status = ?", slot.Date, slot.Time, entity.AppointmentStatusBooked)
	if excludingID != nil {
		query = query.Where("id <> ?", *excludingID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CancelAppointment cancels only a booked appointment.
// Returns affected rows: 1 = cancelled now, 0 = unknown or already cancelled.
func (r *appointmentRepository) CancelAppointment(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusBooked).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}

// UpdateSlot moves a booked appointment. Returns 0 affected rows when the
// appointment is no longer booked.
func (r *appointmentRepository) UpdateSlot(ctx context.Context, db *gorm.DB, id uuid.UUID, slot entity.Slot) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.AppointmentStatusBooked).
		Updates(map[string]interface{}{
			"slot_date": slot.Date,
			"slot_time": slot.Time,
		})
	return result.RowsAffected, translateWriteError(result.Error)
}
