package repository

import (
	"context"

	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationLogRepository struct{}

func NewNotificationLogRepository() domainRepo.NotificationLogRepository {
	return &notificationLogRepository{}
}

func (r *notificationLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.NotificationLog) error {
	return db.WithContext(ctx).Create(log).Error
}

func (r *notificationLogRepository) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) ([]entity.NotificationLog, error) {
	var logs []entity.NotificationLog
	err := db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *notificationLogRepository) HasDelivered(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID, action entity.NotificationAction, slot entity.Slot) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.NotificationLog{}).
		Where("appointment_id = ? AND action = ? AND status = ?", appointmentID, action, entity.DeliveryStatusSent).
		Where("slot_date = ? AND slot_time = ?", slot.Date, slot.Time).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
