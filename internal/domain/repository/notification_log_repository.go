package repository

import (
	"context"

	"salon-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLogRepository interface {
	Create(ctx context.Context, db *gorm.DB, log *entity.NotificationLog) error
	FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) ([]entity.NotificationLog, error)
	// HasDelivered reports whether a message for action was sent while the
	// appointment held slot.
	HasDelivered(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID, action entity.NotificationAction, slot entity.Slot) (bool, error)
}
