package repository

import (
	"context"

	"salon-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	// Upsert inserts the customer or, when the phone is already known,
	// refreshes only its notification preference. It returns the stored row.
	Upsert(ctx context.Context, db *gorm.DB, customer *entity.Customer) (*entity.Customer, error)
	FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*entity.Customer, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Customer, error)
}
