package repository

import (
	"context"

	"salon-booking/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, treatment *entity.Treatment) error
	FindAll(ctx context.Context, db *gorm.DB, activeOnly bool, limit, offset int) ([]entity.Treatment, int64, error)
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Treatment, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Treatment, error)
	Update(ctx context.Context, db *gorm.DB, treatment *entity.Treatment) error
}
