package repository

import (
	"context"
	"errors"

	"salon-booking/internal/domain/entity"
	domainRepo "salon-booking/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentRepository struct{}

func NewTreatmentRepository() domainRepo.TreatmentRepository {
	return &treatmentRepository{}
}

func (r *treatmentRepository) Create(ctx context.Context, db *gorm.DB, treatment *entity.Treatment) error {
	return translateWriteError(db.WithContext(ctx).Create(treatment).Error)
}

func (r *treatmentRepository) FindAll(ctx context.Context, db *gorm.DB, activeOnly bool, limit, offset int) ([]entity.Treatment, int64, error) {
	var treatments []entity.Treatment
	var total int64

	query := db.WithContext(ctx).Model(&entity.Treatment{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Session(&gorm.Session{}).Order("name ASC").Limit(limit).Offset(offset).Find(&treatments).Error; err != nil {
		return nil, 0, err
	}

	return treatments, total, nil
}

func (r *treatmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Treatment, error) {
	var treatment entity.Treatment
	err := db.WithContext(ctx).Where("id = ?", id).First(&treatment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &treatment, nil
}

// FindByName matches a catalog name ignoring case.
func (r *treatmentRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Treatment, error) {
	var treatment entity.Treatment
	err := db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&treatment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &treatment, nil
}

func (r *treatmentRepository) Update(ctx context.Context, db *gorm.DB, treatment *entity.Treatment) error {
	return translateWriteError(db.WithContext(ctx).Save(treatment).Error)
}
