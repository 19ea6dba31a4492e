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

type customerRepository struct{}

func NewCustomerRepository() domainRepo.CustomerRepository {
	return &customerRepository{}
}

func (r *customerRepository) Upsert(ctx context.Context, db *gorm.DB, customer *entity.Customer) (*entity.Customer, error) {
	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"notification_preference", "updated_at"}),
	}).Create(customer).Error
	if err != nil {
		return nil, err
	}

	// The generated id is discarded on conflict, so read back the stored row.
	stored, err := r.FindByPhone(ctx, db, customer.Phone)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return stored, nil
}

func (r *customerRepository) FindByPhone(ctx context.Context, db *gorm.DB, phone string) (*entity.Customer, error) {
	var customer entity.Customer
	err := db.WithContext(ctx).Where("phone = ?", phone).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := db.WithContext(ctx).Where("id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}
