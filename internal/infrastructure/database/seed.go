package database

import (
	"fmt"

	"salon-booking/internal/domain/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultTreatments is the catalog a fresh installation starts with. The
// postgres migration seeds the same rows.
func DefaultTreatments() []entity.Treatment {
	return []entity.Treatment{
		{Name: "Basic pedicure", DurationMinutes: 45, Price: decimal.RequireFromString("35.00"), IsActive: true},
		{Name: "Luxe pedicure", DurationMinutes: 60, Price: decimal.RequireFromString("50.00"), IsActive: true},
		{Name: "Medical pedicure", DurationMinutes: 60, Price: decimal.RequireFromString("55.00"), IsActive: true},
		{Name: "Gel polish", DurationMinutes: 30, Price: decimal.RequireFromString("25.00"), IsActive: true},
		{Name: "Foot massage", DurationMinutes: 30, Price: decimal.RequireFromString("30.00"), IsActive: true},
	}
}

// SeedTreatments inserts the default catalog, leaving existing names alone.
func SeedTreatments(db *gorm.DB) error {
	treatments := DefaultTreatments()
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&treatments).Error
	if err != nil {
		return fmt.Errorf("seed treatments: %w", err)
	}
	return nil
}
