package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Treatment is an entry of the offered service list. Appointments store the
// treatment name, so inactive treatments stay readable on old bookings.
type Treatment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name            string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_treatments_name"`
	Description     string          `gorm:"type:text"`
	DurationMinutes int             `gorm:"not null;default:30"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	IsActive        bool            `gorm:"not null"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

func (Treatment) TableName() string {
	return "treatments"
}

func (t *Treatment) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
