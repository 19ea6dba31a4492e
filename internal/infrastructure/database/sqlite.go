package database

import (
	"fmt"

	"salon-booking/internal/domain/entity"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// activeSlotIndex mirrors the partial unique index of the postgres migrations.
const activeSlotIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
	ON appointments (slot_date, slot_time) WHERE status = 'booked'`

// NewSQLiteConnection opens a file backed SQLite database for local runs and
// tests. SQLite allows one writer, so the pool is pinned to one connection.
func NewSQLiteConnection(path string, env string, log *logrus.Logger) (*gorm.DB, error) {
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger(env),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Infof("Using SQLite database at %s", path)

	return db, nil
}

// AutoMigrate creates the schema from the entities. Used for SQLite, where
// the versioned postgres migrations do not apply.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Customer{},
		&entity.Appointment{},
		&entity.Treatment{},
		&entity.NotificationLog{},
		&entity.AuditLog{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("create active slot index: %w", err)
	}
	return nil
}
