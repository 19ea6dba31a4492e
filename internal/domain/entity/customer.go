package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationPreference is the channel a customer wants to be messaged on.
type NotificationPreference string

const (
	PreferenceSMS      NotificationPreference = "sms"
	PreferenceWhatsApp NotificationPreference = "whatsapp"
)

func (p NotificationPreference) IsValid() bool {
	switch p {
	case PreferenceSMS, PreferenceWhatsApp:
		return true
	}
	return false
}

// Label is the human readable channel name used in delivery messages.
func (p NotificationPreference) Label() string {
	switch p {
	case PreferenceWhatsApp:
		return "WhatsApp"
	case PreferenceSMS:
		return "SMS"
	}
	return string(p)
}

// ParseNotificationPreference accepts the enum values case-insensitively,
// so "SMS" and "WhatsApp" as shown in forms are both valid input.
func ParseNotificationPreference(s string) (NotificationPreference, bool) {
	p := NotificationPreference(strings.ToLower(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// Customer is identified by phone number. Name and email are kept from the
// first booking; only the notification preference follows later bookings.
type Customer struct {
	ID                     uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	Name                   string                 `gorm:"type:varchar(255);not null" json:"name"`
	Phone                  string                 `gorm:"type:varchar(32);not null;uniqueIndex:idx_customers_phone" json:"phone"`
	Email                  string                 `gorm:"type:varchar(255)" json:"email,omitempty"`
	NotificationPreference NotificationPreference `gorm:"type:varchar(16);not null" json:"notification_preference"`
	CreatedAt              time.Time              `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt              time.Time              `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
