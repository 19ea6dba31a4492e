package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationAction names the appointment event a message is about
type NotificationAction string

const (
	NotificationActionConfirmed NotificationAction = "confirmed"
	NotificationActionMoved     NotificationAction = "moved"
	NotificationActionCancelled NotificationAction = "cancelled"
	NotificationActionReminder  NotificationAction = "reminder"
)

func (a NotificationAction) IsValid() bool {
	switch a {
	case NotificationActionConfirmed, NotificationActionMoved, NotificationActionCancelled, NotificationActionReminder:
		return true
	}
	return false
}

// DeliveryStatus is the outcome of one dispatch attempt
type DeliveryStatus string

const (
	DeliveryStatusSent     DeliveryStatus = "sent"
	DeliveryStatusFailed   DeliveryStatus = "failed"
	DeliveryStatusDisabled DeliveryStatus = "disabled"
	DeliveryStatusSkipped  DeliveryStatus = "skipped"
)

func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusSent, DeliveryStatusFailed, DeliveryStatusDisabled, DeliveryStatusSkipped:
		return true
	}
	return false
}

// DeliveryResult reports what happened to a confirmation message. It never
// affects the outcome of the booking operation it belongs to.
type DeliveryResult struct {
	Status    DeliveryStatus
	Channel   NotificationPreference
	Reason    string
	MessageID string
}

// Text is the short status line shown to the customer.
func (r DeliveryResult) Text() string {
	switch r.Status {
	case DeliveryStatusSent:
		return r.Channel.Label() + " sent!"
	case DeliveryStatusDisabled:
		return "SMS/WhatsApp disabled"
	case DeliveryStatusFailed:
		return "Failed: " + r.Reason
	case DeliveryStatusSkipped:
		return "No notification sent"
	}
	return string(r.Status)
}

// NotificationLog records every dispatch attempt
type NotificationLog struct {
	ID            uuid.UUID              `gorm:"type:uuid;primaryKey" json:"id"`
	AppointmentID uuid.UUID              `gorm:"type:uuid;not null;index:idx_notification_logs_appointment_action" json:"appointment_id"`
	CustomerID    uuid.UUID              `gorm:"type:uuid;not null;index" json:"customer_id"`
	Action        NotificationAction     `gorm:"type:varchar(16);not null;index:idx_notification_logs_appointment_action" json:"action"`
	SlotDate      string                 `gorm:"type:varchar(10);not null;default:''" json:"slot_date"`
	SlotTime      string                 `gorm:"type:varchar(5);not null;default:''" json:"slot_time"`
	Channel       NotificationPreference `gorm:"type:varchar(16);not null" json:"channel"`
	Status        DeliveryStatus         `gorm:"type:varchar(16);not null" json:"status"`
	Destination   string                 `gorm:"type:varchar(32);not null" json:"destination"`
	Message       string                 `gorm:"type:text" json:"message"`
	ProviderID    string                 `gorm:"type:varchar(64)" json:"provider_id,omitempty"`
	ErrorMessage  string                 `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt     time.Time              `gorm:"autoCreateTime;index" json:"created_at"`
}

func (NotificationLog) TableName() string {
	return "notification_logs"
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
