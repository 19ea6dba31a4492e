package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// AppointmentStatus represents the status of an appointment. A moved
// appointment stays booked; only the slot changes.
type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusBooked, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Slot is a (date, time) pair compared by exact string equality.
type Slot struct {
	Date string
	Time string
}

// ParseSlot validates date (YYYY-MM-DD) and time (HH:MM) and returns them in
// canonical form, so "9:00" never sits next to "09:00".
func ParseSlot(date, clock string) (Slot, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return Slot{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	c, err := time.Parse(ClockLayout, strings.TrimSpace(clock))
	if err != nil {
		return Slot{}, fmt.Errorf("invalid time %q: expected HH:MM", clock)
	}
	return Slot{Date: d.Format(DateLayout), Time: c.Format(ClockLayout)}, nil
}

func (s Slot) String() string {
	return s.Date + " " + s.Time
}

// Appointment is one booked service slot for a customer
type Appointment struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID uuid.UUID         `gorm:"type:uuid;not null;index" json:"customer_id"`
	SlotDate   string            `gorm:"type:varchar(10);not null;index:idx_appointments_slot" json:"slot_date"`
	SlotTime   string            `gorm:"type:varchar(5);not null;index:idx_appointments_slot" json:"slot_time"`
	Treatment  string            `gorm:"type:varchar(100);not null;default:''" json:"treatment"`
	Status     AppointmentStatus `gorm:"type:varchar(16);not null;default:'booked';index" json:"status"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (a *Appointment) Slot() Slot {
	return Slot{Date: a.SlotDate, Time: a.SlotTime}
}

// IsBooked checks if appointment still holds its slot
func (a *Appointment) IsBooked() bool {
	return a.Status == AppointmentStatusBooked
}

// IsCancelled checks if appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}
