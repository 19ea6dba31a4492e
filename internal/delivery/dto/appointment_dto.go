package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	Name       string `json:"name" validate:"required,max=255"`
	Phone      string `json:"phone" validate:"required,phone"`
	Email      string `json:"email" validate:"omitempty,email"`
	Preference string `json:"preference" validate:"required"`
	Date       string `json:"date" validate:"required,date"`
	Time       string `json:"time" validate:"required,clock"`
	Treatment  string `json:"treatment" validate:"omitempty,max=100"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" validate:"required,date"`
	Time string `json:"time" validate:"required,clock"`
}

// Response DTOs

type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	CustomerID    uuid.UUID `json:"customer_id"`
	CustomerName  string    `json:"customer_name,omitempty"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	Preference    string    `json:"preference,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Treatment     string    `json:"treatment,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type DeliveryResponse struct {
	Status    string `json:"status"`
	Channel   string `json:"channel,omitempty"`
	Message   string `json:"message"`
	Reason    string `json:"reason,omitempty"`
	MessageID string `json:"message_id,omitempty"`
}

// AppointmentResultResponse is returned by book and reschedule
type AppointmentResultResponse struct {
	Appointment  AppointmentResponse `json:"appointment"`
	Notification DeliveryResponse    `json:"notification"`
}

type CancelAppointmentResponse struct {
	AppointmentID uuid.UUID        `json:"appointment_id"`
	Cancelled     bool             `json:"cancelled"`
	Notification  DeliveryResponse `json:"notification"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type NotificationLogResponse struct {
	ID          uuid.UUID `json:"id"`
	Action      string    `json:"action"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Channel     string    `json:"channel"`
	Status      string    `json:"status"`
	Destination string    `json:"destination"`
	Message     string    `json:"message"`
	Error       string    `json:"error,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationLogListResponse struct {
	Notifications []NotificationLogResponse `json:"notifications"`
	Total         int                       `json:"total"`
}
