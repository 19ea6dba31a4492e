package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateTreatmentRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=100"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,gte=5,lte=480"`
	Price           decimal.Decimal `json:"price" validate:"required"`
}

type UpdateTreatmentRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=100"`
	Description     string          `json:"description"`
	DurationMinutes int             `json:"duration_minutes" validate:"required,gte=5,lte=480"`
	Price           decimal.Decimal `json:"price" validate:"required"`
	IsActive        bool            `json:"is_active"`
}

// Response DTOs

type TreatmentResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
