package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HourlyRate is the pay per converted period for one academic year.
type HourlyRate struct {
	ID           uuid.UUID       `json:"id"`
	AcademicYear string          `json:"academic_year"`
	RatePerHour  decimal.Decimal `json:"rate_per_hour"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateHourlyRateRequest is the payload for creating an hourly rate.
type CreateHourlyRateRequest struct {
	AcademicYear string  `json:"academic_year" binding:"required,academic_year"`
	RatePerHour  float64 `json:"rate_per_hour" binding:"required,min=1000,max=1000000"`
}

// UpdateHourlyRateRequest is the payload for changing an hourly rate.
type UpdateHourlyRateRequest struct {
	RatePerHour float64 `json:"rate_per_hour" binding:"required,min=1000,max=1000000"`
}
