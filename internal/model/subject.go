package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Subject is a course with its difficulty coefficient and period count.
type Subject struct {
	ID             uuid.UUID       `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Credits        int             `json:"credits"`
	Coefficient    decimal.Decimal `json:"coefficient"`
	TotalPeriods   int             `json:"total_periods"`
	DepartmentID   uuid.UUID       `json:"department_id"`
	DepartmentName string          `json:"department_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CreateSubjectRequest is the payload for creating or updating a subject.
// The code is always generated.
type CreateSubjectRequest struct {
	Name         string    `json:"name" binding:"required,min=1,max=200"`
	Credits      int       `json:"credits" binding:"required,gt=0,max=20"`
	Coefficient  float64   `json:"coefficient" binding:"required,gt=0,max=10"`
	TotalPeriods int       `json:"total_periods" binding:"required,total_periods"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
}
