package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

// TeacherCoefficient is the stored pay multiplier of a degree for one year.
type TeacherCoefficient struct {
	ID           uuid.UUID       `json:"id"`
	AcademicYear string          `json:"academic_year"`
	DegreeID     uuid.UUID       `json:"degree_id"`
	DegreeName   string          `json:"degree_name,omitempty"`
	Coefficient  decimal.Decimal `json:"coefficient"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DegreeCoefficientView lists a degree with its coefficient for a year. A
// degree without a stored record shows a suggested value and a nil ID.
type DegreeCoefficientView struct {
	ID           *uuid.UUID                `json:"id"`
	AcademicYear string                    `json:"academic_year"`
	DegreeID     uuid.UUID                 `json:"degree_id"`
	DegreeName   string                    `json:"degree_name"`
	DegreeShort  string                    `json:"degree_short_name"`
	Coefficient  decimal.Decimal           `json:"coefficient"`
	Source       payroll.CoefficientSource `json:"source"`
}

// CreateTeacherCoefficientRequest is the payload for creating a teacher coefficient.
type CreateTeacherCoefficientRequest struct {
	AcademicYear string    `json:"academic_year" binding:"required,academic_year"`
	DegreeID     uuid.UUID `json:"degree_id" binding:"required"`
	Coefficient  float64   `json:"coefficient" binding:"required,min=0.1,max=5"`
}

// UpdateTeacherCoefficientRequest is the payload for changing a teacher coefficient.
type UpdateTeacherCoefficientRequest struct {
	Coefficient float64 `json:"coefficient" binding:"required,min=0.1,max=5"`
}

// BatchTeacherCoefficientRequest upserts several degree coefficients for one year.
type BatchTeacherCoefficientRequest struct {
	AcademicYear string                        `json:"academic_year" binding:"required,academic_year"`
	Items        []BatchTeacherCoefficientItem `json:"items" binding:"required,min=1,max=100,dive"`
}

// BatchTeacherCoefficientItem is one degree inside a batch upsert.
type BatchTeacherCoefficientItem struct {
	DegreeID    uuid.UUID `json:"degree_id" binding:"required"`
	Coefficient float64   `json:"coefficient" binding:"required,min=0.1,max=5"`
}
