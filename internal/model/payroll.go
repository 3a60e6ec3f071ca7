package model

import (
	"github.com/google/uuid"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

// CalculatePayrollRequest asks for one teacher's payroll in one semester.
type CalculatePayrollRequest struct {
	AcademicYear string    `json:"academic_year" binding:"required,academic_year"`
	SemesterID   uuid.UUID `json:"semester_id" binding:"required"`
	TeacherID    uuid.UUID `json:"teacher_id" binding:"required"`
}

// ConfigStatus reports which per-year reference data is in place.
// Ready is false when a report for the year would fail with a missing
// configuration under the active policy.
type ConfigStatus struct {
	AcademicYear              string                    `json:"academic_year"`
	HourlyRate                *HourlyRate               `json:"hourly_rate"`
	ClassCoefficient          *ClassCoefficient         `json:"class_coefficient"`
	DegreesWithoutCoefficient []Degree                  `json:"degrees_without_coefficient"`
	Policy                    payroll.CoefficientPolicy `json:"teacher_coefficient_policy"`
	Missing                   []payroll.ConfigKind      `json:"missing"`
	Ready                     bool                      `json:"ready"`
}
