package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

// ClassCoefficient stores the standard class-size band of an academic year.
type ClassCoefficient struct {
	ID                   uuid.UUID            `json:"id"`
	AcademicYear         string               `json:"academic_year"`
	StandardStudentRange payroll.StudentRange `json:"standard_student_range"`
	CreatedAt            time.Time            `json:"created_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
}

// ClassCoefficientView is the class standard shown for a year. A year
// without a record shows payroll.DefaultRange with a nil ID.
type ClassCoefficientView struct {
	ID                   *uuid.UUID                `json:"id"`
	AcademicYear         string                    `json:"academic_year"`
	StandardStudentRange payroll.StudentRange      `json:"standard_student_range"`
	Source               payroll.CoefficientSource `json:"source"`
}

// CreateClassCoefficientRequest is the payload for creating a class coefficient.
type CreateClassCoefficientRequest struct {
	AcademicYear         string `json:"academic_year" binding:"required,academic_year"`
	StandardStudentRange string `json:"standard_student_range" binding:"required,student_range"`
}

// UpdateClassCoefficientRequest is the payload for changing a class coefficient.
type UpdateClassCoefficientRequest struct {
	StandardStudentRange string `json:"standard_student_range" binding:"required,student_range"`
}
