package model

import (
	"time"

	"github.com/google/uuid"
)

// Semester is one term of an academic year.
type Semester struct {
	ID              uuid.UUID `json:"id"`
	TermNumber      int       `json:"term_number"`
	IsSupplementary bool      `json:"is_supplementary"`
	AcademicYear    string    `json:"academic_year"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateSemesterRequest is the payload for creating or updating a semester.
type CreateSemesterRequest struct {
	TermNumber      int    `json:"term_number" binding:"required,min=1,max=3"`
	IsSupplementary bool   `json:"is_supplementary"`
	AcademicYear    string `json:"academic_year" binding:"required,academic_year"`
	StartDate       string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate         string `json:"end_date" binding:"required,datetime=2006-01-02"`
}
