package model

import (
	"time"

	"github.com/google/uuid"
)

// Teacher is a lecturer who can be assigned to course classes.
type Teacher struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	FullName       string    `json:"full_name"`
	DateOfBirth    time.Time `json:"date_of_birth"`
	Phone          *string   `json:"phone"`
	Email          *string   `json:"email"`
	DepartmentID   uuid.UUID `json:"department_id"`
	DepartmentName string    `json:"department_name,omitempty"`
	DegreeID       uuid.UUID `json:"degree_id"`
	DegreeName     string    `json:"degree_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateTeacherRequest is the payload for creating or updating a teacher.
// An empty code is generated on create.
type CreateTeacherRequest struct {
	Code         string    `json:"code" binding:"omitempty,max=20,alphanum"`
	FullName     string    `json:"full_name" binding:"required,min=1,max=100"`
	DateOfBirth  string    `json:"date_of_birth" binding:"required,datetime=2006-01-02"`
	Phone        *string   `json:"phone" binding:"omitempty,max=20,numeric"`
	Email        *string   `json:"email" binding:"omitempty,email,max=100"`
	DepartmentID uuid.UUID `json:"department_id" binding:"required"`
	DegreeID     uuid.UUID `json:"degree_id" binding:"required"`
}

// TeacherFilter narrows teacher listings.
type TeacherFilter struct {
	DepartmentID *uuid.UUID
	DegreeID     *uuid.UUID
	Search       string
}
