package model

import (
	"time"

	"github.com/google/uuid"
)

// Department is a faculty that owns teachers and subjects.
type Department struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	ShortName   string    `json:"short_name"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateDepartmentRequest is the payload for creating or updating a department.
type CreateDepartmentRequest struct {
	FullName    string  `json:"full_name" binding:"required,min=1,max=100"`
	ShortName   string  `json:"short_name" binding:"required,min=1,max=50"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
}
