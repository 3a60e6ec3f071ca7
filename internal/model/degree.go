package model

import (
	"time"

	"github.com/google/uuid"
)

// Degree is an academic qualification (Cử nhân, Thạc sĩ, ...).
type Degree struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	ShortName string    `json:"short_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateDegreeRequest is the payload for creating a degree.
type CreateDegreeRequest struct {
	FullName  string `json:"full_name" binding:"required,min=1,max=100"`
	ShortName string `json:"short_name" binding:"required,min=1,max=5"`
}

// UpdateDegreeRequest is the payload for updating a degree.
type UpdateDegreeRequest struct {
	FullName  string `json:"full_name" binding:"required,min=1,max=100"`
	ShortName string `json:"short_name" binding:"required,min=1,max=5"`
}
