package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a login account. Teacher accounts link to their teacher record.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	TeacherID    *uuid.UUID `json:"teacher_id"`
	TeacherName  *string    `json:"teacher_name,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=50"`
	Password string `json:"password" binding:"required,min=1,max=255"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Token       string   `json:"token"`
	User        User     `json:"user"`
	Permissions []string `json:"permissions"`
}

// ChangePasswordRequest is the payload for changing one's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6,max=255"`
}

// CreateUserRequest is the payload for creating a login account.
type CreateUserRequest struct {
	Username  string     `json:"username" binding:"required,min=1,max=50,username"`
	Password  string     `json:"password" binding:"required,min=6,max=255"`
	Role      Role       `json:"role" binding:"required,oneof=ADMIN FACULTY_MANAGER ACCOUNTANT TEACHER"`
	TeacherID *uuid.UUID `json:"teacher_id"`
	IsActive  *bool      `json:"is_active"`
}

// UpdateUserRequest is the payload for updating a login account. Empty
// fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username" binding:"omitempty,min=1,max=50,username"`
	Password *string `json:"password" binding:"omitempty,min=6,max=255"`
	Role     *Role   `json:"role" binding:"omitempty,oneof=ADMIN FACULTY_MANAGER ACCOUNTANT TEACHER"`
	IsActive *bool   `json:"is_active"`
}
