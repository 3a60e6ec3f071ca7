package model

import (
	"time"

	"github.com/google/uuid"
)

// Assignment links a teacher to the course class they teach.
type Assignment struct {
	ID              uuid.UUID `json:"id"`
	TeacherID       uuid.UUID `json:"teacher_id"`
	TeacherCode     string    `json:"teacher_code,omitempty"`
	TeacherName     string    `json:"teacher_name,omitempty"`
	CourseClassID   uuid.UUID `json:"course_class_id"`
	CourseClassCode string    `json:"course_class_code,omitempty"`
	CourseClassName string    `json:"course_class_name,omitempty"`
	SemesterID      uuid.UUID `json:"semester_id"`
	AssignedAt      time.Time `json:"assigned_at"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateAssignmentRequest assigns one course class.
type CreateAssignmentRequest struct {
	TeacherID     uuid.UUID `json:"teacher_id" binding:"required"`
	CourseClassID uuid.UUID `json:"course_class_id" binding:"required"`
	Notes         *string   `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateAssignmentRequest moves a course class to another teacher.
type UpdateAssignmentRequest struct {
	TeacherID uuid.UUID `json:"teacher_id" binding:"required"`
	Notes     *string   `json:"notes" binding:"omitempty,max=1000"`
}

// BulkAssignmentRequest assigns several course classes to one teacher.
type BulkAssignmentRequest struct {
	TeacherID      uuid.UUID   `json:"teacher_id" binding:"required"`
	CourseClassIDs []uuid.UUID `json:"course_class_ids" binding:"required,min=1,max=50,dive,required"`
	Notes          *string     `json:"notes" binding:"omitempty,max=1000"`
}

// BulkAssignmentResult reports which classes were assigned and which were skipped.
type BulkAssignmentResult struct {
	Assigned []Assignment `json:"assigned"`
	Skipped  []BulkSkip   `json:"skipped"`
}

// BulkSkip is a course class a bulk assignment left untouched.
type BulkSkip struct {
	CourseClassID uuid.UUID `json:"course_class_id"`
	Reason        string    `json:"reason"`
}

// AssignmentFilter narrows assignment listings.
type AssignmentFilter struct {
	TeacherID    *uuid.UUID
	SemesterID   *uuid.UUID
	SubjectID    *uuid.UUID
	DepartmentID *uuid.UUID
}

// WorkloadLine is one assigned class inside a teacher workload.
type WorkloadLine struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
	ClassName    string    `json:"class_name"`
	SubjectName  string    `json:"subject_name"`
	Credits      int       `json:"credits"`
	Periods      int       `json:"periods"`
	StudentCount int       `json:"student_count"`
	AcademicYear string    `json:"academic_year"`
	TermNumber   int       `json:"term_number"`
}

// Workload summarises a teacher's assigned classes.
type Workload struct {
	TeacherID     uuid.UUID      `json:"teacher_id"`
	TotalClasses  int            `json:"total_classes"`
	TotalStudents int            `json:"total_students"`
	TotalCredits  int            `json:"total_credits"`
	TotalPeriods  int            `json:"total_periods"`
	Assignments   []WorkloadLine `json:"assignments"`
}
