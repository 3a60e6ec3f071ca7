package model

import (
	"time"

	"github.com/google/uuid"
)

// CourseClass is one section of a subject in a semester.
type CourseClass struct {
	ID           uuid.UUID  `json:"id"`
	Code         string     `json:"code"`
	Name         string     `json:"name"`
	ClassNumber  int        `json:"class_number"`
	StudentCount int        `json:"student_count"`
	SubjectID    uuid.UUID  `json:"subject_id"`
	SubjectCode  string     `json:"subject_code,omitempty"`
	SubjectName  string     `json:"subject_name,omitempty"`
	SemesterID   uuid.UUID  `json:"semester_id"`
	AcademicYear string     `json:"academic_year,omitempty"`
	TermNumber   int        `json:"term_number,omitempty"`
	TeacherID    *uuid.UUID `json:"teacher_id"`
	TeacherName  *string    `json:"teacher_name"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CreateCourseClassesRequest opens numberOfClasses new sections of a subject.
type CreateCourseClassesRequest struct {
	SubjectID       uuid.UUID `json:"subject_id" binding:"required"`
	SemesterID      uuid.UUID `json:"semester_id" binding:"required"`
	NumberOfClasses int       `json:"number_of_classes" binding:"required,min=1,max=10"`
}

// UpdateCourseClassRequest changes a section's enrolment.
type UpdateCourseClassRequest struct {
	StudentCount *int `json:"student_count" binding:"required,min=0,max=1000"`
}

// CourseClassFilter narrows course class listings.
type CourseClassFilter struct {
	SemesterID     *uuid.UUID
	SubjectID      *uuid.UUID
	DepartmentID   *uuid.UUID
	UnassignedOnly bool
}
