package model

import (
	"time"

	"github.com/google/uuid"
)

// ExportKind names the report an export job renders.
type ExportKind string

const (
	ExportTeacherYearly   ExportKind = "teacher_yearly"
	ExportTeacherSemester ExportKind = "teacher_semester"
	ExportDepartment      ExportKind = "department"
	ExportInstitution     ExportKind = "institution"
)

// ExportStatus is the lifecycle state of an export job.
type ExportStatus string

const (
	ExportQueued  ExportStatus = "queued"
	ExportRunning ExportStatus = "running"
	ExportDone    ExportStatus = "done"
	ExportFailed  ExportStatus = "failed"
)

// Finished reports whether the job has reached a terminal state.
func (s ExportStatus) Finished() bool {
	return s == ExportDone || s == ExportFailed
}

// ExportParams identifies the report to render. Which fields are required
// depends on the kind.
type ExportParams struct {
	Kind         ExportKind `json:"kind" binding:"required,oneof=teacher_yearly teacher_semester department institution"`
	AcademicYear string     `json:"academic_year" binding:"omitempty,academic_year"`
	TeacherID    *uuid.UUID `json:"teacher_id"`
	DepartmentID *uuid.UUID `json:"department_id"`
	SemesterID   *uuid.UUID `json:"semester_id"`
}

// ExportJob is an asynchronous report export tracked in Redis.
type ExportJob struct {
	ID          uuid.UUID    `json:"id"`
	Params      ExportParams `json:"params"`
	Status      ExportStatus `json:"status"`
	Filename    string       `json:"filename,omitempty"`
	ErrorCode   string       `json:"error_code,omitempty"`
	Error       string       `json:"error,omitempty"`
	RequestedBy uuid.UUID    `json:"requested_by"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
