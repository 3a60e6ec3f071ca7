package payroll

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Teacher is the payroll view of a teacher with its department and degree.
type Teacher struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	FullName       string    `json:"full_name"`
	DepartmentID   uuid.UUID `json:"department_id"`
	DepartmentName string    `json:"department_name"`
	DegreeID       uuid.UUID `json:"degree_id"`
	DegreeName     string    `json:"degree_name"`
	DegreeShort    string    `json:"degree_short_name"`
}

// Department is the payroll view of a department.
type Department struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	ShortName string    `json:"short_name"`
}

// Semester is one term of an academic year.
type Semester struct {
	ID              uuid.UUID `json:"id"`
	AcademicYear    string    `json:"academic_year"`
	TermNumber      int       `json:"term_number"`
	IsSupplementary bool      `json:"is_supplementary"`
}

// DisplayName renders the semester the way payroll staff label it.
func (s Semester) DisplayName() string {
	if s.IsSupplementary {
		return fmt.Sprintf("Kỳ %d (Phụ)", s.TermNumber)
	}
	return fmt.Sprintf("Kỳ %d", s.TermNumber)
}

// Assignment is one teacher-to-course-class link joined with the class and
// subject fields needed to price it.
type Assignment struct {
	ID                 uuid.UUID       `json:"id"`
	TeacherID          uuid.UUID       `json:"teacher_id"`
	CourseClassID      uuid.UUID       `json:"course_class_id"`
	CourseClassCode    string          `json:"course_class_code"`
	CourseClassName    string          `json:"course_class_name"`
	StudentCount       int             `json:"student_count"`
	SemesterID         uuid.UUID       `json:"semester_id"`
	SubjectID          uuid.UUID       `json:"subject_id"`
	SubjectCode        string          `json:"subject_code"`
	SubjectName        string          `json:"subject_name"`
	Credits            int             `json:"credits"`
	SubjectCoefficient decimal.Decimal `json:"subject_coefficient"`
	TotalPeriods       int             `json:"total_periods"`
}

// HourlyRate is the base pay per converted period for an academic year.
type HourlyRate struct {
	ID           uuid.UUID       `json:"id"`
	AcademicYear string          `json:"academic_year"`
	RatePerHour  decimal.Decimal `json:"rate_per_hour"`
}

// ClassStandard is the class-size band considered normal for a year.
type ClassStandard struct {
	ID                   uuid.UUID    `json:"id"`
	AcademicYear         string       `json:"academic_year"`
	StandardStudentRange StudentRange `json:"standard_student_range"`
}

// DegreeCoefficient is a stored teacher coefficient for (year, degree).
type DegreeCoefficient struct {
	ID          uuid.UUID       `json:"id"`
	Coefficient decimal.Decimal `json:"coefficient"`
}

// Store is the read side the engine needs. Find methods return (nil, nil)
// when the record does not exist. List methods return teachers and
// departments ordered by full name and semesters by term number then
// supplementary flag.
type Store interface {
	FindTeacher(ctx context.Context, id uuid.UUID) (*Teacher, error)
	FindDepartment(ctx context.Context, id uuid.UUID) (*Department, error)
	FindSemester(ctx context.Context, id uuid.UUID) (*Semester, error)

	ListDepartments(ctx context.Context) ([]Department, error)
	ListTeachersByDepartment(ctx context.Context, departmentID uuid.UUID) ([]Teacher, error)
	ListSemestersByYear(ctx context.Context, academicYear string) ([]Semester, error)

	// ListAssignments returns the teacher's assignments in any of the given semesters.
	ListAssignments(ctx context.Context, teacherID uuid.UUID, semesterIDs []uuid.UUID) ([]Assignment, error)

	FindHourlyRate(ctx context.Context, academicYear string) (*HourlyRate, error)
	FindClassStandard(ctx context.Context, academicYear string) (*ClassStandard, error)
	FindTeacherCoefficient(ctx context.Context, academicYear string, degreeID uuid.UUID) (*DegreeCoefficient, error)
}
