package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Summary carries display-rounded totals: converted periods to one decimal
// place and salary to whole currency units, both rounded after summing.
type Summary struct {
	TotalClasses          int             `json:"total_classes"`
	TotalPeriods          int             `json:"total_periods"`
	TotalConvertedPeriods decimal.Decimal `json:"total_converted_periods"`
	TotalSalary           decimal.Decimal `json:"total_salary"`
}

// Coefficients records the reference data a report was computed with.
// Teacher is nil on department and institution reports, where it varies
// per line.
type Coefficients struct {
	AcademicYear         string              `json:"academic_year"`
	HourlyRate           decimal.Decimal     `json:"hourly_rate"`
	StandardStudentRange StudentRange        `json:"standard_student_range"`
	Teacher              *TeacherCoefficient `json:"teacher_coefficient,omitempty"`
}

// SemesterInfo describes a semester inside a report.
type SemesterInfo struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	AcademicYear    string    `json:"academic_year"`
	TermNumber      int       `json:"term_number"`
	IsSupplementary bool      `json:"is_supplementary"`
}

// ClassLine is one priced course class.
type ClassLine struct {
	AssignmentID       uuid.UUID       `json:"assignment_id"`
	CourseClassID      uuid.UUID       `json:"course_class_id"`
	CourseClassCode    string          `json:"course_class_code"`
	CourseClassName    string          `json:"course_class_name"`
	SubjectCode        string          `json:"subject_code"`
	SubjectName        string          `json:"subject_name"`
	Credits            int             `json:"credits"`
	StudentCount       int             `json:"student_count"`
	StudentRange       StudentRange    `json:"student_range"`
	TotalPeriods       int             `json:"total_periods"`
	SubjectCoefficient decimal.Decimal `json:"subject_coefficient"`
	ClassCoefficient   decimal.Decimal `json:"class_coefficient"`
	ConvertedPeriods   decimal.Decimal `json:"converted_periods"`
	Salary             decimal.Decimal `json:"salary"`
}

// PayrollResult is the standalone payroll of one teacher in one semester.
// Per-class converted periods keep two decimal places.
type PayrollResult struct {
	Teacher      Teacher      `json:"teacher"`
	Semester     SemesterInfo `json:"semester"`
	Coefficients Coefficients `json:"coefficients"`
	Classes      []ClassLine  `json:"classes"`
	Summary      Summary      `json:"summary"`
	CalculatedAt time.Time    `json:"calculated_at"`
}

// TeacherSemesterReport is one teacher's load in one semester.
type TeacherSemesterReport struct {
	Teacher      Teacher      `json:"teacher"`
	Semester     SemesterInfo `json:"semester"`
	Coefficients Coefficients `json:"coefficients"`
	Classes      []ClassLine  `json:"classes"`
	Summary      Summary      `json:"summary"`
}

// SemesterLine is one semester row of a yearly teacher report.
type SemesterLine struct {
	Semester SemesterInfo `json:"semester"`
	Summary  Summary      `json:"summary"`
}

// TeacherYearlyReport rolls a teacher's semesters up to the academic year.
type TeacherYearlyReport struct {
	Teacher      Teacher        `json:"teacher"`
	AcademicYear string         `json:"academic_year"`
	Coefficients Coefficients   `json:"coefficients"`
	Semesters    []SemesterLine `json:"semesters"`
	Summary      Summary        `json:"summary"`
}

// TeacherLine is one teacher row of a department report.
type TeacherLine struct {
	Teacher            Teacher            `json:"teacher"`
	TeacherCoefficient TeacherCoefficient `json:"teacher_coefficient"`
	Summary            Summary            `json:"summary"`
}

// DepartmentReport covers every teacher of a department.
type DepartmentReport struct {
	Department   Department    `json:"department"`
	AcademicYear string        `json:"academic_year"`
	Semester     *SemesterInfo `json:"semester"`
	Coefficients Coefficients  `json:"coefficients"`
	Teachers     []TeacherLine `json:"teachers"`
	Summary      Summary       `json:"summary"`
}

// DepartmentLine is one department row of an institution report.
type DepartmentLine struct {
	Department   Department `json:"department"`
	TeacherCount int        `json:"teacher_count"`
	Summary      Summary    `json:"summary"`
}

// InstitutionReport covers every department.
type InstitutionReport struct {
	AcademicYear string           `json:"academic_year"`
	Semester     *SemesterInfo    `json:"semester"`
	Coefficients Coefficients     `json:"coefficients"`
	Departments  []DepartmentLine `json:"departments"`
	Summary      Summary          `json:"summary"`
}

func semesterInfo(s Semester) SemesterInfo {
	return SemesterInfo{
		ID:              s.ID,
		Name:            s.DisplayName(),
		AcademicYear:    s.AcademicYear,
		TermNumber:      s.TermNumber,
		IsSupplementary: s.IsSupplementary,
	}
}

func classLine(p ClassPayroll, convertedPlaces int32) ClassLine {
	a := p.Assignment
	return ClassLine{
		AssignmentID:       a.ID,
		CourseClassID:      a.CourseClassID,
		CourseClassCode:    a.CourseClassCode,
		CourseClassName:    a.CourseClassName,
		SubjectCode:        a.SubjectCode,
		SubjectName:        a.SubjectName,
		Credits:            a.Credits,
		StudentCount:       a.StudentCount,
		StudentRange:       p.StudentRange,
		TotalPeriods:       a.TotalPeriods,
		SubjectCoefficient: a.SubjectCoefficient,
		ClassCoefficient:   p.ClassCoefficient,
		ConvertedPeriods:   p.ConvertedPeriods.Round(convertedPlaces),
		Salary:             p.Salary.Round(0),
	}
}

func (c *YearConfig) used(teacher *TeacherCoefficient) Coefficients {
	return Coefficients{
		AcademicYear:         c.AcademicYear,
		HourlyRate:           c.HourlyRate.RatePerHour,
		StandardStudentRange: c.ClassStandard.StandardStudentRange,
		Teacher:              teacher,
	}
}
