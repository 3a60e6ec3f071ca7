package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

// PayrollRepository is the PostgreSQL payroll.Store.
type PayrollRepository struct {
	pool *pgxpool.Pool
}

var _ payroll.Store = (*PayrollRepository)(nil)

// NewPayrollRepository creates a new PayrollRepository.
func NewPayrollRepository(pool *pgxpool.Pool) *PayrollRepository {
	return &PayrollRepository{pool: pool}
}

const payrollTeacherSelect = `
	SELECT t.id, t.code, t.full_name, t.department_id, dp.full_name, t.degree_id, dg.full_name, dg.short_name
	FROM teachers t
	JOIN departments dp ON dp.id = t.department_id
	JOIN degrees dg ON dg.id = t.degree_id`

func scanPayrollTeacher(row pgx.Row, t *payroll.Teacher) error {
	return row.Scan(&t.ID, &t.Code, &t.FullName, &t.DepartmentID, &t.DepartmentName,
		&t.DegreeID, &t.DegreeName, &t.DegreeShort)
}

// noRows turns pgx.ErrNoRows into the (nil, nil) result payroll.Store expects.
func noRows[T any](v *T, err error) (*T, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *PayrollRepository) FindTeacher(ctx context.Context, id uuid.UUID) (*payroll.Teacher, error) {
	t := &payroll.Teacher{}
	return noRows(t, scanPayrollTeacher(r.pool.QueryRow(ctx, payrollTeacherSelect+` WHERE t.id = $1`, id), t))
}

func (r *PayrollRepository) FindDepartment(ctx context.Context, id uuid.UUID) (*payroll.Department, error) {
	d := &payroll.Department{}
	err := r.pool.QueryRow(ctx, `SELECT id, full_name, short_name FROM departments WHERE id = $1`, id).
		Scan(&d.ID, &d.FullName, &d.ShortName)
	return noRows(d, err)
}

func (r *PayrollRepository) FindSemester(ctx context.Context, id uuid.UUID) (*payroll.Semester, error) {
	s := &payroll.Semester{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, academic_year, term_number, is_supplementary FROM semesters WHERE id = $1`, id,
	).Scan(&s.ID, &s.AcademicYear, &s.TermNumber, &s.IsSupplementary)
	return noRows(s, err)
}

func (r *PayrollRepository) ListDepartments(ctx context.Context) ([]payroll.Department, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, full_name, short_name FROM departments ORDER BY full_name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var departments []payroll.Department
	for rows.Next() {
		var d payroll.Department
		if err := rows.Scan(&d.ID, &d.FullName, &d.ShortName); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *PayrollRepository) ListTeachersByDepartment(ctx context.Context, departmentID uuid.UUID) ([]payroll.Teacher, error) {
	rows, err := r.pool.Query(ctx, payrollTeacherSelect+` WHERE t.department_id = $1 ORDER BY t.full_name, t.code`, departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teachers []payroll.Teacher
	for rows.Next() {
		var t payroll.Teacher
		if err := scanPayrollTeacher(rows, &t); err != nil {
			return nil, err
		}
		teachers = append(teachers, t)
	}
	return teachers, rows.Err()
}

func (r *PayrollRepository) ListSemestersByYear(ctx context.Context, academicYear string) ([]payroll.Semester, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, academic_year, term_number, is_supplementary
		 FROM semesters WHERE academic_year = $1
		 ORDER BY term_number, is_supplementary`, academicYear)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var semesters []payroll.Semester
	for rows.Next() {
		var s payroll.Semester
		if err := rows.Scan(&s.ID, &s.AcademicYear, &s.TermNumber, &s.IsSupplementary); err != nil {
			return nil, err
		}
		semesters = append(semesters, s)
	}
	return semesters, rows.Err()
}

func (r *PayrollRepository) ListAssignments(ctx context.Context, teacherID uuid.UUID, semesterIDs []uuid.UUID) ([]payroll.Assignment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT ta.id, ta.teacher_id, cc.id, cc.code, cc.name, cc.student_count, cc.semester_id,
		        s.id, s.code, s.name, s.credits, s.coefficient, s.total_periods
		 FROM teacher_assignments ta
		 JOIN course_classes cc ON cc.id = ta.course_class_id
		 JOIN subjects s ON s.id = cc.subject_id
		 WHERE ta.teacher_id = $1 AND cc.semester_id = ANY($2)
		 ORDER BY cc.code`, teacherID, semesterIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assignments []payroll.Assignment
	for rows.Next() {
		var a payroll.Assignment
		if err := rows.Scan(&a.ID, &a.TeacherID, &a.CourseClassID, &a.CourseClassCode, &a.CourseClassName,
			&a.StudentCount, &a.SemesterID, &a.SubjectID, &a.SubjectCode, &a.SubjectName, &a.Credits,
			&a.SubjectCoefficient, &a.TotalPeriods); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *PayrollRepository) FindHourlyRate(ctx context.Context, academicYear string) (*payroll.HourlyRate, error) {
	h := &payroll.HourlyRate{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, academic_year, rate_per_hour FROM hourly_rates WHERE academic_year = $1`, academicYear,
	).Scan(&h.ID, &h.AcademicYear, &h.RatePerHour)
	return noRows(h, err)
}

func (r *PayrollRepository) FindClassStandard(ctx context.Context, academicYear string) (*payroll.ClassStandard, error) {
	c := &payroll.ClassStandard{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, academic_year, standard_student_range FROM class_coefficients WHERE academic_year = $1`, academicYear,
	).Scan(&c.ID, &c.AcademicYear, &c.StandardStudentRange)
	return noRows(c, err)
}

func (r *PayrollRepository) FindTeacherCoefficient(ctx context.Context, academicYear string, degreeID uuid.UUID) (*payroll.DegreeCoefficient, error) {
	c := &payroll.DegreeCoefficient{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, coefficient FROM teacher_coefficients WHERE academic_year = $1 AND degree_id = $2`,
		academicYear, degreeID,
	).Scan(&c.ID, &c.Coefficient)
	return noRows(c, err)
}
