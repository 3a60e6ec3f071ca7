package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// CourseClassRepository handles course class data access.
type CourseClassRepository struct {
	pool *pgxpool.Pool
}

// NewCourseClassRepository creates a new CourseClassRepository.
func NewCourseClassRepository(pool *pgxpool.Pool) *CourseClassRepository {
	return &CourseClassRepository{pool: pool}
}

const courseClassSelect = `
	SELECT cc.id, cc.code, cc.name, cc.class_number, cc.student_count,
	       cc.subject_id, s.code, s.name, cc.semester_id, sm.academic_year, sm.term_number,
	       ta.teacher_id, t.full_name, cc.created_at, cc.updated_at
	FROM course_classes cc
	JOIN subjects s ON s.id = cc.subject_id
	JOIN semesters sm ON sm.id = cc.semester_id
	LEFT JOIN teacher_assignments ta ON ta.course_class_id = cc.id
	LEFT JOIN teachers t ON t.id = ta.teacher_id`

func scanCourseClass(row pgx.Row, c *model.CourseClass) error {
	return row.Scan(&c.ID, &c.Code, &c.Name, &c.ClassNumber, &c.StudentCount,
		&c.SubjectID, &c.SubjectCode, &c.SubjectName, &c.SemesterID, &c.AcademicYear, &c.TermNumber,
		&c.TeacherID, &c.TeacherName, &c.CreatedAt, &c.UpdatedAt)
}

// ClassCode builds the section code from a subject code and class number,
// e.g. HP0012 and 3 give LHP0012N03.
func ClassCode(subjectCode string, classNumber int) string {
	return fmt.Sprintf("LHP%sN%02d", strings.TrimPrefix(subjectCode, "HP"), classNumber)
}

// ClassName builds the section display name, e.g. "Giải tích (N03)".
func ClassName(subjectName string, classNumber int) string {
	return fmt.Sprintf("%s (N%02d)", subjectName, classNumber)
}

// CreateBatch opens count new sections of a subject in a semester. Class
// numbers continue after the highest existing one. The subject row is
// locked so concurrent batches do not pick the same numbers.
func (r *CourseClassRepository) CreateBatch(ctx context.Context, subjectID, semesterID uuid.UUID, count int) ([]model.CourseClass, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var subjectCode, subjectName string
	err = tx.QueryRow(ctx, `SELECT code, name FROM subjects WHERE id = $1 FOR UPDATE`, subjectID).
		Scan(&subjectCode, &subjectName)
	if err != nil {
		return nil, err
	}

	var last int
	err = tx.QueryRow(ctx,
		`SELECT COALESCE(MAX(class_number), 0) FROM course_classes WHERE subject_id = $1 AND semester_id = $2`,
		subjectID, semesterID,
	).Scan(&last)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, count)
	for n := last + 1; n <= last+count; n++ {
		var id uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO course_classes (code, name, class_number, subject_id, semester_id)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			ClassCode(subjectCode, n), ClassName(subjectName, n), n, subjectID, semesterID,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	rows, err := tx.Query(ctx, courseClassSelect+` WHERE cc.id = ANY($1) ORDER BY cc.class_number`, ids)
	if err != nil {
		return nil, err
	}
	classes, err := collectCourseClasses(rows)
	if err != nil {
		return nil, err
	}

	return classes, tx.Commit(ctx)
}

func (r *CourseClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CourseClass, error) {
	c := &model.CourseClass{}
	if err := scanCourseClass(r.pool.QueryRow(ctx, courseClassSelect+` WHERE cc.id = $1`, id), c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListPaginated retrieves course classes ordered by code with the total match count.
func (r *CourseClassRepository) ListPaginated(ctx context.Context, f model.CourseClassFilter, limit, offset int) ([]model.CourseClass, int, error) {
	var where filter
	if f.SemesterID != nil {
		where.add("cc.semester_id = ?", *f.SemesterID)
	}
	if f.SubjectID != nil {
		where.add("cc.subject_id = ?", *f.SubjectID)
	}
	if f.DepartmentID != nil {
		where.add("s.department_id = ?", *f.DepartmentID)
	}
	if f.UnassignedOnly {
		where.add("ta.id IS NULL")
	}

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM course_classes cc
		 JOIN subjects s ON s.id = cc.subject_id
		 LEFT JOIN teacher_assignments ta ON ta.course_class_id = cc.id`+where.where(),
		where.args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	clause, args := where.page(limit, offset)
	rows, err := r.pool.Query(ctx, courseClassSelect+where.where()+` ORDER BY cc.code`+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	classes, err := collectCourseClasses(rows)
	return classes, total, err
}

func (r *CourseClassRepository) UpdateStudentCount(ctx context.Context, id uuid.UUID, studentCount int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE course_classes SET student_count = $1, updated_at = NOW() WHERE id = $2`, studentCount, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a course class. Its assignment cascades.
func (r *CourseClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM course_classes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func collectCourseClasses(rows pgx.Rows) ([]model.CourseClass, error) {
	defer rows.Close()

	classes := []model.CourseClass{}
	for rows.Next() {
		var c model.CourseClass
		if err := scanCourseClass(rows, &c); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
