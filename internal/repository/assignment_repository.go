package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// Reasons a bulk assignment skips a course class.
const (
	SkipClassNotFound        = "course class not found"
	SkipClassAlreadyAssigned = "course class already assigned"
)

// AssignmentRepository handles teacher assignment data access.
type AssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewAssignmentRepository creates a new AssignmentRepository.
func NewAssignmentRepository(pool *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{pool: pool}
}

const assignmentSelect = `
	SELECT ta.id, ta.teacher_id, t.code, t.full_name, ta.course_class_id, cc.code, cc.name,
	       cc.semester_id, ta.assigned_at, ta.notes, ta.created_at, ta.updated_at
	FROM teacher_assignments ta
	JOIN teachers t ON t.id = ta.teacher_id
	JOIN course_classes cc ON cc.id = ta.course_class_id
	JOIN subjects s ON s.id = cc.subject_id`

func scanAssignment(row pgx.Row, a *model.Assignment) error {
	return row.Scan(&a.ID, &a.TeacherID, &a.TeacherCode, &a.TeacherName, &a.CourseClassID,
		&a.CourseClassCode, &a.CourseClassName, &a.SemesterID, &a.AssignedAt, &a.Notes,
		&a.CreatedAt, &a.UpdatedAt)
}

// Create inserts an assignment. A second assignment for the same course
// class violates the unique index on course_class_id.
func (r *AssignmentRepository) Create(ctx context.Context, teacherID, courseClassID uuid.UUID, notes *string) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.pool.QueryRow(ctx,
		`INSERT INTO teacher_assignments (teacher_id, course_class_id, notes) VALUES ($1, $2, $3) RETURNING id`,
		teacherID, courseClassID, notes,
	).Scan(&id)
	return id, err
}

// CreateBulk assigns every listed course class that exists and has no
// teacher yet. The rest are reported as skipped.
func (r *AssignmentRepository) CreateBulk(ctx context.Context, teacherID uuid.UUID, courseClassIDs []uuid.UUID, notes *string) ([]uuid.UUID, []model.BulkSkip, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx,
		`SELECT cc.id, ta.id IS NOT NULL
		 FROM course_classes cc
		 LEFT JOIN teacher_assignments ta ON ta.course_class_id = cc.id
		 WHERE cc.id = ANY($1)
		 FOR UPDATE OF cc`, courseClassIDs)
	if err != nil {
		return nil, nil, err
	}
	assigned := make(map[uuid.UUID]bool, len(courseClassIDs))
	for rows.Next() {
		var id uuid.UUID
		var taken bool
		if err := rows.Scan(&id, &taken); err != nil {
			rows.Close()
			return nil, nil, err
		}
		assigned[id] = taken
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var created []uuid.UUID
	skipped := []model.BulkSkip{}
	seen := make(map[uuid.UUID]bool, len(courseClassIDs))
	for _, classID := range courseClassIDs {
		taken, exists := assigned[classID]
		switch {
		case !exists:
			skipped = append(skipped, model.BulkSkip{CourseClassID: classID, Reason: SkipClassNotFound})
			continue
		case taken || seen[classID]:
			skipped = append(skipped, model.BulkSkip{CourseClassID: classID, Reason: SkipClassAlreadyAssigned})
			continue
		}
		seen[classID] = true

		var id uuid.UUID
		err := tx.QueryRow(ctx,
			`INSERT INTO teacher_assignments (teacher_id, course_class_id, notes) VALUES ($1, $2, $3) RETURNING id`,
			teacherID, classID, notes,
		).Scan(&id)
		if err != nil {
			return nil, nil, err
		}
		created = append(created, id)
	}

	return created, skipped, tx.Commit(ctx)
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Assignment, error) {
	a := &model.Assignment{}
	if err := scanAssignment(r.pool.QueryRow(ctx, assignmentSelect+` WHERE ta.id = $1`, id), a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByIDs retrieves the given assignments ordered by course class code.
func (r *AssignmentRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Assignment, error) {
	rows, err := r.pool.Query(ctx, assignmentSelect+` WHERE ta.id = ANY($1) ORDER BY cc.code`, ids)
	if err != nil {
		return nil, err
	}
	return collectAssignments(rows)
}

// ListPaginated retrieves assignments, newest first, with the total match count.
func (r *AssignmentRepository) ListPaginated(ctx context.Context, f model.AssignmentFilter, limit, offset int) ([]model.Assignment, int, error) {
	var where filter
	if f.TeacherID != nil {
		where.add("ta.teacher_id = ?", *f.TeacherID)
	}
	if f.SemesterID != nil {
		where.add("cc.semester_id = ?", *f.SemesterID)
	}
	if f.SubjectID != nil {
		where.add("cc.subject_id = ?", *f.SubjectID)
	}
	if f.DepartmentID != nil {
		where.add("s.department_id = ?", *f.DepartmentID)
	}

	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM teacher_assignments ta
		 JOIN course_classes cc ON cc.id = ta.course_class_id
		 JOIN subjects s ON s.id = cc.subject_id`+where.where(),
		where.args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	clause, args := where.page(limit, offset)
	rows, err := r.pool.Query(ctx, assignmentSelect+where.where()+` ORDER BY ta.assigned_at DESC, cc.code`+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	assignments, err := collectAssignments(rows)
	return assignments, total, err
}

// Update moves an assignment to another teacher.
func (r *AssignmentRepository) Update(ctx context.Context, id, teacherID uuid.UUID, notes *string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE teacher_assignments SET teacher_id = $1, notes = $2, assigned_at = NOW(), updated_at = NOW()
		 WHERE id = $3`, teacherID, notes, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *AssignmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teacher_assignments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Workload lists a teacher's assigned classes, optionally within one semester.
func (r *AssignmentRepository) Workload(ctx context.Context, teacherID uuid.UUID, semesterID *uuid.UUID) ([]model.WorkloadLine, error) {
	var where filter
	where.add("ta.teacher_id = ?", teacherID)
	if semesterID != nil {
		where.add("cc.semester_id = ?", *semesterID)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT ta.id, cc.name, s.name, s.credits, s.total_periods, cc.student_count,
		        sm.academic_year, sm.term_number
		 FROM teacher_assignments ta
		 JOIN course_classes cc ON cc.id = ta.course_class_id
		 JOIN subjects s ON s.id = cc.subject_id
		 JOIN semesters sm ON sm.id = cc.semester_id`+where.where()+`
		 ORDER BY sm.academic_year DESC, sm.term_number, cc.code`,
		where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lines := []model.WorkloadLine{}
	for rows.Next() {
		var l model.WorkloadLine
		if err := rows.Scan(&l.AssignmentID, &l.ClassName, &l.SubjectName, &l.Credits, &l.Periods,
			&l.StudentCount, &l.AcademicYear, &l.TermNumber); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func collectAssignments(rows pgx.Rows) ([]model.Assignment, error) {
	defer rows.Close()

	assignments := []model.Assignment{}
	for rows.Next() {
		var a model.Assignment
		if err := scanAssignment(rows, &a); err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
