package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// TeacherRepository handles teacher data access.
type TeacherRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherRepository creates a new TeacherRepository.
func NewTeacherRepository(pool *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{pool: pool}
}

const teacherSelect = `
	SELECT t.id, t.code, t.full_name, t.date_of_birth, t.phone, t.email,
	       t.department_id, dp.full_name, t.degree_id, dg.full_name,
	       t.created_at, t.updated_at
	FROM teachers t
	JOIN departments dp ON dp.id = t.department_id
	JOIN degrees dg ON dg.id = t.degree_id`

func scanTeacher(row pgx.Row, t *model.Teacher) error {
	return row.Scan(&t.ID, &t.Code, &t.FullName, &t.DateOfBirth, &t.Phone, &t.Email,
		&t.DepartmentID, &t.DepartmentName, &t.DegreeID, &t.DegreeName,
		&t.CreatedAt, &t.UpdatedAt)
}

func (r *TeacherRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	t := &model.Teacher{}
	if err := scanTeacher(r.pool.QueryRow(ctx, teacherSelect+` WHERE t.id = $1`, id), t); err != nil {
		return nil, err
	}
	return t, nil
}

// ListPaginated retrieves teachers ordered by name with the total match count.
func (r *TeacherRepository) ListPaginated(ctx context.Context, f model.TeacherFilter, limit, offset int) ([]model.Teacher, int, error) {
	var where filter
	if f.DepartmentID != nil {
		where.add("t.department_id = ?", *f.DepartmentID)
	}
	if f.DegreeID != nil {
		where.add("t.degree_id = ?", *f.DegreeID)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		where.add("(t.full_name ILIKE ? OR t.code ILIKE ?)", pattern, pattern)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM teachers t`+where.where(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	clause, args := where.page(limit, offset)
	rows, err := r.pool.Query(ctx, teacherSelect+where.where()+` ORDER BY t.full_name, t.code`+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	teachers := []model.Teacher{}
	for rows.Next() {
		var t model.Teacher
		if err := scanTeacher(rows, &t); err != nil {
			return nil, 0, err
		}
		teachers = append(teachers, t)
	}
	return teachers, total, rows.Err()
}

// NextCode returns the next free GV<nnnn> teacher code.
func (r *TeacherRepository) NextCode(ctx context.Context) (string, error) {
	var max int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(CAST(SUBSTRING(code FROM 3) AS INT)), 0)
		 FROM teachers WHERE code ~ '^GV[0-9]+$'`,
	).Scan(&max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("GV%04d", max+1), nil
}

// CreateWithAccount inserts a teacher together with a TEACHER login whose
// username is the teacher code. Both rows are written in one transaction.
func (r *TeacherRepository) CreateWithAccount(ctx context.Context, t *model.Teacher, passwordHash string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO teachers (code, full_name, date_of_birth, phone, email, department_id, degree_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at`,
		t.Code, t.FullName, t.DateOfBirth, t.Phone, t.Email, t.DepartmentID, t.DegreeID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return err
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO users (username, password_hash, role, teacher_id) VALUES ($1, $2, $3, $4)`,
		t.Code, passwordHash, model.RoleTeacher, t.ID,
	)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *TeacherRepository) Update(ctx context.Context, t *model.Teacher) error {
	return r.pool.QueryRow(ctx,
		`UPDATE teachers SET code = $1, full_name = $2, date_of_birth = $3, phone = $4, email = $5,
		        department_id = $6, degree_id = $7, updated_at = NOW()
		 WHERE id = $8 RETURNING created_at, updated_at`,
		t.Code, t.FullName, t.DateOfBirth, t.Phone, t.Email, t.DepartmentID, t.DegreeID, t.ID,
	).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// Delete removes a teacher. The linked login account cascades.
func (r *TeacherRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teachers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
