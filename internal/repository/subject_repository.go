package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

type SubjectRepository struct {
	pool *pgxpool.Pool
}

func NewSubjectRepository(pool *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{pool: pool}
}

const subjectSelect = `
	SELECT s.id, s.code, s.name, s.credits, s.coefficient, s.total_periods,
	       s.department_id, d.full_name, s.created_at, s.updated_at
	FROM subjects s
	JOIN departments d ON d.id = s.department_id`

func scanSubject(row pgx.Row, s *model.Subject) error {
	return row.Scan(&s.ID, &s.Code, &s.Name, &s.Credits, &s.Coefficient, &s.TotalPeriods,
		&s.DepartmentID, &s.DepartmentName, &s.CreatedAt, &s.UpdatedAt)
}

// NextCode returns the next free HP<nnnn> subject code.
func (r *SubjectRepository) NextCode(ctx context.Context) (string, error) {
	var max int
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(MAX(CAST(SUBSTRING(code FROM 3) AS INT)), 0)
		 FROM subjects WHERE code ~ '^HP[0-9]+$'`,
	).Scan(&max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("HP%04d", max+1), nil
}

func (r *SubjectRepository) Create(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO subjects (code, name, credits, coefficient, total_periods, department_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.Code, s.Name, s.Credits, s.Coefficient, s.TotalPeriods, s.DepartmentID,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	s := &model.Subject{}
	if err := scanSubject(r.pool.QueryRow(ctx, subjectSelect+` WHERE s.id = $1`, id), s); err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves subjects, optionally limited to one department.
func (r *SubjectRepository) List(ctx context.Context, departmentID *uuid.UUID, search string) ([]model.Subject, error) {
	var where filter
	if departmentID != nil {
		where.add("s.department_id = ?", *departmentID)
	}
	if search != "" {
		pattern := "%" + search + "%"
		where.add("(s.name ILIKE ? OR s.code ILIKE ?)", pattern, pattern)
	}

	rows, err := r.pool.Query(ctx, subjectSelect+where.where()+` ORDER BY s.code`, where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subjects := []model.Subject{}
	for rows.Next() {
		var s model.Subject
		if err := scanSubject(rows, &s); err != nil {
			return nil, err
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

func (r *SubjectRepository) Update(ctx context.Context, s *model.Subject) error {
	return r.pool.QueryRow(ctx,
		`UPDATE subjects SET name = $1, credits = $2, coefficient = $3, total_periods = $4,
		        department_id = $5, updated_at = NOW()
		 WHERE id = $6 RETURNING code, created_at, updated_at`,
		s.Name, s.Credits, s.Coefficient, s.TotalPeriods, s.DepartmentID, s.ID,
	).Scan(&s.Code, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
