package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// ClassCoefficientRepository handles class coefficient data access.
type ClassCoefficientRepository struct {
	pool *pgxpool.Pool
}

// NewClassCoefficientRepository creates a new ClassCoefficientRepository.
func NewClassCoefficientRepository(pool *pgxpool.Pool) *ClassCoefficientRepository {
	return &ClassCoefficientRepository{pool: pool}
}

const classCoefficientColumns = `id, academic_year, standard_student_range, created_at, updated_at`

func scanClassCoefficient(row pgx.Row, c *model.ClassCoefficient) error {
	return row.Scan(&c.ID, &c.AcademicYear, &c.StandardStudentRange, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClassCoefficientRepository) Create(ctx context.Context, c *model.ClassCoefficient) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_coefficients (academic_year, standard_student_range) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.AcademicYear, c.StandardStudentRange,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Upsert creates or replaces the standard for c.AcademicYear.
func (r *ClassCoefficientRepository) Upsert(ctx context.Context, c *model.ClassCoefficient) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO class_coefficients (academic_year, standard_student_range) VALUES ($1, $2)
		 ON CONFLICT (academic_year)
		 DO UPDATE SET standard_student_range = EXCLUDED.standard_student_range, updated_at = NOW()
		 RETURNING id, created_at, updated_at`,
		c.AcademicYear, c.StandardStudentRange,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClassCoefficientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ClassCoefficient, error) {
	c := &model.ClassCoefficient{}
	row := r.pool.QueryRow(ctx, `SELECT `+classCoefficientColumns+` FROM class_coefficients WHERE id = $1`, id)
	if err := scanClassCoefficient(row, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClassCoefficientRepository) GetByAcademicYear(ctx context.Context, academicYear string) (*model.ClassCoefficient, error) {
	c := &model.ClassCoefficient{}
	row := r.pool.QueryRow(ctx, `SELECT `+classCoefficientColumns+` FROM class_coefficients WHERE academic_year = $1`, academicYear)
	if err := scanClassCoefficient(row, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ClassCoefficientRepository) List(ctx context.Context) ([]model.ClassCoefficient, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+classCoefficientColumns+` FROM class_coefficients ORDER BY academic_year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coefficients := []model.ClassCoefficient{}
	for rows.Next() {
		var c model.ClassCoefficient
		if err := scanClassCoefficient(rows, &c); err != nil {
			return nil, err
		}
		coefficients = append(coefficients, c)
	}
	return coefficients, rows.Err()
}

func (r *ClassCoefficientRepository) Update(ctx context.Context, c *model.ClassCoefficient) error {
	return r.pool.QueryRow(ctx,
		`UPDATE class_coefficients SET standard_student_range = $1, updated_at = NOW()
		 WHERE id = $2 RETURNING academic_year, created_at, updated_at`,
		c.StandardStudentRange, c.ID,
	).Scan(&c.AcademicYear, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClassCoefficientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM class_coefficients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
