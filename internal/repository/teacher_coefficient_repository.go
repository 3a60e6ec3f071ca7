package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// TeacherCoefficientRepository handles teacher coefficient data access.
type TeacherCoefficientRepository struct {
	pool *pgxpool.Pool
}

// NewTeacherCoefficientRepository creates a new TeacherCoefficientRepository.
func NewTeacherCoefficientRepository(pool *pgxpool.Pool) *TeacherCoefficientRepository {
	return &TeacherCoefficientRepository{pool: pool}
}

const teacherCoefficientSelect = `
	SELECT tc.id, tc.academic_year, tc.degree_id, d.full_name, tc.coefficient, tc.created_at, tc.updated_at
	FROM teacher_coefficients tc
	JOIN degrees d ON d.id = tc.degree_id`

func scanTeacherCoefficient(row pgx.Row, c *model.TeacherCoefficient) error {
	return row.Scan(&c.ID, &c.AcademicYear, &c.DegreeID, &c.DegreeName, &c.Coefficient, &c.CreatedAt, &c.UpdatedAt)
}

func (r *TeacherCoefficientRepository) Create(ctx context.Context, c *model.TeacherCoefficient) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO teacher_coefficients (academic_year, degree_id, coefficient) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		c.AcademicYear, c.DegreeID, c.Coefficient,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *TeacherCoefficientRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TeacherCoefficient, error) {
	c := &model.TeacherCoefficient{}
	if err := scanTeacherCoefficient(r.pool.QueryRow(ctx, teacherCoefficientSelect+` WHERE tc.id = $1`, id), c); err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves stored coefficients, optionally for one academic year.
func (r *TeacherCoefficientRepository) List(ctx context.Context, academicYear string) ([]model.TeacherCoefficient, error) {
	var where filter
	if academicYear != "" {
		where.add("tc.academic_year = ?", academicYear)
	}

	rows, err := r.pool.Query(ctx, teacherCoefficientSelect+where.where()+` ORDER BY tc.academic_year DESC, d.full_name`, where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	coefficients := []model.TeacherCoefficient{}
	for rows.Next() {
		var c model.TeacherCoefficient
		if err := scanTeacherCoefficient(rows, &c); err != nil {
			return nil, err
		}
		coefficients = append(coefficients, c)
	}
	return coefficients, rows.Err()
}

func (r *TeacherCoefficientRepository) Update(ctx context.Context, c *model.TeacherCoefficient) error {
	return r.pool.QueryRow(ctx,
		`UPDATE teacher_coefficients SET coefficient = $1, updated_at = NOW()
		 WHERE id = $2 RETURNING academic_year, degree_id, created_at, updated_at`,
		c.Coefficient, c.ID,
	).Scan(&c.AcademicYear, &c.DegreeID, &c.CreatedAt, &c.UpdatedAt)
}

// BatchUpsert writes every (degree, coefficient) pair for the year in one
// round trip inside a transaction.
func (r *TeacherCoefficientRepository) BatchUpsert(ctx context.Context, academicYear string, values map[uuid.UUID]decimal.Decimal) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for degreeID, coefficient := range values {
		batch.Queue(
			`INSERT INTO teacher_coefficients (academic_year, degree_id, coefficient) VALUES ($1, $2, $3)
			 ON CONFLICT (academic_year, degree_id)
			 DO UPDATE SET coefficient = EXCLUDED.coefficient, updated_at = NOW()`,
			academicYear, degreeID, coefficient)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TeacherCoefficientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teacher_coefficients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
