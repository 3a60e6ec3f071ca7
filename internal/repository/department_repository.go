package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// DepartmentRepository handles department data access.
type DepartmentRepository struct {
	pool *pgxpool.Pool
}

// NewDepartmentRepository creates a new DepartmentRepository.
func NewDepartmentRepository(pool *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

const departmentColumns = `id, full_name, short_name, description, created_at, updated_at`

func scanDepartment(row pgx.Row, d *model.Department) error {
	return row.Scan(&d.ID, &d.FullName, &d.ShortName, &d.Description, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DepartmentRepository) Create(ctx context.Context, d *model.Department) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO departments (full_name, short_name, description) VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`,
		d.FullName, d.ShortName, d.Description,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DepartmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	d := &model.Department{}
	row := r.pool.QueryRow(ctx, `SELECT `+departmentColumns+` FROM departments WHERE id = $1`, id)
	if err := scanDepartment(row, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DepartmentRepository) List(ctx context.Context) ([]model.Department, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+departmentColumns+` FROM departments ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := []model.Department{}
	for rows.Next() {
		var d model.Department
		if err := scanDepartment(rows, &d); err != nil {
			return nil, err
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}

func (r *DepartmentRepository) Update(ctx context.Context, d *model.Department) error {
	return r.pool.QueryRow(ctx,
		`UPDATE departments SET full_name = $1, short_name = $2, description = $3, updated_at = NOW()
		 WHERE id = $4 RETURNING created_at, updated_at`,
		d.FullName, d.ShortName, d.Description, d.ID,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

// Delete removes a department. It returns pgx.ErrNoRows when nothing was deleted.
func (r *DepartmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
