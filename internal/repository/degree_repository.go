package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// DegreeRepository handles degree data access.
type DegreeRepository struct {
	pool *pgxpool.Pool
}

// NewDegreeRepository creates a new DegreeRepository.
func NewDegreeRepository(pool *pgxpool.Pool) *DegreeRepository {
	return &DegreeRepository{pool: pool}
}

func (r *DegreeRepository) Create(ctx context.Context, d *model.Degree) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO degrees (full_name, short_name) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		d.FullName, d.ShortName,
	).Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DegreeRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Degree, error) {
	d := &model.Degree{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, full_name, short_name, created_at, updated_at FROM degrees WHERE id = $1`, id,
	).Scan(&d.ID, &d.FullName, &d.ShortName, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DegreeRepository) List(ctx context.Context) ([]model.Degree, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, full_name, short_name, created_at, updated_at FROM degrees ORDER BY full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	degrees := []model.Degree{}
	for rows.Next() {
		var d model.Degree
		if err := rows.Scan(&d.ID, &d.FullName, &d.ShortName, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		degrees = append(degrees, d)
	}
	return degrees, rows.Err()
}

func (r *DegreeRepository) Update(ctx context.Context, d *model.Degree) error {
	return r.pool.QueryRow(ctx,
		`UPDATE degrees SET full_name = $1, short_name = $2, updated_at = NOW()
		 WHERE id = $3 RETURNING created_at, updated_at`,
		d.FullName, d.ShortName, d.ID,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

// Delete removes a degree. It returns pgx.ErrNoRows when nothing was deleted.
func (r *DegreeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM degrees WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
