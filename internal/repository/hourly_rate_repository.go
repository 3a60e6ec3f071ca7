package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// HourlyRateRepository handles hourly rate data access.
type HourlyRateRepository struct {
	pool *pgxpool.Pool
}

// NewHourlyRateRepository creates a new HourlyRateRepository.
func NewHourlyRateRepository(pool *pgxpool.Pool) *HourlyRateRepository {
	return &HourlyRateRepository{pool: pool}
}

const hourlyRateColumns = `id, academic_year, rate_per_hour, created_at, updated_at`

func scanHourlyRate(row pgx.Row, h *model.HourlyRate) error {
	return row.Scan(&h.ID, &h.AcademicYear, &h.RatePerHour, &h.CreatedAt, &h.UpdatedAt)
}

func (r *HourlyRateRepository) Create(ctx context.Context, h *model.HourlyRate) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO hourly_rates (academic_year, rate_per_hour) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		h.AcademicYear, h.RatePerHour,
	).Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt)
}

func (r *HourlyRateRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.HourlyRate, error) {
	h := &model.HourlyRate{}
	if err := scanHourlyRate(r.pool.QueryRow(ctx, `SELECT `+hourlyRateColumns+` FROM hourly_rates WHERE id = $1`, id), h); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HourlyRateRepository) GetByAcademicYear(ctx context.Context, academicYear string) (*model.HourlyRate, error) {
	h := &model.HourlyRate{}
	row := r.pool.QueryRow(ctx, `SELECT `+hourlyRateColumns+` FROM hourly_rates WHERE academic_year = $1`, academicYear)
	if err := scanHourlyRate(row, h); err != nil {
		return nil, err
	}
	return h, nil
}

func (r *HourlyRateRepository) List(ctx context.Context) ([]model.HourlyRate, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+hourlyRateColumns+` FROM hourly_rates ORDER BY academic_year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := []model.HourlyRate{}
	for rows.Next() {
		var h model.HourlyRate
		if err := scanHourlyRate(rows, &h); err != nil {
			return nil, err
		}
		rates = append(rates, h)
	}
	return rates, rows.Err()
}

func (r *HourlyRateRepository) Update(ctx context.Context, h *model.HourlyRate) error {
	return r.pool.QueryRow(ctx,
		`UPDATE hourly_rates SET rate_per_hour = $1, updated_at = NOW()
		 WHERE id = $2 RETURNING academic_year, created_at, updated_at`,
		h.RatePerHour, h.ID,
	).Scan(&h.AcademicYear, &h.CreatedAt, &h.UpdatedAt)
}

func (r *HourlyRateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM hourly_rates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
