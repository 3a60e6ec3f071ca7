package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// StatisticsRepository runs the staff head-count queries.
type StatisticsRepository struct {
	pool *pgxpool.Pool
}

// NewStatisticsRepository creates a new StatisticsRepository.
func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepository {
	return &StatisticsRepository{pool: pool}
}

// CountByDepartment returns every department with its teacher count,
// including departments with none.
func (r *StatisticsRepository) CountByDepartment(ctx context.Context) ([]model.CountStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT d.id, d.full_name, d.short_name, COUNT(t.id)
		 FROM departments d
		 LEFT JOIN teachers t ON t.department_id = d.id
		 GROUP BY d.id, d.full_name, d.short_name
		 ORDER BY d.full_name`)
	if err != nil {
		return nil, err
	}
	return collectCounts(rows)
}

// CountByDegree returns every degree with its teacher count, including
// degrees with none.
func (r *StatisticsRepository) CountByDegree(ctx context.Context) ([]model.CountStat, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT d.id, d.full_name, d.short_name, COUNT(t.id)
		 FROM degrees d
		 LEFT JOIN teachers t ON t.degree_id = d.id
		 GROUP BY d.id, d.full_name, d.short_name
		 ORDER BY d.full_name`)
	if err != nil {
		return nil, err
	}
	return collectCounts(rows)
}

// BirthDates returns the date of birth of every teacher.
func (r *StatisticsRepository) BirthDates(ctx context.Context) ([]time.Time, error) {
	rows, err := r.pool.Query(ctx, `SELECT date_of_birth FROM teachers`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	dates := []time.Time{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func collectCounts(rows pgx.Rows) ([]model.CountStat, error) {
	defer rows.Close()

	stats := []model.CountStat{}
	for rows.Next() {
		var s model.CountStat
		if err := rows.Scan(&s.ID, &s.FullName, &s.ShortName, &s.Count); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
