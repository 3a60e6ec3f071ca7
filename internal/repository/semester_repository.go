package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// SemesterRepository handles semester data access.
type SemesterRepository struct {
	pool *pgxpool.Pool
}

// NewSemesterRepository creates a new SemesterRepository.
func NewSemesterRepository(pool *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{pool: pool}
}

const semesterColumns = `id, term_number, is_supplementary, academic_year, start_date, end_date, created_at, updated_at`

func scanSemester(row pgx.Row, s *model.Semester) error {
	return row.Scan(&s.ID, &s.TermNumber, &s.IsSupplementary, &s.AcademicYear,
		&s.StartDate, &s.EndDate, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SemesterRepository) Create(ctx context.Context, s *model.Semester) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO semesters (term_number, is_supplementary, academic_year, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		s.TermNumber, s.IsSupplementary, s.AcademicYear, s.StartDate, s.EndDate,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

func (r *SemesterRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Semester, error) {
	s := &model.Semester{}
	if err := scanSemester(r.pool.QueryRow(ctx, `SELECT `+semesterColumns+` FROM semesters WHERE id = $1`, id), s); err != nil {
		return nil, err
	}
	return s, nil
}

// List retrieves semesters, newest year first, optionally for one academic year.
func (r *SemesterRepository) List(ctx context.Context, academicYear string) ([]model.Semester, error) {
	var where filter
	if academicYear != "" {
		where.add("academic_year = ?", academicYear)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+semesterColumns+` FROM semesters`+where.where()+
			` ORDER BY academic_year DESC, term_number, is_supplementary`,
		where.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	semesters := []model.Semester{}
	for rows.Next() {
		var s model.Semester
		if err := scanSemester(rows, &s); err != nil {
			return nil, err
		}
		semesters = append(semesters, s)
	}
	return semesters, rows.Err()
}

// AcademicYears lists the distinct academic years that have semesters, newest first.
func (r *SemesterRepository) AcademicYears(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT academic_year FROM semesters ORDER BY academic_year DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	years := []string{}
	for rows.Next() {
		var y string
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (r *SemesterRepository) Update(ctx context.Context, s *model.Semester) error {
	return r.pool.QueryRow(ctx,
		`UPDATE semesters SET term_number = $1, is_supplementary = $2, academic_year = $3,
		        start_date = $4, end_date = $5, updated_at = NOW()
		 WHERE id = $6 RETURNING created_at, updated_at`,
		s.TermNumber, s.IsSupplementary, s.AcademicYear, s.StartDate, s.EndDate, s.ID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
}

func (r *SemesterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
