package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// UserRepository handles login account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userSelect = `
	SELECT u.id, u.username, u.password_hash, u.role, u.teacher_id, t.full_name, u.is_active,
	       u.created_at, u.updated_at
	FROM users u
	LEFT JOIN teachers t ON t.id = u.teacher_id`

func scanUser(row pgx.Row, u *model.User) error {
	return row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.TeacherID, &u.TeacherName,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := &model.User{}
	if err := scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE u.id = $1`, id), u); err != nil {
		return nil, err
	}
	return u, nil
}

// GetByUsername retrieves a user by their unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	if err := scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE u.username = $1`, username), u); err != nil {
		return nil, err
	}
	return u, nil
}

// ListPaginated retrieves users, optionally of one role, with the total count.
func (r *UserRepository) ListPaginated(ctx context.Context, role model.Role, limit, offset int) ([]model.User, int, error) {
	var where filter
	if role != "" {
		where.add("u.role = ?", role)
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+where.where(), where.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	clause, args := where.page(limit, offset)
	rows, err := r.pool.Query(ctx, userSelect+where.where()+` ORDER BY u.created_at DESC`+clause, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (username, password_hash, role, teacher_id, is_active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.PasswordHash, u.Role, u.TeacherID, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// Update writes username, role, activity and password hash.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`UPDATE users SET username = $1, password_hash = $2, role = $3, is_active = $4, updated_at = NOW()
		 WHERE id = $5 RETURNING created_at, updated_at`,
		u.Username, u.PasswordHash, u.Role, u.IsActive, u.ID,
	).Scan(&u.CreatedAt, &u.UpdatedAt)
}

// UpdatePassword updates a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, id)
	return err
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
