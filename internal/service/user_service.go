package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
	"github.com/stemsi/teachpay-backend/internal/response"
)

// UserService manages login accounts.
type UserService struct {
	userRepo    *repository.UserRepository
	authService *AuthService
	log         zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository, authService *AuthService, log zerolog.Logger) *UserService {
	return &UserService{
		userRepo:    userRepo,
		authService: authService,
		log:         log.With().Str("component", "user_service").Logger(),
	}
}

// List retrieves a page of users, optionally of one role.
func (s *UserService) List(ctx context.Context, role model.Role, page Page) ([]model.User, *response.Pagination, error) {
	page = page.normalize()
	limit, offset := page.limitOffset()

	users, total, err := s.userRepo.ListPaginated(ctx, role, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return users, page.pagination(total), nil
}

func (s *UserService) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	return u, readErr(err)
}

// Create adds a login account. TEACHER accounts must link a teacher and
// other roles must not.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	if (req.Role == model.RoleTeacher) != (req.TeacherID != nil) {
		return nil, ErrTeacherLinkRequired
	}

	hash, err := s.authService.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		TeacherID:    req.TeacherID,
		IsActive:     req.IsActive == nil || *req.IsActive,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, writeErr(err)
	}

	s.log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("user created")
	return s.Get(ctx, u.ID)
}

// Update changes the fields present in req.
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		u.Username = *req.Username
	}
	if req.Role != nil {
		if (*req.Role == model.RoleTeacher) != (u.TeacherID != nil) {
			return nil, ErrTeacherLinkRequired
		}
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if u.PasswordHash, err = s.authService.HashPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, u); err != nil {
		return nil, writeErr(err)
	}
	return s.Get(ctx, id)
}

// Delete removes an account other than the caller's own.
func (s *UserService) Delete(ctx context.Context, id, callerID uuid.UUID) error {
	if id == callerID {
		return ErrCannotDeleteSelf
	}
	return deleteErr(s.userRepo.Delete(ctx, id))
}
