package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/config"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
	"github.com/stemsi/teachpay-backend/internal/response"
)

// TeacherService handles teacher records and their login accounts.
type TeacherService struct {
	teacherRepo *repository.TeacherRepository
	authService *AuthService
	cfg         *config.Config
	log         zerolog.Logger
}

// NewTeacherService creates a new TeacherService.
func NewTeacherService(teacherRepo *repository.TeacherRepository, authService *AuthService, cfg *config.Config, log zerolog.Logger) *TeacherService {
	return &TeacherService{
		teacherRepo: teacherRepo,
		authService: authService,
		cfg:         cfg,
		log:         log.With().Str("component", "teacher_service").Logger(),
	}
}

// List retrieves a page of teachers.
func (s *TeacherService) List(ctx context.Context, f model.TeacherFilter, page Page) ([]model.Teacher, *response.Pagination, error) {
	page = page.normalize()
	limit, offset := page.limitOffset()

	teachers, total, err := s.teacherRepo.ListPaginated(ctx, f, limit, offset)
	if err != nil {
		return nil, nil, err
	}
	return teachers, page.pagination(total), nil
}

func (s *TeacherService) Get(ctx context.Context, id uuid.UUID) (*model.Teacher, error) {
	t, err := s.teacherRepo.GetByID(ctx, id)
	return t, readErr(err)
}

// Create inserts a teacher and a TEACHER login named after the teacher code.
// An empty code is replaced by the next GV<nnnn> code.
func (s *TeacherService) Create(ctx context.Context, req model.CreateTeacherRequest) (*model.Teacher, error) {
	t, err := teacherFromRequest(req)
	if err != nil {
		return nil, err
	}

	if t.Code == "" {
		if t.Code, err = s.teacherRepo.NextCode(ctx); err != nil {
			return nil, err
		}
	}

	hash, err := s.authService.HashPassword(s.cfg.DefaultTeacherPassword)
	if err != nil {
		return nil, err
	}

	if err := s.teacherRepo.CreateWithAccount(ctx, t, hash); err != nil {
		return nil, writeErr(err)
	}

	s.log.Info().Str("teacher_id", t.ID.String()).Str("code", t.Code).Msg("teacher created with login account")
	return s.Get(ctx, t.ID)
}

func (s *TeacherService) Update(ctx context.Context, id uuid.UUID, req model.CreateTeacherRequest) (*model.Teacher, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t, err := teacherFromRequest(req)
	if err != nil {
		return nil, err
	}
	t.ID = id
	if t.Code == "" {
		t.Code = current.Code
	}

	if err := s.teacherRepo.Update(ctx, t); err != nil {
		return nil, writeErr(err)
	}
	return s.Get(ctx, id)
}

func (s *TeacherService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.teacherRepo.Delete(ctx, id))
}

func teacherFromRequest(req model.CreateTeacherRequest) (*model.Teacher, error) {
	dob, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &model.Teacher{
		Code:         req.Code,
		FullName:     req.FullName,
		DateOfBirth:  dob,
		Phone:        req.Phone,
		Email:        req.Email,
		DepartmentID: req.DepartmentID,
		DegreeID:     req.DegreeID,
	}, nil
}
