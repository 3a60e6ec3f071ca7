package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
)

// ReferenceService manages degrees and departments.
type ReferenceService struct {
	degreeRepo     *repository.DegreeRepository
	departmentRepo *repository.DepartmentRepository
	log            zerolog.Logger
}

func NewReferenceService(
	degreeRepo *repository.DegreeRepository,
	departmentRepo *repository.DepartmentRepository,
	log zerolog.Logger,
) *ReferenceService {
	return &ReferenceService{
		degreeRepo:     degreeRepo,
		departmentRepo: departmentRepo,
		log:            log.With().Str("component", "reference_service").Logger(),
	}
}

// ─── Degrees ────────────────────────────────────────────────────────────

func (s *ReferenceService) ListDegrees(ctx context.Context) ([]model.Degree, error) {
	return s.degreeRepo.List(ctx)
}

func (s *ReferenceService) GetDegree(ctx context.Context, id uuid.UUID) (*model.Degree, error) {
	d, err := s.degreeRepo.GetByID(ctx, id)
	return d, readErr(err)
}

func (s *ReferenceService) CreateDegree(ctx context.Context, req model.CreateDegreeRequest) (*model.Degree, error) {
	d := &model.Degree{FullName: req.FullName, ShortName: req.ShortName}
	if err := s.degreeRepo.Create(ctx, d); err != nil {
		return nil, writeErr(err)
	}
	s.log.Info().Str("degree_id", d.ID.String()).Str("name", d.FullName).Msg("degree created")
	return d, nil
}

func (s *ReferenceService) UpdateDegree(ctx context.Context, id uuid.UUID, req model.UpdateDegreeRequest) (*model.Degree, error) {
	d := &model.Degree{ID: id, FullName: req.FullName, ShortName: req.ShortName}
	if err := s.degreeRepo.Update(ctx, d); err != nil {
		return nil, writeErr(err)
	}
	return d, nil
}

func (s *ReferenceService) DeleteDegree(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.degreeRepo.Delete(ctx, id))
}

// ─── Departments ────────────────────────────────────────────────────────

func (s *ReferenceService) ListDepartments(ctx context.Context) ([]model.Department, error) {
	return s.departmentRepo.List(ctx)
}

func (s *ReferenceService) GetDepartment(ctx context.Context, id uuid.UUID) (*model.Department, error) {
	d, err := s.departmentRepo.GetByID(ctx, id)
	return d, readErr(err)
}

func (s *ReferenceService) CreateDepartment(ctx context.Context, req model.CreateDepartmentRequest) (*model.Department, error) {
	d := &model.Department{FullName: req.FullName, ShortName: req.ShortName, Description: req.Description}
	if err := s.departmentRepo.Create(ctx, d); err != nil {
		return nil, writeErr(err)
	}
	s.log.Info().Str("department_id", d.ID.String()).Str("name", d.FullName).Msg("department created")
	return d, nil
}

func (s *ReferenceService) UpdateDepartment(ctx context.Context, id uuid.UUID, req model.CreateDepartmentRequest) (*model.Department, error) {
	d := &model.Department{ID: id, FullName: req.FullName, ShortName: req.ShortName, Description: req.Description}
	if err := s.departmentRepo.Update(ctx, d); err != nil {
		return nil, writeErr(err)
	}
	return d, nil
}

func (s *ReferenceService) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.departmentRepo.Delete(ctx, id))
}
