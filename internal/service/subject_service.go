package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
)

type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	log         zerolog.Logger
}

func NewSubjectService(subjectRepo *repository.SubjectRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

func (s *SubjectService) List(ctx context.Context, departmentID *uuid.UUID, search string) ([]model.Subject, error) {
	return s.subjectRepo.List(ctx, departmentID, search)
}

func (s *SubjectService) Get(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	sub, err := s.subjectRepo.GetByID(ctx, id)
	return sub, readErr(err)
}

// Create stores a subject under the next HP<nnnn> code.
func (s *SubjectService) Create(ctx context.Context, req model.CreateSubjectRequest) (*model.Subject, error) {
	code, err := s.subjectRepo.NextCode(ctx)
	if err != nil {
		return nil, err
	}

	sub := subjectFromRequest(req)
	sub.Code = code
	if err := s.subjectRepo.Create(ctx, sub); err != nil {
		return nil, writeErr(err)
	}
	s.log.Info().Str("subject_id", sub.ID.String()).Str("code", code).Msg("subject created")
	return s.Get(ctx, sub.ID)
}

func (s *SubjectService) Update(ctx context.Context, id uuid.UUID, req model.CreateSubjectRequest) (*model.Subject, error) {
	sub := subjectFromRequest(req)
	sub.ID = id
	if err := s.subjectRepo.Update(ctx, sub); err != nil {
		return nil, writeErr(err)
	}
	return s.Get(ctx, id)
}

func (s *SubjectService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.subjectRepo.Delete(ctx, id))
}

func subjectFromRequest(req model.CreateSubjectRequest) *model.Subject {
	return &model.Subject{
		Name:         req.Name,
		Credits:      req.Credits,
		Coefficient:  decimal.NewFromFloat(req.Coefficient),
		TotalPeriods: req.TotalPeriods,
		DepartmentID: req.DepartmentID,
	}
}
