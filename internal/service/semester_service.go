package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/repository"
)

// SemesterService manages semesters.
type SemesterService struct {
	semesterRepo *repository.SemesterRepository
	log          zerolog.Logger
}

// NewSemesterService creates a new SemesterService.
func NewSemesterService(semesterRepo *repository.SemesterRepository, log zerolog.Logger) *SemesterService {
	return &SemesterService{
		semesterRepo: semesterRepo,
		log:          log.With().Str("component", "semester_service").Logger(),
	}
}

func (s *SemesterService) List(ctx context.Context, academicYear string) ([]model.Semester, error) {
	return s.semesterRepo.List(ctx, academicYear)
}

func (s *SemesterService) Get(ctx context.Context, id uuid.UUID) (*model.Semester, error) {
	sem, err := s.semesterRepo.GetByID(ctx, id)
	return sem, readErr(err)
}

// AcademicYears lists the years that have at least one semester.
func (s *SemesterService) AcademicYears(ctx context.Context) ([]string, error) {
	return s.semesterRepo.AcademicYears(ctx)
}

func (s *SemesterService) Create(ctx context.Context, req model.CreateSemesterRequest) (*model.Semester, error) {
	sem, err := semesterFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.semesterRepo.Create(ctx, sem); err != nil {
		return nil, writeErr(err)
	}
	s.log.Info().Str("semester_id", sem.ID.String()).Str("academic_year", sem.AcademicYear).
		Int("term", sem.TermNumber).Msg("semester created")
	return sem, nil
}

func (s *SemesterService) Update(ctx context.Context, id uuid.UUID, req model.CreateSemesterRequest) (*model.Semester, error) {
	sem, err := semesterFromRequest(req)
	if err != nil {
		return nil, err
	}
	sem.ID = id
	if err := s.semesterRepo.Update(ctx, sem); err != nil {
		return nil, writeErr(err)
	}
	return sem, nil
}

func (s *SemesterService) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.semesterRepo.Delete(ctx, id))
}

func semesterFromRequest(req model.CreateSemesterRequest) (*model.Semester, error) {
	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}
	return &model.Semester{
		TermNumber:      req.TermNumber,
		IsSupplementary: req.IsSupplementary,
		AcademicYear:    req.AcademicYear,
		StartDate:       start,
		EndDate:         end,
	}, nil
}
