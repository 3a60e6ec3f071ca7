package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/repository"
)

// suggestedCoefficients are shown for degrees without a stored coefficient.
// Payroll never uses them: a missing coefficient prices at
// payroll.DefaultTeacherCoefficient.
var suggestedCoefficients = map[string]string{
	"cử nhân":     "1.3",
	"thạc sĩ":     "1.5",
	"tiến sĩ":     "1.7",
	"phó giáo sư": "2.0",
	"giáo sư":     "2.5",
}

// SuggestedCoefficient returns the listing hint for a degree name.
func SuggestedCoefficient(degreeName string) decimal.Decimal {
	if v, ok := suggestedCoefficients[strings.ToLower(strings.TrimSpace(degreeName))]; ok {
		return decimal.RequireFromString(v)
	}
	return payroll.DefaultTeacherCoefficient
}

// CoefficientService manages the per-year payroll reference data: hourly
// rates, teacher coefficients and class coefficients. Each is created once
// per academic year and then updated.
type CoefficientService struct {
	rateRepo    *repository.HourlyRateRepository
	teacherRepo *repository.TeacherCoefficientRepository
	classRepo   *repository.ClassCoefficientRepository
	degreeRepo  *repository.DegreeRepository
	log         zerolog.Logger
}

// NewCoefficientService creates a new CoefficientService.
func NewCoefficientService(
	rateRepo *repository.HourlyRateRepository,
	teacherRepo *repository.TeacherCoefficientRepository,
	classRepo *repository.ClassCoefficientRepository,
	degreeRepo *repository.DegreeRepository,
	log zerolog.Logger,
) *CoefficientService {
	return &CoefficientService{
		rateRepo:    rateRepo,
		teacherRepo: teacherRepo,
		classRepo:   classRepo,
		degreeRepo:  degreeRepo,
		log:         log.With().Str("component", "coefficient_service").Logger(),
	}
}

// configErr maps a duplicate year to ErrAlreadyConfigured.
func configErr(err error) error {
	err = writeErr(err)
	if errors.Is(err, ErrConflict) {
		return ErrAlreadyConfigured
	}
	return err
}

// ─── Hourly rates ───────────────────────────────────────────────────────

func (s *CoefficientService) ListHourlyRates(ctx context.Context) ([]model.HourlyRate, error) {
	return s.rateRepo.List(ctx)
}

func (s *CoefficientService) GetHourlyRate(ctx context.Context, id uuid.UUID) (*model.HourlyRate, error) {
	h, err := s.rateRepo.GetByID(ctx, id)
	return h, readErr(err)
}

func (s *CoefficientService) GetHourlyRateByYear(ctx context.Context, academicYear string) (*model.HourlyRate, error) {
	h, err := s.rateRepo.GetByAcademicYear(ctx, academicYear)
	return h, readErr(err)
}

func (s *CoefficientService) CreateHourlyRate(ctx context.Context, req model.CreateHourlyRateRequest) (*model.HourlyRate, error) {
	h := &model.HourlyRate{AcademicYear: req.AcademicYear, RatePerHour: decimal.NewFromFloat(req.RatePerHour)}
	if err := s.rateRepo.Create(ctx, h); err != nil {
		return nil, configErr(err)
	}
	s.log.Info().Str("academic_year", h.AcademicYear).Str("rate", h.RatePerHour.String()).Msg("hourly rate created")
	return h, nil
}

func (s *CoefficientService) UpdateHourlyRate(ctx context.Context, id uuid.UUID, req model.UpdateHourlyRateRequest) (*model.HourlyRate, error) {
	h := &model.HourlyRate{ID: id, RatePerHour: decimal.NewFromFloat(req.RatePerHour)}
	if err := s.rateRepo.Update(ctx, h); err != nil {
		return nil, writeErr(err)
	}
	s.log.Info().Str("academic_year", h.AcademicYear).Str("rate", h.RatePerHour.String()).Msg("hourly rate updated")
	return h, nil
}

func (s *CoefficientService) DeleteHourlyRate(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.rateRepo.Delete(ctx, id))
}

// ─── Teacher coefficients ───────────────────────────────────────────────

func (s *CoefficientService) ListTeacherCoefficients(ctx context.Context, academicYear string) ([]model.TeacherCoefficient, error) {
	return s.teacherRepo.List(ctx, academicYear)
}

func (s *CoefficientService) GetTeacherCoefficient(ctx context.Context, id uuid.UUID) (*model.TeacherCoefficient, error) {
	c, err := s.teacherRepo.GetByID(ctx, id)
	return c, readErr(err)
}

// TeacherCoefficientsForYear lists every degree with its coefficient for
// the year, filling gaps with the suggested value flagged as defaulted.
func (s *CoefficientService) TeacherCoefficientsForYear(ctx context.Context, academicYear string) ([]model.DegreeCoefficientView, error) {
	degrees, err := s.degreeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.teacherRepo.List(ctx, academicYear)
	if err != nil {
		return nil, err
	}
	return mergeDegreeCoefficients(academicYear, degrees, stored), nil
}

func mergeDegreeCoefficients(academicYear string, degrees []model.Degree, stored []model.TeacherCoefficient) []model.DegreeCoefficientView {
	byDegree := make(map[uuid.UUID]model.TeacherCoefficient, len(stored))
	for _, c := range stored {
		byDegree[c.DegreeID] = c
	}

	views := make([]model.DegreeCoefficientView, 0, len(degrees))
	for _, d := range degrees {
		view := model.DegreeCoefficientView{
			AcademicYear: academicYear,
			DegreeID:     d.ID,
			DegreeName:   d.FullName,
			DegreeShort:  d.ShortName,
		}
		if c, ok := byDegree[d.ID]; ok {
			id := c.ID
			view.ID = &id
			view.Coefficient = c.Coefficient
			view.Source = payroll.CoefficientResolved
		} else {
			view.Coefficient = SuggestedCoefficient(d.FullName)
			view.Source = payroll.CoefficientDefaulted
		}
		views = append(views, view)
	}
	return views
}

func (s *CoefficientService) CreateTeacherCoefficient(ctx context.Context, req model.CreateTeacherCoefficientRequest) (*model.TeacherCoefficient, error) {
	c := &model.TeacherCoefficient{
		AcademicYear: req.AcademicYear,
		DegreeID:     req.DegreeID,
		Coefficient:  decimal.NewFromFloat(req.Coefficient),
	}
	if err := s.teacherRepo.Create(ctx, c); err != nil {
		return nil, configErr(err)
	}
	return s.GetTeacherCoefficient(ctx, c.ID)
}

func (s *CoefficientService) UpdateTeacherCoefficient(ctx context.Context, id uuid.UUID, req model.UpdateTeacherCoefficientRequest) (*model.TeacherCoefficient, error) {
	c := &model.TeacherCoefficient{ID: id, Coefficient: decimal.NewFromFloat(req.Coefficient)}
	if err := s.teacherRepo.Update(ctx, c); err != nil {
		return nil, writeErr(err)
	}
	return s.GetTeacherCoefficient(ctx, id)
}

// BatchUpsertTeacherCoefficients creates or replaces several degree
// coefficients for one year and returns the merged listing.
func (s *CoefficientService) BatchUpsertTeacherCoefficients(ctx context.Context, req model.BatchTeacherCoefficientRequest) ([]model.DegreeCoefficientView, error) {
	values := make(map[uuid.UUID]decimal.Decimal, len(req.Items))
	for _, item := range req.Items {
		values[item.DegreeID] = decimal.NewFromFloat(item.Coefficient)
	}
	if err := s.teacherRepo.BatchUpsert(ctx, req.AcademicYear, values); err != nil {
		return nil, writeErr(err)
	}
	s.log.Info().Str("academic_year", req.AcademicYear).Int("degrees", len(values)).Msg("teacher coefficients upserted")
	return s.TeacherCoefficientsForYear(ctx, req.AcademicYear)
}

func (s *CoefficientService) DeleteTeacherCoefficient(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.teacherRepo.Delete(ctx, id))
}

// ─── Class coefficients ─────────────────────────────────────────────────

func (s *CoefficientService) ListClassCoefficients(ctx context.Context) ([]model.ClassCoefficient, error) {
	return s.classRepo.List(ctx)
}

func (s *CoefficientService) GetClassCoefficient(ctx context.Context, id uuid.UUID) (*model.ClassCoefficient, error) {
	c, err := s.classRepo.GetByID(ctx, id)
	return c, readErr(err)
}

// ClassCoefficientForYear returns the year's class standard, or
// payroll.DefaultRange flagged as defaulted when none is stored.
func (s *CoefficientService) ClassCoefficientForYear(ctx context.Context, academicYear string) (*model.ClassCoefficientView, error) {
	c, err := s.classRepo.GetByAcademicYear(ctx, academicYear)
	if err = readErr(err); errors.Is(err, ErrNotFound) {
		return &model.ClassCoefficientView{
			AcademicYear:         academicYear,
			StandardStudentRange: payroll.DefaultRange,
			Source:               payroll.CoefficientDefaulted,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	id := c.ID
	return &model.ClassCoefficientView{
		ID:                   &id,
		AcademicYear:         c.AcademicYear,
		StandardStudentRange: c.StandardStudentRange,
		Source:               payroll.CoefficientResolved,
	}, nil
}

func (s *CoefficientService) CreateClassCoefficient(ctx context.Context, req model.CreateClassCoefficientRequest) (*model.ClassCoefficient, error) {
	c := &model.ClassCoefficient{
		AcademicYear:         req.AcademicYear,
		StandardStudentRange: payroll.StudentRange(req.StandardStudentRange),
	}
	if err := s.classRepo.Create(ctx, c); err != nil {
		return nil, configErr(err)
	}
	return c, nil
}

// UpsertClassCoefficient creates or replaces the standard for a year.
func (s *CoefficientService) UpsertClassCoefficient(ctx context.Context, academicYear string, req model.UpdateClassCoefficientRequest) (*model.ClassCoefficient, error) {
	c := &model.ClassCoefficient{
		AcademicYear:         academicYear,
		StandardStudentRange: payroll.StudentRange(req.StandardStudentRange),
	}
	if err := s.classRepo.Upsert(ctx, c); err != nil {
		return nil, writeErr(err)
	}
	s.log.Info().Str("academic_year", academicYear).Str("range", string(c.StandardStudentRange)).Msg("class coefficient upserted")
	return c, nil
}

func (s *CoefficientService) UpdateClassCoefficient(ctx context.Context, id uuid.UUID, req model.UpdateClassCoefficientRequest) (*model.ClassCoefficient, error) {
	c := &model.ClassCoefficient{ID: id, StandardStudentRange: payroll.StudentRange(req.StandardStudentRange)}
	if err := s.classRepo.Update(ctx, c); err != nil {
		return nil, writeErr(err)
	}
	return c, nil
}

func (s *CoefficientService) DeleteClassCoefficient(ctx context.Context, id uuid.UUID) error {
	return deleteErr(s.classRepo.Delete(ctx, id))
}
