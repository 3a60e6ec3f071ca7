package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/export"
	"github.com/stemsi/teachpay-backend/internal/logger"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/repository"
)

// ReportService exposes the payroll engine and renders its reports.
type ReportService struct {
	engine       *payroll.Engine
	semesterRepo *repository.SemesterRepository
	rateRepo     *repository.HourlyRateRepository
	classRepo    *repository.ClassCoefficientRepository
	coefRepo     *repository.TeacherCoefficientRepository
	degreeRepo   *repository.DegreeRepository
	log          zerolog.Logger
}

// NewReportService creates a new ReportService.
func NewReportService(
	engine *payroll.Engine,
	semesterRepo *repository.SemesterRepository,
	rateRepo *repository.HourlyRateRepository,
	classRepo *repository.ClassCoefficientRepository,
	coefRepo *repository.TeacherCoefficientRepository,
	degreeRepo *repository.DegreeRepository,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		engine:       engine,
		semesterRepo: semesterRepo,
		rateRepo:     rateRepo,
		classRepo:    classRepo,
		coefRepo:     coefRepo,
		degreeRepo:   degreeRepo,
		log:          log.With().Str("component", "report_service").Logger(),
	}
}

// Calculate prices one teacher's classes in one semester.
func (s *ReportService) Calculate(ctx context.Context, req model.CalculatePayrollRequest) (*payroll.PayrollResult, error) {
	res, err := s.engine.CalculateSinglePayroll(ctx, req.AcademicYear, req.SemesterID, req.TeacherID)
	if err != nil {
		s.logFailure(ctx, err, req.AcademicYear)
		return nil, err
	}
	logger.For(ctx, s.log).Info().
		Str("teacher_id", req.TeacherID.String()).
		Str("semester_id", req.SemesterID.String()).
		Str("total_salary", res.Summary.TotalSalary.String()).
		Msg("payroll calculated")
	return res, nil
}

func (s *ReportService) TeacherSemester(ctx context.Context, teacherID, semesterID uuid.UUID) (*payroll.TeacherSemesterReport, error) {
	r, err := s.engine.TeacherSemesterReport(ctx, teacherID, semesterID)
	if err != nil {
		s.logFailure(ctx, err, "")
	}
	return r, err
}

func (s *ReportService) TeacherYearly(ctx context.Context, teacherID uuid.UUID, academicYear string) (*payroll.TeacherYearlyReport, error) {
	r, err := s.engine.TeacherYearlyReport(ctx, teacherID, academicYear)
	if err != nil {
		s.logFailure(ctx, err, academicYear)
	}
	return r, err
}

func (s *ReportService) Department(ctx context.Context, departmentID uuid.UUID, academicYear string, semesterID *uuid.UUID) (*payroll.DepartmentReport, error) {
	r, err := s.engine.DepartmentReport(ctx, departmentID, academicYear, semesterID)
	if err != nil {
		s.logFailure(ctx, err, academicYear)
	}
	return r, err
}

func (s *ReportService) Institution(ctx context.Context, academicYear string, semesterID *uuid.UUID) (*payroll.InstitutionReport, error) {
	r, err := s.engine.InstitutionReport(ctx, academicYear, semesterID)
	if err != nil {
		s.logFailure(ctx, err, academicYear)
	}
	return r, err
}

// AcademicYears lists the years that have at least one semester, newest first.
func (s *ReportService) AcademicYears(ctx context.Context) ([]string, error) {
	return s.semesterRepo.AcademicYears(ctx)
}

// ConfigStatus reports which reference data the year still lacks.
func (s *ReportService) ConfigStatus(ctx context.Context, academicYear string) (*model.ConfigStatus, error) {
	rate, err := s.rateRepo.GetByAcademicYear(ctx, academicYear)
	if err = readErr(err); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	class, err := s.classRepo.GetByAcademicYear(ctx, academicYear)
	if err = readErr(err); err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	degrees, err := s.degreeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	stored, err := s.coefRepo.List(ctx, academicYear)
	if err != nil {
		return nil, err
	}
	return buildConfigStatus(academicYear, s.engine.Policy(), rate, class, degrees, stored), nil
}

func buildConfigStatus(
	academicYear string,
	policy payroll.CoefficientPolicy,
	rate *model.HourlyRate,
	class *model.ClassCoefficient,
	degrees []model.Degree,
	stored []model.TeacherCoefficient,
) *model.ConfigStatus {
	st := &model.ConfigStatus{
		AcademicYear:              academicYear,
		HourlyRate:                rate,
		ClassCoefficient:          class,
		DegreesWithoutCoefficient: []model.Degree{},
		Policy:                    policy,
		Missing:                   []payroll.ConfigKind{},
	}

	covered := make(map[uuid.UUID]bool, len(stored))
	for _, c := range stored {
		covered[c.DegreeID] = true
	}
	for _, d := range degrees {
		if !covered[d.ID] {
			st.DegreesWithoutCoefficient = append(st.DegreesWithoutCoefficient, d)
		}
	}

	if rate == nil {
		st.Missing = append(st.Missing, payroll.ConfigHourlyRate)
	}
	if class == nil {
		st.Missing = append(st.Missing, payroll.ConfigClassCoefficient)
	}
	if policy == payroll.PolicyRequired && len(st.DegreesWithoutCoefficient) > 0 {
		st.Missing = append(st.Missing, payroll.ConfigTeacherCoefficient)
	}
	st.Ready = len(st.Missing) == 0
	return st
}

// ─── Workbooks ──────────────────────────────────────────────────────────

// ValidateExportParams checks that the identifiers the kind needs are set.
func ValidateExportParams(p model.ExportParams) error {
	var ok bool
	switch p.Kind {
	case model.ExportTeacherYearly:
		ok = p.TeacherID != nil && p.AcademicYear != ""
	case model.ExportTeacherSemester:
		ok = p.TeacherID != nil && p.SemesterID != nil
	case model.ExportDepartment:
		ok = p.DepartmentID != nil && p.AcademicYear != ""
	case model.ExportInstitution:
		ok = p.AcademicYear != ""
	}
	if !ok {
		return fmt.Errorf("%s: %w", p.Kind, ErrInvalidExportParams)
	}
	return nil
}

// Render computes the report the params describe and renders it as xlsx.
func (s *ReportService) Render(ctx context.Context, p model.ExportParams) (*export.Workbook, error) {
	if err := ValidateExportParams(p); err != nil {
		return nil, err
	}

	switch p.Kind {
	case model.ExportTeacherYearly:
		r, err := s.TeacherYearly(ctx, *p.TeacherID, p.AcademicYear)
		if err != nil {
			return nil, err
		}
		return export.TeacherYearly(r)
	case model.ExportTeacherSemester:
		r, err := s.TeacherSemester(ctx, *p.TeacherID, *p.SemesterID)
		if err != nil {
			return nil, err
		}
		return export.TeacherSemester(r)
	case model.ExportDepartment:
		r, err := s.Department(ctx, *p.DepartmentID, p.AcademicYear, p.SemesterID)
		if err != nil {
			return nil, err
		}
		return export.Department(r)
	default:
		r, err := s.Institution(ctx, p.AcademicYear, p.SemesterID)
		if err != nil {
			return nil, err
		}
		return export.Institution(r)
	}
}

func (s *ReportService) logFailure(ctx context.Context, err error, academicYear string) {
	log := logger.For(ctx, s.log)
	var missing *payroll.ConfigurationMissingError
	switch {
	case errors.As(err, &missing):
		log.Warn().
			Str("kind", string(missing.Kind)).
			Str("academic_year", missing.AcademicYear).
			Msg("payroll configuration missing")
	case errors.Is(err, payroll.ErrNotFound), errors.Is(err, payroll.ErrSemesterYearMismatch):
		log.Debug().Err(err).Str("academic_year", academicYear).Msg("report rejected")
	default:
		log.Error().Err(err).Str("academic_year", academicYear).Msg("report failed")
	}
}
