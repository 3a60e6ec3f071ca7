package payroll

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CoefficientPolicy decides what happens when a degree has no teacher
// coefficient for the year. The same policy applies to every report.
type CoefficientPolicy string

const (
	// PolicyDefault substitutes DefaultTeacherCoefficient.
	PolicyDefault CoefficientPolicy = "default"
	// PolicyRequired fails with a teacherCoefficient ConfigurationMissingError.
	PolicyRequired CoefficientPolicy = "required"
)

// ParsePolicy maps a configuration string to a policy, defaulting to PolicyDefault.
func ParsePolicy(s string) CoefficientPolicy {
	if CoefficientPolicy(s) == PolicyRequired {
		return PolicyRequired
	}
	return PolicyDefault
}

// Rates are the per-year inputs the calculator multiplies through.
type Rates struct {
	HourlyRate         decimal.Decimal
	TeacherCoefficient decimal.Decimal
	StandardRange      StudentRange
}

// YearConfig holds one academic year's reference data for the duration of a
// single request. Teacher coefficients are fetched lazily, once per degree.
type YearConfig struct {
	AcademicYear  string
	HourlyRate    HourlyRate
	ClassStandard ClassStandard

	store  Store
	policy CoefficientPolicy

	mu           sync.Mutex
	coefficients map[uuid.UUID]TeacherCoefficient
}

// LoadYearConfig fetches the hourly rate and class standard for a year.
// Both are required.
func LoadYearConfig(ctx context.Context, store Store, academicYear string, policy CoefficientPolicy) (*YearConfig, error) {
	rate, err := store.FindHourlyRate(ctx, academicYear)
	if err != nil {
		return nil, fmt.Errorf("find hourly rate: %w", err)
	}
	if rate == nil {
		return nil, missing(ConfigHourlyRate, academicYear)
	}

	standard, err := store.FindClassStandard(ctx, academicYear)
	if err != nil {
		return nil, fmt.Errorf("find class coefficient: %w", err)
	}
	if standard == nil {
		return nil, missing(ConfigClassCoefficient, academicYear)
	}

	return &YearConfig{
		AcademicYear:  academicYear,
		HourlyRate:    *rate,
		ClassStandard: *standard,
		store:         store,
		policy:        policy,
		coefficients:  make(map[uuid.UUID]TeacherCoefficient),
	}, nil
}

// TeacherCoefficient returns the coefficient for a degree, applying the
// configured policy when no record exists.
func (c *YearConfig) TeacherCoefficient(ctx context.Context, degreeID uuid.UUID) (TeacherCoefficient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if coef, ok := c.coefficients[degreeID]; ok {
		return coef, nil
	}

	rec, err := c.store.FindTeacherCoefficient(ctx, c.AcademicYear, degreeID)
	if err != nil {
		return TeacherCoefficient{}, fmt.Errorf("find teacher coefficient: %w", err)
	}

	var coef TeacherCoefficient
	switch {
	case rec != nil:
		coef = Resolved(rec.ID, rec.Coefficient)
	case c.policy == PolicyRequired:
		return TeacherCoefficient{}, missing(ConfigTeacherCoefficient, c.AcademicYear)
	default:
		coef = Defaulted()
	}

	c.coefficients[degreeID] = coef
	return coef, nil
}

// Rates combines the year's rate and standard with a teacher coefficient.
func (c *YearConfig) Rates(coef TeacherCoefficient) Rates {
	return Rates{
		HourlyRate:         c.HourlyRate.RatePerHour,
		TeacherCoefficient: coef.Value,
		StandardRange:      c.ClassStandard.StandardStudentRange,
	}
}
