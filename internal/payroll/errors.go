package payroll

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced teacher, department or
	// semester does not exist, or when a report has nothing to cover.
	ErrNotFound = errors.New("not found")

	// ErrConfigurationMissing matches any *ConfigurationMissingError.
	ErrConfigurationMissing = errors.New("configuration missing")

	// ErrSemesterYearMismatch is returned when a semester does not belong to
	// the requested academic year.
	ErrSemesterYearMismatch = errors.New("semester does not belong to academic year")
)

// ConfigKind names a piece of per-year reference data.
type ConfigKind string

const (
	ConfigHourlyRate         ConfigKind = "hourlyRate"
	ConfigClassCoefficient   ConfigKind = "classCoefficient"
	ConfigTeacherCoefficient ConfigKind = "teacherCoefficient"
)

// ConfigurationMissingError reports reference data that must be set up for
// an academic year before payroll can be computed.
type ConfigurationMissingError struct {
	Kind         ConfigKind
	AcademicYear string
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("configuration missing: %s for academic year %s", e.Kind, e.AcademicYear)
}

func (e *ConfigurationMissingError) Is(target error) bool {
	return target == ErrConfigurationMissing
}

func missing(kind ConfigKind, academicYear string) error {
	return &ConfigurationMissingError{Kind: kind, AcademicYear: academicYear}
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}
