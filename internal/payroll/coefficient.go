package payroll

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CoefficientSource tells whether a teacher coefficient came from a stored
// record or was filled in because none exists.
type CoefficientSource string

const (
	CoefficientResolved  CoefficientSource = "resolved"
	CoefficientDefaulted CoefficientSource = "defaulted"
)

// DefaultTeacherCoefficient applies to degrees with no coefficient for the year.
var DefaultTeacherCoefficient = decimal.NewFromInt(1)

// TeacherCoefficient is the degree multiplier applied to a teacher's pay.
// RecordID is nil exactly when Source is CoefficientDefaulted.
type TeacherCoefficient struct {
	Value    decimal.Decimal   `json:"value"`
	Source   CoefficientSource `json:"source"`
	RecordID *uuid.UUID        `json:"record_id"`
}

// Resolved wraps a stored coefficient record.
func Resolved(recordID uuid.UUID, value decimal.Decimal) TeacherCoefficient {
	id := recordID
	return TeacherCoefficient{Value: value, Source: CoefficientResolved, RecordID: &id}
}

// Defaulted returns the fallback coefficient used when no record exists.
func Defaulted() TeacherCoefficient {
	return TeacherCoefficient{Value: DefaultTeacherCoefficient, Source: CoefficientDefaulted}
}

// IsDefaulted reports whether the coefficient is a fallback.
func (c TeacherCoefficient) IsDefaulted() bool {
	return c.Source == CoefficientDefaulted
}
