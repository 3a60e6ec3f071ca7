package payroll

import "github.com/shopspring/decimal"

// StudentRange is a class-size band label.
type StudentRange string

const (
	RangeUnder20 StudentRange = "<20"
	Range20To29  StudentRange = "20-29"
	Range30To39  StudentRange = "30-39"
	Range40To49  StudentRange = "40-49"
	Range50To59  StudentRange = "50-59"
	Range60To69  StudentRange = "60-69"
	Range70To79  StudentRange = "70-79"
	Range80To89  StudentRange = "80-89"
	Range90To99  StudentRange = "90-99"
	Range100Plus StudentRange = "100+"
)

// DefaultRange is the standard shown for a year with no class coefficient.
// Payroll computation never falls back to it.
const DefaultRange = Range40To49

// StudentRanges lists every band in ascending order. A band's position in
// this slice is its index for coefficient resolution.
var StudentRanges = []StudentRange{
	RangeUnder20,
	Range20To29,
	Range30To39,
	Range40To49,
	Range50To59,
	Range60To69,
	Range70To79,
	Range80To89,
	Range90To99,
	Range100Plus,
}

// classCoefficientStep is the adjustment applied per band of distance.
var classCoefficientStep = decimal.New(1, -1)

// Index returns the band position, or -1 for an unknown label.
func (r StudentRange) Index() int {
	for i, band := range StudentRanges {
		if band == r {
			return i
		}
	}
	return -1
}

// Valid reports whether r is one of the known bands.
func (r StudentRange) Valid() bool {
	return r.Index() >= 0
}

// BandFor maps an enrolled student count to its band. Negative counts have
// no band and yield the empty label.
func BandFor(studentCount int) StudentRange {
	switch {
	case studentCount < 0:
		return ""
	case studentCount < 20:
		return RangeUnder20
	case studentCount >= 100:
		return Range100Plus
	default:
		// 20..99 map onto bands 1..8.
		return StudentRanges[studentCount/10-1]
	}
}

// ResolveClassCoefficient returns the class-size adjustment for a class of
// studentCount students measured against the standard band: 0.1 per band of
// distance, negative for smaller classes. Unknown bands resolve to zero.
func ResolveClassCoefficient(studentCount int, standard StudentRange) decimal.Decimal {
	studentIdx := BandFor(studentCount).Index()
	standardIdx := standard.Index()
	if studentIdx < 0 || standardIdx < 0 {
		return decimal.Zero
	}
	return classCoefficientStep.Mul(decimal.NewFromInt(int64(studentIdx - standardIdx)))
}
