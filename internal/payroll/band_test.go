package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

func TestBandFor(t *testing.T) {
	tests := []struct {
		count int
		want  payroll.StudentRange
	}{
		{-1, ""},
		{0, payroll.RangeUnder20},
		{19, payroll.RangeUnder20},
		{20, payroll.Range20To29},
		{29, payroll.Range20To29},
		{30, payroll.Range30To39},
		{45, payroll.Range40To49},
		{99, payroll.Range90To99},
		{100, payroll.Range100Plus},
		{500, payroll.Range100Plus},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, payroll.BandFor(tt.count), "count %d", tt.count)
	}
}

func TestStudentRange_Index(t *testing.T) {
	assert.Equal(t, 0, payroll.RangeUnder20.Index())
	assert.Equal(t, 3, payroll.Range40To49.Index())
	assert.Equal(t, 9, payroll.Range100Plus.Index())
	assert.Equal(t, -1, payroll.StudentRange("15-25").Index())
	assert.False(t, payroll.StudentRange("").Valid())
}

func TestResolveClassCoefficient(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		standard payroll.StudentRange
		want     string
	}{
		{"empty class below standard", 0, payroll.Range40To49, "-0.3"},
		{"within standard", 45, payroll.Range40To49, "0"},
		{"large class above standard", 150, payroll.Range40To49, "0.6"},
		{"smallest against largest", 5, payroll.Range100Plus, "-0.9"},
		{"largest against smallest", 100, payroll.RangeUnder20, "0.9"},
		{"unknown standard", 45, payroll.StudentRange("abc"), "0"},
		{"negative count", -5, payroll.Range40To49, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := payroll.ResolveClassCoefficient(tt.count, tt.standard)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestResolveClassCoefficient_Symmetry(t *testing.T) {
	counts := []int{0, 19, 20, 29, 30, 45, 99, 100, 500}
	step := decimal.New(1, -1)
	limit := decimal.New(9, -1)

	for _, standard := range payroll.StudentRanges {
		for _, x := range counts {
			got := payroll.ResolveClassCoefficient(x, standard)

			assert.True(t, got.Mod(step).IsZero(), "%s vs %d: %s is not a multiple of 0.1", standard, x, got)
			assert.True(t, got.Abs().LessThanOrEqual(limit), "%s vs %d: %s out of range", standard, x, got)

			for _, y := range counts {
				above := payroll.BandFor(x).Index() - standard.Index()
				below := standard.Index() - payroll.BandFor(y).Index()
				if above != below {
					continue
				}
				mirrored := payroll.ResolveClassCoefficient(y, standard)
				assert.True(t, got.Equal(mirrored.Neg()), "%s: %d gives %s, %d gives %s", standard, x, got, y, mirrored)
			}
		}
	}
}
