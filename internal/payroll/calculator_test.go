package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestComputeClassPayroll_RoundingBoundary(t *testing.T) {
	a := payroll.Assignment{StudentCount: 75, TotalPeriods: 45, SubjectCoefficient: dec("1.0")}
	r := payroll.Rates{HourlyRate: dec("10000"), TeacherCoefficient: dec("1.3"), StandardRange: payroll.Range40To49}

	p := payroll.ComputeClassPayroll(a, r)

	assert.Equal(t, payroll.Range70To79, p.StudentRange)
	assertDecimal(t, "0.3", p.ClassCoefficient)
	assertDecimal(t, "58.5", p.ConvertedPeriods)
	assertDecimal(t, "760500", p.Salary.Round(0))
}

func TestComputeClassPayroll_SmallClass(t *testing.T) {
	a := payroll.Assignment{StudentCount: 25, TotalPeriods: 60, SubjectCoefficient: dec("1.2")}
	r := payroll.Rates{HourlyRate: dec("15000"), TeacherCoefficient: dec("1.5"), StandardRange: payroll.Range40To49}

	p := payroll.ComputeClassPayroll(a, r)

	assertDecimal(t, "-0.2", p.ClassCoefficient)
	assertDecimal(t, "57.6", p.ConvertedPeriods)
	assertDecimal(t, "1296000", p.Salary)
}

func TestComputeClassPayroll_AllowedPeriods(t *testing.T) {
	r := payroll.Rates{HourlyRate: dec("20000"), TeacherCoefficient: dec("1"), StandardRange: payroll.Range40To49}

	for _, periods := range []int{30, 45, 60, 90, 135} {
		a := payroll.Assignment{StudentCount: 40, TotalPeriods: periods, SubjectCoefficient: dec("1.5")}
		p := payroll.ComputeClassPayroll(a, r)

		converted := decimal.NewFromInt(int64(periods)).Mul(dec("1.5"))
		assert.True(t, converted.Equal(p.ConvertedPeriods), "periods %d", periods)
		assert.True(t, converted.Mul(dec("20000")).Equal(p.Salary), "periods %d", periods)
	}
}

func TestComputeClassPayroll_DoesNotRound(t *testing.T) {
	a := payroll.Assignment{StudentCount: 45, TotalPeriods: 45, SubjectCoefficient: dec("1.33")}
	r := payroll.Rates{HourlyRate: dec("1001"), TeacherCoefficient: dec("1.7"), StandardRange: payroll.Range40To49}

	p := payroll.ComputeClassPayroll(a, r)

	assertDecimal(t, "59.85", p.ConvertedPeriods)
	assertDecimal(t, "101846.745", p.Salary)
}
