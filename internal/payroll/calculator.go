package payroll

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ClassPayroll is the unrounded result for one assignment.
type ClassPayroll struct {
	Assignment       Assignment
	StudentRange     StudentRange
	ClassCoefficient decimal.Decimal
	ConvertedPeriods decimal.Decimal
	Salary           decimal.Decimal
}

// ComputeClassPayroll prices one assignment:
//
//	convertedPeriods = totalPeriods * subjectCoefficient * (1 + classCoefficient)
//	salary           = convertedPeriods * hourlyRate * teacherCoefficient
//
// Nothing is rounded here.
func ComputeClassPayroll(a Assignment, r Rates) ClassPayroll {
	classCoef := ResolveClassCoefficient(a.StudentCount, r.StandardRange)

	converted := decimal.NewFromInt(int64(a.TotalPeriods)).
		Mul(a.SubjectCoefficient).
		Mul(one.Add(classCoef))

	salary := converted.Mul(r.HourlyRate).Mul(r.TeacherCoefficient)

	return ClassPayroll{
		Assignment:       a,
		StudentRange:     BandFor(a.StudentCount),
		ClassCoefficient: classCoef,
		ConvertedPeriods: converted,
		Salary:           salary,
	}
}

// totals accumulates raw sums; rounding happens in summary.
type totals struct {
	classes   int
	periods   int
	converted decimal.Decimal
	salary    decimal.Decimal
}

func (t *totals) addClass(p ClassPayroll) {
	t.classes++
	t.periods += p.Assignment.TotalPeriods
	t.converted = t.converted.Add(p.ConvertedPeriods)
	t.salary = t.salary.Add(p.Salary)
}

func (t *totals) merge(o totals) {
	t.classes += o.classes
	t.periods += o.periods
	t.converted = t.converted.Add(o.converted)
	t.salary = t.salary.Add(o.salary)
}

func (t totals) summary() Summary {
	return Summary{
		TotalClasses:          t.classes,
		TotalPeriods:          t.periods,
		TotalConvertedPeriods: t.converted.Round(1),
		TotalSalary:           t.salary.Round(0),
	}
}
