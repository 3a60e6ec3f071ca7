package payroll_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

const year = "2025-2026"

var fixedNow = time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC)

func newEngine(store payroll.Store, policy payroll.CoefficientPolicy) *payroll.Engine {
	return payroll.NewEngine(store, payroll.Options{
		Policy:      policy,
		Concurrency: 4,
		Now:         func() time.Time { return fixedNow },
	}, zerolog.Nop())
}

// fixture is a configured year with one department, one teacher and one
// semester.
type fixture struct {
	store    *memStore
	dept     payroll.Department
	teacher  payroll.Teacher
	degreeID uuid.UUID
	sem1     payroll.Semester
}

func newFixture() *fixture {
	m := newMemStore()
	m.configureYear(year, "15000", payroll.Range40To49)
	dept := m.addDepartment("Khoa Công nghệ thông tin")
	degreeID := uuid.New()
	return &fixture{
		store:    m,
		dept:     dept,
		degreeID: degreeID,
		teacher:  m.addTeacher(dept, degreeID, "Nguyễn Văn An"),
		sem1:     m.addSemester(year, 1, false),
	}
}

// ─── Single payroll ───────────────────────────────────────────────────

func TestCalculateSinglePayroll_EndToEnd(t *testing.T) {
	f := newFixture()
	coef := f.store.setCoefficient(year, f.degreeID, "1.5")
	f.store.assign(f.teacher, f.sem1, 25, 60, "1.2")

	res, err := newEngine(f.store, payroll.PolicyDefault).CalculateSinglePayroll(context.Background(), year, f.sem1.ID, f.teacher.ID)
	require.NoError(t, err)

	require.Len(t, res.Classes, 1)
	line := res.Classes[0]
	assert.Equal(t, payroll.Range20To29, line.StudentRange)
	assertDecimal(t, "-0.2", line.ClassCoefficient)
	assertDecimal(t, "57.6", line.ConvertedPeriods)
	assertDecimal(t, "1296000", line.Salary)

	assert.Equal(t, 1, res.Summary.TotalClasses)
	assert.Equal(t, 60, res.Summary.TotalPeriods)
	assertDecimal(t, "57.6", res.Summary.TotalConvertedPeriods)
	assertDecimal(t, "1296000", res.Summary.TotalSalary)

	require.NotNil(t, res.Coefficients.Teacher)
	assert.Equal(t, payroll.CoefficientResolved, res.Coefficients.Teacher.Source)
	assert.Equal(t, coef.ID, *res.Coefficients.Teacher.RecordID)
	assertDecimal(t, "15000", res.Coefficients.HourlyRate)
	assert.Equal(t, payroll.Range40To49, res.Coefficients.StandardStudentRange)
	assert.Equal(t, "Kỳ 1", res.Semester.Name)
	assert.Equal(t, fixedNow, res.CalculatedAt)
}

func TestCalculateSinglePayroll_TotalRoundedAfterSumming(t *testing.T) {
	f := newFixture()
	f.store.configureYear(year, "1001", payroll.Range40To49)
	// Each class earns 45 * 1.01 * 1001 = 45495.45, which rounds down on its
	// own but the pair sums to 90990.9.
	f.store.assign(f.teacher, f.sem1, 45, 45, "1.01")
	f.store.assign(f.teacher, f.sem1, 45, 45, "1.01")

	res, err := newEngine(f.store, payroll.PolicyDefault).CalculateSinglePayroll(context.Background(), year, f.sem1.ID, f.teacher.ID)
	require.NoError(t, err)

	assertDecimal(t, "45495", res.Classes[0].Salary)
	assertDecimal(t, "90991", res.Summary.TotalSalary)
	assertDecimal(t, "90.9", res.Summary.TotalConvertedPeriods)
}

func TestCalculateSinglePayroll_DefaultTeacherCoefficient(t *testing.T) {
	f := newFixture()
	f.store.assign(f.teacher, f.sem1, 45, 30, "1")

	res, err := newEngine(f.store, payroll.PolicyDefault).CalculateSinglePayroll(context.Background(), year, f.sem1.ID, f.teacher.ID)
	require.NoError(t, err)

	require.NotNil(t, res.Coefficients.Teacher)
	assert.True(t, res.Coefficients.Teacher.IsDefaulted())
	assert.Nil(t, res.Coefficients.Teacher.RecordID)
	assertDecimal(t, "1.0", res.Coefficients.Teacher.Value)
	assertDecimal(t, "450000", res.Summary.TotalSalary)
}

func TestCalculateSinglePayroll_RequiredTeacherCoefficient(t *testing.T) {
	f := newFixture()
	f.store.assign(f.teacher, f.sem1, 45, 30, "1")

	_, err := newEngine(f.store, payroll.PolicyRequired).CalculateSinglePayroll(context.Background(), year, f.sem1.ID, f.teacher.ID)

	var missing *payroll.ConfigurationMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, payroll.ConfigTeacherCoefficient, missing.Kind)
	assert.Equal(t, year, missing.AcademicYear)
	assert.ErrorIs(t, err, payroll.ErrConfigurationMissing)
}

func TestCalculateSinglePayroll_NoAssignments(t *testing.T) {
	f := newFixture()

	_, err := newEngine(f.store, payroll.PolicyDefault).CalculateSinglePayroll(context.Background(), year, f.sem1.ID, f.teacher.ID)
	assert.ErrorIs(t, err, payroll.ErrNotFound)
}

func TestCalculateSinglePayroll_SemesterYearMismatch(t *testing.T) {
	f := newFixture()
	other := f.store.addSemester("2024-2025", 1, false)
	f.store.assign(f.teacher, other, 45, 30, "1")

	_, err := newEngine(f.store, payroll.PolicyDefault).CalculateSinglePayroll(context.Background(), year, other.ID, f.teacher.ID)
	assert.ErrorIs(t, err, payroll.ErrSemesterYearMismatch)
}

func TestCalculateSinglePayroll_UnknownEntities(t *testing.T) {
	f := newFixture()
	e := newEngine(f.store, payroll.PolicyDefault)

	_, err := e.CalculateSinglePayroll(context.Background(), year, f.sem1.ID, uuid.New())
	assert.ErrorIs(t, err, payroll.ErrNotFound)

	_, err = e.CalculateSinglePayroll(context.Background(), year, uuid.New(), f.teacher.ID)
	assert.ErrorIs(t, err, payroll.ErrNotFound)
}

// ─── Missing configuration ────────────────────────────────────────────

func TestReports_MissingConfiguration(t *testing.T) {
	tests := []struct {
		name  string
		strip func(m *memStore)
		kind  payroll.ConfigKind
	}{
		{"hourly rate", func(m *memStore) { delete(m.rates, year) }, payroll.ConfigHourlyRate},
		{"class coefficient", func(m *memStore) { delete(m.standards, year) }, payroll.ConfigClassCoefficient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.store.assign(f.teacher, f.sem1, 45, 30, "1")
			tt.strip(f.store)
			e := newEngine(f.store, payroll.PolicyDefault)
			ctx := context.Background()

			calls := map[string]func() (any, error){
				"single":      func() (any, error) { return e.CalculateSinglePayroll(ctx, year, f.sem1.ID, f.teacher.ID) },
				"semester":    func() (any, error) { return e.TeacherSemesterReport(ctx, f.teacher.ID, f.sem1.ID) },
				"yearly":      func() (any, error) { return e.TeacherYearlyReport(ctx, f.teacher.ID, year) },
				"department":  func() (any, error) { return e.DepartmentReport(ctx, f.dept.ID, year, nil) },
				"institution": func() (any, error) { return e.InstitutionReport(ctx, year, nil) },
			}
			for name, call := range calls {
				report, err := call()
				var missing *payroll.ConfigurationMissingError
				require.ErrorAs(t, err, &missing, name)
				assert.Equal(t, tt.kind, missing.Kind, name)
				assert.Nil(t, report, name)
			}
		})
	}
}

// ─── Teacher reports ──────────────────────────────────────────────────

func TestTeacherYearlyReport_MatchesSemesterReports(t *testing.T) {
	f := newFixture()
	f.store.setCoefficient(year, f.degreeID, "1.3")
	sem2 := f.store.addSemester(year, 2, false)
	sem2s := f.store.addSemester(year, 2, true)
	f.store.assign(f.teacher, f.sem1, 25, 60, "1.2")
	f.store.assign(f.teacher, f.sem1, 75, 45, "1.0")
	f.store.assign(f.teacher, sem2, 130, 90, "1.5")
	f.store.assign(f.teacher, sem2s, 10, 30, "1.1")
	// Another year must not leak in.
	f.store.assign(f.teacher, f.store.addSemester("2024-2025", 1, false), 45, 135, "2")

	e := newEngine(f.store, payroll.PolicyDefault)
	ctx := context.Background()

	yearly, err := e.TeacherYearlyReport(ctx, f.teacher.ID, year)
	require.NoError(t, err)
	require.Len(t, yearly.Semesters, 3)
	assert.Equal(t, []string{"Kỳ 1", "Kỳ 2", "Kỳ 2 (Phụ)"}, []string{
		yearly.Semesters[0].Semester.Name,
		yearly.Semesters[1].Semester.Name,
		yearly.Semesters[2].Semester.Name,
	})

	total := dec("0")
	classes := 0
	for _, line := range yearly.Semesters {
		report, err := e.TeacherSemesterReport(ctx, f.teacher.ID, line.Semester.ID)
		require.NoError(t, err)
		assert.True(t, report.Summary.TotalSalary.Equal(line.Summary.TotalSalary))
		total = total.Add(report.Summary.TotalSalary)
		classes += report.Summary.TotalClasses
	}

	assert.True(t, total.Equal(yearly.Summary.TotalSalary), "sum %s, yearly %s", total, yearly.Summary.TotalSalary)
	assert.Equal(t, 4, yearly.Summary.TotalClasses)
	assert.Equal(t, 4, classes)
	assert.Equal(t, 225, yearly.Summary.TotalPeriods)
}

func TestTeacherYearlyReport_RoundsAfterSumming(t *testing.T) {
	f := newFixture()
	f.store.setCoefficient(year, f.degreeID, "1.00001")
	sem2 := f.store.addSemester(year, 2, false)
	// 30 periods x 15000 x 1.00001 = 450004.5 per semester.
	f.store.assign(f.teacher, f.sem1, 45, 30, "1")
	f.store.assign(f.teacher, sem2, 45, 30, "1")

	e := newEngine(f.store, payroll.PolicyDefault)
	ctx := context.Background()

	yearly, err := e.TeacherYearlyReport(ctx, f.teacher.ID, year)
	require.NoError(t, err)
	require.Len(t, yearly.Semesters, 2)

	lineSum := dec("0")
	for _, line := range yearly.Semesters {
		assertDecimal(t, "450005", line.Summary.TotalSalary)
		lineSum = lineSum.Add(line.Summary.TotalSalary)

		report, err := e.TeacherSemesterReport(ctx, f.teacher.ID, line.Semester.ID)
		require.NoError(t, err)
		assertDecimal(t, "450005", report.Summary.TotalSalary)
	}

	assertDecimal(t, "900009", yearly.Summary.TotalSalary)
	assertDecimal(t, "900010", lineSum)
	assertDecimal(t, "60", yearly.Summary.TotalConvertedPeriods)
}

func TestTeacherYearlyReport_NoSemesters(t *testing.T) {
	f := newFixture()

	_, err := newEngine(f.store, payroll.PolicyDefault).TeacherYearlyReport(context.Background(), f.teacher.ID, "2030-2031")
	assert.ErrorIs(t, err, payroll.ErrNotFound)
}

func TestTeacherSemesterReport_EmptySemester(t *testing.T) {
	f := newFixture()

	report, err := newEngine(f.store, payroll.PolicyRequired).TeacherSemesterReport(context.Background(), f.teacher.ID, f.sem1.ID)
	require.NoError(t, err)

	assert.Empty(t, report.Classes)
	assert.Equal(t, 0, report.Summary.TotalClasses)
	assert.True(t, report.Summary.TotalSalary.IsZero())
}

// ─── Department & institution reports ─────────────────────────────────

func TestDepartmentReport_IncludesIdleTeachers(t *testing.T) {
	f := newFixture()
	f.store.addTeacher(f.dept, f.degreeID, "Trần Thị Bình")
	f.store.addTeacher(f.dept, f.degreeID, "Lê Văn Cường")

	e := newEngine(f.store, payroll.PolicyDefault)

	report, err := e.DepartmentReport(context.Background(), f.dept.ID, year, nil)
	require.NoError(t, err)

	require.Len(t, report.Teachers, 3)
	for _, line := range report.Teachers {
		assert.Equal(t, 0, line.Summary.TotalClasses)
		assert.True(t, line.Summary.TotalSalary.IsZero())
	}
	assert.True(t, report.Summary.TotalSalary.IsZero())
	assert.Nil(t, report.Semester)

	inst, err := e.InstitutionReport(context.Background(), year, nil)
	require.NoError(t, err)
	require.Len(t, inst.Departments, 1)
	assert.Equal(t, 3, inst.Departments[0].TeacherCount)
	assert.True(t, inst.Summary.TotalSalary.IsZero())
}

func TestDepartmentReport_RequiredPolicyExemptsIdleTeachers(t *testing.T) {
	f := newFixture()
	otherDegree := uuid.New()
	f.store.setCoefficient(year, f.degreeID, "1.5")
	f.store.assign(f.teacher, f.sem1, 45, 30, "1")
	idle := f.store.addTeacher(f.dept, otherDegree, "Phạm Minh Đức")

	report, err := newEngine(f.store, payroll.PolicyRequired).DepartmentReport(context.Background(), f.dept.ID, year, nil)
	require.NoError(t, err)

	require.Len(t, report.Teachers, 2)
	for _, line := range report.Teachers {
		if line.Teacher.ID == idle.ID {
			assert.True(t, line.TeacherCoefficient.IsDefaulted())
		} else {
			assertDecimal(t, "1.5", line.TeacherCoefficient.Value)
		}
	}

	f.store.assign(idle, f.sem1, 45, 30, "1")
	_, err = newEngine(f.store, payroll.PolicyRequired).DepartmentReport(context.Background(), f.dept.ID, year, nil)
	assert.ErrorIs(t, err, payroll.ErrConfigurationMissing)
}

func TestDepartmentReport_SemesterFilter(t *testing.T) {
	f := newFixture()
	sem2 := f.store.addSemester(year, 2, false)
	f.store.assign(f.teacher, f.sem1, 45, 30, "1")
	f.store.assign(f.teacher, sem2, 45, 60, "1")
	e := newEngine(f.store, payroll.PolicyDefault)
	ctx := context.Background()

	report, err := e.DepartmentReport(ctx, f.dept.ID, year, &sem2.ID)
	require.NoError(t, err)
	require.NotNil(t, report.Semester)
	assert.Equal(t, sem2.ID, report.Semester.ID)
	assert.Equal(t, 60, report.Summary.TotalPeriods)

	whole, err := e.DepartmentReport(ctx, f.dept.ID, year, nil)
	require.NoError(t, err)
	assert.Equal(t, 90, whole.Summary.TotalPeriods)

	foreign := f.store.addSemester("2024-2025", 1, false)
	_, err = e.DepartmentReport(ctx, f.dept.ID, year, &foreign.ID)
	assert.ErrorIs(t, err, payroll.ErrSemesterYearMismatch)

	_, err = e.InstitutionReport(ctx, year, &foreign.ID)
	assert.ErrorIs(t, err, payroll.ErrSemesterYearMismatch)
}

func TestDepartmentReport_NotFound(t *testing.T) {
	f := newFixture()
	e := newEngine(f.store, payroll.PolicyDefault)
	ctx := context.Background()

	_, err := e.DepartmentReport(ctx, uuid.New(), year, nil)
	assert.ErrorIs(t, err, payroll.ErrNotFound)

	empty := f.store.addDepartment("Khoa Ngoại ngữ")
	_, err = e.DepartmentReport(ctx, empty.ID, year, nil)
	assert.ErrorIs(t, err, payroll.ErrNotFound)

	f.store.configureYear("2030-2031", "15000", payroll.Range40To49)
	_, err = e.DepartmentReport(ctx, f.dept.ID, "2030-2031", nil)
	assert.ErrorIs(t, err, payroll.ErrNotFound)
}

func TestReports_ConfigurationCheckedBeforeSemesters(t *testing.T) {
	f := newFixture()
	e := newEngine(f.store, payroll.PolicyDefault)
	ctx := context.Background()
	const unconfigured = "2030-2031"

	_, err := e.DepartmentReport(ctx, f.dept.ID, unconfigured, nil)
	var missing *payroll.ConfigurationMissingError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, payroll.ConfigHourlyRate, missing.Kind)
	assert.Equal(t, unconfigured, missing.AcademicYear)

	_, err = e.InstitutionReport(ctx, unconfigured, nil)
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, payroll.ConfigHourlyRate, missing.Kind)

	// Missing configuration wins over a semester from another year.
	_, err = e.InstitutionReport(ctx, unconfigured, &f.sem1.ID)
	assert.ErrorIs(t, err, payroll.ErrConfigurationMissing)
}

func TestDepartmentReport_OrderSurvivesConcurrency(t *testing.T) {
	f := newFixture()
	for i := 30; i > 0; i-- {
		teacher := f.store.addTeacher(f.dept, f.degreeID, fmt.Sprintf("Giảng viên %02d", i))
		f.store.assign(teacher, f.sem1, 20+i, 45, "1")
	}

	report, err := newEngine(f.store, payroll.PolicyDefault).DepartmentReport(context.Background(), f.dept.ID, year, nil)
	require.NoError(t, err)

	require.Len(t, report.Teachers, 31)
	for i := 1; i < len(report.Teachers); i++ {
		assert.Less(t, report.Teachers[i-1].Teacher.FullName, report.Teachers[i].Teacher.FullName)
	}
}

func TestInstitutionReport_SumsDepartments(t *testing.T) {
	f := newFixture()
	f.store.assign(f.teacher, f.sem1, 45, 30, "1")
	other := f.store.addDepartment("Khoa Kinh tế")
	colleague := f.store.addTeacher(other, f.degreeID, "Đỗ Thu Hà")
	f.store.assign(colleague, f.sem1, 45, 60, "1")
	f.store.addDepartment("Khoa Toán")

	report, err := newEngine(f.store, payroll.PolicyDefault).InstitutionReport(context.Background(), year, nil)
	require.NoError(t, err)

	require.Len(t, report.Departments, 3)
	assert.Equal(t, "Khoa Công nghệ thông tin", report.Departments[0].Department.FullName)
	assert.Equal(t, "Khoa Kinh tế", report.Departments[1].Department.FullName)
	assert.Equal(t, "Khoa Toán", report.Departments[2].Department.FullName)
	assert.Equal(t, 0, report.Departments[2].TeacherCount)

	assertDecimal(t, "450000", report.Departments[0].Summary.TotalSalary)
	assertDecimal(t, "900000", report.Departments[1].Summary.TotalSalary)
	assertDecimal(t, "1350000", report.Summary.TotalSalary)
	assert.Equal(t, 2, report.Summary.TotalClasses)
}

func TestInstitutionReport_NoDepartments(t *testing.T) {
	m := newMemStore()
	m.configureYear(year, "15000", payroll.Range40To49)
	m.addSemester(year, 1, false)

	_, err := newEngine(m, payroll.PolicyDefault).InstitutionReport(context.Background(), year, nil)
	assert.ErrorIs(t, err, payroll.ErrNotFound)
}

func TestInstitutionReport_StoreFailure(t *testing.T) {
	f := newFixture()
	f.store.failAssignments = errStoreDown

	report, err := newEngine(f.store, payroll.PolicyDefault).InstitutionReport(context.Background(), year, nil)
	assert.ErrorIs(t, err, errStoreDown)
	assert.Nil(t, report)
}
