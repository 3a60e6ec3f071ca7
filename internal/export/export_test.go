package export

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
)

func open(t *testing.T, wb *Workbook) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(wb.Data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func cell(t *testing.T, f *excelize.File, sheet, axis string) string {
	t.Helper()
	v, err := f.GetCellValue(sheet, axis)
	require.NoError(t, err)
	return v
}

// findRow returns the first row containing label.
func findRow(t *testing.T, f *excelize.File, sheet, label string) []string {
	t.Helper()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	for _, r := range rows {
		for _, c := range r {
			if c == label {
				return r
			}
		}
	}
	t.Fatalf("row %q not found", label)
	return nil
}

func summary(classes, periods int, converted, salary string) payroll.Summary {
	return payroll.Summary{
		TotalClasses:          classes,
		TotalPeriods:          periods,
		TotalConvertedPeriods: decimal.RequireFromString(converted),
		TotalSalary:           decimal.RequireFromString(salary),
	}
}

var teacher = payroll.Teacher{
	ID:             uuid.New(),
	Code:           "GV0001",
	FullName:       "Nguyễn Văn A",
	DepartmentName: "Công nghệ thông tin",
	DegreeName:     "Thạc sĩ",
}

func coefficients() payroll.Coefficients {
	tc := payroll.Defaulted()
	return payroll.Coefficients{
		AcademicYear:         "2024-2025",
		HourlyRate:           decimal.NewFromInt(150000),
		StandardStudentRange: payroll.Range40To49,
		Teacher:              &tc,
	}
}

func TestTeacherYearly(t *testing.T) {
	r := &payroll.TeacherYearlyReport{
		Teacher:      teacher,
		AcademicYear: "2024-2025",
		Coefficients: coefficients(),
		Semesters: []payroll.SemesterLine{
			{Semester: payroll.SemesterInfo{Name: "Kỳ 1"}, Summary: summary(2, 90, "99", "14850000")},
			{Semester: payroll.SemesterInfo{Name: "Kỳ 2"}, Summary: summary(1, 45, "45", "6750000")},
		},
		Summary: summary(3, 135, "144", "21600000"),
	}

	wb, err := TeacherYearly(r)
	require.NoError(t, err)
	assert.Equal(t, "bao-cao-tien-day-GV0001-2024-2025.xlsx", wb.Filename)

	f := open(t, wb)
	assert.Equal(t, []string{sheetTeacher}, f.GetSheetList())
	assert.Contains(t, cell(t, f, sheetTeacher, "A1"), "Nguyễn Văn A (GV0001)")

	assert.Equal(t, "150.000 VNĐ", findRow(t, f, sheetTeacher, "Đơn giá theo tiết:")[1])
	assert.Equal(t, "1 (mặc định)", findRow(t, f, sheetTeacher, "Hệ số giáo viên:")[1])

	second := findRow(t, f, sheetTeacher, "Kỳ 2")
	assert.Equal(t, []string{"2", "Kỳ 2", "1", "45", "45", "6750000"}, second)

	total := findRow(t, f, sheetTeacher, totalLabel)
	assert.Equal(t, "21600000", total[5])
	assert.Equal(t, "135", total[3])
}

func TestTeacherSemester_ClassLines(t *testing.T) {
	r := &payroll.TeacherSemesterReport{
		Teacher:      teacher,
		Semester:     payroll.SemesterInfo{Name: "Kỳ 1", AcademicYear: "2024-2025", TermNumber: 1},
		Coefficients: coefficients(),
		Classes: []payroll.ClassLine{{
			CourseClassCode:    "LHP0001N01",
			CourseClassName:    "Lập trình (N01)",
			StudentCount:       75,
			TotalPeriods:       45,
			SubjectCoefficient: decimal.NewFromInt(1),
			ClassCoefficient:   decimal.RequireFromString("0.3"),
			ConvertedPeriods:   decimal.RequireFromString("58.5"),
			Salary:             decimal.NewFromInt(8775000),
		}},
		Summary: summary(1, 45, "58.5", "8775000"),
	}

	wb, err := TeacherSemester(r)
	require.NoError(t, err)
	assert.Equal(t, "bao-cao-tien-day-GV0001-2024-2025-ky-1.xlsx", wb.Filename)

	f := open(t, wb)
	row := findRow(t, f, sheetTeacher, "LHP0001N01")
	assert.Equal(t, "0.3", row[6])
	assert.Equal(t, "58.5", row[7])
	assert.Equal(t, "8775000", row[8])
	assert.Equal(t, "1 lớp", findRow(t, f, sheetTeacher, totalLabel)[2])
}

func TestDepartment_WholeYear(t *testing.T) {
	coef := coefficients()
	coef.Teacher = nil
	r := &payroll.DepartmentReport{
		Department:   payroll.Department{FullName: "Công nghệ thông tin", ShortName: "CNTT"},
		AcademicYear: "2024-2025",
		Coefficients: coef,
		Teachers: []payroll.TeacherLine{
			{Teacher: teacher, TeacherCoefficient: payroll.Defaulted(), Summary: summary(3, 135, "144", "21600000")},
		},
		Summary: summary(3, 135, "144", "21600000"),
	}

	wb, err := Department(r)
	require.NoError(t, err)
	assert.Equal(t, "bao-cao-tien-day-khoa-cntt-2024-2025.xlsx", wb.Filename)

	f := open(t, wb)
	assert.Contains(t, cell(t, f, sheetDepartment, "A1"), wholeYear+" năm học 2024-2025")
	assert.Equal(t, wholeYear, findRow(t, f, sheetDepartment, "Kỳ học:")[1])

	row := findRow(t, f, sheetDepartment, "GV0001")
	assert.Equal(t, "Nguyễn Văn A", row[2])
	assert.Equal(t, "1", row[4])
	assert.Equal(t, "150.000 VNĐ", findRow(t, f, sheetDepartment, "Đơn giá theo tiết:")[1])
}

func TestInstitution(t *testing.T) {
	coef := coefficients()
	coef.Teacher = nil
	sem := &payroll.SemesterInfo{Name: "Kỳ 1 (Phụ)"}
	r := &payroll.InstitutionReport{
		AcademicYear: "2024-2025",
		Semester:     sem,
		Coefficients: coef,
		Departments: []payroll.DepartmentLine{
			{Department: payroll.Department{FullName: "Công nghệ thông tin"}, TeacherCount: 2, Summary: summary(3, 135, "144", "21600000")},
			{Department: payroll.Department{FullName: "Kinh tế"}, Summary: summary(0, 0, "0", "0")},
		},
		Summary: summary(3, 135, "144", "21600000"),
	}

	wb, err := Institution(r)
	require.NoError(t, err)

	f := open(t, wb)
	assert.Equal(t, []string{sheetInstitution}, f.GetSheetList())
	assert.Contains(t, cell(t, f, sheetInstitution, "A1"), "Kỳ 1 (Phụ) năm học 2024-2025")
	assert.Equal(t, "0", findRow(t, f, sheetInstitution, "Kinh tế")[5])
	assert.Equal(t, "21600000", findRow(t, f, sheetInstitution, totalLabel)[5])
}

func TestStatistics(t *testing.T) {
	st := &model.CountStatistics{
		TotalTeachers: 4,
		Items: []model.CountStat{
			{FullName: "Công nghệ thông tin", ShortName: "CNTT", Count: 3, Percentage: decimal.RequireFromString("75")},
			{FullName: "Kinh tế", ShortName: "KT", Count: 1, Percentage: decimal.RequireFromString("25")},
		},
	}

	wb, err := DepartmentStatistics(st)
	require.NoError(t, err)
	f := open(t, wb)
	assert.Equal(t, []string{"Thống kê theo khoa"}, f.GetSheetList())
	assert.Equal(t, "Tên khoa", cell(t, f, "Thống kê theo khoa", "B1"))
	assert.Equal(t, "75.00", findRow(t, f, "Thống kê theo khoa", "CNTT")[4])
	assert.Equal(t, "100.00", findRow(t, f, "Thống kê theo khoa", "Tổng cộng")[4])

	wb, err = DegreeStatistics(&model.CountStatistics{})
	require.NoError(t, err)
	f = open(t, wb)
	assert.Equal(t, "Tên bằng cấp", cell(t, f, "Thống kê theo bằng cấp", "B1"))
	assert.Equal(t, "0.00", findRow(t, f, "Thống kê theo bằng cấp", "Tổng cộng")[4])

	ages := &model.AgeStatistics{
		TotalTeachers: 2,
		Items: []model.AgeGroupStat{
			{Label: "30-40", Count: 2, Percentage: decimal.NewFromInt(100)},
		},
	}
	wb, err = AgeStatistics(ages)
	require.NoError(t, err)
	f = open(t, wb)
	assert.Equal(t, "2", findRow(t, f, "Thống kê theo độ tuổi", "30-40")[2])
}

func TestVND(t *testing.T) {
	tests := map[string]string{
		"0":         "0 VNĐ",
		"999":       "999 VNĐ",
		"1000":      "1.000 VNĐ",
		"150000":    "150.000 VNĐ",
		"1234567.6": "1.234.568 VNĐ",
		"-25000":    "-25.000 VNĐ",
	}
	for in, want := range tests {
		assert.Equal(t, want, vnd(decimal.RequireFromString(in)), in)
	}
}
