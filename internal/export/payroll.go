package export

import (
	"fmt"
	"strings"

	"github.com/stemsi/teachpay-backend/internal/payroll"
)

const (
	sheetTeacher     = "Báo cáo tiền dạy giáo viên"
	sheetDepartment  = "Báo cáo tiền dạy theo khoa"
	sheetInstitution = "Báo cáo tiền dạy toàn trường"
	wholeYear        = "Toàn năm học"
)

// TeacherYearly renders one teacher's semesters for an academic year.
func TeacherYearly(r *payroll.TeacherYearlyReport) (*Workbook, error) {
	s, err := newSheet(sheetTeacher)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("BÁO CÁO TIỀN DẠY GIÁO VIÊN THEO NĂM\n%s (%s)\nNăm học: %s",
		r.Teacher.FullName, r.Teacher.Code, r.AcademicYear)
	if err := s.titleBlock(6, title); err != nil {
		return nil, err
	}
	if err := teacherInfo(s, r.Teacher); err != nil {
		return nil, err
	}
	if err := coefficientInfo(s, r.Coefficients); err != nil {
		return nil, err
	}

	if err := s.headerRow("STT", "Kỳ học", "Số lớp", "Tổng số tiết", "Số tiết quy đổi", "Tiền dạy (VNĐ)"); err != nil {
		return nil, err
	}
	for i, line := range r.Semesters {
		sum := line.Summary
		if err := s.dataRow(i+1, line.Semester.Name, sum.TotalClasses, sum.TotalPeriods,
			number(sum.TotalConvertedPeriods), money(sum.TotalSalary)); err != nil {
			return nil, err
		}
	}
	sum := r.Summary
	if err := s.totalRow("", totalLabel, sum.TotalClasses, sum.TotalPeriods,
		number(sum.TotalConvertedPeriods), money(sum.TotalSalary)); err != nil {
		return nil, err
	}
	if err := s.widths(8, 20, 12, 15, 18, 20); err != nil {
		return nil, err
	}

	return s.finish(fmt.Sprintf("bao-cao-tien-day-%s-%s.xlsx", r.Teacher.Code, r.AcademicYear))
}

// TeacherSemester renders one teacher's classes in a semester.
func TeacherSemester(r *payroll.TeacherSemesterReport) (*Workbook, error) {
	return teacherClasses(r.Teacher, r.Semester, r.Coefficients, r.Classes, r.Summary)
}

// SinglePayroll renders a standalone payroll calculation.
func SinglePayroll(r *payroll.PayrollResult) (*Workbook, error) {
	return teacherClasses(r.Teacher, r.Semester, r.Coefficients, r.Classes, r.Summary)
}

func teacherClasses(t payroll.Teacher, sem payroll.SemesterInfo, coef payroll.Coefficients, classes []payroll.ClassLine, sum payroll.Summary) (*Workbook, error) {
	s, err := newSheet(sheetTeacher)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("BÁO CÁO TIỀN DẠY GIÁO VIÊN\n%s (%s)\n%s năm học %s",
		t.FullName, t.Code, sem.Name, sem.AcademicYear)
	if err := s.titleBlock(9, title); err != nil {
		return nil, err
	}
	if err := teacherInfo(s, t); err != nil {
		return nil, err
	}
	if err := s.line("Kỳ học:", sem.Name); err != nil {
		return nil, err
	}
	s.blank()
	if err := coefficientInfo(s, coef); err != nil {
		return nil, err
	}

	if err := s.headerRow("STT", "Mã lớp", "Tên lớp", "Số SV", "Số tiết", "Hệ số HP",
		"Hệ số lớp", "Số tiết quy đổi", "Tiền dạy (VNĐ)"); err != nil {
		return nil, err
	}
	for i, c := range classes {
		if err := s.dataRow(i+1, c.CourseClassCode, c.CourseClassName, c.StudentCount, c.TotalPeriods,
			number(c.SubjectCoefficient), number(c.ClassCoefficient), number(c.ConvertedPeriods),
			money(c.Salary)); err != nil {
			return nil, err
		}
	}
	if err := s.totalRow("", totalLabel, fmt.Sprintf("%d lớp", sum.TotalClasses), "", sum.TotalPeriods,
		"", "", number(sum.TotalConvertedPeriods), money(sum.TotalSalary)); err != nil {
		return nil, err
	}
	if err := s.widths(8, 14, 30, 10, 10, 12, 12, 18, 20); err != nil {
		return nil, err
	}

	return s.finish(fmt.Sprintf("bao-cao-tien-day-%s-%s-ky-%d.xlsx", t.Code, sem.AcademicYear, sem.TermNumber))
}

// Department renders every teacher of a department.
func Department(r *payroll.DepartmentReport) (*Workbook, error) {
	s, err := newSheet(sheetDepartment)
	if err != nil {
		return nil, err
	}

	scope := scopeLabel(r.Semester)
	title := fmt.Sprintf("BÁO CÁO TIỀN DẠY THEO KHOA\n%s\n%s năm học %s", r.Department.FullName, scope, r.AcademicYear)
	if err := s.titleBlock(9, title); err != nil {
		return nil, err
	}

	if err := s.heading("Thông tin khoa:"); err != nil {
		return nil, err
	}
	if err := s.line("Tên khoa:", r.Department.FullName); err != nil {
		return nil, err
	}
	if err := yearAndSemester(s, r.AcademicYear, r.Semester); err != nil {
		return nil, err
	}
	if err := coefficientInfo(s, r.Coefficients); err != nil {
		return nil, err
	}

	if err := s.headerRow("STT", "Mã GV", "Họ và tên", "Bằng cấp", "Hệ số GV", "Số lớp",
		"Tổng số tiết", "Số tiết quy đổi", "Tiền dạy (VNĐ)"); err != nil {
		return nil, err
	}
	for i, line := range r.Teachers {
		sum := line.Summary
		if err := s.dataRow(i+1, line.Teacher.Code, line.Teacher.FullName, line.Teacher.DegreeName,
			number(line.TeacherCoefficient.Value), sum.TotalClasses, sum.TotalPeriods,
			number(sum.TotalConvertedPeriods), money(sum.TotalSalary)); err != nil {
			return nil, err
		}
	}
	sum := r.Summary
	if err := s.totalRow("", "", totalLabel, "", "", sum.TotalClasses, sum.TotalPeriods,
		number(sum.TotalConvertedPeriods), money(sum.TotalSalary)); err != nil {
		return nil, err
	}
	if err := s.widths(8, 12, 25, 20, 12, 10, 15, 18, 20); err != nil {
		return nil, err
	}

	return s.finish(fmt.Sprintf("bao-cao-tien-day-khoa-%s-%s.xlsx", slug(r.Department.ShortName), r.AcademicYear))
}

// Institution renders every department.
func Institution(r *payroll.InstitutionReport) (*Workbook, error) {
	s, err := newSheet(sheetInstitution)
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("BÁO CÁO TIỀN DẠY TOÀN TRƯỜNG\n%s năm học %s", scopeLabel(r.Semester), r.AcademicYear)
	if err := s.titleBlock(6, title); err != nil {
		return nil, err
	}
	if err := yearAndSemester(s, r.AcademicYear, r.Semester); err != nil {
		return nil, err
	}
	if err := coefficientInfo(s, r.Coefficients); err != nil {
		return nil, err
	}

	if err := s.headerRow("STT", "Tên khoa", "Số lớp", "Tổng số tiết", "Số tiết quy đổi", "Tiền dạy (VNĐ)"); err != nil {
		return nil, err
	}
	for i, line := range r.Departments {
		sum := line.Summary
		if err := s.dataRow(i+1, line.Department.FullName, sum.TotalClasses, sum.TotalPeriods,
			number(sum.TotalConvertedPeriods), money(sum.TotalSalary)); err != nil {
			return nil, err
		}
	}
	sum := r.Summary
	if err := s.totalRow("", totalLabel, sum.TotalClasses, sum.TotalPeriods,
		number(sum.TotalConvertedPeriods), money(sum.TotalSalary)); err != nil {
		return nil, err
	}
	if err := s.widths(8, 40, 12, 15, 18, 22); err != nil {
		return nil, err
	}

	return s.finish(fmt.Sprintf("bao-cao-tien-day-toan-truong-%s.xlsx", r.AcademicYear))
}

func teacherInfo(s *sheet, t payroll.Teacher) error {
	if err := s.heading("Thông tin giáo viên:"); err != nil {
		return err
	}
	rows := [][2]string{
		{"Mã giáo viên:", t.Code},
		{"Họ và tên:", t.FullName},
		{"Bằng cấp:", t.DegreeName},
		{"Khoa:", t.DepartmentName},
	}
	for _, r := range rows {
		if err := s.line(r[0], r[1]); err != nil {
			return err
		}
	}
	s.blank()
	return nil
}

func coefficientInfo(s *sheet, c payroll.Coefficients) error {
	if err := s.heading("Các hệ số áp dụng:"); err != nil {
		return err
	}
	if c.Teacher != nil {
		value := c.Teacher.Value.String()
		if c.Teacher.IsDefaulted() {
			value += " (mặc định)"
		}
		if err := s.line("Hệ số giáo viên:", value); err != nil {
			return err
		}
	}
	if err := s.line("Đơn giá theo tiết:", vnd(c.HourlyRate)); err != nil {
		return err
	}
	if err := s.line("Quy chuẩn sĩ số:", string(c.StandardStudentRange)); err != nil {
		return err
	}
	s.blank()
	return nil
}

func yearAndSemester(s *sheet, academicYear string, sem *payroll.SemesterInfo) error {
	if err := s.line("Năm học:", academicYear); err != nil {
		return err
	}
	if err := s.line("Kỳ học:", scopeLabel(sem)); err != nil {
		return err
	}
	s.blank()
	return nil
}

func scopeLabel(sem *payroll.SemesterInfo) string {
	if sem == nil {
		return wholeYear
	}
	return sem.Name
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
