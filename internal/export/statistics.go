package export

import (
	"fmt"
	"time"

	"github.com/stemsi/teachpay-backend/internal/model"
)

// DepartmentStatistics renders teacher counts per department.
func DepartmentStatistics(st *model.CountStatistics) (*Workbook, error) {
	return countStatistics("Thống kê theo khoa", "Tên khoa", "thong-ke-theo-khoa", st)
}

// DegreeStatistics renders teacher counts per degree.
func DegreeStatistics(st *model.CountStatistics) (*Workbook, error) {
	return countStatistics("Thống kê theo bằng cấp", "Tên bằng cấp", "thong-ke-theo-bang-cap", st)
}

func countStatistics(sheetName, nameHeader, file string, st *model.CountStatistics) (*Workbook, error) {
	s, err := newSheet(sheetName)
	if err != nil {
		return nil, err
	}

	if err := s.headerRow("STT", nameHeader, "Viết tắt", "Số lượng giáo viên", "Tỷ lệ (%)"); err != nil {
		return nil, err
	}
	for i, item := range st.Items {
		if err := s.dataRow(i+1, item.FullName, item.ShortName, item.Count, item.Percentage.StringFixed(2)); err != nil {
			return nil, err
		}
	}
	if err := s.totalRow("", "Tổng cộng", "", st.TotalTeachers, totalPercent(st.TotalTeachers)); err != nil {
		return nil, err
	}
	if err := s.widths(10, 40, 15, 20, 15); err != nil {
		return nil, err
	}

	return s.finish(fmt.Sprintf("%s-%s.xlsx", file, time.Now().Format("20060102")))
}

// AgeStatistics renders teacher counts per age bracket.
func AgeStatistics(st *model.AgeStatistics) (*Workbook, error) {
	s, err := newSheet("Thống kê theo độ tuổi")
	if err != nil {
		return nil, err
	}

	if err := s.headerRow("STT", "Độ tuổi", "Số lượng giáo viên", "Tỷ lệ (%)"); err != nil {
		return nil, err
	}
	for i, item := range st.Items {
		if err := s.dataRow(i+1, item.Label, item.Count, item.Percentage.StringFixed(2)); err != nil {
			return nil, err
		}
	}
	if err := s.totalRow("", "Tổng cộng", st.TotalTeachers, totalPercent(st.TotalTeachers)); err != nil {
		return nil, err
	}
	if err := s.widths(10, 20, 20, 15); err != nil {
		return nil, err
	}

	return s.finish(fmt.Sprintf("thong-ke-theo-do-tuoi-%s.xlsx", time.Now().Format("20060102")))
}

func totalPercent(total int) string {
	if total == 0 {
		return "0.00"
	}
	return "100.00"
}
