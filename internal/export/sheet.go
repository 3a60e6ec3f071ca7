// Package export renders payroll reports and staff statistics as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of every workbook this package renders.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	headerFill = "E0E0E0"
	totalFill  = "FFEAA7"
	totalLabel = "TỔNG CỘNG"
)

// Workbook is a rendered spreadsheet ready to download.
type Workbook struct {
	Filename string
	Data     []byte
}

// sheet writes rows top to bottom on one worksheet.
type sheet struct {
	f    *excelize.File
	name string
	row  int

	title, bold, header, cell, total int
}

func newSheet(name string) (*sheet, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		return nil, err
	}

	s := &sheet{f: f, name: name, row: 1}
	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	styles := []struct {
		id    *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
		}},
		{&s.bold, &excelize.Style{Font: &excelize.Font{Bold: true}}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true},
			Alignment: center,
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{headerFill}},
			Border:    border,
		}},
		{&s.cell, &excelize.Style{Border: border}},
		{&s.total, &excelize.Style{
			Font:   &excelize.Font{Bold: true},
			Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{totalFill}},
			Border: border,
		}},
	}
	for _, st := range styles {
		id, err := f.NewStyle(st.style)
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("create style: %w", err)
		}
		*st.id = id
	}
	return s, nil
}

// titleBlock merges the top rows across width columns and writes the title.
func (s *sheet) titleBlock(width int, lines string) error {
	last, _ := excelize.CoordinatesToCellName(width, 3)
	if err := s.f.MergeCell(s.name, "A1", last); err != nil {
		return err
	}
	if err := s.f.SetCellValue(s.name, "A1", lines); err != nil {
		return err
	}
	if err := s.f.SetCellStyle(s.name, "A1", last, s.title); err != nil {
		return err
	}
	s.row = 5
	return nil
}

// line writes a plain row and advances.
func (s *sheet) line(values ...interface{}) error {
	cell, _ := excelize.CoordinatesToCellName(1, s.row)
	if err := s.f.SetSheetRow(s.name, cell, &values); err != nil {
		return err
	}
	s.row++
	return nil
}

// heading writes a bold single-cell row.
func (s *sheet) heading(text string) error {
	cell, _ := excelize.CoordinatesToCellName(1, s.row)
	if err := s.line(text); err != nil {
		return err
	}
	return s.f.SetCellStyle(s.name, cell, cell, s.bold)
}

func (s *sheet) blank() { s.row++ }

// styledRow writes a table row with the given style across its cells.
func (s *sheet) styledRow(style int, values ...interface{}) error {
	first, _ := excelize.CoordinatesToCellName(1, s.row)
	last, _ := excelize.CoordinatesToCellName(len(values), s.row)
	if err := s.line(values...); err != nil {
		return err
	}
	return s.f.SetCellStyle(s.name, first, last, style)
}

func (s *sheet) headerRow(values ...string) error {
	row := make([]interface{}, len(values))
	for i, v := range values {
		row[i] = v
	}
	return s.styledRow(s.header, row...)
}

func (s *sheet) dataRow(values ...interface{}) error  { return s.styledRow(s.cell, values...) }
func (s *sheet) totalRow(values ...interface{}) error { return s.styledRow(s.total, values...) }

func (s *sheet) widths(widths ...float64) error {
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := s.f.SetColWidth(s.name, col, col, w); err != nil {
			return err
		}
	}
	return nil
}

// finish serializes the workbook and releases it.
func (s *sheet) finish(filename string) (*Workbook, error) {
	defer s.f.Close()

	buf, err := s.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &Workbook{Filename: filename, Data: bytes.Clone(buf.Bytes())}, nil
}

// money renders a whole-currency amount as a number cell.
func money(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

// number renders a decimal as a number cell.
func number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

// vnd formats an amount the way the info rows show it, e.g. "150.000 VNĐ".
func vnd(d decimal.Decimal) string {
	d = d.Round(0)
	digits := d.Abs().String()
	var b bytes.Buffer
	if d.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteString(" VNĐ")
	return b.String()
}
