// Package transfer converts table rows to and from spreadsheet and PDF files.
package transfer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"
	"github.com/xuri/excelize/v2"
)

var (
	ErrNoSheet    = errors.New("workbook has no sheets")
	ErrEmptySheet = errors.New("sheet has no data rows")
)

// Row is one data row keyed by header name. Line is the 1-based sheet row.
type Row struct {
	Line     int
	cells    map[string]string
	date1904 bool
}

// Get returns the trimmed cell under header col.
func (r Row) Get(col string) string {
	return strings.TrimSpace(r.cells[col])
}

// Sheet is the first worksheet of an uploaded workbook.
type Sheet struct {
	Header []string
	Rows   []Row
}

// ReadSheet parses the first sheet of r. The first row is the header and rows
// whose cells are all blank are skipped. Cells are read unformatted, so numbers
// and dates arrive as stored rather than as displayed.
func ReadSheet(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoSheet
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}

	header := lo.Map(rows[0], func(h string, _ int) string { return strings.TrimSpace(h) })
	sheet := &Sheet{Header: header}
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if lo.EveryBy(row, func(cell string) bool { return strings.TrimSpace(cell) == "" }) {
			continue
		}
		cells := make(map[string]string, len(header))
		for col, name := range header {
			if name == "" || col >= len(row) {
				continue
			}
			cells[name] = row[col]
		}
		sheet.Rows = append(sheet.Rows, Row{Line: i + 1, cells: cells, date1904: date1904})
	}
	if len(sheet.Rows) == 0 {
		return nil, ErrEmptySheet
	}
	return sheet, nil
}

// MissingColumns returns the entries of cols absent from the header.
func (s *Sheet) MissingColumns(cols ...string) []string {
	return lo.Without(cols, s.Header...)
}

// WriteSheet writes one sheet named sheetName with header on row 1 and rows below.
func WriteSheet(w io.Writer, sheetName string, header []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}
	index, err := f.GetSheetIndex(sheetName)
	if err != nil {
		return fmt.Errorf("locate sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, name); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("set header style: %w", err)
		}
	}

	for r, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
