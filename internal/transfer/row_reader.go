package transfer

import (
	"fmt"
	"strconv"
	"time"

	"hospital-admin/pkg/utils"

	"github.com/xuri/excelize/v2"
)

// CellError names the row and column of a cell that could not be parsed.
type CellError struct {
	Line   int
	Column string
	Value  string
}

func (e *CellError) Error() string {
	return fmt.Sprintf("fila %d, columna %s: valor inválido %q", e.Line, e.Column, e.Value)
}

// RowReader parses typed values out of a Row. The first failure sticks and
// later calls return zero values; check Err once after reading every field.
type RowReader struct {
	row Row
	err error
}

func NewRowReader(row Row) *RowReader { return &RowReader{row: row} }

func (d *RowReader) Err() error { return d.err }

func (d *RowReader) fail(col, val string) {
	if d.err == nil {
		d.err = &CellError{Line: d.row.Line, Column: col, Value: val}
	}
}

// Text returns the cell; required cells may not be blank.
func (d *RowReader) Text(col string, required bool) string {
	val := d.row.Get(col)
	if required && val == "" {
		d.fail(col, val)
	}
	return val
}

func (d *RowReader) Int(col string) int {
	val := d.row.Get(col)
	n, err := utils.StringToInt(val)
	if err != nil {
		d.fail(col, val)
		return 0
	}
	return n
}

func (d *RowReader) Uint(col string) uint64 {
	val := d.row.Get(col)
	n := utils.StringToUint64(val)
	if n == 0 {
		d.fail(col, val)
	}
	return n
}

func (d *RowReader) Float(col string) float64 {
	val := d.row.Get(col)
	f, err := utils.StringToFloat(val)
	if err != nil {
		d.fail(col, val)
		return 0
	}
	return f
}

const dateLayout = "2006-01-02"

// Date accepts YYYY-MM-DD text or an Excel date serial and returns YYYY-MM-DD.
func (d *RowReader) Date(col string) string {
	val := d.row.Get(col)
	if _, err := time.Parse(dateLayout, val); err == nil {
		return val
	}
	if serial, err := strconv.ParseFloat(val, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, d.row.date1904); err == nil {
			return t.Format(dateLayout)
		}
	}
	d.fail(col, val)
	return ""
}
