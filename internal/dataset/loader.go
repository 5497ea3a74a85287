package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Value is one parsed cell. Raw always holds the original text; Number is set
// when the text looked numeric. Keeping Raw means identifiers never lose
// their exact string form to numeric inference.
type Value struct {
	Raw    string
	Number *float64
}

// Row maps column name (from the header row) to the parsed cell.
type Row map[string]Value

// Table is an ordered sequence of rows of one record type. Row order is file
// order.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// Len returns the number of data rows (header excluded).
func (t Table) Len() int { return len(t.Rows) }

// ReadTable decodes one uploaded table. Names ending in .xlsx are read as a
// workbook (first sheet), everything else as CSV. The header row supplies
// column names, blank lines are skipped, and cells are type-inferred.
// Required columns are not validated here; absent columns surface downstream
// as missing fields.
func ReadTable(r io.Reader, name string) (Table, error) {
	if strings.HasSuffix(strings.ToLower(name), ".xlsx") {
		return readXLSX(r, name)
	}
	return readCSV(r, name)
}

func readCSV(r io.Reader, name string) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	t := Table{Name: name}
	rowNum := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return Table{}, &ParseError{Table: name, Row: perr.Line, Column: perr.Column, Err: perr.Err}
			}
			return Table{}, &ParseError{Table: name, Row: rowNum, Err: err}
		}
		if isBlank(rec) {
			continue
		}
		if t.Columns == nil {
			t.Columns = headerNames(rec)
			continue
		}
		t.Rows = append(t.Rows, buildRow(t.Columns, rec))
	}
	if t.Columns == nil {
		return Table{}, &ParseError{Table: name, Row: 0, Err: fmt.Errorf("no header row")}
	}
	return t, nil
}

func readXLSX(r io.Reader, name string) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, &ParseError{Table: name, Row: 0, Err: fmt.Errorf("open workbook: %w", err)}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, &ParseError{Table: name, Row: 0, Err: fmt.Errorf("no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, &ParseError{Table: name, Row: 0, Err: fmt.Errorf("read rows: %w", err)}
	}

	t := Table{Name: name}
	for _, rec := range rows {
		if isBlank(rec) {
			continue
		}
		if t.Columns == nil {
			t.Columns = headerNames(rec)
			continue
		}
		t.Rows = append(t.Rows, buildRow(t.Columns, rec))
	}
	if t.Columns == nil {
		return Table{}, &ParseError{Table: name, Row: 0, Err: fmt.Errorf("no header row")}
	}
	return t, nil
}

func headerNames(rec []string) []string {
	cols := make([]string, len(rec))
	for i, h := range rec {
		cols[i] = strings.TrimSpace(h)
	}
	return cols
}

func buildRow(columns []string, rec []string) Row {
	row := Row{}
	for i, col := range columns {
		if col == "" || i >= len(rec) {
			continue
		}
		row[col] = inferValue(rec[i])
	}
	return row
}

func inferValue(raw string) Value {
	v := Value{Raw: raw}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return v
	}
	if n, err := strconv.ParseFloat(trimmed, 64); err == nil {
		v.Number = &n
	}
	return v
}

func isBlank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
