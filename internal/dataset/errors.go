package dataset

import "fmt"

// MissingInputError reports that one of the three required tables was not
// supplied. It is fatal: no analysis runs without all three.
type MissingInputError struct {
	Table string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing required input table %q", e.Table)
}

// ParseError reports where decoding broke. Row is 1-based and counts the
// header; Column is 1-based, 0 when the position inside the row is unknown.
type ParseError struct {
	Table  string
	Row    int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column > 0 {
		return fmt.Sprintf("parse %s: row %d, column %d: %v", e.Table, e.Row, e.Column, e.Err)
	}
	return fmt.Sprintf("parse %s: row %d: %v", e.Table, e.Row, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
