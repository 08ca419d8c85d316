package shared

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports every required column absent from an input
// table. All missing columns are enumerated in one failure so the caller can
// correct the input in a single round trip.
type MissingColumnsError struct {
	Table   string
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s table is missing required columns: %s",
		e.Table, strings.Join(e.Columns, ", "))
}

// TypeCoercionError reports a cell value that could not be coerced to its
// declared type. The stage that hit it aborts instead of silently dropping
// the row.
type TypeCoercionError struct {
	Table  string
	Column string
	Value  string
	Err    error
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("%s table: cannot coerce %q in column %q: %v",
		e.Table, e.Value, e.Column, e.Err)
}

func (e *TypeCoercionError) Unwrap() error {
	return e.Err
}
