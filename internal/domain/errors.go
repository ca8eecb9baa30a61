package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested customer was not found, or a
	// filtered search matched zero rows.
	ErrNotFound = errors.New("not found")
	// ErrEmailExists indicates the store rejected an insert or update
	// because another customer already holds the email address.
	ErrEmailExists = errors.New("email already exists")
)

// ValidationError reports required fields that were missing or empty after
// trimming. Fields preserves the fixed check order.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// RowError ties a validation failure to its data-row number. Numbering
// starts at 1 for the first row after the header.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %s", e.Row, e.Reason)
}

// ImportRejectedError carries the full per-row error list for an import
// that was aborted before anything was persisted.
type ImportRejectedError struct {
	Rows []RowError
}

func (e *ImportRejectedError) Error() string {
	return fmt.Sprintf("import rejected: %d invalid row(s)", len(e.Rows))
}
