package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"profilo-crm/internal/domain"
)

// CustomerWriter commits one validated batch in a single statement.
type CustomerWriter interface {
	CreateBatch(ctx context.Context, cs []domain.Customer) (int64, error)
}

// MissingColumnsError means the header row does not name every required
// column. It is raised before any data row is processed.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "missing required columns: " + strings.Join(e.Columns, ", ")
}

// FormatError means the upload is not a readable delimited file: it is
// empty, or its header row cannot be parsed. Like MissingColumnsError it
// is raised before any data row is processed.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return "unreadable file: " + e.Err.Error()
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Result reports a committed import: rows submitted to the store against
// rows the store confirmed inserted.
type Result struct {
	Submitted int   `json:"submitted"`
	Inserted  int64 `json:"inserted"`
}

// CSVImporter streams a delimited customer file, validates every row and
// commits the accepted set in one batch. Any invalid row rejects the whole
// import; nothing is persisted in that case.
type CSVImporter struct {
	reader *csv.Reader
	repo   CustomerWriter
}

func NewCSVImporter(r io.Reader, repo CustomerWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may omit trailing optional columns
	return &CSVImporter{
		reader: csvr,
		repo:   repo,
	}
}

// Run consumes the stream exactly once. Data rows are numbered from 1 (the
// header is not counted). On validation failure it returns a
// *domain.ImportRejectedError listing every failing row; on success it
// issues one batched insert preserving stream order.
func (i *CSVImporter) Run(ctx context.Context) (*Result, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	index := headerIndex(headers)
	if missing := missingColumns(index); len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var (
		accepted []domain.Customer
		rowErrs  []domain.RowError
		rowNum   int
	)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", rowNum+1, err)
		}
		rowNum++

		c, err := domain.NewCustomerFromRow(decodeRow(record, index))
		if err != nil {
			rowErrs = append(rowErrs, domain.RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		accepted = append(accepted, c)
	}

	if len(rowErrs) > 0 {
		return nil, &domain.ImportRejectedError{Rows: rowErrs}
	}

	inserted, err := i.repo.CreateBatch(ctx, accepted)
	if err != nil {
		return nil, fmt.Errorf("batch insert: %w", err)
	}
	if inserted != int64(len(accepted)) {
		return nil, fmt.Errorf("store inserted %d of %d submitted rows", inserted, len(accepted))
	}
	return &Result{Submitted: len(accepted), Inserted: inserted}, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[domain.CanonicalColumn(h)] = i
	}
	return idx
}

func missingColumns(index map[string]int) []string {
	var missing []string
	for _, col := range domain.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

func decodeRow(record []string, index map[string]int) map[string]string {
	row := make(map[string]string, len(index))
	for col, pos := range index {
		if pos < len(record) {
			row[col] = record[pos]
		}
	}
	return row
}
