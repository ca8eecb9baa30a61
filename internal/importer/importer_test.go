package importer

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"profilo-crm/internal/domain"
)

type stubCustomerRepo struct {
	batches  [][]domain.Customer
	inserted int64
	err      error
}

func (s *stubCustomerRepo) CreateBatch(_ context.Context, cs []domain.Customer) (int64, error) {
	s.batches = append(s.batches, cs)
	if s.err != nil {
		return 0, s.err
	}
	if s.inserted > 0 {
		return s.inserted, nil
	}
	return int64(len(cs)), nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `FirstName,LastName,Email,Phone,City,Country
 Ann ,Lee,ann@x.com,555-0101,Portland,US
Bruno,Silva,bruno@x.com,555-0102,Lisbon,PT
Chen,Wei,chen@x.com,555-0103,,`

	repo := &stubCustomerRepo{}
	result, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if result.Submitted != 3 || result.Inserted != 3 {
		t.Fatalf("expected 3/3, got %+v", result)
	}
	if len(repo.batches) != 1 {
		t.Fatalf("expected exactly one batch, got %d", len(repo.batches))
	}

	batch := repo.batches[0]
	if len(batch) != 3 {
		t.Fatalf("expected 3 rows in batch, got %d", len(batch))
	}
	if batch[0].FirstName != "Ann" || batch[0].City != "Portland" {
		t.Fatalf("expected trimmed first row in stream order, got %+v", batch[0])
	}
	if batch[2].Email != "chen@x.com" || batch[2].City != "" {
		t.Fatalf("unexpected last row: %+v", batch[2])
	}
}

func TestCSVImporter_RejectsWholeFileOnInvalidRow(t *testing.T) {
	csvData := `FirstName,LastName,Email,Phone
Ann,Lee,ann@x.com,555-0101
Bruno,Silva,bruno@x.com,
Chen,Wei,chen@x.com,555-0103`

	repo := &stubCustomerRepo{}
	_, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())

	var rejected *domain.ImportRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected ImportRejectedError, got %v", err)
	}
	if len(rejected.Rows) != 1 {
		t.Fatalf("expected exactly 1 row error, got %+v", rejected.Rows)
	}
	if rejected.Rows[0].Row != 2 {
		t.Fatalf("expected error on row 2, got row %d", rejected.Rows[0].Row)
	}
	if !strings.Contains(rejected.Rows[0].Reason, "Phone") {
		t.Fatalf("expected reason to name Phone, got %q", rejected.Rows[0].Reason)
	}
	if len(repo.batches) != 0 {
		t.Fatal("expected no rows persisted on rejection")
	}
}

func TestCSVImporter_ReportsEveryInvalidRow(t *testing.T) {
	csvData := `FirstName,LastName,Email,Phone
,Lee,,555-0101
Bruno,Silva,bruno@x.com,555-0102
, , ,`

	repo := &stubCustomerRepo{}
	_, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())

	var rejected *domain.ImportRejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected ImportRejectedError, got %v", err)
	}
	if len(rejected.Rows) != 2 {
		t.Fatalf("expected 2 row errors, got %+v", rejected.Rows)
	}
	if rejected.Rows[0].Row != 1 || rejected.Rows[1].Row != 3 {
		t.Fatalf("expected rows 1 and 3, got %+v", rejected.Rows)
	}
	if len(repo.batches) != 0 {
		t.Fatal("expected no rows persisted on rejection")
	}
}

func TestCSVImporter_EmptyUpload(t *testing.T) {
	repo := &stubCustomerRepo{}
	_, err := NewCSVImporter(strings.NewReader(""), repo).Run(context.Background())

	var format *FormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected FormatError for empty upload, got %v", err)
	}
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected wrapped EOF, got %v", err)
	}
	if len(repo.batches) != 0 {
		t.Fatal("expected no batch for empty upload")
	}
}

func TestCSVImporter_UnparsableHeader(t *testing.T) {
	// A stray quote makes the header row unreadable as CSV.
	repo := &stubCustomerRepo{}
	_, err := NewCSVImporter(strings.NewReader("FirstName,\"Last\nAnn,Lee"), repo).Run(context.Background())

	var format *FormatError
	if !errors.As(err, &format) {
		t.Fatalf("expected FormatError for unparsable header, got %v", err)
	}
	if len(repo.batches) != 0 {
		t.Fatal("expected no batch for unparsable upload")
	}
}

func TestCSVImporter_MissingHeaderColumns(t *testing.T) {
	csvData := `FirstName,LastName,Email
Ann,Lee,ann@x.com`

	repo := &stubCustomerRepo{}
	_, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	if len(missing.Columns) != 1 || missing.Columns[0] != "phone" {
		t.Fatalf("expected phone reported missing, got %v", missing.Columns)
	}
	if len(repo.batches) != 0 {
		t.Fatal("expected no batch on header failure")
	}
}

func TestCSVImporter_StopsOnCancelledContext(t *testing.T) {
	csvData := `FirstName,LastName,Email,Phone
Ann,Lee,ann@x.com,555-0101`

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := &stubCustomerRepo{}
	_, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(repo.batches) != 0 {
		t.Fatal("expected no batch submitted after cancellation")
	}
}

func TestCSVImporter_StoreConflictSurfaces(t *testing.T) {
	csvData := `FirstName,LastName,Email,Phone
Ann,Lee,ann@x.com,555-0101
Bob,Roy,ann@x.com,555-0102`

	repo := &stubCustomerRepo{err: domain.ErrEmailExists}
	_, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected conflict to surface, got %v", err)
	}
}

func TestCSVImporter_InsertedCountMismatch(t *testing.T) {
	csvData := `FirstName,LastName,Email,Phone
Ann,Lee,ann@x.com,555-0101
Bob,Roy,bob@x.com,555-0102`

	repo := &stubCustomerRepo{inserted: 1}
	_, err := NewCSVImporter(strings.NewReader(csvData), repo).Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "inserted 1 of 2") {
		t.Fatalf("expected count mismatch error, got %v", err)
	}
}
