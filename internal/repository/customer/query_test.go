package customer

import (
	"reflect"
	"strings"
	"testing"

	"profilo-crm/internal/domain"
)

func TestListQuery_Token(t *testing.T) {
	sel, count, selArgs, countArgs := listQuery("ann", domain.NewPageRequest(2, 10))

	wantWhere := `WHERE id::text = $1 OR first_name ILIKE $2 OR last_name ILIKE $3 OR email ILIKE $4 OR phone ILIKE $5`
	if !strings.Contains(sel, wantWhere) {
		t.Fatalf("select missing OR predicate:\n%s", sel)
	}
	if !strings.Contains(count, wantWhere) {
		t.Fatalf("count missing OR predicate:\n%s", count)
	}
	if !strings.Contains(sel, "ORDER BY id") {
		t.Fatalf("select missing stable order:\n%s", sel)
	}
	if !strings.HasSuffix(sel, "LIMIT $6 OFFSET $7") {
		t.Fatalf("select missing pagination:\n%s", sel)
	}

	wantSelArgs := []any{"ann", "%ann%", "%ann%", "%ann%", "%ann%", 10, 10}
	if !reflect.DeepEqual(selArgs, wantSelArgs) {
		t.Fatalf("select args = %v, want %v", selArgs, wantSelArgs)
	}
	wantCountArgs := []any{"ann", "%ann%", "%ann%", "%ann%", "%ann%"}
	if !reflect.DeepEqual(countArgs, wantCountArgs) {
		t.Fatalf("count args = %v, want %v", countArgs, wantCountArgs)
	}
}

func TestListQuery_Unfiltered(t *testing.T) {
	sel, count, selArgs, countArgs := listQuery("", domain.NewPageRequest(1, 10))

	if strings.Contains(sel, "WHERE") || strings.Contains(count, "WHERE") {
		t.Fatalf("unfiltered listing must match all rows:\n%s\n%s", sel, count)
	}
	wantSelArgs := []any{10, 0}
	if !reflect.DeepEqual(selArgs, wantSelArgs) {
		t.Fatalf("select args = %v, want %v", selArgs, wantSelArgs)
	}
	if len(countArgs) != 0 {
		t.Fatalf("count args = %v, want none", countArgs)
	}
}

func TestSearchQuery_AllFields(t *testing.T) {
	f := Filter{Phone: "555", Name: "lee", Email: "x.com"}
	q, args := searchQuery(f, domain.NewPageRequest(1, 10))

	wantWhere := `WHERE phone ILIKE $1 AND (first_name ILIKE $2 OR last_name ILIKE $3) AND email ILIKE $4`
	if !strings.Contains(q, wantWhere) {
		t.Fatalf("search missing AND predicate:\n%s", q)
	}
	want := []any{"%555%", "%lee%", "%lee%", "%x.com%", 10, 0}
	if !reflect.DeepEqual(args, want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
}

func TestSearchQuery_SubsetAndEmpty(t *testing.T) {
	q, args := searchQuery(Filter{Email: "x"}, domain.NewPageRequest(1, 10))
	if !strings.Contains(q, `WHERE email ILIKE $1`) {
		t.Fatalf("expected single email condition:\n%s", q)
	}
	if !reflect.DeepEqual(args, []any{"%x%", 10, 0}) {
		t.Fatalf("args = %v", args)
	}

	q, args = searchQuery(Filter{}, domain.NewPageRequest(1, 10))
	if strings.Contains(q, "WHERE") {
		t.Fatalf("empty filter must match all rows:\n%s", q)
	}
	if !reflect.DeepEqual(args, []any{10, 0}) {
		t.Fatalf("args = %v", args)
	}
}

func TestBatchInsertQuery(t *testing.T) {
	cs := []domain.Customer{
		{FirstName: "Ann", LastName: "Lee", Email: "a@x.com", Phone: "555", City: "Portland"},
		{FirstName: "Bob", LastName: "Roy", Email: "b@x.com", Phone: "556"},
	}

	q, args := batchInsertQuery(cs)
	if !strings.HasSuffix(q, "($1, $2, $3, $4, $5, $6, $7, $8, $9), ($10, $11, $12, $13, $14, $15, $16, $17, $18)") {
		t.Fatalf("unexpected placeholders:\n%s", q)
	}
	if len(args) != 18 {
		t.Fatalf("expected 18 args, got %d", len(args))
	}
	// Stream order is preserved.
	if args[0] != "Ann" || args[9] != "Bob" {
		t.Fatalf("rows out of order: %v", args)
	}
	if args[5] != "Portland" || args[2] != "a@x.com" {
		t.Fatalf("column order broken: %v", args)
	}
}
