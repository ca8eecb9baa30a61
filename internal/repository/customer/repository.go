package customer

import (
	"context"

	"profilo-crm/internal/domain"
)

// Filter carries the optional field-search inputs. Empty fields contribute
// no condition; all supplied fields must match.
type Filter struct {
	Phone string
	Name  string
	Email string
}

// Repository persists and fetches customers.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	// CreateBatch inserts all records in one statement and returns the
	// store-confirmed number of inserted rows.
	CreateBatch(ctx context.Context, cs []domain.Customer) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	// List returns one page of customers plus the total row count under
	// the same predicate. An empty token lists everything.
	List(ctx context.Context, token string, page domain.PageRequest) ([]domain.Customer, int64, error)
	Search(ctx context.Context, f Filter, page domain.PageRequest) ([]domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) error
	Delete(ctx context.Context, id int64) error
}
