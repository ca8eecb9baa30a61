package customer

import (
	"context"
	"io"

	"profilo-crm/internal/domain"
	"profilo-crm/internal/importer"
	custrepo "profilo-crm/internal/repository/customer"
)

// Service implements the customer directory operations over a Repository.
type Service struct {
	repo custrepo.Repository
}

func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Input carries the full mutable field set for create and update. Partial
// updates are not supported; callers resubmit every field.
type Input struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	StreetAddress string
	City          string
	State         string
	PostalCode    string
	Country       string
}

func (in Input) toRow() map[string]string {
	return map[string]string{
		domain.ColFirstName:     in.FirstName,
		domain.ColLastName:      in.LastName,
		domain.ColEmail:         in.Email,
		domain.ColPhone:         in.Phone,
		domain.ColStreetAddress: in.StreetAddress,
		domain.ColCity:          in.City,
		domain.ColState:         in.State,
		domain.ColPostalCode:    in.PostalCode,
		domain.ColCountry:       in.Country,
	}
}

// List returns one page of customers. With a token it is a free-text search
// across identifier, names, email and phone; zero matches then yield
// domain.ErrNotFound. Without a token an empty directory is a valid empty
// page, not an error.
func (s *Service) List(ctx context.Context, token string, page, pageSize int) ([]domain.Customer, domain.PageResult, error) {
	req := domain.NewPageRequest(page, pageSize)
	rows, total, err := s.repo.List(ctx, token, req)
	if err != nil {
		return nil, domain.PageResult{}, err
	}
	if token != "" && total == 0 {
		return nil, domain.PageResult{}, domain.ErrNotFound
	}
	if rows == nil {
		rows = []domain.Customer{}
	}
	return rows, domain.NewPageResult(req, total), nil
}

// Search filters by any subset of phone, name and email; all supplied
// fields must match. Zero matches yield domain.ErrNotFound.
func (s *Service) Search(ctx context.Context, f custrepo.Filter, page, pageSize int) ([]domain.Customer, error) {
	req := domain.NewPageRequest(page, pageSize)
	rows, err := s.repo.Search(ctx, f, req)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrNotFound
	}
	return rows, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and persists a new customer. The store assigns the
// identifier and join date.
func (s *Service) Create(ctx context.Context, in Input) (*domain.Customer, error) {
	c, err := domain.NewCustomerFromRow(in.toRow())
	if err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, c)
}

// Update overwrites all mutable fields of an existing customer. Join date
// and identifier are never touched.
func (s *Service) Update(ctx context.Context, id int64, in Input) error {
	c, err := domain.NewCustomerFromRow(in.toRow())
	if err != nil {
		return err
	}
	c.ID = id
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Import runs the bulk-import pipeline over an uploaded CSV stream.
func (s *Service) Import(ctx context.Context, r io.Reader) (*importer.Result, error) {
	return importer.NewCSVImporter(r, s.repo).Run(ctx)
}
