package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type customerSeed struct {
	FirstName  string
	LastName   string
	Email      string
	Phone      string
	City       string
	Country    string
	PostalCode string
}

// Apply inserts basic seed data for manual testing. It is idempotent via
// ON CONFLICT on the email index.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	customers := []customerSeed{
		{
			FirstName:  "Ann",
			LastName:   "Lee",
			Email:      "ann.lee@example.com",
			Phone:      "555-0101",
			City:       "Portland",
			Country:    "US",
			PostalCode: "97201",
		},
		{
			FirstName:  "Bruno",
			LastName:   "Silva",
			Email:      "bruno.silva@example.com",
			Phone:      "555-0102",
			City:       "Lisbon",
			Country:    "PT",
			PostalCode: "1100-001",
		},
		{
			FirstName:  "Chen",
			LastName:   "Wei",
			Email:      "chen.wei@example.com",
			Phone:      "555-0103",
			City:       "Singapore",
			Country:    "SG",
			PostalCode: "049483",
		},
	}

	for _, c := range customers {
		if err := insertCustomer(ctx, pool, c); err != nil {
			return fmt.Errorf("insert customer %s: %w", c.Email, err)
		}
	}

	return nil
}

func insertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) error {
	const q = `
INSERT INTO customers (first_name, last_name, email, phone, city, country, postal_code)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (lower(email)) DO NOTHING
`
	_, err := pool.Exec(ctx, q, c.FirstName, c.LastName, c.Email, c.Phone, c.City, c.Country, c.PostalCode)
	return err
}
