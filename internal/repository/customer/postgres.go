package customer

import (
	"context"
	"errors"
	"io"
	"log"

	"profilo-crm/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (first_name, last_name, email, phone, street_address, city, state, postal_code, country)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, join_date
`
	err := r.pool.QueryRow(ctx, q,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.StreetAddress,
		c.City,
		c.State,
		c.PostalCode,
		c.Country,
	).Scan(&c.ID, &c.JoinDate)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailExists
		}
		r.logger.Printf("customer repo: create email=%s error=%v", c.Email, err)
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) CreateBatch(ctx context.Context, cs []domain.Customer) (int64, error) {
	if len(cs) == 0 {
		return 0, nil
	}
	q, args := batchInsertQuery(cs)
	tag, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrEmailExists
		}
		r.logger.Printf("customer repo: batch insert count=%d error=%v", len(cs), err)
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	q := `SELECT ` + selectColumns + ` FROM customers WHERE id = $1`
	c, err := r.scanCustomer(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Printf("customer repo: get id=%d error=%v", id, err)
		}
		return nil, err
	}
	return c, nil
}

func (r *postgresRepo) List(ctx context.Context, token string, page domain.PageRequest) ([]domain.Customer, int64, error) {
	sel, count, selArgs, countArgs := listQuery(token, page)

	var total int64
	if err := r.pool.QueryRow(ctx, count, countArgs...).Scan(&total); err != nil {
		r.logger.Printf("customer repo: count token=%q error=%v", token, err)
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, sel, selArgs...)
	if err != nil {
		r.logger.Printf("customer repo: list token=%q error=%v", token, err)
		return nil, 0, err
	}
	result, err := r.collect(rows)
	if err != nil {
		r.logger.Printf("customer repo: list rows token=%q error=%v", token, err)
		return nil, 0, err
	}
	return result, total, nil
}

func (r *postgresRepo) Search(ctx context.Context, f Filter, page domain.PageRequest) ([]domain.Customer, error) {
	q, args := searchQuery(f, page)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Printf("customer repo: search error=%v", err)
		return nil, err
	}
	result, err := r.collect(rows)
	if err != nil {
		r.logger.Printf("customer repo: search rows error=%v", err)
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Update(ctx context.Context, c domain.Customer) error {
	const q = `
UPDATE customers
SET first_name = $1, last_name = $2, email = $3, phone = $4,
    street_address = $5, city = $6, state = $7, postal_code = $8, country = $9
WHERE id = $10
`
	tag, err := r.pool.Exec(ctx, q,
		c.FirstName,
		c.LastName,
		c.Email,
		c.Phone,
		c.StreetAddress,
		c.City,
		c.State,
		c.PostalCode,
		c.Country,
		c.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		r.logger.Printf("customer repo: update id=%d error=%v", c.ID, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("customer repo: delete id=%d error=%v", id, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.LastName,
		&c.Email,
		&c.Phone,
		&c.StreetAddress,
		&c.City,
		&c.State,
		&c.PostalCode,
		&c.Country,
		&c.JoinDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *postgresRepo) collect(rows pgx.Rows) ([]domain.Customer, error) {
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(
			&c.ID,
			&c.FirstName,
			&c.LastName,
			&c.Email,
			&c.Phone,
			&c.StreetAddress,
			&c.City,
			&c.State,
			&c.PostalCode,
			&c.Country,
			&c.JoinDate,
		); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
