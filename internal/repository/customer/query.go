package customer

import (
	"fmt"
	"strings"

	"profilo-crm/internal/domain"
)

const selectColumns = `id, first_name, last_name, email, phone, street_address, city, state, postal_code, country, join_date`

// predicate accumulates WHERE conditions as ordered (condition, parameter)
// pairs. Conditions carry $%d verbs that are bound to sequential positions
// when added, so values never end up concatenated into the SQL text.
type predicate struct {
	conds []string
	args  []any
}

// add appends a condition. cond must contain one $%d verb per value.
func (p *predicate) add(cond string, vals ...any) {
	positions := make([]any, len(vals))
	for i := range vals {
		positions[i] = len(p.args) + i + 1
	}
	p.conds = append(p.conds, fmt.Sprintf(cond, positions...))
	p.args = append(p.args, vals...)
}

// where joins the accumulated conditions with the given connective. It
// returns an empty string when no condition was added.
func (p *predicate) where(connective string) string {
	if len(p.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conds, " "+connective+" ")
}

// paged appends LIMIT/OFFSET bound to the next two parameter positions.
func (p *predicate) paged(q string, page domain.PageRequest) string {
	q += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(p.args)+1, len(p.args)+2)
	p.args = append(p.args, page.PageSize, page.Offset())
	return q
}

func like(s string) string {
	return "%" + s + "%"
}

// listQuery builds the token-search (or unfiltered) listing. The token
// matches the identifier exactly or any of first name, last name, email,
// phone as a case-insensitive substring, as one combined OR predicate.
// It returns the page query, the matching COUNT(*) query and their shared
// argument prefix; the page query additionally binds LIMIT and OFFSET.
func listQuery(token string, page domain.PageRequest) (sel, count string, selArgs, countArgs []any) {
	var p predicate
	if token != "" {
		p.add(`id::text = $%d`, token)
		p.add(`first_name ILIKE $%d`, like(token))
		p.add(`last_name ILIKE $%d`, like(token))
		p.add(`email ILIKE $%d`, like(token))
		p.add(`phone ILIKE $%d`, like(token))
	}
	where := p.where("OR")

	count = `SELECT COUNT(*) FROM customers` + where
	countArgs = p.args

	sel = `SELECT ` + selectColumns + ` FROM customers` + where + ` ORDER BY id`
	sel = p.paged(sel, page)
	selArgs = p.args
	return sel, count, selArgs, countArgs
}

// searchQuery builds the field search: every supplied filter contributes an
// independent AND-ed substring condition; name matches either first or last
// name. No filters means the predicate matches all rows.
func searchQuery(f Filter, page domain.PageRequest) (string, []any) {
	var p predicate
	if f.Phone != "" {
		p.add(`phone ILIKE $%d`, like(f.Phone))
	}
	if f.Name != "" {
		p.add(`(first_name ILIKE $%d OR last_name ILIKE $%d)`, like(f.Name), like(f.Name))
	}
	if f.Email != "" {
		p.add(`email ILIKE $%d`, like(f.Email))
	}

	q := `SELECT ` + selectColumns + ` FROM customers` + p.where("AND") + ` ORDER BY id`
	q = p.paged(q, page)
	return q, p.args
}

// batchInsertQuery builds one multi-row INSERT covering all records in
// their original order.
func batchInsertQuery(cs []domain.Customer) (string, []any) {
	var (
		rows = make([]string, 0, len(cs))
		args = make([]any, 0, len(cs)*9)
	)
	for i, c := range cs {
		base := i * 9
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		args = append(args, c.FirstName, c.LastName, c.Email, c.Phone,
			c.StreetAddress, c.City, c.State, c.PostalCode, c.Country)
	}

	q := `INSERT INTO customers (first_name, last_name, email, phone, street_address, city, state, postal_code, country) VALUES ` +
		strings.Join(rows, ", ")
	return q, args
}
