package domain

import "strings"

// Canonical column names accepted by NewCustomerFromRow. Keys are produced
// by CanonicalColumn, so "First Name", "first_name" and "FirstName" all
// resolve to "firstname".
const (
	ColFirstName     = "firstname"
	ColLastName      = "lastname"
	ColEmail         = "email"
	ColPhone         = "phone"
	ColStreetAddress = "streetaddress"
	ColCity          = "city"
	ColState         = "state"
	ColPostalCode    = "postalcode"
	ColCountry       = "country"
)

// RequiredColumns lists the columns every row must fill, in the fixed
// order validation reports them.
var RequiredColumns = []string{ColFirstName, ColLastName, ColEmail, ColPhone}

var requiredLabels = map[string]string{
	ColFirstName: "FirstName",
	ColLastName:  "LastName",
	ColEmail:     "Email",
	ColPhone:     "Phone",
}

// CanonicalColumn normalizes a header cell so minor spelling variants of
// the same column compare equal.
func CanonicalColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, " ", "")
	return name
}

// NewCustomerFromRow builds a Customer from one decoded row. All values are
// trimmed; the four required fields must be non-empty afterwards. A row
// either fully passes or fails with a single *ValidationError naming every
// missing field. Uniqueness is not checked here; that is the store's job.
func NewCustomerFromRow(row map[string]string) (Customer, error) {
	trimmed := make(map[string]string, len(row))
	for k, v := range row {
		trimmed[CanonicalColumn(k)] = strings.TrimSpace(v)
	}

	var missing []string
	for _, col := range RequiredColumns {
		if trimmed[col] == "" {
			missing = append(missing, requiredLabels[col])
		}
	}
	if len(missing) > 0 {
		return Customer{}, &ValidationError{Fields: missing}
	}

	return Customer{
		FirstName:     trimmed[ColFirstName],
		LastName:      trimmed[ColLastName],
		Email:         trimmed[ColEmail],
		Phone:         trimmed[ColPhone],
		StreetAddress: trimmed[ColStreetAddress],
		City:          trimmed[ColCity],
		State:         trimmed[ColState],
		PostalCode:    trimmed[ColPostalCode],
		Country:       trimmed[ColCountry],
	}, nil
}
