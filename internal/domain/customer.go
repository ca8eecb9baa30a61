package domain

import "time"

// Customer is the single persisted entity: one row in the customers table.
// ID and JoinDate are assigned by the store on insert and never change.
type Customer struct {
	ID            int64     `json:"id"`
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	StreetAddress string    `json:"streetAddress,omitempty"`
	City          string    `json:"city,omitempty"`
	State         string    `json:"state,omitempty"`
	PostalCode    string    `json:"postalCode,omitempty"`
	Country       string    `json:"country,omitempty"`
	JoinDate      time.Time `json:"joinDate"`
}
