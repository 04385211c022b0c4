// Package customer keeps the running spend and last-visit aggregate per
// customer account.
package customer

import (
	"time"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Tier is the customer segment.
type Tier string

const (
	TierVIP     Tier = "VIP"
	TierRegular Tier = "Regular"
	TierNew     Tier = "New"
)

// Customer is a customer account.
type Customer struct {
	ID         id.CustomerID `json:"id"`
	Code       string        `json:"code"`
	Name       string        `json:"name"`
	Phone      string        `json:"phone"`
	Email      string        `json:"email,omitempty"`
	Tier       Tier          `json:"tier"`
	TotalSpend types.Money   `json:"total_spend"`
	LastVisit  time.Time     `json:"last_visit"`
	City       string        `json:"city,omitempty"`
	PAN        string        `json:"pan,omitempty"`
}

// Book holds customer accounts.
type Book struct {
	Customers []Customer
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{Customers: append([]Customer(nil), b.Customers...)}
}

// Get returns the customer with the given id.
func (b Book) Get(cid id.CustomerID) (Customer, bool) {
	for _, c := range b.Customers {
		if c.ID == cid {
			return c, true
		}
	}
	return Customer{}, false
}

// Add registers a customer with a zero spend.
func (b *Book) Add(c Customer) (Customer, error) {
	if c.Name == "" {
		return Customer{}, types.Invalid("name", "is required")
	}
	if c.ID.IsNil() {
		c.ID = id.NewCustomerID()
	}
	if _, ok := b.Get(c.ID); ok {
		return Customer{}, types.Conflict("customer", "id %s already exists", c.ID)
	}
	if c.Tier == "" {
		c.Tier = TierNew
	}
	if err := types.CheckMoney("total_spend", &c.TotalSpend); err != nil {
		return Customer{}, err
	}
	if c.TotalSpend.IsNegative() {
		return Customer{}, types.Invalid("total_spend", "must not be negative")
	}
	b.Customers = append([]Customer{c}, b.Customers...)
	return c, nil
}

// RecordSpend adds amount to the customer's total spend and moves the last
// visit to date.
func (b *Book) RecordSpend(cid id.CustomerID, amount types.Money, date time.Time) (Customer, error) {
	if err := types.CheckMoney("amount", &amount); err != nil {
		return Customer{}, err
	}
	for i, c := range b.Customers {
		if c.ID != cid {
			continue
		}
		c.TotalSpend = c.TotalSpend.Add(amount)
		c.LastVisit = types.Day(date)
		b.Customers[i] = c
		return c, nil
	}
	return Customer{}, types.NotFound("customer", cid.String())
}
