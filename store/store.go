// Package store defines the persistence boundary for Bullion.
//
// Every book the engine keeps is persisted as one serialized document per
// named collection. Backends never interpret the payload; they only have to
// return exactly the bytes last saved for a collection.
package store

import "context"

// Collection names a persisted book.
type Collection string

const (
	Transactions Collection = "transactions"
	GoldStock    Collection = "goldStock"
	WorkOrders   Collection = "workOrders"
	Karigars     Collection = "karigars"
	Loans        Collection = "loans"
	Employees    Collection = "employees"
	Attendance   Collection = "attendance"
	Payroll      Collection = "payroll"
	Customers    Collection = "customers"
	Products     Collection = "products"
	Repairs      Collection = "repairs"
	Orders       Collection = "orders"
	Roles        Collection = "roles"
	Purchases    Collection = "purchases"
	Diamonds     Collection = "diamondStock"
	Activity     Collection = "activity"
)

// All returns every collection in load order.
func All() []Collection {
	return []Collection{
		Transactions, GoldStock, WorkOrders, Karigars, Loans,
		Employees, Attendance, Payroll, Customers, Products,
		Repairs, Orders, Roles, Purchases, Diamonds, Activity,
	}
}

func (c Collection) String() string { return string(c) }

// Store is the storage interface for all Bullion collections.
type Store interface {
	// Load returns the last payload saved for c. A collection that was never
	// saved returns an error matching bullion.ErrNotFound.
	Load(ctx context.Context, c Collection) ([]byte, error)

	// Save replaces the payload for c.
	Save(ctx context.Context, c Collection, payload []byte) error

	// Core methods
	Migrate(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
