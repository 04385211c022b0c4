package bullion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xraph/bullion/access"
	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/custody"
	"github.com/xraph/bullion/customer"
	"github.com/xraph/bullion/diamond"
	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/inventory"
	"github.com/xraph/bullion/order"
	"github.com/xraph/bullion/payroll"
	"github.com/xraph/bullion/purchase"
	"github.com/xraph/bullion/repair"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/transaction"
)

// books is the full in-memory state. Actions work on a clone and the
// ledger swaps it in on success.
type books struct {
	transactions []transaction.Transaction
	goldStock    goldstock.Book
	custody      custody.Book
	loans        goldloan.Book
	payroll      payroll.Book
	customers    customer.Book
	inventory    inventory.Book
	repairs      repair.Book
	orders       order.Book
	roles        access.Book
	purchases    []purchase.Order
	diamonds     diamond.Book
}

func (b *books) clone() *books {
	return &books{
		transactions: append([]transaction.Transaction(nil), b.transactions...),
		goldStock:    b.goldStock.Clone(),
		custody:      b.custody.Clone(),
		loans:        b.loans.Clone(),
		payroll:      b.payroll.Clone(),
		customers:    b.customers.Clone(),
		inventory:    b.inventory.Clone(),
		repairs:      b.repairs.Clone(),
		orders:       b.orders.Clone(),
		roles:        b.roles.Clone(),
		purchases:    append([]purchase.Order(nil), b.purchases...),
		diamonds:     b.diamonds.Clone(),
	}
}

// target returns the slice a collection is persisted from. Every collection
// is a JSON array of records.
func (b *books) target(c store.Collection) (any, error) {
	switch c {
	case store.Transactions:
		return &b.transactions, nil
	case store.GoldStock:
		return &b.goldStock.Entries, nil
	case store.WorkOrders:
		return &b.custody.WorkOrders, nil
	case store.Karigars:
		return &b.custody.Karigars, nil
	case store.Loans:
		return &b.loans.Loans, nil
	case store.Employees:
		return &b.payroll.Employees, nil
	case store.Attendance:
		return &b.payroll.Attendance, nil
	case store.Payroll:
		return &b.payroll.Records, nil
	case store.Customers:
		return &b.customers.Customers, nil
	case store.Products:
		return &b.inventory.Products, nil
	case store.Repairs:
		return &b.repairs.Jobs, nil
	case store.Orders:
		return &b.orders.Orders, nil
	case store.Roles:
		return &b.roles.Roles, nil
	case store.Purchases:
		return &b.purchases, nil
	case store.Diamonds:
		return &b.diamonds.Packets, nil
	}
	return nil, fmt.Errorf("bullion: unknown collection %q", c)
}

// loadBooks reads every collection. A collection the store has never seen
// loads as empty.
func loadBooks(ctx context.Context, s store.Store, journal *audithook.Journal) (*books, error) {
	b := &books{}
	for _, c := range store.All() {
		payload, err := s.Load(ctx, c)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("bullion: load %s: %w", c, err)
		}

		if c == store.Activity {
			var entries []audithook.AuditEvent
			if err := json.Unmarshal(payload, &entries); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPayload, c, err)
			}
			journal.Restore(entries)
			continue
		}

		dst, err := b.target(c)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(payload, dst); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptPayload, c, err)
		}
	}
	return b, nil
}

// encode serializes one collection.
func (b *books) encode(c store.Collection) ([]byte, error) {
	src, err := b.target(c)
	if err != nil {
		return nil, err
	}
	return json.Marshal(src)
}
