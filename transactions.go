package bullion

import (
	"context"
	"fmt"

	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/customer"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/inventory"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// Step names of the transaction pipeline, in execution order. Plugin steps
// run between StepCustomerSpend and StepAudit.
const (
	StepAppend         = "append"
	StepDecrementStock = "decrement-stock"
	StepCustomerSpend  = "customer-spend"
	StepAudit          = "audit"
)

// txStep is one side effect of recording a transaction.
type txStep struct {
	name  string
	apply func(ctx context.Context, a *action, tx transaction.Transaction) error
}

// pipeline returns the ordered steps for one posting.
func (l *Ledger) pipeline() []txStep {
	steps := []txStep{
		{name: StepAppend, apply: appendStep},
		{name: StepDecrementStock, apply: decrementStockStep},
		{name: StepCustomerSpend, apply: customerSpendStep},
	}
	for _, p := range l.plugins.TransactionSteps() {
		steps = append(steps, txStep{
			name: p.StepName(),
			apply: func(ctx context.Context, a *action, tx transaction.Transaction) error {
				flags, err := p.Apply(ctx, tx)
				a.flags = append(a.flags, flags...)
				return err
			},
		})
	}
	return append(steps, txStep{name: StepAudit, apply: auditStep})
}

func appendStep(_ context.Context, a *action, tx transaction.Transaction) error {
	a.draft.transactions = append([]transaction.Transaction{tx}, a.draft.transactions...)
	a.touch(store.Transactions)
	return nil
}

// decrementStockStep lowers product stock for sold items. Stock may go
// negative; each product left below zero is flagged.
func decrementStockStep(_ context.Context, a *action, tx transaction.Transaction) error {
	if !tx.IsSale() {
		return nil
	}
	for _, it := range tx.Items {
		p, err := a.draft.inventory.Decrement(it.ProductID, it.Quantity)
		if err != nil {
			return err
		}
		if p.Stock < 0 {
			a.flag(types.FlagNegativeStock, "product", p.ID.String(),
				"%s (%s) stock is %d after sale", p.Name, p.SKU, p.Stock)
		}
	}
	a.touch(store.Products)
	return nil
}

// customerSpendStep adds the amount to the linked customer's spend and moves
// the last visit, whatever the direction.
func customerSpendStep(_ context.Context, a *action, tx transaction.Transaction) error {
	if tx.CustomerID.IsNil() {
		return nil
	}
	if _, err := a.draft.customers.RecordSpend(tx.CustomerID, tx.Amount, tx.Date); err != nil {
		return err
	}
	a.touch(store.Customers)
	return nil
}

func auditStep(_ context.Context, a *action, tx transaction.Transaction) error {
	a.log(audithook.ModuleFinance, "New Transaction", "%s of %s", tx.Direction, tx.Amount)
	a.emit(func(ctx context.Context) {
		a.l.plugins.EmitTransactionRecorded(ctx, &tx)
	})
	return nil
}

// post validates tx and runs it through the pipeline. Cascading actions
// (purchases, disbursals, payments) post through here as well.
func (a *action) post(ctx context.Context, tx transaction.Transaction) (transaction.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return transaction.Transaction{}, err
	}
	if tx.ID.IsNil() {
		tx.ID = id.NewTransactionID()
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = a.l.clock()
	}
	for _, s := range a.l.pipeline() {
		if err := s.apply(ctx, a, tx); err != nil {
			return transaction.Transaction{}, fmt.Errorf("%s: %w", s.name, err)
		}
	}
	return tx, nil
}

// RecordTransaction posts tx to the cash ledger and applies its cascades:
// stock decrement for sales, customer spend, activity log.
func (l *Ledger) RecordTransaction(ctx context.Context, tx transaction.Transaction) (*transaction.Transaction, []types.Flag, error) {
	var out transaction.Transaction
	flags, err := l.run(ctx, "record-transaction", func(a *action) error {
		var err error
		out, err = a.post(ctx, tx)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return &out, flags, nil
}

// Transactions returns the cash ledger, newest first.
func (l *Ledger) Transactions() []transaction.Transaction {
	var out []transaction.Transaction
	l.view(func(b *books) {
		out = append(out, b.transactions...)
	})
	return out
}

// Summary folds the cash ledger into its aggregates.
func (l *Ledger) Summary() transaction.Summary {
	var s transaction.Summary
	l.view(func(b *books) {
		s = transaction.Summarize(b.transactions)
	})
	return s
}

// ──────────────────────────────────────────────────
// Masters
// ──────────────────────────────────────────────────

// AddProduct registers a catalogue item with its opening stock.
func (l *Ledger) AddProduct(ctx context.Context, p inventory.Product) (*inventory.Product, error) {
	var out inventory.Product
	_, err := l.run(ctx, "add-product", func(a *action) error {
		var err error
		if out, err = a.draft.inventory.Add(p); err != nil {
			return err
		}
		a.touch(store.Products)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Product returns a catalogue item.
func (l *Ledger) Product(pid id.ProductID) (*inventory.Product, error) {
	var (
		p  inventory.Product
		ok bool
	)
	l.view(func(b *books) { p, ok = b.inventory.Get(pid) })
	if !ok {
		return nil, types.NotFound("product", pid.String())
	}
	return &p, nil
}

// Products returns the catalogue.
func (l *Ledger) Products() []inventory.Product {
	var out []inventory.Product
	l.view(func(b *books) {
		out = append(out, b.inventory.Products...)
	})
	return out
}

// AddCustomer registers a customer account.
func (l *Ledger) AddCustomer(ctx context.Context, c customer.Customer) (*customer.Customer, error) {
	var out customer.Customer
	_, err := l.run(ctx, "add-customer", func(a *action) error {
		var err error
		if out, err = a.draft.customers.Add(c); err != nil {
			return err
		}
		a.touch(store.Customers)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Customer returns a customer account.
func (l *Ledger) Customer(cid id.CustomerID) (*customer.Customer, error) {
	var (
		c  customer.Customer
		ok bool
	)
	l.view(func(b *books) { c, ok = b.customers.Get(cid) })
	if !ok {
		return nil, types.NotFound("customer", cid.String())
	}
	return &c, nil
}

// Customers returns every customer account.
func (l *Ledger) Customers() []customer.Customer {
	var out []customer.Customer
	l.view(func(b *books) {
		out = append(out, b.customers.Customers...)
	})
	return out
}
