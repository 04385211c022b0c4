// Package transaction defines cash postings and the aggregate folds over them.
//
// The transaction ledger is the single source of truth for cash movement.
// Amounts are never negative; the sign of a posting is carried by its
// Direction.
package transaction

import (
	"time"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Category classifies a posting.
type Category string

const (
	CategorySales    Category = "Sales"
	CategoryPurchase Category = "Purchase"
	CategoryExpense  Category = "Expense"
	CategorySalary   Category = "Salary"
	CategoryUtility  Category = "Utility"
	CategoryOther    Category = "Other"
)

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	switch c {
	case CategorySales, CategoryPurchase, CategoryExpense, CategorySalary, CategoryUtility, CategoryOther:
		return true
	}
	return false
}

// Direction is Credit for money in and Debit for money out.
type Direction string

const (
	Credit Direction = "Credit"
	Debit  Direction = "Debit"
)

// Valid reports whether d is Credit or Debit.
func (d Direction) Valid() bool { return d == Credit || d == Debit }

// PaymentMode is how a posting was settled.
type PaymentMode string

const (
	ModeCash         PaymentMode = "Cash"
	ModeCard         PaymentMode = "Card"
	ModeUPI          PaymentMode = "UPI"
	ModeBankTransfer PaymentMode = "Bank Transfer"
	ModeOther        PaymentMode = "Other"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	switch m {
	case ModeCash, ModeCard, ModeUPI, ModeBankTransfer, ModeOther:
		return true
	}
	return false
}

// Status of a posting.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool { return s == StatusCompleted || s == StatusPending }

// Item is a sold line on a Sales posting.
type Item struct {
	ProductID     id.ProductID `json:"product_id"`
	Name          string       `json:"name,omitempty"`
	Quantity      int          `json:"quantity"`
	UnitPrice     types.Money  `json:"unit_price"`
	MakingCharges types.Money  `json:"making_charges"`
	Total         types.Money  `json:"total"`
}

// Transaction is a single cash posting.
type Transaction struct {
	ID           id.TransactionID `json:"id"`
	Date         time.Time        `json:"date"`
	Description  string           `json:"description"`
	Category     Category         `json:"category"`
	Direction    Direction        `json:"direction"`
	Amount       types.Money      `json:"amount"`
	PaymentMode  PaymentMode      `json:"payment_mode"`
	ReferenceID  string           `json:"reference_id,omitempty"`
	CustomerID   id.CustomerID    `json:"customer_id"`
	CustomerName string           `json:"customer_name,omitempty"`
	Items        []Item           `json:"items,omitempty"`
	Subtotal     types.Money      `json:"subtotal"`
	Tax          types.Money      `json:"tax"`
	Discount     types.Money      `json:"discount"`
	Status       Status           `json:"status"`
	CreatedAt    time.Time        `json:"created_at"`
}

// Validate checks the posting and fills defaults for Status and Date
// normalisation. It does not touch ID.
func (t *Transaction) Validate() error {
	if t.Description == "" {
		return types.Invalid("description", "is required")
	}
	if t.Date.IsZero() {
		return types.Invalid("date", "is required")
	}
	if !t.Category.Valid() {
		return types.Invalid("category", "unknown category %q", t.Category)
	}
	if !t.Direction.Valid() {
		return types.Invalid("direction", "unknown direction %q", t.Direction)
	}
	if t.PaymentMode == "" {
		t.PaymentMode = ModeCash
	}
	if !t.PaymentMode.Valid() {
		return types.Invalid("payment_mode", "unknown payment mode %q", t.PaymentMode)
	}
	if t.Status == "" {
		t.Status = StatusCompleted
	}
	if !t.Status.Valid() {
		return types.Invalid("status", "unknown status %q", t.Status)
	}
	if t.Amount.IsNegative() {
		return types.Invalid("amount", "must not be negative, got %s", t.Amount)
	}
	if err := types.CheckMonies(map[string]*types.Money{
		"amount":   &t.Amount,
		"subtotal": &t.Subtotal,
		"tax":      &t.Tax,
		"discount": &t.Discount,
	}); err != nil {
		return err
	}
	if len(t.Items) > 0 {
		t.Items = append([]Item(nil), t.Items...)
	}
	for i := range t.Items {
		it := &t.Items[i]
		if it.ProductID.IsNil() {
			return types.Invalid("items", "line %d has no product", i)
		}
		if it.Quantity <= 0 {
			return types.Invalid("items", "line %d quantity must be positive, got %d", i, it.Quantity)
		}
		if err := types.CheckMonies(map[string]*types.Money{
			"items.unit_price":     &it.UnitPrice,
			"items.making_charges": &it.MakingCharges,
			"items.total":          &it.Total,
		}); err != nil {
			return err
		}
	}
	t.Date = types.Day(t.Date)
	return nil
}

// IsSale reports whether the posting carries sold items that move stock.
func (t Transaction) IsSale() bool {
	return t.Category == CategorySales && len(t.Items) > 0
}

// Signed returns the amount with Credit positive and Debit negative.
func (t Transaction) Signed() types.Money {
	if t.Direction == Debit {
		return t.Amount.Negate()
	}
	return t.Amount
}
