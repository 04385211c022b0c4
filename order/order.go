// Package order holds customer made-to-order jobs and their advance receipts.
package order

import (
	"fmt"
	"time"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// Status of a customer order.
type Status string

const (
	StatusPending      Status = "Pending"
	StatusInProduction Status = "In Production"
	StatusReady        Status = "Ready"
	StatusDelivered    Status = "Delivered"
	StatusCancelled    Status = "Cancelled"
)

// AdvanceType is the form an advance was received in.
type AdvanceType string

const (
	AdvanceCash    AdvanceType = "Cash"
	AdvanceOldGold AdvanceType = "Old Gold"
	AdvanceStone   AdvanceType = "Stone"
)

// Item is a design requested on the order.
type Item struct {
	DesignCode   string       `json:"design_code"`
	Type         string       `json:"type"`
	Purity       types.Purity `json:"purity"`
	ApproxWeight types.Weight `json:"approx_weight"`
	Instructions string       `json:"instructions,omitempty"`
}

// Advance is a receipt taken against the order.
type Advance struct {
	Date        time.Time    `json:"date"`
	Type        AdvanceType  `json:"type"`
	Description string       `json:"description,omitempty"`
	Value       types.Money  `json:"value"`
	GoldWeight  types.Weight `json:"gold_weight"`
	GoldPurity  types.Purity `json:"gold_purity,omitempty"`
	GoldRate    types.Money  `json:"gold_rate"`
}

// PaymentMode is Cash for cash advances and Other for anything else.
func (a Advance) PaymentMode() transaction.PaymentMode {
	if a.Type == AdvanceCash {
		return transaction.ModeCash
	}
	return transaction.ModeOther
}

// Order is a customer order.
type Order struct {
	ID           id.OrderID    `json:"id"`
	OrderNo      string        `json:"order_no"`
	CustomerID   id.CustomerID `json:"customer_id"`
	CustomerName string        `json:"customer_name"`
	OrderDate    time.Time     `json:"order_date"`
	DeliveryDate time.Time     `json:"delivery_date"`
	Status       Status        `json:"status"`
	Items        []Item        `json:"items"`
	Advances     []Advance     `json:"advances"`
	TotalValue   types.Money   `json:"total_value"`
	BalanceDue   types.Money   `json:"balance_due"`
}

// AdvanceTotal sums the advance values.
func (o Order) AdvanceTotal() types.Money {
	total := types.Zero(types.DefaultCurrency)
	for _, a := range o.Advances {
		total = total.Add(a.Value)
	}
	return total
}

// Validate checks the order, normalises dates and derives BalanceDue.
func (o *Order) Validate() error {
	if o.OrderNo == "" {
		return types.Invalid("order_no", "is required")
	}
	if o.CustomerName == "" {
		return types.Invalid("customer_name", "is required")
	}
	if o.OrderDate.IsZero() {
		return types.Invalid("order_date", "is required")
	}
	if len(o.Items) == 0 {
		return types.Invalid("items", "at least one item is required")
	}
	if err := types.CheckMoney("total_value", &o.TotalValue); err != nil {
		return err
	}
	if o.TotalValue.IsNegative() {
		return types.Invalid("total_value", "must not be negative")
	}
	o.Advances = append([]Advance(nil), o.Advances...)
	for i, a := range o.Advances {
		if err := types.CheckMonies(map[string]*types.Money{
			fmt.Sprintf("advances[%d].value", i):     &o.Advances[i].Value,
			fmt.Sprintf("advances[%d].gold_rate", i): &o.Advances[i].GoldRate,
		}); err != nil {
			return err
		}
		a = o.Advances[i]
		if !a.Value.IsPositive() {
			return types.Invalid("advances", "advance %d value must be positive", i)
		}
		if a.Type != AdvanceCash && a.Type != AdvanceOldGold && a.Type != AdvanceStone {
			return types.Invalid("advances", "advance %d has unknown type %q", i, a.Type)
		}
		if a.Date.IsZero() {
			o.Advances[i].Date = o.OrderDate
		}
		o.Advances[i].Date = types.Day(o.Advances[i].Date)
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	o.OrderDate = types.Day(o.OrderDate)
	o.BalanceDue = o.TotalValue.Subtract(o.AdvanceTotal())
	return nil
}

// Postings returns one Credit/Sales posting per advance.
func (o Order) Postings() []transaction.Transaction {
	out := make([]transaction.Transaction, 0, len(o.Advances))
	for _, a := range o.Advances {
		out = append(out, transaction.Transaction{
			Date:         a.Date,
			Description:  fmt.Sprintf("Order Advance: %s (%s)", o.OrderNo, a.Type),
			Category:     transaction.CategorySales,
			Direction:    transaction.Credit,
			Amount:       a.Value,
			PaymentMode:  a.PaymentMode(),
			ReferenceID:  o.OrderNo,
			CustomerName: o.CustomerName,
			Status:       transaction.StatusCompleted,
		})
	}
	return out
}

// Book holds customer orders, newest first.
type Book struct {
	Orders []Order
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{Orders: append([]Order(nil), b.Orders...)}
}

// Add stores a validated order. Order numbers are unique.
func (b *Book) Add(o Order) (Order, error) {
	if o.ID.IsNil() {
		o.ID = id.NewOrderID()
	}
	for _, existing := range b.Orders {
		if existing.OrderNo == o.OrderNo {
			return Order{}, types.Conflict("order", "order %q already exists", o.OrderNo)
		}
	}
	b.Orders = append([]Order{o}, b.Orders...)
	return o, nil
}
