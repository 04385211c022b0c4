// Package purchase routes inbound gold purchases into stock credits and the
// matching cash posting.
package purchase

import (
	"fmt"
	"time"

	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// Type distinguishes supplier invoices from customer old-gold buybacks.
type Type string

const (
	TypeVendorInvoice Type = "Vendor Invoice"
	TypeOldGold       Type = "Old Gold"
)

// Status of a purchase.
type Status string

const (
	StatusReceived Status = "Received"
	StatusPending  Status = "Pending"
	StatusPartial  Status = "Partial"
)

// OldGoldPurity is the purity assumed for bought-back old gold.
const OldGoldPurity = types.Purity22K

// ReceivingLocation is where purchased gold is credited.
const ReceivingLocation = goldstock.Tejori

// Item categories that are routed to standard bar stock.
const (
	CategoryStdBar  = "Std Bar"
	CategoryBullion = "Bullion"
)

// Item is a purchased line.
type Item struct {
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Weight   types.Weight `json:"weight"`
	Purity   types.Purity `json:"purity"`
	Rate     types.Money  `json:"rate"`
	Amount   types.Money  `json:"amount"`
}

// Order is a purchase document.
type Order struct {
	ID             id.PurchaseID `json:"id"`
	InvoiceNo      string        `json:"invoice_no"`
	Type           Type          `json:"type"`
	SupplierName   string        `json:"supplier_name"`
	CustomerMobile string        `json:"customer_mobile,omitempty"`
	Date           time.Time     `json:"date"`
	TotalAmount    types.Money   `json:"total_amount"`
	PaidAmount     types.Money   `json:"paid_amount"`
	Status         Status        `json:"status"`
	Items          []Item        `json:"items"`
}

// Validate checks the order and normalises its date.
func (o *Order) Validate() error {
	if o.InvoiceNo == "" {
		return types.Invalid("invoice_no", "is required")
	}
	if o.Type != TypeVendorInvoice && o.Type != TypeOldGold {
		return types.Invalid("type", "unknown purchase type %q", o.Type)
	}
	if o.Date.IsZero() {
		return types.Invalid("date", "is required")
	}
	if len(o.Items) == 0 {
		return types.Invalid("items", "at least one item is required")
	}
	if err := types.CheckMonies(map[string]*types.Money{
		"total_amount": &o.TotalAmount,
		"paid_amount":  &o.PaidAmount,
	}); err != nil {
		return err
	}
	if o.TotalAmount.IsNegative() || o.PaidAmount.IsNegative() {
		return types.Invalid("total_amount", "must not be negative")
	}
	o.Items = append([]Item(nil), o.Items...)
	for i := range o.Items {
		if err := types.CheckMonies(map[string]*types.Money{
			"items.rate":   &o.Items[i].Rate,
			"items.amount": &o.Items[i].Amount,
		}); err != nil {
			return err
		}
	}
	for i, it := range o.Items {
		if !it.Weight.IsPositive() {
			return types.Invalid("items", "line %d weight must be positive", i)
		}
		if o.Type == TypeVendorInvoice && !it.Purity.Valid() {
			return types.Invalid("items", "line %d has unknown purity %q", i, it.Purity)
		}
	}
	if o.Status == "" {
		o.Status = StatusReceived
	}
	o.Date = types.Day(o.Date)
	return nil
}

// TotalWeight sums the item weights.
func (o Order) TotalWeight() types.Weight {
	var total types.Weight
	for _, it := range o.Items {
		total = total.Add(it.Weight)
	}
	return total
}

// Route returns the stock credits the order produces. Vendor invoice lines
// go to Std Bar or New Ornament by category at their own purity; an old-gold
// buyback credits its aggregate weight to Old Gold at OldGoldPurity.
func Route(o Order) []goldstock.Movement {
	if o.Type == TypeOldGold {
		return []goldstock.Movement{{
			Type:     goldstock.OldGold,
			Purity:   OldGoldPurity,
			Weight:   o.TotalWeight(),
			Location: ReceivingLocation,
		}}
	}

	out := make([]goldstock.Movement, 0, len(o.Items))
	for _, it := range o.Items {
		lt := goldstock.NewOrnament
		if it.Category == CategoryStdBar || it.Category == CategoryBullion {
			lt = goldstock.StdBar
		}
		out = append(out, goldstock.Movement{
			Type:     lt,
			Purity:   it.Purity,
			Weight:   it.Weight,
			Location: ReceivingLocation,
		})
	}
	return out
}

// PaymentMode is Cash for buybacks and Bank Transfer for vendor invoices.
func (o Order) PaymentMode() transaction.PaymentMode {
	if o.Type == TypeOldGold {
		return transaction.ModeCash
	}
	return transaction.ModeBankTransfer
}

// Posting returns the single Debit/Purchase posting for the order.
func (o Order) Posting() transaction.Transaction {
	desc := fmt.Sprintf("Purchase Invoice: %s", o.InvoiceNo)
	if o.Type == TypeOldGold {
		desc = fmt.Sprintf("Old Gold Purchase: %s", o.InvoiceNo)
	}
	return transaction.Transaction{
		Date:         o.Date,
		Description:  desc,
		Category:     transaction.CategoryPurchase,
		Direction:    transaction.Debit,
		Amount:       o.TotalAmount,
		PaymentMode:  o.PaymentMode(),
		ReferenceID:  o.InvoiceNo,
		CustomerName: o.SupplierName,
		Status:       transaction.StatusCompleted,
	}
}
