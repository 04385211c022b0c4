package purchase_test

import (
	"testing"

	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/purchase"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

func TestRouteVendorInvoice(t *testing.T) {
	o := purchase.Order{
		InvoiceNo: "INV-7",
		Type:      purchase.TypeVendorInvoice,
		Date:      types.MustDay("2024-03-10"),
		Items: []purchase.Item{
			{Name: "Bar", Category: "Std Bar", Weight: types.Grams("100"), Purity: types.Purity24K},
			{Name: "Biscuit", Category: "Bullion", Weight: types.Grams("50"), Purity: types.Purity24K},
			{Name: "Chain", Category: "Necklace", Weight: types.Grams("22.5"), Purity: types.Purity22K},
		},
		TotalAmount: types.Rupees(1000000),
	}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}

	moves := purchase.Route(o)
	want := []struct {
		lt     goldstock.LedgerType
		purity types.Purity
		weight string
	}{
		{goldstock.StdBar, types.Purity24K, "100"},
		{goldstock.StdBar, types.Purity24K, "50"},
		{goldstock.NewOrnament, types.Purity22K, "22.5"},
	}
	if len(moves) != len(want) {
		t.Fatalf("got %d movements, want %d", len(moves), len(want))
	}
	for i, w := range want {
		m := moves[i]
		if m.Type != w.lt || m.Purity != w.purity || !m.Weight.Equal(types.Grams(w.weight)) || m.Location != goldstock.Tejori {
			t.Errorf("movement %d: got %+v", i, m)
		}
	}

	p := o.Posting()
	if p.PaymentMode != transaction.ModeBankTransfer || p.Direction != transaction.Debit ||
		p.Category != transaction.CategoryPurchase || p.Description != "Purchase Invoice: INV-7" {
		t.Errorf("unexpected posting: %+v", p)
	}
}

func TestRouteOldGold(t *testing.T) {
	o := purchase.Order{
		InvoiceNo:    "OG-1",
		Type:         purchase.TypeOldGold,
		SupplierName: "Walk-in",
		Date:         types.MustDay("2024-03-10"),
		Items: []purchase.Item{
			{Name: "Bangle", Weight: types.Grams("12.2")},
			{Name: "Ring", Weight: types.Grams("3.3")},
		},
		TotalAmount: types.Rupees(90000),
	}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}

	moves := purchase.Route(o)
	if len(moves) != 1 {
		t.Fatalf("old gold must credit one aggregate, got %d", len(moves))
	}
	if moves[0].Type != goldstock.OldGold || moves[0].Purity != types.Purity22K || !moves[0].Weight.Equal(types.Grams("15.5")) {
		t.Errorf("unexpected movement: %+v", moves[0])
	}
	if o.Posting().PaymentMode != transaction.ModeCash {
		t.Error("old gold buyback must be paid in cash")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		o    purchase.Order
	}{
		{"no invoice", purchase.Order{Type: purchase.TypeOldGold, Date: types.MustDay("2024-01-01"),
			Items: []purchase.Item{{Weight: types.Grams("1")}}}},
		{"no items", purchase.Order{InvoiceNo: "X", Type: purchase.TypeOldGold, Date: types.MustDay("2024-01-01")}},
		{"zero weight", purchase.Order{InvoiceNo: "X", Type: purchase.TypeOldGold, Date: types.MustDay("2024-01-01"),
			Items: []purchase.Item{{Weight: types.Grams("0")}}}},
		{"vendor line without purity", purchase.Order{InvoiceNo: "X", Type: purchase.TypeVendorInvoice,
			Date: types.MustDay("2024-01-01"), Items: []purchase.Item{{Weight: types.Grams("1")}}}},
		{"unknown type", purchase.Order{InvoiceNo: "X", Type: "Gift", Date: types.MustDay("2024-01-01"),
			Items: []purchase.Item{{Weight: types.Grams("1")}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.o.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
