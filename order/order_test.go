package order_test

import (
	"testing"

	"github.com/xraph/bullion/order"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

func TestPostings(t *testing.T) {
	o := order.Order{
		OrderNo:      "ORD-9",
		CustomerName: "Kavya",
		OrderDate:    types.MustDay("2024-03-03"),
		Items:        []order.Item{{DesignCode: "NK-7", Type: "Necklace", Purity: types.Purity22K, ApproxWeight: types.Grams("40")}},
		TotalValue:   types.Rupees(300000),
		Advances: []order.Advance{
			{Type: order.AdvanceCash, Value: types.Rupees(50000)},
			{Type: order.AdvanceOldGold, Value: types.Rupees(62500), GoldWeight: types.Grams("10"), GoldPurity: types.Purity22K},
		},
	}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if !o.BalanceDue.Equal(types.Rupees(187500)) {
		t.Errorf("balance due: got %v", o.BalanceDue)
	}

	ps := o.Postings()
	if len(ps) != 2 {
		t.Fatalf("expected one posting per advance, got %d", len(ps))
	}
	tests := []struct {
		mode transaction.PaymentMode
		desc string
	}{
		{transaction.ModeCash, "Order Advance: ORD-9 (Cash)"},
		{transaction.ModeOther, "Order Advance: ORD-9 (Old Gold)"},
	}
	for i, tt := range tests {
		p := ps[i]
		if p.PaymentMode != tt.mode || p.Description != tt.desc ||
			p.Direction != transaction.Credit || p.Category != transaction.CategorySales {
			t.Errorf("posting %d: %+v", i, p)
		}
		if !p.Date.Equal(o.OrderDate) {
			t.Errorf("posting %d: advance date should default to the order date", i)
		}
	}
}
