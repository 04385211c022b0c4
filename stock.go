package bullion

import (
	"context"

	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/purchase"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/types"
)

// credit applies one stock credit inside an action.
func (a *action) credit(m goldstock.Movement) (goldstock.Entry, error) {
	e, err := a.draft.goldStock.Credit(m)
	if err != nil {
		return goldstock.Entry{}, err
	}
	a.touch(store.GoldStock)
	a.emit(func(ctx context.Context) {
		a.l.plugins.EmitGoldStockChanged(ctx, &e, m.Weight)
	})
	return e, nil
}

// CreditGold adds weight to the (type, location) stock entry, creating it
// when absent.
func (l *Ledger) CreditGold(ctx context.Context, m goldstock.Movement) (*goldstock.Entry, error) {
	var out goldstock.Entry
	_, err := l.run(ctx, "credit-gold", func(a *action) error {
		var err error
		if out, err = a.credit(m); err != nil {
			return err
		}
		a.log(audithook.ModuleTejori, "Stock In", "Credited %s %s to %s (%s)", m.Weight, m.Purity, m.Type, m.Location)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DebitGold removes weight from an existing stock entry. The debit is
// rejected when the entry is missing or would go below zero.
func (l *Ledger) DebitGold(ctx context.Context, m goldstock.Movement) (*goldstock.Entry, error) {
	var out goldstock.Entry
	_, err := l.run(ctx, "debit-gold", func(a *action) error {
		var err error
		if out, err = a.draft.goldStock.Debit(m); err != nil {
			return err
		}
		a.touch(store.GoldStock)
		a.log(audithook.ModuleTejori, "Stock Out", "Debited %s from %s (%s)", m.Weight, m.Type, m.Location)
		a.emit(func(ctx context.Context) {
			l.plugins.EmitGoldStockChanged(ctx, &out, m.Weight.Neg())
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GoldStock returns every stock entry.
func (l *Ledger) GoldStock() []goldstock.Entry {
	var out []goldstock.Entry
	l.view(func(b *books) {
		out = append(out, b.goldStock.Entries...)
	})
	return out
}

// GoldTotals returns the stock total per ledger type.
func (l *Ledger) GoldTotals() map[goldstock.LedgerType]types.Weight {
	var out map[goldstock.LedgerType]types.Weight
	l.view(func(b *books) { out = b.goldStock.Totals() })
	return out
}

// RecordPurchase books an inbound purchase: stock is credited to the Tejori
// by route and one Debit/Purchase transaction is posted for the invoice.
func (l *Ledger) RecordPurchase(ctx context.Context, po purchase.Order) (*purchase.Order, []types.Flag, error) {
	flags, err := l.run(ctx, "record-purchase", func(a *action) error {
		if err := po.Validate(); err != nil {
			return err
		}
		if po.ID.IsNil() {
			po.ID = id.NewPurchaseID()
		}
		for _, existing := range a.draft.purchases {
			if existing.InvoiceNo == po.InvoiceNo && existing.Type == po.Type {
				return types.Conflict("purchase", "invoice %q already recorded", po.InvoiceNo)
			}
		}

		for _, m := range purchase.Route(po) {
			if _, err := a.credit(m); err != nil {
				return err
			}
		}
		if _, err := a.post(ctx, po.Posting()); err != nil {
			return err
		}

		a.draft.purchases = append([]purchase.Order{po}, a.draft.purchases...)
		a.touch(store.Purchases)

		if po.Type == purchase.TypeOldGold {
			a.log(audithook.ModuleTejori, "Old Gold Purchase", "Bought %s Old Gold from %s", po.TotalWeight(), po.SupplierName)
		} else {
			a.log(audithook.ModulePurchase, "Vendor Invoice", "Added Invoice %s", po.InvoiceNo)
		}
		a.emit(func(ctx context.Context) {
			l.plugins.EmitPurchaseRecorded(ctx, &po)
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &po, flags, nil
}

// Purchases returns every recorded purchase, newest first.
func (l *Ledger) Purchases() []purchase.Order {
	var out []purchase.Order
	l.view(func(b *books) {
		out = append(out, b.purchases...)
	})
	return out
}
