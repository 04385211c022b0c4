package bullion

import (
	"context"
	"fmt"
	"time"

	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/custody"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// AddKarigar registers a karigar with zero balances.
func (l *Ledger) AddKarigar(ctx context.Context, k custody.Karigar) (*custody.Karigar, error) {
	var out custody.Karigar
	_, err := l.run(ctx, "add-karigar", func(a *action) error {
		var err error
		if out, err = a.draft.custody.AddKarigar(k); err != nil {
			return err
		}
		a.touch(store.Karigars)
		a.log(audithook.ModuleKarigar, "Register", "Registered karigar %s (%s)", out.Name, out.Skill)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// checkGoldBalance flags a karigar whose gold balance is below zero.
func (a *action) checkGoldBalance(k custody.Karigar) {
	if k.GoldBalance.IsNegative() {
		a.flag(types.FlagNegativeGoldBalance, "karigar", k.ID.String(),
			"%s gold balance is %s", k.Name, k.GoldBalance)
	}
}

// IssueMaterial hands gold to a karigar against a new work order.
func (l *Ledger) IssueMaterial(ctx context.Context, in custody.IssueInput) (*custody.WorkOrder, []types.Flag, error) {
	var wo custody.WorkOrder
	flags, err := l.run(ctx, "issue-material", func(a *action) error {
		var (
			k   custody.Karigar
			err error
		)
		if wo, k, err = a.draft.custody.Issue(in); err != nil {
			return err
		}
		if err := a.issueDiamonds(wo.DiamondsIssued); err != nil {
			return err
		}
		a.touch(store.WorkOrders, store.Karigars)
		a.checkGoldBalance(k)
		a.log(audithook.ModuleKarigar, "Issue Material",
			"Issued %s %s to %s for %s", wo.GoldIssued, wo.GoldPurity, k.Name, wo.DesignCode)
		a.emit(func(ctx context.Context) {
			l.plugins.EmitMaterialIssued(ctx, &wo)
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &wo, flags, nil
}

// ReceiveMaterial completes an Issued work order. A finished weight above
// the issued weight is accepted and flagged as a wastage gain.
func (l *Ledger) ReceiveMaterial(ctx context.Context, in custody.ReceiveInput) (*custody.WorkOrder, []types.Flag, error) {
	var wo custody.WorkOrder
	flags, err := l.run(ctx, "receive-material", func(a *action) error {
		if in.Date.IsZero() {
			in.Date = l.clock()
		}
		var (
			k   custody.Karigar
			err error
		)
		if wo, k, err = a.draft.custody.Receive(in); err != nil {
			return err
		}
		a.touch(store.WorkOrders, store.Karigars)
		if wo.IsGain() {
			a.flag(types.FlagWastageGain, "work_order", wo.ID.String(),
				"%s returned %s more than issued", wo.DesignCode, wo.Wastage.Neg())
		}
		a.checkGoldBalance(k)
		a.log(audithook.ModuleKarigar, "Receive Material",
			"Received %s from %s for %s (wastage %s)", wo.FinishedWeight, k.Name, wo.DesignCode, wo.DisplayWastage())
		a.emit(func(ctx context.Context) {
			l.plugins.EmitMaterialReceived(ctx, &wo)
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &wo, flags, nil
}

// PayKarigar pays making charges in cash. Paying more than the balance owed
// is allowed and flagged.
func (l *Ledger) PayKarigar(ctx context.Context, kid id.KarigarID, amount types.Money, date time.Time) (*custody.Karigar, []types.Flag, error) {
	var k custody.Karigar
	if date.IsZero() {
		date = l.clock()
	}
	flags, err := l.run(ctx, "pay-karigar", func(a *action) error {
		if err := types.CheckMoney("amount", &amount); err != nil {
			return err
		}
		var (
			overpaid bool
			err      error
		)
		if k, overpaid, err = a.draft.custody.Pay(kid, amount); err != nil {
			return err
		}
		a.touch(store.Karigars)
		if overpaid {
			a.flag(types.FlagKarigarOverpaid, "karigar", k.ID.String(),
				"%s cash balance is %s after payment", k.Name, k.CashBalance)
		}

		if _, err := a.post(ctx, transaction.Transaction{
			Date:        date,
			Description: fmt.Sprintf("Payment to Karigar: %s", k.Name),
			Category:    transaction.CategoryExpense,
			Direction:   transaction.Debit,
			Amount:      amount,
			PaymentMode: transaction.ModeCash,
			ReferenceID: k.ID.String(),
			Status:      transaction.StatusCompleted,
		}); err != nil {
			return err
		}

		a.log(audithook.ModuleKarigar, "Payment", "Paid %s to %s", amount, k.Name)
		a.emit(func(ctx context.Context) {
			l.plugins.EmitKarigarPaid(ctx, &k, amount)
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &k, flags, nil
}

// Karigars returns every karigar with current balances.
func (l *Ledger) Karigars() []custody.Karigar {
	var out []custody.Karigar
	l.view(func(b *books) {
		out = append(out, b.custody.Karigars...)
	})
	return out
}

// Karigar returns one karigar.
func (l *Ledger) Karigar(kid id.KarigarID) (*custody.Karigar, error) {
	var (
		k  custody.Karigar
		ok bool
	)
	l.view(func(b *books) { k, ok = b.custody.Karigar(kid) })
	if !ok {
		return nil, types.NotFound("karigar", kid.String())
	}
	return &k, nil
}

// WorkOrders returns every work order, newest first.
func (l *Ledger) WorkOrders() []custody.WorkOrder {
	var out []custody.WorkOrder
	l.view(func(b *books) {
		out = append(out, b.custody.WorkOrders...)
	})
	return out
}
