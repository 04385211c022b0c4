package bullion

import (
	"context"
	"fmt"
	"time"

	"github.com/xraph/bullion/access"
	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/order"
	"github.com/xraph/bullion/rates"
	"github.com/xraph/bullion/repair"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// ──────────────────────────────────────────────────
// Repairs
// ──────────────────────────────────────────────────

// CreateRepair opens a repair job. An advance is posted as a cash sale.
func (l *Ledger) CreateRepair(ctx context.Context, j repair.Job) (*repair.Job, error) {
	_, err := l.run(ctx, "create-repair", func(a *action) error {
		var err error
		if j, err = a.draft.repairs.Create(j); err != nil {
			return err
		}
		a.touch(store.Repairs)

		if j.AdvancePayment.IsPositive() {
			if _, err := a.post(ctx, transaction.Transaction{
				Date:         j.ReceivedDate,
				Description:  fmt.Sprintf("Repair Advance: %s", j.JobNo),
				Category:     transaction.CategorySales,
				Direction:    transaction.Credit,
				Amount:       j.AdvancePayment,
				PaymentMode:  transaction.ModeCash,
				ReferenceID:  j.JobNo,
				CustomerName: j.CustomerName,
				Status:       transaction.StatusCompleted,
			}); err != nil {
				return err
			}
		}
		a.log(audithook.ModuleRepairs, "Create", "Received %s for repair (%s)", j.ProductName, j.JobNo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// RepairPayment collects the outstanding balance on delivery.
type RepairPayment struct {
	Mode transaction.PaymentMode
	Date time.Time
}

// AdvanceRepair moves a job to its next step. Delivering a job with a
// balance due requires pay; the collected balance is posted as a sale.
func (l *Ledger) AdvanceRepair(ctx context.Context, rid id.RepairID, pay *RepairPayment) (*repair.Job, error) {
	date := l.clock()
	mode := transaction.ModeCash
	if pay != nil {
		if !pay.Date.IsZero() {
			date = pay.Date
		}
		if pay.Mode != "" {
			mode = pay.Mode
		}
	}

	var j repair.Job
	_, err := l.run(ctx, "advance-repair", func(a *action) error {
		var (
			collected types.Money
			err       error
		)
		if j, collected, err = a.draft.repairs.Advance(rid, pay != nil, date); err != nil {
			return err
		}
		a.touch(store.Repairs)

		if collected.IsPositive() {
			if _, err := a.post(ctx, transaction.Transaction{
				Date:         date,
				Description:  fmt.Sprintf("Repair Final Payment: %s", j.JobNo),
				Category:     transaction.CategorySales,
				Direction:    transaction.Credit,
				Amount:       collected,
				PaymentMode:  mode,
				ReferenceID:  j.JobNo,
				CustomerName: j.CustomerName,
				Status:       transaction.StatusCompleted,
			}); err != nil {
				return err
			}
		}
		a.log(audithook.ModuleRepairs, "Update Status", "Job %s moved to %s", j.JobNo, j.Status)
		a.emit(func(ctx context.Context) {
			l.plugins.EmitRepairAdvanced(ctx, &j)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Repairs returns every repair job, newest first.
func (l *Ledger) Repairs() []repair.Job {
	var out []repair.Job
	l.view(func(b *books) {
		out = append(out, b.repairs.Jobs...)
	})
	return out
}

// ──────────────────────────────────────────────────
// Orders
// ──────────────────────────────────────────────────

// CreateOrder books a customer order and posts each advance received.
func (l *Ledger) CreateOrder(ctx context.Context, o order.Order) (*order.Order, error) {
	_, err := l.run(ctx, "create-order", func(a *action) error {
		if err := o.Validate(); err != nil {
			return err
		}
		var err error
		if o, err = a.draft.orders.Add(o); err != nil {
			return err
		}
		a.touch(store.Orders)

		for _, tx := range o.Postings() {
			if _, err := a.post(ctx, tx); err != nil {
				return err
			}
		}
		a.log(audithook.ModuleRetail, "Create Order", "Created Order %s for %s", o.OrderNo, o.CustomerName)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Orders returns every customer order, newest first.
func (l *Ledger) Orders() []order.Order {
	var out []order.Order
	l.view(func(b *books) {
		out = append(out, b.orders.Orders...)
	})
	return out
}

// ──────────────────────────────────────────────────
// Masters
// ──────────────────────────────────────────────────

// AddRole stores a role definition. Roles are data; nothing enforces them.
func (l *Ledger) AddRole(ctx context.Context, r access.Role) (*access.Role, error) {
	_, err := l.run(ctx, "add-role", func(a *action) error {
		var err error
		if r, err = a.draft.roles.Add(r); err != nil {
			return err
		}
		a.touch(store.Roles)
		a.log(audithook.ModuleMasters, "Create Role", "Created role %s with %d permissions", r.Name, len(r.Permissions))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Roles returns every role.
func (l *Ledger) Roles() []access.Role {
	var out []access.Role
	l.view(func(b *books) {
		out = append(out, b.roles.Roles...)
	})
	return out
}

// UpdateRates replaces the live rate card. The configured provider must
// implement rates.Updater.
func (l *Ledger) UpdateRates(ctx context.Context, r rates.Rates) error {
	u, ok := l.rates.(rates.Updater)
	if !ok {
		return ErrRatesReadOnly
	}
	if r.LastUpdated.IsZero() {
		r.LastUpdated = l.clock()
	}
	_, err := l.run(ctx, "update-rates", func(a *action) error {
		if err := u.Update(ctx, r); err != nil {
			return err
		}
		a.log(audithook.ModuleMasters, "Rate Update", "Updated Daily Gold/Silver Rates")
		a.emit(func(ctx context.Context) {
			l.plugins.EmitRatesUpdated(ctx, r)
		})
		return nil
	})
	return err
}
