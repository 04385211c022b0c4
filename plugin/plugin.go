// Package plugin provides an extensible plugin system for Bullion.
// Plugins can hook into business events to extend functionality.
package plugin

import (
	"context"

	"github.com/xraph/bullion/custody"
	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/payroll"
	"github.com/xraph/bullion/purchase"
	"github.com/xraph/bullion/rates"
	"github.com/xraph/bullion/repair"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the ledger starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, l interface{}) error
}

// OnShutdown is called when the ledger stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context) error
}

// ──────────────────────────────────────────────────
// Cash ledger hooks
// ──────────────────────────────────────────────────

// OnTransactionRecorded is called after a transaction is committed, whether
// it was posted directly or as the cascade of another action.
type OnTransactionRecorded interface {
	Plugin
	OnTransactionRecorded(ctx context.Context, tx *transaction.Transaction) error
}

// ──────────────────────────────────────────────────
// Gold stock hooks
// ──────────────────────────────────────────────────

// OnGoldStockChanged is called after a credit or debit is committed. Delta is
// negative for debits.
type OnGoldStockChanged interface {
	Plugin
	OnGoldStockChanged(ctx context.Context, entry *goldstock.Entry, delta types.Weight) error
}

// OnPurchaseRecorded is called after a purchase is routed into stock.
type OnPurchaseRecorded interface {
	Plugin
	OnPurchaseRecorded(ctx context.Context, po *purchase.Order) error
}

// ──────────────────────────────────────────────────
// Custody hooks
// ──────────────────────────────────────────────────

// OnMaterialIssued is called when gold is issued to a karigar.
type OnMaterialIssued interface {
	Plugin
	OnMaterialIssued(ctx context.Context, wo *custody.WorkOrder) error
}

// OnMaterialReceived is called when a work order is completed.
type OnMaterialReceived interface {
	Plugin
	OnMaterialReceived(ctx context.Context, wo *custody.WorkOrder) error
}

// OnKarigarPaid is called when a karigar is paid.
type OnKarigarPaid interface {
	Plugin
	OnKarigarPaid(ctx context.Context, k *custody.Karigar, amount types.Money) error
}

// ──────────────────────────────────────────────────
// Gold loan hooks
// ──────────────────────────────────────────────────

// OnLoanIssued is called when a loan is disbursed.
type OnLoanIssued interface {
	Plugin
	OnLoanIssued(ctx context.Context, loan *goldloan.Loan) error
}

// OnLoanPayment is called when a payment is recorded against a loan.
type OnLoanPayment interface {
	Plugin
	OnLoanPayment(ctx context.Context, loan *goldloan.Loan, p goldloan.Payment) error
}

// ──────────────────────────────────────────────────
// Payroll hooks
// ──────────────────────────────────────────────────

// OnPayrollGenerated is called once per generated month.
type OnPayrollGenerated interface {
	Plugin
	OnPayrollGenerated(ctx context.Context, month payroll.Month, records []payroll.Record) error
}

// OnPayrollPaid is called when a draft record is paid.
type OnPayrollPaid interface {
	Plugin
	OnPayrollPaid(ctx context.Context, rec *payroll.Record) error
}

// ──────────────────────────────────────────────────
// Shop floor hooks
// ──────────────────────────────────────────────────

// OnRepairAdvanced is called when a repair job moves to its next status.
type OnRepairAdvanced interface {
	Plugin
	OnRepairAdvanced(ctx context.Context, job *repair.Job) error
}

// OnRatesUpdated is called when the rate board changes.
type OnRatesUpdated interface {
	Plugin
	OnRatesUpdated(ctx context.Context, r rates.Rates) error
}

// ──────────────────────────────────────────────────
// Data quality
// ──────────────────────────────────────────────────

// OnFlagRaised is called for each flag a successful action raises.
type OnFlagRaised interface {
	Plugin
	OnFlagRaised(ctx context.Context, flag types.Flag) error
}

// ──────────────────────────────────────────────────
// Transaction pipeline steps
// ──────────────────────────────────────────────────

// TransactionStep contributes a named step to the transaction pipeline. Steps
// run after the stock and customer steps and before commit. An error aborts
// the whole action with nothing applied; returned flags are reported with the
// action's own.
type TransactionStep interface {
	Plugin
	StepName() string
	Apply(ctx context.Context, tx transaction.Transaction) ([]types.Flag, error)
}
