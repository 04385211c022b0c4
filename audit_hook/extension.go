// Package audithook bridges Bullion business events to an audit trail backend.
//
// It defines a local Recorder interface so the package does not import any
// audit backend directly. Callers inject a RecorderFunc adapter, or use the
// in-process Journal.
package audithook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xraph/bullion/custody"
	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/payroll"
	"github.com/xraph/bullion/plugin"
	"github.com/xraph/bullion/purchase"
	"github.com/xraph/bullion/rates"
	"github.com/xraph/bullion/repair"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// Compile-time interface checks.
var (
	_ plugin.Plugin                = (*Extension)(nil)
	_ plugin.OnTransactionRecorded = (*Extension)(nil)
	_ plugin.OnGoldStockChanged    = (*Extension)(nil)
	_ plugin.OnPurchaseRecorded    = (*Extension)(nil)
	_ plugin.OnMaterialIssued      = (*Extension)(nil)
	_ plugin.OnMaterialReceived    = (*Extension)(nil)
	_ plugin.OnKarigarPaid         = (*Extension)(nil)
	_ plugin.OnLoanIssued          = (*Extension)(nil)
	_ plugin.OnLoanPayment         = (*Extension)(nil)
	_ plugin.OnPayrollGenerated    = (*Extension)(nil)
	_ plugin.OnPayrollPaid         = (*Extension)(nil)
	_ plugin.OnRepairAdvanced      = (*Extension)(nil)
	_ plugin.OnRatesUpdated        = (*Extension)(nil)
	_ plugin.OnFlagRaised          = (*Extension)(nil)
)

// Recorder is the interface that audit backends must implement.
// Recording is fire-and-forget from the ledger's point of view: a failing
// recorder is logged and never changes the outcome of an action.
type Recorder interface {
	Record(ctx context.Context, event *AuditEvent) error
}

// AuditEvent is one audit trail entry. Activity log entries written by the
// ledger fill Module, Description and Actor; events produced by Extension
// fill Resource, Category and Metadata.
type AuditEvent struct {
	ID          id.ID          `json:"id"`
	Timestamp   time.Time      `json:"timestamp"`
	Module      string         `json:"module,omitempty"`
	Action      string         `json:"action"`
	Description string         `json:"description,omitempty"`
	Actor       string         `json:"actor,omitempty"`
	Resource    string         `json:"resource,omitempty"`
	Category    string         `json:"category,omitempty"`
	ResourceID  string         `json:"resource_id,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Outcome     string         `json:"outcome,omitempty"`
	Severity    string         `json:"severity,omitempty"`
	Reason      string         `json:"reason,omitempty"`
}

// RecorderFunc is an adapter to use a plain function as a Recorder.
type RecorderFunc func(ctx context.Context, event *AuditEvent) error

// Record implements Recorder.
func (f RecorderFunc) Record(ctx context.Context, event *AuditEvent) error {
	return f(ctx, event)
}

// Extension bridges Bullion business events to an audit trail backend.
type Extension struct {
	recorder Recorder
	filter   filter
	actor    string
	clock    func() time.Time
	logger   *slog.Logger
}

// New creates an Extension that emits audit events through the provided Recorder.
func New(r Recorder, opts ...Option) *Extension {
	e := &Extension{
		recorder: r,
		clock:    time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Name implements plugin.Plugin.
func (e *Extension) Name() string { return "audit-hook" }

// ──────────────────────────────────────────────────
// Cash ledger hooks
// ──────────────────────────────────────────────────

// OnTransactionRecorded implements plugin.OnTransactionRecorded.
func (e *Extension) OnTransactionRecorded(ctx context.Context, tx *transaction.Transaction) error {
	return e.record(ctx, ActionTransactionRecorded, SeverityInfo, OutcomeSuccess,
		ResourceTransaction, tx.ID.String(), CategoryFinance, nil,
		"category", string(tx.Category),
		"direction", string(tx.Direction),
		"amount", tx.Amount.String(),
		"reference_id", tx.ReferenceID,
	)
}

// ──────────────────────────────────────────────────
// Gold stock hooks
// ──────────────────────────────────────────────────

// OnGoldStockChanged implements plugin.OnGoldStockChanged.
func (e *Extension) OnGoldStockChanged(ctx context.Context, entry *goldstock.Entry, delta types.Weight) error {
	action := ActionGoldCredited
	if delta.IsNegative() {
		action = ActionGoldDebited
	}
	return e.record(ctx, action, SeverityInfo, OutcomeSuccess,
		ResourceGoldStock, entry.ID.String(), CategoryStock, nil,
		"ledger_type", string(entry.Type),
		"location", string(entry.Location),
		"delta", delta.String(),
		"balance", entry.Weight.String(),
	)
}

// OnPurchaseRecorded implements plugin.OnPurchaseRecorded.
func (e *Extension) OnPurchaseRecorded(ctx context.Context, po *purchase.Order) error {
	return e.record(ctx, ActionPurchaseRecorded, SeverityInfo, OutcomeSuccess,
		ResourcePurchase, po.ID.String(), CategoryStock, nil,
		"invoice_no", po.InvoiceNo,
		"type", string(po.Type),
		"weight", po.TotalWeight().String(),
	)
}

// ──────────────────────────────────────────────────
// Custody hooks
// ──────────────────────────────────────────────────

// OnMaterialIssued implements plugin.OnMaterialIssued.
func (e *Extension) OnMaterialIssued(ctx context.Context, wo *custody.WorkOrder) error {
	return e.record(ctx, ActionMaterialIssued, SeverityInfo, OutcomeSuccess,
		ResourceWorkOrder, wo.ID.String(), CategoryCustody, nil,
		"karigar_id", wo.KarigarID.String(),
		"gold_issued", wo.GoldIssued.String(),
	)
}

// OnMaterialReceived implements plugin.OnMaterialReceived.
func (e *Extension) OnMaterialReceived(ctx context.Context, wo *custody.WorkOrder) error {
	severity := SeverityInfo
	if wo.IsGain() {
		severity = SeverityWarning
	}
	return e.record(ctx, ActionMaterialReceived, severity, OutcomeSuccess,
		ResourceWorkOrder, wo.ID.String(), CategoryCustody, nil,
		"karigar_id", wo.KarigarID.String(),
		"wastage", wo.Wastage.String(),
		"making_charges", wo.MakingCharges.String(),
	)
}

// OnKarigarPaid implements plugin.OnKarigarPaid.
func (e *Extension) OnKarigarPaid(ctx context.Context, k *custody.Karigar, amount types.Money) error {
	return e.record(ctx, ActionKarigarPaid, SeverityInfo, OutcomeSuccess,
		ResourceKarigar, k.ID.String(), CategoryCustody, nil,
		"amount", amount.String(),
		"cash_balance", k.CashBalance.String(),
	)
}

// ──────────────────────────────────────────────────
// Gold loan hooks
// ──────────────────────────────────────────────────

// OnLoanIssued implements plugin.OnLoanIssued.
func (e *Extension) OnLoanIssued(ctx context.Context, loan *goldloan.Loan) error {
	return e.record(ctx, ActionLoanIssued, SeverityInfo, OutcomeSuccess,
		ResourceLoan, loan.ID.String(), CategoryLending, nil,
		"loan_no", loan.LoanNo,
		"loan_amount", loan.LoanAmount.String(),
		"valuation", loan.ValuationAmount.String(),
	)
}

// OnLoanPayment implements plugin.OnLoanPayment.
func (e *Extension) OnLoanPayment(ctx context.Context, loan *goldloan.Loan, p goldloan.Payment) error {
	action := ActionLoanPayment
	if loan.Status == goldloan.StatusClosed {
		action = ActionLoanClosed
	}
	return e.record(ctx, action, SeverityInfo, OutcomeSuccess,
		ResourceLoan, loan.ID.String(), CategoryLending, nil,
		"payment_type", string(p.Type),
		"amount", p.Amount.String(),
	)
}

// ──────────────────────────────────────────────────
// Payroll hooks
// ──────────────────────────────────────────────────

// OnPayrollGenerated implements plugin.OnPayrollGenerated.
func (e *Extension) OnPayrollGenerated(ctx context.Context, month payroll.Month, records []payroll.Record) error {
	return e.record(ctx, ActionPayrollGenerated, SeverityInfo, OutcomeSuccess,
		ResourcePayroll, month.String(), CategoryPayroll, nil,
		"records", len(records),
	)
}

// OnPayrollPaid implements plugin.OnPayrollPaid.
func (e *Extension) OnPayrollPaid(ctx context.Context, rec *payroll.Record) error {
	return e.record(ctx, ActionPayrollPaid, SeverityInfo, OutcomeSuccess,
		ResourcePayroll, rec.ID.String(), CategoryPayroll, nil,
		"employee_id", rec.EmployeeID.String(),
		"net_pay", rec.NetPay.String(),
	)
}

// ──────────────────────────────────────────────────
// Shop floor hooks
// ──────────────────────────────────────────────────

// OnRepairAdvanced implements plugin.OnRepairAdvanced.
func (e *Extension) OnRepairAdvanced(ctx context.Context, job *repair.Job) error {
	return e.record(ctx, ActionRepairAdvanced, SeverityInfo, OutcomeSuccess,
		ResourceRepair, job.ID.String(), CategoryShop, nil,
		"job_no", job.JobNo,
		"status", string(job.Status),
	)
}

// OnRatesUpdated implements plugin.OnRatesUpdated.
func (e *Extension) OnRatesUpdated(ctx context.Context, r rates.Rates) error {
	return e.record(ctx, ActionRatesUpdated, SeverityInfo, OutcomeSuccess,
		ResourceRates, "", CategoryShop, nil,
		"gold_24k", r.Gold24K.String(),
		"gold_22k", r.Gold22K.String(),
		"gold_18k", r.Gold18K.String(),
		"silver", r.Silver.String(),
	)
}

// OnFlagRaised implements plugin.OnFlagRaised.
func (e *Extension) OnFlagRaised(ctx context.Context, flag types.Flag) error {
	return e.record(ctx, ActionFlagRaised, SeverityWarning, OutcomePartial,
		flag.Resource, flag.ResourceID, CategoryQuality, nil,
		"kind", string(flag.Kind),
		"message", flag.Message,
	)
}

// ──────────────────────────────────────────────────
// Internal helpers
// ──────────────────────────────────────────────────

// record builds and sends an audit event if the action is enabled.
func (e *Extension) record(
	ctx context.Context,
	action, severity, outcome string,
	resource, resourceID, category string,
	err error,
	kvPairs ...any,
) error {
	if !e.filter.allows(action, category) {
		return nil
	}

	meta := make(map[string]any, len(kvPairs)/2+1)
	for i := 0; i+1 < len(kvPairs); i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvPairs[i])
		}
		meta[key] = kvPairs[i+1]
	}

	var reason string
	if err != nil {
		reason = err.Error()
		meta["error"] = err.Error()
	}

	evt := &AuditEvent{
		ID:         id.NewActivityID(),
		Timestamp:  e.clock().UTC(),
		Actor:      e.actor,
		Action:     action,
		Resource:   resource,
		Category:   category,
		ResourceID: resourceID,
		Metadata:   meta,
		Outcome:    outcome,
		Severity:   severity,
		Reason:     reason,
	}

	if recErr := e.recorder.Record(ctx, evt); recErr != nil {
		e.logger.Warn("audit_hook: failed to record audit event",
			"action", action,
			"resource_id", resourceID,
			"error", recErr,
		)
	}
	return nil
}
