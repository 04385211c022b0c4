// Package observability provides a metrics extension for Bullion that
// records business event counts and amounts through a MetricFactory.
package observability

import (
	"context"

	"github.com/xraph/bullion/custody"
	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/payroll"
	"github.com/xraph/bullion/plugin"
	"github.com/xraph/bullion/purchase"
	"github.com/xraph/bullion/repair"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// Ensure MetricsExtension implements required interfaces.
var (
	_ plugin.Plugin                = (*MetricsExtension)(nil)
	_ plugin.OnInit                = (*MetricsExtension)(nil)
	_ plugin.OnTransactionRecorded = (*MetricsExtension)(nil)
	_ plugin.OnGoldStockChanged    = (*MetricsExtension)(nil)
	_ plugin.OnPurchaseRecorded    = (*MetricsExtension)(nil)
	_ plugin.OnMaterialIssued      = (*MetricsExtension)(nil)
	_ plugin.OnMaterialReceived    = (*MetricsExtension)(nil)
	_ plugin.OnKarigarPaid         = (*MetricsExtension)(nil)
	_ plugin.OnLoanIssued          = (*MetricsExtension)(nil)
	_ plugin.OnLoanPayment         = (*MetricsExtension)(nil)
	_ plugin.OnPayrollGenerated    = (*MetricsExtension)(nil)
	_ plugin.OnPayrollPaid         = (*MetricsExtension)(nil)
	_ plugin.OnRepairAdvanced      = (*MetricsExtension)(nil)
	_ plugin.OnFlagRaised          = (*MetricsExtension)(nil)
)

// Counter interface for metric counters.
type Counter interface {
	Inc()
	Add(float64)
}

// Histogram interface for metric histograms.
type Histogram interface {
	Observe(float64)
}

// MetricFactory creates metrics.
type MetricFactory interface {
	Counter(name string) Counter
	Histogram(name string) Histogram
}

// MetricsExtension records shop-wide business metrics.
// Register it as a Bullion plugin to track them automatically.
type MetricsExtension struct {
	factory MetricFactory

	// Cash ledger
	TransactionRecorded Counter
	SalesAmount         Histogram
	ExpenseAmount       Histogram

	// Tejori
	GoldCredited      Counter
	GoldDebited       Counter
	GoldMovementGrams Histogram
	PurchaseRecorded  Counter

	// Custody
	MaterialIssued   Counter
	MaterialReceived Counter
	WastageGrams     Histogram
	KarigarPaid      Counter

	// Gold loans
	LoanIssued  Counter
	LoanAmount  Histogram
	LoanPayment Counter
	LoanSettled Counter

	// Payroll
	PayrollGenerated Counter
	PayrollRecords   Counter
	PayrollPaid      Counter

	// Shop
	RepairAdvanced  Counter
	RepairDelivered Counter

	// Data quality
	FlagsRaised Counter
}

// NewMetricsExtension creates a MetricsExtension with the provided MetricFactory.
// Use app.Metrics() in forge extensions.
func NewMetricsExtension(factory MetricFactory) *MetricsExtension {
	return &MetricsExtension{
		factory: factory,

		TransactionRecorded: factory.Counter("bullion.transaction.recorded"),
		SalesAmount:         factory.Histogram("bullion.transaction.sales_amount"),
		ExpenseAmount:       factory.Histogram("bullion.transaction.expense_amount"),

		GoldCredited:      factory.Counter("bullion.gold.credited"),
		GoldDebited:       factory.Counter("bullion.gold.debited"),
		GoldMovementGrams: factory.Histogram("bullion.gold.movement_grams"),
		PurchaseRecorded:  factory.Counter("bullion.purchase.recorded"),

		MaterialIssued:   factory.Counter("bullion.custody.issued"),
		MaterialReceived: factory.Counter("bullion.custody.received"),
		WastageGrams:     factory.Histogram("bullion.custody.wastage_grams"),
		KarigarPaid:      factory.Counter("bullion.karigar.paid"),

		LoanIssued:  factory.Counter("bullion.loan.issued"),
		LoanAmount:  factory.Histogram("bullion.loan.amount"),
		LoanPayment: factory.Counter("bullion.loan.payment"),
		LoanSettled: factory.Counter("bullion.loan.settled"),

		PayrollGenerated: factory.Counter("bullion.payroll.generated"),
		PayrollRecords:   factory.Counter("bullion.payroll.records"),
		PayrollPaid:      factory.Counter("bullion.payroll.paid"),

		RepairAdvanced:  factory.Counter("bullion.repair.advanced"),
		RepairDelivered: factory.Counter("bullion.repair.delivered"),

		FlagsRaised: factory.Counter("bullion.flags.raised"),
	}
}

// Name implements plugin.Plugin.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

// OnInit implements plugin.OnInit.
func (m *MetricsExtension) OnInit(_ context.Context, _ interface{}) error {
	return nil
}

// ──────────────────────────────────────────────────
// Cash ledger hooks
// ──────────────────────────────────────────────────

// OnTransactionRecorded implements plugin.OnTransactionRecorded.
func (m *MetricsExtension) OnTransactionRecorded(_ context.Context, tx *transaction.Transaction) error {
	m.TransactionRecorded.Inc()
	amount, _ := tx.Amount.Decimal().Float64()
	switch {
	case tx.Category == transaction.CategorySales && tx.Direction == transaction.Credit:
		m.SalesAmount.Observe(amount)
	case tx.Direction == transaction.Debit:
		m.ExpenseAmount.Observe(amount)
	}
	return nil
}

// ──────────────────────────────────────────────────
// Tejori hooks
// ──────────────────────────────────────────────────

// OnGoldStockChanged implements plugin.OnGoldStockChanged.
func (m *MetricsExtension) OnGoldStockChanged(_ context.Context, _ *goldstock.Entry, delta types.Weight) error {
	if delta.IsNegative() {
		m.GoldDebited.Inc()
	} else {
		m.GoldCredited.Inc()
	}
	grams, _ := delta.Decimal().Abs().Float64()
	m.GoldMovementGrams.Observe(grams)
	return nil
}

// OnPurchaseRecorded implements plugin.OnPurchaseRecorded.
func (m *MetricsExtension) OnPurchaseRecorded(_ context.Context, _ *purchase.Order) error {
	m.PurchaseRecorded.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Custody hooks
// ──────────────────────────────────────────────────

// OnMaterialIssued implements plugin.OnMaterialIssued.
func (m *MetricsExtension) OnMaterialIssued(_ context.Context, _ *custody.WorkOrder) error {
	m.MaterialIssued.Inc()
	return nil
}

// OnMaterialReceived implements plugin.OnMaterialReceived.
func (m *MetricsExtension) OnMaterialReceived(_ context.Context, wo *custody.WorkOrder) error {
	m.MaterialReceived.Inc()
	grams, _ := wo.Wastage.Decimal().Float64()
	m.WastageGrams.Observe(grams)
	return nil
}

// OnKarigarPaid implements plugin.OnKarigarPaid.
func (m *MetricsExtension) OnKarigarPaid(_ context.Context, _ *custody.Karigar, _ types.Money) error {
	m.KarigarPaid.Inc()
	return nil
}

// ──────────────────────────────────────────────────
// Gold loan hooks
// ──────────────────────────────────────────────────

// OnLoanIssued implements plugin.OnLoanIssued.
func (m *MetricsExtension) OnLoanIssued(_ context.Context, loan *goldloan.Loan) error {
	m.LoanIssued.Inc()
	amount, _ := loan.LoanAmount.Decimal().Float64()
	m.LoanAmount.Observe(amount)
	return nil
}

// OnLoanPayment implements plugin.OnLoanPayment.
func (m *MetricsExtension) OnLoanPayment(_ context.Context, _ *goldloan.Loan, p goldloan.Payment) error {
	m.LoanPayment.Inc()
	if p.Type == goldloan.PaymentSettlement {
		m.LoanSettled.Inc()
	}
	return nil
}

// ──────────────────────────────────────────────────
// Payroll hooks
// ──────────────────────────────────────────────────

// OnPayrollGenerated implements plugin.OnPayrollGenerated.
func (m *MetricsExtension) OnPayrollGenerated(_ context.Context, _ payroll.Month, records []payroll.Record) error {
	m.PayrollGenerated.Inc()
	m.PayrollRecords.Add(float64(len(records)))
	return nil
}

// OnPayrollPaid implements plugin.OnPayrollPaid.
func (m *MetricsExtension) OnPayrollPaid(_ context.Context, _ *payroll.Record) error {
	m.PayrollPaid.Inc()
	return nil
}

// OnRepairAdvanced implements plugin.OnRepairAdvanced.
func (m *MetricsExtension) OnRepairAdvanced(_ context.Context, job *repair.Job) error {
	m.RepairAdvanced.Inc()
	if job.Status == repair.StatusDelivered {
		m.RepairDelivered.Inc()
	}
	return nil
}

// OnFlagRaised implements plugin.OnFlagRaised.
func (m *MetricsExtension) OnFlagRaised(_ context.Context, _ types.Flag) error {
	m.FlagsRaised.Inc()
	return nil
}
