package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"

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

// hookTimeout bounds a single plugin call.
const hookTimeout = 5 * time.Second

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit                []OnInit
	onShutdown            []OnShutdown
	onTransactionRecorded []OnTransactionRecorded
	onGoldStockChanged    []OnGoldStockChanged
	onPurchaseRecorded    []OnPurchaseRecorded
	onMaterialIssued      []OnMaterialIssued
	onMaterialReceived    []OnMaterialReceived
	onKarigarPaid         []OnKarigarPaid
	onLoanIssued          []OnLoanIssued
	onLoanPayment         []OnLoanPayment
	onPayrollGenerated    []OnPayrollGenerated
	onPayrollPaid         []OnPayrollPaid
	onRepairAdvanced      []OnRepairAdvanced
	onRatesUpdated        []OnRatesUpdated
	onFlagRaised          []OnFlagRaised
	transactionSteps      []TransactionStep
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.Default(),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}
	if v, ok := p.(TransactionStep); ok {
		for _, s := range r.transactionSteps {
			if s.StepName() == v.StepName() {
				return fmt.Errorf("plugin: duplicate transaction step: %s", v.StepName())
			}
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnTransactionRecorded); ok {
		r.onTransactionRecorded = append(r.onTransactionRecorded, v)
	}
	if v, ok := p.(OnGoldStockChanged); ok {
		r.onGoldStockChanged = append(r.onGoldStockChanged, v)
	}
	if v, ok := p.(OnPurchaseRecorded); ok {
		r.onPurchaseRecorded = append(r.onPurchaseRecorded, v)
	}
	if v, ok := p.(OnMaterialIssued); ok {
		r.onMaterialIssued = append(r.onMaterialIssued, v)
	}
	if v, ok := p.(OnMaterialReceived); ok {
		r.onMaterialReceived = append(r.onMaterialReceived, v)
	}
	if v, ok := p.(OnKarigarPaid); ok {
		r.onKarigarPaid = append(r.onKarigarPaid, v)
	}
	if v, ok := p.(OnLoanIssued); ok {
		r.onLoanIssued = append(r.onLoanIssued, v)
	}
	if v, ok := p.(OnLoanPayment); ok {
		r.onLoanPayment = append(r.onLoanPayment, v)
	}
	if v, ok := p.(OnPayrollGenerated); ok {
		r.onPayrollGenerated = append(r.onPayrollGenerated, v)
	}
	if v, ok := p.(OnPayrollPaid); ok {
		r.onPayrollPaid = append(r.onPayrollPaid, v)
	}
	if v, ok := p.(OnRepairAdvanced); ok {
		r.onRepairAdvanced = append(r.onRepairAdvanced, v)
	}
	if v, ok := p.(OnRatesUpdated); ok {
		r.onRatesUpdated = append(r.onRatesUpdated, v)
	}
	if v, ok := p.(OnFlagRaised); ok {
		r.onFlagRaised = append(r.onFlagRaised, v)
	}
	if v, ok := p.(TransactionStep); ok {
		r.transactionSteps = append(r.transactionSteps, v)
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", implementedInterfaces(p),
	)

	return nil
}

// hookTypes lists every optional interface for registration logging.
var hookTypes = []struct {
	name  string
	iface reflect.Type
}{
	{"OnInit", reflect.TypeOf((*OnInit)(nil)).Elem()},
	{"OnShutdown", reflect.TypeOf((*OnShutdown)(nil)).Elem()},
	{"OnTransactionRecorded", reflect.TypeOf((*OnTransactionRecorded)(nil)).Elem()},
	{"OnGoldStockChanged", reflect.TypeOf((*OnGoldStockChanged)(nil)).Elem()},
	{"OnPurchaseRecorded", reflect.TypeOf((*OnPurchaseRecorded)(nil)).Elem()},
	{"OnMaterialIssued", reflect.TypeOf((*OnMaterialIssued)(nil)).Elem()},
	{"OnMaterialReceived", reflect.TypeOf((*OnMaterialReceived)(nil)).Elem()},
	{"OnKarigarPaid", reflect.TypeOf((*OnKarigarPaid)(nil)).Elem()},
	{"OnLoanIssued", reflect.TypeOf((*OnLoanIssued)(nil)).Elem()},
	{"OnLoanPayment", reflect.TypeOf((*OnLoanPayment)(nil)).Elem()},
	{"OnPayrollGenerated", reflect.TypeOf((*OnPayrollGenerated)(nil)).Elem()},
	{"OnPayrollPaid", reflect.TypeOf((*OnPayrollPaid)(nil)).Elem()},
	{"OnRepairAdvanced", reflect.TypeOf((*OnRepairAdvanced)(nil)).Elem()},
	{"OnRatesUpdated", reflect.TypeOf((*OnRatesUpdated)(nil)).Elem()},
	{"OnFlagRaised", reflect.TypeOf((*OnFlagRaised)(nil)).Elem()},
	{"TransactionStep", reflect.TypeOf((*TransactionStep)(nil)).Elem()},
}

// implementedInterfaces returns a list of interfaces implemented by the plugin.
func implementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)
	for _, h := range hookTypes {
		if v.Implements(h.iface) {
			interfaces = append(interfaces, h.name)
		}
	}
	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// TransactionSteps returns the registered pipeline steps in registration order.
func (r *Registry) TransactionSteps() []TransactionStep {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]TransactionStep, len(r.transactionSteps))
	copy(result, r.transactionSteps)
	return result
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, ledger)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitTransactionRecorded emits a transaction recorded event.
func (r *Registry) EmitTransactionRecorded(ctx context.Context, tx *transaction.Transaction) {
	r.mu.RLock()
	plugins := r.onTransactionRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnTransactionRecorded(ctx, tx)
		}); err != nil {
			r.logger.Warn("plugin OnTransactionRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitGoldStockChanged emits a gold stock change event.
func (r *Registry) EmitGoldStockChanged(ctx context.Context, entry *goldstock.Entry, delta types.Weight) {
	r.mu.RLock()
	plugins := r.onGoldStockChanged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnGoldStockChanged(ctx, entry, delta)
		}); err != nil {
			r.logger.Warn("plugin OnGoldStockChanged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPurchaseRecorded emits a purchase recorded event.
func (r *Registry) EmitPurchaseRecorded(ctx context.Context, po *purchase.Order) {
	r.mu.RLock()
	plugins := r.onPurchaseRecorded
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPurchaseRecorded(ctx, po)
		}); err != nil {
			r.logger.Warn("plugin OnPurchaseRecorded failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitMaterialIssued emits a material issued event.
func (r *Registry) EmitMaterialIssued(ctx context.Context, wo *custody.WorkOrder) {
	r.mu.RLock()
	plugins := r.onMaterialIssued
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMaterialIssued(ctx, wo)
		}); err != nil {
			r.logger.Warn("plugin OnMaterialIssued failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitMaterialReceived emits a material received event.
func (r *Registry) EmitMaterialReceived(ctx context.Context, wo *custody.WorkOrder) {
	r.mu.RLock()
	plugins := r.onMaterialReceived
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnMaterialReceived(ctx, wo)
		}); err != nil {
			r.logger.Warn("plugin OnMaterialReceived failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitKarigarPaid emits a karigar paid event.
func (r *Registry) EmitKarigarPaid(ctx context.Context, k *custody.Karigar, amount types.Money) {
	r.mu.RLock()
	plugins := r.onKarigarPaid
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnKarigarPaid(ctx, k, amount)
		}); err != nil {
			r.logger.Warn("plugin OnKarigarPaid failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitLoanIssued emits a loan issued event.
func (r *Registry) EmitLoanIssued(ctx context.Context, loan *goldloan.Loan) {
	r.mu.RLock()
	plugins := r.onLoanIssued
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLoanIssued(ctx, loan)
		}); err != nil {
			r.logger.Warn("plugin OnLoanIssued failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitLoanPayment emits a loan payment event.
func (r *Registry) EmitLoanPayment(ctx context.Context, loan *goldloan.Loan, payment goldloan.Payment) {
	r.mu.RLock()
	plugins := r.onLoanPayment
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnLoanPayment(ctx, loan, payment)
		}); err != nil {
			r.logger.Warn("plugin OnLoanPayment failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPayrollGenerated emits a payroll generated event.
func (r *Registry) EmitPayrollGenerated(ctx context.Context, month payroll.Month, records []payroll.Record) {
	r.mu.RLock()
	plugins := r.onPayrollGenerated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPayrollGenerated(ctx, month, records)
		}); err != nil {
			r.logger.Warn("plugin OnPayrollGenerated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitPayrollPaid emits a payroll paid event.
func (r *Registry) EmitPayrollPaid(ctx context.Context, rec *payroll.Record) {
	r.mu.RLock()
	plugins := r.onPayrollPaid
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnPayrollPaid(ctx, rec)
		}); err != nil {
			r.logger.Warn("plugin OnPayrollPaid failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitRepairAdvanced emits a repair advanced event.
func (r *Registry) EmitRepairAdvanced(ctx context.Context, job *repair.Job) {
	r.mu.RLock()
	plugins := r.onRepairAdvanced
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnRepairAdvanced(ctx, job)
		}); err != nil {
			r.logger.Warn("plugin OnRepairAdvanced failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitRatesUpdated emits a rates updated event.
func (r *Registry) EmitRatesUpdated(ctx context.Context, card rates.Rates) {
	r.mu.RLock()
	plugins := r.onRatesUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnRatesUpdated(ctx, card)
		}); err != nil {
			r.logger.Warn("plugin OnRatesUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitFlagRaised emits a flag raised event.
func (r *Registry) EmitFlagRaised(ctx context.Context, flag types.Flag) {
	r.mu.RLock()
	plugins := r.onFlagRaised
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnFlagRaised(ctx, flag)
		}); err != nil {
			r.logger.Warn("plugin OnFlagRaised failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the ledger.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- fmt.Errorf("plugin panic: %s: %v", pluginName, rec)
			}
		}()
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(hookTimeout):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
