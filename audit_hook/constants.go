package audithook

// Action constants for audit events.
const (
	// Cash ledger actions
	ActionTransactionRecorded = "transaction.recorded"

	// Gold stock actions
	ActionGoldCredited     = "gold.credited"
	ActionGoldDebited      = "gold.debited"
	ActionPurchaseRecorded = "purchase.recorded"

	// Custody actions
	ActionMaterialIssued   = "custody.issued"
	ActionMaterialReceived = "custody.received"
	ActionKarigarPaid      = "karigar.paid"

	// Loan actions
	ActionLoanIssued  = "loan.issued"
	ActionLoanPayment = "loan.payment"
	ActionLoanClosed  = "loan.closed"

	// Payroll actions
	ActionPayrollGenerated = "payroll.generated"
	ActionPayrollPaid      = "payroll.paid"

	// Shop floor actions
	ActionRepairAdvanced = "repair.advanced"
	ActionRatesUpdated   = "rates.updated"

	// Data quality
	ActionFlagRaised = "flag.raised"
)

// Module names used in the activity log, as shown to shop staff.
const (
	ModuleFinance  = "Finance"
	ModuleTejori   = "Tejori"
	ModulePurchase = "Purchase"
	ModuleGoldLoan = "Gold Loan"
	ModuleKarigar  = "Karigar"
	ModuleHR       = "HR"
	ModuleRetail   = "Retail"
	ModuleRepairs  = "Repairs"
	ModuleMasters  = "Masters"
)

// Resource constants for audit events.
const (
	ResourceTransaction = "transaction"
	ResourceGoldStock   = "gold_stock"
	ResourcePurchase    = "purchase"
	ResourceWorkOrder   = "work_order"
	ResourceKarigar     = "karigar"
	ResourceLoan        = "loan"
	ResourcePayroll     = "payroll"
	ResourceRepair      = "repair"
	ResourceRates       = "rates"
)

// Category constants for audit events.
const (
	CategoryFinance = "finance"
	CategoryStock   = "stock"
	CategoryCustody = "custody"
	CategoryLending = "lending"
	CategoryPayroll = "payroll"
	CategoryShop    = "shop"
	CategoryQuality = "quality"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
