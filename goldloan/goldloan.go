// Package goldloan implements loans against pledged gold: collateral
// valuation, issuance, the payment history and simple-interest accrual.
package goldloan

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Status of a loan. Closed is terminal.
type Status string

const (
	StatusActive  Status = "Active"
	StatusClosed  Status = "Closed"
	StatusOverdue Status = "Overdue"
)

// PaymentType classifies a repayment.
type PaymentType string

const (
	PaymentInterest   PaymentType = "Interest"
	PaymentPrincipal  PaymentType = "Principal"
	PaymentSettlement PaymentType = "Settlement"
)

// Valid reports whether t is a known payment type.
func (t PaymentType) Valid() bool {
	return t == PaymentInterest || t == PaymentPrincipal || t == PaymentSettlement
}

// DefaultLTVCeiling is the advisory loan-to-value ceiling.
var DefaultLTVCeiling = decimal.RequireFromString("0.75")

// Payment is one repayment against a loan.
type Payment struct {
	ID     id.LoanPaymentID `json:"id"`
	Date   time.Time        `json:"date"`
	Amount types.Money      `json:"amount"`
	Type   PaymentType      `json:"type"`
	Note   string           `json:"note,omitempty"`
}

// Loan is a gold loan.
type Loan struct {
	ID               id.LoanID       `json:"id"`
	LoanNo           string          `json:"loan_no"`
	CustomerID       id.CustomerID   `json:"customer_id"`
	CustomerName     string          `json:"customer_name"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address,omitempty"`
	ItemsDescription string          `json:"items_description"`
	GrossWeight      types.Weight    `json:"gross_weight"`
	NetWeight        types.Weight    `json:"net_weight"`
	Purity           types.Purity    `json:"purity"`
	ValuationAmount  types.Money     `json:"valuation_amount"`
	LoanAmount       types.Money     `json:"loan_amount"`
	InterestRate     decimal.Decimal `json:"interest_rate"`
	StartDate        time.Time       `json:"start_date"`
	DueDate          time.Time       `json:"due_date"`
	Status           Status          `json:"status"`
	Payments         []Payment       `json:"payments"`
}

// Validate checks the loan fields and normalises its dates.
func (l *Loan) Validate() error {
	if l.LoanNo == "" {
		return types.Invalid("loan_no", "is required")
	}
	if l.CustomerName == "" {
		return types.Invalid("customer_name", "is required")
	}
	if !l.NetWeight.IsPositive() {
		return types.Invalid("net_weight", "must be positive, got %s", l.NetWeight)
	}
	if l.GrossWeight.LessThan(l.NetWeight) {
		return types.Invalid("gross_weight", "must be at least the net weight")
	}
	if err := types.CheckMonies(map[string]*types.Money{
		"loan_amount":      &l.LoanAmount,
		"valuation_amount": &l.ValuationAmount,
	}); err != nil {
		return err
	}
	if !l.LoanAmount.IsPositive() {
		return types.Invalid("loan_amount", "must be positive, got %s", l.LoanAmount)
	}
	if l.InterestRate.IsNegative() {
		return types.Invalid("interest_rate", "must not be negative")
	}
	if l.StartDate.IsZero() {
		return types.Invalid("start_date", "is required")
	}
	if !l.DueDate.IsZero() && l.DueDate.Before(l.StartDate) {
		return types.Invalid("due_date", "must not be before the start date")
	}
	l.StartDate = types.Day(l.StartDate)
	if !l.DueDate.IsZero() {
		l.DueDate = types.Day(l.DueDate)
	}
	return nil
}

// Valuation is netWeight × rate, rounded to the paisa.
func Valuation(netWeight types.Weight, rate types.Money) types.Money {
	return rate.MulDecimal(netWeight.Decimal())
}

// MaxLoan is the advisory ceiling for a valuation.
func MaxLoan(valuation types.Money, ceiling decimal.Decimal) types.Money {
	return valuation.MulDecimal(ceiling)
}

// ExceedsLTV reports whether the loan amount is above ceiling × valuation.
func (l Loan) ExceedsLTV(ceiling decimal.Decimal) bool {
	return l.LoanAmount.GreaterThan(MaxLoan(l.ValuationAmount, ceiling))
}

// StatusAt derives the status as of asOf: an Active loan past its due date
// reads as Overdue. The stored Status is not changed.
func (l Loan) StatusAt(asOf time.Time) Status {
	if l.Status == StatusActive && !l.DueDate.IsZero() && types.Day(asOf).After(l.DueDate) {
		return StatusOverdue
	}
	return l.Status
}

// MonthsBetween counts whole calendar months from start to asOf by year and
// month number only. Days are ignored.
func MonthsBetween(start, asOf time.Time) int {
	return (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month())
}

// EstimateAccruedInterest is simple monthly interest on the principal,
// round(loanAmount × rate/100 × max(1, months)) in whole rupees. At least one
// month is always charged.
func EstimateAccruedInterest(l Loan, asOf time.Time) types.Money {
	months := MonthsBetween(l.StartDate, asOf)
	if months < 1 {
		months = 1
	}
	interest := l.LoanAmount.Decimal().
		Mul(l.InterestRate).
		Div(decimal.NewFromInt(100)).
		Mul(decimal.NewFromInt(int64(months)))
	return types.FromDecimal(interest.Round(0), currencyOf(l.LoanAmount))
}

// TotalInterestPaid sums the Interest payments.
func TotalInterestPaid(l Loan) types.Money {
	total := types.Zero(currencyOf(l.LoanAmount))
	for _, p := range l.Payments {
		if p.Type == PaymentInterest {
			total = total.Add(p.Amount)
		}
	}
	return total
}

func currencyOf(m types.Money) string {
	if m.Currency == "" {
		return types.DefaultCurrency
	}
	return m.Currency
}
