// Package payroll turns attendance into monthly pay.
//
// Attendance is an idempotent upsert keyed by (employee, date). Payroll for a
// month is generated once for the whole shop; a second run for the same month
// is a conflict even if new employees joined in between.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// EmployeeStatus is the employment state. Only Active employees are paid.
type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "Active"
	EmployeeInactive EmployeeStatus = "Inactive"
	EmployeeResigned EmployeeStatus = "Resigned"
	EmployeeOnHold   EmployeeStatus = "On Hold"
)

// Valid reports whether s is a known employee status.
func (s EmployeeStatus) Valid() bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeResigned, EmployeeOnHold:
		return true
	}
	return false
}

// Employee is a salaried staff member.
type Employee struct {
	ID            id.EmployeeID  `json:"id"`
	Code          string         `json:"code"`
	Name          string         `json:"name"`
	Email         string         `json:"email,omitempty"`
	Phone         string         `json:"phone,omitempty"`
	Department    string         `json:"department"`
	Designation   string         `json:"designation"`
	DateOfJoining time.Time      `json:"date_of_joining"`
	Status        EmployeeStatus `json:"status"`
	BasicSalary   types.Money    `json:"basic_salary"`
	HRA           types.Money    `json:"hra"`
	Conveyance    types.Money    `json:"conveyance"`
	Allowances    types.Money    `json:"allowances"`
	Deductions    types.Money    `json:"deductions"`
	RoleID        id.RoleID      `json:"role_id"`
}

// Validate checks the employee fields.
func (e *Employee) Validate() error {
	if e.Name == "" {
		return types.Invalid("name", "is required")
	}
	if e.Code == "" {
		return types.Invalid("code", "is required")
	}
	if e.Status == "" {
		e.Status = EmployeeActive
	}
	if !e.Status.Valid() {
		return types.Invalid("status", "unknown status %q", e.Status)
	}
	for _, f := range []struct {
		name  string
		value *types.Money
	}{
		{"basic_salary", &e.BasicSalary},
		{"hra", &e.HRA},
		{"conveyance", &e.Conveyance},
		{"allowances", &e.Allowances},
		{"deductions", &e.Deductions},
	} {
		if err := types.CheckMoney(f.name, f.value); err != nil {
			return err
		}
		if f.value.IsNegative() {
			return types.Invalid(f.name, "must not be negative")
		}
	}
	return nil
}

// Additions is hra + conveyance + allowances.
func (e Employee) Additions() types.Money {
	return types.Sum(e.HRA, e.Conveyance, e.Allowances)
}

// TotalEarnings is basic salary plus additions.
func (e Employee) TotalEarnings() types.Money {
	return e.BasicSalary.Add(e.Additions())
}

// AttendanceStatus is the day's attendance mark.
type AttendanceStatus string

const (
	Present AttendanceStatus = "Present"
	Absent  AttendanceStatus = "Absent"
	HalfDay AttendanceStatus = "Half Day"
	Leave   AttendanceStatus = "Leave"
	Holiday AttendanceStatus = "Holiday"
)

// Valid reports whether s is a known attendance status.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case Present, Absent, HalfDay, Leave, Holiday:
		return true
	}
	return false
}

// Credit is the paid-day credit for the mark: 1 for Present, 0.5 for Half
// Day and 0 otherwise.
func (s AttendanceStatus) Credit() decimal.Decimal {
	switch s {
	case Present:
		return decimal.NewFromInt(1)
	case HalfDay:
		return decimal.New(5, -1)
	}
	return decimal.Zero
}

// Attendance is one employee's mark for one day.
type Attendance struct {
	ID          id.AttendanceID  `json:"id"`
	EmployeeID  id.EmployeeID    `json:"employee_id"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
	CheckIn     string           `json:"check_in,omitempty"`
	CheckOut    string           `json:"check_out,omitempty"`
	LateMinutes int              `json:"late_minutes,omitempty"`
}

// Status of a payroll record. Draft → Paid is the only transition.
type Status string

const (
	StatusDraft Status = "Draft"
	StatusPaid  Status = "Paid"
)

// Record is one employee's pay for one month.
type Record struct {
	ID            id.PayrollID    `json:"id"`
	EmployeeID    id.EmployeeID   `json:"employee_id"`
	Month         Month           `json:"month"`
	TotalDays     int             `json:"total_days"`
	PresentDays   decimal.Decimal `json:"present_days"`
	BasicPay      types.Money     `json:"basic_pay"`
	Additions     types.Money     `json:"additions"`
	Deductions    types.Money     `json:"deductions"`
	GrossPay      types.Money     `json:"gross_pay"`
	NetPay        types.Money     `json:"net_pay"`
	Status        Status          `json:"status"`
	GeneratedDate time.Time       `json:"generated_date"`
	PaidDate      time.Time       `json:"paid_date"`
}

// PresentDays returns the paid days of e in m from marks. An employee with
// no marks at all in m is credited every day of the month.
func PresentDays(e Employee, m Month, marks []Attendance) decimal.Decimal {
	days := decimal.Zero
	seen := false
	for _, a := range marks {
		if a.EmployeeID != e.ID || !m.Contains(a.Date) {
			continue
		}
		seen = true
		days = days.Add(a.Status.Credit())
	}
	if !seen {
		return decimal.NewFromInt(int64(m.Days()))
	}
	return days
}

// Compute builds the Draft record for e. Gross is totalEarnings × present /
// daysInMonth rounded to whole rupees; net is gross less deductions.
func Compute(e Employee, m Month, present decimal.Decimal) Record {
	days := m.Days()
	total := e.TotalEarnings()
	gross := total.Decimal().Mul(present).Div(decimal.NewFromInt(int64(days))).Round(0)
	grossPay := types.FromDecimal(gross, types.DefaultCurrency)
	return Record{
		EmployeeID:  e.ID,
		Month:       m,
		TotalDays:   days,
		PresentDays: present,
		BasicPay:    e.BasicSalary,
		Additions:   e.Additions(),
		Deductions:  e.Deductions,
		GrossPay:    grossPay,
		NetPay:      grossPay.Subtract(e.Deductions),
		Status:      StatusDraft,
	}
}
