package bullion

import (
	"context"
	"fmt"
	"time"

	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/payroll"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// AddEmployee registers an employee.
func (l *Ledger) AddEmployee(ctx context.Context, e payroll.Employee) (*payroll.Employee, error) {
	var out payroll.Employee
	_, err := l.run(ctx, "add-employee", func(a *action) error {
		var err error
		if out, err = a.draft.payroll.AddEmployee(e); err != nil {
			return err
		}
		a.touch(store.Employees)
		a.log(audithook.ModuleHR, "Onboard", "Added employee %s (%s)", out.Name, out.Code)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkAttendance records the day's mark for an employee. Marking the same
// (employee, date) again replaces the earlier mark.
func (l *Ledger) MarkAttendance(ctx context.Context, mark payroll.Attendance) (*payroll.Attendance, error) {
	var out payroll.Attendance
	_, err := l.run(ctx, "mark-attendance", func(a *action) error {
		var err error
		if out, err = a.draft.payroll.Mark(mark); err != nil {
			return err
		}
		a.touch(store.Attendance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GeneratePayroll creates a Draft record for every Active employee for the
// month. A month is generated at most once.
func (l *Ledger) GeneratePayroll(ctx context.Context, m payroll.Month) ([]payroll.Record, []types.Flag, error) {
	var records []payroll.Record
	flags, err := l.run(ctx, "generate-payroll", func(a *action) error {
		var err error
		if records, err = a.draft.payroll.Generate(m, l.clock()); err != nil {
			return err
		}
		a.touch(store.Payroll)
		for _, r := range records {
			if r.NetPay.IsNegative() {
				a.flag(types.FlagNegativeNetPay, "payroll", r.ID.String(),
					"net pay for %s in %s is %s", r.EmployeeID, m, r.NetPay)
			}
		}
		a.log(audithook.ModuleHR, "Payroll", "Generated payroll for %s (%d employees)", m, len(records))
		a.emit(func(ctx context.Context) {
			l.plugins.EmitPayrollGenerated(ctx, m, records)
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return records, flags, nil
}

// PayPayroll moves a Draft record to Paid and posts the salary payment.
func (l *Ledger) PayPayroll(ctx context.Context, rid id.PayrollID, mode transaction.PaymentMode, date time.Time) (*payroll.Record, error) {
	if date.IsZero() {
		date = l.clock()
	}
	var rec payroll.Record
	_, err := l.run(ctx, "pay-payroll", func(a *action) error {
		var err error
		if rec, err = a.draft.payroll.Pay(rid, date); err != nil {
			return err
		}
		if rec.NetPay.IsNegative() {
			return types.Invalid("net_pay", "cannot pay a negative net pay of %s", rec.NetPay)
		}
		a.touch(store.Payroll)

		name := rec.EmployeeID.String()
		if e, ok := a.draft.payroll.Employee(rec.EmployeeID); ok {
			name = e.Name
		}
		if _, err := a.post(ctx, transaction.Transaction{
			Date:        date,
			Description: fmt.Sprintf("Salary: %s (%s)", name, rec.Month),
			Category:    transaction.CategorySalary,
			Direction:   transaction.Debit,
			Amount:      rec.NetPay,
			PaymentMode: mode,
			ReferenceID: rec.ID.String(),
			Status:      transaction.StatusCompleted,
		}); err != nil {
			return err
		}

		a.log(audithook.ModuleHR, "Salary", "Paid %s to %s for %s", rec.NetPay, name, rec.Month)
		a.emit(func(ctx context.Context) {
			l.plugins.EmitPayrollPaid(ctx, &rec)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Employees returns every employee.
func (l *Ledger) Employees() []payroll.Employee {
	var out []payroll.Employee
	l.view(func(b *books) {
		out = append(out, b.payroll.Employees...)
	})
	return out
}

// Attendance returns the marks of an employee in m.
func (l *Ledger) Attendance(eid id.EmployeeID, m payroll.Month) []payroll.Attendance {
	var out []payroll.Attendance
	l.view(func(b *books) { out = b.payroll.AttendanceFor(eid, m) })
	return out
}

// PayrollRecords returns the records generated for m.
func (l *Ledger) PayrollRecords(m payroll.Month) []payroll.Record {
	var out []payroll.Record
	l.view(func(b *books) { out = b.payroll.RecordsFor(m) })
	return out
}
