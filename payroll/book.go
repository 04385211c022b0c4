package payroll

import (
	"time"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Book holds employees, attendance and payroll records.
type Book struct {
	Employees  []Employee
	Attendance []Attendance
	Records    []Record
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{
		Employees:  append([]Employee(nil), b.Employees...),
		Attendance: append([]Attendance(nil), b.Attendance...),
		Records:    append([]Record(nil), b.Records...),
	}
}

// Employee returns the employee with the given id.
func (b Book) Employee(eid id.EmployeeID) (Employee, bool) {
	for _, e := range b.Employees {
		if e.ID == eid {
			return e, true
		}
	}
	return Employee{}, false
}

// AddEmployee registers an employee. Codes are unique.
func (b *Book) AddEmployee(e Employee) (Employee, error) {
	if err := e.Validate(); err != nil {
		return Employee{}, err
	}
	if e.ID.IsNil() {
		e.ID = id.NewEmployeeID()
	}
	for _, existing := range b.Employees {
		if existing.ID == e.ID || existing.Code == e.Code {
			return Employee{}, types.Conflict("employee", "code %q already exists", e.Code)
		}
	}
	b.Employees = append([]Employee{e}, b.Employees...)
	return e, nil
}

// Mark records attendance for (employee, date), replacing any earlier mark
// for the same key. The replaced record keeps its id.
func (b *Book) Mark(a Attendance) (Attendance, error) {
	if !a.Status.Valid() {
		return Attendance{}, types.Invalid("status", "unknown attendance status %q", a.Status)
	}
	if a.Date.IsZero() {
		return Attendance{}, types.Invalid("date", "is required")
	}
	if _, ok := b.Employee(a.EmployeeID); !ok {
		return Attendance{}, types.NotFound("employee", a.EmployeeID.String())
	}
	a.Date = types.Day(a.Date)

	for i, existing := range b.Attendance {
		if existing.EmployeeID == a.EmployeeID && existing.Date.Equal(a.Date) {
			a.ID = existing.ID
			b.Attendance[i] = a
			return a, nil
		}
	}
	if a.ID.IsNil() {
		a.ID = id.NewAttendanceID()
	}
	b.Attendance = append(b.Attendance, a)
	return a, nil
}

// AttendanceFor returns the marks of an employee in m.
func (b Book) AttendanceFor(eid id.EmployeeID, m Month) []Attendance {
	var out []Attendance
	for _, a := range b.Attendance {
		if a.EmployeeID == eid && m.Contains(a.Date) {
			out = append(out, a)
		}
	}
	return out
}

// Generated reports whether any record exists for m.
func (b Book) Generated(m Month) bool {
	for _, r := range b.Records {
		if r.Month == m {
			return true
		}
	}
	return false
}

// Generate creates one Draft record per Active employee for m. It fails if
// any record for m already exists.
func (b *Book) Generate(m Month, now time.Time) ([]Record, error) {
	if m.IsZero() || m.Month < time.January || m.Month > time.December {
		return nil, types.Invalid("month", "is required")
	}
	if b.Generated(m) {
		return nil, types.Conflict("payroll", "already generated for %s", m)
	}

	var out []Record
	for _, e := range b.Employees {
		if e.Status != EmployeeActive {
			continue
		}
		r := Compute(e, m, PresentDays(e, m, b.Attendance))
		r.ID = id.NewPayrollID()
		r.GeneratedDate = types.Day(now)
		out = append(out, r)
	}
	b.Records = append(append([]Record(nil), out...), b.Records...)
	return out, nil
}

// Pay moves a Draft record to Paid.
func (b *Book) Pay(rid id.PayrollID, date time.Time) (Record, error) {
	for i, r := range b.Records {
		if r.ID != rid {
			continue
		}
		if r.Status != StatusDraft {
			return Record{}, types.Conflict("payroll", "record %s is already %s", r.ID, r.Status)
		}
		r.Status = StatusPaid
		r.PaidDate = types.Day(date)
		b.Records[i] = r
		return r, nil
	}
	return Record{}, types.NotFound("payroll record", rid.String())
}

// RecordsFor returns the records for m.
func (b Book) RecordsFor(m Month) []Record {
	var out []Record
	for _, r := range b.Records {
		if r.Month == m {
			out = append(out, r)
		}
	}
	return out
}
