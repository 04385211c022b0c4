package payroll_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/payroll"
	"github.com/xraph/bullion/types"
)

func staff(code string) payroll.Employee {
	return payroll.Employee{
		Code:        code,
		Name:        "Employee " + code,
		Department:  "Showroom",
		Designation: "Sales Exec",
		BasicSalary: types.Rupees(30000),
		HRA:         types.Rupees(5000),
		Conveyance:  types.Rupees(1600),
		Allowances:  types.Rupees(1000),
		Deductions:  types.Rupees(1800),
	}
}

func TestMonth(t *testing.T) {
	tests := []struct {
		in   string
		days int
	}{
		{"2024-02", 29},
		{"2023-02", 28},
		{"2024-03", 31},
		{"2024-04", 30},
		{"2024-12", 31},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			m := payroll.MustMonth(tt.in)
			if m.Days() != tt.days {
				t.Errorf("days: got %d, want %d", m.Days(), tt.days)
			}
			if m.String() != tt.in {
				t.Errorf("string: got %s", m)
			}
		})
	}

	if _, err := payroll.ParseMonth("2024-13"); err == nil {
		t.Error("expected error for month 13")
	}

	data, err := json.Marshal(struct {
		M payroll.Month `json:"m"`
	}{payroll.MustMonth("2024-03")})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"m":"2024-03"}` {
		t.Errorf("json: got %s", data)
	}
}

func TestMarkIsUpsert(t *testing.T) {
	var b payroll.Book
	e, err := b.AddEmployee(staff("E1"))
	if err != nil {
		t.Fatal(err)
	}
	day := types.MustDay("2024-03-01")

	first, err := b.Mark(payroll.Attendance{EmployeeID: e.ID, Date: day, Status: payroll.Present})
	if err != nil {
		t.Fatal(err)
	}
	second, err := b.Mark(payroll.Attendance{EmployeeID: e.ID, Date: day.Add(9 * 3600e9), Status: payroll.HalfDay})
	if err != nil {
		t.Fatal(err)
	}

	if len(b.Attendance) != 1 {
		t.Fatalf("expected one record for the key, got %d", len(b.Attendance))
	}
	if b.Attendance[0].Status != payroll.HalfDay {
		t.Errorf("status: got %s", b.Attendance[0].Status)
	}
	if second.ID != first.ID {
		t.Error("replacement must keep the record id")
	}
}

func TestMarkRejects(t *testing.T) {
	var b payroll.Book
	e, _ := b.AddEmployee(staff("E1"))

	if _, err := b.Mark(payroll.Attendance{EmployeeID: e.ID, Date: types.MustDay("2024-03-01"), Status: "Sick"}); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := b.Mark(payroll.Attendance{EmployeeID: id.NewEmployeeID(), Date: types.MustDay("2024-03-01"), Status: payroll.Present}); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	var b payroll.Book
	marked, _ := b.AddEmployee(staff("E1"))
	unmarked, _ := b.AddEmployee(staff("E2"))
	resigned := staff("E3")
	resigned.Status = payroll.EmployeeResigned
	if _, err := b.AddEmployee(resigned); err != nil {
		t.Fatal(err)
	}

	marks := []struct {
		day    string
		status payroll.AttendanceStatus
	}{
		{"2024-03-01", payroll.Present},
		{"2024-03-02", payroll.Present},
		{"2024-03-03", payroll.HalfDay},
		{"2024-03-04", payroll.Absent},
		{"2024-03-05", payroll.Leave},
		{"2024-02-29", payroll.Present},
	}
	for _, m := range marks {
		if _, err := b.Mark(payroll.Attendance{EmployeeID: marked.ID, Date: types.MustDay(m.day), Status: m.status}); err != nil {
			t.Fatal(err)
		}
	}

	march := payroll.MustMonth("2024-03")
	records, err := b.Generate(march, types.MustDay("2024-04-01"))
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("expected records for the two active employees, got %d", len(records))
	}

	byEmp := map[id.EmployeeID]payroll.Record{}
	for _, r := range records {
		byEmp[r.EmployeeID] = r
		if r.Status != payroll.StatusDraft || r.TotalDays != 31 {
			t.Errorf("unexpected record header: %+v", r)
		}
	}

	// 37600 × 2.5 / 31 = 3032.258… → 3032
	m := byEmp[marked.ID]
	if !m.PresentDays.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("present days: got %s", m.PresentDays)
	}
	if !m.GrossPay.Equal(types.Rupees(3032)) || !m.NetPay.Equal(types.Rupees(1232)) {
		t.Errorf("marked pay: gross %v net %v", m.GrossPay, m.NetPay)
	}
	if !m.Additions.Equal(types.Rupees(7600)) || !m.BasicPay.Equal(types.Rupees(30000)) {
		t.Errorf("marked components: basic %v additions %v", m.BasicPay, m.Additions)
	}

	u := byEmp[unmarked.ID]
	if !u.PresentDays.Equal(decimal.NewFromInt(31)) {
		t.Errorf("unmarked present days: got %s, want 31", u.PresentDays)
	}
	if !u.GrossPay.Equal(types.Rupees(37600)) || !u.NetPay.Equal(types.Rupees(35800)) {
		t.Errorf("unmarked pay: gross %v net %v", u.GrossPay, u.NetPay)
	}

	_, err = b.Generate(march, types.MustDay("2024-04-02"))
	if !errors.Is(err, types.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if len(b.RecordsFor(march)) != 2 {
		t.Errorf("second run must add no records, got %d", len(b.RecordsFor(march)))
	}
}

func TestPay(t *testing.T) {
	var b payroll.Book
	_, _ = b.AddEmployee(staff("E1"))
	records, err := b.Generate(payroll.MustMonth("2024-03"), types.MustDay("2024-04-01"))
	if err != nil {
		t.Fatal(err)
	}

	paid, err := b.Pay(records[0].ID, types.MustDay("2024-04-05"))
	if err != nil {
		t.Fatal(err)
	}
	if paid.Status != payroll.StatusPaid {
		t.Errorf("status: got %s", paid.Status)
	}
	if _, err := b.Pay(records[0].ID, types.MustDay("2024-04-06")); !errors.Is(err, types.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
	if _, err := b.Pay(id.NewPayrollID(), types.MustDay("2024-04-06")); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
