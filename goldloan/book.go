package goldloan

import (
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// Book holds all loans, newest first.
type Book struct {
	Loans []Loan
}

// Clone returns a copy of b. Payment slices are copied on write.
func (b Book) Clone() Book {
	return Book{Loans: append([]Loan(nil), b.Loans...)}
}

// Get returns the loan with the given id.
func (b Book) Get(lid id.LoanID) (Loan, bool) {
	if i := b.index(lid); i >= 0 {
		return b.Loans[i], true
	}
	return Loan{}, false
}

// Issue stores a validated, valued loan as Active.
func (b *Book) Issue(l Loan) (Loan, error) {
	if l.ID.IsNil() {
		l.ID = id.NewLoanID()
	}
	if b.index(l.ID) >= 0 {
		return Loan{}, types.Conflict("loan", "id %s already exists", l.ID)
	}
	for _, existing := range b.Loans {
		if existing.LoanNo == l.LoanNo {
			return Loan{}, types.Conflict("loan", "loan number %q already exists", l.LoanNo)
		}
	}
	l.Status = StatusActive
	l.Payments = nil
	b.Loans = append([]Loan{l}, b.Loans...)
	return l, nil
}

// RecordPayment appends p to the loan. A Settlement closes the loan. No
// payment is accepted once the loan is Closed.
func (b *Book) RecordPayment(lid id.LoanID, p Payment) (Loan, Payment, error) {
	i := b.index(lid)
	if i < 0 {
		return Loan{}, Payment{}, types.NotFound("loan", lid.String())
	}
	if !p.Type.Valid() {
		return Loan{}, Payment{}, types.Invalid("type", "unknown payment type %q", p.Type)
	}
	if err := types.CheckMoney("amount", &p.Amount); err != nil {
		return Loan{}, Payment{}, err
	}
	if p.Amount.IsNegative() {
		return Loan{}, Payment{}, types.Invalid("amount", "must not be negative")
	}
	if p.Date.IsZero() {
		return Loan{}, Payment{}, types.Invalid("date", "is required")
	}
	l := b.Loans[i]
	if l.Status == StatusClosed {
		return Loan{}, Payment{}, types.Conflict("loan", "%s is already closed", l.LoanNo)
	}

	if p.ID.IsNil() {
		p.ID = id.NewLoanPaymentID()
	}
	p.Date = types.Day(p.Date)
	l.Payments = append(append([]Payment(nil), l.Payments...), p)
	if p.Type == PaymentSettlement {
		l.Status = StatusClosed
	}
	b.Loans[i] = l
	return l, p, nil
}

// MarkOverdue flags an Active loan as Overdue.
func (b *Book) MarkOverdue(lid id.LoanID) (Loan, error) {
	i := b.index(lid)
	if i < 0 {
		return Loan{}, types.NotFound("loan", lid.String())
	}
	l := b.Loans[i]
	if l.Status != StatusActive {
		return Loan{}, types.Conflict("loan", "%s is %s, not Active", l.LoanNo, l.Status)
	}
	l.Status = StatusOverdue
	b.Loans[i] = l
	return l, nil
}

func (b Book) index(lid id.LoanID) int {
	for i, l := range b.Loans {
		if l.ID == lid {
			return i
		}
	}
	return -1
}
