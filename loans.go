package bullion

import (
	"context"
	"fmt"
	"time"

	audithook "github.com/xraph/bullion/audit_hook"
	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

// Quote is a collateral valuation at the current rate.
type Quote struct {
	Purity    types.Purity `json:"purity"`
	NetWeight types.Weight `json:"net_weight"`
	Rate      types.Money  `json:"rate"`
	Valuation types.Money  `json:"valuation"`
	MaxLoan   types.Money  `json:"max_loan"`
}

// QuoteValuation values netWeight of gold at the live rate for purity.
func (l *Ledger) QuoteValuation(ctx context.Context, netWeight types.Weight, purity types.Purity) (*Quote, error) {
	if !netWeight.IsPositive() {
		return nil, types.Invalid("net_weight", "must be positive, got %s", netWeight)
	}
	rate, err := l.rates.CurrentRate(ctx, purity)
	if err != nil {
		return nil, err
	}
	if err := types.CheckMoney("rate", &rate); err != nil {
		return nil, err
	}
	valuation := goldloan.Valuation(netWeight, rate)
	return &Quote{
		Purity:    purity,
		NetWeight: netWeight,
		Rate:      rate,
		Valuation: valuation,
		MaxLoan:   goldloan.MaxLoan(valuation, l.ltvCeiling),
	}, nil
}

// IssueLoan values the pledge at the live rate, stores the loan as Active
// and posts the cash disbursal. A loan above the LTV ceiling is issued and
// flagged.
func (l *Ledger) IssueLoan(ctx context.Context, loan goldloan.Loan) (*goldloan.Loan, []types.Flag, error) {
	if err := loan.Validate(); err != nil {
		return nil, nil, err
	}
	rate, err := l.rates.CurrentRate(ctx, loan.Purity)
	if err != nil {
		return nil, nil, err
	}
	if err := types.CheckMoney("rate", &rate); err != nil {
		return nil, nil, err
	}
	loan.ValuationAmount = goldloan.Valuation(loan.NetWeight, rate)

	flags, err := l.run(ctx, "issue-loan", func(a *action) error {
		var err error
		if loan, err = a.draft.loans.Issue(loan); err != nil {
			return err
		}
		a.touch(store.Loans)

		if loan.ExceedsLTV(l.ltvCeiling) {
			a.flag(types.FlagLTVExceeded, "loan", loan.ID.String(),
				"%s amount %s is above %s x valuation %s",
				loan.LoanNo, loan.LoanAmount, l.ltvCeiling, loan.ValuationAmount)
		}

		if _, err := a.post(ctx, transaction.Transaction{
			Date:         loan.StartDate,
			Description:  fmt.Sprintf("Gold Loan Disbursed: %s", loan.LoanNo),
			Category:     transaction.CategoryExpense,
			Direction:    transaction.Debit,
			Amount:       loan.LoanAmount,
			PaymentMode:  transaction.ModeCash,
			ReferenceID:  loan.LoanNo,
			CustomerName: loan.CustomerName,
			Status:       transaction.StatusCompleted,
		}); err != nil {
			return err
		}

		a.log(audithook.ModuleGoldLoan, "Create", "Created Loan %s (%s)", loan.LoanNo, loan.Status)
		a.emit(func(ctx context.Context) {
			l.plugins.EmitLoanIssued(ctx, &loan)
		})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &loan, flags, nil
}

// RecordLoanPayment appends a payment to the loan. A Settlement closes it;
// nothing is accepted on a Closed loan. Payments reach the cash ledger only
// when the ledger was built WithLoanRepaymentPosting.
func (l *Ledger) RecordLoanPayment(ctx context.Context, lid id.LoanID, p goldloan.Payment) (*goldloan.Loan, error) {
	var loan goldloan.Loan
	_, err := l.run(ctx, "record-loan-payment", func(a *action) error {
		var err error
		if loan, p, err = a.draft.loans.RecordPayment(lid, p); err != nil {
			return err
		}
		a.touch(store.Loans)

		if l.postLoanRepayments && p.Amount.IsPositive() {
			if _, err := a.post(ctx, transaction.Transaction{
				Date:         p.Date,
				Description:  fmt.Sprintf("Gold Loan %s: %s", p.Type, loan.LoanNo),
				Category:     transaction.CategoryOther,
				Direction:    transaction.Credit,
				Amount:       p.Amount,
				PaymentMode:  transaction.ModeCash,
				ReferenceID:  loan.LoanNo,
				CustomerName: loan.CustomerName,
				Status:       transaction.StatusCompleted,
			}); err != nil {
				return err
			}
		}

		if loan.Status == goldloan.StatusClosed {
			a.log(audithook.ModuleGoldLoan, "Close", "Closed Loan %s with settlement of %s", loan.LoanNo, p.Amount)
		} else {
			a.log(audithook.ModuleGoldLoan, "Payment", "Received %s %s on Loan %s", p.Type, p.Amount, loan.LoanNo)
		}
		a.emit(func(ctx context.Context) {
			l.plugins.EmitLoanPayment(ctx, &loan, p)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// MarkLoanOverdue sets the stored status of an Active loan to Overdue.
func (l *Ledger) MarkLoanOverdue(ctx context.Context, lid id.LoanID) (*goldloan.Loan, error) {
	var loan goldloan.Loan
	_, err := l.run(ctx, "mark-loan-overdue", func(a *action) error {
		var err error
		if loan, err = a.draft.loans.MarkOverdue(lid); err != nil {
			return err
		}
		a.touch(store.Loans)
		a.log(audithook.ModuleGoldLoan, "Update", "Marked Loan %s Overdue", loan.LoanNo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &loan, nil
}

// Loan returns one loan.
func (l *Ledger) Loan(lid id.LoanID) (*goldloan.Loan, error) {
	var (
		loan goldloan.Loan
		ok   bool
	)
	l.view(func(b *books) { loan, ok = b.loans.Get(lid) })
	if !ok {
		return nil, types.NotFound("loan", lid.String())
	}
	return &loan, nil
}

// Loans returns every loan, newest first.
func (l *Ledger) Loans() []goldloan.Loan {
	var out []goldloan.Loan
	l.view(func(b *books) {
		out = append(out, b.loans.Loans...)
	})
	return out
}

// LoanPosition is the interest picture of one loan as of a date.
type LoanPosition struct {
	Loan            goldloan.Loan   `json:"loan"`
	Status          goldloan.Status `json:"status"`
	AccruedInterest types.Money     `json:"accrued_interest"`
	InterestPaid    types.Money     `json:"interest_paid"`
}

// LoanPosition reports accrued and paid interest and the derived status of
// a loan as of asOf.
func (l *Ledger) LoanPosition(lid id.LoanID, asOf time.Time) (*LoanPosition, error) {
	loan, err := l.Loan(lid)
	if err != nil {
		return nil, err
	}
	return &LoanPosition{
		Loan:            *loan,
		Status:          loan.StatusAt(asOf),
		AccruedInterest: goldloan.EstimateAccruedInterest(*loan, asOf),
		InterestPaid:    goldloan.TotalInterestPaid(*loan),
	}, nil
}
