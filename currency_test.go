package bullion_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xraph/bullion"
	"github.com/xraph/bullion/custody"
	"github.com/xraph/bullion/customer"
	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/inventory"
	"github.com/xraph/bullion/order"
	"github.com/xraph/bullion/payroll"
	"github.com/xraph/bullion/purchase"
	"github.com/xraph/bullion/rates"
	"github.com/xraph/bullion/repair"
	"github.com/xraph/bullion/store/memory"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

func usd(dollars int64) types.Money {
	return types.Money{Amount: dollars * 100, Currency: "usd"}
}

func TestForeignCurrencyRejected(t *testing.T) {
	ctx := context.Background()
	l := startLedger(t, memory.New())

	c, err := l.AddCustomer(ctx, customer.Customer{Name: "Anita Deshmukh"})
	if err != nil {
		t.Fatal(err)
	}
	k, err := l.AddKarigar(ctx, custody.Karigar{Name: "Ramesh Soni"})
	if err != nil {
		t.Fatal(err)
	}
	wo, _, err := l.IssueMaterial(ctx, custody.IssueInput{
		KarigarID: k.ID, DesignCode: "BNG-07", Weight: types.Grams("10"),
		Purity: types.Purity22K, IssueDate: types.MustDay("2024-03-01"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.ReceiveMaterial(ctx, custody.ReceiveInput{
		WorkOrderID: wo.ID, FinishedWeight: types.Grams("10"), MakingCharges: types.Rupees(1000),
	}); err != nil {
		t.Fatal(err)
	}
	loan, _, err := l.IssueLoan(ctx, sampleLoan())
	if err != nil {
		t.Fatal(err)
	}
	postings := len(l.Transactions())

	tests := []struct {
		name string
		call func() error
	}{
		{"transaction amount", func() error {
			_, _, err := l.RecordTransaction(ctx, transaction.Transaction{
				Date: now, Description: "Sale", Category: transaction.CategorySales,
				Direction: transaction.Credit, Amount: usd(100), CustomerID: c.ID,
			})
			return err
		}},
		{"product price", func() error {
			_, err := l.AddProduct(ctx, inventory.Product{Name: "Ring", Price: usd(400)})
			return err
		}},
		{"making charges", func() error {
			wo2, _, err := l.IssueMaterial(ctx, custody.IssueInput{
				KarigarID: k.ID, DesignCode: "RNG-1", Weight: types.Grams("2"),
				Purity: types.Purity22K, IssueDate: types.MustDay("2024-03-02"),
			})
			if err != nil {
				return err
			}
			_, _, err = l.ReceiveMaterial(ctx, custody.ReceiveInput{
				WorkOrderID: wo2.ID, FinishedWeight: types.Grams("2"), MakingCharges: usd(20),
			})
			return err
		}},
		{"karigar payment", func() error {
			_, _, err := l.PayKarigar(ctx, k.ID, usd(10), now)
			return err
		}},
		{"loan amount", func() error {
			gl := sampleLoan()
			gl.LoanNo = "GL-2002"
			gl.LoanAmount = usd(600)
			_, _, err := l.IssueLoan(ctx, gl)
			return err
		}},
		{"loan payment", func() error {
			_, err := l.RecordLoanPayment(ctx, loan.ID, goldloan.Payment{
				Date: now, Amount: usd(9), Type: goldloan.PaymentInterest,
			})
			return err
		}},
		{"repair cost", func() error {
			_, err := l.CreateRepair(ctx, repair.Job{
				JobNo: "RP-9", CustomerName: "Kavita Rao", ReceivedDate: now, Cost: usd(20),
			})
			return err
		}},
		{"order advance", func() error {
			_, err := l.CreateOrder(ctx, order.Order{
				OrderNo: "ORD-9", CustomerName: "Neha Joshi", OrderDate: now,
				Items:      []order.Item{{DesignCode: "MNG-2", Purity: types.Purity22K}},
				TotalValue: types.Rupees(50000),
				Advances:   []order.Advance{{Type: order.AdvanceCash, Value: usd(200)}},
			})
			return err
		}},
		{"employee salary", func() error {
			_, err := l.AddEmployee(ctx, payroll.Employee{Code: "E9", Name: "Vikas Jadhav", BasicSalary: usd(300)})
			return err
		}},
		{"purchase total", func() error {
			_, _, err := l.RecordPurchase(ctx, purchase.Order{
				InvoiceNo: "INV-9", Type: purchase.TypeVendorInvoice, SupplierName: "Zaveri Bullion",
				Date: now, TotalAmount: usd(7000),
				Items: []purchase.Item{{Name: "Bar", Category: purchase.CategoryStdBar, Weight: types.Grams("100"), Purity: types.Purity24K}},
			})
			return err
		}},
		{"rate card", func() error {
			card := rates.Default()
			card.Gold22K = usd(75)
			return l.UpdateRates(ctx, card)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !bullion.IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if n := len(l.Transactions()); n != postings {
		t.Errorf("rejected actions must not post, got %d postings, want %d", n, postings)
	}
	s := l.Summary()
	if !s.CashInHand.Equal(types.Rupees(-50000)) {
		t.Errorf("cash in hand: got %s", s.CashInHand)
	}
	cust, _ := l.Customer(c.ID)
	if !cust.TotalSpend.IsZero() {
		t.Errorf("total spend: got %s", cust.TotalSpend)
	}
}

func TestForeignRateRejected(t *testing.T) {
	dollars := rates.ProviderFunc(func(context.Context, types.Purity) (types.Money, error) {
		return usd(75), nil
	})
	l := startLedger(t, memory.New(), bullion.WithRates(dollars))

	ctx := context.Background()
	if _, err := l.QuoteValuation(ctx, types.Grams("10"), types.Purity22K); !bullion.IsValidation(err) {
		t.Errorf("quote: expected validation error, got %v", err)
	}
	if _, _, err := l.IssueLoan(ctx, sampleLoan()); !bullion.IsValidation(err) {
		t.Errorf("issue: expected validation error, got %v", err)
	}
	if len(l.Loans()) != 0 {
		t.Error("loan must not be stored")
	}
}

// stuckBoard panics on every update.
type stuckBoard struct {
	*rates.Board
}

func (stuckBoard) Update(context.Context, rates.Rates) error {
	panic("rate feed unavailable")
}

func TestPanickingActionReleasesLock(t *testing.T) {
	ctx := context.Background()
	l := startLedger(t, memory.New(), bullion.WithRates(stuckBoard{Board: rates.NewBoard(rates.Default())}))

	before := len(l.Activity())
	if err := l.UpdateRates(ctx, rates.Default()); !errors.Is(err, bullion.ErrActionPanic) {
		t.Fatalf("expected ErrActionPanic, got %v", err)
	}

	done := make(chan error, 1)
	go func() {
		_, err := l.AddKarigar(ctx, custody.Karigar{Name: "Lata Pawar"})
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ledger still locked after a panicking action")
	}

	if len(l.Karigars()) != 1 {
		t.Errorf("expected 1 karigar, got %d", len(l.Karigars()))
	}
	// The panicking action logged nothing; registering the karigar added one entry.
	if n := len(l.Activity()); n != before+1 {
		t.Errorf("activity entries: got %d, want %d", n, before+1)
	}
}

type paidWatcher struct{ amounts []types.Money }

func (w *paidWatcher) Name() string { return "paid-watcher" }

func (w *paidWatcher) OnKarigarPaid(_ context.Context, _ *custody.Karigar, amount types.Money) error {
	w.amounts = append(w.amounts, amount)
	return nil
}

func TestKarigarPaymentDefaultsCurrency(t *testing.T) {
	ctx := context.Background()
	w := &paidWatcher{}
	l := startLedger(t, memory.New(), bullion.WithPlugin(w))

	k, err := l.AddKarigar(ctx, custody.Karigar{Name: "Ramesh Soni"})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.PayKarigar(ctx, k.ID, types.Money{Amount: 50000}, now); err != nil {
		t.Fatal(err)
	}

	if len(w.amounts) != 1 || !w.amounts[0].Equal(types.Rupees(500)) {
		t.Errorf("hook amount: got %v", w.amounts)
	}
	if act := l.Activity(); act[0].Description != "Paid ₹500.00 to Ramesh Soni" {
		t.Errorf("activity: got %q", act[0].Description)
	}
	if txs := l.Transactions(); len(txs) != 1 || !txs[0].Amount.Equal(types.Rupees(500)) {
		t.Errorf("posted amount: got %+v", txs)
	}
}
