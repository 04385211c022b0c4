package plugin_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/plugin"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

type recorder struct {
	name  string
	txs   int
	flags []types.Flag
	fail  bool
}

func (r *recorder) Name() string { return r.name }

func (r *recorder) OnTransactionRecorded(_ context.Context, _ *transaction.Transaction) error {
	r.txs++
	if r.fail {
		return errors.New("boom")
	}
	return nil
}

func (r *recorder) OnFlagRaised(_ context.Context, f types.Flag) error {
	r.flags = append(r.flags, f)
	return nil
}

type step struct{ name string }

func (s step) Name() string     { return "step-" + s.name }
func (s step) StepName() string { return s.name }
func (s step) Apply(context.Context, transaction.Transaction) ([]types.Flag, error) {
	return nil, nil
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	r := plugin.NewRegistry()
	if err := r.Register(&recorder{name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(&recorder{name: "a"}); err == nil {
		t.Error("expected duplicate name error")
	}
	if r.Count() != 1 {
		t.Errorf("expected 1 plugin, got %d", r.Count())
	}
	if r.Get("a") == nil || r.Get("missing") != nil {
		t.Error("Get lookup mismatch")
	}
}

func TestTransactionStepsKeepOrder(t *testing.T) {
	r := plugin.NewRegistry()
	for _, n := range []string{"gst", "loyalty"} {
		if err := r.Register(step{name: n}); err != nil {
			t.Fatal(err)
		}
	}
	steps := r.TransactionSteps()
	if len(steps) != 2 || steps[0].StepName() != "gst" || steps[1].StepName() != "loyalty" {
		t.Errorf("unexpected steps: %v", steps)
	}
}

func TestEmitDispatchesAndSwallowsErrors(t *testing.T) {
	r := plugin.NewRegistry()
	ok := &recorder{name: "ok"}
	bad := &recorder{name: "bad", fail: true}
	_ = r.Register(bad)
	_ = r.Register(ok)

	ctx := context.Background()
	r.EmitTransactionRecorded(ctx, &transaction.Transaction{Description: "Sale"})
	r.EmitFlagRaised(ctx, types.Flag{Kind: types.FlagNegativeStock})

	if ok.txs != 1 || bad.txs != 1 {
		t.Errorf("expected both plugins called once, got ok=%d bad=%d", ok.txs, bad.txs)
	}
	if len(ok.flags) != 1 || ok.flags[0].Kind != types.FlagNegativeStock {
		t.Errorf("unexpected flags: %v", ok.flags)
	}
}

type loanWatcher struct {
	loanNo   string
	payments []goldloan.Payment
}

func (w *loanWatcher) Name() string { return "loan-watcher" }

func (w *loanWatcher) OnLoanPayment(_ context.Context, loan *goldloan.Loan, p goldloan.Payment) error {
	w.loanNo = loan.LoanNo
	w.payments = append(w.payments, p)
	return nil
}

func TestEmitLoanPaymentPassesPayment(t *testing.T) {
	r := plugin.NewRegistry()
	w := &loanWatcher{}
	if err := r.Register(w); err != nil {
		t.Fatal(err)
	}

	pay := goldloan.Payment{
		ID:     id.NewLoanPaymentID(),
		Amount: types.Rupees(750),
		Type:   goldloan.PaymentInterest,
	}
	r.EmitLoanPayment(context.Background(), &goldloan.Loan{LoanNo: "GL-1001"}, pay)

	if w.loanNo != "GL-1001" {
		t.Errorf("loan: got %q", w.loanNo)
	}
	if len(w.payments) != 1 {
		t.Fatalf("expected 1 payment, got %d", len(w.payments))
	}
	got := w.payments[0]
	if got.ID.String() != pay.ID.String() || !got.Amount.Equal(pay.Amount) || got.Type != pay.Type {
		t.Errorf("payment: got %+v, want %+v", got, pay)
	}
}
