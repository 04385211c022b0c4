package observability_test

import (
	"context"
	"testing"

	"github.com/xraph/bullion/goldloan"
	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/observability"
	"github.com/xraph/bullion/repair"
	"github.com/xraph/bullion/transaction"
	"github.com/xraph/bullion/types"
)

type counter struct{ n float64 }

func (c *counter) Inc()          { c.n++ }
func (c *counter) Add(v float64) { c.n += v }

type histogram struct{ values []float64 }

func (h *histogram) Observe(v float64) { h.values = append(h.values, v) }

type factory struct {
	counters   map[string]*counter
	histograms map[string]*histogram
}

func newFactory() *factory {
	return &factory{counters: map[string]*counter{}, histograms: map[string]*histogram{}}
}

func (f *factory) Counter(name string) observability.Counter {
	c := &counter{}
	f.counters[name] = c
	return c
}

func (f *factory) Histogram(name string) observability.Histogram {
	h := &histogram{}
	f.histograms[name] = h
	return h
}

func TestMetricsExtension(t *testing.T) {
	ctx := context.Background()
	f := newFactory()
	m := observability.NewMetricsExtension(f)

	sale := &transaction.Transaction{
		Category:  transaction.CategorySales,
		Direction: transaction.Credit,
		Amount:    types.Rupees(1500),
	}
	_ = m.OnTransactionRecorded(ctx, sale)
	_ = m.OnGoldStockChanged(ctx, &goldstock.Entry{}, types.Grams("10"))
	_ = m.OnGoldStockChanged(ctx, &goldstock.Entry{}, types.Grams("-2.5"))
	_ = m.OnLoanPayment(ctx, &goldloan.Loan{}, goldloan.Payment{Type: goldloan.PaymentSettlement})
	_ = m.OnRepairAdvanced(ctx, &repair.Job{Status: repair.StatusDelivered})
	_ = m.OnFlagRaised(ctx, types.Flag{Kind: types.FlagNegativeStock})

	tests := []struct {
		name string
		want float64
	}{
		{"bullion.transaction.recorded", 1},
		{"bullion.gold.credited", 1},
		{"bullion.gold.debited", 1},
		{"bullion.loan.payment", 1},
		{"bullion.loan.settled", 1},
		{"bullion.repair.delivered", 1},
		{"bullion.flags.raised", 1},
		{"bullion.loan.issued", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.counters[tt.name].n; got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	if got := f.histograms["bullion.transaction.sales_amount"].values; len(got) != 1 || got[0] != 1500 {
		t.Errorf("sales amount: got %v", got)
	}
	if got := f.histograms["bullion.gold.movement_grams"].values; len(got) != 2 || got[1] != 2.5 {
		t.Errorf("movement grams: got %v", got)
	}
}
