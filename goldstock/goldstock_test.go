package goldstock_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/xraph/bullion/goldstock"
	"github.com/xraph/bullion/types"
)

func move(t goldstock.LedgerType, grams string, loc goldstock.Location) goldstock.Movement {
	return goldstock.Movement{Type: t, Purity: types.Purity24K, Weight: types.Grams(grams), Location: loc}
}

func TestCreditMergesByKey(t *testing.T) {
	var b goldstock.Book

	first, err := b.Credit(move(goldstock.StdBar, "100", goldstock.Tejori))
	if err != nil {
		t.Fatal(err)
	}
	m := move(goldstock.StdBar, "50.5", goldstock.Tejori)
	m.Purity = types.Purity22K
	second, err := b.Credit(m)
	if err != nil {
		t.Fatal(err)
	}

	if len(b.Entries) != 1 {
		t.Fatalf("expected one entry per key, got %d", len(b.Entries))
	}
	if second.ID != first.ID {
		t.Error("credit to an existing key must not create a new entry")
	}
	if !second.Weight.Equal(types.Grams("150.5")) {
		t.Errorf("weight: got %s", second.Weight)
	}
	if second.Purity != types.Purity24K {
		t.Errorf("purity of the existing entry must be kept, got %s", second.Purity)
	}

	if _, err := b.Credit(move(goldstock.StdBar, "10", goldstock.Showroom)); err != nil {
		t.Fatal(err)
	}
	if len(b.Entries) != 2 {
		t.Errorf("different location is a different key, got %d entries", len(b.Entries))
	}
}

func TestDebitRejections(t *testing.T) {
	tests := []struct {
		name string
		m    goldstock.Movement
	}{
		{"beyond balance", move(goldstock.OldGold, "20.001", goldstock.Tejori)},
		{"absent key", move(goldstock.Wastage, "1", goldstock.Tejori)},
		{"zero weight", move(goldstock.OldGold, "0", goldstock.Tejori)},
		{"negative weight", move(goldstock.OldGold, "-1", goldstock.Tejori)},
		{"bad location", move(goldstock.OldGold, "1", goldstock.Location("Vault"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b goldstock.Book
			if _, err := b.Credit(move(goldstock.OldGold, "20", goldstock.Tejori)); err != nil {
				t.Fatal(err)
			}
			_, err := b.Debit(tt.m)
			if !errors.Is(err, types.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if got := b.Total(goldstock.OldGold); !got.Equal(types.Grams("20")) {
				t.Errorf("state changed after rejected debit: %s", got)
			}
		})
	}
}

func TestDebitToZero(t *testing.T) {
	var b goldstock.Book
	_, _ = b.Credit(move(goldstock.NewOrnament, "12.345", goldstock.Showroom))
	e, err := b.Debit(move(goldstock.NewOrnament, "12.345", goldstock.Showroom))
	if err != nil {
		t.Fatal(err)
	}
	if !e.Weight.IsZero() {
		t.Errorf("expected zero, got %s", e.Weight)
	}
}

func TestWeightConservation(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	ledgerTypes := []goldstock.LedgerType{goldstock.StdBar, goldstock.OldGold, goldstock.NewOrnament, goldstock.Wastage}
	locations := []goldstock.Location{goldstock.Tejori, goldstock.Showroom, goldstock.Mint}

	var b goldstock.Book
	applied := map[goldstock.LedgerType]types.Weight{}

	for i := 0; i < 2000; i++ {
		lt := ledgerTypes[r.Intn(len(ledgerTypes))]
		loc := locations[r.Intn(len(locations))]
		w := types.WeightOf(decimal.New(r.Int63n(100000)+1, -3))
		m := goldstock.Movement{Type: lt, Purity: types.Purity22K, Weight: w, Location: loc}

		if r.Intn(2) == 0 {
			if _, err := b.Credit(m); err != nil {
				t.Fatal(err)
			}
			applied[lt] = applied[lt].Add(w)
			continue
		}

		before := b.Total(lt)
		if _, err := b.Debit(m); err != nil {
			if !errors.Is(err, types.ErrInvalidInput) {
				t.Fatalf("unexpected error class: %v", err)
			}
			if !b.Total(lt).Equal(before) {
				t.Fatal("failed debit changed state")
			}
			continue
		}
		applied[lt] = applied[lt].Sub(w)
	}

	for _, lt := range ledgerTypes {
		if got := b.Total(lt); !got.Equal(applied[lt]) {
			t.Errorf("%s: total %s, applied %s", lt, got, applied[lt])
		}
		for _, e := range b.Entries {
			if e.Weight.IsNegative() {
				t.Errorf("entry %s went negative: %s", e.ID, e.Weight)
			}
		}
	}
}
