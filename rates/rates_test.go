package rates_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/bullion/rates"
	"github.com/xraph/bullion/types"
)

func TestForPurity(t *testing.T) {
	r := rates.Default()

	tests := []struct {
		purity  types.Purity
		want    types.Money
		wantErr bool
	}{
		{types.Purity24K, types.Rupees(6850), false},
		{types.Purity22K, types.Rupees(6250), false},
		{types.Purity18K, types.Rupees(5100), false},
		{types.Purity14K, types.Money{}, true},
		{types.Purity("9K"), types.Money{}, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.purity), func(t *testing.T) {
			got, err := r.ForPurity(tt.purity)
			if tt.wantErr {
				if !errors.Is(err, types.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoardUpdate(t *testing.T) {
	ctx := context.Background()
	b := rates.NewBoard(rates.Default())

	next := rates.Default()
	next.Gold22K = types.Rupees(6400)
	if err := b.Update(ctx, next); err != nil {
		t.Fatal(err)
	}

	got, err := b.CurrentRate(ctx, types.Purity22K)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(types.Rupees(6400)) {
		t.Errorf("got %v, want ₹6400", got)
	}
	if b.Snapshot().LastUpdated.IsZero() {
		t.Error("expected LastUpdated to be stamped")
	}

	bad := next
	bad.Gold24K = types.Rupees(0)
	if err := b.Update(ctx, bad); !errors.Is(err, types.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if got, _ := b.CurrentRate(ctx, types.Purity24K); !got.Equal(types.Rupees(6850)) {
		t.Errorf("rejected update must not apply, got %v", got)
	}
}
