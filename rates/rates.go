// Package rates holds the live metal rates used for collateral valuation.
//
// Rates are read through a Provider once per action and never cached by the
// caller, so an update between two actions is visible to the second one.
package rates

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/bullion/types"
)

// Rates is a snapshot of per-gram metal rates.
type Rates struct {
	Gold24K     types.Money `json:"gold24k"`
	Gold22K     types.Money `json:"gold22k"`
	Gold18K     types.Money `json:"gold18k"`
	Silver      types.Money `json:"silver"`
	LastUpdated time.Time   `json:"last_updated"`
}

// Default returns the opening rate card.
func Default() Rates {
	return Rates{
		Gold24K: types.Rupees(6850),
		Gold22K: types.Rupees(6250),
		Gold18K: types.Rupees(5100),
		Silver:  types.INR(7850),
	}
}

// ForPurity returns the per-gram gold rate for p.
func (r Rates) ForPurity(p types.Purity) (types.Money, error) {
	switch p {
	case types.Purity24K:
		return r.Gold24K, nil
	case types.Purity22K:
		return r.Gold22K, nil
	case types.Purity18K:
		return r.Gold18K, nil
	}
	return types.Money{}, types.Invalid("purity", "no live rate for purity %q", p)
}

// Validate checks that every gold rate is positive.
func (r *Rates) Validate() error {
	if err := types.CheckMonies(map[string]*types.Money{
		"gold24k": &r.Gold24K,
		"gold22k": &r.Gold22K,
		"gold18k": &r.Gold18K,
		"silver":  &r.Silver,
	}); err != nil {
		return err
	}
	if !r.Gold24K.IsPositive() || !r.Gold22K.IsPositive() || !r.Gold18K.IsPositive() {
		return types.Invalid("rates", "gold rates must be positive")
	}
	if r.Silver.IsNegative() {
		return types.Invalid("rates", "silver rate must not be negative")
	}
	return nil
}

// Provider supplies the current per-gram rate for a purity.
type Provider interface {
	CurrentRate(ctx context.Context, purity types.Purity) (types.Money, error)
}

// Updater is a Provider whose rates can be replaced.
type Updater interface {
	Provider
	Update(ctx context.Context, r Rates) error
}

// ProviderFunc is an adapter to use a plain function as a Provider.
type ProviderFunc func(ctx context.Context, purity types.Purity) (types.Money, error)

// CurrentRate implements Provider.
func (f ProviderFunc) CurrentRate(ctx context.Context, purity types.Purity) (types.Money, error) {
	return f(ctx, purity)
}

// Board is an in-process rate card safe for concurrent use.
type Board struct {
	mu    sync.RWMutex
	rates Rates
}

// NewBoard returns a Board initialised with r.
func NewBoard(r Rates) *Board {
	return &Board{rates: r}
}

// CurrentRate implements Provider.
func (b *Board) CurrentRate(_ context.Context, purity types.Purity) (types.Money, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rates.ForPurity(purity)
}

// Update implements Updater. LastUpdated is stamped when r leaves it zero.
func (b *Board) Update(_ context.Context, r Rates) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.LastUpdated.IsZero() {
		r.LastUpdated = time.Now().UTC()
	}
	b.mu.Lock()
	b.rates = r
	b.mu.Unlock()
	return nil
}

// Snapshot returns the current rate card.
func (b *Board) Snapshot() Rates {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.rates
}
