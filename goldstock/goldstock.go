// Package goldstock tracks gold inventory by ledger type and location.
//
// Weight is a physical conservation quantity: entries are keyed by
// (LedgerType, Location), a credit to an existing key adds to it, and a
// debit that would take an entry below zero is refused.
package goldstock

import (
	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/types"
)

// LedgerType classifies stock by provenance.
type LedgerType string

const (
	StdBar      LedgerType = "Std Bar"
	OldGold     LedgerType = "Old Gold"
	NewOrnament LedgerType = "New Ornament"
	Wastage     LedgerType = "Wastage"
)

// Valid reports whether t is a known ledger type.
func (t LedgerType) Valid() bool {
	switch t {
	case StdBar, OldGold, NewOrnament, Wastage:
		return true
	}
	return false
}

// Location is where the metal is physically held.
type Location string

const (
	Tejori   Location = "Tejori"
	Showroom Location = "Showroom"
	Mint     Location = "Mint"
)

// Valid reports whether l is a known location.
func (l Location) Valid() bool {
	switch l {
	case Tejori, Showroom, Mint:
		return true
	}
	return false
}

// Entry is the stock held for one (LedgerType, Location) key. Purity is
// recorded when the entry is created and kept on later credits.
type Entry struct {
	ID       id.GoldStockID `json:"id"`
	Type     LedgerType     `json:"type"`
	Purity   types.Purity   `json:"purity"`
	Weight   types.Weight   `json:"weight"`
	Location Location       `json:"location"`
}

// Movement is a single credit or debit request.
type Movement struct {
	Type     LedgerType
	Purity   types.Purity
	Weight   types.Weight
	Location Location
}

func (m Movement) validate() error {
	if !m.Type.Valid() {
		return types.Invalid("type", "unknown ledger type %q", m.Type)
	}
	if !m.Location.Valid() {
		return types.Invalid("location", "unknown location %q", m.Location)
	}
	if !m.Weight.IsPositive() {
		return types.Invalid("weight", "must be positive, got %s", m.Weight)
	}
	return nil
}

// Book holds all stock entries.
type Book struct {
	Entries []Entry
}

// Clone returns a copy of b that shares no slice storage with it.
func (b Book) Clone() Book {
	return Book{Entries: append([]Entry(nil), b.Entries...)}
}

// Find returns the entry for (t, loc).
func (b Book) Find(t LedgerType, loc Location) (Entry, bool) {
	if i := b.index(t, loc); i >= 0 {
		return b.Entries[i], true
	}
	return Entry{}, false
}

// Credit adds weight to the entry for (m.Type, m.Location), creating it
// with m.Purity when absent.
func (b *Book) Credit(m Movement) (Entry, error) {
	if err := m.validate(); err != nil {
		return Entry{}, err
	}
	if i := b.index(m.Type, m.Location); i >= 0 {
		e := b.Entries[i]
		e.Weight = e.Weight.Add(m.Weight)
		b.Entries[i] = e
		return e, nil
	}
	if !m.Purity.Valid() {
		return Entry{}, types.Invalid("purity", "unknown purity %q", m.Purity)
	}
	e := Entry{
		ID:       id.NewGoldStockID(),
		Type:     m.Type,
		Purity:   m.Purity,
		Weight:   m.Weight,
		Location: m.Location,
	}
	b.Entries = append(b.Entries, e)
	return e, nil
}

// Debit removes weight from the entry for (m.Type, m.Location). It fails
// without changing b when the entry is absent or would go below zero.
func (b *Book) Debit(m Movement) (Entry, error) {
	if err := m.validate(); err != nil {
		return Entry{}, err
	}
	i := b.index(m.Type, m.Location)
	if i < 0 {
		return Entry{}, types.Invalid("weight", "no %s stock at %s to debit", m.Type, m.Location)
	}
	e := b.Entries[i]
	next := e.Weight.Sub(m.Weight)
	if next.IsNegative() {
		return Entry{}, types.Invalid("weight", "debit of %s exceeds %s %s balance of %s",
			m.Weight, m.Location, m.Type, e.Weight)
	}
	e.Weight = next
	b.Entries[i] = e
	return e, nil
}

// Total returns the weight held for t across all locations.
func (b Book) Total(t LedgerType) types.Weight {
	var total types.Weight
	for _, e := range b.Entries {
		if e.Type == t {
			total = total.Add(e.Weight)
		}
	}
	return total
}

// Totals returns the weight held per ledger type.
func (b Book) Totals() map[LedgerType]types.Weight {
	out := make(map[LedgerType]types.Weight, 4)
	for _, e := range b.Entries {
		out[e.Type] = out[e.Type].Add(e.Weight)
	}
	return out
}

func (b Book) index(t LedgerType, loc Location) int {
	for i, e := range b.Entries {
		if e.Type == t && e.Location == loc {
			return i
		}
	}
	return -1
}
