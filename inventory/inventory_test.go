package inventory_test

import (
	"errors"
	"testing"

	"github.com/xraph/bullion/id"
	"github.com/xraph/bullion/inventory"
	"github.com/xraph/bullion/types"
)

func TestDecrementIsPermissive(t *testing.T) {
	var b inventory.Book
	ring, err := b.Add(inventory.Product{SKU: "R-1", Name: "Ring", Price: types.Rupees(40000), Stock: 1})
	if err != nil {
		t.Fatal(err)
	}

	got, err := b.Decrement(ring.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got.Stock != -2 {
		t.Errorf("stock: got %d, want -2", got.Stock)
	}
	if over := b.Oversold(); len(over) != 1 || over[0].ID != ring.ID {
		t.Errorf("expected ring to be oversold, got %+v", over)
	}
}

func TestDecrementUnknown(t *testing.T) {
	var b inventory.Book
	if _, err := b.Decrement(id.NewProductID(), 1); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAddDuplicateSKU(t *testing.T) {
	var b inventory.Book
	if _, err := b.Add(inventory.Product{SKU: "N-1", Name: "Necklace"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.Add(inventory.Product{SKU: "N-1", Name: "Other"}); !errors.Is(err, types.ErrConflict) {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestCloneIsolation(t *testing.T) {
	var b inventory.Book
	p, _ := b.Add(inventory.Product{Name: "Bangle", Stock: 5})

	draft := b.Clone()
	if _, err := draft.Decrement(p.ID, 5); err != nil {
		t.Fatal(err)
	}
	if orig, _ := b.Get(p.ID); orig.Stock != 5 {
		t.Errorf("clone leaked into original: stock %d", orig.Stock)
	}
}
