package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/bullion"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/store/memory"
)

func TestLoadMissingCollection(t *testing.T) {
	s := memory.New()
	_, err := s.Load(context.Background(), store.Loans)
	if !errors.Is(err, bullion.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	payload := []byte(`[{"id":"loan_01"}]`)
	if err := s.Save(ctx, store.Loans, payload); err != nil {
		t.Fatal(err)
	}
	payload[0] = 'x'

	got, err := s.Load(ctx, store.Loans)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[{"id":"loan_01"}]` {
		t.Errorf("payload aliased caller buffer: %s", got)
	}

	if err := s.Save(ctx, store.Loans, []byte(`[]`)); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Load(ctx, store.Loans)
	if string(got) != `[]` {
		t.Errorf("expected overwrite, got %s", got)
	}
	if n := s.Saves(store.Loans); n != 2 {
		t.Errorf("expected 2 saves, got %d", n)
	}
}

func TestCollectionsAreDistinct(t *testing.T) {
	seen := map[store.Collection]bool{}
	for _, c := range store.All() {
		if seen[c] {
			t.Errorf("duplicate collection %q", c)
		}
		seen[c] = true
	}
	if len(seen) != 16 {
		t.Errorf("expected 16 collections, got %d", len(seen))
	}
}
