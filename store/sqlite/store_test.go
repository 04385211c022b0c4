package sqlite_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/sqlitedriver"

	"github.com/xraph/bullion"
	"github.com/xraph/bullion/customer"
	"github.com/xraph/bullion/store"
	"github.com/xraph/bullion/store/sqlite"
)

func openStore(t *testing.T, path string) *sqlite.Store {
	t.Helper()
	drv := sqlitedriver.New()
	if err := drv.Open(context.Background(), path); err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db, err := grove.Open(drv)
	if err != nil {
		t.Fatalf("open grove: %v", err)
	}
	s := sqlite.New(db)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "bullion.db"))
	if err := s.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load(ctx, store.Loans); !errors.Is(err, bullion.ErrNotFound) {
		t.Fatalf("unsaved collection: expected ErrNotFound, got %v", err)
	}
	if rev, err := s.Revision(ctx, store.Loans); err != nil || rev != 0 {
		t.Fatalf("unsaved revision: got %d, %v", rev, err)
	}

	if err := s.Save(ctx, store.Loans, []byte(`[{"id":"loan_01"}]`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Save(ctx, store.Loans, []byte(`[{"id":"loan_01"},{"id":"loan_02"}]`)); err != nil {
		t.Fatal(err)
	}

	got, err := s.Load(ctx, store.Loans)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[{"id":"loan_01"},{"id":"loan_02"}]` {
		t.Errorf("payload: got %s", got)
	}
	rev, err := s.Revision(ctx, store.Loans)
	if err != nil {
		t.Fatal(err)
	}
	if rev != 2 {
		t.Errorf("revision: got %d, want 2", rev)
	}

	if _, err := s.Load(ctx, store.Karigars); !errors.Is(err, bullion.ErrNotFound) {
		t.Errorf("other collection: expected ErrNotFound, got %v", err)
	}
}

func TestMigrateTwice(t *testing.T) {
	ctx := context.Background()
	s := openStore(t, filepath.Join(t.TempDir(), "bullion.db"))
	for i := 0; i < 2; i++ {
		if err := s.Migrate(ctx); err != nil {
			t.Fatalf("migrate %d: %v", i+1, err)
		}
	}
}

func TestLedgerReloads(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "bullion.db")
	quiet := bullion.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	l := bullion.New(openStore(t, path), quiet)
	if err := l.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddCustomer(ctx, customer.Customer{Name: "Lata Pawar"}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.AddCustomer(ctx, customer.Customer{Name: "Suresh Kale"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Stop(); err != nil {
		t.Fatal(err)
	}

	reopened := bullion.New(openStore(t, path), quiet)
	if err := reopened.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	defer reopened.Stop()

	if got := reopened.Customers(); len(got) != 2 {
		t.Errorf("customers after restart: got %d, want 2", len(got))
	}
}
