package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/pgdriver"
	_ "github.com/xraph/grove/drivers/pgdriver/pgmigrate"
	"github.com/xraph/grove/migrate"

	"github.com/xraph/bullion"
	"github.com/xraph/bullion/store"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store implements store.Store using PostgreSQL via Grove ORM. Payloads are
// kept as jsonb so they stay queryable from SQL.
type Store struct {
	db *grove.DB
	pg *pgdriver.PgDB
}

// New creates a new PostgreSQL store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db: db,
		pg: pgdriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates the required tables using the grove orchestrator.
func (s *Store) Migrate(ctx context.Context) error {
	executor, err := migrate.NewExecutorFor(s.pg)
	if err != nil {
		return fmt.Errorf("bullion/postgres: create migration executor: %w", err)
	}
	orch := migrate.NewOrchestrator(executor, Migrations)
	if _, err := orch.Migrate(ctx); err != nil {
		return fmt.Errorf("bullion/postgres: migration failed: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Load(ctx context.Context, c store.Collection) ([]byte, error) {
	m := new(collectionModel)
	err := s.pg.NewSelect(m).
		Where("collection = $1", c.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return nil, bullion.ErrNotFound
		}
		return nil, fmt.Errorf("bullion/postgres: load %s: %w", c, err)
	}
	return []byte(m.Payload), nil
}

func (s *Store) Save(ctx context.Context, c store.Collection, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("bullion/postgres: save %s: payload is not valid JSON", c)
	}
	m := toCollectionModel(c, payload)
	_, err := s.pg.NewInsert(m).
		OnConflict("(collection) DO UPDATE").
		Set("payload = EXCLUDED.payload").
		Set("revision = bullion_collections.revision + 1").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bullion/postgres: save %s: %w", c, err)
	}
	return nil
}

// Revision returns how many times c has been saved, or zero if never.
func (s *Store) Revision(ctx context.Context, c store.Collection) (int64, error) {
	m := new(collectionModel)
	err := s.pg.NewSelect(m).
		Where("collection = $1", c.String()).
		Scan(ctx)
	if err != nil {
		if isNoRows(err) {
			return 0, nil
		}
		return 0, err
	}
	return m.Revision, nil
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoRows checks for the standard sql.ErrNoRows sentinel.
func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
