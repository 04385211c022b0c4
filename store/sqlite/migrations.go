package sqlite

import (
	"context"

	"github.com/xraph/grove/migrate"
)

// Migrations is the grove migration group for the Bullion store (SQLite).
var Migrations = migrate.NewGroup("bullion")

func init() {
	Migrations.MustRegister(
		&migrate.Migration{
			Name:    "create_bullion_collections",
			Version: "20240101000001",
			Up: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `
CREATE TABLE IF NOT EXISTS bullion_collections (
    collection TEXT PRIMARY KEY,
    payload    TEXT NOT NULL DEFAULT '[]',
    revision   INTEGER NOT NULL DEFAULT 1,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`)
				return err
			},
			Down: func(ctx context.Context, exec migrate.Executor) error {
				_, err := exec.Exec(ctx, `DROP TABLE IF EXISTS bullion_collections`)
				return err
			},
		},
	)
}
