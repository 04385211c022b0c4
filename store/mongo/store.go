package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	"github.com/xraph/bullion"
	"github.com/xraph/bullion/store"
)

// colCollections holds one document per persisted book, keyed by collection name.
const colCollections = "bullion_collections"

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for the collections document set.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("bullion/mongo: migrate %s indexes: %w", col, err)
		}
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
	var m collectionModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": c.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, bullion.ErrNotFound
		}
		return nil, fmt.Errorf("bullion/mongo: load %s: %w", c, err)
	}
	return []byte(m.Payload), nil
}

func (s *Store) Save(ctx context.Context, c store.Collection, payload []byte) error {
	m := &collectionModel{Collection: c.String()}

	_, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.Collection}).
		SetUpdate(bson.M{
			"$set": bson.M{
				"payload":    string(payload),
				"updated_at": now(),
			},
			"$inc": bson.M{"revision": 1},
		}).
		Upsert().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("bullion/mongo: save %s: %w", c, err)
	}
	return nil
}

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for the bullion collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colCollections: {
			{Keys: bson.D{{Key: "updated_at", Value: -1}}},
			{
				Keys:    bson.D{{Key: "revision", Value: 1}},
				Options: options.Index().SetSparse(true),
			},
		},
	}
}
