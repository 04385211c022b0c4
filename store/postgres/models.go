package postgres

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/bullion/store"
)

type collectionModel struct {
	grove.BaseModel `grove:"table:bullion_collections"`

	Collection string          `grove:"collection,pk"`
	Payload    json.RawMessage `grove:"payload,type:jsonb"`
	Revision   int64           `grove:"revision"`
	UpdatedAt  time.Time       `grove:"updated_at"`
}

func toCollectionModel(c store.Collection, payload []byte) *collectionModel {
	return &collectionModel{
		Collection: c.String(),
		Payload:    json.RawMessage(payload),
		Revision:   1,
		UpdatedAt:  now(),
	}
}
