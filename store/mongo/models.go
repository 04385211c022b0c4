package mongo

import (
	"time"

	"github.com/xraph/grove"
)

type collectionModel struct {
	grove.BaseModel `grove:"table:bullion_collections"`

	Collection string    `grove:"collection,pk" bson:"_id"`
	Payload    string    `grove:"payload"       bson:"payload"`
	Revision   int64     `grove:"revision"      bson:"revision"`
	UpdatedAt  time.Time `grove:"updated_at"    bson:"updated_at"`
}
