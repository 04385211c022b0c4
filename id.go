package bullion

import "github.com/xraph/bullion/id"

// ID is the primary identifier type for all Bullion entities.
type ID = id.ID

// Prefix identifies the entity type encoded in a TypeID.
type Prefix = id.Prefix
