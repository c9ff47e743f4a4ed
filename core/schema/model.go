package schema

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Model holds the fields every persisted document carries.
// Embed it in concrete entity types.
type Model struct {
	ID            bson.ObjectID `bson:"_id,omitempty" json:"-"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	LastUpdatedAt time.Time     `bson:"lastUpdatedAt,omitempty" json:"lastUpdatedAt,omitzero"`
}
