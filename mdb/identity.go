package mdb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity carries the server-assigned _id.
// Embed it inline so the _id is decoded with the document.
type Identity struct {
	ObjectID primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
}
