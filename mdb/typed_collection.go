package mdb

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// TypedCollection decodes documents returned from Mongo into items of type T.
type TypedCollection[T any] struct {
	Collection
}

func NewTypedCollection[T any](collection *Collection) *TypedCollection[T] {
	return &TypedCollection[T]{
		Collection: *collection,
	}
}

// Find the first item matching the filter.
// When nothing matches the returned error satisfies IsNotFound().
func (c *TypedCollection[T]) Find(filter bson.D) (*T, error) {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	item := new(T)
	err := c.FindOne(ctx, filter).Decode(item)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("no item '%v': %w", filter, err)
		}
		return nil, fmt.Errorf("find item '%v': %w", filter, err)
	}

	return item, nil
}
