package mdb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Collection binds a Mongo collection to the Access that opened it.
// Every call is bounded by the Access collection timeout.
type Collection struct {
	*Access
	*mongo.Collection
}

// ContextWithTimeout returns the base context bounded by the collection timeout.
func (c *Collection) ContextWithTimeout() (context.Context, context.CancelFunc) {
	return c.Access.ContextWithTimeout(c.Access.config.Timeout.Collection)
}

// Count documents in collection matching filter.
func (c *Collection) Count(filter bson.D) (int64, error) {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	count, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count items: %w", err)
	}

	return count, nil
}

// Create item in DB and return the ID assigned to it.
// Nothing prevents the same item from being created more than once.
func (c *Collection) Create(item interface{}) (interface{}, error) {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	result, err := c.InsertOne(ctx, item)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return result.InsertedID, nil
}

// Delete the first item matching the filter and return the number deleted.
// Set idempotent to true to avoid errors if the item does not exist.
func (c *Collection) Delete(filter bson.D, idempotent bool) (int64, error) {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	result, err := c.DeleteOne(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("delete item: %w", err)
	}
	if result.DeletedCount > 1 || (result.DeletedCount == 0 && !idempotent) {
		// Should have deleted a single item or none if idempotent flag set.
		return result.DeletedCount, fmt.Errorf("deleted %d items", result.DeletedCount)
	}

	return result.DeletedCount, nil
}

// DeleteAll items from this collection.
func (c *Collection) DeleteAll() error {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	if _, err := c.DeleteMany(ctx, NoFilter()); err != nil {
		return fmt.Errorf("delete all: %w", err)
	}
	return nil
}

// Drop collection.
func (c *Collection) Drop() error {
	ctx, cancelFn := c.ContextWithTimeout()
	defer cancelFn()
	return c.Collection.Drop(ctx)
}

// Update the first item referenced by filter by applying update operator expressions.
// Matching nothing is not an error, check the counts in the result.
func (c *Collection) Update(filter, operators interface{}) (*mongo.UpdateResult, error) {
	ctx, cancel := c.ContextWithTimeout()
	defer cancel()
	result, err := c.UpdateOne(ctx, filter, operators)
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}

	return result, nil
}

////////////////////////////////////////////////////////////////////////////////

// NoFilter returns an empty bson.D object for use as an empty filter.
func NoFilter() bson.D {
	return bson.D{}
}
