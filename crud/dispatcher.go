// Package crud runs one of the four sample operations against the Person collection.
package crud

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/madkins23/go-docdb/console"
	"github.com/madkins23/go-docdb/mdb"
)

// Usage explains the accepted operation codes.
const Usage = "Use c, r, u, or d for the respective CRUD operation to run."

// ErrOperation marks a failed database call.
var ErrOperation = errors.New("database operation")

// Operation selected by a single-character code.
type Operation int

const (
	Unknown Operation = iota
	Create
	Read
	Update
	Delete
)

func (op Operation) String() string {
	switch op {
	case Create:
		return "create"
	case Read:
		return "read"
	case Update:
		return "update"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// ParseOperation maps c, r, u or d in either case to an Operation.
// Anything else is Unknown.
func ParseOperation(code string) Operation {
	switch strings.ToLower(code) {
	case "c":
		return Create
	case "r":
		return Read
	case "u":
		return Update
	case "d":
		return Delete
	default:
		return Unknown
	}
}

// Store is the collection access the dispatcher needs.
// It is satisfied by *mdb.TypedCollection[Person].
type Store interface {
	Create(item interface{}) (interface{}, error)
	Find(filter bson.D) (*Person, error)
	Update(filter, operators interface{}) (*mongo.UpdateResult, error)
	Delete(filter bson.D, idempotent bool) (int64, error)
}

var _ Store = (*mdb.TypedCollection[Person])(nil)

// Dispatcher runs a single operation and reports the result.
type Dispatcher struct {
	store   Store
	printer *console.Printer
}

func NewDispatcher(store Store, printer *console.Printer) *Dispatcher {
	return &Dispatcher{store: store, printer: printer}
}

// Dispatch runs the operation named by code.
// Each known code makes exactly one store call. An unknown code prints
// the usage hint, touches nothing and is not an error.
func (d *Dispatcher) Dispatch(code string) error {
	op := ParseOperation(code)
	var err error
	switch op {
	case Create:
		err = d.create()
	case Read:
		err = d.read()
	case Update:
		err = d.update()
	case Delete:
		err = d.delete()
	default:
		d.printer.Warn("Invalid input argument %s. %s", code, Usage)
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOperation, op, err)
	}
	return nil
}

func (d *Dispatcher) create() error {
	id, err := d.store.Create(Alice())
	if err != nil {
		if mdb.IsDuplicate(err) {
			return fmt.Errorf("document already exists: %w", err)
		}
		return err
	}
	if oid, ok := id.(primitive.ObjectID); ok {
		id = oid.Hex()
	}
	d.printer.Success("Document inserted! id=%v", id)
	return nil
}

func (d *Dispatcher) read() error {
	person, err := d.store.Find(AliceFilter())
	if err != nil {
		if mdb.IsNotFound(err) {
			d.printer.JSON(nil)
			return nil
		}
		return err
	}
	data, err := bson.MarshalExtJSON(person, false, false)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	d.printer.JSON(data)
	return nil
}

func (d *Dispatcher) update() error {
	result, err := d.store.Update(AliceFilter(), BirthdayUpdate())
	if err != nil {
		return err
	}
	d.printer.Success("Document updated! matched=%d modified=%d", result.MatchedCount, result.ModifiedCount)
	return nil
}

func (d *Dispatcher) delete() error {
	deleted, err := d.store.Delete(AliceFilter(), true)
	if err != nil {
		return err
	}
	d.printer.Success("Document deleted! deleted=%d", deleted)
	return nil
}
