package crud

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/madkins23/go-docdb/mdb"
)

const sampleName = "Alice"

// Person is the sample document shape.
type Person struct {
	mdb.Identity `bson:"inline"`
	Name         string `bson:"name" json:"name"`
	Age          int    `bson:"age" json:"age"`
	City         string `bson:"city" json:"city"`
}

// Alice returns the document written by the create operation.
func Alice() *Person {
	return &Person{Name: sampleName, Age: 30, City: "Seattle"}
}

// AliceFilter matches documents named Alice.
func AliceFilter() bson.D {
	return bson.D{{Key: "name", Value: sampleName}}
}

// BirthdayUpdate sets Alice's age after the update operation.
func BirthdayUpdate() bson.D {
	return bson.D{{Key: "$set", Value: bson.D{{Key: "age", Value: 31}}}}
}
