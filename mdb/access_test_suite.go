package mdb

// Would prefer to name this file ending in _test.go
//  so that it won't be included in generated code,
//  but then it can't be referenced from other packages for some reason,
//  so it couldn't be used (as designed) in tests in other packages.

import (
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const AccessTestDBname = "db-test"

// AccessTestSuite connects to the server at URI (DefaultURI when empty)
// for the duration of a suite and drops the test database afterwards.
type AccessTestSuite struct {
	suite.Suite
	URI    string
	access *Access
}

func (suite *AccessTestSuite) Access() *Access {
	return suite.access
}

func (suite *AccessTestSuite) SetupSuite() {
	opts := options.Client()
	if suite.URI != "" {
		opts.ApplyURI(suite.URI)
	}
	suite.SetupSuiteConfig(&Config{Options: opts})
}

func (suite *AccessTestSuite) SetupSuiteConfig(config *Config) {
	var err error
	suite.access, err = Connect(AccessTestDBname, config)
	suite.Require().NoError(err, "connect to mongo")
	suite.access.Info("Suite setup")
}

func (suite *AccessTestSuite) TearDownSuite() {
	if suite.access == nil {
		return
	}
	suite.access.Info("Suite teardown")
	suite.NoError(suite.access.Database().Drop(suite.access.Context()), "drop test database")
	suite.NoError(suite.access.Disconnect(), "disconnect from mongo")
}

// ConnectCollection returns an emptied collection for use in a SetupSuite()
// with test checks so that any errors blow up the test.
func (suite *AccessTestSuite) ConnectCollection(name string) *Collection {
	collection, err := suite.access.Collection(name)
	suite.Require().NoError(err)
	suite.NotNil(collection)
	suite.Require().NoError(collection.DeleteAll())
	return collection
}

// ConnectTypedCollectionHelper is similar to AccessTestSuite.ConnectCollection().
// Go doesn't support generic methods so this can't be a method on AccessTestSuite.
func ConnectTypedCollectionHelper[T any](suite *AccessTestSuite, name string) *TypedCollection[T] {
	return NewTypedCollection[T](suite.ConnectCollection(name))
}
