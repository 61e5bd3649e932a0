//go:build database

package crud

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/madkins23/go-docdb/console"
	"github.com/madkins23/go-docdb/mdb"
	"github.com/madkins23/go-docdb/test"
)

type dispatcherDBTestSuite struct {
	mdb.AccessTestSuite
	people     *mdb.TypedCollection[Person]
	out        *bytes.Buffer
	dispatcher *Dispatcher
}

func TestDispatcherDBSuite(t *testing.T) {
	suite.Run(t, new(dispatcherDBTestSuite))
}

func (suite *dispatcherDBTestSuite) SetupSuite() {
	suite.URI = test.StartMongo(suite.T()).URI
	suite.AccessTestSuite.SetupSuite()
	suite.people = mdb.ConnectTypedCollectionHelper[Person](&suite.AccessTestSuite, "test-people")
}

func (suite *dispatcherDBTestSuite) SetupTest() {
	suite.out = new(bytes.Buffer)
	suite.dispatcher = NewDispatcher(suite.people, console.NewPrinter(suite.out, true))
}

func (suite *dispatcherDBTestSuite) TearDownTest() {
	suite.NoError(suite.people.DeleteAll())
}

func (suite *dispatcherDBTestSuite) count() int64 {
	count, err := suite.people.Count(AliceFilter())
	suite.Require().NoError(err)
	return count
}

func (suite *dispatcherDBTestSuite) TestLifecycle() {
	suite.Require().NoError(suite.dispatcher.Dispatch("c"))
	suite.Equal(int64(1), suite.count())

	suite.Require().NoError(suite.dispatcher.Dispatch("u"))
	alice, err := suite.people.Find(AliceFilter())
	suite.Require().NoError(err)
	suite.Equal(31, alice.Age)
	suite.Equal("Seattle", alice.City)

	suite.out.Reset()
	suite.Require().NoError(suite.dispatcher.Dispatch("R"))
	suite.Contains(suite.out.String(), "31")
	suite.Contains(suite.out.String(), alice.ObjectID.Hex())

	suite.Require().NoError(suite.dispatcher.Dispatch("D"))
	suite.Zero(suite.count())
}

func (suite *dispatcherDBTestSuite) TestCreateTwiceMakesDuplicates() {
	suite.Require().NoError(suite.dispatcher.Dispatch("C"))
	suite.Require().NoError(suite.dispatcher.Dispatch("c"))
	suite.Equal(int64(2), suite.count())

	suite.Require().NoError(suite.dispatcher.Dispatch("d"))
	suite.Equal(int64(1), suite.count())
}

func (suite *dispatcherDBTestSuite) TestEmptyCollection() {
	suite.Require().NoError(suite.dispatcher.Dispatch("r"))
	suite.Equal("null\n", suite.out.String())

	suite.out.Reset()
	suite.Require().NoError(suite.dispatcher.Dispatch("u"))
	suite.Contains(suite.out.String(), "matched=0 modified=0")

	suite.out.Reset()
	suite.Require().NoError(suite.dispatcher.Dispatch("d"))
	suite.Contains(suite.out.String(), "deleted=0")
}

func (suite *dispatcherDBTestSuite) TestUnknownLeavesCollectionAlone() {
	suite.Require().NoError(suite.dispatcher.Dispatch("c"))
	suite.Require().NoError(suite.dispatcher.Dispatch("z"))
	suite.Equal(int64(1), suite.count())
}
