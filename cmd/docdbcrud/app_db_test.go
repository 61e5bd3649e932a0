//go:build database

package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/madkins23/go-docdb/config"
	"github.com/madkins23/go-docdb/crud"
	"github.com/madkins23/go-docdb/docdb"
	"github.com/madkins23/go-docdb/mdb"
	"github.com/madkins23/go-docdb/test"
)

const connectedLine = "Connected to Amazon DocumentDB using credentials from Secrets Manager! Response:"

type appDBTestSuite struct {
	mdb.AccessTestSuite
	people    *mdb.TypedCollection[crud.Person]
	stdout    *bytes.Buffer
	resolver  *mockResolver
	connected *mdb.Access
	app       *app
}

func TestAppDBSuite(t *testing.T) {
	suite.Run(t, new(appDBTestSuite))
}

func (suite *appDBTestSuite) SetupSuite() {
	suite.URI = test.StartMongo(suite.T()).URI
	suite.AccessTestSuite.SetupSuite()
	suite.people = mdb.ConnectTypedCollectionHelper[crud.Person](&suite.AccessTestSuite, "test-people")
}

func (suite *appDBTestSuite) SetupTest() {
	suite.Require().NoError(suite.people.DeleteAll())
	suite.stdout = new(bytes.Buffer)
	suite.resolver = new(mockResolver)
	suite.resolver.On("Resolve", mock.Anything, "docdb/creds").Return(testCreds, nil).Once()
	suite.connected = nil

	env := map[string]string{
		config.EnvSecretName: "docdb/creds",
		config.EnvCAFile:     "",
		config.EnvDatabase:   mdb.AccessTestDBname,
	}
	suite.app = newApp(suite.stdout, new(bytes.Buffer),
		func(key string) string { return env[key] },
		func(key string) (string, bool) {
			v, ok := env[key]
			return v, ok
		})
	suite.app.newResolver = func(string, *slog.Logger) (docdb.CredentialResolver, error) {
		return suite.resolver, nil
	}
	// The cluster URI names replica set rs0, the container is a standalone server.
	suite.app.connect = func(dbName string, cfg *mdb.Config) (*mdb.Access, error) {
		cfg.Options = options.Client().ApplyURI(suite.URI)
		access, err := mdb.Connect(dbName, cfg)
		suite.connected = access
		return access, err
	}
}

func (suite *appDBTestSuite) TearDownTest() {
	suite.resolver.AssertExpectations(suite.T())
}

func (suite *appDBTestSuite) assertDisconnected() {
	suite.Require().NotNil(suite.connected)
	_, err := suite.connected.Ping()
	suite.Error(err)
}

func (suite *appDBTestSuite) TestCreate() {
	suite.Require().NoError(suite.app.execute(context.Background(), []string{"--collection", "test-people", "c"}))

	out := suite.stdout.String()
	connected := strings.Index(out, connectedLine)
	inserted := strings.Index(out, "Document inserted!")
	suite.GreaterOrEqual(connected, 0)
	suite.Greater(inserted, connected)

	count, err := suite.people.Count(crud.AliceFilter())
	suite.Require().NoError(err)
	suite.Equal(int64(1), count)
	suite.assertDisconnected()
}

func (suite *appDBTestSuite) TestInvalidCodeAfterConnect() {
	suite.Require().NoError(suite.app.execute(context.Background(), []string{"--collection", "test-people", "x"}))

	out := suite.stdout.String()
	suite.Contains(out, connectedLine)
	suite.Contains(out, "Invalid input argument x. "+crud.Usage)

	count, err := suite.people.Count(mdb.NoFilter())
	suite.Require().NoError(err)
	suite.Zero(count)
	suite.assertDisconnected()
}
