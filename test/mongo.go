package test

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// MongoImage is the server image started for database tests.
const MongoImage = "mongo:7"

// MongoURIVariable names an environment variable pointing at an existing server.
// When it is set no container is started.
const MongoURIVariable = "MDB_TEST_URI"

// Mongo is a disposable Mongo server for a test run.
type Mongo struct {
	Container testcontainers.Container
	URI       string
}

// StartMongo starts a Mongo container and registers its termination with t.Cleanup().
// Tests are skipped in short mode.
func StartMongo(t testing.TB) *Mongo {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping database test in short mode")
	}

	if uri, found := os.LookupEnv(MongoURIVariable); found && uri != "" {
		return &Mongo{URI: uri}
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        MongoImage,
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "start mongo container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Failed to terminate mongo container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err, "mongo container host")
	port, err := container.MappedPort(ctx, "27017/tcp")
	require.NoError(t, err, "mongo container port")

	return &Mongo{
		Container: container,
		URI:       "mongodb://" + net.JoinHostPort(host, port.Port()),
	}
}
