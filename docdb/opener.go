package docdb

import (
	"context"
	"log/slog"

	"github.com/madkins23/go-docdb/config"
	"github.com/madkins23/go-docdb/mdb"
	"github.com/madkins23/go-docdb/secret"
)

// CredentialResolver looks up cluster credentials by secret name.
type CredentialResolver interface {
	Resolve(ctx context.Context, name string) (*secret.Credentials, error)
}

// Opener runs the steps from secret name to a verified database connection.
type Opener struct {
	Resolver CredentialResolver

	// Connect defaults to mdb.Connect.
	Connect func(dbName string, config *mdb.Config) (*mdb.Access, error)

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Open resolves the credentials, builds the connection settings and connects.
// Each step must succeed before the next starts, so a bad secret or CA bundle
// never results in a connection attempt.
func (o *Opener) Open(ctx context.Context, cfg *config.Config) (*mdb.Access, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.Default()
	}
	connect := o.Connect
	if connect == nil {
		connect = mdb.Connect
	}

	creds, err := o.Resolver.Resolve(ctx, cfg.SecretName)
	if err != nil {
		return nil, err
	}

	conn, err := New(creds, cfg.CAFile)
	if err != nil {
		return nil, err
	}
	opts, err := conn.ClientOptions()
	if err != nil {
		return nil, err
	}

	logger.Info("connecting", "uri", conn.Redacted(), "database", cfg.Database, "tls", conn.CAFile != "")
	return connect(cfg.Database, &mdb.Config{
		Ctx:       ctx,
		Options:   opts,
		LogInfoFn: func(msg string) { logger.Info(msg) },
		Timeout:   mdb.Timeout{Collection: cfg.Timeout},
	})
}
