// Package config loads runtime configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	EnvSecretName = "DOCDB_SECRET_NAME"
	EnvRegion     = "DOCDB_REGION"
	EnvCAFile     = "DOCDB_CA_FILE"
	EnvDatabase   = "DOCDB_DATABASE"
	EnvCollection = "DOCDB_COLLECTION"
	EnvTimeout    = "DOCDB_TIMEOUT"
)

const (
	DefaultCAFile     = "global-bundle.pem"
	DefaultDatabase   = "mydatabase"
	DefaultCollection = "mycollection"
)

// ErrNoSecretName is returned by Validate when no secret name is configured.
var ErrNoSecretName = errors.New("no secret name, set " + EnvSecretName + " or --secret-name")

// Config holds the settings for one run.
type Config struct {
	// SecretName identifies the Secrets Manager entry holding the credentials.
	SecretName string

	// Region overrides the AWS region from the environment and shared config.
	Region string

	// CAFile is the path to the cluster trust bundle. Empty disables TLS.
	CAFile string

	Database   string
	Collection string

	// Timeout bounds each collection call. Zero keeps the access layer default.
	Timeout time.Duration
}

// Load reads configuration using getenv, normally os.Getenv.
// DOCDB_CA_FILE set to an empty string disables TLS, unset uses the default bundle name.
// Only a malformed DOCDB_TIMEOUT is an error here, see Validate for required values.
func Load(getenv func(string) string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		SecretName: getenv(EnvSecretName),
		Region:     getenv(EnvRegion),
		CAFile:     DefaultCAFile,
		Database:   DefaultDatabase,
		Collection: DefaultCollection,
	}

	if v, ok := lookupEnv(EnvCAFile); ok {
		cfg.CAFile = v
	}
	if v := getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := getenv(EnvCollection); v != "" {
		cfg.Collection = v
	}
	if v := getenv(EnvTimeout); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%s has invalid duration %q: %w", EnvTimeout, v, err)
		}
		if parsed < 0 {
			return nil, fmt.Errorf("%s must not be negative: %s", EnvTimeout, v)
		}
		cfg.Timeout = parsed
	}

	return cfg, nil
}

// Validate checks that values required for a run are present.
func (c *Config) Validate() error {
	if c.SecretName == "" {
		return ErrNoSecretName
	}
	if c.Database == "" {
		return errors.New("no database name")
	}
	if c.Collection == "" {
		return errors.New("no collection name")
	}
	return nil
}
