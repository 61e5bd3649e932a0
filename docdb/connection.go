// Package docdb builds the connection settings for an Amazon DocumentDB cluster
// from credentials resolved out of Secrets Manager.
package docdb

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/madkins23/go-docdb/secret"
)

// ClusterOptions are the query flags DocumentDB replica sets require.
// DocumentDB does not support retryable writes.
const ClusterOptions = "replicaSet=rs0&readPreference=secondaryPreferred&retryWrites=false"

// ErrConfig marks connection settings that cannot be turned into client options.
var ErrConfig = errors.New("connection config")

// Connection holds everything needed to open a client session with the cluster.
type Connection struct {
	// URI embeds the credentials, see Redacted() for a loggable form.
	URI string

	// CAFile is the path to the PEM trust bundle used to verify the cluster.
	// TLS is disabled when it is empty.
	CAFile string

	redacted string
}

// New builds and validates a Connection for the credentials.
func New(creds *secret.Credentials, caFile string) (*Connection, error) {
	if creds == nil {
		return nil, fmt.Errorf("%w: no credentials", ErrConfig)
	}

	uri := BuildURI(creds)
	if err := options.Client().ApplyURI(uri).Validate(); err != nil {
		return nil, fmt.Errorf("%w: parse URI for %s: %w", ErrConfig, creds, err)
	}

	return &Connection{
		URI:      uri,
		CAFile:   caFile,
		redacted: buildURI(url.UserPassword(creds.Username, "xxxxx"), creds.Host, creds.Port),
	}, nil
}

// BuildURI formats the cluster connection URI.
// Username and password are percent-encoded so that characters such as @ and :
// survive the trip through the URI parser.
func BuildURI(creds *secret.Credentials) string {
	return buildURI(url.UserPassword(creds.Username, creds.Password), creds.Host, creds.Port)
}

func buildURI(user *url.Userinfo, host string, port int) string {
	u := &url.URL{
		Scheme:   "mongodb",
		User:     user,
		Host:     net.JoinHostPort(host, strconv.Itoa(port)),
		Path:     "/",
		RawQuery: ClusterOptions,
	}
	return u.String()
}

// Redacted returns the URI with the password masked.
func (c *Connection) Redacted() string {
	return c.redacted
}

// ClientOptions returns driver options for the connection.
// The CA bundle is read here so a missing or empty file fails before any network traffic.
func (c *Connection) ClientOptions() (*options.ClientOptions, error) {
	opts := options.Client().ApplyURI(c.URI)
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: parse URI %s: %w", ErrConfig, c.redacted, err)
	}

	if c.CAFile != "" {
		tlsConfig, err := LoadTLSConfig(c.CAFile)
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsConfig)
	}

	return opts, nil
}

// LoadTLSConfig returns a TLS configuration trusting only the certificates in the PEM bundle.
func LoadTLSConfig(caFile string) (*tls.Config, error) {
	pemData, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read CA bundle: %w", ErrConfig, err)
	}

	roots := x509.NewCertPool()
	if !roots.AppendCertsFromPEM(pemData) {
		return nil, fmt.Errorf("%w: no certificates in CA bundle %s", ErrConfig, caFile)
	}

	return &tls.Config{
		RootCAs:    roots,
		MinVersion: tls.VersionTLS12,
	}, nil
}
