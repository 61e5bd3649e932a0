// Package secret resolves database credentials stored in AWS Secrets Manager.
//
// The secret value must be a JSON object carrying username, password, host and port,
// which is the shape written by the DocumentDB console and by RDS-managed rotation.
// Any additional fields in the object are ignored.
package secret

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

var (
	// ErrAccess marks failures reaching or authenticating with the secrets service.
	ErrAccess = errors.New("secret access")

	// ErrFormat marks secret values that are not a complete credential object.
	ErrFormat = errors.New("secret format")
)

// Credentials for a DocumentDB cluster as stored in the secret.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
}

// String never includes the password.
func (c *Credentials) String() string {
	return fmt.Sprintf("%s@%s:%d", c.Username, c.Host, c.Port)
}

// Resolver fetches Credentials by secret name.
type Resolver struct {
	api    secretsmanageriface.SecretsManagerAPI
	logger *slog.Logger
}

// NewResolver returns a Resolver using the specified Secrets Manager client.
// A nil logger uses slog.Default().
func NewResolver(api secretsmanageriface.SecretsManagerAPI, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{api: api, logger: logger}
}

// NewSessionResolver returns a Resolver backed by a client built from the
// default AWS credential chain and shared configuration.
// The region overrides AWS_REGION and the shared config when not empty.
func NewSessionResolver(region string, logger *slog.Logger) (*Resolver, error) {
	opts := session.Options{SharedConfigState: session.SharedConfigEnable}
	if region != "" {
		opts.Config.Region = aws.String(region)
	}
	sess, err := session.NewSessionWithOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: create AWS session: %w", ErrAccess, err)
	}
	return NewResolver(secretsmanager.New(sess), logger), nil
}

// Resolve fetches the named secret and parses it into Credentials.
// Exactly one call is made to the secrets service, failures are not retried.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Credentials, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: no secret name", ErrAccess)
	}

	r.logger.Info("retrieving secret", "secret", name)
	output, err := r.api.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	})
	if err != nil {
		var awsErr awserr.Error
		if errors.As(err, &awsErr) {
			return nil, fmt.Errorf("%w: get secret %s: %s: %w", ErrAccess, name, awsErr.Code(), err)
		}
		return nil, fmt.Errorf("%w: get secret %s: %w", ErrAccess, name, err)
	}

	var payload []byte
	switch {
	case output.SecretString != nil:
		payload = []byte(aws.StringValue(output.SecretString))
	case len(output.SecretBinary) > 0:
		// The SDK has already decoded the base64 transport form.
		payload = output.SecretBinary
	default:
		return nil, fmt.Errorf("%w: secret %s has no value", ErrFormat, name)
	}

	creds, err := Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("secret %s: %w", name, err)
	}

	r.logger.Info("secret retrieved", "secret", name, "version", aws.StringValue(output.VersionId))
	return creds, nil
}

// rawCredentials uses pointers so that missing fields can be told from empty ones.
type rawCredentials struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Host     *string `json:"host"`
	Port     *int    `json:"port"`
}

// Parse a JSON secret payload into Credentials.
// All four fields must be present and non-empty and the port must be a valid TCP port.
func Parse(payload []byte) (*Credentials, error) {
	var raw rawCredentials
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode JSON: %w", ErrFormat, err)
	}

	var missing []string
	if raw.Username == nil || *raw.Username == "" {
		missing = append(missing, "username")
	}
	if raw.Password == nil || *raw.Password == "" {
		missing = append(missing, "password")
	}
	if raw.Host == nil || *raw.Host == "" {
		missing = append(missing, "host")
	}
	if raw.Port == nil {
		missing = append(missing, "port")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing fields %v", ErrFormat, missing)
	}
	if *raw.Port < 1 || *raw.Port > 65535 {
		return nil, fmt.Errorf("%w: port %d out of range", ErrFormat, *raw.Port)
	}

	return &Credentials{
		Username: *raw.Username,
		Password: *raw.Password,
		Host:     *raw.Host,
		Port:     *raw.Port,
	}, nil
}
