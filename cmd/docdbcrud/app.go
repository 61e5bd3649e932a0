package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/madkins23/go-docdb/config"
	"github.com/madkins23/go-docdb/console"
	"github.com/madkins23/go-docdb/crud"
	"github.com/madkins23/go-docdb/docdb"
	"github.com/madkins23/go-docdb/mdb"
	"github.com/madkins23/go-docdb/secret"
)

// ErrMissingOperation is returned when no operation code is given.
var ErrMissingOperation = errors.New("need a command line argument while invoking the program. " + crud.Usage)

// app carries the process fundamentals so the command can be tested in isolation.
type app struct {
	stdout    io.Writer
	stderr    io.Writer
	getenv    func(string) string
	lookupEnv func(string) (string, bool)

	newResolver func(region string, logger *slog.Logger) (docdb.CredentialResolver, error)
	connect     func(dbName string, config *mdb.Config) (*mdb.Access, error)
}

func newApp(stdout, stderr io.Writer, getenv func(string) string, lookupEnv func(string) (string, bool)) *app {
	return &app{
		stdout:    stdout,
		stderr:    stderr,
		getenv:    getenv,
		lookupEnv: lookupEnv,
		newResolver: func(region string, logger *slog.Logger) (docdb.CredentialResolver, error) {
			resolver, err := secret.NewSessionResolver(region, logger)
			if err != nil {
				return nil, err
			}
			return resolver, nil
		},
		connect: mdb.Connect,
	}
}

// flagValues override the environment when set on the command line.
type flagValues struct {
	secretName string
	region     string
	caFile     string
	database   string
	collection string
	timeout    time.Duration
	verbose    bool
	noColor    bool
}

func (f *flagValues) apply(flags *pflag.FlagSet, cfg *config.Config) {
	if flags.Changed("secret-name") {
		cfg.SecretName = f.secretName
	}
	if flags.Changed("region") {
		cfg.Region = f.region
	}
	if flags.Changed("ca-file") {
		cfg.CAFile = f.caFile
	}
	if flags.Changed("database") {
		cfg.Database = f.database
	}
	if flags.Changed("collection") {
		cfg.Collection = f.collection
	}
	if flags.Changed("timeout") {
		cfg.Timeout = f.timeout
	}
}

func (a *app) execute(ctx context.Context, args []string) error {
	cmd := a.rootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	return cmd.ExecuteContext(ctx)
}

func (a *app) rootCommand() *cobra.Command {
	f := new(flagValues)

	cmd := &cobra.Command{
		Use:   "docdbcrud <c|r|u|d>",
		Short: "Run one CRUD operation against Amazon DocumentDB",
		Long: "Fetches cluster credentials from AWS Secrets Manager, connects to Amazon DocumentDB over TLS\n" +
			"and creates, reads, updates or deletes the sample document.\n\n" + crud.Usage,
		Args: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return ErrMissingOperation
			case 1:
				return nil
			default:
				return fmt.Errorf("expected one operation code, got %d arguments. %s", len(args), crud.Usage)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd.Context(), cmd.Flags(), f, args[0])
		},
	}

	cmd.Flags().StringVar(&f.secretName, "secret-name", "", "Secrets Manager secret holding the cluster credentials (env "+config.EnvSecretName+")")
	cmd.Flags().StringVar(&f.region, "region", "", "AWS region of the secret (env "+config.EnvRegion+")")
	cmd.Flags().StringVar(&f.caFile, "ca-file", "", "PEM trust bundle for the cluster, empty disables TLS (env "+config.EnvCAFile+")")
	cmd.Flags().StringVar(&f.database, "database", "", "Database name (env "+config.EnvDatabase+")")
	cmd.Flags().StringVar(&f.collection, "collection", "", "Collection name (env "+config.EnvCollection+")")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "Timeout for the CRUD call (env "+config.EnvTimeout+")")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "Disable coloured output")

	return cmd
}

func (a *app) run(ctx context.Context, flags *pflag.FlagSet, f *flagValues, code string) error {
	cfg, err := config.Load(a.getenv, a.lookupEnv)
	if err != nil {
		return err
	}
	f.apply(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := console.NewLogger(a.stderr, f.verbose, f.noColor || noColor(a.stderr))
	printer := console.NewPrinter(a.stdout, f.noColor || noColor(a.stdout))

	resolver, err := a.newResolver(cfg.Region, logger)
	if err != nil {
		return err
	}

	opener := &docdb.Opener{Resolver: resolver, Connect: a.connect, Logger: logger}
	access, err := opener.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := access.Disconnect(); err != nil {
			logger.Error("disconnect failed", "error", err)
		}
	}()

	printer.Success("Connected to Amazon DocumentDB using credentials from Secrets Manager! Response: %s",
		access.PingReply())

	collection, err := access.Collection(cfg.Collection)
	if err != nil {
		return err
	}
	logger.Debug("dispatching", "operation", crud.ParseOperation(code), "collection", cfg.Collection)
	return crud.NewDispatcher(mdb.NewTypedCollection[crud.Person](collection), printer).Dispatch(code)
}

// noColor is true unless w is a terminal that accepts colour.
func noColor(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return console.NoColor(f)
	}
	return true
}
