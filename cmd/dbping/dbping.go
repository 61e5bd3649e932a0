package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/madkins23/go-docdb/config"
	"github.com/madkins23/go-docdb/console"
	"github.com/madkins23/go-docdb/docdb"
	"github.com/madkins23/go-docdb/secret"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := console.NewLogger(os.Stderr, false, console.NoColor(os.Stderr))
	resolver := func(region string) (docdb.CredentialResolver, error) {
		r, err := secret.NewSessionResolver(region, logger)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
	printer := console.NewPrinter(os.Stdout, console.NoColor(os.Stdout))
	if err := ping(ctx, os.Args[1:], os.Getenv, os.LookupEnv, resolver, logger, printer); err != nil {
		console.NewPrinter(os.Stderr, console.NoColor(os.Stderr)).Error("error: %s", err)
		cancel()
		os.Exit(1)
	}
}

// ping connects to the database named by the optional argument and prints the ping reply.
func ping(
	ctx context.Context, args []string,
	getenv func(string) string, lookupEnv func(string) (string, bool),
	newResolver func(region string) (docdb.CredentialResolver, error),
	logger *slog.Logger, printer *console.Printer,
) error {
	if len(args) > 1 {
		return fmt.Errorf("usage: dbping [dbname]")
	}

	cfg, err := config.Load(getenv, lookupEnv)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		cfg.Database = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	resolver, err := newResolver(cfg.Region)
	if err != nil {
		return err
	}
	access, err := (&docdb.Opener{Resolver: resolver, Logger: logger}).Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("unable to connect to %s: %w", cfg.Database, err)
	}
	printer.JSON([]byte(access.PingReply().String()))
	if err := access.Disconnect(); err != nil {
		return fmt.Errorf("unable to disconnect from %s: %w", cfg.Database, err)
	}
	return nil
}
