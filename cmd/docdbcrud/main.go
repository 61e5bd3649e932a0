package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/madkins23/go-docdb/console"
)

func main() {
	// Ctrl-C or SIGTERM abandons whichever network call is in flight.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newApp(os.Stdout, os.Stderr, os.Getenv, os.LookupEnv).execute(ctx, os.Args[1:])
	cancel()
	if err != nil {
		console.NewPrinter(os.Stderr, console.NoColor(os.Stderr)).Error("error: %s", err)
		os.Exit(1)
	}
}
