// Package mdb provides infrastructure for using Mongo-compatible databases
// such as Amazon DocumentDB from Go.
//
// The Access struct contains the current Mongo client and database objects.
// It is returned from the Connect() function which also pings the database.
// Visible variables can be used to change default configuration and timeouts.
// The Access object provides a Disconnect() method suitable for use with defer.
//
// The Access object hands out Collection objects which bound every call
// with the configured collection timeout. TypedCollection decodes results
// into a specific Go type.
//
// The AccessTestSuite struct is provided to wrap database connect/disconnect
// for use in tests that actually hit the database.
// The use of '//go:build database' separates these so that they are only run
// when using 'go test -tags database', without this tag only unit tests are run.
package mdb
