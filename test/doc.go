// Package test holds fixtures shared by tests in other packages.
// It is only imported from _test.go files.
package test
