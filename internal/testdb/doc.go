// Package testdb provides helpers for integration tests that run against a
// real Postgres database. Tests using it are skipped when no database URL
// is configured.
package testdb
