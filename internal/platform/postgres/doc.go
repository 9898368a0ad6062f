// Package postgres provides PostgreSQL implementations of the store
// interfaces defined in internal/store.
//
// Connections go through the pgx stdlib driver ("pgx") behind database/sql,
// and stores accept a store.DBTX so they work with either a *sql.DB or a
// *sql.Tx. The schema lives in embedded goose migrations applied by Migrate.
// Driver errors are translated to store sentinels by MapError.
package postgres
