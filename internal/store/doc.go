// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so the in-memory stores used by default
// and the PostgreSQL stores can be swapped without touching services.
package store
