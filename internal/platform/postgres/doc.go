// Package postgres provides PostgreSQL implementations of the store
// interfaces. All implementations accept a store.DBTX, so they work
// identically over a connection pool or an open transaction.
package postgres
