// Package adapters provides database adapter implementations for the PostgreSQL
// deprecation journal.
//
// This package implements the adapter pattern to support multiple PostgreSQL
// database libraries: pgxpool.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent functionality through a common DBAdapter interface, so the journal
// can record and report deprecation events over any supported connection type.
package adapters
