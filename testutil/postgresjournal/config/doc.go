// Package config provides PostgreSQL database configuration for journal testing.
//
// This package contains factory functions for creating database connections
// using the journal's supported PostgreSQL adapters (pgx.Pool, sql.DB, sqlx.DB)
// against the test database. The DSN can be overridden through the
// JOURNAL_TEST_DSN environment variable.
package config
