package postgresjournal

import (
	"errors"
)

var (
	// ErrNilDatabaseConnection is returned when a factory receives a nil connection.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrEmptyJournalTableName is returned when an empty journal table name is supplied.
	ErrEmptyJournalTableName = errors.New("empty journal table name supplied")

	// ErrInvalidRecordTimeout is returned when a non-positive record timeout is supplied.
	ErrInvalidRecordTimeout = errors.New("record timeout must be positive")

	// ErrBuildingQueryFailed is returned when building a SQL statement fails.
	ErrBuildingQueryFailed = errors.New("building sql query failed")

	// ErrRecordingEventFailed is returned when inserting a deprecation event fails.
	ErrRecordingEventFailed = errors.New("recording deprecation event failed")

	// ErrQueryingJournalFailed is returned when a report query fails.
	ErrQueryingJournalFailed = errors.New("querying journal failed")

	// ErrScanningDBRowFailed is returned when scanning a journal row fails.
	ErrScanningDBRowFailed = errors.New("scanning journal row failed")
)
