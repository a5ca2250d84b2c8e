package postgresjournal

import (
	"time"

	"github.com/forgeworks/name-transition-go/aliasing"
)

// Logger interface for SQL statement logging, operational reporting and warnings.
// It is the same dependency-free shape as aliasing.Logger, re-declared here so the
// journal can be used without importing the core for configuration alone.
type Logger = aliasing.Logger

// Option defines a functional option for configuring a Journal.
type Option func(*Journal) error

// WithTableName sets the journal table name (default "deprecation_events").
func WithTableName(tableName string) Option {
	return func(j *Journal) error {
		if tableName == "" {
			return ErrEmptyJournalTableName
		}

		j.tableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the Journal.
// The logger will receive messages at different levels based on its configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: recorded event counts and report durations (production-safe)
// Warn level: failed background recordings from Notify
// Error level: failures that cause Record or report operations to fail.
func WithLogger(logger Logger) Option {
	return func(j *Journal) error {
		j.logger = logger
		return nil
	}
}

// WithSource sets the source label stamped on every recorded event, typically the
// name of the service doing the reporting.
func WithSource(source string) Option {
	return func(j *Journal) error {
		j.source = source
		return nil
	}
}

// WithRecordTimeout bounds the background context used by Notify when recording
// an event (default 5 seconds). Record with a caller-supplied context is not
// affected.
func WithRecordTimeout(timeout time.Duration) Option {
	return func(j *Journal) error {
		if timeout <= 0 {
			return ErrInvalidRecordTimeout
		}

		j.recordTimeout = timeout

		return nil
	}
}
