package postgresjournal

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"github.com/forgeworks/name-transition-go/aliasing"
	"github.com/forgeworks/name-transition-go/aliasing/postgresjournal/internal/adapters"
)

const (
	defaultJournalTableName = "deprecation_events"
	defaultRecordTimeout    = 5 * time.Second

	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgBuildReportQueryFailed = "failed to build report query"
	logMsgDBExecFailed           = "database execution failed during event recording"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgNotifyRecordFailed     = "failed to record deprecation event from sink notification"
	logMsgEventRecorded          = "deprecation event recorded"
	logMsgReportCompleted        = "journal report completed"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "journal operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrCategory              = "category"
	logAttrRowCount              = "row_count"
	logAttrDurationMS            = "duration_ms"
	logActionRecord              = "record"
	logActionReport              = "report"

	colID         = "id"
	colSource     = "source"
	colCategory   = "category"
	colMessage    = "message"
	colFile       = "file"
	colLine       = "line"
	colDetails    = "details"
	colRecordedAt = "recorded_at"

	aliasUseCount   = "use_count"
	dialectPostgres = "postgres"
)

type sqlQueryString = string

// RecordedEvent is a Deprecation Event as persisted in the journal, enriched with
// the recording metadata.
type RecordedEvent struct {
	ID         string
	Source     string
	Category   string
	Message    string
	File       string
	Line       int
	Details    []byte
	RecordedAt time.Time
}

// UsageCount aggregates how often one legacy symbol (identified by its
// deprecation message) was used, per category.
type UsageCount struct {
	Category string
	Message  string
	Count    int64
}

// eventDetails is the JSON shape stored in the details column, a raw copy of the
// event for downstream tooling that wants more than the flat columns.
type eventDetails struct {
	Message  string `json:"message"`
	Category string `json:"category"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Journal records Deprecation Events into a Postgres table and reports on them.
// It implements aliasing.Sink, so it can be installed process-wide to build an
// inventory of which legacy names are still in use. It leverages a database
// adapter and supports customizable logging, source labelling and table
// configuration.
type Journal struct {
	db            adapters.DBAdapter
	tableName     string
	source        string
	recordTimeout time.Duration
	logger        Logger
}

// NewJournalFromPGXPool creates a new Journal using a pgx Pool with optional configuration.
func NewJournalFromPGXPool(db *pgxpool.Pool, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapter(db), options)
}

// NewJournalFromPGXPoolWithReplica creates a new Journal using a primary pgx Pool
// for recording and a replica pool for report queries.
func NewJournalFromPGXPoolWithReplica(db *pgxpool.Pool, replica *pgxpool.Pool, options ...Option) (Journal, error) {
	if db == nil || replica == nil {
		return Journal{}, ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewPGXAdapterWithReplica(db, replica), options)
}

// NewJournalFromSQLDB creates a new Journal using a sql.DB with optional configuration.
func NewJournalFromSQLDB(db *sql.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLAdapter(db), options)
}

// NewJournalFromSQLX creates a new Journal using a sqlx.DB with optional configuration.
func NewJournalFromSQLX(db *sqlx.DB, options ...Option) (Journal, error) {
	if db == nil {
		return Journal{}, ErrNilDatabaseConnection
	}

	return newJournal(adapters.NewSQLXAdapter(db), options)
}

func newJournal(db adapters.DBAdapter, options []Option) (Journal, error) {
	j := Journal{
		db:            db,
		tableName:     defaultJournalTableName,
		recordTimeout: defaultRecordTimeout,
	}

	for _, option := range options {
		if err := option(&j); err != nil {
			return Journal{}, err
		}
	}

	return j, nil
}

// Notify implements the aliasing.Sink interface. It records the event with a
// background context bounded by the configured record timeout. Recording failures
// are logged, not propagated: audit bookkeeping must never break the caller of a
// legacy symbol.
func (j Journal) Notify(event aliasing.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), j.recordTimeout)
	defer cancel()

	if err := j.Record(ctx, event); err != nil {
		if j.logger != nil {
			j.logger.Warn(logMsgNotifyRecordFailed, logAttrError, err.Error())
		}
	}
}

// Record inserts one Deprecation Event into the journal table.
func (j Journal) Record(ctx context.Context, event aliasing.Event) error {
	sqlQuery, buildErr := j.buildInsertQuery(event)
	if buildErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgBuildInsertQueryFailed, logAttrError, buildErr.Error())
		}

		return buildErr
	}

	start := time.Now()
	_, execErr := j.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionRecord, duration)

	if execErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		}

		return errors.Join(ErrRecordingEventFailed, execErr)
	}

	j.logOperation(
		logMsgEventRecorded,
		logAttrCategory, event.Category.String(),
		logAttrDurationMS, j.durationToMilliseconds(duration))

	return nil
}

// UsageCounts reports how often each legacy symbol was used, most frequent first.
func (j Journal) UsageCounts(ctx context.Context) ([]UsageCount, error) {
	sqlQuery, buildErr := j.buildUsageCountsQuery()
	if buildErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgBuildReportQueryFailed, logAttrError, buildErr.Error())
		}

		return nil, buildErr
	}

	rows, duration, queryErr := j.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer j.closeRows(rows)

	counts := make([]UsageCount, 0)

	for rows.Next() {
		var count UsageCount

		if scanErr := rows.Scan(&count.Category, &count.Message, &count.Count); scanErr != nil {
			if j.logger != nil {
				j.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
			}

			return nil, errors.Join(ErrScanningDBRowFailed, scanErr)
		}

		counts = append(counts, count)
	}

	j.logOperation(
		logMsgReportCompleted,
		logAttrRowCount, len(counts),
		logAttrDurationMS, j.durationToMilliseconds(duration))

	return counts, nil
}

// RecordedEvents returns the most recently recorded events, newest first,
// up to the given limit.
func (j Journal) RecordedEvents(ctx context.Context, limit uint) ([]RecordedEvent, error) {
	sqlQuery, buildErr := j.buildRecordedEventsQuery(limit)
	if buildErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgBuildReportQueryFailed, logAttrError, buildErr.Error())
		}

		return nil, buildErr
	}

	rows, duration, queryErr := j.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer j.closeRows(rows)

	events := make([]RecordedEvent, 0)

	for rows.Next() {
		var event RecordedEvent

		scanErr := rows.Scan(
			&event.ID, &event.Source, &event.Category, &event.Message,
			&event.File, &event.Line, &event.Details, &event.RecordedAt)
		if scanErr != nil {
			if j.logger != nil {
				j.logger.Error(logMsgScanRowFailed, logAttrError, scanErr.Error())
			}

			return nil, errors.Join(ErrScanningDBRowFailed, scanErr)
		}

		events = append(events, event)
	}

	j.logOperation(
		logMsgReportCompleted,
		logAttrRowCount, len(events),
		logAttrDurationMS, j.durationToMilliseconds(duration))

	return events, nil
}

func (j Journal) buildInsertQuery(event aliasing.Event) (sqlQueryString, error) {
	details := eventDetails{
		Message:  event.Message,
		Category: event.Category.String(),
	}

	if event.HasLocation {
		details.File = event.Location.File
		details.Line = event.Location.Line
	}

	detailsJSON, marshalErr := jsoniter.ConfigFastest.Marshal(details)
	if marshalErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, marshalErr)
	}

	record := goqu.Record{
		colID:         uuid.New().String(),
		colSource:     j.source,
		colCategory:   event.Category.String(),
		colMessage:    event.Message,
		colFile:       event.Location.File,
		colLine:       event.Location.Line,
		colDetails:    string(detailsJSON),
		colRecordedAt: time.Now().UTC(),
	}

	insertStmt := goqu.Dialect(dialectPostgres).
		Insert(j.tableName).
		Rows(record)

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j Journal) buildUsageCountsQuery() (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colCategory, colMessage, goqu.COUNT(goqu.Star()).As(aliasUseCount)).
		GroupBy(colCategory, colMessage).
		Order(goqu.I(aliasUseCount).Desc(), goqu.I(colMessage).Asc())

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

func (j Journal) buildRecordedEventsQuery(limit uint) (sqlQueryString, error) {
	selectStmt := goqu.Dialect(dialectPostgres).
		From(j.tableName).
		Select(colID, colSource, colCategory, colMessage, colFile, colLine, colDetails, colRecordedAt).
		Order(goqu.I(colRecordedAt).Desc()).
		Limit(limit)

	sqlQuery, _, toSQLErr := selectStmt.ToSQL()
	if toSQLErr != nil {
		return "", errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (j Journal) executeQuery(ctx context.Context, sqlQuery string) (
	adapters.DBRows,
	time.Duration,
	error,
) {

	start := time.Now()
	rows, queryErr := j.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	j.logQueryWithDuration(sqlQuery, logActionReport, duration)

	if queryErr != nil {
		if j.logger != nil {
			j.logger.Error(logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		}

		return nil, duration, errors.Join(ErrQueryingJournalFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows safely closes database rows and logs any errors.
func (j Journal) closeRows(rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		if j.logger != nil {
			j.logger.Warn(logMsgCloseRowsFailed, logAttrError, closeErr.Error())
		}
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level if the logger is configured.
func (j Journal) logQueryWithDuration(sqlQuery string, action string, duration time.Duration) {
	if j.logger != nil {
		j.logger.Debug(logMsgSQLExecuted+action, logAttrDurationMS, j.durationToMilliseconds(duration), logAttrQuery, sqlQuery)
	}
}

// logOperation logs operational information at info level if the logger is configured.
func (j Journal) logOperation(action string, args ...any) {
	if j.logger != nil {
		j.logger.Info(logMsgOperation+action, args...)
	}
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func (j Journal) durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// Compile-time check to ensure Journal implements the Sink interface.
var _ aliasing.Sink = Journal{}
