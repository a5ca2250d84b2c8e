// Package journalwrapper provides test wrappers around the journal's
// supported database adapters.
//
// CreateWrapperWithTestConfig picks the adapter from the ADAPTER_TYPE
// environment variable (pgx.pool, sql.db, sqlx.db) and skips the test
// when the test database is not reachable.
package journalwrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"github.com/forgeworks/name-transition-go/aliasing/postgresjournal"
	"github.com/forgeworks/name-transition-go/testutil/postgresjournal/config"
)

// Adapter type constants
const (
	typePGXPool = "pgx.pool"
	typeSQLDB   = "sql.db"
	typeSQLXDB  = "sqlx.db"
)

const journalTableName = "deprecation_events"

const createJournalTableSQL = `
CREATE TABLE IF NOT EXISTS deprecation_events (
	id uuid PRIMARY KEY,
	source text NOT NULL,
	category text NOT NULL,
	message text NOT NULL,
	file text NOT NULL,
	line integer NOT NULL,
	details jsonb NOT NULL,
	recorded_at timestamptz NOT NULL
)`

// Wrapper interface to abstract over different adapter types
type Wrapper interface {
	GetJournal() postgresjournal.Journal
	SetupSchema(t testing.TB)
	CleanTable(t testing.TB)
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing
type PGXPoolWrapper struct {
	pool    *pgxpool.Pool
	journal postgresjournal.Journal
}

func (w *PGXPoolWrapper) GetJournal() postgresjournal.Journal {
	return w.journal
}

func (w *PGXPoolWrapper) SetupSchema(t testing.TB) {
	_, err := w.pool.Exec(context.Background(), createJournalTableSQL)
	assert.NoError(t, err, "error creating the journal table")
}

func (w *PGXPoolWrapper) CleanTable(t testing.TB) {
	_, err := w.pool.Exec(context.Background(), "TRUNCATE TABLE "+journalTableName)
	assert.NoError(t, err, "error cleaning up the journal table")
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing
type SQLDBWrapper struct {
	db      *sql.DB
	journal postgresjournal.Journal
}

func (w *SQLDBWrapper) GetJournal() postgresjournal.Journal {
	return w.journal
}

func (w *SQLDBWrapper) SetupSchema(t testing.TB) {
	_, err := w.db.Exec(createJournalTableSQL)
	assert.NoError(t, err, "error creating the journal table")
}

func (w *SQLDBWrapper) CleanTable(t testing.TB) {
	_, err := w.db.Exec("TRUNCATE TABLE " + journalTableName)
	assert.NoError(t, err, "error cleaning up the journal table")
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB-based testing
type SQLXWrapper struct {
	db      *sqlx.DB
	journal postgresjournal.Journal
}

func (w *SQLXWrapper) GetJournal() postgresjournal.Journal {
	return w.journal
}

func (w *SQLXWrapper) SetupSchema(t testing.TB) {
	_, err := w.db.Exec(createJournalTableSQL)
	assert.NoError(t, err, "error creating the journal table")
}

func (w *SQLXWrapper) CleanTable(t testing.TB) {
	_, err := w.db.Exec("TRUNCATE TABLE " + journalTableName)
	assert.NoError(t, err, "error cleaning up the journal table")
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates the appropriate wrapper based on the
// ADAPTER_TYPE environment variable, skipping the test when the test
// database is not reachable.
func CreateWrapperWithTestConfig(t testing.TB, options ...postgresjournal.Option) Wrapper {
	adapterTypeFromEnv := strings.ToLower(os.Getenv("ADAPTER_TYPE"))

	connectCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	switch adapterTypeFromEnv {
	case typePGXPool, "":
		dbConfig, err := config.PostgresPGXPoolTestConfig()
		assert.NoError(t, err, "error parsing DB pool config in test setup")

		connPool, err := pgxpool.NewWithConfig(connectCtx, dbConfig)
		assert.NoError(t, err, "error connecting to DB pool in test setup")

		if pingErr := connPool.Ping(connectCtx); pingErr != nil {
			connPool.Close()
			t.Skipf("skipping: test database not reachable: %s", pingErr)
		}

		journal, err := postgresjournal.NewJournalFromPGXPool(connPool, options...)
		assert.NoError(t, err, "error creating journal")

		return &PGXPoolWrapper{pool: connPool, journal: journal}

	case typeSQLDB:
		db, err := config.PostgresSQLDBTestConfig(connectCtx)
		if err != nil {
			t.Skipf("skipping: test database not reachable: %s", err)
		}

		journal, err := postgresjournal.NewJournalFromSQLDB(db, options...)
		assert.NoError(t, err, "error creating journal")

		return &SQLDBWrapper{db: db, journal: journal}

	case typeSQLXDB:
		db, err := config.PostgresSQLXTestConfig(connectCtx)
		if err != nil {
			t.Skipf("skipping: test database not reachable: %s", err)
		}

		journal, err := postgresjournal.NewJournalFromSQLX(db, options...)
		assert.NoError(t, err, "error creating journal")

		return &SQLXWrapper{db: db, journal: journal}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported wrapper type from env: %s", adapterTypeFromEnv))
	}
}

// CountRecordedEvents counts the rows in the journal table for the given wrapper
func CountRecordedEvents(t testing.TB, wrapper Wrapper) int {
	var cnt int
	var err error

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		row := w.pool.QueryRow(context.Background(), `SELECT count(*) FROM `+journalTableName)
		err = row.Scan(&cnt)

	case *SQLDBWrapper:
		row := w.db.QueryRow(`SELECT count(*) FROM ` + journalTableName)
		err = row.Scan(&cnt)

	case *SQLXWrapper:
		row := w.db.QueryRow(`SELECT count(*) FROM ` + journalTableName)
		err = row.Scan(&cnt)

	default:
		panic(fmt.Sprintf("unsupported wrapper type: %T", w))
	}

	assert.NoError(t, err, "error counting journal rows")
	return cnt
}
