// Package postgresjournal provides a PostgreSQL-backed audit journal for
// Deprecation Events.
//
// The Journal is an aliasing.Sink: install it process-wide (or wrap it in a sink
// that also logs) and every use of a legacy name is recorded as a row in a
// Postgres table. The read side answers the migration question "which legacy
// names are still used, and how often?" without grepping logs.
//
// The journal supports three database connection types through an internal
// adapter layer: pgxpool.Pool, sql.DB, and sqlx.DB. Statements are built with
// goqu; event details are serialized with json-iterator.
//
// Expected table shape:
//
//	CREATE TABLE deprecation_events (
//	    id          UUID PRIMARY KEY,
//	    source      TEXT NOT NULL DEFAULT '',
//	    category    TEXT NOT NULL,
//	    message     TEXT NOT NULL,
//	    file        TEXT NOT NULL DEFAULT '',
//	    line        INTEGER NOT NULL DEFAULT 0,
//	    details     JSONB NOT NULL,
//	    recorded_at TIMESTAMPTZ NOT NULL
//	);
//
// Common usage pattern:
//
//	journal, err := postgresjournal.NewJournalFromPGXPool(pool,
//		postgresjournal.WithSource("coordinator"),
//		postgresjournal.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	aliasing.SetSink(journal)
//
//	counts, err := journal.UsageCounts(ctx)
package postgresjournal
