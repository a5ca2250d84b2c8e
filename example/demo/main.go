// Command demo walks through the workerapi compatibility surface: it calls the
// legacy "slave" names, shows the Deprecation Events they fire, and optionally
// records them into a Postgres journal when -dsn is given.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/forgeworks/name-transition-go/aliasing"
	"github.com/forgeworks/name-transition-go/aliasing/postgresjournal"
	"github.com/forgeworks/name-transition-go/example/workerapi"
)

// printSink writes every Deprecation Event to stdout and optionally forwards it
// to a journal.
type printSink struct {
	journal *postgresjournal.Journal
}

func (s printSink) Notify(event aliasing.Event) {
	if event.HasLocation {
		fmt.Printf("[%s] %s (%s:%d)\n", event.Category, event.Message, event.Location.File, event.Location.Line)
	} else {
		fmt.Printf("[%s] %s\n", event.Category, event.Message)
	}

	if s.journal != nil {
		s.journal.Notify(event)
	}
}

func main() {
	dsn := flag.String("dsn", "", "optional Postgres DSN for the deprecation journal")
	flag.Parse()

	journal := maybeOpenJournal(*dsn)
	aliasing.SetSink(printSink{journal: journal})

	// The old surface still works; every use is reported.
	registry, err := workerapi.NewSlaveRegistry("coordinator-1")
	if err != nil {
		log.Fatalf("creating registry failed: %v", err)
	}

	for _, name := range []string{"builder-1", "builder-2"} {
		if registerErr := registry.RegisterWorker(workerapi.WorkerInfo{Name: name}); registerErr != nil {
			log.Fatalf("registering %s failed: %v", name, registerErr)
		}
	}

	reply, err := workerapi.PingSlave(registry, "builder-1")
	if err != nil {
		log.Fatalf("ping failed: %v", err)
	}

	fmt.Println("ping reply:", reply)
	fmt.Println("registered workers:", workerapi.CountSlaves(registry))
	fmt.Println("default port:", workerapi.GetDefaultSlavePort())

	if port, lookupErr := workerapi.Compat.Value("DefaultSlavePort"); lookupErr == nil {
		fmt.Println("resolved through the scope:", port)
	}

	if journal != nil {
		printUsageCounts(journal)
	}
}

func maybeOpenJournal(dsn string) *postgresjournal.Journal {
	if dsn == "" {
		return nil
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Printf("journal disabled, connecting failed: %v", err)
		return nil
	}

	journal, err := postgresjournal.NewJournalFromPGXPool(pool,
		postgresjournal.WithSource("demo"))
	if err != nil {
		log.Printf("journal disabled: %v", err)
		return nil
	}

	return &journal
}

func printUsageCounts(journal *postgresjournal.Journal) {
	counts, err := journal.UsageCounts(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading usage counts failed: %v\n", err)
		return
	}

	fmt.Println("\nlegacy name usage so far:")
	for _, c := range counts {
		fmt.Printf("%6d  [%s] %s\n", c.Count, c.Category, c.Message)
	}
}
