package workerapi

import (
	"github.com/forgeworks/name-transition-go/aliasing"
)

// Compat is the deprecation scope holding every legacy "slave" name this
// package still answers to. Dynamic consumers can resolve names through it;
// static consumers use the typed forwarders below.
var Compat = aliasing.NewScope("workerapi", aliasing.MustRenaming("worker", "slave"))

// PingSlave resolves a worker by its name.
//
// Deprecated: Use PingWorker instead.
var PingSlave func(registry *WorkerRegistry, workerName string) (string, error)

// NewSlaveRegistry creates a registry for the named coordinator.
//
// Deprecated: Use NewWorkerRegistry instead.
var NewSlaveRegistry func(coordinator string) (*WorkerRegistry, error)

// CountSlaves returns the number of registered workers.
//
// Deprecated: Use (*WorkerRegistry).CountWorkers instead.
var CountSlaves func(r *WorkerRegistry) int

// GetDefaultSlavePort returns the default worker port.
//
// Deprecated: Use DefaultWorkerPort instead.
var GetDefaultSlavePort func() int

func init() {
	mustBind := func(err error) {
		if err != nil {
			panic(err)
		}
	}

	var err error

	PingSlave, err = aliasing.LegacyFunc(Compat, "PingWorker", PingWorker)
	mustBind(err)

	NewSlaveRegistry, err = aliasing.LegacyConstructor(Compat, "WorkerRegistry", NewWorkerRegistry)
	mustBind(err)

	CountSlaves, err = aliasing.LegacyMethod(Compat, "CountWorkers", (*WorkerRegistry).CountWorkers)
	mustBind(err)

	GetDefaultSlavePort, err = aliasing.LegacyGetter(Compat, "DefaultWorkerPort", func() int {
		return DefaultWorkerPort
	}, aliasing.WithLegacyName("GetDefaultSlavePort"))
	mustBind(err)

	mustBind(Compat.BindValue("DefaultWorkerPort", DefaultWorkerPort))
}
