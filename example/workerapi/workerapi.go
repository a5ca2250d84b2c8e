// Package workerapi is a compact demonstration of keeping a renamed API's old
// surface alive. The coordination API below uses "worker" terminology; an earlier
// release used "slave". compat.go binds the legacy names so code written against
// the old surface keeps working while every use is reported.
package workerapi

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// DefaultWorkerPort is the port workers are contacted on when a WorkerInfo does
// not carry its own.
const DefaultWorkerPort = 9989

var errEmptyWorkerName = errors.New("worker name must not be empty")

// WorkerInfo describes one registered worker.
type WorkerInfo struct {
	Name string
	Port int
	Tags []string
}

// WorkerRegistry tracks the workers known to a coordinator.
type WorkerRegistry struct {
	coordinator string
	mu          sync.RWMutex
	workers     map[string]WorkerInfo
}

// NewWorkerRegistry creates a registry for the named coordinator.
func NewWorkerRegistry(coordinator string) (*WorkerRegistry, error) {
	if coordinator == "" {
		return nil, errors.New("coordinator name must not be empty")
	}

	return &WorkerRegistry{
		coordinator: coordinator,
		workers:     make(map[string]WorkerInfo),
	}, nil
}

// RegisterWorker adds a worker to the registry, replacing any previous entry
// with the same name.
func (r *WorkerRegistry) RegisterWorker(info WorkerInfo) error {
	if info.Name == "" {
		return errEmptyWorkerName
	}

	if info.Port == 0 {
		info.Port = DefaultWorkerPort
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.workers[info.Name] = info

	return nil
}

// CountWorkers returns the number of registered workers.
func (r *WorkerRegistry) CountWorkers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.workers)
}

// WorkerNames returns the registered worker names in sorted order.
func (r *WorkerRegistry) WorkerNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.workers))
	for name := range r.workers {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// PingWorker reports whether the named worker is registered and reachable.
// The demo has no transport, so reachable means registered.
func PingWorker(registry *WorkerRegistry, workerName string) (string, error) {
	registry.mu.RLock()
	info, found := registry.workers[workerName]
	registry.mu.RUnlock()

	if !found {
		return "", fmt.Errorf("worker %q is not registered", workerName)
	}

	return fmt.Sprintf("%s:%d is alive", info.Name, info.Port), nil
}
