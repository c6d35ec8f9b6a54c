package spool

import (
	"context"
	"sync"
)

// Registry remembers which temporary paths the spooler produced.
// Implementations must be safe for concurrent use.
type Registry interface {
	Add(ctx context.Context, path string) error
	Has(ctx context.Context, path string) (bool, error)
	Remove(ctx context.Context, path string) error
}

// MemoryRegistry keeps spooled paths in process memory. It fits a single
// instance; use RedisRegistry when uploads and moves may hit different nodes.
type MemoryRegistry struct {
	mu    sync.RWMutex
	paths map[string]struct{}
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{paths: make(map[string]struct{})}
}

func (r *MemoryRegistry) Add(_ context.Context, path string) error {
	r.mu.Lock()
	r.paths[path] = struct{}{}
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) Has(_ context.Context, path string) (bool, error) {
	r.mu.RLock()
	_, ok := r.paths[path]
	r.mu.RUnlock()
	return ok, nil
}

func (r *MemoryRegistry) Remove(_ context.Context, path string) error {
	r.mu.Lock()
	delete(r.paths, path)
	r.mu.Unlock()
	return nil
}

// Len returns the number of tracked paths.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.paths)
}
