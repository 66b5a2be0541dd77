package service

import (
	"sync"

	"golang.org/x/sync/semaphore"
)

// uploadGuard admits at most one in-flight upload per key (submitter or
// trustee identity). Keyed semaphores keep one slow upload from blocking
// unrelated submitters, which a process-wide flag would.
type uploadGuard struct {
	mu   sync.Mutex
	sems map[string]*guardEntry
}

// guardEntry pairs a key's semaphore with a refcount of goroutines currently
// holding or contending for it, so idle entries can be evicted.
type guardEntry struct {
	sem  *semaphore.Weighted
	refs int
}

func newUploadGuard() *uploadGuard {
	return &uploadGuard{sems: make(map[string]*guardEntry)}
}

// tryAcquire claims the key's slot without blocking. On success it returns a
// release func the caller must invoke when the upload finishes.
func (g *uploadGuard) tryAcquire(key string) (func(), bool) {
	g.mu.Lock()
	e, ok := g.sems[key]
	if !ok {
		e = &guardEntry{sem: semaphore.NewWeighted(1)}
		g.sems[key] = e
	}
	e.refs++
	g.mu.Unlock()

	if !e.sem.TryAcquire(1) {
		g.unref(key, e)
		return nil, false
	}
	return func() {
		e.sem.Release(1)
		g.unref(key, e)
	}, true
}

// unref drops one reference and evicts the entry once nobody holds or
// contends for it, so the map does not grow unbounded with one entry per
// submitter ever seen.
func (g *uploadGuard) unref(key string, e *guardEntry) {
	g.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(g.sems, key)
	}
	g.mu.Unlock()
}
