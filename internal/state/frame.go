package state

import (
	"sync"
	"time"
)

// FrameSnapshot is a consistent copy of the frame store.
type FrameSnapshot struct {
	Frame     string
	Writes    uint64
	UpdatedAt time.Time
}

// FrameStore holds the single current frame. Callers validate payloads before
// calling Write; the store itself accepts any string.
type FrameStore struct {
	mu        sync.RWMutex
	frame     string
	writes    uint64
	updatedAt time.Time

	now func() time.Time
}

func NewFrameStore() *FrameStore {
	return &FrameStore{now: time.Now}
}

// Write replaces the whole frame. Concurrent writers race and the last one to
// take the lock wins.
func (store *FrameStore) Write(payload string) {
	at := store.now()
	store.mu.Lock()
	store.frame = payload
	store.writes++
	store.updatedAt = at
	store.mu.Unlock()
}

// Read returns the current frame, or "" if nothing was written yet.
func (store *FrameStore) Read() string {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.frame
}

func (store *FrameStore) Snapshot() FrameSnapshot {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return FrameSnapshot{Frame: store.frame, Writes: store.writes, UpdatedAt: store.updatedAt}
}
