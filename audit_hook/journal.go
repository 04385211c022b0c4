package audithook

import (
	"context"
	"sync"
	"time"

	"github.com/xraph/bullion/id"
)

// Journal is an append-only, in-process Recorder. Entries are kept newest
// first, matching how the activity log is shown.
type Journal struct {
	mu      sync.RWMutex
	entries []AuditEvent
	limit   int
}

// NewJournal returns an empty journal. A positive limit bounds the number of
// retained entries; the oldest are dropped first.
func NewJournal(limit int) *Journal {
	return &Journal{limit: limit}
}

// Record implements Recorder. Missing IDs and timestamps are filled in.
func (j *Journal) Record(_ context.Context, event *AuditEvent) error {
	e := *event
	if e.ID.IsNil() {
		e.ID = id.NewActivityID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = append([]AuditEvent{e}, j.entries...)
	if j.limit > 0 && len(j.entries) > j.limit {
		j.entries = j.entries[:j.limit]
	}
	return nil
}

// Entries returns a copy of the journal, newest first.
func (j *Journal) Entries() []AuditEvent {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]AuditEvent, len(j.entries))
	copy(out, j.entries)
	return out
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Restore replaces the journal contents, for reloading persisted entries.
func (j *Journal) Restore(entries []AuditEvent) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries = make([]AuditEvent, len(entries))
	copy(j.entries, entries)
	if j.limit > 0 && len(j.entries) > j.limit {
		j.entries = j.entries[:j.limit]
	}
}
