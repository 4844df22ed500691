// Package audit defines the append-only activity log written after
// every successful mutation. The sink is best effort: a failed append
// never turns an already successful mutation into a failure.
package audit

import (
	"context"
	"sync"
)

// ActivityTransaction is the activity type recorded for transaction
// mutations.
const ActivityTransaction = "transaction"

// Entry is a single activity record.
type Entry struct {
	Owner        string `json:"owner"`
	ActivityType string `json:"activityType"`
	Description  string `json:"description"`
}

// Sink is an append-only destination for audit entries.
type Sink interface {
	Append(ctx context.Context, e Entry) error
}

// MemorySink collects entries in memory. Used by tests and as the
// default sink when no external log store is configured.
type MemorySink struct {
	mu      sync.Mutex
	entries []Entry
}

var _ Sink = (*MemorySink)(nil)

func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

func (s *MemorySink) Append(_ context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
	return nil
}

// Entries returns a copy of everything appended so far.
func (s *MemorySink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}
