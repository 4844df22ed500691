// Package memory is an in-process Store adapter with the same ordering
// and filter semantics as the SQL adapters. It backs tests and the
// default local backend.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"finbook/internal/core"
	"finbook/internal/store"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction

	// now is swappable so tests get deterministic CreatedAt values.
	now func() time.Time
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{now: time.Now}
}

// NewWithClock creates a store whose CreatedAt values come from clock.
func NewWithClock(clock func() time.Time) *Store {
	return &Store{now: clock}
}

func (s *Store) List(_ context.Context, owner string, r core.DateRange) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []core.Transaction
	for _, t := range s.items {
		if t.Owner != owner {
			continue
		}
		if !r.Contains(t.OccurredOn) {
			continue
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredOn.Equal(out[j].OccurredOn.Time) {
			return out[i].OccurredOn.After(out[j].OccurredOn.Time)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) Insert(_ context.Context, owner string, d core.Draft) (*core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t := core.Transaction{
		ID:         uuid.NewString(),
		Owner:      owner,
		Kind:       d.Kind,
		Amount:     d.Amount,
		Category:   d.Category,
		Note:       d.Note,
		OccurredOn: d.OccurredOn,
		CreatedAt:  s.now().UTC(),
	}
	s.items = append(s.items, t)
	return &t, nil
}

func (s *Store) Update(_ context.Context, id string, p core.Patch) (*core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.items {
		if t.ID != id {
			continue
		}
		s.items[i] = p.Apply(t)
		updated := s.items[i]
		return &updated, nil
	}
	return nil, store.ErrNotFound
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, t := range s.items {
		if t.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}
