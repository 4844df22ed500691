// Package store defines the port to the authoritative transaction
// store. Adapters live in subpackages; the tracker depends only on the
// interface here.
package store

import (
	"context"
	"errors"

	"finbook/internal/core"
)

// ErrNotFound is returned by Update and Delete when no row matches the
// given identifier.
var ErrNotFound = errors.New("transaction not found")

// Store is the row-level contract of the authoritative store.
//
// List returns the owner's transactions ordered by OccurredOn
// descending (ties broken by CreatedAt descending), narrowed by the
// range's inclusive bounds where present. Insert assigns ID and
// CreatedAt. Update applies the patch's non-nil fields and returns the
// resulting row. DisplayAmount is presentation state and is never read
// or written by an adapter.
type Store interface {
	List(ctx context.Context, owner string, r core.DateRange) ([]core.Transaction, error)
	Insert(ctx context.Context, owner string, d core.Draft) (*core.Transaction, error)
	Update(ctx context.Context, id string, p core.Patch) (*core.Transaction, error)
	Delete(ctx context.Context, id string) error
}
