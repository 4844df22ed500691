// Package backend builds the configured store and audit adapters.
package backend

import (
	"context"
	"fmt"

	"finbook/internal/audit"
	"finbook/internal/config"
	"finbook/internal/store"
	"finbook/internal/store/memory"
	"finbook/internal/store/postgres"
)

// CleanupFunc releases the resources behind a backend.
type CleanupFunc func() error

// Result bundles the constructed adapters with their cleanup.
type Result struct {
	Store   store.Store
	Audit   audit.Sink
	Cleanup CleanupFunc
}

func noCleanup() error { return nil }

// Build creates the store and audit sink selected by cfg.
func Build(ctx context.Context, cfg *config.Config) (*Result, error) {
	res := &Result{Cleanup: noCleanup}

	switch cfg.StoreBackend {
	case "memory":
		res.Store = memory.New()
	case "postgres":
		pg, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		res.Store = pg
		res.Cleanup = pg.Close
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	switch cfg.AuditSink {
	case "memory":
		res.Audit = audit.NewMemorySink()
	case "sheets":
		sink, err := audit.NewSheetsSinkFromEnv(ctx)
		if err != nil {
			res.Cleanup()
			return nil, fmt.Errorf("create sheets audit sink: %w", err)
		}
		res.Audit = sink
	default:
		res.Cleanup()
		return nil, fmt.Errorf("unknown audit sink %q", cfg.AuditSink)
	}

	return res, nil
}
