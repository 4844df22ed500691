package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"finbook/internal/core"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "prefs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDisplayCurrencyDefault(t *testing.T) {
	s := openTemp(t)

	cur, err := s.DisplayCurrency(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if cur != DefaultCurrency {
		t.Fatalf("expected default currency, got %+v", cur)
	}
}

func TestSetDisplayCurrencyRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	want := core.DisplayCurrency{Code: "EUR", Symbol: "€"}
	if err := s.SetDisplayCurrency(ctx, want); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.DisplayCurrency(ctx)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, want)
	}

	// Overwrite keeps a single row per key.
	want = core.DisplayCurrency{Code: "GBP", Symbol: "£"}
	if err := s.SetDisplayCurrency(ctx, want); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = s.DisplayCurrency(ctx)
	if err != nil {
		t.Fatalf("read after overwrite: %v", err)
	}
	if got != want {
		t.Fatalf("overwrite mismatch: got %+v, want %+v", got, want)
	}
}
