// Package prefs persists the user's display preferences in a small
// local sqlite database. The display currency is read once at startup
// and rewritten when the user picks a different currency.
package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"finbook/internal/core"
)

const displayCurrencyKey = "display_currency"

// DefaultCurrency is used when no preference has been stored yet.
var DefaultCurrency = core.DisplayCurrency{Code: "USD", Symbol: "$"}

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create prefs directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open prefs database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping prefs database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run prefs migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// DisplayCurrency returns the stored currency preference, or
// DefaultCurrency when none has been set.
func (s *Store) DisplayCurrency(ctx context.Context) (core.DisplayCurrency, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, displayCurrencyKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultCurrency, nil
	}
	if err != nil {
		return core.DisplayCurrency{}, fmt.Errorf("read display currency: %w", err)
	}

	var cur core.DisplayCurrency
	if err := json.Unmarshal([]byte(raw), &cur); err != nil {
		return core.DisplayCurrency{}, fmt.Errorf("decode display currency: %w", err)
	}
	return cur, nil
}

// SetDisplayCurrency stores the currency preference.
func (s *Store) SetDisplayCurrency(ctx context.Context, cur core.DisplayCurrency) error {
	raw, err := json.Marshal(cur)
	if err != nil {
		return fmt.Errorf("encode display currency: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO preferences (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, displayCurrencyKey, string(raw))
	if err != nil {
		return fmt.Errorf("write display currency: %w", err)
	}
	return nil
}
