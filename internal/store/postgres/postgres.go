// Package postgres implements the transaction Store port against
// PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE transactions (
//	    id          UUID PRIMARY KEY,
//	    owner_id    TEXT NOT NULL,
//	    kind        TEXT NOT NULL CHECK (kind IN ('income', 'expense')),
//	    amount      NUMERIC(14,2) NOT NULL CHECK (amount >= 0),
//	    category    TEXT NOT NULL,
//	    note        TEXT NOT NULL DEFAULT '',
//	    occurred_on DATE NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"finbook/internal/core"
	"finbook/internal/store"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open connects to the database and verifies the connection.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection, used by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

const txColumns = "id, owner_id, kind, amount, category, note, occurred_on, created_at"

func (s *Store) List(ctx context.Context, owner string, r core.DateRange) ([]core.Transaction, error) {
	query := `
		SELECT ` + txColumns + `
		FROM transactions
		WHERE owner_id = $1
		  AND ($2::date IS NULL OR occurred_on >= $2)
		  AND ($3::date IS NULL OR occurred_on <= $3)
		ORDER BY occurred_on DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, owner, nullDate(r.Start), nullDate(r.End))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return out, nil
}

func (s *Store) Insert(ctx context.Context, owner string, d core.Draft) (*core.Transaction, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO transactions (id, owner_id, kind, amount, category, note, occurred_on)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + txColumns

	row := s.db.QueryRowContext(ctx, query,
		uuid.NewString(), owner, string(d.Kind), d.Amount, d.Category, d.Note, d.OccurredOn.Time)
	t, err := scanTransaction(row)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return &t, nil
}

func (s *Store) Update(ctx context.Context, id string, p core.Patch) (*core.Transaction, error) {
	query := `
		UPDATE transactions
		SET kind        = COALESCE($2, kind),
		    amount      = COALESCE($3, amount),
		    category    = COALESCE($4, category),
		    note        = COALESCE($5, note),
		    occurred_on = COALESCE($6, occurred_on)
		WHERE id = $1
		RETURNING ` + txColumns

	row := s.db.QueryRowContext(ctx, query,
		id, kindPtr(p.Kind), p.Amount, p.Category, p.Note, datePtr(p.OccurredOn))
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	return &t, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t          core.Transaction
		kind       string
		occurredOn time.Time
	)
	err := row.Scan(&t.ID, &t.Owner, &kind, &t.Amount, &t.Category, &t.Note, &occurredOn, &t.CreatedAt)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Kind = core.Kind(kind)
	t.OccurredOn = core.Date{Time: occurredOn}
	return t, nil
}

func nullDate(d core.Date) sql.NullTime {
	if d.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: d.Time, Valid: true}
}

func kindPtr(k *core.Kind) *string {
	if k == nil {
		return nil
	}
	s := string(*k)
	return &s
}

func datePtr(d *core.Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}
