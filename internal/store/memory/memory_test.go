package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"finbook/internal/core"
	"finbook/internal/store"
)

func seeded(t *testing.T) (*Store, []core.Transaction) {
	t.Helper()
	clock := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := NewWithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	drafts := []core.Draft{
		{Kind: core.Income, Amount: 100, Category: "salary", OccurredOn: core.NewDate(2024, 1, 10)},
		{Kind: core.Expense, Amount: 40, Category: "food", OccurredOn: core.NewDate(2024, 1, 20)},
		{Kind: core.Expense, Amount: 15, Category: "transport", OccurredOn: core.NewDate(2024, 2, 5)},
	}
	var created []core.Transaction
	for _, d := range drafts {
		tx, err := s.Insert(context.Background(), "u1", d)
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
		created = append(created, *tx)
	}
	if _, err := s.Insert(context.Background(), "u2", core.Draft{
		Kind: core.Expense, Amount: 9, Category: "other", OccurredOn: core.NewDate(2024, 1, 15),
	}); err != nil {
		t.Fatalf("insert u2: %v", err)
	}
	return s, created
}

func TestListOrderingAndOwnerScope(t *testing.T) {
	s, _ := seeded(t)

	got, err := s.List(context.Background(), "u1", core.DateRange{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 rows for u1, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].OccurredOn.After(got[i-1].OccurredOn.Time) {
			t.Fatalf("rows not in descending date order: %v before %v", got[i-1].OccurredOn, got[i].OccurredOn)
		}
	}
	for _, tx := range got {
		if tx.Owner != "u1" {
			t.Fatalf("foreign row leaked: %+v", tx)
		}
	}
}

func TestListDateRangeInclusive(t *testing.T) {
	s, _ := seeded(t)

	got, err := s.List(context.Background(), "u1", core.DateRange{
		Start: core.NewDate(2024, 1, 10),
		End:   core.NewDate(2024, 1, 20),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("inclusive bounds should match 2 rows, got %d", len(got))
	}
}

func TestInsertValidates(t *testing.T) {
	s := New()
	_, err := s.Insert(context.Background(), "u1", core.Draft{Kind: "bad"})
	if err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestUpdate(t *testing.T) {
	s, created := seeded(t)

	amount := 45.0
	got, err := s.Update(context.Background(), created[1].ID, core.Patch{Amount: &amount})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Amount != 45 || got.Category != created[1].Category {
		t.Fatalf("unexpected row after update: %+v", got)
	}

	if _, err := s.Update(context.Background(), "missing", core.Patch{}); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	s, created := seeded(t)

	if err := s.Delete(context.Background(), created[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := s.List(context.Background(), "u1", core.DateRange{})
	if len(got) != 2 {
		t.Fatalf("expected 2 rows after delete, got %d", len(got))
	}

	if err := s.Delete(context.Background(), created[0].ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
