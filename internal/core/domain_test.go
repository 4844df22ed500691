package core

import (
	"encoding/json"
	"testing"
	"time"
)

func TestKindValidate(t *testing.T) {
	if err := Income.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Expense.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Kind("transfer").Validate(); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestDraftValidate(t *testing.T) {
	good := Draft{
		Kind:       Expense,
		Amount:     25,
		Category:   "food",
		OccurredOn: NewDate(2024, 1, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Draft{
		{Kind: "other", Amount: 1, Category: "c", OccurredOn: NewDate(2024, 1, 5)},
		{Kind: Income, Amount: -1, Category: "c", OccurredOn: NewDate(2024, 1, 5)},
		{Kind: Income, Amount: 1, Category: "  ", OccurredOn: NewDate(2024, 1, 5)},
		{Kind: Income, Amount: 1, Category: "c"}, // zero date
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: NewDate(2024, 1, 1), End: NewDate(2024, 1, 31)}
	cases := []struct {
		d  Date
		in bool
	}{
		{NewDate(2024, 1, 1), true},  // inclusive lower bound
		{NewDate(2024, 1, 31), true}, // inclusive upper bound
		{NewDate(2024, 1, 15), true},
		{NewDate(2023, 12, 31), false},
		{NewDate(2024, 2, 1), false},
	}
	for i, tc := range cases {
		if got := r.Contains(tc.d); got != tc.in {
			t.Fatalf("case %d: Contains(%s) = %v, want %v", i, tc.d, got, tc.in)
		}
	}

	open := DateRange{}
	if !open.Contains(NewDate(1900, 1, 1)) {
		t.Fatalf("open range should contain everything")
	}

	lower := DateRange{Start: NewDate(2024, 6, 1)}
	if lower.Contains(NewDate(2024, 5, 31)) {
		t.Fatalf("date before open-ended start should be excluded")
	}
	if !lower.Contains(NewDate(2030, 1, 1)) {
		t.Fatalf("open end should be unbounded")
	}
}

func TestPatchApply(t *testing.T) {
	orig := Transaction{
		ID:         "t1",
		Owner:      "u1",
		Kind:       Expense,
		Amount:     40,
		Category:   "food",
		Note:       "lunch",
		OccurredOn: NewDate(2024, 1, 5),
		CreatedAt:  time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC),
	}

	amount := 55.5
	cat := "groceries"
	got := Patch{Amount: &amount, Category: &cat}.Apply(orig)

	if got.Amount != 55.5 || got.Category != "groceries" {
		t.Fatalf("patched fields not applied: %+v", got)
	}
	if got.ID != orig.ID || got.Owner != orig.Owner || !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("immutable fields changed: %+v", got)
	}
	if got.Kind != orig.Kind || got.Note != orig.Note || !got.OccurredOn.Equal(orig.OccurredOn.Time) {
		t.Fatalf("unpatched fields changed: %+v", got)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, 1, 5)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-01-05"` {
		t.Fatalf("unexpected encoding %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}
