package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind is the two-valued transaction classification.
	Kind string

	// Date is a calendar date with no time component.
	Date struct {
		time.Time
	}

	// Transaction is a row of the authoritative store plus the
	// presentation-only DisplayAmount projection.
	Transaction struct {
		ID            string    `json:"id"`
		Owner         string    `json:"owner"`
		Kind          Kind      `json:"kind"`
		Amount        float64   `json:"amount"`
		Category      string    `json:"category"`
		Note          string    `json:"note,omitempty"`
		OccurredOn    Date      `json:"occurredOn"`
		CreatedAt     time.Time `json:"createdAt"`
		DisplayAmount float64   `json:"displayAmount,omitempty"`
	}

	// Draft carries the caller-supplied fields of a new transaction.
	// ID, owner and creation timestamp are assigned elsewhere.
	Draft struct {
		Kind       Kind
		Amount     float64
		Category   string
		Note       string
		OccurredOn Date
	}

	// Patch is a partial update. Nil fields are left unchanged.
	// Identifier, owner and creation timestamp are immutable and have
	// no corresponding field here.
	Patch struct {
		Kind       *Kind
		Amount     *float64
		Category   *string
		Note       *string
		OccurredOn *Date
	}

	// DateRange bounds OccurredOn inclusively on either side. A zero
	// Date means unbounded on that side.
	DateRange struct {
		Start Date
		End   Date
	}

	// DisplayCurrency describes how monetary values are rendered.
	DisplayCurrency struct {
		Code   string `json:"code"`
		Symbol string `json:"symbol"`
	}

	// CurrencyChange is the broadcast payload observed when the user
	// picks a different display currency.
	CurrencyChange struct {
		Code           string  `json:"code"`
		Symbol         string  `json:"symbol"`
		ConversionRate float64 `json:"conversionRate"`
	}
)

var (
	ErrInvalidKind   = errors.New("invalid kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyCategory = errors.New("empty category")
	ErrZeroDate      = errors.New("date cannot be zero")
)

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

const dateLayout = "2006-01-02"

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrZeroDate
	}
	return nil
}

func (d Draft) Validate() error {
	if err := d.Kind.Validate(); err != nil {
		return err
	}
	if d.Amount < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if err := d.OccurredOn.Validate(); err != nil {
		return err
	}
	return nil
}

// day truncates to date precision in UTC so bounds compare on the date
// portion regardless of how the Date was built.
func day(d Date) time.Time {
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// Contains reports whether d falls inside the range, inclusive on both
// ends. Zero bounds are open.
func (r DateRange) Contains(d Date) bool {
	v := day(d)
	if !r.Start.IsZero() && v.Before(day(r.Start)) {
		return false
	}
	if !r.End.IsZero() && v.After(day(r.End)) {
		return false
	}
	return true
}

// Apply returns a copy of t with the patch's non-nil fields set.
func (p Patch) Apply(t Transaction) Transaction {
	if p.Kind != nil {
		t.Kind = *p.Kind
	}
	if p.Amount != nil {
		t.Amount = *p.Amount
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Note != nil {
		t.Note = *p.Note
	}
	if p.OccurredOn != nil {
		t.OccurredOn = *p.OccurredOn
	}
	return t
}
