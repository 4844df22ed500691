// Package tracker owns the in-memory transaction cache and the
// operations that move it: fetching from the authoritative store,
// optimistic patching after mutations, currency-change application and
// memoized summary aggregation.
package tracker

import (
	"context"
	"fmt"
	"sync"

	"finbook/internal/audit"
	"finbook/internal/core"
	"finbook/internal/currency"
	"finbook/internal/log"
	"finbook/internal/notify"
	"finbook/internal/session"
	"finbook/internal/store"
)

// Tracker is the owned state object behind a transaction view: the
// cached rows, the loading flag and the active display currency, with
// defined transitions instead of ambient mutation. The cache is a
// non-authoritative copy; the store-side rows are the source of truth.
type Tracker struct {
	store    store.Store
	audit    audit.Sink
	notifier notify.Notifier
	logger   *log.Logger

	mu       sync.Mutex
	cache    []core.Transaction
	currency core.DisplayCurrency
	rate     float64
	loading  bool

	// generation changes whenever cache contents or currency change;
	// the memoized summary is keyed on it.
	generation uint64
	summary    core.FinancialSummary
	summaryGen uint64
	summaryOK  bool

	// fetchSeq tags in-flight fetches so a slow, superseded response is
	// discarded instead of overwriting fresher data.
	fetchSeq uint64

	bus   *currency.Broadcaster
	subID int
	done  chan struct{}
}

// New creates a tracker with an empty cache. The initial display
// currency normally comes from the preference store; the conversion
// rate starts at 1 so DisplayAmount mirrors Amount until a currency
// event arrives.
func New(st store.Store, sink audit.Sink, notifier notify.Notifier, logger *log.Logger, initial core.DisplayCurrency) *Tracker {
	return &Tracker{
		store:    st,
		audit:    sink,
		notifier: notifier,
		logger:   logger.WithComponent(log.ComponentTracker),
		currency: initial,
		rate:     1,
	}
}

// Fetch replaces the cache with the owner's rows from the store,
// narrowed by r. Without an authenticated identity it does nothing and
// makes no store call. On failure the cache keeps its last-known-good
// contents.
func (t *Tracker) Fetch(ctx context.Context, r core.DateRange) error {
	owner, ok := session.UserFrom(ctx)
	if !ok {
		t.logger.Debug("fetch skipped, no active identity", log.FieldOperation, log.OpFetch)
		return nil
	}

	t.mu.Lock()
	t.fetchSeq++
	tag := t.fetchSeq
	t.loading = true
	t.mu.Unlock()

	rows, err := t.store.List(ctx, owner, r)

	t.mu.Lock()
	defer t.mu.Unlock()
	if tag == t.fetchSeq {
		t.loading = false
	}

	if err != nil {
		t.logger.ErrorContext(ctx, "fetch failed",
			log.FieldOperation, log.OpFetch,
			log.FieldOwner, owner,
			log.FieldError, err)
		t.notifier.Notify(ctx, notify.Negative, "Failed to load transactions")
		return fmt.Errorf("fetch transactions: %w", err)
	}

	if tag != t.fetchSeq {
		// A newer fetch has been issued since this one started; its
		// result is authoritative, this one is stale.
		t.logger.Debug("discarding stale fetch response",
			log.FieldOperation, log.OpFetch,
			log.FieldCount, len(rows))
		return nil
	}

	for i := range rows {
		rows[i].DisplayAmount = rows[i].Amount * t.rate
	}
	t.cache = rows
	t.generation++
	return nil
}

// Create submits a new transaction and prepends the store-assigned row
// to the cache. The cache is not re-sorted: a backdated creation stays
// at the front until the next Fetch.
func (t *Tracker) Create(ctx context.Context, d core.Draft) (*core.Transaction, error) {
	owner, ok := session.UserFrom(ctx)
	if !ok {
		t.logger.Debug("create skipped, no active identity", log.FieldOperation, log.OpCreate)
		return nil, nil
	}

	tx, err := t.store.Insert(ctx, owner, d)
	if err != nil {
		t.logger.ErrorContext(ctx, "create failed",
			log.FieldOperation, log.OpCreate,
			log.FieldOwner, owner,
			log.FieldError, err)
		t.notifier.Notify(ctx, notify.Negative, "Failed to add transaction")
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	t.mu.Lock()
	tx.DisplayAmount = tx.Amount * t.rate
	t.cache = append([]core.Transaction{*tx}, t.cache...)
	t.generation++
	t.mu.Unlock()

	t.appendAudit(ctx, owner, fmt.Sprintf("added %s of %.2f in %s", tx.Kind, tx.Amount, tx.Category))
	t.notifier.Notify(ctx, notify.Positive, "Transaction added")
	return tx, nil
}

// Update applies a partial change to an existing transaction and
// replaces the matching cache entry in place, position unchanged.
func (t *Tracker) Update(ctx context.Context, id string, p core.Patch) (*core.Transaction, error) {
	owner, ok := session.UserFrom(ctx)
	if !ok {
		t.logger.Debug("update skipped, no active identity", log.FieldOperation, log.OpUpdate)
		return nil, nil
	}

	tx, err := t.store.Update(ctx, id, p)
	if err != nil {
		t.logger.ErrorContext(ctx, "update failed",
			log.FieldOperation, log.OpUpdate,
			log.FieldTransactionID, id,
			log.FieldError, err)
		t.notifier.Notify(ctx, notify.Negative, "Failed to update transaction")
		return nil, fmt.Errorf("update transaction: %w", err)
	}

	t.mu.Lock()
	tx.DisplayAmount = tx.Amount * t.rate
	for i := range t.cache {
		if t.cache[i].ID == id {
			t.cache[i] = *tx
			break
		}
	}
	t.generation++
	t.mu.Unlock()

	t.appendAudit(ctx, owner, fmt.Sprintf("updated %s %s", tx.Kind, tx.ID))
	t.notifier.Notify(ctx, notify.Positive, "Transaction updated")
	return tx, nil
}

// Remove deletes a transaction and drops it from the cache.
func (t *Tracker) Remove(ctx context.Context, id string) error {
	owner, ok := session.UserFrom(ctx)
	if !ok {
		t.logger.Debug("remove skipped, no active identity", log.FieldOperation, log.OpRemove)
		return nil
	}

	if err := t.store.Delete(ctx, id); err != nil {
		t.logger.ErrorContext(ctx, "remove failed",
			log.FieldOperation, log.OpRemove,
			log.FieldTransactionID, id,
			log.FieldError, err)
		t.notifier.Notify(ctx, notify.Negative, "Failed to delete transaction")
		return fmt.Errorf("remove transaction: %w", err)
	}

	t.mu.Lock()
	for i := range t.cache {
		if t.cache[i].ID == id {
			t.cache = append(t.cache[:i], t.cache[i+1:]...)
			break
		}
	}
	t.generation++
	t.mu.Unlock()

	t.appendAudit(ctx, owner, fmt.Sprintf("deleted transaction %s", id))
	t.notifier.Notify(ctx, notify.Positive, "Transaction deleted")
	return nil
}

// ApplyCurrencyEvent switches the display currency and rewrites every
// cached entry's DisplayAmount. Presentation only: persisted amounts
// are untouched and no store call is made.
func (t *Tracker) ApplyCurrencyEvent(ev core.CurrencyChange) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.currency = core.DisplayCurrency{Code: ev.Code, Symbol: ev.Symbol}
	t.rate = ev.ConversionRate
	for i := range t.cache {
		t.cache[i].DisplayAmount = t.cache[i].Amount * t.rate
	}
	t.generation++

	t.logger.Info("display currency changed",
		log.FieldOperation, log.OpCurrency,
		log.FieldCurrencyCode, ev.Code,
		log.FieldRate, ev.ConversionRate)
}

// Summary returns the income/expense/balance totals for the current
// cache and currency. The result is memoized and only recomputed after
// a cache or currency change.
func (t *Tracker) Summary() core.FinancialSummary {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.summaryOK && t.summaryGen == t.generation {
		return t.summary
	}
	t.summary = core.Summarize(t.cache, t.currency)
	t.summaryGen = t.generation
	t.summaryOK = true
	return t.summary
}

// Transactions returns a copy of the cached rows in cache order.
func (t *Tracker) Transactions() []core.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]core.Transaction(nil), t.cache...)
}

// Loading reports whether a fetch is in flight.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Currency returns the active display currency.
func (t *Tracker) Currency() core.DisplayCurrency {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currency
}

// Start subscribes the tracker to the currency broadcaster for its
// lifetime. Events are applied on the subscription goroutine.
func (t *Tracker) Start(bus *currency.Broadcaster) {
	t.mu.Lock()
	if t.bus != nil {
		t.mu.Unlock()
		return
	}
	id, ch := bus.Subscribe()
	t.bus = bus
	t.subID = id
	t.done = make(chan struct{})
	t.mu.Unlock()

	go func() {
		defer close(t.done)
		for ev := range ch {
			t.ApplyCurrencyEvent(ev)
		}
	}()
}

// Stop releases the broadcast subscription and waits for the
// subscription goroutine to drain.
func (t *Tracker) Stop() {
	t.mu.Lock()
	bus, id, done := t.bus, t.subID, t.done
	t.bus = nil
	t.mu.Unlock()

	if bus == nil {
		return
	}
	bus.Unsubscribe(id)
	<-done
}

// appendAudit records the mutation in the activity log. Audit is best
// effort: the primary result has already been communicated to the
// user, so a failed append is logged and otherwise swallowed.
func (t *Tracker) appendAudit(ctx context.Context, owner, description string) {
	err := t.audit.Append(ctx, audit.Entry{
		Owner:        owner,
		ActivityType: audit.ActivityTransaction,
		Description:  description,
	})
	if err != nil {
		t.logger.WarnContext(ctx, "audit append failed",
			log.FieldOperation, log.OpAudit,
			log.FieldOwner, owner,
			log.FieldError, err)
	}
}
