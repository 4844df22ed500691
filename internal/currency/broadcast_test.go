package currency

import (
	"testing"
	"time"

	"finbook/internal/core"
)

func TestPublishReachesAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	_, ch1 := b.Subscribe()
	_, ch2 := b.Subscribe()

	ev := core.CurrencyChange{Code: "EUR", Symbol: "€", ConversionRate: 0.92}
	b.Publish(ev)

	for i, ch := range []<-chan core.CurrencyChange{ch1, ch2} {
		select {
		case got := <-ch:
			if got != ev {
				t.Fatalf("subscriber %d got %+v, want %+v", i, got, ev)
			}
		case <-time.After(time.Second):
			t.Fatalf("subscriber %d never received the event", i)
		}
	}
}

func TestPublishOrderPerSubscriber(t *testing.T) {
	b := NewBroadcaster()
	_, ch := b.Subscribe()

	events := []core.CurrencyChange{
		{Code: "EUR", ConversionRate: 0.9},
		{Code: "GBP", ConversionRate: 0.8},
		{Code: "JPY", ConversionRate: 150},
	}
	for _, ev := range events {
		b.Publish(ev)
	}

	for i, want := range events {
		got := <-ch
		if got != want {
			t.Fatalf("event %d: got %+v, want %+v", i, got, want)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	id, ch := b.Subscribe()

	b.Unsubscribe(id)

	if _, open := <-ch; open {
		t.Fatalf("channel should be closed after unsubscribe")
	}
	if b.Subscribers() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", b.Subscribers())
	}

	// Publishing after unsubscribe must not panic.
	b.Publish(core.CurrencyChange{Code: "EUR"})

	// Unsubscribing twice is a no-op.
	b.Unsubscribe(id)
}

func TestSlowSubscriberDropsOldest(t *testing.T) {
	b := NewBroadcaster()
	_, ch := b.Subscribe()

	for i := 0; i < subscriberBuffer+3; i++ {
		b.Publish(core.CurrencyChange{ConversionRate: float64(i)})
	}

	// The buffer holds the most recent events; the oldest were dropped.
	first := <-ch
	if first.ConversionRate != 3 {
		t.Fatalf("expected oldest surviving event to be 3, got %v", first.ConversionRate)
	}
}
