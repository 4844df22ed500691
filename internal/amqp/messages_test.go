package amqp

import (
	"testing"

	"finbook/internal/core"
)

func TestCurrencyChangeMessageEvent(t *testing.T) {
	ev := core.CurrencyChange{Code: "EUR", Symbol: "€", ConversionRate: 0.92}
	msg := NewCurrencyChangeMessage(ev)

	if msg.Timestamp.IsZero() {
		t.Fatalf("timestamp should be set")
	}
	if got := msg.Event(); got != ev {
		t.Fatalf("event round trip mismatch: got %+v, want %+v", got, ev)
	}
}

func TestCurrencyChangeMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := CurrencyChangeMessageFromJSON([]byte("not json")); err == nil {
		t.Fatalf("expected error for undecodable body")
	}
}
