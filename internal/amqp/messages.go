package amqp

import (
	"encoding/json"
	"time"

	"finbook/internal/core"
)

// CurrencyChangeMessage is the wire form of a display currency change.
// The conversion rate rescales cached display amounts only; persisted
// amounts are never rewritten.
type CurrencyChangeMessage struct {
	Code           string    `json:"code"`
	Symbol         string    `json:"symbol"`
	ConversionRate float64   `json:"conversionRate"`
	Timestamp      time.Time `json:"timestamp"`
}

// NewCurrencyChangeMessage wraps a domain event for publishing.
func NewCurrencyChangeMessage(ev core.CurrencyChange) *CurrencyChangeMessage {
	return &CurrencyChangeMessage{
		Code:           ev.Code,
		Symbol:         ev.Symbol,
		ConversionRate: ev.ConversionRate,
		Timestamp:      time.Now(),
	}
}

// Event converts the message back to its domain form.
func (m *CurrencyChangeMessage) Event() core.CurrencyChange {
	return core.CurrencyChange{
		Code:           m.Code,
		Symbol:         m.Symbol,
		ConversionRate: m.ConversionRate,
	}
}

// ToJSON converts the message to JSON bytes.
func (m *CurrencyChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CurrencyChangeMessageFromJSON creates a message from JSON bytes.
func CurrencyChangeMessageFromJSON(data []byte) (*CurrencyChangeMessage, error) {
	var msg CurrencyChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
