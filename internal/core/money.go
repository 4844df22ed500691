// Package core holds the domain types and the pure computations over
// them: money formatting and financial summary aggregation.
package core

import (
	"fmt"
	"strings"
)

// FormatAmount renders a monetary value as the currency symbol followed
// by the number with two fixed decimal places and comma group
// separators, locale-independent.
//
// Examples:
//
//	FormatAmount("$", 60) -> "$60.00"
//	FormatAmount("€", 1234567.891) -> "€1,234,567.89"
func FormatAmount(symbol string, v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(symbol)
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
		if len(intPart) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(intPart); i += 3 {
		b.WriteString(intPart[i : i+3])
		if i+3 < len(intPart) {
			b.WriteByte(',')
		}
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}
