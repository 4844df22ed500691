package core

import "testing"

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		symbol string
		v      float64
		want   string
	}{
		{"$", 60, "$60.00"},
		{"$", 0, "$0.00"},
		{"$", 999.999, "$1,000.00"}, // rounds through the group boundary
		{"€", 1234.5, "€1,234.50"},
		{"€", 1234567.891, "€1,234,567.89"},
		{"$", -40, "$-40.00"},
		{"$", -1234.56, "$-1,234.56"},
		{"£", 100, "£100.00"},
	}
	for i, tc := range cases {
		if got := FormatAmount(tc.symbol, tc.v); got != tc.want {
			t.Fatalf("case %d: FormatAmount(%q, %v) = %q, want %q", i, tc.symbol, tc.v, got, tc.want)
		}
	}
}
