package cli

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234.5", "€", "€1234.50"},
		{"0", "€", "€0.00"},
		{"-12.345", "€", "€-12.35"},
		{"7", "", "€7.00"},
		{"3.1", "$", "$3.10"},
	}
	for _, tt := range tests {
		if got := FormatAmount(decimal.RequireFromString(tt.amount), tt.currency); got != tt.want {
			t.Errorf("FormatAmount(%s, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestFormatSigned(t *testing.T) {
	v := decimal.RequireFromString("20")
	if got := FormatSigned(v, true, "€"); got != "-€20.00" {
		t.Errorf("expense = %q", got)
	}
	if got := FormatSigned(v, false, "€"); got != "+€20.00" {
		t.Errorf("income = %q", got)
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hola", 10, "hola"},
		{"hola", 4, "hola"},
		{"hola mundo", 5, "hola…"},
		{"charlas y talleres", 8, "charlas…"},
		{"niño", 3, "ni…"},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := Clip(tt.in, tt.n); got != tt.want {
			t.Errorf("Clip(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
