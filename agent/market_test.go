package agent

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseQuote(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		price    string
		currency string
	}{
		{"bare json", `{"price": 2.415, "currency": "MYR"}`, "2.415", "MYR"},
		{"fenced json", "```json\n{\"price\": 9.15, \"currency\": \"myr\"}\n```", "9.15", "MYR"},
		{"plain fence", "```\n{\"price\": 1.23, \"currency\": \"USD\"}\n```", "1.23", "USD"},
		{"price as string", `{"price": "0.5120", "currency": "SGD"}`, "0.512", "SGD"},
		{"no currency", `{"price": 100}`, "100", ""},
		{"zero price", `{"price": 0, "currency": "MYR"}`, "0", "MYR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := parseQuote(tt.reply)
			if err != nil {
				t.Fatalf("parseQuote() error = %v", err)
			}
			want, _ := decimal.NewFromString(tt.price)
			if !q.Price.Equal(want) {
				t.Errorf("Price = %s, want %s", q.Price, tt.price)
			}
			if q.Currency != tt.currency {
				t.Errorf("Currency = %q, want %q", q.Currency, tt.currency)
			}
		})
	}
}

func TestParseQuote_Errors(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  string
	}{
		{"model error reply", `{"error": "ticker is delisted"}`, "ticker is delisted"},
		{"not json", "the price is around RM 2.40", "not JSON"},
		{"no price field", `{"currency": "MYR"}`, "no price"},
		{"price not a number", `{"price": {"amount": 2}}`, "invalid price"},
		{"negative price", `{"price": -2.4, "currency": "MYR"}`, "negative price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseQuote(tt.reply)
			if err == nil {
				t.Fatal("parseQuote() expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestStripFence(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFence(tt.in); got != tt.want {
			t.Errorf("stripFence(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
