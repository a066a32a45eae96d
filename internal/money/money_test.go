package money

import "testing"

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"euro code", "Amount due: 120 EUR", "€"},
		{"euro symbol", "Total: €99.00", "€"},
		{"pound symbol", "Total: £50", "£"},
		{"gbp code", "Balance due 75 GBP", "£"},
		{"dollar sign", "Total: $19.99", "$"},
		{"danish krone", "Beløb: 500 kr", "DKK"},
		{"yen", "Total: ¥1000", "¥"},
		{"no hint defaults to dollar", "Totale: 100", "$"},
		{"empty defaults to dollar", "", "$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCurrency(tt.text); got != tt.want {
				t.Errorf("DetectCurrency(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestDetectCurrencyEuroBeatsDollar(t *testing.T) {
	// Both hints present: the € pattern is tested before the greedy $ one.
	if got := DetectCurrency("Price in EUR, converted from dollars"); got != "€" {
		t.Errorf("Expected €, got %q", got)
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"european grouping", "1.234,56", 1234.56},
		{"us grouping", "1,234.56", 1234.56},
		{"european with symbol", "€1.234,56", 1234.56},
		{"us with symbol", "$1,234.56", 1234.56},
		{"comma decimal only", "12,50", 12.5},
		{"dot decimal only", "12.50", 12.5},
		{"plain integer", "1234", 1234},
		{"trailing currency code", "120.00 GBP", 120},
		{"missing sentinel", "—", 0},
		{"dash", "-", 0},
		{"empty", "", 0},
		{"garbage", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAmount(tt.in); got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
