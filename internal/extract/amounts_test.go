package extract

import (
	"strings"
	"testing"

	"invoice-audit/constants"
)

func TestValidateMath(t *testing.T) {
	tests := []struct {
		name                          string
		sub, vat, total, disc, ship   float64
		want                          bool
	}{
		{"exact", 100, 20, 120, 0, 0, true},
		{"within tolerance", 100, 20, 120.04, 0, 0, true},
		{"off by thirty", 100, 20, 150, 0, 0, false},
		{"no total is vacuously valid", 100, 20, 0, 0, 0, true},
		{"no components is vacuously valid", 0, 0, 50, 0, 0, true},
		{"discount applied", 100, 20, 115, 5, 0, true},
		{"shipping applied", 100, 20, 130, 0, 10, true},
		{"printed total ignores discount", 100, 20, 120, 5, 0, true},
		{"vat only", 0, 20, 20, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := validateMath(tt.sub, tt.vat, tt.total, tt.disc, tt.ship)
			if got != tt.want {
				t.Errorf("validateMath(%v,%v,%v,%v,%v) = %v, want %v",
					tt.sub, tt.vat, tt.total, tt.disc, tt.ship, got, tt.want)
			}
		})
	}
}

func TestValidateMathNote(t *testing.T) {
	valid, note := validateMath(100, 20, 150, 0, 0)
	if valid {
		t.Fatal("Expected invalid math")
	}
	if !strings.Contains(note, "120.00") || !strings.Contains(note, "150.00") {
		t.Errorf("Note should show expected and actual totals: %q", note)
	}

	valid, note = validateMath(100, 20, 120, 0, 0)
	if !valid {
		t.Fatal("Expected valid math")
	}
	if !strings.Contains(note, "Subtotal + VAT = Total") {
		t.Errorf("Note = %q", note)
	}
}

func TestExtractAmount(t *testing.T) {
	text := "Subtotal: 100.00\nVAT: 20.00\nAmount due: £120.00"

	if got := extractAmount(text, []string{"Subtotal"}); got != "100.00" {
		t.Errorf("subtotal = %q", got)
	}
	if got := extractAmount(text, []string{"Total", `Amount\s*due`}); got != "120.00" {
		t.Errorf("total = %q", got)
	}
	if got := extractAmount(text, []string{"Discount"}); got != constants.Missing {
		t.Errorf("discount = %q, want missing sentinel", got)
	}
}

func TestExtractAmountRejectsZero(t *testing.T) {
	if got := extractAmount("Discount: 0.00", []string{"Discount"}); got != constants.Missing {
		t.Errorf("Zero amounts must not count as found, got %q", got)
	}
}

func TestExtractVatRate(t *testing.T) {
	if got := extractVatRate("includes 25% VAT"); got != "25%" {
		t.Errorf("vat rate = %q", got)
	}
	if got := extractVatRate("MwSt @ 19%"); got != "19%" {
		t.Errorf("vat rate = %q", got)
	}
	if got := extractVatRate("no rate here"); got != constants.Missing {
		t.Errorf("vat rate = %q, want missing sentinel", got)
	}
}

func TestExtractAmountsMathWiring(t *testing.T) {
	text := "Subtotal: 100.00\nVAT: 20.00\nTotal: 150.00"
	amounts, sub, vat, total := extractAmounts(text, "€")

	if sub != 100 || vat != 20 || total != 150 {
		t.Fatalf("parsed %v %v %v", sub, vat, total)
	}
	if amounts.MathValid {
		t.Error("Expected invalid math for 100 + 20 = 150")
	}
	if !strings.Contains(amounts.MathNote, "120.00") {
		t.Errorf("MathNote = %q", amounts.MathNote)
	}
	if amounts.Currency != "€" {
		t.Errorf("Currency = %q", amounts.Currency)
	}
}
