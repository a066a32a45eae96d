package extract

import (
	"testing"

	"invoice-audit/constants"
)

func TestNamesMatch(t *testing.T) {
	tests := []struct {
		name   string
		a, b   string
		want   bool
	}{
		{"identical", "Acme Corporation", "Acme Corporation", true},
		{"suffix variants", "Acme Corp GmbH", "Acme Corporation", true},
		{"containment", "Acme", "Acme Corporation Europe", true},
		{"two shared words", "Nordic Software Solutions ApS", "Nordic Software Ltd", true},
		{"short name one shared word", "Acme Ltd", "Acme Holdings International", true},
		{"unrelated", "Fraudulent Recipient Ltd", "Acme Corporation", false},
		{"unknown beneficiary passes", constants.Missing, "Acme Corporation", true},
		{"unknown sender passes", "Acme Corporation", constants.NoVendor, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := namesMatch(tt.a, tt.b); got != tt.want {
				t.Errorf("namesMatch(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestDetectPaymentMethod(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"please pay by bank transfer", "Bank transfer"},
		{"IBAN: GB29NWBK60161331926819", "Bank transfer"},
		{"pay by credit card or paypal", "Card"},
		{"paypal only", "PayPal"},
		{"send a cheque", "Check"},
		{"kontant betaling", "Cash"},
		{"no hint at all", "Not specified"},
	}
	for _, tt := range tests {
		if got := detectPaymentMethod(tt.text); got != tt.want {
			t.Errorf("detectPaymentMethod(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestExtractIBAN(t *testing.T) {
	got, valid := extractIBAN("IBAN: DE89 3704 0044 0532 0130 00")
	if got != "DE89370400440532013000" {
		t.Errorf("iban = %q", got)
	}
	if !valid {
		t.Error("Expected a valid checksum")
	}

	got, valid = extractIBAN("Account number: 12345678")
	if got != "12345678" {
		t.Errorf("account = %q", got)
	}
	if valid {
		t.Error("A bare account number carries no checksum")
	}

	got, valid = extractIBAN("nothing here")
	if got != constants.Missing || valid {
		t.Errorf("got %q/%v, want missing sentinel", got, valid)
	}
}

func TestExtractSwiftBic(t *testing.T) {
	if got := extractSwiftBic("SWIFT: NWBKGB2L"); got != "NWBKGB2L" {
		t.Errorf("bic = %q", got)
	}
	if got := extractSwiftBic("no bic"); got != constants.Missing {
		t.Errorf("bic = %q, want missing sentinel", got)
	}
}

func TestExtractPaymentConsistencyNote(t *testing.T) {
	text := "Beneficiary: Offshore Holdings Anonymous\nIBAN: GB29NWBK60161331926819"
	p := extractPayment(text, "Acme Corporation Ltd", "GB29NWBK60161331926819", true)

	if p.ConsistentWithSender {
		t.Error("Expected a beneficiary mismatch")
	}
	if p.ConsistencyNote == "Payment recipient matches sender identity." {
		t.Error("Mismatch must flip the consistency note")
	}
	if p.BankCountry != "United Kingdom" {
		t.Errorf("BankCountry = %q", p.BankCountry)
	}
}
