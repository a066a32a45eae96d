package extract

import (
	"testing"

	"invoice-audit/constants"
)

func TestExtractCompanyName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labeled", "From: Initech Solutions\nInvoice 42", "Initech Solutions"},
		{"legal suffix line", "Blue Harbor GmbH\nRechnung Nr. 7", "Blue Harbor GmbH"},
		{"plausible first line", "Northwind Traders\nsome body text follows", "Northwind Traders"},
		{"nothing plausible", "123456\n!!!", constants.NoVendor},
		{"empty", "", constants.NoVendor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractCompanyName(tt.text); got != tt.want {
				t.Errorf("extractCompanyName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractVatID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"eu vat shape", "VAT: DE123456789", "DE123456789"},
		{"danish cvr", "CVR: 12 34 56 78", "12345678"},
		{"labeled tax id", "Steuernummer: 12/345/67890", "12/345/67890"},
		{"none", "no identifiers here", constants.Missing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractVatID(tt.text); got != tt.want {
				t.Errorf("extractVatID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractInvoiceNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"labeled", "Invoice Number: INV-2024-001", "INV-2024-001"},
		{"german label", "Rechnungsnummer: 2024-0042", "2024-0042"},
		{"bare inv shape", "see INV-12345 for details", "INV-12345"},
		{"year dash shape", "enclosed 2024-00123 herewith", "2024-00123"},
		{"none", "no reference at all", constants.Missing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractInvoiceNumber(tt.text); got != tt.want {
				t.Errorf("extractInvoiceNumber = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDate(t *testing.T) {
	labels := `Invoice\s*date|Date`
	tests := []struct {
		name string
		text string
		want string
	}{
		{"iso labeled", "Invoice date: 2024-03-15", "2024-03-15"},
		{"european dotted", "Date: 15.03.2024", "15.03.2024"},
		{"written month", "Date: 15 March 2024", "15 March 2024"},
		{"generic fallback", "issued on 2024-03-15 in London", "2024-03-15"},
		{"none", "no date anywhere", constants.Missing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractDate(tt.text, labels); got != tt.want {
				t.Errorf("extractDate = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractCountry(t *testing.T) {
	if got := extractCountry("irrelevant", "DK"); got != "Denmark" {
		t.Errorf("iban prefix should win, got %q", got)
	}
	if got := extractCountry("Country: Germany", ""); got != "Germany" {
		t.Errorf("labeled country = %q", got)
	}
	if got := extractCountry("Acme GmbH, Berlin, Deutschland", ""); got != "Germany" {
		t.Errorf("scanned endonym = %q", got)
	}
	if got := extractCountry("no geography", ""); got != constants.Missing {
		t.Errorf("got %q, want missing sentinel", got)
	}
}

func TestExtractContactFields(t *testing.T) {
	text := "Email: Billing@Example.COM\nTel: +45 12 34 56 78\nwww.example.com"

	if got := extractEmail(text); got != "billing@example.com" {
		t.Errorf("email = %q", got)
	}
	if got := extractPhone(text); got != "+45 12 34 56 78" {
		t.Errorf("phone = %q", got)
	}
	if got := extractWebsite(text); got == constants.Missing {
		t.Error("Expected a website")
	}
}

func TestExtractPaymentTerms(t *testing.T) {
	if got := extractPaymentTerms("Payment terms: Net 30"); got != "Net 30" {
		t.Errorf("terms = %q", got)
	}
	if got := extractPaymentTerms("payable Net 14 days"); got != "Net 14" {
		t.Errorf("terms = %q", got)
	}
	if got := extractPaymentTerms("nothing"); got != constants.Missing {
		t.Errorf("terms = %q, want missing sentinel", got)
	}
}
