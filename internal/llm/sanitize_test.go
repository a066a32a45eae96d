package llm

import (
	"encoding/json"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	fenced := "```json\n{\"vendor_name\":\"Acme\"}\n```"
	if got := stripCodeFence(fenced); got != `{"vendor_name":"Acme"}` {
		t.Errorf("stripCodeFence = %q", got)
	}
	plain := `{"vendor_name":"Acme"}`
	if got := stripCodeFence(plain); got != plain {
		t.Errorf("Unfenced input must pass through, got %q", got)
	}
}

func TestSanitizeReply(t *testing.T) {
	raw := []byte(`{
		"vendor_cvr": "DK12345678",
		"vendor_name": "  Acme ApS  ",
		"total": 1234.5,
		"currency": "€",
		"iban": null,
		"made_up_key": "x",
		"subtotal": ""
	}`)

	clean, _, err := sanitizeReply(raw)
	if err != nil {
		t.Fatalf("sanitizeReply: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(clean, &m); err != nil {
		t.Fatalf("decode cleaned: %v", err)
	}

	if m["vendor_registration_id"] != "DK12345678" {
		t.Errorf("Synonym rename failed: %v", m["vendor_registration_id"])
	}
	if m["vendor_name"] != "Acme ApS" {
		t.Errorf("Expected trimmed name, got %v", m["vendor_name"])
	}
	if m["total"] != "1234.50" {
		t.Errorf("Numbers must become strings, got %v", m["total"])
	}
	for _, gone := range []string{"vendor_cvr", "iban", "made_up_key", "subtotal"} {
		if _, ok := m[gone]; ok {
			t.Errorf("Key %q should have been dropped", gone)
		}
	}
}

func TestSanitizeLineItems(t *testing.T) {
	raw := []byte(`{
		"vendor_name": "Acme",
		"total": "10",
		"currency": "$",
		"line_items": [
			{"description": "Widget", "quantity": 2, "unit_price": "5.00", "amount": 10},
			"not an object",
			{"bogus": null}
		]
	}`)

	clean, _, err := sanitizeReply(raw)
	if err != nil {
		t.Fatalf("sanitizeReply: %v", err)
	}
	var m struct {
		LineItems []map[string]string `json:"line_items"`
	}
	if err := json.Unmarshal(clean, &m); err != nil {
		t.Fatalf("decode cleaned: %v", err)
	}
	if len(m.LineItems) != 1 {
		t.Fatalf("Expected 1 surviving item, got %d", len(m.LineItems))
	}
	it := m.LineItems[0]
	if it["quantity"] != "2" || it["amount"] != "10" || it["unit_price"] != "5.00" {
		t.Errorf("Item = %v", it)
	}
}

func TestValidateReply(t *testing.T) {
	ok := []byte(`{"vendor_name":"Acme","total":"100.00","currency":"$"}`)
	if err := validateReply(ok); err != nil {
		t.Errorf("Expected valid, got %v", err)
	}

	missingRequired := []byte(`{"vendor_name":"Acme"}`)
	if err := validateReply(missingRequired); err == nil {
		t.Error("Expected a schema error for missing required keys")
	}

	extraKey := []byte(`{"vendor_name":"Acme","total":"1","currency":"$","bogus":"x"}`)
	if err := validateReply(extraKey); err == nil {
		t.Error("Expected a schema error for an unknown property")
	}
}
