package llm

import (
	"testing"

	"invoice-audit/constants"
)

func TestMapReplyFillsSentinels(t *testing.T) {
	data := []byte(`{"vendor_name":"Acme ApS","total":"1.234,56","currency":"€"}`)
	ex, err := mapReply(data, "acme.txt")
	if err != nil {
		t.Fatalf("mapReply: %v", err)
	}

	if ex.Filename != "acme.txt" {
		t.Errorf("Filename = %q", ex.Filename)
	}
	if ex.Sender.CompanyName != "Acme ApS" {
		t.Errorf("CompanyName = %q", ex.Sender.CompanyName)
	}
	if ex.Amounts.Total != "1.234,56" {
		t.Errorf("Total must stay verbatim, got %q", ex.Amounts.Total)
	}
	for name, v := range map[string]string{
		"address":       ex.Sender.Address,
		"invoiceNumber": ex.InvoiceDetails.InvoiceNumber,
		"subtotal":      ex.Amounts.Subtotal,
		"ibanOrAccount": ex.Payment.IbanOrAccount,
	} {
		if v != constants.Missing {
			t.Errorf("%s = %q, want missing sentinel", name, v)
		}
	}
	if ex.Payment.PaymentMethod != "Not specified" {
		t.Errorf("PaymentMethod = %q", ex.Payment.PaymentMethod)
	}
	if ex.Legitimacy.LegitimacyStatus != constants.StatusSafe {
		t.Errorf("Status = %q", ex.Legitimacy.LegitimacyStatus)
	}
	// Vendor and total are the only two of the ten tracked fields present.
	if ex.Legitimacy.FieldsFound != 2 || ex.Legitimacy.DataQualityScore != 20 {
		t.Errorf("FieldsFound = %d, DataQualityScore = %d",
			ex.Legitimacy.FieldsFound, ex.Legitimacy.DataQualityScore)
	}
}

func TestMapReplyValidatesIBAN(t *testing.T) {
	data := []byte(`{"vendor_name":"Acme","total":"100","currency":"£","iban":"GB29 NWBK 6016 1331 9268 19"}`)
	ex, err := mapReply(data, "a.txt")
	if err != nil {
		t.Fatalf("mapReply: %v", err)
	}
	if ex.Payment.IbanOrAccount != "GB29NWBK60161331926819" {
		t.Errorf("IbanOrAccount = %q", ex.Payment.IbanOrAccount)
	}
	if !ex.Payment.IbanValid {
		t.Error("Expected a valid checksum")
	}
	if ex.Payment.PaymentMethod != "Bank transfer" {
		t.Errorf("PaymentMethod = %q", ex.Payment.PaymentMethod)
	}
}

func TestMapReplyMissingVendorBecomesUnknown(t *testing.T) {
	data := []byte(`{"vendor_name":"","total":"100","currency":"$"}`)
	ex, err := mapReply(data, "a.txt")
	if err != nil {
		t.Fatalf("mapReply: %v", err)
	}
	if ex.Sender.CompanyName != constants.NoVendor {
		t.Errorf("CompanyName = %q, want %q", ex.Sender.CompanyName, constants.NoVendor)
	}
}

func TestMapReplyLineItemDescriptions(t *testing.T) {
	data := []byte(`{"vendor_name":"Acme","total":"10","currency":"$",
		"line_items":[{"description":"","amount":"10.00"}]}`)
	ex, err := mapReply(data, "a.txt")
	if err != nil {
		t.Fatalf("mapReply: %v", err)
	}
	if len(ex.LineItems) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(ex.LineItems))
	}
	if ex.LineItems[0].Description != "Item 1" {
		t.Errorf("Blank descriptions get a placeholder, got %q", ex.LineItems[0].Description)
	}
}
