package template

import "testing"

func TestDetectDanishProfile(t *testing.T) {
	p := Detect("Faktura\nCVR: 12345678\nMoms 25%\nDanmark")
	if p == nil {
		t.Fatal("Expected a profile, got nil")
	}
	if p.ID != "generic-dk" {
		t.Errorf("Expected generic-dk, got %s", p.ID)
	}
}

func TestDetectNoMatchReturnsNil(t *testing.T) {
	if p := Detect("random unrelated text"); p != nil {
		t.Errorf("Expected nil, got %s", p.ID)
	}
}

func TestDetectEmptyReturnsNil(t *testing.T) {
	if p := Detect(""); p != nil {
		t.Errorf("Expected nil, got %s", p.ID)
	}
}

func TestDetectTieBreakPrefersEarlierProfile(t *testing.T) {
	// Three keyword hits each for generic-uk (VAT, Ltd, GB) and the
	// catch-all (invoice, total, amount); the earlier registration wins.
	p := Detect("invoice total amount VAT Ltd GB")
	if p == nil {
		t.Fatal("Expected a profile, got nil")
	}
	if p.ID != "generic-uk" {
		t.Errorf("Expected generic-uk on tie, got %s", p.ID)
	}
}

func TestDetectGenericIsLastResort(t *testing.T) {
	p := Detect("invoice for services, total amount below")
	if p == nil {
		t.Fatal("Expected a profile, got nil")
	}
	if p.ID != "generic" {
		t.Errorf("Expected generic, got %s", p.ID)
	}
}

func TestFieldOverride(t *testing.T) {
	if re := FieldOverride(nil, "invoiceNumber"); re != nil {
		t.Error("Expected nil override for nil profile")
	}
	p := &Profile{ID: "x", Fields: map[string]string{"invoiceNumber": `INV-(\d+)`}}
	re := FieldOverride(p, "invoiceNumber")
	if re == nil {
		t.Fatal("Expected a compiled override")
	}
	if m := re.FindStringSubmatch("invoice inv-42"); m == nil || m[1] != "42" {
		t.Errorf("Override should match case-insensitively, got %v", m)
	}
	if re := FieldOverride(p, "dueDate"); re != nil {
		t.Error("Expected nil for a field the profile does not override")
	}
}
