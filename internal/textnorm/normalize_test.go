package textnorm

import "testing"

func TestNormalizeJoinsWrappedSentences(t *testing.T) {
	raw := "Invoice text wrapped\nacross lines.\nTotal: 100"
	want := "Invoice text wrapped across lines.\nTotal: 100"
	if got := Normalize(raw); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeLabelOpensNewLine(t *testing.T) {
	raw := "Acme  Corp\n\nInvoice no: 1"
	want := "Acme Corp\nInvoice no: 1"
	if got := Normalize(raw); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeKeepsTableRowsApart(t *testing.T) {
	raw := "Items:\n1 Widget  2.00\n2 Gadget  3.00"
	want := "Items:\n1 Widget 2.00\n2 Gadget 3.00"
	if got := Normalize(raw); got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
}

func TestNormalizeWithLines(t *testing.T) {
	raw := "Items:\n1 Widget  2.00\n2 Gadget  3.00"
	res := NormalizeWithLines(raw, true)
	if len(res.Lines) != 3 {
		t.Fatalf("Expected 3 logical lines, got %d", len(res.Lines))
	}
	if res.Lines[0].Start != 0 {
		t.Errorf("First line start = %d, want 0", res.Lines[0].Start)
	}
	if res.RawLength != len(raw) {
		t.Errorf("RawLength = %d, want %d", res.RawLength, len(raw))
	}
}

func TestNormalizeWithoutLines(t *testing.T) {
	res := NormalizeWithLines("Total: 100", false)
	if res.Lines != nil {
		t.Errorf("Expected no lines kept, got %d", len(res.Lines))
	}
	if res.Text != "Total: 100" {
		t.Errorf("Text = %q", res.Text)
	}
}
