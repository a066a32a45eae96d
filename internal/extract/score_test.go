package extract

import (
	"strings"
	"testing"

	"invoice-audit/constants"
)

func cleanInput() scoreInput {
	return scoreInput{
		TextLength: 500,
		Sender: SenderIdentity{
			CompanyName:           "Acme Corporation Ltd",
			CompanyRegistrationID: "GB123456789",
			Address:               "123 Main Street, London",
			Country:               "United Kingdom",
			Email:                 "billing@acme.example",
			Phone:                 "+44 20 1234 5678",
			Website:               "acme.example",
		},
		Details: InvoiceDetails{
			InvoiceNumber: "INV-2024-001",
			InvoiceDate:   "2024-03-15",
			DueDate:       "2024-04-14",
			PaymentTerms:  "Net 30",
			PurchaseOrder: constants.Missing,
			CustomerRef:   constants.Missing,
		},
		Amounts: Amounts{
			Subtotal:     "100.00",
			VatTaxAmount: "20.00",
			Total:        "120.00",
			Currency:     "£",
			MathValid:    true,
		},
		Payment: PaymentDestination{
			PaymentMethod:        "Bank transfer",
			BeneficiaryName:      "Acme Corporation Ltd",
			IbanOrAccount:        "GB29NWBK60161331926819",
			ConsistentWithSender: true,
			IbanValid:            true,
		},
		SubNum:   100,
		VatNum:   20,
		TotalNum: 120,
	}
}

func TestAssessCleanInvoice(t *testing.T) {
	legit := assess(cleanInput())
	if legit.LegitimacyScore != 100 {
		t.Errorf("Score = %d, issues %v warnings %v", legit.LegitimacyScore, legit.Issues, legit.Warnings)
	}
	if legit.LegitimacyStatus != constants.StatusSafe {
		t.Errorf("Status = %q", legit.LegitimacyStatus)
	}
	if len(legit.Issues) != 0 || len(legit.Warnings) != 0 {
		t.Errorf("Expected no findings, got %v / %v", legit.Issues, legit.Warnings)
	}
	if legit.FieldsFound != 15 {
		t.Errorf("FieldsFound = %d, want 15", legit.FieldsFound)
	}
}

func TestAssessSingleIssueNeedsReview(t *testing.T) {
	in := cleanInput()
	in.Details.InvoiceNumber = constants.Missing

	legit := assess(in)
	if legit.LegitimacyScore != 85 {
		t.Errorf("Score = %d, want 85", legit.LegitimacyScore)
	}
	// Any issue forces review even above the 75 threshold.
	if legit.LegitimacyStatus != constants.StatusNeedsReview {
		t.Errorf("Status = %q", legit.LegitimacyStatus)
	}
}

func TestAssessThreeIssuesHighRisk(t *testing.T) {
	in := cleanInput()
	in.Details.InvoiceNumber = constants.Missing
	in.Sender.CompanyRegistrationID = constants.Missing
	in.Details.InvoiceDate = constants.Missing

	legit := assess(in)
	if legit.LegitimacyStatus != constants.StatusHighRisk {
		t.Errorf("Status = %q with %d issues", legit.LegitimacyStatus, len(legit.Issues))
	}
}

func TestAssessFraudSignalsClampToZero(t *testing.T) {
	in := cleanInput()
	in.Details.InvoiceNumber = constants.Missing
	in.Sender.CompanyRegistrationID = constants.Missing
	in.Details.InvoiceDate = constants.Missing
	in.Amounts.MathValid = false
	in.Payment.ConsistentWithSender = false
	in.Payment.IbanValid = false

	legit := assess(in)
	if legit.LegitimacyScore != 0 {
		t.Errorf("Score = %d, want clamped 0", legit.LegitimacyScore)
	}
	if legit.LegitimacyStatus != constants.StatusHighRisk {
		t.Errorf("Status = %q", legit.LegitimacyStatus)
	}
	found := false
	for _, iss := range legit.Issues {
		if strings.Contains(iss, "IBAN checksum") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected an IBAN checksum issue, got %v", legit.Issues)
	}
}

func TestAssessHighVatWarning(t *testing.T) {
	in := cleanInput()
	in.VatNum = 60
	in.Amounts.VatTaxAmount = "60.00"
	in.Amounts.MathValid = false // 100+60 != 120, but warn path is what we check
	in.SubNum = 60

	legit := assess(in)
	found := false
	for _, w := range legit.Warnings {
		if strings.Contains(w, "unusually high") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a high-VAT warning, got %v", legit.Warnings)
	}
}

func TestAssessShortDocumentWarning(t *testing.T) {
	in := cleanInput()
	in.TextLength = 50

	legit := assess(in)
	found := false
	for _, w := range legit.Warnings {
		if strings.Contains(w, "short") {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected a short-document warning, got %v", legit.Warnings)
	}
}

func TestSummarizeMentionsLeadingIssue(t *testing.T) {
	in := cleanInput()
	in.Details.InvoiceNumber = constants.Missing
	legit := assess(in)

	s := summarize(in, legit)
	if !strings.Contains(s, "Missing invoice number") {
		t.Errorf("Summary should carry the leading issue: %q", s)
	}
	if !strings.Contains(s, "£120.00") {
		t.Errorf("Summary should carry the total: %q", s)
	}
}
