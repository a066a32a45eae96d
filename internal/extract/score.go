package extract

import (
	"fmt"
	"math"
	"strings"

	"invoice-audit/constants"
)

// fieldsTotal is the fixed number of fields the quality score counts.
const fieldsTotal = 15

// scoreInput is everything the scorer needs from the earlier stages,
// including the parsed numeric amounts (the string fields alone cannot
// distinguish "found but zero" from "found and positive").
type scoreInput struct {
	TextLength int
	Sender     SenderIdentity
	Details    InvoiceDetails
	Amounts    Amounts
	Payment    PaymentDestination
	SubNum     float64
	VatNum     float64
	TotalNum   float64
}

// assess aggregates issues and warnings into the legitimacy and data
// quality scores. Issues cost 15 points each, warnings 5; math failure,
// beneficiary mismatch and a bad IBAN checksum add fixed penalties on
// top of their issue entries.
func assess(in scoreInput) LegitimacyQuality {
	issues := []string{}
	warnings := []string{}

	if in.Details.InvoiceNumber == constants.Missing {
		issues = append(issues, "Missing invoice number")
	}
	if in.Sender.CompanyRegistrationID == constants.Missing {
		issues = append(issues, "Missing company VAT/registration ID")
	}
	if !in.Amounts.MathValid && in.TotalNum > 0 && in.SubNum > 0 {
		issues = append(issues, "Invoice math doesn't add up")
	}
	beneficiaryMismatch := !in.Payment.ConsistentWithSender && in.Payment.BeneficiaryName != constants.Missing
	if beneficiaryMismatch {
		issues = append(issues, "Payment beneficiary doesn't match sender")
	}
	badIBAN := in.Payment.IbanOrAccount != constants.Missing && !in.Payment.IbanValid && len(in.Payment.IbanOrAccount) >= 15
	if badIBAN {
		issues = append(issues, "IBAN checksum validation failed")
	}
	if in.Amounts.Total == constants.Missing || in.TotalNum <= 0 {
		issues = append(issues, "Missing or invalid total amount")
	}
	if in.Details.InvoiceDate == constants.Missing {
		issues = append(issues, "Missing invoice date")
	}

	if in.VatNum > 0 && in.TotalNum > 0 && in.VatNum/in.TotalNum > 0.35 {
		warnings = append(warnings, fmt.Sprintf("VAT is %.0f%% of total (unusually high)", in.VatNum/in.TotalNum*100))
	}
	if in.VatNum <= 0 && in.TotalNum > 100 {
		warnings = append(warnings, "No VAT/tax found on invoice")
	}
	if in.TextLength < 200 {
		warnings = append(warnings, "Very short document — may be incomplete")
	}
	if in.Details.DueDate == constants.Missing && in.TotalNum > 0 {
		warnings = append(warnings, "No due date specified")
	}
	if in.Sender.Address == constants.Missing {
		warnings = append(warnings, "No company address found")
	}
	if in.Sender.Email == constants.Missing && in.Sender.Phone == constants.Missing && in.Sender.Website == constants.Missing {
		warnings = append(warnings, "No contact information found")
	}

	fieldsFound := countFields(in)
	dataQuality := int(math.Round(float64(fieldsFound) / fieldsTotal * 100))

	score := 100
	score -= len(issues) * 15
	score -= len(warnings) * 5
	if !in.Amounts.MathValid && in.TotalNum > 0 {
		score -= 10
	}
	if beneficiaryMismatch {
		score -= 15
	}
	if badIBAN {
		score -= 10
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	status := constants.StatusSafe
	switch {
	case score < 50 || len(issues) >= 3:
		status = constants.StatusHighRisk
	case score < 75 || len(issues) >= 1:
		status = constants.StatusNeedsReview
	}

	return LegitimacyQuality{
		LegitimacyScore:  score,
		LegitimacyStatus: status,
		DataQualityScore: dataQuality,
		Issues:           issues,
		Warnings:         warnings,
		FieldsFound:      fieldsFound,
		FieldsTotal:      fieldsTotal,
	}
}

// countFields tallies the 15 tracked fields. Amount fields only count
// when they parsed to a positive number.
func countFields(in scoreInput) int {
	n := 0
	found := []bool{
		in.Sender.CompanyName != constants.NoVendor,
		in.Sender.CompanyRegistrationID != constants.Missing,
		in.Sender.Address != constants.Missing,
		in.Sender.Country != constants.Missing,
		in.Details.InvoiceNumber != constants.Missing,
		in.Details.InvoiceDate != constants.Missing,
		in.Details.DueDate != constants.Missing,
		in.Amounts.Total != constants.Missing && in.TotalNum > 0,
		in.Amounts.Subtotal != constants.Missing && in.SubNum > 0,
		in.Amounts.VatTaxAmount != constants.Missing && in.VatNum > 0,
		in.Payment.IbanOrAccount != constants.Missing,
		in.Payment.BeneficiaryName != constants.Missing,
		in.Sender.Email != constants.Missing,
		in.Sender.Phone != constants.Missing,
		in.Payment.PaymentMethod != "Not specified",
	}
	for _, f := range found {
		if f {
			n++
		}
	}
	return n
}

// summarize builds the one-sentence verdict: vendor, total with
// currency, status, and up to two leading issues (warnings when there
// are no issues).
func summarize(in scoreInput, legit LegitimacyQuality) string {
	totalDisplay := "unknown amount"
	if in.Amounts.Total != constants.Missing {
		totalDisplay = in.Amounts.Currency + in.Amounts.Total
	}

	var reason string
	switch {
	case len(legit.Issues) > 0:
		reason = strings.Join(firstN(legit.Issues, 2), "; ")
	case len(legit.Warnings) > 0:
		reason = strings.Join(firstN(legit.Warnings, 2), "; ")
	default:
		reason = fmt.Sprintf("all key fields extracted (%d/%d) and math checks out", legit.FieldsFound, legit.FieldsTotal)
	}

	return fmt.Sprintf("Invoice from %s for %s is marked %s: %s.",
		in.Sender.CompanyName, totalDisplay, legit.LegitimacyStatus, reason)
}

func firstN(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
