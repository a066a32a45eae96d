// Package extract turns decoded invoice text into a structured, scored
// record. The whole pipeline is a pure function of its input: no I/O,
// no shared mutable state, safe to call concurrently.
package extract

import (
	"fmt"

	"invoice-audit/constants"
	"invoice-audit/internal/money"
	"invoice-audit/internal/template"
	"invoice-audit/internal/textnorm"
)

// Extract runs the full pipeline on already-decoded document text:
// normalize (Layer A), detect vendor template (Layer B), field
// extraction, line items (Layer C), scoring, and per-field metadata.
// It never fails; empty input yields a record full of sentinels with
// the scores to match.
func Extract(rawText, filename string) *InvoiceExtraction {
	normalized := textnorm.Normalize(rawText)
	text := normalized
	if text == "" {
		text = rawText
	}

	tmpl := template.Detect(text)
	templateMatched := tmpl != nil

	ex := extractAll(text, filename)
	ex.LineItems = ExtractLineItems(text)

	meta := &Meta{
		FieldMeta:  map[string]FieldMeta{},
		Normalized: normalized != "" && normalized != rawText,
	}
	if tmpl != nil {
		meta.VendorTemplateID = tmpl.ID
		meta.VendorTemplateName = tmpl.Name
	}
	for name, value := range map[string]string{
		"companyName":           ex.Sender.CompanyName,
		"companyRegistrationId": ex.Sender.CompanyRegistrationID,
		"invoiceNumber":         ex.InvoiceDetails.InvoiceNumber,
		"invoiceDate":           ex.InvoiceDetails.InvoiceDate,
		"dueDate":               ex.InvoiceDetails.DueDate,
		"total":                 ex.Amounts.Total,
		"subtotal":              ex.Amounts.Subtotal,
		"vatTaxAmount":          ex.Amounts.VatTaxAmount,
		"ibanOrAccount":         ex.Payment.IbanOrAccount,
		"beneficiaryName":       ex.Payment.BeneficiaryName,
	} {
		meta.FieldMeta[name] = FieldMeta{
			Confidence: confidenceFor(value, templateMatched, false),
			Method:     methodFor(templateMatched, false),
		}
	}
	ex.ExtractionMeta = meta
	return ex
}

// extractAll is the field-extraction stage shared by Extract: sender,
// details, amounts, payment, then the assessment over all of them.
func extractAll(text, filename string) *InvoiceExtraction {
	currency := money.DetectCurrency(text)

	ibanOrAccount, ibanValid := extractIBAN(text)
	ibanCode := ""
	if ibanOrAccount != constants.Missing && len(ibanOrAccount) >= 2 {
		ibanCode = ibanOrAccount[:2]
	}

	sender := SenderIdentity{
		CompanyName:           extractCompanyName(text),
		CompanyRegistrationID: extractVatID(text),
		Address:               extractAddress(text),
		Country:               extractCountry(text, ibanCode),
		Email:                 extractEmail(text),
		Phone:                 extractPhone(text),
		Website:               extractWebsite(text),
	}

	details := extractInvoiceDetails(text)
	amounts, subNum, vatNum, totalNum := extractAmounts(text, currency)
	payment := extractPayment(text, sender.CompanyName, ibanOrAccount, ibanValid)

	in := scoreInput{
		TextLength: len(text),
		Sender:     sender,
		Details:    details,
		Amounts:    amounts,
		Payment:    payment,
		SubNum:     subNum,
		VatNum:     vatNum,
		TotalNum:   totalNum,
	}
	legitimacy := assess(in)

	return &InvoiceExtraction{
		Filename:        filename,
		Sender:          sender,
		InvoiceDetails:  details,
		Amounts:         amounts,
		Payment:         payment,
		Legitimacy:      legitimacy,
		SummarySentence: summarize(in, legitimacy),
	}
}

func confidenceFor(value string, templateMatched, fromTable bool) constants.Confidence {
	if fromTable {
		if value != "" {
			return constants.ConfidenceHigh
		}
		return constants.ConfidenceLow
	}
	present := value != "" && value != constants.Missing && value != constants.NoVendor
	if templateMatched && present {
		return constants.ConfidenceHigh
	}
	if present {
		return constants.ConfidenceMedium
	}
	return constants.ConfidenceLow
}

func methodFor(templateMatched, fromTable bool) constants.Method {
	if fromTable {
		return constants.MethodTable
	}
	if templateMatched {
		return constants.MethodTemplate
	}
	return constants.MethodGeneric
}

// ApplyFieldEdit overwrites one field value with a reviewer's
// correction. Derived values (legitimacy, mathValid, summary) are left
// exactly as extracted: they describe the original document, not the
// edit. The field's metadata method is stamped manual.
func ApplyFieldEdit(ex *InvoiceExtraction, field, value string) error {
	target, ok := fieldSlot(ex, field)
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	if value == "" {
		value = constants.Missing
	}
	*target = value

	if ex.ExtractionMeta == nil {
		ex.ExtractionMeta = &Meta{FieldMeta: map[string]FieldMeta{}}
	}
	ex.ExtractionMeta.FieldMeta[field] = FieldMeta{
		Confidence: constants.ConfidenceHigh,
		Method:     constants.MethodManual,
	}
	return nil
}

// fieldSlot maps a wire field name to its slot in the record.
func fieldSlot(ex *InvoiceExtraction, field string) (*string, bool) {
	slots := map[string]*string{
		"companyName":           &ex.Sender.CompanyName,
		"companyRegistrationId": &ex.Sender.CompanyRegistrationID,
		"address":               &ex.Sender.Address,
		"country":               &ex.Sender.Country,
		"email":                 &ex.Sender.Email,
		"phone":                 &ex.Sender.Phone,
		"website":               &ex.Sender.Website,
		"invoiceNumber":         &ex.InvoiceDetails.InvoiceNumber,
		"invoiceDate":           &ex.InvoiceDetails.InvoiceDate,
		"dueDate":               &ex.InvoiceDetails.DueDate,
		"paymentTerms":          &ex.InvoiceDetails.PaymentTerms,
		"purchaseOrder":         &ex.InvoiceDetails.PurchaseOrder,
		"customerRef":           &ex.InvoiceDetails.CustomerRef,
		"subtotal":              &ex.Amounts.Subtotal,
		"vatTaxAmount":          &ex.Amounts.VatTaxAmount,
		"vatTaxRate":            &ex.Amounts.VatTaxRate,
		"total":                 &ex.Amounts.Total,
		"currency":              &ex.Amounts.Currency,
		"paymentMethod":         &ex.Payment.PaymentMethod,
		"beneficiaryName":       &ex.Payment.BeneficiaryName,
		"ibanOrAccount":         &ex.Payment.IbanOrAccount,
		"bankName":              &ex.Payment.BankName,
		"bankCountry":           &ex.Payment.BankCountry,
		"swiftBic":              &ex.Payment.SwiftBic,
		"routingNumber":         &ex.Payment.RoutingNumber,
	}
	s, ok := slots[field]
	return s, ok
}
