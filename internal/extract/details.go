package extract

import (
	"regexp"
	"strings"

	"invoice-audit/constants"
)

// invoiceNumberRules: labeled forms (multi-language), then shaped
// fallbacks like INV-12345 or 2024-001.
var invoiceNumberRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Invoice\s*(?:no\.?|number|#|ID)|Faktura(?:nummer)?|Rechnung(?:snummer)?|Facture\s*n[°o]?)\s*[:\s#]*([A-Z0-9][A-Z0-9\-/.]{2,25})`),
	regexp.MustCompile(`(?i)(?:Inv\.?\s*(?:no\.?|#)?|Reference|Ref\.?\s*(?:no\.?|#)?)\s*[:\s#]*([A-Z0-9][A-Z0-9\-/.]{2,25})`),
	regexp.MustCompile(`(?i)(?:Document\s*(?:no\.?|number|#)|Doc\.?\s*(?:no\.?|#)?)\s*[:\s#]*([A-Z0-9][A-Z0-9\-/.]{2,25})`),
	regexp.MustCompile(`(?i)\b(INV[\-/]?\d{3,10})\b`),
	regexp.MustCompile(`\b(\d{4}[\-/]\d{3,6})\b`),
}

func extractInvoiceNumber(text string) string {
	for _, re := range invoiceNumberRules {
		if m := re.FindStringSubmatch(text); m != nil {
			num := strings.TrimSpace(m[1])
			if len(num) >= 3 && len(num) <= 30 {
				return num
			}
		}
	}
	return constants.Missing
}

const monthAlternation = `Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|Jul(?:y)?|Aug(?:ust)?|Sep(?:t(?:ember)?)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?`

// genericDateRules in priority order: ISO, US, European, written-month.
var genericDateRules = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{4}[-/]\d{1,2}[-/]\d{1,2})\b`),
	regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2,4})\b`),
	regexp.MustCompile(`\b(\d{1,2}[.\-]\d{1,2}[.\-]\d{2,4})\b`),
	regexp.MustCompile(`(?i)\b(\d{1,2}\s+(?:` + monthAlternation + `)[,\s]+\d{2,4})\b`),
	regexp.MustCompile(`(?i)\b((?:` + monthAlternation + `)\s+\d{1,2}[,\s]+\d{2,4})\b`),
}

var (
	reDateNumeric = regexp.MustCompile(`\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}`)
	reDateWritten = regexp.MustCompile(`\d{1,2}\s+[A-Za-z]+\s+\d{2,4}`)
	reDateMonth   = regexp.MustCompile(`[A-Za-z]+\s+\d{1,2}[,\s]+\d{2,4}`)
)

// cleanDate trims a candidate and keeps it only if it still looks like a
// date in one of the accepted shapes.
func cleanDate(s string) string {
	if s == "" {
		return ""
	}
	cleaned := reTrailingPunct.ReplaceAllString(strings.TrimSpace(s), "")
	if reDateNumeric.MatchString(cleaned) || reDateWritten.MatchString(cleaned) || reDateMonth.MatchString(cleaned) {
		if len(cleaned) > 25 {
			cleaned = cleaned[:25]
		}
		return cleaned
	}
	return ""
}

// extractDate resolves a date field: the caller's label alternation
// first, then the generic format chain.
func extractDate(text, labelExpr string) string {
	labeled := regexp.MustCompile(`(?i)(?:` + labelExpr + `)\s*[:\s]*([^` + "\n" + `]{6,25})`)
	if m := labeled.FindStringSubmatch(text); m != nil {
		if d := cleanDate(m[1]); d != "" {
			return d
		}
	}
	for _, re := range genericDateRules {
		if m := re.FindStringSubmatch(text); m != nil {
			if d := cleanDate(m[1]); d != "" {
				return d
			}
		}
	}
	return constants.Missing
}

var (
	reTermsLabel   = regexp.MustCompile(`(?i)(?:Payment\s*terms?|Terms|Betalingsvilkår|Zahlungsbedingungen)\s*[:\s]*([^` + "\n" + `]{3,40})`)
	reTermsNet     = regexp.MustCompile(`(?i)\b(Net\s*\d+|Due\s*(?:on|upon)\s*receipt|\d+\s*days?\s*(?:net)?)\b`)
	rePurchaseOrd  = regexp.MustCompile(`(?i)(?:P\.?O\.?|Purchase\s*order|Order)\s*(?:no\.?|number|#)?\s*[:\s]*([A-Z0-9\-]{3,20})`)
	reCustomerRef  = regexp.MustCompile(`(?i)(?:Customer\s*(?:ref\.?|reference)|Your\s*ref\.?|Client\s*(?:no\.?|number))\s*[:\s]*([A-Z0-9\-]{3,20})`)
)

func extractPaymentTerms(text string) string {
	if m := reTermsLabel.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := reTermsNet.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return constants.Missing
}

func extractPurchaseOrder(text string) string {
	if m := rePurchaseOrd.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return constants.Missing
}

func extractCustomerRef(text string) string {
	if m := reCustomerRef.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return constants.Missing
}

func extractInvoiceDetails(text string) InvoiceDetails {
	return InvoiceDetails{
		InvoiceNumber: extractInvoiceNumber(text),
		InvoiceDate:   extractDate(text, `Invoice\s*date|Date\s*of\s*invoice|Issue\s*date|Dated|Date`),
		DueDate:       extractDate(text, `Due\s*date|Payment\s*due|Pay\s*by|Due`),
		PaymentTerms:  extractPaymentTerms(text),
		PurchaseOrder: extractPurchaseOrder(text),
		CustomerRef:   extractCustomerRef(text),
	}
}
