package extract

import (
	"regexp"
	"strings"

	"invoice-audit/constants"
	"invoice-audit/internal/iban"
)

var (
	ibanRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:IBAN)\s*[:\s]*([A-Z]{2}\s*\d{2}[\sA-Z0-9]{10,30})`),
		regexp.MustCompile(`\b([A-Z]{2}\d{2}\s?(?:[A-Z0-9]{4}\s?){2,7}[A-Z0-9]{1,4})\b`),
	}
	reAccountLabel = regexp.MustCompile(`(?i)(?:Account\s*(?:no\.?|number)|Bank\s*account|Konto(?:nummer)?)\s*[:\s]*([A-Z0-9\-\s]{6,25})`)

	swiftRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:SWIFT|BIC|SWIFT/BIC)\s*[:\s]*([A-Z]{6}[A-Z0-9]{2,5})`),
		regexp.MustCompile(`\b([A-Z]{6}[A-Z0-9]{2}(?:[A-Z0-9]{3})?)\b`),
	}

	reBankName    = regexp.MustCompile(`(?i)(?:Bank(?:\s*name)?|Banque|Kreditinstitut)\s*[:\s]*([A-Za-z][A-Za-z0-9\s&.,\-']{3,50})`)
	reBeneficiary = regexp.MustCompile(`(?i)(?:Beneficiary|Pay\s*to|Account\s*(?:holder|name)|Name\s*(?:on\s*account)?|Payable\s*to|Kontoinhaber|Begunstigde)\s*[:\s]*([A-Za-z][A-Za-z0-9\s&.,\-'()]{2,80})`)
	reRouting     = regexp.MustCompile(`(?i)(?:Routing\s*(?:no\.?|number)|ABA|Sort\s*code)\s*[:\s]*(\d{6,9})`)

	reBankTransfer = regexp.MustCompile(`(?i)\b(bank\s*transfer|wire\s*transfer|IBAN|SWIFT|BIC|direct\s*deposit|EFT)\b`)
	reCard         = regexp.MustCompile(`(?i)\b(credit\s*card|debit\s*card|visa|mastercard|amex|payment\s*card)\b`)
	rePaypal       = regexp.MustCompile(`(?i)\bpaypal\b`)
	reCheck        = regexp.MustCompile(`(?i)\b(check|cheque)\b`)
	reCash         = regexp.MustCompile(`(?i)\b(cash|kontant)\b`)
)

// extractIBAN finds the payment account: IBAN-shaped token first, then a
// generic account-number label as fallback (reported with valid=false
// since only real IBANs carry a checksum).
func extractIBAN(text string) (string, bool) {
	for _, re := range ibanRules {
		if m := re.FindStringSubmatch(text); m != nil {
			candidate := iban.Normalize(m[1])
			if len(candidate) >= 15 && len(candidate) <= 34 {
				return candidate, iban.Validate(candidate)
			}
		}
	}
	if m := reAccountLabel.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(strings.ReplaceAll(m[1], " ", "")), false
	}
	return constants.Missing, false
}

func extractSwiftBic(text string) string {
	for _, re := range swiftRules {
		if m := re.FindStringSubmatch(text); m != nil {
			bic := strings.ToUpper(m[1])
			if len(bic) >= 8 && len(bic) <= 11 {
				return bic
			}
		}
	}
	return constants.Missing
}

func extractBankName(text string) string {
	if m := reBankName.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if len(name) > 50 {
			name = name[:50]
		}
		return name
	}
	return constants.Missing
}

func extractBeneficiary(text string) string {
	if m := reBeneficiary.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if len(name) > 80 {
			name = name[:80]
		}
		return name
	}
	return constants.Missing
}

// detectPaymentMethod applies the keyword priority Bank transfer > Card >
// PayPal > Check > Cash.
func detectPaymentMethod(text string) string {
	switch {
	case reBankTransfer.MatchString(text):
		return "Bank transfer"
	case reCard.MatchString(text):
		return "Card"
	case rePaypal.MatchString(text):
		return "PayPal"
	case reCheck.MatchString(text):
		return "Check"
	case reCash.MatchString(text):
		return "Cash"
	}
	return "Not specified"
}

var reComparePunct = regexp.MustCompile(`[.,\-'()]`)

// normalizeForComparison lowers a name and strips punctuation and legal
// suffixes so "Acme Corp GmbH" and "Acme Corporation" compare on words.
func normalizeForComparison(name string) string {
	n := strings.ToLower(name)
	n = reComparePunct.ReplaceAllString(n, " ")
	n = reSuffixStrip.ReplaceAllString(n, "")
	return strings.TrimSpace(reWhitespace.ReplaceAllString(n, " "))
}

// namesMatch reports whether beneficiary and sender plausibly refer to
// the same party. Unknown names pass: absence is not evidence of a
// mismatch.
func namesMatch(name1, name2 string) bool {
	if name1 == constants.Missing || name2 == constants.Missing ||
		name1 == constants.NoVendor || name2 == constants.NoVendor {
		return true
	}

	n1 := normalizeForComparison(name1)
	n2 := normalizeForComparison(name2)

	if n1 == n2 {
		return true
	}
	if strings.Contains(n1, n2) || strings.Contains(n2, n1) {
		return true
	}

	words1 := significantWords(n1)
	words2 := significantWords(n2)
	shared := 0
	for _, w := range words1 {
		for _, v := range words2 {
			if w == v {
				shared++
				break
			}
		}
	}
	if shared >= 2 {
		return true
	}
	if shared >= 1 && (len(words1) <= 2 || len(words2) <= 2) {
		return true
	}
	return false
}

func significantWords(s string) []string {
	var out []string
	for _, w := range strings.Fields(s) {
		if len(w) >= 3 {
			out = append(out, w)
		}
	}
	return out
}

// extractPayment resolves the payment destination group given the
// already-extracted sender name (for the consistency check).
func extractPayment(text, companyName, ibanOrAccount string, ibanValid bool) PaymentDestination {
	ibanCode := ""
	if ibanOrAccount != constants.Missing && len(ibanOrAccount) >= 2 {
		ibanCode = ibanOrAccount[:2]
	}

	beneficiary := extractBeneficiary(text)
	consistent := namesMatch(beneficiary, companyName)
	note := "Payment recipient matches sender identity."
	if !consistent {
		note = "Beneficiary name doesn't match invoice sender — verify before paying."
	}

	routing := constants.Missing
	if m := reRouting.FindStringSubmatch(text); m != nil {
		routing = m[1]
	}

	return PaymentDestination{
		PaymentMethod:        detectPaymentMethod(text),
		BeneficiaryName:      beneficiary,
		IbanOrAccount:        ibanOrAccount,
		BankName:             extractBankName(text),
		BankCountry:          extractCountry(text, ibanCode),
		SwiftBic:             extractSwiftBic(text),
		RoutingNumber:        routing,
		ConsistentWithSender: consistent,
		ConsistencyNote:      note,
		IbanValid:            ibanValid,
	}
}
