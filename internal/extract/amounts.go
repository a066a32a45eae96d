package extract

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"invoice-audit/constants"
	"invoice-audit/internal/money"
)

var reCurrencySymbol = regexp.MustCompile(`[€$£¥]`)

// extractAmount resolves a money field via a label alternation, trying
// the currency-suffixed shape before the bare numeric one. A match only
// counts when it parses to a positive number.
func extractAmount(text string, labels []string) string {
	labelExpr := strings.Join(labels, "|")
	rules := []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:` + labelExpr + `)\s*[:\s]*([€$£¥]\s*[\d.,]+|[\d.,]+\s*[€$£¥]|[\d.,]+\s*(?:EUR|USD|GBP|DKK))`),
		regexp.MustCompile(`(?i)(?:` + labelExpr + `)\s*[:\s]*([\d][\d.,]{1,15})`),
	}
	for _, re := range rules {
		if m := re.FindStringSubmatch(text); m != nil {
			amount := strings.TrimSpace(reCurrencySymbol.ReplaceAllString(m[1], ""))
			if money.ParseAmount(amount) > 0 {
				return amount
			}
		}
	}
	return constants.Missing
}

var vatRateRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*%\s*(?:VAT|tax|TVA|MwSt|Moms)`),
	regexp.MustCompile(`(?i)(?:VAT|Tax|TVA|MwSt|Moms)\s*[@:]\s*(\d+(?:[.,]\d+)?)\s*%`),
	regexp.MustCompile(`(?i)(?:VAT|Tax)\s*\((\d+(?:[.,]\d+)?)\s*%\)`),
}

func extractVatRate(text string) string {
	for _, re := range vatRateRules {
		if m := re.FindStringSubmatch(text); m != nil {
			return strings.Replace(m[1], ",", ".", 1) + "%"
		}
	}
	return constants.Missing
}

// validateMath cross-checks total against subtotal + vat - discount +
// shipping with a 0.1% (min 0.05) tolerance. The OR-chain deliberately
// accepts documents where nothing is checkable: a zero/absent total, or
// both subtotal and vat absent. The looser subtotal+vat comparison
// covers invoices whose printed total ignores discount/shipping lines.
func validateMath(sub, vat, total, discount, shipping float64) (bool, string) {
	expected := sub + vat - discount + shipping
	tolerance := math.Max(0.05, total*0.001)

	valid := total <= 0 ||
		math.Abs(total-expected) <= tolerance ||
		(sub <= 0 && vat <= 0) ||
		math.Abs(total-(sub+vat)) <= tolerance

	note := ""
	if total > 0 && (sub > 0 || vat > 0) && !valid {
		note = fmt.Sprintf("Expected: %.2f + %.2f = %.2f, but total is %.2f", sub, vat, expected, total)
	} else if valid && total > 0 && sub > 0 {
		note = "Subtotal + VAT = Total ✓"
	}
	return valid, note
}

// extractAmounts resolves the monetary group and runs the arithmetic
// cross-check. The parsed numbers are returned alongside for the scorer.
func extractAmounts(text, currency string) (Amounts, float64, float64, float64) {
	subtotal := extractAmount(text, []string{"Subtotal", `Sub\s*total`, `Net\s*(?:amount)?`, `Amount\s*before\s*(?:tax|VAT)`, "Netto"})
	vatAmount := extractAmount(text, []string{"VAT", "Tax", "GST", "TVA", "MwSt", "Moms", "BTW", "IVA"})
	total := extractAmount(text, []string{"Total", `Amount\s*due`, `Grand\s*total`, `Total\s*due`, `Balance\s*due`, "Gesamt", "Totaal"})
	discount := extractAmount(text, []string{"Discount", "Rabatt", "Korting", "Remise"})
	shipping := extractAmount(text, []string{"Shipping", "Freight", "Delivery", "Versand", "Verzendkosten"})

	subNum := money.ParseAmount(subtotal)
	vatNum := money.ParseAmount(vatAmount)
	totalNum := money.ParseAmount(total)
	discountNum := money.ParseAmount(discount)
	shippingNum := money.ParseAmount(shipping)

	mathValid, mathNote := validateMath(subNum, vatNum, totalNum, discountNum, shippingNum)

	return Amounts{
		Subtotal:     subtotal,
		VatTaxAmount: vatAmount,
		VatTaxRate:   extractVatRate(text),
		Total:        total,
		Currency:     currency,
		MathValid:    mathValid,
		MathNote:     mathNote,
		Discount:     discount,
		Shipping:     shipping,
	}, subNum, vatNum, totalNum
}
