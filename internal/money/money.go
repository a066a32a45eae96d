package money

import (
	"regexp"
	"strconv"
	"strings"

	"invoice-audit/constants"
)

// currencyPattern pairs a detection regexp with the symbol we report.
// Order matters: first match wins, so the majors come before the minors
// and € / £ are tested before the greedy $ pattern.
type currencyPattern struct {
	re     *regexp.Regexp
	symbol string
}

var currencyPatterns = []currencyPattern{
	{regexp.MustCompile(`(?i)€|EUR|euro|euros`), "€"},
	{regexp.MustCompile(`(?i)£|GBP|pound|pounds sterling`), "£"},
	{regexp.MustCompile(`(?i)\$|USD|US\s*dollars?|dollars?`), "$"},
	{regexp.MustCompile(`(?i)kr\.?|DKK|danish\s*krone`), "DKK"},
	{regexp.MustCompile(`(?i)SEK|swedish\s*kron`), "SEK"},
	{regexp.MustCompile(`(?i)NOK|norwegian\s*kron`), "NOK"},
	{regexp.MustCompile(`(?i)CHF|swiss\s*franc`), "CHF"},
	{regexp.MustCompile(`(?i)¥|JPY|yen`), "¥"},
	{regexp.MustCompile(`(?i)CNY|RMB|yuan|renminbi`), "¥"},
	{regexp.MustCompile(`(?i)AUD|australian\s*dollar`), "A$"},
	{regexp.MustCompile(`(?i)CAD|canadian\s*dollar`), "C$"},
	{regexp.MustCompile(`(?i)PLN|złoty|zł`), "PLN"},
	{regexp.MustCompile(`(?i)CZK|czech\s*kron`), "CZK"},
	{regexp.MustCompile(`(?i)HUF|forint`), "HUF"},
	{regexp.MustCompile(`(?i)INR|rupee`), "₹"},
}

// DetectCurrency returns the display symbol for the first currency hint
// found in text, defaulting to "$".
func DetectCurrency(text string) string {
	if text == "" {
		return "$"
	}
	for _, p := range currencyPatterns {
		if p.re.MatchString(text) {
			return p.symbol
		}
	}
	return "$"
}

var (
	reCurrencyChars = regexp.MustCompile(`[€$£¥₹A-Za-z]`)
	reCommaDecimal  = regexp.MustCompile(`\d,\d{2}$`)
	reDotDecimal    = regexp.MustCompile(`\d\.\d{2}$`)
)

// ParseAmount parses a locale-ambiguous money string. European
// ("1.234,56") and US ("1,234.56") groupings are disambiguated by which
// separator sits before the two trailing digits. Unparseable input yields
// 0 so the pipeline stays total; callers treat 0 as "no amount".
func ParseAmount(s string) float64 {
	if s == "" || s == constants.Missing || s == "-" {
		return 0
	}
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimSpace(reCurrencyChars.ReplaceAllString(cleaned, ""))

	if reCommaDecimal.MatchString(cleaned) && !reDotDecimal.MatchString(cleaned) {
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	} else {
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}
