package extract

import (
	"regexp"
	"strings"

	"invoice-audit/constants"
)

// companySuffixes are the legal-entity markers used both to spot company
// lines and to strip noise when comparing names.
var companySuffixes = []string{
	// English
	"Ltd", "Limited", "LLC", "Inc", "Incorporated", "Corp", "Corporation",
	"Co", "Company", "PLC", "LP", "LLP",
	// German
	"GmbH", "AG", "KG", "OHG", "UG", `e\.?V\.?`, "eG",
	// French
	"SA", "SARL", "SAS", "EURL", "SNC",
	// Spanish / Italian
	"SL", "SRL", "SpA", "Srl",
	// Nordic
	"A/S", "ApS", "AS", "AB", "Oy", "Oyj",
	// Dutch / Belgian
	"BV", "NV", "VOF", "CV",
	// Other
	"Pty", "Pvt", "Pte",
}

var (
	reCompanySuffix = regexp.MustCompile(`(?i)\b(` + strings.Join(companySuffixes, "|") + `)\b\.?`)
	reSuffixStrip   = regexp.MustCompile(`(?i)\b(` + strings.Join(companySuffixes, "|") + `)\b`)

	companyLabelRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:From|Bill\s*from|Invoice\s*from|Vendor|Seller|Issued\s*by|Supplier|Company)\s*[:\s]*\n?\s*([^` + "\n" + `]{3,80})`),
		regexp.MustCompile(`(?i)(?:Company\s*name|Business\s*name|Trading\s*as|T/A)\s*[:\s]*\n?\s*([^` + "\n" + `]{3,80})`),
	}

	reAllDigits     = regexp.MustCompile(`^\d+$`)
	reLeadingUpper  = regexp.MustCompile(`^[A-Z]`)
	reLeadingDigit  = regexp.MustCompile(`^\d`)
	reHeaderNoise   = regexp.MustCompile(`(?i)^(invoice|date|total|amount|tax|vat|payment|to:|from:)`)
	reTrailingPunct = regexp.MustCompile(`[,;:]+$`)
	reWhitespace    = regexp.MustCompile(`\s+`)
)

func cleanCompanyName(name string) string {
	name = reTrailingPunct.ReplaceAllString(name, "")
	name = strings.TrimSpace(reWhitespace.ReplaceAllString(name, " "))
	if len(name) > 80 {
		name = name[:80]
	}
	return name
}

// extractCompanyName resolves the sender name: labeled line first, then
// the first early line carrying a legal-entity suffix, then the first
// plausible capitalized line, else "Unknown".
func extractCompanyName(text string) string {
	for _, re := range companyLabelRules {
		if m := re.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			if len(name) >= 3 && !reAllDigits.MatchString(name) {
				return cleanCompanyName(name)
			}
		}
	}

	var lines []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimSpace(l)
		if len(l) > 2 {
			lines = append(lines, l)
		}
	}

	for i, line := range lines {
		if i >= 15 {
			break
		}
		if reCompanySuffix.MatchString(line) {
			cleaned := cleanCompanyName(line)
			if len(cleaned) >= 3 && len(cleaned) <= 80 {
				return cleaned
			}
		}
	}

	for i, line := range lines {
		if i >= 5 {
			break
		}
		if len(line) >= 3 && len(line) <= 60 &&
			reLeadingUpper.MatchString(line) &&
			!reLeadingDigit.MatchString(line) &&
			!reHeaderNoise.MatchString(line) {
			return cleanCompanyName(line)
		}
	}

	return constants.NoVendor
}

// vatRules is the ordered chain for registration/VAT IDs: EU VAT shape,
// then labeled variants, then the bare EU format. First match wins.
var vatRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b((?:AT|BE|BG|CY|CZ|DE|DK|EE|EL|ES|FI|FR|GB|HR|HU|IE|IT|LT|LU|LV|MT|NL|PL|PT|RO|SE|SI|SK)[A-Z0-9]{8,12})\b`),
	regexp.MustCompile(`(?i)(?:VAT|TVA|MwSt|BTW|IVA|USt|MOMS)\s*(?:no\.?|number|ID|Nr\.?|#)?\s*[:\s]*([A-Z]{0,2}[0-9A-Z\-\s]{6,20})`),
	regexp.MustCompile(`(?i)(?:CVR|Org\.?\s*nr?\.?|Company\s*(?:reg\.?|registration)\s*(?:no\.?|number)?|Registration|ABN|ACN|EIN|TIN)\s*[:\s#]*([0-9A-Z\-\s]{6,20})`),
	regexp.MustCompile(`(?i)(?:Tax\s*ID|Tax\s*number|Steuernummer|NIF|CIF|SIRET|SIREN)\s*[:\s]*([0-9A-Z\-\s/]{6,20})`),
	regexp.MustCompile(`\b([A-Z]{2}[0-9]{8,10})\b`),
}

func extractVatID(text string) string {
	for _, re := range vatRules {
		if m := re.FindStringSubmatch(text); m != nil {
			id := strings.TrimSpace(reWhitespace.ReplaceAllString(m[1], ""))
			if len(id) >= 6 && len(id) <= 20 {
				return id
			}
		}
	}
	return constants.Missing
}

var addressRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:Address|Registered\s*(?:office|address)|Business\s*address|Street)\s*[:\s]*\n?\s*([^` + "\n" + `]+(?:` + "\n" + `[^` + "\n" + `]+){0,3})`),
	// Anglophone street-first pattern
	regexp.MustCompile(`(?i)(\d+[A-Za-z]?\s+[A-Za-z\s]+(?:Street|St\.?|Avenue|Ave\.?|Road|Rd\.?|Boulevard|Blvd\.?|Lane|Ln\.?|Drive|Dr\.?|Way|Place|Pl\.?|Court|Ct\.?)[^` + "\n" + `]*(?:` + "\n" + `[^` + "\n" + `]{5,50})?)`),
	// European street-name-first pattern
	regexp.MustCompile(`(?i)([A-Za-z][A-Za-z\s]+\s+\d+[A-Za-z]?[,\s]+\d{4,5}\s+[A-Za-z\s]+)`),
}

var reNewlines = regexp.MustCompile(`\n+`)

func extractAddress(text string) string {
	for _, re := range addressRules {
		if m := re.FindStringSubmatch(text); m != nil {
			addr := strings.TrimSpace(reNewlines.ReplaceAllString(m[1], ", "))
			if len(addr) >= 10 && len(addr) <= 150 {
				return addr
			}
		}
	}
	return constants.Missing
}

// countryMap resolves ISO codes and common country names (including a
// few endonyms) to a canonical display name.
var countryMap = map[string]string{
	"DK": "Denmark", "DE": "Germany", "GB": "United Kingdom", "UK": "United Kingdom",
	"FR": "France", "NL": "Netherlands", "BE": "Belgium", "AT": "Austria",
	"CH": "Switzerland", "IT": "Italy", "ES": "Spain", "PT": "Portugal",
	"SE": "Sweden", "NO": "Norway", "FI": "Finland", "PL": "Poland",
	"CZ": "Czech Republic", "HU": "Hungary", "IE": "Ireland", "US": "USA",
	"CA": "Canada", "AU": "Australia", "NZ": "New Zealand", "JP": "Japan",
	"CN": "China", "IN": "India", "BR": "Brazil", "MX": "Mexico",
	"DENMARK": "Denmark", "GERMANY": "Germany", "DEUTSCHLAND": "Germany",
	"FRANCE": "France", "NETHERLANDS": "Netherlands", "HOLLAND": "Netherlands",
	"BELGIUM": "Belgium", "AUSTRIA": "Austria", "ÖSTERREICH": "Austria",
	"SWITZERLAND": "Switzerland", "SCHWEIZ": "Switzerland", "SUISSE": "Switzerland",
	"ITALY": "Italy", "ITALIA": "Italy", "SPAIN": "Spain", "ESPAÑA": "Spain",
	"PORTUGAL": "Portugal", "SWEDEN": "Sweden", "SVERIGE": "Sweden",
	"NORWAY": "Norway", "NORGE": "Norway", "FINLAND": "Finland", "SUOMI": "Finland",
	"POLAND": "Poland", "POLSKA": "Poland", "IRELAND": "Ireland",
	"UNITED STATES": "USA", "UNITED KINGDOM": "United Kingdom",
}

// countryScanOrder fixes the text-scan precedence; Go maps iterate
// randomly and the scan must be deterministic. Only full names qualify
// anyway (the scan skips keys shorter than 4 chars).
var countryScanOrder = []string{
	"DENMARK", "GERMANY", "DEUTSCHLAND", "FRANCE", "NETHERLANDS", "HOLLAND",
	"BELGIUM", "AUSTRIA", "ÖSTERREICH", "SWITZERLAND", "SCHWEIZ", "SUISSE",
	"ITALY", "ITALIA", "SPAIN", "ESPAÑA", "PORTUGAL", "SWEDEN", "SVERIGE",
	"NORWAY", "NORGE", "FINLAND", "SUOMI", "POLAND", "POLSKA", "IRELAND",
	"UNITED STATES", "UNITED KINGDOM",
}

var reCountryLabel = regexp.MustCompile(`(?i)(?:Country|Land|Pays|País)\s*[:\s]*([A-Za-z\s]+)`)

// extractCountry resolves the country: IBAN prefix first, then a labeled
// line, then a scan for country names (codes shorter than 4 chars are
// skipped in the scan to avoid random substring hits).
func extractCountry(text, ibanCode string) string {
	if ibanCode != "" {
		if c, ok := countryMap[strings.ToUpper(ibanCode)]; ok {
			return c
		}
	}

	if m := reCountryLabel.FindStringSubmatch(text); m != nil {
		label := strings.TrimSpace(m[1])
		if c, ok := countryMap[strings.ToUpper(label)]; ok {
			return c
		}
		if len(label) >= 2 && len(label) <= 30 {
			return label
		}
	}

	upper := strings.ToUpper(text)
	for _, key := range countryScanOrder {
		if len(key) >= 4 && strings.Contains(upper, key) {
			return countryMap[key]
		}
	}
	return constants.Missing
}

var (
	reEmail = regexp.MustCompile(`\b([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,})\b`)

	phoneRules = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Tel\.?|Phone|Ph\.?|Mob(?:ile)?|Fax)\s*[:\s]*([+\d\s\-().]{8,20})`),
		regexp.MustCompile(`\b(\+\d{1,3}[\s\-]?\d{2,4}[\s\-]?\d{3,4}[\s\-]?\d{3,4})\b`),
		regexp.MustCompile(`\b(\(\d{2,4}\)\s*\d{3,4}[\s\-]?\d{3,4})\b`),
	}
	reNonDigit = regexp.MustCompile(`\D`)

	reWebsite = regexp.MustCompile(`(?i)\b((?:https?://)?(?:www\.)?[a-z0-9][a-z0-9\-]*\.[a-z]{2,}(?:/[^\s]*)?)\b`)
)

func extractEmail(text string) string {
	if m := reEmail.FindStringSubmatch(text); m != nil {
		return strings.ToLower(m[1])
	}
	return constants.Missing
}

func extractPhone(text string) string {
	for _, re := range phoneRules {
		if m := re.FindStringSubmatch(text); m != nil {
			phone := strings.TrimSpace(m[1])
			if len(reNonDigit.ReplaceAllString(phone, "")) >= 8 {
				return phone
			}
		}
	}
	return constants.Missing
}

func extractWebsite(text string) string {
	if m := reWebsite.FindStringSubmatch(text); m != nil {
		url := strings.ToLower(m[1])
		if !strings.Contains(url, "@") {
			return url
		}
	}
	return constants.Missing
}
