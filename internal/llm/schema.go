package llm

// buildReplySchema returns the JSON-Schema (draft 2020-12 subset) the
// model's reply must satisfy, as a generic map. Every scalar is a string
// because the model is told to echo amounts verbatim; the record mapper
// owns all parsing.
func buildReplySchema() map[string]any {
	str := map[string]any{"type": "string"}
	props := map[string]any{
		"vendor_name":            str,
		"vendor_registration_id": str,
		"invoice_number":         str,
		"issue_date":             str,
		"due_date":               str,
		"subtotal":               str,
		"vat_amount":             str,
		"total":                  str,
		"currency":               str,
		"iban":                   str,
		"beneficiary_name":       str,
		"bank_name":              str,
		"swift_bic":              str,
		"line_items": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":                 "object",
				"additionalProperties": false,
				"properties": map[string]any{
					"description": str,
					"quantity":    str,
					"unit_price":  str,
					"amount":      str,
				},
			},
		},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"vendor_name", "total", "currency"},
	}
}
