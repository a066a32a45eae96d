package llm

import "fmt"

const systemPrompt = `You extract structured data from invoice text. ` +
	`Reply with a single JSON object, no markdown, no code block. ` +
	`Use "—" for values you cannot find.`

const fieldList = `Extract these exact keys:
- vendor_name (string)
- vendor_registration_id (string, VAT/CVR/registration number)
- invoice_number (string)
- issue_date (string)
- due_date (string)
- line_items (array of { description: string, quantity: string, unit_price: string, amount: string })
- subtotal (string)
- vat_amount (string)
- total (string)
- currency (string, e.g. EUR, USD)
- iban (string)
- beneficiary_name (string, payment recipient)
- bank_name (string)
- swift_bic (string)`

func buildUserPrompt(text string) string {
	return fmt.Sprintf("%s\n\nInvoice text:\n%s", fieldList, text)
}
