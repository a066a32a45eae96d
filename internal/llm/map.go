package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"invoice-audit/constants"
	"invoice-audit/internal/extract"
	"invoice-audit/internal/iban"
)

// reply is the wire shape of a sanitized model answer.
type reply struct {
	VendorName           string      `json:"vendor_name"`
	VendorRegistrationID string      `json:"vendor_registration_id"`
	InvoiceNumber        string      `json:"invoice_number"`
	IssueDate            string      `json:"issue_date"`
	DueDate              string      `json:"due_date"`
	LineItems            []replyItem `json:"line_items"`
	Subtotal             string      `json:"subtotal"`
	VatAmount            string      `json:"vat_amount"`
	Total                string      `json:"total"`
	Currency             string      `json:"currency"`
	Iban                 string      `json:"iban"`
	BeneficiaryName      string      `json:"beneficiary_name"`
	BankName             string      `json:"bank_name"`
	SwiftBic             string      `json:"swift_bic"`
}

type replyItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Amount      string `json:"amount"`
}

func orMissing(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return constants.Missing
	}
	return s
}

// mapReply builds a full InvoiceExtraction from the model's answer,
// filling sentinels for everything the model does not provide. Scoring
// is nominal: the model asserts field presence, not legitimacy, so the
// record is marked Safe with a flat confidence and a quality score from
// field coverage (ten tracked fields on this path).
func mapReply(data []byte, filename string) (*extract.InvoiceExtraction, error) {
	var r reply
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	currency := strings.TrimSpace(r.Currency)
	if currency == "" || currency == constants.Missing {
		currency = "$"
	}
	vendor := orMissing(r.VendorName)
	if vendor == constants.Missing {
		vendor = constants.NoVendor
	}

	account := orMissing(r.Iban)
	ibanValid := false
	if account != constants.Missing {
		account = iban.Normalize(account)
		ibanValid = iban.Validate(account)
	}

	paymentMethod := "Not specified"
	if account != constants.Missing {
		paymentMethod = "Bank transfer"
	}

	var items []extract.LineItem
	for i, it := range r.LineItems {
		desc := strings.TrimSpace(it.Description)
		if desc == "" || desc == constants.Missing {
			desc = fmt.Sprintf("Item %d", i+1)
		}
		items = append(items, extract.LineItem{
			Description: desc,
			Quantity:    strings.TrimSpace(it.Quantity),
			UnitPrice:   strings.TrimSpace(it.UnitPrice),
			Amount:      strings.TrimSpace(it.Amount),
		})
	}

	total := orMissing(r.Total)

	fieldsFound := 0
	for _, present := range []bool{
		vendor != constants.NoVendor,
		orMissing(r.VendorRegistrationID) != constants.Missing,
		orMissing(r.InvoiceNumber) != constants.Missing,
		orMissing(r.IssueDate) != constants.Missing,
		orMissing(r.DueDate) != constants.Missing,
		orMissing(r.Subtotal) != constants.Missing,
		orMissing(r.VatAmount) != constants.Missing,
		total != constants.Missing,
		account != constants.Missing,
		orMissing(r.BeneficiaryName) != constants.Missing,
	} {
		if present {
			fieldsFound++
		}
	}
	const aiFieldsTotal = 10

	ex := &extract.InvoiceExtraction{
		Filename: filename,
		Sender: extract.SenderIdentity{
			CompanyName:           vendor,
			CompanyRegistrationID: orMissing(r.VendorRegistrationID),
			Address:               constants.Missing,
			Country:               constants.Missing,
			Email:                 constants.Missing,
			Phone:                 constants.Missing,
			Website:               constants.Missing,
		},
		InvoiceDetails: extract.InvoiceDetails{
			InvoiceNumber: orMissing(r.InvoiceNumber),
			InvoiceDate:   orMissing(r.IssueDate),
			DueDate:       orMissing(r.DueDate),
			PaymentTerms:  constants.Missing,
			PurchaseOrder: constants.Missing,
			CustomerRef:   constants.Missing,
		},
		Amounts: extract.Amounts{
			Subtotal:     orMissing(r.Subtotal),
			VatTaxAmount: orMissing(r.VatAmount),
			VatTaxRate:   constants.Missing,
			Total:        total,
			Currency:     currency,
			MathValid:    true,
			Discount:     constants.Missing,
			Shipping:     constants.Missing,
		},
		Payment: extract.PaymentDestination{
			PaymentMethod:        paymentMethod,
			BeneficiaryName:      orMissing(r.BeneficiaryName),
			IbanOrAccount:        account,
			BankName:             orMissing(r.BankName),
			BankCountry:          constants.Missing,
			SwiftBic:             orMissing(r.SwiftBic),
			RoutingNumber:        constants.Missing,
			ConsistentWithSender: true,
			IbanValid:            ibanValid,
		},
		Legitimacy: extract.LegitimacyQuality{
			LegitimacyScore:  85,
			LegitimacyStatus: constants.StatusSafe,
			DataQualityScore: int(float64(fieldsFound) / aiFieldsTotal * 100),
			Issues:           []string{},
			Warnings:         []string{},
			FieldsFound:      fieldsFound,
			FieldsTotal:      aiFieldsTotal,
		},
		SummarySentence: fmt.Sprintf("Invoice from %s for %s%s (AI-extracted).", vendor, currency, total),
		LineItems:       items,
	}
	return ex, nil
}
