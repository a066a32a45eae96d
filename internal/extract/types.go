package extract

import "invoice-audit/constants"

// SenderIdentity groups the fields describing who issued the invoice.
// Every string is either the Missing sentinel or trimmed non-empty text.
type SenderIdentity struct {
	CompanyName           string `json:"companyName"`
	CompanyRegistrationID string `json:"companyRegistrationId"`
	Address               string `json:"address"`
	Country               string `json:"country"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Website               string `json:"website"`
}

// InvoiceDetails groups the document-level references and dates.
type InvoiceDetails struct {
	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceDate   string `json:"invoiceDate"`
	DueDate       string `json:"dueDate"`
	PaymentTerms  string `json:"paymentTerms"`
	PurchaseOrder string `json:"purchaseOrder"`
	CustomerRef   string `json:"customerRef"`
}

// Amounts groups the monetary fields plus the arithmetic cross-check.
type Amounts struct {
	Subtotal     string `json:"subtotal"`
	VatTaxAmount string `json:"vatTaxAmount"`
	VatTaxRate   string `json:"vatTaxRate"`
	Total        string `json:"total"`
	Currency     string `json:"currency"`
	MathValid    bool   `json:"mathValid"`
	MathNote     string `json:"mathNote"`
	Discount     string `json:"discount"`
	Shipping     string `json:"shipping"`
}

// PaymentDestination groups where the money is asked to go, and whether
// that destination is consistent with the sender identity.
type PaymentDestination struct {
	PaymentMethod        string `json:"paymentMethod"`
	BeneficiaryName      string `json:"beneficiaryName"`
	IbanOrAccount        string `json:"ibanOrAccount"`
	BankName             string `json:"bankName"`
	BankCountry          string `json:"bankCountry"`
	SwiftBic             string `json:"swiftBic"`
	RoutingNumber        string `json:"routingNumber"`
	ConsistentWithSender bool   `json:"consistentWithSender"`
	ConsistencyNote      string `json:"consistencyNote"`
	IbanValid            bool   `json:"ibanValid"`
}

// LegitimacyQuality carries the two 0..100 scores, the status verdict
// and the evidence (issues, warnings, field counters) behind them.
type LegitimacyQuality struct {
	LegitimacyScore  int                        `json:"legitimacyScore"`
	LegitimacyStatus constants.LegitimacyStatus `json:"legitimacyStatus"`
	DataQualityScore int                        `json:"dataQualityScore"`
	Issues           []string                   `json:"issues"`
	Warnings         []string                   `json:"warnings"`
	FieldsFound      int                        `json:"fieldsFound"`
	FieldsTotal      int                        `json:"fieldsTotal"`
}

// LineItem is one row of a detected line-item table. All values are
// table-sourced strings, never reformatted.
type LineItem struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Amount      string `json:"amount"`
}

// FieldMeta records how a single field value was obtained.
type FieldMeta struct {
	Confidence constants.Confidence `json:"confidence"`
	Method     constants.Method     `json:"method"`
}

// Meta describes the extraction run itself: which vendor template (if
// any) matched and the per-field confidence/method map.
type Meta struct {
	VendorTemplateID   string               `json:"vendorTemplateId,omitempty"`
	VendorTemplateName string               `json:"vendorTemplateName,omitempty"`
	FieldMeta          map[string]FieldMeta `json:"fieldMeta"`
	Normalized         bool                 `json:"normalized"`
}

// InvoiceExtraction is the full structured record produced for one
// document. Created once per input; the extractor never mutates it after
// assembly.
type InvoiceExtraction struct {
	Filename        string             `json:"filename"`
	Sender          SenderIdentity     `json:"sender"`
	InvoiceDetails  InvoiceDetails     `json:"invoiceDetails"`
	Amounts         Amounts            `json:"amounts"`
	Payment         PaymentDestination `json:"payment"`
	Legitimacy      LegitimacyQuality  `json:"legitimacy"`
	SummarySentence string             `json:"summarySentence"`
	LineItems       []LineItem         `json:"lineItems,omitempty"`
	ExtractionMeta  *Meta              `json:"extractionMeta,omitempty"`
}
