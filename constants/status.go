package constants

// LegitimacyStatus is the canonical trust verdict for an extracted invoice.
type LegitimacyStatus string

// Stable values (serialized as-is; downstream consumers match on them).
const (
	StatusSafe        LegitimacyStatus = "Safe"
	StatusNeedsReview LegitimacyStatus = "Needs Review"
	StatusHighRisk    LegitimacyStatus = "High Risk"
)

// Confidence is the tier recorded per extracted field.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// Method records which strategy produced a field value.
type Method string

const (
	MethodTemplate Method = "template"
	MethodGeneric  Method = "generic"
	MethodTable    Method = "table"
	// MethodManual marks a value overwritten by a reviewer after extraction.
	MethodManual Method = "manual"
)

// Missing is the sentinel for "field not found". Exporters and the UI
// match on this exact string, so it must never change.
const Missing = "—"

// NoVendor is what the company-name extractor falls back to when no
// plausible sender line exists. Distinct from Missing on purpose: the
// quality counter treats an unknown vendor as a missing field, but the
// summary sentence still needs a printable name.
const NoVendor = "Unknown"
