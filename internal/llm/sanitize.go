package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var reCodeFence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// stripCodeFence unwraps a fenced reply; models fence JSON despite
// being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := reCodeFence.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// replyKeys is the full set of keys the schema knows about; anything
// else the model invents gets dropped before validation.
var replyKeys = map[string]struct{}{
	"vendor_name": {}, "vendor_registration_id": {}, "invoice_number": {},
	"issue_date": {}, "due_date": {}, "line_items": {}, "subtotal": {},
	"vat_amount": {}, "total": {}, "currency": {}, "iban": {},
	"beneficiary_name": {}, "bank_name": {}, "swift_bic": {},
}

// synonyms the model tends to use for our keys.
var replyRenames = map[string]string{
	"vendor_cvr":   "vendor_registration_id",
	"vat_number":   "vendor_registration_id",
	"invoice_date": "issue_date",
	"tax_amount":   "vat_amount",
}

// sanitizeReply coerces a model reply toward the schema: renames known
// synonyms, turns numbers into strings, drops nulls and unknown keys.
// Returns the cleaned JSON and the list of touched keys.
func sanitizeReply(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("decode: %w", err)
	}

	var touched []string
	for from, to := range replyRenames {
		if v, ok := m[from]; ok {
			if _, exists := m[to]; !exists {
				m[to] = v
			}
			delete(m, from)
			touched = append(touched, from+"->"+to)
		}
	}

	for k, v := range m {
		if _, ok := replyKeys[k]; !ok {
			delete(m, k)
			touched = append(touched, k+"(unknown)")
			continue
		}
		if k == "line_items" {
			continue
		}
		switch t := v.(type) {
		case nil:
			delete(m, k)
			touched = append(touched, k+"(null)")
		case float64:
			m[k] = fmt.Sprintf("%.2f", t)
			touched = append(touched, k)
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				delete(m, k)
				touched = append(touched, k+"(empty)")
			} else {
				m[k] = s
			}
		default:
			delete(m, k)
			touched = append(touched, k+"(type)")
		}
	}

	if items, ok := m["line_items"].([]any); ok {
		m["line_items"] = sanitizeLineItems(items)
	} else if _, present := m["line_items"]; present {
		delete(m, "line_items")
		touched = append(touched, "line_items(type)")
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, touched, fmt.Errorf("encode: %w", err)
	}
	return out, touched, nil
}

func sanitizeLineItems(items []any) []any {
	keep := []string{"description", "quantity", "unit_price", "amount"}
	out := make([]any, 0, len(items))
	for _, it := range items {
		row, ok := it.(map[string]any)
		if !ok {
			continue
		}
		clean := map[string]any{}
		for _, k := range keep {
			switch t := row[k].(type) {
			case string:
				if s := strings.TrimSpace(t); s != "" {
					clean[k] = s
				}
			case float64:
				clean[k] = trimFloat(t)
			}
		}
		if len(clean) > 0 {
			out = append(out, clean)
		}
	}
	return out
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.2f", f)
}

// validateReply checks the sanitized document against the reply schema.
func validateReply(data []byte) error {
	b, err := json.Marshal(buildReplySchema())
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("reply.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("reply.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
