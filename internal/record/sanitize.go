package record

import (
	"encoding/json"
	"fmt"
	"maps"
	"strings"
)

// Sanitize normalizes an upload record payload so a lightly mangled but
// usable document can still validate:
//   - trims string fields, dropping the ones left empty
//   - coerces a numeric total to a two-fraction-digit string
//   - removes unknown keys (strict additionalProperties friendliness)
//
// It returns the cleaned JSON and the list of keys it touched.
func Sanitize(raw []byte) ([]byte, []string, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, nil, fmt.Errorf("sanitize: decode: %w", err)
	}

	dropped := make([]string, 0, 4)

	if v, ok := m["total"]; ok {
		switch t := v.(type) {
		case float64:
			m["total"] = fmt.Sprintf("%.2f", t)
		case string:
			s := strings.TrimSpace(t)
			if s == "" {
				delete(m, "total")
				dropped = append(dropped, "total(empty)")
			} else {
				m["total"] = s
			}
		case nil:
			delete(m, "total")
			dropped = append(dropped, "total(null)")
		default:
			delete(m, "total")
			dropped = append(dropped, "total(type)")
		}
	}

	for _, k := range []string{"store", "date"} {
		if v, ok := m[k].(string); ok {
			s := strings.TrimSpace(v)
			if s == "" {
				delete(m, k)
				dropped = append(dropped, k+"(empty)")
			} else {
				m[k] = s
			}
		}
	}

	allowed := map[string]struct{}{"store": {}, "date": {}, "total": {}}
	for k := range maps.Clone(m) {
		if _, ok := allowed[k]; !ok {
			delete(m, k)
			dropped = append(dropped, k+"(unknown)")
		}
	}

	out, err := json.Marshal(m)
	if err != nil {
		return nil, dropped, fmt.Errorf("sanitize: encode: %w", err)
	}
	return out, dropped, nil
}
