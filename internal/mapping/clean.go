package mapping

import "strings"

// CleanProperties trims every value and drops the ones that carry no
// information: empty strings and empty JSON collections. The CRM rejects
// empty enum values, so they must never reach the wire.
func CleanProperties(props map[string]string) map[string]string {
	cleaned := make(map[string]string, len(props))
	for key, value := range props {
		v := strings.TrimSpace(value)
		if v == "" || v == "[]" || v == "{}" {
			continue
		}
		cleaned[key] = v
	}
	return cleaned
}
