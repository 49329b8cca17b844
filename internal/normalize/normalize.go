// Package normalize contains the pure field cleaners applied to raw
// candidate data before it is mapped to CRM contact properties. Every
// cleaner is total: bad input degrades to an empty string, never an error.
package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// PhoneRules parametrizes phone cleaning for one target market.
type PhoneRules struct {
	CountryCode      string // e.g. "+961"
	TrunkPrefix      string // local dialing prefix, e.g. "0"
	MaxSubscriberLen int    // bare subscriber numbers at most this long get the country code prepended
}

// CleanPhone strips formatting from a raw phone value and normalizes it to
// "+CCC NNNNNNNN". Cleaning fails open: input that cannot be recognized is
// returned after best-effort stripping rather than dropped.
func CleanPhone(raw string, r PhoneRules) string {
	var b strings.Builder
	for _, ch := range raw {
		if ch == '+' || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return ""
	}

	ccDigits := strings.TrimPrefix(r.CountryCode, "+")

	if !strings.HasPrefix(cleaned, "+") {
		switch {
		case strings.HasPrefix(cleaned, ccDigits):
			cleaned = "+" + cleaned
		case r.TrunkPrefix != "" && strings.HasPrefix(cleaned, r.TrunkPrefix):
			cleaned = r.CountryCode + cleaned[len(r.TrunkPrefix):]
		case len(cleaned) <= r.MaxSubscriberLen:
			cleaned = r.CountryCode + cleaned
		}
	}

	// Display format: single space after the country code.
	if strings.HasPrefix(cleaned, r.CountryCode) && len(cleaned) > len(r.CountryCode) {
		return r.CountryCode + " " + cleaned[len(r.CountryCode):]
	}

	return cleaned
}

// excelEpoch is day zero of Excel's 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxExcelSerial bounds serial day numbers to Excel's representable range
// (9999-12-31). Larger pure-numeric strings are not dates.
const maxExcelSerial = 2958465

var dateFormats = []*regexp.Regexp{
	regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`),     // YYYY-MM-DD
	regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`),     // DD/MM/YYYY
	regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})$`),     // DD-MM-YYYY
	regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2})$`), // D/M/YY
}

// CleanDate normalizes a raw date value to YYYY-MM-DD. It accepts Excel
// serial day numbers and four textual patterns; anything else yields "".
func CleanDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Excel serial date numbers come through spreadsheet cells as plain
	// numerics, e.g. "36526" for 2000-01-01.
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		if serial <= 0 || serial > maxExcelSerial {
			return ""
		}
		ms := int64(serial * 86400000)
		return excelEpoch.Add(time.Duration(ms) * time.Millisecond).Format("2006-01-02")
	}

	for i, format := range dateFormats {
		m := format.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		if i == 0 {
			return s // already canonical
		}

		day, month, year := m[1], m[2], m[3]

		if len(year) == 2 {
			if y, _ := strconv.Atoi(year); y >= 50 {
				year = "19" + year
			} else {
				year = "20" + year
			}
		}

		// Recover MM/DD/YYYY inputs misread as DD/MM/YYYY.
		mo, _ := strconv.Atoi(month)
		d, _ := strconv.Atoi(day)
		if mo > 12 && d <= 12 {
			day, month = month, day
		}

		return year + "-" + pad2(month) + "-" + pad2(day)
	}

	return ""
}

func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

// CleanGender maps free-form gender values onto the male/female enum.
func CleanGender(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m", "man", "boy":
		return "male"
	case "female", "f", "woman", "girl":
		return "female"
	default:
		return ""
	}
}

// CleanList normalizes a delimited list to a JSON-encoded array string.
// Values that already parse as a JSON array pass through verbatim.
func CleanList(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	if strings.HasPrefix(raw, "[") {
		var arr []interface{}
		if err := json.Unmarshal([]byte(raw), &arr); err == nil {
			return raw
		}
	}

	var items []string
	for _, item := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	}) {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return ""
	}

	encoded, _ := json.Marshal(items)
	return string(encoded)
}

// CleanYesNo maps affirmative/negative synonyms to "yes"/"no".
// Unrecognized input yields "", so the outcome is ternary, not boolean.
func CleanYesNo(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "1", "oui":
		return "yes"
	case "no", "n", "false", "0", "non":
		return "no"
	default:
		return ""
	}
}

// CleanNumeric strips a measurement value down to digits and at most one
// decimal point (used for height, weight, and body measurements).
func CleanNumeric(raw string) string {
	var b strings.Builder
	seenDot := false
	for _, ch := range raw {
		switch {
		case ch >= '0' && ch <= '9':
			b.WriteRune(ch)
		case ch == '.' && !seenDot:
			b.WriteRune(ch)
			seenDot = true
		}
	}
	return b.String()
}

// CapitalizeWords upper-cases the first letter of each word, lower-casing
// the rest ("dark brown" -> "Dark Brown"). Used for CRM enumeration values.
func CapitalizeWords(raw string) string {
	if raw == "" {
		return raw
	}
	words := strings.Split(raw, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
