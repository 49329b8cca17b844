package mapping

import (
	"fmt"
	"strings"
	"time"

	"github.com/faces-agency/talent-sync/internal/hubspot"
	"github.com/faces-agency/talent-sync/internal/normalize"
)

// RowResult is the outcome of mapping one spreadsheet row. A rejected
// row has a nil Contact and at least one error. Warnings flag values a
// normalizer reduced to empty; the value is dropped from the contact but
// the row itself still goes through.
type RowResult struct {
	Contact  *hubspot.Contact
	Errors   []string
	Warnings []string
}

// Mapper turns raw spreadsheet rows into CRM contact payloads. Each
// target property gets the normalizer registered for it; unregistered
// properties are trimmed and passed through as-is.
type Mapper struct {
	rules    []ColumnRule
	cleaners map[string]func(string) string
	source   string
	now      func() time.Time
}

// NewMapper builds a mapper over the default column rules. Phone rules
// are injected so number normalization carries no ambient region state.
func NewMapper(phone normalize.PhoneRules, source string) *Mapper {
	cleanPhone := func(raw string) string { return normalize.CleanPhone(raw, phone) }

	cleaners := map[string]func(string) string{
		"faces_mobile":        cleanPhone,
		"faces_whatsapp":      cleanPhone,
		"faces_date_of_birth": normalize.CleanDate,
		"faces_gender":        normalize.CleanGender,

		"faces_languages": normalize.CleanList,
		"faces_talents":   normalize.CleanList,
		"faces_sports":    normalize.CleanList,

		"faces_has_car":                 normalize.CleanYesNo,
		"faces_has_driving_license":     normalize.CleanYesNo,
		"faces_willing_to_travel":       normalize.CleanYesNo,
		"faces_has_valid_passport":      normalize.CleanYesNo,
		"faces_has_modeling_experience": normalize.CleanYesNo,

		"faces_height_cm": normalize.CleanNumeric,
		"faces_weight_kg": normalize.CleanNumeric,
		"faces_bust_cm":   normalize.CleanNumeric,
		"faces_waist_cm":  normalize.CleanNumeric,
		"faces_hips_cm":   normalize.CleanNumeric,
	}

	return &Mapper{
		rules:    DefaultColumnRules,
		cleaners: cleaners,
		source:   source,
		now:      time.Now,
	}
}

// SetNow overrides the clock used for the application date stamp.
func (m *Mapper) SetNow(now func() time.Time) { m.now = now }

// MapRow maps one row (header → raw cell value) into a contact.
// rowIndex is the zero-based data row; reported row numbers are offset
// by 2 so they match what the operator sees in the spreadsheet (header
// row plus 1-based numbering).
func (m *Mapper) MapRow(row map[string]string, rowIndex int) RowResult {
	displayRow := rowIndex + 2
	result := RowResult{}
	properties := map[string]string{}

	for _, rule := range m.rules {
		raw := row[rule.Header]
		if raw == "" {
			continue
		}

		var cleaned string
		if cleaner, ok := m.cleaners[rule.Property]; ok {
			cleaned = cleaner(raw)
			if cleaned == "" {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Row %d: unparseable %s value %q dropped", displayRow, rule.Property, raw))
			}
		} else {
			cleaned = strings.TrimSpace(raw)
		}

		if cleaned != "" {
			properties[rule.Property] = cleaned
		}
	}

	if properties["faces_first_name"] == "" && properties["faces_last_name"] == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Missing name", displayRow))
		return result
	}
	if properties["faces_mobile"] == "" && properties["faces_whatsapp"] == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: Missing phone number", displayRow))
		return result
	}

	properties["faces_application_source"] = m.source
	properties["faces_application_date"] = m.now().UTC().Format(time.RFC3339)

	result.Contact = &hubspot.Contact{Properties: properties}
	return result
}
