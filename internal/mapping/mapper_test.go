package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faces-agency/talent-sync/internal/normalize"
)

var testPhoneRules = normalize.PhoneRules{
	CountryCode:      "+961",
	TrunkPrefix:      "0",
	MaxSubscriberLen: 8,
}

func newTestMapper() *Mapper {
	m := NewMapper(testPhoneRules, "excel_import")
	m.SetNow(func() time.Time {
		return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	})
	return m
}

func TestMapRowFullRow(t *testing.T) {
	m := newTestMapper()

	result := m.MapRow(map[string]string{
		"First Name":    "Maya",
		"Last Name":     "Khalil",
		"Gender":        "F",
		"Date of Birth": "31/12/2001",
		"Mobile":        "03123456",
		"Languages":     "Arabic, English; French",
		"Has Car":       "Oui",
		"Height":        "170cm",
		"Email":         "maya@example.com",
	}, 0)

	require.NotNil(t, result.Contact)
	assert.Empty(t, result.Errors)

	props := result.Contact.Properties
	assert.Equal(t, "Maya", props["faces_first_name"])
	assert.Equal(t, "Khalil", props["faces_last_name"])
	assert.Equal(t, "female", props["faces_gender"])
	assert.Equal(t, "2001-12-31", props["faces_date_of_birth"])
	assert.Equal(t, "+961 3123456", props["faces_mobile"])
	assert.Equal(t, `["Arabic","English","French"]`, props["faces_languages"])
	assert.Equal(t, "yes", props["faces_has_car"])
	assert.Equal(t, "170", props["faces_height_cm"])
	assert.Equal(t, "maya@example.com", props["email"])

	assert.Equal(t, "excel_import", props["faces_application_source"])
	assert.Equal(t, "2026-03-15T10:30:00Z", props["faces_application_date"])
}

func TestMapRowPhoneColumnOverridesMobile(t *testing.T) {
	m := newTestMapper()

	// Both headers target faces_mobile; the later rule wins.
	result := m.MapRow(map[string]string{
		"First Name": "Maya",
		"Mobile":     "03111111",
		"Phone":      "03222222",
	}, 0)

	require.NotNil(t, result.Contact)
	assert.Equal(t, "+961 3222222", result.Contact.Properties["faces_mobile"])
}

func TestMapRowMissingName(t *testing.T) {
	m := newTestMapper()

	result := m.MapRow(map[string]string{"Mobile": "03123456"}, 3)

	assert.Nil(t, result.Contact)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Row 5: Missing name", result.Errors[0])
}

func TestMapRowMissingPhone(t *testing.T) {
	m := newTestMapper()

	result := m.MapRow(map[string]string{"First Name": "Maya"}, 0)

	assert.Nil(t, result.Contact)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Row 2: Missing phone number", result.Errors[0])
}

func TestMapRowFirstNameAloneSatisfiesNameCheck(t *testing.T) {
	m := newTestMapper()

	result := m.MapRow(map[string]string{
		"First Name": "Maya",
		"WhatsApp":   "71234567",
	}, 0)

	require.NotNil(t, result.Contact)
	assert.Equal(t, "+961 71234567", result.Contact.Properties["faces_whatsapp"])
}

func TestMapRowWarnsOnDegradedValue(t *testing.T) {
	m := newTestMapper()

	result := m.MapRow(map[string]string{
		"First Name": "Maya",
		"Mobile":     "03123456",
		"Gender":     "unknown",
	}, 0)

	require.NotNil(t, result.Contact)
	assert.NotContains(t, result.Contact.Properties, "faces_gender")
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "faces_gender")
	assert.Contains(t, result.Warnings[0], "Row 2")
}

func TestMapRowSkipsEmptyCells(t *testing.T) {
	m := newTestMapper()

	result := m.MapRow(map[string]string{
		"First Name": "Maya",
		"Mobile":     "03123456",
		"Gender":     "",
		"Instagram":  "",
	}, 0)

	require.NotNil(t, result.Contact)
	assert.Empty(t, result.Warnings)
	assert.NotContains(t, result.Contact.Properties, "faces_instagram")
}
