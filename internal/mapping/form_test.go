package mapping

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleForm() FormSubmission {
	swimwear := true
	return FormSubmission{
		Gender:      "female",
		FirstName:   "Maya",
		MiddleName:  "Rose",
		LastName:    "Khalil",
		DateOfBirth: "2001-12-31",
		Nationality: "Lebanese",
		Email:       "maya@example.com",

		Mobile:              "3123456",
		MobileCountryCode:   "+961",
		Whatsapp:            "71234567",
		WhatsappCountryCode: "+961",

		OtherNumber:             "3999999",
		OtherNumberCountryCode:  "+961",
		OtherNumberRelationship: "mother",
		OtherNumberPersonName:   "Rima",

		Governorate: "Beirut",
		District:    "Beirut",
		Area:        "Hamra",

		Languages:      []string{"Arabic", "English"},
		LanguageLevels: map[string]int{"Arabic": 5, "English": 4},

		Height:   "170",
		Weight:   "55",
		EyeColor: "brown",

		HairColor:  "dark brown",
		HairType:   "wavy",
		HairLength: "long",

		HasTattoos:   false,
		HasPiercings: true,

		Talents: []string{"Acting"},

		Experience:              "yes",
		ComfortableWithSwimwear: &swimwear,

		HasCar:    "yes",
		Passports: []string{"Lebanon", "France"},

		HowDidYouHear: "Instagram",
	}
}

func TestMapFormBasics(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	props := MapForm(sampleForm(), "rec-123", now)

	assert.Equal(t, "Maya", props["firstname"])
	assert.Equal(t, "Khalil", props["lastname"])
	assert.Equal(t, "maya@example.com", props["email"])
	assert.Equal(t, "+961 3123456", props["faces_mobile"])
	assert.Equal(t, "+961 71234567", props["faces_whatsapp"])
	assert.Equal(t, "+961 3999999", props["faces_other_number"])
	assert.Equal(t, "2026-03-15T10:30:00Z", props["faces_application_date"])
	assert.Equal(t, "website", props["faces_application_source"])
	assert.Equal(t, "rec-123", props["faces_application_record_id"])
}

func TestMapFormCapitalizesEnums(t *testing.T) {
	props := MapForm(sampleForm(), "", time.Now())

	assert.Equal(t, "Mother", props["faces_other_number_relationship"])
	assert.Equal(t, "Wavy", props["faces_hair_type"])
	assert.Equal(t, "Long", props["faces_hair_length"])
}

func TestMapFormEncodesListsAsJSON(t *testing.T) {
	props := MapForm(sampleForm(), "", time.Now())

	assert.Equal(t, `["Arabic","English"]`, props["faces_languages"])
	assert.JSONEq(t, `{"Arabic":5,"English":4}`, props["faces_language_levels"])
	assert.Equal(t, `["Lebanon","France"]`, props["faces_passport_countries"])
}

func TestMapFormBooleansAlwaysPresent(t *testing.T) {
	props := MapForm(sampleForm(), "", time.Now())

	assert.Equal(t, "false", props["faces_has_tattoos"])
	assert.Equal(t, "true", props["faces_has_piercings"])
	assert.Equal(t, "true", props["faces_comfortable_with_swimwear"])
}

func TestMapFormSwimwearOmittedWhenUnanswered(t *testing.T) {
	form := sampleForm()
	form.ComfortableWithSwimwear = nil

	props := MapForm(form, "", time.Now())
	assert.NotContains(t, props, "faces_comfortable_with_swimwear")
}

func TestMapFormCustomValuesOverridePickers(t *testing.T) {
	form := sampleForm()
	form.CustomEyeColor = "heterochromia"
	form.CustomHairColor = ""

	props := MapForm(form, "", time.Now())
	assert.Equal(t, "heterochromia", props["faces_eye_color"])
	assert.Equal(t, "dark brown", props["faces_hair_color"])
}

func TestMapFormOtherReferralDetail(t *testing.T) {
	form := sampleForm()
	form.HowDidYouHear = "Other"
	form.HowDidYouHearOther = "billboard in Jounieh"

	props := MapForm(form, "", time.Now())
	assert.Equal(t, "Other: billboard in Jounieh", props["faces_how_did_you_hear"])
}

func TestMapFormDropsEmptyValues(t *testing.T) {
	form := sampleForm()
	form.OtherNumber = ""
	form.Languages = nil
	form.LanguageLevels = nil

	props := MapForm(form, "", time.Now())

	assert.NotContains(t, props, "faces_other_number")
	assert.NotContains(t, props, "faces_languages")
	assert.NotContains(t, props, "faces_language_levels")
	assert.NotContains(t, props, "faces_application_record_id")
}

func TestCleanProperties(t *testing.T) {
	cleaned := CleanProperties(map[string]string{
		"keep":      "value",
		"trim":      "  padded  ",
		"empty":     "",
		"blank":     "   ",
		"emptyList": "[]",
		"emptyMap":  "{}",
	})

	require.Len(t, cleaned, 2)
	assert.Equal(t, "value", cleaned["keep"])
	assert.Equal(t, "padded", cleaned["trim"])
}

func TestPhoneKey(t *testing.T) {
	form := sampleForm()
	assert.Equal(t, "+961 3123456", form.PhoneKey())
}
