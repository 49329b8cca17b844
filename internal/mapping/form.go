package mapping

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/faces-agency/talent-sync/internal/normalize"
)

// FormSubmission is the live application form payload. Phone numbers
// arrive split into a country-code selector and a bare number; list
// fields arrive as real arrays, with proficiency levels keyed by item.
type FormSubmission struct {
	Gender      string `json:"gender"`
	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
	Email       string `json:"email"`

	Mobile                  string `json:"mobile"`
	MobileCountryCode       string `json:"mobileCountryCode"`
	Whatsapp                string `json:"whatsapp"`
	WhatsappCountryCode     string `json:"whatsappCountryCode"`
	OtherNumber             string `json:"otherNumber"`
	OtherNumberCountryCode  string `json:"otherNumberCountryCode"`
	OtherNumberRelationship string `json:"otherNumberRelationship"`
	OtherNumberPersonName   string `json:"otherNumberPersonName"`
	Instagram               string `json:"instagram"`
	HasWhishAccount         string `json:"hasWhishAccount"`
	WhishNumber             string `json:"whishNumber"`
	WhishCountryCode        string `json:"whishCountryCode"`

	Governorate string `json:"governorate"`
	District    string `json:"district"`
	Area        string `json:"area"`

	Languages      []string       `json:"languages"`
	LanguageLevels map[string]int `json:"languageLevels"`
	CustomLanguage string         `json:"customLanguage"`

	Height     string `json:"height"`
	Weight     string `json:"weight"`
	PantSize   string `json:"pantSize"`
	JacketSize string `json:"jacketSize"`
	ShoeSize   string `json:"shoeSize"`
	Bust       string `json:"bust"`
	Waist      string `json:"waist"`
	Hips       string `json:"hips"`
	Shoulders  string `json:"shoulders"`

	EyeColor        string `json:"eyeColor"`
	HairColor       string `json:"hairColor"`
	HairType        string `json:"hairType"`
	HairLength      string `json:"hairLength"`
	SkinTone        string `json:"skinTone"`
	HasTattoos      bool   `json:"hasTattoos"`
	HasPiercings    bool   `json:"hasPiercings"`
	CustomEyeColor  string `json:"customEyeColor"`
	CustomHairColor string `json:"customHairColor"`

	Talents        []string       `json:"talents"`
	TalentLevels   map[string]int `json:"talentLevels"`
	Sports         []string       `json:"sports"`
	SportLevels    map[string]int `json:"sportLevels"`
	Modeling       []string       `json:"modeling"`
	CustomTalent   string         `json:"customTalent"`
	CustomSport    string         `json:"customSport"`
	CustomModeling string         `json:"customModeling"`

	Experience              string `json:"experience"`
	InterestedInExtra       string `json:"interestedInExtra"`
	ComfortableWithSwimwear *bool  `json:"comfortableWithSwimwear"`

	HasCar               string   `json:"hasCar"`
	HasLicense           string   `json:"hasLicense"`
	IsEmployed           string   `json:"isEmployed"`
	CanTravel            string   `json:"canTravel"`
	HasPassport          string   `json:"hasPassport"`
	HasMultiplePassports string   `json:"hasMultiplePassports"`
	Passports            []string `json:"passports"`
	HasLookAlikeTwin     string   `json:"hasLookAlikeTwin"`

	HowDidYouHear      string `json:"howDidYouHear"`
	HowDidYouHearOther string `json:"howDidYouHearOther"`
}

// PhoneKey returns the canonical phone value used for CRM dedupe lookup.
func (f FormSubmission) PhoneKey() string {
	return f.MobileCountryCode + " " + f.Mobile
}

// MapForm flattens a form submission into cleaned CRM properties.
// recordID links the contact back to its applications table row; pass
// "" when the row insert failed. Values that normalize to empty are
// dropped, so optional fields the candidate skipped never hit the wire.
func MapForm(form FormSubmission, recordID string, now time.Time) map[string]string {
	props := map[string]string{
		"email":               form.Email,
		"firstname":           form.FirstName,
		"lastname":            form.LastName,
		"faces_middle_name":   form.MiddleName,
		"faces_gender":        form.Gender,
		"faces_date_of_birth": form.DateOfBirth,
		"faces_nationality":   form.Nationality,

		"faces_mobile":   form.MobileCountryCode + " " + form.Mobile,
		"faces_whatsapp": form.WhatsappCountryCode + " " + form.Whatsapp,

		"faces_other_number_person_name": form.OtherNumberPersonName,
		"faces_instagram":                form.Instagram,
		"faces_has_whish_account":        form.HasWhishAccount,

		"faces_governorate": form.Governorate,
		"faces_district":    form.District,
		"faces_area":        form.Area,

		"faces_skin_tone": form.SkinTone,

		"faces_height_cm":    form.Height,
		"faces_weight_kg":    form.Weight,
		"faces_pant_size":    form.PantSize,
		"faces_jacket_size":  form.JacketSize,
		"faces_shoe_size":    form.ShoeSize,
		"faces_bust_cm":      form.Bust,
		"faces_waist_cm":     form.Waist,
		"faces_hips_cm":      form.Hips,
		"faces_shoulders_cm": form.Shoulders,

		"faces_has_modeling_experience":  form.Experience,
		"faces_interested_in_extra_work": form.InterestedInExtra,

		"faces_has_car":                form.HasCar,
		"faces_has_driving_license":    form.HasLicense,
		"faces_willing_to_travel":      form.CanTravel,
		"faces_has_valid_passport":     form.HasPassport,
		"faces_has_multiple_passports": form.HasMultiplePassports,
		"faces_has_look_alike_twin":    form.HasLookAlikeTwin,

		"faces_has_tattoos":   strconv.FormatBool(form.HasTattoos),
		"faces_has_piercings": strconv.FormatBool(form.HasPiercings),

		"faces_application_date":      now.UTC().Format(time.RFC3339),
		"faces_application_source":    "website",
		"faces_application_record_id": recordID,
	}

	// Emergency and payout numbers only carry their country code when a
	// number was actually entered.
	if form.OtherNumber != "" {
		props["faces_other_number"] = form.OtherNumberCountryCode + " " + form.OtherNumber
	}
	if form.WhishNumber != "" {
		props["faces_whish_number"] = form.WhishCountryCode + " " + form.WhishNumber
	}

	// The CRM enum options are capitalized ("Mother", "Wavy", "Long").
	if form.OtherNumberRelationship != "" {
		props["faces_other_number_relationship"] = normalize.CapitalizeWords(form.OtherNumberRelationship)
	}
	if form.HairType != "" {
		props["faces_hair_type"] = normalize.CapitalizeWords(form.HairType)
	}
	if form.HairLength != "" {
		props["faces_hair_length"] = normalize.CapitalizeWords(form.HairLength)
	}

	// Custom free-text entries override the picker values.
	props["faces_eye_color"] = firstNonEmpty(form.CustomEyeColor, form.EyeColor)
	props["faces_hair_color"] = firstNonEmpty(form.CustomHairColor, form.HairColor)

	props["faces_languages"] = jsonList(form.Languages)
	props["faces_language_levels"] = jsonLevels(form.LanguageLevels)
	props["faces_talents"] = jsonList(form.Talents)
	props["faces_talent_levels"] = jsonLevels(form.TalentLevels)
	props["faces_sports"] = jsonList(form.Sports)
	props["faces_sport_levels"] = jsonLevels(form.SportLevels)
	props["faces_modeling_types"] = jsonList(form.Modeling)
	props["faces_passport_countries"] = jsonList(form.Passports)

	if form.ComfortableWithSwimwear != nil {
		props["faces_comfortable_with_swimwear"] = strconv.FormatBool(*form.ComfortableWithSwimwear)
	}

	if form.HowDidYouHear != "" {
		referral := form.HowDidYouHear
		if referral == "Other" && form.HowDidYouHearOther != "" {
			referral = "Other: " + form.HowDidYouHearOther
		}
		props["faces_how_did_you_hear"] = referral
	}

	return CleanProperties(props)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func jsonList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	data, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(data)
}

func jsonLevels(levels map[string]int) string {
	if len(levels) == 0 {
		return ""
	}
	data, err := json.Marshal(levels)
	if err != nil {
		return ""
	}
	return string(data)
}
