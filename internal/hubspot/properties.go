package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/faces-agency/talent-sync/internal/config"
	"github.com/faces-agency/talent-sync/internal/pkg/httpretry"
	"github.com/faces-agency/talent-sync/internal/pkg/logger"
)

// PropertyDefinition declares one CRM contact property in the agency's
// taxonomy. The catalog must be provisioned before mapped submissions
// are accepted by the CRM.
type PropertyDefinition struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	FieldType   string   `json:"fieldType"`
	GroupName   string   `json:"groupName"`
	Description string   `json:"description,omitempty"`
	Options     []Option `json:"options,omitempty"`
}

// Option is one enumerated value of a select property.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

const propertyGroupName = "faces_agency"

var propertyGroup = struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}{Name: propertyGroupName, Label: "Faces Agency"}

func textProp(name, label string) PropertyDefinition {
	return PropertyDefinition{Name: name, Label: label, Type: "string", FieldType: "text", GroupName: propertyGroupName}
}

func numberProp(name, label string) PropertyDefinition {
	return PropertyDefinition{Name: name, Label: label, Type: "number", FieldType: "number", GroupName: propertyGroupName}
}

func enumProp(name, label string, options ...Option) PropertyDefinition {
	return PropertyDefinition{Name: name, Label: label, Type: "enumeration", FieldType: "select", GroupName: propertyGroupName, Options: options}
}

func opts(values ...string) []Option {
	out := make([]Option, 0, len(values))
	for _, v := range values {
		out = append(out, Option{Label: v, Value: v})
	}
	return out
}

var yesNoOpts = []Option{{Label: "Yes", Value: "yes"}, {Label: "No", Value: "no"}}
var boolOpts = []Option{{Label: "Yes", Value: "true"}, {Label: "No", Value: "false"}}

// PropertyCatalog is the full contact taxonomy. firstname, lastname and
// email use HubSpot built-ins and are not declared here.
var PropertyCatalog = []PropertyDefinition{
	// Personal information
	enumProp("faces_gender", "Candidate Gender",
		Option{Label: "Male", Value: "male"}, Option{Label: "Female", Value: "female"}),
	textProp("faces_middle_name", "Middle Name"),
	{Name: "faces_date_of_birth", Label: "Date of Birth", Type: "date", FieldType: "date", GroupName: propertyGroupName},
	textProp("faces_nationality", "Nationality"),

	// Contact information
	withDescription(textProp("faces_mobile", "Mobile Number"), "Full phone number with country code"),
	withDescription(textProp("faces_whatsapp", "WhatsApp Number"), "Full WhatsApp number with country code"),
	textProp("faces_other_number", "Emergency Contact Number"),
	enumProp("faces_other_number_relationship", "Emergency Contact Relationship",
		opts("Mother", "Father", "Brother", "Sister", "Uncle", "Aunt", "Cousin",
			"Grandfather", "Grandmother", "Spouse", "Friend", "Colleague", "Other")...),
	textProp("faces_other_number_person_name", "Emergency Contact Name"),
	textProp("faces_instagram", "Instagram Username"),
	enumProp("faces_has_whish_account", "Has WHISH Account", yesNoOpts...),
	textProp("faces_whish_number", "WHISH Number"),

	// Location
	textProp("faces_governorate", "Governorate"),
	textProp("faces_district", "District"),
	textProp("faces_area", "Area"),

	// Languages
	textProp("faces_languages", "Languages"),
	textProp("faces_language_levels", "Language Proficiency Levels"),

	// Appearance
	textProp("faces_eye_color", "Eye Color"),
	textProp("faces_hair_color", "Hair Color"),
	enumProp("faces_hair_type", "Hair Type", opts("Straight", "Wavy", "Curly", "Coily")...),
	enumProp("faces_hair_length", "Hair Length",
		opts("Bald", "Buzz Cut", "Short", "Medium", "Long", "Very Long")...),
	textProp("faces_skin_tone", "Skin Tone"),
	enumProp("faces_has_tattoos", "Has Tattoos", boolOpts...),
	enumProp("faces_has_piercings", "Has Piercings", boolOpts...),

	// Measurements
	numberProp("faces_height_cm", "Height (cm)"),
	numberProp("faces_weight_kg", "Weight (kg)"),
	textProp("faces_pant_size", "Pant Size"),
	textProp("faces_jacket_size", "Jacket Size"),
	textProp("faces_shoe_size", "Shoe Size"),
	numberProp("faces_bust_cm", "Bust (cm)"),
	numberProp("faces_waist_cm", "Waist (cm)"),
	numberProp("faces_hips_cm", "Hips (cm)"),
	numberProp("faces_shoulders_cm", "Shoulders (cm)"),

	// Talents and skills
	textProp("faces_talents", "Talents"),
	textProp("faces_talent_levels", "Talent Proficiency Levels"),
	textProp("faces_sports", "Sports"),
	textProp("faces_sport_levels", "Sport Proficiency Levels"),
	textProp("faces_modeling_types", "Modeling Types"),
	enumProp("faces_has_modeling_experience", "Has Modeling Experience", yesNoOpts...),
	enumProp("faces_comfortable_with_swimwear", "Comfortable With Swimwear", boolOpts...),
	enumProp("faces_interested_in_extra_work", "Interested In Extra Work", yesNoOpts...),

	// Availability
	enumProp("faces_has_car", "Has Car", yesNoOpts...),
	enumProp("faces_has_driving_license", "Has Driving License", yesNoOpts...),
	enumProp("faces_willing_to_travel", "Willing To Travel", yesNoOpts...),
	enumProp("faces_has_valid_passport", "Has Valid Passport", yesNoOpts...),
	enumProp("faces_has_multiple_passports", "Has Multiple Passports", yesNoOpts...),
	textProp("faces_passport_countries", "Passport Countries"),
	enumProp("faces_has_look_alike_twin", "Has Look-Alike Twin", yesNoOpts...),

	// Referral
	withDescription(enumProp("faces_how_did_you_hear", "How Did You Hear About Us",
		opts("Instagram", "Facebook", "TikTok", "Friend or Family", "Google Search",
			"Event or Casting Call", "Other")...),
		"Marketing attribution - how the candidate found the agency"),

	// System fields
	withDescription(PropertyDefinition{Name: "faces_application_date", Label: "Application Date",
		Type: "datetime", FieldType: "date", GroupName: propertyGroupName},
		"When the application was submitted"),
	enumProp("faces_application_source", "Application Source",
		Option{Label: "Website", Value: "website"},
		Option{Label: "Excel Import", Value: "excel_import"},
		Option{Label: "Manual Entry", Value: "manual"}),
	withDescription(textProp("faces_application_record_id", "Application Record ID"),
		"Links to the applications table row"),
}

func withDescription(p PropertyDefinition, desc string) PropertyDefinition {
	p.Description = desc
	return p
}

// ProvisionSummary reports one EnsureProperties run.
type ProvisionSummary struct {
	Created int
	Skipped int
	Failed  []string
}

// Provisioner idempotently creates the property group and catalog in the
// CRM. Unlike the submission paths, provisioning retries transient
// failures: creates are idempotent (409 means already present).
type Provisioner struct {
	baseURL     string
	accessToken string
	httpClient  HTTPDoer
	delay       time.Duration
}

// NewProvisioner creates a property provisioner from HubSpot config.
func NewProvisioner(cfg config.HubSpotConfig) *Provisioner {
	return &Provisioner{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		httpClient:  httpretry.NewRetryClient(&http.Client{Timeout: cfg.Timeout()}, 3),
		delay:       100 * time.Millisecond,
	}
}

// SetHTTPClient sets a custom HTTP client (useful for testing)
func (p *Provisioner) SetHTTPClient(client HTTPDoer) { p.httpClient = client }

// SetDelay overrides the inter-create delay.
func (p *Provisioner) SetDelay(d time.Duration) { p.delay = d }

// EnsureProperties creates the property group and every catalog property,
// skipping anything that already exists. A failed group create aborts the
// run; individual property failures are collected and reported.
func (p *Provisioner) EnsureProperties(ctx context.Context) (ProvisionSummary, error) {
	summary := ProvisionSummary{}

	if err := p.create(ctx, "/crm/v3/properties/contacts/groups", propertyGroup); err != nil {
		if !isConflict(err) {
			return summary, fmt.Errorf("create property group: %w", err)
		}
	}

	for i, prop := range PropertyCatalog {
		err := p.create(ctx, "/crm/v3/properties/contacts", prop)
		switch {
		case err == nil:
			summary.Created++
			logger.Info("property created", "name", prop.Name)
		case isConflict(err):
			summary.Skipped++
			logger.Debug("property exists", "name", prop.Name)
		default:
			summary.Failed = append(summary.Failed, fmt.Sprintf("%s: %v", prop.Name, err))
			logger.Warn("property create failed", "name", prop.Name, "error", err)
		}

		if i < len(PropertyCatalog)-1 && p.delay > 0 {
			select {
			case <-time.After(p.delay):
			case <-ctx.Done():
				return summary, ctx.Err()
			}
		}
	}

	return summary, nil
}

func (p *Provisioner) create(ctx context.Context, endpoint string, body interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.accessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Body: string(respBody)}
	}
	return nil
}

func isConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict
}
