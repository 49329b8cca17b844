package mapping

// ColumnRule binds one spreadsheet header to a CRM property name.
type ColumnRule struct {
	Header   string
	Property string
}

// DefaultColumnRules maps the historical spreadsheet headers onto the
// contact taxonomy. Order matters: rules are applied in sequence and a
// later rule targeting the same property overwrites an earlier one, so
// when a sheet carries both "Mobile" and "Phone" the "Phone" value wins.
var DefaultColumnRules = []ColumnRule{
	// Personal info
	{"First Name", "faces_first_name"},
	{"Middle Name", "faces_middle_name"},
	{"Last Name", "faces_last_name"},
	{"Gender", "faces_gender"},
	{"Date of Birth", "faces_date_of_birth"},
	{"DOB", "faces_date_of_birth"},
	{"Nationality", "faces_nationality"},

	// Contact
	{"Mobile", "faces_mobile"},
	{"Phone", "faces_mobile"},
	{"WhatsApp", "faces_whatsapp"},
	{"Instagram", "faces_instagram"},

	// Location
	{"Governorate", "faces_governorate"},
	{"District", "faces_district"},
	{"Area", "faces_area"},
	{"City", "faces_area"},

	// Appearance
	{"Eye Color", "faces_eye_color"},
	{"Hair Color", "faces_hair_color"},
	{"Hair Type", "faces_hair_type"},
	{"Hair Length", "faces_hair_length"},
	{"Skin Tone", "faces_skin_tone"},

	// Measurements
	{"Height", "faces_height_cm"},
	{"Height (cm)", "faces_height_cm"},
	{"Weight", "faces_weight_kg"},
	{"Weight (kg)", "faces_weight_kg"},
	{"Pant Size", "faces_pant_size"},
	{"Jacket Size", "faces_jacket_size"},
	{"Shoe Size", "faces_shoe_size"},
	{"Bust", "faces_bust_cm"},
	{"Waist", "faces_waist_cm"},
	{"Hips", "faces_hips_cm"},

	// Skills
	{"Languages", "faces_languages"},
	{"Talents", "faces_talents"},
	{"Sports", "faces_sports"},
	{"Experience", "faces_has_modeling_experience"},

	// Availability
	{"Has Car", "faces_has_car"},
	{"Has License", "faces_has_driving_license"},
	{"Can Travel", "faces_willing_to_travel"},
	{"Has Passport", "faces_has_valid_passport"},

	// Built-in CRM property
	{"Email", "email"},
}
