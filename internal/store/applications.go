package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Application is one persisted submission row. List-valued answers are
// stored as JSON columns; photo URLs use a native text array.
type Application struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	FirstName   string `json:"firstName"`
	MiddleName  string `json:"middleName"`
	LastName    string `json:"lastName"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	Nationality string `json:"nationality"`
	Email       string `json:"email"`

	Mobile      string `json:"mobile"`
	Whatsapp    string `json:"whatsapp"`
	OtherNumber string `json:"otherNumber"`
	Instagram   string `json:"instagram"`

	Governorate string `json:"governorate"`
	District    string `json:"district"`
	Area        string `json:"area"`

	Languages      []string       `json:"languages"`
	LanguageLevels map[string]int `json:"languageLevels"`

	EyeColor   string `json:"eyeColor"`
	HairColor  string `json:"hairColor"`
	HairType   string `json:"hairType"`
	HairLength string `json:"hairLength"`
	SkinTone   string `json:"skinTone"`

	Height     string `json:"height"`
	Weight     string `json:"weight"`
	PantSize   string `json:"pantSize"`
	JacketSize string `json:"jacketSize"`
	ShoeSize   string `json:"shoeSize"`
	Bust       string `json:"bust"`
	Waist      string `json:"waist"`
	Hips       string `json:"hips"`
	Shoulders  string `json:"shoulders"`

	Talents      []string       `json:"talents"`
	TalentLevels map[string]int `json:"talentLevels"`
	Sports       []string       `json:"sports"`
	SportLevels  map[string]int `json:"sportLevels"`

	Experience      string   `json:"experience"`
	HasPassport     bool     `json:"hasPassport"`
	WillingToTravel bool     `json:"willingToTravel"`
	PhotoURLs       []string `json:"photoUrls"`
}

// ListFilter narrows the admin application listing.
type ListFilter struct {
	Search string // matches first or last name, case-insensitive
	Gender string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// ApplicationRepo reads and writes the applications table.
type ApplicationRepo struct{ db *sql.DB }

// NewApplicationRepo creates a Postgres-backed application repository.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{db: db} }

// Insert stores a new application and returns its id. An empty ID is
// assigned a fresh UUID; CreatedAt is always set server-side.
func (r *ApplicationRepo) Insert(ctx context.Context, a *Application) (string, error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}

	languages, err := json.Marshal(a.Languages)
	if err != nil {
		return "", fmt.Errorf("marshal languages: %w", err)
	}
	languageLevels, err := json.Marshal(a.LanguageLevels)
	if err != nil {
		return "", fmt.Errorf("marshal language levels: %w", err)
	}
	talents, err := json.Marshal(a.Talents)
	if err != nil {
		return "", fmt.Errorf("marshal talents: %w", err)
	}
	talentLevels, err := json.Marshal(a.TalentLevels)
	if err != nil {
		return "", fmt.Errorf("marshal talent levels: %w", err)
	}
	sports, err := json.Marshal(a.Sports)
	if err != nil {
		return "", fmt.Errorf("marshal sports: %w", err)
	}
	sportLevels, err := json.Marshal(a.SportLevels)
	if err != nil {
		return "", fmt.Errorf("marshal sport levels: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, first_name, middle_name, last_name, gender, date_of_birth,
			nationality, email, mobile, whatsapp, other_number, instagram,
			governorate, district, area, languages, language_levels,
			eye_color, hair_color, hair_type, hair_length, skin_tone,
			height, weight, pant_size, jacket_size, shoe_size,
			bust, waist, hips, shoulders,
			talents, talent_levels, sports, sport_levels,
			experience, has_passport, willing_to_travel, photo_urls, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30,
			$31, $32, $33, $34, $35, $36, $37, $38, $39, NOW()
		)
	`,
		a.ID, a.FirstName, a.MiddleName, a.LastName, a.Gender, a.DateOfBirth,
		a.Nationality, a.Email, a.Mobile, a.Whatsapp, a.OtherNumber, a.Instagram,
		a.Governorate, a.District, a.Area, languages, languageLevels,
		a.EyeColor, a.HairColor, a.HairType, a.HairLength, a.SkinTone,
		a.Height, a.Weight, a.PantSize, a.JacketSize, a.ShoeSize,
		a.Bust, a.Waist, a.Hips, a.Shoulders,
		talents, talentLevels, sports, sportLevels,
		a.Experience, a.HasPassport, a.WillingToTravel, pq.Array(a.PhotoURLs),
	)
	if err != nil {
		return "", fmt.Errorf("insert application: %w", err)
	}
	return a.ID, nil
}

// List returns applications matching the filter, newest first, along
// with the total count before pagination.
func (r *ApplicationRepo) List(ctx context.Context, f ListFilter) ([]Application, int, error) {
	where, args := buildFilter(f)

	var total int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications`+where, args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = total
	}
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, first_name, middle_name, last_name, gender, date_of_birth,
			nationality, email, mobile, whatsapp, other_number, instagram,
			governorate, district, area, languages, language_levels,
			eye_color, hair_color, hair_type, hair_length, skin_tone,
			height, weight, pant_size, jacket_size, shoe_size,
			bust, waist, hips, shoulders,
			talents, talent_levels, sports, sport_levels,
			experience, has_passport, willing_to_travel, photo_urls, created_at
		FROM applications`+where+`
		ORDER BY created_at DESC
		LIMIT $`+fmt.Sprint(len(args)-1)+` OFFSET $`+fmt.Sprint(len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate applications: %w", err)
	}
	return out, total, nil
}

// Count returns the total number of stored applications.
func (r *ApplicationRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`).Scan(&n)
	return n, err
}

func buildFilter(f ListFilter) (string, []interface{}) {
	var clauses []string
	var args []interface{}

	add := func(clause string, arg interface{}) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Search != "" {
		add(" (first_name ILIKE $%d OR last_name ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if f.Gender != "" {
		add(" gender = $%d", f.Gender)
	}
	if !f.From.IsZero() {
		add(" created_at >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add(" created_at <= $%d", f.To)
	}

	if len(clauses) == 0 {
		return "", nil
	}
	where := " WHERE" + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND" + c
	}
	return where, args
}

func scanApplication(rows *sql.Rows) (Application, error) {
	var a Application
	var languages, languageLevels, talents, talentLevels, sports, sportLevels []byte

	err := rows.Scan(
		&a.ID, &a.FirstName, &a.MiddleName, &a.LastName, &a.Gender, &a.DateOfBirth,
		&a.Nationality, &a.Email, &a.Mobile, &a.Whatsapp, &a.OtherNumber, &a.Instagram,
		&a.Governorate, &a.District, &a.Area, &languages, &languageLevels,
		&a.EyeColor, &a.HairColor, &a.HairType, &a.HairLength, &a.SkinTone,
		&a.Height, &a.Weight, &a.PantSize, &a.JacketSize, &a.ShoeSize,
		&a.Bust, &a.Waist, &a.Hips, &a.Shoulders,
		&talents, &talentLevels, &sports, &sportLevels,
		&a.Experience, &a.HasPassport, &a.WillingToTravel, pq.Array(&a.PhotoURLs), &a.CreatedAt,
	)
	if err != nil {
		return a, fmt.Errorf("scan application: %w", err)
	}

	for _, col := range []struct {
		data []byte
		dest interface{}
	}{
		{languages, &a.Languages},
		{languageLevels, &a.LanguageLevels},
		{talents, &a.Talents},
		{talentLevels, &a.TalentLevels},
		{sports, &a.Sports},
		{sportLevels, &a.SportLevels},
	} {
		if len(col.data) == 0 {
			continue
		}
		if err := json.Unmarshal(col.data, col.dest); err != nil {
			return a, fmt.Errorf("decode application %s: %w", a.ID, err)
		}
	}
	return a, nil
}
