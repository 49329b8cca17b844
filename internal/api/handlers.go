package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/faces-agency/talent-sync/internal/hubspot"
	"github.com/faces-agency/talent-sync/internal/mapping"
	"github.com/faces-agency/talent-sync/internal/pkg/httputil"
	"github.com/faces-agency/talent-sync/internal/pkg/logger"
	"github.com/faces-agency/talent-sync/internal/store"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	repo *store.ApplicationRepo
	crm  *hubspot.Client
	now  func() time.Time
}

// NewHandlers wires the handlers to their dependencies.
func NewHandlers(repo *store.ApplicationRepo, crm *hubspot.Client) *Handlers {
	return &Handlers{repo: repo, crm: crm, now: time.Now}
}

// SetNow overrides the clock (useful for testing).
func (h *Handlers) SetNow(now func() time.Time) { h.now = now }

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok"})
}

// submitResponse reports both halves of a submission: the database
// insert and the CRM mirror. The two are not atomic; a CRM failure
// still returns the stored application id.
type submitResponse struct {
	ID  string             `json:"id"`
	CRM hubspot.SyncResult `json:"crm"`
}

// SubmitApplication accepts a live form submission, persists it, then
// mirrors it to the CRM via the upsert resolver.
func (h *Handlers) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	var form mapping.FormSubmission
	if !httputil.Decode(w, r, &form) {
		return
	}

	if form.FirstName == "" && form.LastName == "" {
		httputil.BadRequest(w, "name is required")
		return
	}
	if form.Mobile == "" && form.Whatsapp == "" {
		httputil.BadRequest(w, "phone number is required")
		return
	}

	app := applicationFromForm(form)
	id, err := h.repo.Insert(r.Context(), &app)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	properties := mapping.MapForm(form, id, h.now())
	result := h.crm.SyncContact(r.Context(), properties, form.PhoneKey())
	if !result.Success {
		logger.Warn("application stored but CRM sync failed",
			"application_id", id, "error", result.Error)
	}

	httputil.Created(w, submitResponse{ID: id, CRM: result})
}

// ListApplications serves the admin listing with filters and pagination.
func (h *Handlers) ListApplications(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	apps, total, err := h.repo.List(r.Context(), filter)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if apps == nil {
		apps = []store.Application{}
	}

	httputil.OK(w, map[string]interface{}{
		"applications": apps,
		"total":        total,
	})
}

func parseListFilter(r *http.Request) (store.ListFilter, error) {
	q := r.URL.Query()
	filter := store.ListFilter{
		Search: q.Get("search"),
		Gender: q.Get("gender"),
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errInvalidParam("limit", v)
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, errInvalidParam("offset", v)
		}
		filter.Offset = n
	}
	if v := q.Get("from"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return filter, errInvalidParam("from", v)
		}
		filter.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := parseDateParam(v)
		if err != nil {
			return filter, errInvalidParam("to", v)
		}
		// A bare date upper bound is inclusive of that whole day.
		if len(v) == len("2006-01-02") {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		filter.To = t
	}

	return filter, nil
}

func parseDateParam(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

type paramError struct{ name, value string }

func (e paramError) Error() string { return "invalid " + e.name + " parameter: " + e.value }

func errInvalidParam(name, value string) error { return paramError{name, value} }

func applicationFromForm(form mapping.FormSubmission) store.Application {
	return store.Application{
		FirstName:   form.FirstName,
		MiddleName:  form.MiddleName,
		LastName:    form.LastName,
		Gender:      form.Gender,
		DateOfBirth: form.DateOfBirth,
		Nationality: form.Nationality,
		Email:       form.Email,

		Mobile:      joinPhone(form.MobileCountryCode, form.Mobile),
		Whatsapp:    joinPhone(form.WhatsappCountryCode, form.Whatsapp),
		OtherNumber: joinPhone(form.OtherNumberCountryCode, form.OtherNumber),
		Instagram:   form.Instagram,

		Governorate: form.Governorate,
		District:    form.District,
		Area:        form.Area,

		Languages:      form.Languages,
		LanguageLevels: form.LanguageLevels,

		EyeColor:   firstNonEmpty(form.CustomEyeColor, form.EyeColor),
		HairColor:  firstNonEmpty(form.CustomHairColor, form.HairColor),
		HairType:   form.HairType,
		HairLength: form.HairLength,
		SkinTone:   form.SkinTone,

		Height:     form.Height,
		Weight:     form.Weight,
		PantSize:   form.PantSize,
		JacketSize: form.JacketSize,
		ShoeSize:   form.ShoeSize,
		Bust:       form.Bust,
		Waist:      form.Waist,
		Hips:       form.Hips,
		Shoulders:  form.Shoulders,

		Talents:      form.Talents,
		TalentLevels: form.TalentLevels,
		Sports:       form.Sports,
		SportLevels:  form.SportLevels,

		Experience:      form.Experience,
		HasPassport:     form.HasPassport == "yes",
		WillingToTravel: form.CanTravel == "yes",
	}
}

func joinPhone(countryCode, number string) string {
	if number == "" {
		return ""
	}
	return countryCode + " " + number
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
