package api

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/faces-agency/talent-sync/internal/pkg/httputil"
	"github.com/faces-agency/talent-sync/internal/store"
)

var exportHeader = []string{
	"id", "created_at", "first_name", "middle_name", "last_name", "gender",
	"date_of_birth", "nationality", "email", "mobile", "whatsapp",
	"governorate", "district", "area", "languages", "talents", "sports",
	"height", "weight", "experience", "has_passport", "willing_to_travel",
}

// ExportApplications streams the filtered applications as CSV. The same
// query parameters as the listing apply; pagination is ignored so the
// export always covers the full filtered set.
func (h *Handlers) ExportApplications(w http.ResponseWriter, r *http.Request) {
	filter, err := parseListFilter(r)
	if err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	filter.Limit = 0
	filter.Offset = 0

	apps, _, err := h.repo.List(r.Context(), filter)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="applications-`+time.Now().UTC().Format("2006-01-02")+`.csv"`)

	cw := csv.NewWriter(w)
	cw.Write(exportHeader)
	for _, app := range apps {
		cw.Write(exportRecord(app))
	}
	cw.Flush()
}

func exportRecord(a store.Application) []string {
	return []string{
		a.ID,
		a.CreatedAt.UTC().Format(time.RFC3339),
		a.FirstName, a.MiddleName, a.LastName, a.Gender,
		a.DateOfBirth, a.Nationality, a.Email, a.Mobile, a.Whatsapp,
		a.Governorate, a.District, a.Area,
		jsonCell(a.Languages), jsonCell(a.Talents), jsonCell(a.Sports),
		a.Height, a.Weight, a.Experience,
		strconv.FormatBool(a.HasPassport), strconv.FormatBool(a.WillingToTravel),
	}
}

func jsonCell(items []string) string {
	if len(items) == 0 {
		return ""
	}
	data, _ := json.Marshal(items)
	return string(data)
}
