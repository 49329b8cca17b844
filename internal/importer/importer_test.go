package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faces-agency/talent-sync/internal/config"
	"github.com/faces-agency/talent-sync/internal/hubspot"
	"github.com/faces-agency/talent-sync/internal/mapping"
	"github.com/faces-agency/talent-sync/internal/normalize"
)

func newTestMapper() *mapping.Mapper {
	m := mapping.NewMapper(normalize.PhoneRules{
		CountryCode:      "+961",
		TrunkPrefix:      "0",
		MaxSubscriberLen: 8,
	}, "excel_import")
	m.SetNow(func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	})
	return m
}

func TestProcessCountsAndDedupes(t *testing.T) {
	rows := []map[string]string{
		{"First Name": "Maya", "Mobile": "03123456"},
		{"First Name": "Rima", "Mobile": "03999999"},
		{"First Name": "Maya Again", "Mobile": "+961 3123456"}, // same key as row 1
		{"Mobile": "03777777"},      // no name
		{"First Name": "Phoneless"}, // no phone
	}

	imp := New(newTestMapper(), nil)
	summary, contacts := imp.Process(rows)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, 3, summary.Valid)
	assert.Equal(t, 2, summary.Invalid)
	assert.Equal(t, 1, summary.Duplicates)
	assert.Equal(t, 2, summary.Ready)
	require.Len(t, contacts, 2)
	assert.Equal(t, "Maya", contacts[0].Properties["faces_first_name"])

	require.Len(t, summary.Errors, 2)
	assert.Contains(t, summary.Errors[0], "Missing name")
	assert.Contains(t, summary.Errors[1], "Missing phone number")
}

func TestProcessCollectsWarnings(t *testing.T) {
	rows := []map[string]string{
		{"First Name": "Maya", "Mobile": "03123456", "Gender": "???"},
	}

	imp := New(newTestMapper(), nil)
	summary, contacts := imp.Process(rows)

	assert.Equal(t, 1, summary.Valid)
	require.Len(t, summary.Warnings, 1)
	assert.Contains(t, summary.Warnings[0], "faces_gender")
	assert.NotContains(t, contacts[0].Properties, "faces_gender")
}

func TestEndToEndImport(t *testing.T) {
	// 250 rows: 3 invalid, 10 duplicates of earlier phones. The 237
	// survivors upload in chunks of 100.
	var rows []map[string]string
	for i := 0; i < 237; i++ {
		rows = append(rows, map[string]string{
			"First Name": fmt.Sprintf("Candidate%d", i),
			"Mobile":     fmt.Sprintf("037%05d", i),
		})
	}
	for i := 0; i < 10; i++ {
		rows = append(rows, map[string]string{
			"First Name": fmt.Sprintf("Dup%d", i),
			"Mobile":     fmt.Sprintf("037%05d", i),
		})
	}
	rows = append(rows,
		map[string]string{"Mobile": "03700001"},
		map[string]string{"First Name": "NoPhone"},
		map[string]string{},
	)

	var batchSizes []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Inputs []hubspot.Contact `json:"inputs"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		batchSizes = append(batchSizes, len(req.Inputs))

		results := make([]map[string]string, len(req.Inputs))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"results": results})
	}))
	defer server.Close()

	client := hubspot.NewClient(config.HubSpotConfig{
		AccessToken: "t", BaseURL: server.URL, TimeoutSeconds: 5,
	})
	uploader := hubspot.NewBatchUploader(client, 100, 0)
	imp := New(newTestMapper(), uploader)

	summary, contacts := imp.Process(rows)
	imp.Upload(context.Background(), contacts, &summary)

	assert.Equal(t, 250, summary.Total)
	assert.Equal(t, 247, summary.Valid)
	assert.Equal(t, 3, summary.Invalid)
	assert.Equal(t, 10, summary.Duplicates)
	assert.Equal(t, 237, summary.Ready)
	assert.Equal(t, 237, summary.Created)
	assert.Equal(t, []int{100, 100, 37}, batchSizes)
}

func TestReadRowsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "candidates.csv")
	content := "\uFEFFFirst Name,Mobile,Notes\nMaya,03123456,vip\nRima,03999999\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Maya", rows[0]["First Name"])
	assert.Equal(t, "03123456", rows[0]["Mobile"])
	assert.Equal(t, "vip", rows[0]["Notes"])
	// Short record: missing trailing cell stays absent.
	assert.Equal(t, "Rima", rows[1]["First Name"])
	assert.NotContains(t, rows[1], "Notes")
}

func TestWriteCleanedRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out_cleaned.xlsx")

	contacts := []hubspot.Contact{
		{Properties: map[string]string{"faces_first_name": "Maya", "faces_mobile": "+961 3123456"}},
		{Properties: map[string]string{"faces_first_name": "Rima", "faces_whatsapp": "+961 71234567"}},
	}

	require.NoError(t, WriteCleaned(contacts, path))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Maya", rows[0]["faces_first_name"])
	assert.Equal(t, "+961 3123456", rows[0]["faces_mobile"])
	assert.Equal(t, "+961 71234567", rows[1]["faces_whatsapp"])
}

func TestCleanedPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"data.xlsx", "data_cleaned.xlsx"},
		{"data.XLSX", "data_cleaned.xlsx"},
		{"data.csv", "data_cleaned.xlsx"},
		{"archive/may.xlsm", "archive/may_cleaned.xlsx"},
		{"noext", "noext_cleaned.xlsx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanedPath(tt.in), "input %q", tt.in)
	}
}
