package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faces-agency/talent-sync/internal/config"
	"github.com/faces-agency/talent-sync/internal/hubspot"
	"github.com/faces-agency/talent-sync/internal/store"
)

const testAdminToken = "admin-secret"

// testStack wires the router against a mocked database and a fake CRM.
type testStack struct {
	router http.Handler
	mock   sqlmock.Sqlmock
	crm    *crmRecorder
}

// crmRecorder is an httptest-backed CRM that records requests.
type crmRecorder struct {
	server   *httptest.Server
	requests []recordedRequest
	failWith int
}

type recordedRequest struct {
	Method string
	Path   string
	Auth   string
}

func newCRMRecorder(t *testing.T) *crmRecorder {
	rec := &crmRecorder{}
	rec.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.requests = append(rec.requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Auth:   r.Header.Get("Authorization"),
		})

		if rec.failWith != 0 {
			w.WriteHeader(rec.failWith)
			w.Write([]byte(`{"message":"upstream error"}`))
			return
		}

		switch {
		case strings.HasSuffix(r.URL.Path, "/search"):
			json.NewEncoder(w).Encode(map[string]interface{}{
				"total": 0, "results": []interface{}{},
			})
		case r.Method == http.MethodPatch:
			json.NewEncoder(w).Encode(map[string]string{"id": "existing"})
		default:
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(map[string]string{"id": "crm-1"})
		}
	}))
	t.Cleanup(rec.server.Close)
	return rec
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	crm := newCRMRecorder(t)
	client := hubspot.NewClient(config.HubSpotConfig{
		AccessToken: "crm-token", BaseURL: crm.server.URL, TimeoutSeconds: 5,
	})

	handlers := NewHandlers(store.NewApplicationRepo(db), client)
	handlers.SetNow(func() time.Time {
		return time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	})

	router := SetupRoutes(handlers, RouterOptions{AdminToken: testAdminToken})
	return &testStack{router: router, mock: mock, crm: crm}
}

func validSubmission() string {
	return `{
		"firstName": "Maya",
		"lastName": "Khalil",
		"gender": "female",
		"mobile": "3123456",
		"mobileCountryCode": "+961",
		"governorate": "Beirut"
	}`
}

func TestHealthCheck(t *testing.T) {
	s := newTestStack(t)

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"ok"`)
}

func TestSubmitApplicationStoresAndSyncs(t *testing.T) {
	s := newTestStack(t)
	s.mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(validSubmission()))
	s.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp submitResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.CRM.Success)
	assert.Equal(t, "created", resp.CRM.Action)
	assert.Equal(t, "crm-1", resp.CRM.ContactID)

	// Search miss, then create, both with the server-side token.
	require.Len(t, s.crm.requests, 2)
	assert.Contains(t, s.crm.requests[0].Path, "/search")
	assert.Equal(t, "Bearer crm-token", s.crm.requests[0].Auth)
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestSubmitApplicationReportsCRMFailure(t *testing.T) {
	s := newTestStack(t)
	s.crm.failWith = http.StatusBadRequest
	s.mock.ExpectExec("INSERT INTO applications").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(validSubmission()))
	s.router.ServeHTTP(rr, req)

	// The application is stored even when the CRM mirror fails.
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp submitResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.False(t, resp.CRM.Success)
	assert.NotEmpty(t, resp.CRM.Error)
}

func TestSubmitApplicationInsertFailure(t *testing.T) {
	s := newTestStack(t)
	s.mock.ExpectExec("INSERT INTO applications").
		WillReturnError(assert.AnError)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(validSubmission()))
	s.router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	// No CRM call on a failed insert.
	assert.Empty(t, s.crm.requests)
}

func TestSubmitApplicationValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"mobile":"3123456","mobileCountryCode":"+961"}`},
		{"missing phone", `{"firstName":"Maya"}`},
		{"bad json", `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStack(t)
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/applications", strings.NewReader(tt.body))
			s.router.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestAdminEndpointsRequireToken(t *testing.T) {
	s := newTestStack(t)

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/admin/applications", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	s.router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAdminEndpointsClosedWithoutToken(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	crm := newCRMRecorder(t)
	client := hubspot.NewClient(config.HubSpotConfig{BaseURL: crm.server.URL, TimeoutSeconds: 5})
	router := SetupRoutes(NewHandlers(store.NewApplicationRepo(db), client), RouterOptions{})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/applications", nil)
	req.Header.Set("Authorization", "Bearer anything")
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestListApplications(t *testing.T) {
	s := newTestStack(t)

	s.mock.ExpectQuery("SELECT COUNT").
		WithArgs("%maya%", "female").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery("SELECT id, first_name").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet,
		"/api/admin/applications?search=maya&gender=female&limit=10", nil)
	req.Header.Set("Authorization", "Bearer "+testAdminToken)
	s.router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Applications []store.Application `json:"applications"`
		Total        int                 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)
	assert.NotNil(t, resp.Applications)
}

func TestListApplicationsBadParams(t *testing.T) {
	s := newTestStack(t)

	for _, query := range []string{"limit=abc", "offset=-1", "from=notadate"} {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin/applications?"+query, nil)
		req.Header.Set("Authorization", "Bearer "+testAdminToken)
		s.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code, "query %s", query)
	}
}
