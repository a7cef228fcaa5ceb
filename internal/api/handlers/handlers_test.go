// Package handlers_test provides behavior tests for the API handlers package.
package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/zonekeeper/internal/api"
	"github.com/jroosing/zonekeeper/internal/api/handlers"
	"github.com/jroosing/zonekeeper/internal/api/models"
	"github.com/jroosing/zonekeeper/internal/config"
	"github.com/jroosing/zonekeeper/internal/database"
	"github.com/jroosing/zonekeeper/internal/pdns"
	"github.com/jroosing/zonekeeper/internal/records"
	"github.com/jroosing/zonekeeper/internal/reverse"
	"github.com/jroosing/zonekeeper/internal/validation"
	"github.com/jroosing/zonekeeper/internal/zones"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	router *gin.Engine
	db     *database.DB
	cfg    *config.Config
}

// newTestEnv wires a router on top of a fresh database, mirroring the
// assembly done in main. dnssec may be nil.
func newTestEnv(t *testing.T, dnssec *pdns.Client) *testEnv {
	t.Helper()

	cfg := config.Default()
	cfg.Interface.AddReverseRecord = true
	cfg.Interface.ShowRecordComments = true
	cfg.Interface.ShowZoneComments = true

	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := validation.New(cfg.DNS.TTL)
	recordSvc := records.NewService(db, validator, nil, records.LastWriterWins, logger)
	zoneSvc := zones.NewService(db, cfg.DNS, logger)
	reverseCreator := reverse.NewCreator(db, recordSvc, logger)

	h := handlers.New(cfg, db, zoneSvc, recordSvc, reverseCreator, dnssec, logger)

	router := gin.New()
	api.RegisterRoutes(router, h, cfg)
	return &testEnv{router: router, db: db, cfg: cfg}
}

func performRequest(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

// createZone makes a zone through the API and returns its ID.
func (env *testEnv) createZone(t *testing.T, name, kind string) int64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"type":%q}`, name, kind)
	w := performRequest(env.router, "POST", "/api/v1/zones", body)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	return decode[models.ZoneResponse](t, w).ID
}

// ============================================================================
// Health and Stats Tests
// ============================================================================

func TestHealth_ReturnsOK(t *testing.T) {
	env := newTestEnv(t, nil)

	w := performRequest(env.router, "GET", "/api/v1/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.StatusResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
}

func TestStats_ReturnsServerStats(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "GET", "/api/v1/stats", "")

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ServerStatsResponse](t, w)
	assert.Equal(t, 1, resp.Zones.ZoneCount)
	assert.Equal(t, 3, resp.Zones.RecordCount) // SOA + 2 NS
	assert.Positive(t, resp.GoRoutines)
}

// ============================================================================
// Zone Endpoint Tests
// ============================================================================

func TestCreateZone_SeedsDefaultRecords(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/records", id), "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.RecordListResponse](t, w)
	require.Equal(t, 3, resp.Count)
	assert.Equal(t, "SOA", resp.Records[0].Type) // SOA always first
}

func TestCreateZone_InvalidKind(t *testing.T) {
	env := newTestEnv(t, nil)

	w := performRequest(env.router, "POST", "/api/v1/zones",
		`{"name":"example.com","type":"PRIMARY"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateZone_Duplicate(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST", "/api/v1/zones",
		`{"name":"EXAMPLE.COM","type":"NATIVE"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListZones_IncludesRecordCounts(t *testing.T) {
	env := newTestEnv(t, nil)
	env.createZone(t, "example.com", "MASTER")
	env.createZone(t, "example.org", "NATIVE")

	w := performRequest(env.router, "GET", "/api/v1/zones", "")

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.ZoneListResponse](t, w)
	assert.Equal(t, 2, resp.Count)
	for _, z := range resp.Zones {
		assert.Equal(t, 3, z.RecordCount, z.Name)
	}
}

func TestGetZone_NotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	w := performRequest(env.router, "GET", "/api/v1/zones/9999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteZone_RemovesRecords(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "DELETE", fmt.Sprintf("/api/v1/zones/%d", id), "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d", id), "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestZoneComment_RoundTrip(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "PUT", fmt.Sprintf("/api/v1/zones/%d/comment", id),
		`{"comment":"managed by ops"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/comment", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "managed by ops", decode[models.ZoneCommentResponse](t, w).Comment)
}

func TestExportZone_BindFormat(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/export", id), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "$ORIGIN example.com.")
	assert.Contains(t, w.Body.String(), "SOA")
}

// ============================================================================
// Record Endpoint Tests
// ============================================================================

func TestCreateRecord_BumpsSerial(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/records", id),
		`{"name":"www","type":"A","content":"192.0.2.10"}`)

	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	resp := decode[models.MutationResponse](t, w)
	require.NotNil(t, resp.Record)
	assert.Equal(t, "www.example.com", resp.Record.Name)
	assert.Equal(t, 3600, resp.Record.TTL)
}

func TestCreateRecord_InvalidContent(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/records", id),
		`{"name":"www","type":"A","content":"not-an-ip"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateRecord_Duplicate(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")
	body := `{"name":"www","type":"A","content":"192.0.2.10"}`

	w := performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/records", id), body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/records", id), body)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateRecord_WithReverse_PairsPTR(t *testing.T) {
	env := newTestEnv(t, nil)
	fwd := env.createZone(t, "example.com", "MASTER")
	rev := env.createZone(t, "1.0.10.in-addr.arpa", "MASTER")

	w := performRequest(env.router, "POST",
		fmt.Sprintf("/api/v1/zones/%d/records?reverse=1", fwd),
		`{"name":"www","type":"A","content":"10.0.1.5"}`)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	assert.Empty(t, decode[models.MutationResponse](t, w).Warning)

	w = performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/records", rev), "")
	require.Equal(t, http.StatusOK, w.Code)
	var ptr *models.RecordResponse
	for _, r := range decode[models.RecordListResponse](t, w).Records {
		if r.Type == "PTR" {
			ptr = &r
			break
		}
	}
	require.NotNil(t, ptr, "PTR record should exist in the reverse zone")
	assert.Equal(t, "5.1.0.10.in-addr.arpa", ptr.Name)
	assert.Equal(t, "www.example.com.", ptr.Content)
}

func TestCreateRecord_WithReverse_NoReverseZoneWarns(t *testing.T) {
	env := newTestEnv(t, nil)
	fwd := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST",
		fmt.Sprintf("/api/v1/zones/%d/records?reverse=1", fwd),
		`{"name":"www","type":"A","content":"10.0.1.5"}`)

	// The forward record still commits; the missing reverse zone is a warning.
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode[models.MutationResponse](t, w)
	require.NotNil(t, resp.Record)
	assert.NotEmpty(t, resp.Warning)
}

func TestCreateRecord_PTRWithForward_PairsA(t *testing.T) {
	env := newTestEnv(t, nil)
	fwd := env.createZone(t, "example.com", "MASTER")
	rev := env.createZone(t, "1.0.10.in-addr.arpa", "MASTER")

	w := performRequest(env.router, "POST",
		fmt.Sprintf("/api/v1/zones/%d/records?forward=1", rev),
		`{"name":"5","type":"PTR","content":"www.example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	assert.Empty(t, decode[models.MutationResponse](t, w).Warning)

	w = performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/records", fwd), "")
	require.Equal(t, http.StatusOK, w.Code)
	var a *models.RecordResponse
	for _, r := range decode[models.RecordListResponse](t, w).Records {
		if r.Type == "A" {
			a = &r
			break
		}
	}
	require.NotNil(t, a, "A record should exist in the forward zone")
	assert.Equal(t, "www.example.com", a.Name)
	assert.Equal(t, "10.0.1.5", a.Content)
}

func TestCreateRecord_ReverseDisabledByConfig(t *testing.T) {
	env := newTestEnv(t, nil)
	env.cfg.Interface.AddReverseRecord = false
	fwd := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST",
		fmt.Sprintf("/api/v1/zones/%d/records?reverse=1", fwd),
		`{"name":"www","type":"A","content":"10.0.1.5"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateRecord_NoOpDetected(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/records", id),
		`{"name":"www","type":"A","content":"192.0.2.10"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	rid := decode[models.MutationResponse](t, w).Record.ID

	w = performRequest(env.router, "PUT",
		fmt.Sprintf("/api/v1/zones/%d/records/%d", id, rid),
		`{"name":"www","type":"A","content":"192.0.2.10"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.MutationResponse](t, w).NoOp)
}

func TestUpdateRecord_ChangesContent(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/records", id),
		`{"name":"www","type":"A","content":"192.0.2.10"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	rid := decode[models.MutationResponse](t, w).Record.ID

	w = performRequest(env.router, "PUT",
		fmt.Sprintf("/api/v1/zones/%d/records/%d", id, rid),
		`{"name":"www","type":"A","content":"192.0.2.20"}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.MutationResponse](t, w)
	assert.False(t, resp.NoOp)
	assert.Equal(t, "192.0.2.20", resp.Record.Content)
}

func TestDeleteRecord_WithDeletePTR(t *testing.T) {
	env := newTestEnv(t, nil)
	fwd := env.createZone(t, "example.com", "MASTER")
	rev := env.createZone(t, "1.0.10.in-addr.arpa", "MASTER")

	w := performRequest(env.router, "POST",
		fmt.Sprintf("/api/v1/zones/%d/records?reverse=1", fwd),
		`{"name":"www","type":"A","content":"10.0.1.5"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	rid := decode[models.MutationResponse](t, w).Record.ID

	w = performRequest(env.router, "DELETE",
		fmt.Sprintf("/api/v1/zones/%d/records/%d?delete_ptr=1", fwd, rid), "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	w = performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/records", rev), "")
	require.Equal(t, http.StatusOK, w.Code)
	for _, r := range decode[models.RecordListResponse](t, w).Records {
		assert.NotEqual(t, "PTR", r.Type, "PTR should have been deleted alongside the A record")
	}
}

func TestBulkCreateRecords_TalliesFailures(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST",
		fmt.Sprintf("/api/v1/zones/%d/records/bulk", id),
		`{"records":[
			{"name":"a","type":"A","content":"192.0.2.1"},
			{"name":"b","type":"A","content":"192.0.2.2"},
			{"name":"bad","type":"A","content":"not-an-ip"}
		]}`)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.BulkRecordsResponse](t, w)
	assert.Equal(t, 2, resp.Created)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0], "bad A")
}

func TestRecordComment_ShownInList(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/records", id),
		`{"name":"www","type":"A","content":"192.0.2.10","comment":"web frontend"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/records", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	found := false
	for _, r := range decode[models.RecordListResponse](t, w).Records {
		if r.Name == "www.example.com" {
			assert.Equal(t, "web frontend", r.Comment)
			found = true
		}
	}
	assert.True(t, found)
}

// ============================================================================
// Batch PTR Endpoint Tests
// ============================================================================

func TestBatchPTRIPv6_CreatesPairs(t *testing.T) {
	env := newTestEnv(t, nil)
	fwd := env.createZone(t, "example.com", "MASTER")
	env.createZone(t, "1.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa", "MASTER")

	w := performRequest(env.router, "POST", "/api/v1/batch/ptr/ipv6",
		fmt.Sprintf(`{"network_prefix":"2001:db8:0:1","host_prefix":"host","domain":"example.com","zone_id":%d,"count":4}`, fwd))

	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	resp := decode[reverse.BatchResult](t, w)
	assert.Equal(t, 4, resp.Created)
	assert.Zero(t, resp.Failed)
}

func TestBatchPTRIPv4_InvalidPrefix(t *testing.T) {
	env := newTestEnv(t, nil)
	fwd := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST", "/api/v1/batch/ptr/ipv4",
		fmt.Sprintf(`{"network_prefix":"10.0","domain":"example.com","zone_id":%d}`, fwd))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ============================================================================
// DNSSEC Endpoint Tests
// ============================================================================

// fakePowerDNS imitates the small slice of the PowerDNS API the client uses.
func fakePowerDNS(t *testing.T) *httptest.Server {
	t.Helper()
	secured := false
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/servers/localhost/zones/example.com.", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id": "example.com.", "name": "example.com.", "dnssec": secured,
			})
		case http.MethodPut:
			var body struct {
				DNSSEC bool `json:"dnssec"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			secured = body.DNSSEC
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/api/v1/servers/localhost/zones/example.com./rectify", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"result": "Rectified"})
	})
	mux.HandleFunc("/api/v1/servers/localhost/zones/example.com./cryptokeys", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "keytype": "csk", "active": true, "published": true, "algorithm": "ECDSAP256SHA256", "bits": 256},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestDnssec_DisabledWithoutClient(t *testing.T) {
	env := newTestEnv(t, nil)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/dnssec", id), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDnssec_SecureAndStatus(t *testing.T) {
	srv := fakePowerDNS(t)
	client := pdns.NewClient(srv.URL, "secret", "localhost", 2*time.Second)
	env := newTestEnv(t, client)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/dnssec", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[models.DnssecStatusResponse](t, w).Secured)

	w = performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/dnssec/secure", id), "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	w = performRequest(env.router, "GET", fmt.Sprintf("/api/v1/zones/%d/dnssec", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[models.DnssecStatusResponse](t, w)
	assert.True(t, resp.Secured)
	require.Len(t, resp.Keys, 1)
	assert.True(t, resp.Keys[0].Active)
}

func TestDnssec_BackendDownMapsToBadGateway(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := pdns.NewClient(srv.URL, "secret", "localhost", time.Second)
	env := newTestEnv(t, client)
	id := env.createZone(t, "example.com", "MASTER")

	w := performRequest(env.router, "POST", fmt.Sprintf("/api/v1/zones/%d/dnssec/rectify", id), "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

// ============================================================================
// API Key Middleware Tests
// ============================================================================

func TestAPIKey_EnforcedOnProtectedRoutes(t *testing.T) {
	env := newTestEnv(t, nil)
	env.cfg.API.APIKey = "s3cret"

	// Rebuild the router so the key middleware is installed.
	router := gin.New()
	h := handlersFromEnv(t, env)
	api.RegisterRoutes(router, h, env.cfg)

	w := performRequest(router, "GET", "/api/v1/zones", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest("GET", "/api/v1/zones", nil)
	req.Header.Set("X-API-Key", "s3cret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health stays open for probes.
	w = performRequest(router, "GET", "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func handlersFromEnv(t *testing.T, env *testEnv) *handlers.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := validation.New(env.cfg.DNS.TTL)
	recordSvc := records.NewService(env.db, validator, nil, records.LastWriterWins, logger)
	zoneSvc := zones.NewService(env.db, env.cfg.DNS, logger)
	reverseCreator := reverse.NewCreator(env.db, recordSvc, logger)
	return handlers.New(env.cfg, env.db, zoneSvc, recordSvc, reverseCreator, nil, logger)
}
