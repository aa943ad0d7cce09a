package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/engine"
	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
	"github.com/william-franco/my-analytics-dashboard-ssr/internal/storage"
)

// newTestRouter wires a router against a real sqlite store in a temp dir,
// an unseeded engine and a fixed clock, mirroring the route table in main.
func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	kv, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)
	eng := engine.New(kv, func() time.Time { return now }, false)
	h := New(eng, kv)

	r := chi.NewRouter()
	r.Get("/api/metrics", h.ListMetrics)
	r.Post("/api/metrics", h.CreateMetric)
	r.Delete("/api/metrics/{id}", h.DeleteMetric)
	r.Get("/api/dashboard/aggregate", h.DashboardAggregate)
	r.Get("/api/dashboard/statistics", h.DashboardStatistics)
	r.Get("/api/dashboard/compare", h.DashboardCompare)
	r.Get("/api/dashboard/summary", h.DashboardSummary)
	r.Get("/api/insights", h.ListInsights)
	r.Get("/api/widgets", h.ListWidgets)
	r.Post("/api/widgets", h.CreateWidget)
	r.Delete("/api/widgets/{id}", h.DeleteWidget)
	r.Get("/api/settings/display-mode", h.GetDisplayMode)
	r.Put("/api/settings/display-mode", h.SetDisplayMode)
	r.Get("/api/report", h.GenerateReport)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestMetricsCRUD_HTTP(t *testing.T) {
	r := newTestRouter(t)

	// create
	rr := doJSON(t, r, http.MethodPost, "/api/metrics", []byte(`{"name":"Steps","category":"health","value":8200,"unit":"steps"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, want 201", rr.Code)
	}
	var created models.Metric
	if err := json.Unmarshal(rr.Body.Bytes(), &created); err != nil {
		t.Fatalf("create: decode: %v", err)
	}
	if created.ID == "" || created.Value != 8200 {
		t.Fatalf("create: unexpected metric %+v", created)
	}

	// list
	rr = doJSON(t, r, http.MethodGet, "/api/metrics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: status = %d", rr.Code)
	}
	var list []models.Metric
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("list: decode: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list: got %d metrics, want 1", len(list))
	}

	// filter by category
	rr = doJSON(t, r, http.MethodGet, "/api/metrics?category=finance", nil)
	if body := strings.TrimSpace(rr.Body.String()); body != "null" && body != "[]" {
		t.Fatalf("filter: expected empty list, got %s", body)
	}

	// delete
	rr = doJSON(t, r, http.MethodDelete, "/api/metrics/"+created.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete: status = %d", rr.Code)
	}
	rr = doJSON(t, r, http.MethodDelete, "/api/metrics/"+created.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", rr.Code)
	}
}

func TestCreateMetricValidation(t *testing.T) {
	r := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"bad json", `{`},
		{"missing name", `{"category":"health","value":1}`},
		{"unknown category", `{"name":"Steps","category":"sports","value":1}`},
	}

	for _, tc := range cases {
		rr := doJSON(t, r, http.MethodPost, "/api/metrics", []byte(tc.body))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", tc.name, rr.Code)
		}
	}
}

func TestDashboardEndpoints(t *testing.T) {
	r := newTestRouter(t)

	for _, v := range []float64{1, 1, 10, 10} {
		body, _ := json.Marshal(map[string]interface{}{
			"name": "Steps", "category": "health", "value": v, "unit": "steps",
		})
		if rr := doJSON(t, r, http.MethodPost, "/api/metrics", body); rr.Code != http.StatusCreated {
			t.Fatalf("seed insert failed: %d", rr.Code)
		}
	}

	// statistics
	rr := doJSON(t, r, http.MethodGet, "/api/dashboard/statistics?category=health&days=7", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("statistics: status = %d", rr.Code)
	}
	var stats models.Statistics
	if err := json.Unmarshal(rr.Body.Bytes(), &stats); err != nil {
		t.Fatalf("statistics: decode: %v", err)
	}
	if stats.Total != 22 || stats.Trend != models.TrendUp {
		t.Fatalf("statistics = %+v, want total 22 trend up", stats)
	}

	// aggregate
	rr = doJSON(t, r, http.MethodGet, "/api/dashboard/aggregate?category=health&period=day", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("aggregate: status = %d", rr.Code)
	}
	var buckets []models.Bucket
	if err := json.Unmarshal(rr.Body.Bytes(), &buckets); err != nil {
		t.Fatalf("aggregate: decode: %v", err)
	}
	if len(buckets) != 1 || buckets[0].Total != 22 {
		t.Fatalf("aggregate = %+v, want one bucket of 22", buckets)
	}

	// bad period
	rr = doJSON(t, r, http.MethodGet, "/api/dashboard/aggregate?category=health&period=decade", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad period: status = %d, want 400", rr.Code)
	}

	// insights reflect the mutation already
	rr = doJSON(t, r, http.MethodGet, "/api/insights", nil)
	var insights []models.Insight
	if err := json.Unmarshal(rr.Body.Bytes(), &insights); err != nil {
		t.Fatalf("insights: decode: %v", err)
	}
	if len(insights) == 0 {
		t.Fatal("no insights after rising series")
	}

	// summary covers every category
	rr = doJSON(t, r, http.MethodGet, "/api/dashboard/summary", nil)
	var summary []models.CategoryStats
	if err := json.Unmarshal(rr.Body.Bytes(), &summary); err != nil {
		t.Fatalf("summary: decode: %v", err)
	}
	if len(summary) != len(models.Categories) {
		t.Fatalf("summary has %d entries, want %d", len(summary), len(models.Categories))
	}
}

func TestCompareEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := []byte(`{"name":"Spend","category":"finance","value":50,"unit":"USD"}`)
	if rr := doJSON(t, r, http.MethodPost, "/api/metrics", body); rr.Code != http.StatusCreated {
		t.Fatal("seed insert failed")
	}

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local).UnixMilli()
	url := "/api/dashboard/compare?category=finance" +
		"&currentFrom=" + itoa(now-1000) + "&currentTo=" + itoa(now+1000) +
		"&previousFrom=" + itoa(now-30000) + "&previousTo=" + itoa(now-20000)

	rr := doJSON(t, r, http.MethodGet, url, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("compare: status = %d", rr.Code)
	}
	var result models.ComparisonResult
	if err := json.Unmarshal(rr.Body.Bytes(), &result); err != nil {
		t.Fatalf("compare: decode: %v", err)
	}
	if result.Change != 50 || result.ChangePercent != 0 {
		t.Fatalf("compare = %+v, want change 50 percent 0", result)
	}

	// missing bounds
	rr = doJSON(t, r, http.MethodGet, "/api/dashboard/compare?category=finance", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing bounds: status = %d, want 400", rr.Code)
	}
}

func TestWidgetsCRUD_HTTP(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodPost, "/api/widgets", []byte(`{"title":"Steps","type":"line","category":"health","period":"day"}`))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create widget: status = %d", rr.Code)
	}
	var widget models.Widget
	if err := json.Unmarshal(rr.Body.Bytes(), &widget); err != nil {
		t.Fatalf("create widget: decode: %v", err)
	}

	rr = doJSON(t, r, http.MethodPost, "/api/widgets", []byte(`{"title":"Bad","type":"pie","category":"health"}`))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid widget type: status = %d, want 400", rr.Code)
	}

	rr = doJSON(t, r, http.MethodDelete, "/api/widgets/"+widget.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete widget: status = %d", rr.Code)
	}
	rr = doJSON(t, r, http.MethodDelete, "/api/widgets/"+widget.ID, nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("second delete: status = %d, want 404", rr.Code)
	}
}

func TestDisplayModeFlag(t *testing.T) {
	r := newTestRouter(t)

	rr := doJSON(t, r, http.MethodGet, "/api/settings/display-mode", nil)
	if !strings.Contains(rr.Body.String(), "false") {
		t.Fatalf("default display mode = %s, want false", rr.Body.String())
	}

	rr = doJSON(t, r, http.MethodPut, "/api/settings/display-mode", []byte(`{"detailed":true}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("set display mode: status = %d", rr.Code)
	}

	rr = doJSON(t, r, http.MethodGet, "/api/settings/display-mode", nil)
	if !strings.Contains(rr.Body.String(), "true") {
		t.Fatalf("display mode after set = %s, want true", rr.Body.String())
	}
}

func TestReportEndpoint(t *testing.T) {
	r := newTestRouter(t)

	body := []byte(`{"name":"Steps","category":"health","value":100,"unit":"steps"}`)
	if rr := doJSON(t, r, http.MethodPost, "/api/metrics", body); rr.Code != http.StatusCreated {
		t.Fatal("seed insert failed")
	}

	rr := doJSON(t, r, http.MethodGet, "/api/report?from=2025-06-01&to=2025-06-30", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("report: status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Fatalf("report content type = %q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Health") {
		t.Fatalf("report missing Health section:\n%s", rr.Body.String())
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
