package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/engine"
	"github.com/william-franco/my-analytics-dashboard-ssr/internal/storage"
)

const displayModeKey = "display_mode"

type Handler struct {
	engine *engine.Engine
	kv     *storage.KV
}

func New(eng *engine.Engine, kv *storage.KV) *Handler {
	return &Handler{engine: eng, kv: kv}
}

func (h *Handler) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// GetDisplayMode handles GET /api/settings/display-mode
func (h *Handler) GetDisplayMode(w http.ResponseWriter, r *http.Request) {
	detailed := h.kv.Load(displayModeKey, "false") == "true"
	h.writeJSON(w, map[string]interface{}{"detailed": detailed})
}

// SetDisplayMode handles PUT /api/settings/display-mode
func (h *Handler) SetDisplayMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Detailed bool `json:"detailed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	value := "false"
	if req.Detailed {
		value = "true"
	}
	if err := h.kv.Save(displayModeKey, value); err != nil {
		log.Printf("Failed to save display mode: %v", err)
		http.Error(w, "Failed to save setting", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, map[string]interface{}{"detailed": req.Detailed})
}

// GenerateReport handles GET /api/report
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	from, to := getDateRange(r)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(h.engine.Report(from, to)))
}

// getDateRange extracts from/to dates from query params, defaults to the
// current month. The "to" date is extended to the last millisecond of its
// day so the range stays inclusive.
func getDateRange(r *http.Request) (time.Time, time.Time) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Millisecond)

	if v := r.URL.Query().Get("from"); v != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", v, now.Location()); err == nil {
			from = parsed
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if parsed, err := time.ParseInLocation("2006-01-02", v, now.Location()); err == nil {
			to = parsed.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
	}

	return from, to
}
