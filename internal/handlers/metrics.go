package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

// ListMetrics handles GET /api/metrics
func (h *Handler) ListMetrics(w http.ResponseWriter, r *http.Request) {
	if v := r.URL.Query().Get("category"); v != "" {
		category := models.Category(v)
		if !category.Valid() {
			http.Error(w, "Unknown category", http.StatusBadRequest)
			return
		}
		h.writeJSON(w, h.engine.MetricsByCategory(category))
		return
	}

	h.writeJSON(w, h.engine.Metrics())
}

// CreateMetric handles POST /api/metrics
func (h *Handler) CreateMetric(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string  `json:"name"`
		Category string  `json:"category"`
		Value    float64 `json:"value"`
		Unit     string  `json:"unit"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" {
		http.Error(w, "Name is required", http.StatusBadRequest)
		return
	}
	category := models.Category(req.Category)
	if !category.Valid() {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}

	metric, err := h.engine.InsertMetric(req.Name, category, req.Value, req.Unit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(metric)
}

// DeleteMetric handles DELETE /api/metrics/{id}
func (h *Handler) DeleteMetric(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.engine.DeleteMetric(id) {
		http.Error(w, "Metric not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, map[string]interface{}{"success": true})
}
