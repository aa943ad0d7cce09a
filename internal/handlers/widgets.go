package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

var widgetTypes = map[string]bool{
	"line": true,
	"bar":  true,
	"stat": true,
}

// ListWidgets handles GET /api/widgets
func (h *Handler) ListWidgets(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.engine.Widgets())
}

// CreateWidget handles POST /api/widgets
func (h *Handler) CreateWidget(w http.ResponseWriter, r *http.Request) {
	var req models.Widget
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !widgetTypes[req.Type] {
		http.Error(w, "Unknown widget type", http.StatusBadRequest)
		return
	}
	if !req.Category.Valid() {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return
	}

	widget := h.engine.AddWidget(req)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(widget)
}

// DeleteWidget handles DELETE /api/widgets/{id}
func (h *Handler) DeleteWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.engine.DeleteWidget(id) {
		http.Error(w, "Widget not found", http.StatusNotFound)
		return
	}

	h.writeJSON(w, map[string]interface{}{"success": true})
}
