package handlers

import (
	"net/http"
	"strconv"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/engine"
	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

// DashboardAggregate handles GET /api/dashboard/aggregate
func (h *Handler) DashboardAggregate(w http.ResponseWriter, r *http.Request) {
	category, ok := getCategory(w, r)
	if !ok {
		return
	}
	period, err := engine.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		http.Error(w, "Unknown period", http.StatusBadRequest)
		return
	}

	buckets := h.engine.Aggregate(category, period, r.URL.Query().Get("name"))
	h.writeJSON(w, buckets)
}

// DashboardStatistics handles GET /api/dashboard/statistics
func (h *Handler) DashboardStatistics(w http.ResponseWriter, r *http.Request) {
	category, ok := getCategory(w, r)
	if !ok {
		return
	}

	h.writeJSON(w, h.engine.Statistics(category, getDays(r)))
}

// DashboardCompare handles GET /api/dashboard/compare
func (h *Handler) DashboardCompare(w http.ResponseWriter, r *http.Request) {
	category, ok := getCategory(w, r)
	if !ok {
		return
	}

	bounds := make([]int64, 4)
	for i, name := range []string{"currentFrom", "currentTo", "previousFrom", "previousTo"} {
		v, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
		if err != nil {
			http.Error(w, "Invalid timestamp for "+name, http.StatusBadRequest)
			return
		}
		bounds[i] = v
	}

	result := h.engine.Compare(category, bounds[0], bounds[1], bounds[2], bounds[3])
	h.writeJSON(w, result)
}

// DashboardSummary handles GET /api/dashboard/summary
func (h *Handler) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.engine.Summary(getDays(r)))
}

// ListInsights handles GET /api/insights
func (h *Handler) ListInsights(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, h.engine.Insights())
}

func getCategory(w http.ResponseWriter, r *http.Request) (models.Category, bool) {
	category := models.Category(r.URL.Query().Get("category"))
	if !category.Valid() {
		http.Error(w, "Unknown category", http.StatusBadRequest)
		return "", false
	}
	return category, true
}

func getDays(r *http.Request) int {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			if parsed > 365 {
				parsed = 365
			}
			days = parsed
		}
	}
	return days
}
