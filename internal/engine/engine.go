package engine

import (
	"encoding/json"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

// SnapshotKey is the persistence key for the composite engine state.
const SnapshotKey = "snapshot"

// KV is the persistence collaborator contract. Load must fall back to the
// supplied default on any failure; the engine never sees a load error.
type KV interface {
	Load(key, def string) string
	Save(key, value string) error
}

// Engine is the single service object owning the metric store, the widget
// registry and the current insight list. Construct one in main and pass it
// by reference; there is no package-level instance.
type Engine struct {
	mu       sync.Mutex
	store    *Store
	widgets  []models.Widget
	insights []models.Insight
	kv       KV
	clock    func() time.Time
}

// New restores the engine from a persisted snapshot if one exists. With no
// usable snapshot it starts empty, or seeded with sample data when seed is
// set. The clock is injected so window math is deterministic under test;
// nil means time.Now.
func New(kv KV, clock func() time.Time, seed bool) *Engine {
	if clock == nil {
		clock = time.Now
	}
	e := &Engine{
		store: NewStore(),
		kv:    kv,
		clock: clock,
	}

	raw := kv.Load(SnapshotKey, "")
	if raw != "" {
		var snap models.Snapshot
		if err := json.Unmarshal([]byte(raw), &snap); err != nil {
			log.Printf("Ignoring corrupt snapshot: %v", err)
		} else {
			e.store.Replace(snap.Metrics)
			e.widgets = snap.Widgets
			e.insights = snap.Insights
			return e
		}
	}

	if seed {
		e.seedSampleData()
		e.insights = generateInsights(e.store, e.clock())
		e.persistLocked()
	}
	return e
}

// InsertMetric validates and stores a new metric, then synchronously
// regenerates insights and persists the snapshot so readers always observe
// insights consistent with the latest data.
func (e *Engine) InsertMetric(name string, category models.Category, value float64, unit string) (models.Metric, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	m, err := e.store.Insert(name, category, value, unit, e.clock())
	if err != nil {
		return models.Metric{}, err
	}
	e.insights = generateInsights(e.store, e.clock())
	e.persistLocked()
	return m, nil
}

// DeleteMetric removes a metric by ID and reports whether anything changed.
// Insights are only regenerated when a record was actually removed.
func (e *Engine) DeleteMetric(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.store.Delete(id) {
		return false
	}
	e.insights = generateInsights(e.store, e.clock())
	e.persistLocked()
	return true
}

func (e *Engine) Metrics() []models.Metric {
	return e.store.All()
}

func (e *Engine) MetricsByCategory(category models.Category) []models.Metric {
	return e.store.ByCategory(category)
}

// Aggregate buckets a category's metrics into calendar periods.
func (e *Engine) Aggregate(category models.Category, period Period, nameFilter string) []models.Bucket {
	return aggregate(e.store.ByCategory(category), period, nameFilter)
}

// Statistics summarizes a category over the trailing windowDays.
func (e *Engine) Statistics(category models.Category, windowDays int) models.Statistics {
	return computeStatistics(e.store.ByCategory(category), windowDays, e.clock().UnixMilli())
}

// Compare sums a category's values over two inclusive windows.
func (e *Engine) Compare(category models.Category, currentStart, currentEnd, previousStart, previousEnd int64) models.ComparisonResult {
	return compareWindows(e.store.ByCategory(category), currentStart, currentEnd, previousStart, previousEnd)
}

// Summary returns window statistics for every category in declared order.
func (e *Engine) Summary(windowDays int) []models.CategoryStats {
	nowMillis := e.clock().UnixMilli()
	cutoff := nowMillis - int64(windowDays)*dayMillis

	result := make([]models.CategoryStats, 0, len(models.Categories))
	for _, category := range models.Categories {
		metrics := e.store.ByCategory(category)
		count := 0
		for _, m := range metrics {
			if m.Timestamp >= cutoff {
				count++
			}
		}
		result = append(result, models.CategoryStats{
			Category: category,
			Count:    count,
			Stats:    computeStatistics(metrics, windowDays, nowMillis),
		})
	}
	return result
}

// Insights returns a copy of the current insight list.
func (e *Engine) Insights() []models.Insight {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]models.Insight, len(e.insights))
	copy(result, e.insights)
	return result
}

// Report renders the plain-text summary for an inclusive date range.
func (e *Engine) Report(from, to time.Time) string {
	return buildReport(e.store.All(), e.Insights(), from, to)
}

// AddWidget assigns an ID and position and stores the widget configuration.
// Widgets do not touch metric data, so no insight regeneration happens.
func (e *Engine) AddWidget(w models.Widget) models.Widget {
	e.mu.Lock()
	defer e.mu.Unlock()

	w.ID = uuid.New().String()
	w.Position = len(e.widgets)
	e.widgets = append(e.widgets, w)
	e.persistLocked()
	return w
}

func (e *Engine) DeleteWidget(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, w := range e.widgets {
		if w.ID == id {
			e.widgets = append(e.widgets[:i], e.widgets[i+1:]...)
			e.persistLocked()
			return true
		}
	}
	return false
}

func (e *Engine) Widgets() []models.Widget {
	e.mu.Lock()
	defer e.mu.Unlock()

	result := make([]models.Widget, len(e.widgets))
	copy(result, e.widgets)
	return result
}

// persistLocked saves the composite snapshot. Persistence failures are
// logged and swallowed; the in-memory state stays authoritative.
func (e *Engine) persistLocked() {
	snap := models.Snapshot{
		Metrics:  e.store.All(),
		Widgets:  e.widgets,
		Insights: e.insights,
	}
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("Failed to marshal snapshot: %v", err)
		return
	}
	if err := e.kv.Save(SnapshotKey, string(data)); err != nil {
		log.Printf("Failed to persist snapshot: %v", err)
	}
}

// seedSampleData fills the store with one entry per category per day over
// the last 30 days, using a fixed source so restarts produce the same data.
func (e *Engine) seedSampleData() {
	rng := rand.New(rand.NewSource(42))
	samples := []struct {
		name     string
		category models.Category
		base     float64
		spread   float64
		unit     string
	}{
		{"Tasks Completed", models.CategoryProductivity, 8, 6, "tasks"},
		{"Steps", models.CategoryHealth, 7000, 5000, "steps"},
		{"Daily Spending", models.CategoryFinance, 45, 40, "USD"},
		{"Conversations", models.CategorySocial, 4, 5, "chats"},
		{"Study Time", models.CategoryLearning, 50, 45, "min"},
	}

	now := e.clock()
	for day := 29; day >= 0; day-- {
		ts := now.AddDate(0, 0, -day)
		for _, s := range samples {
			value := s.base + rng.Float64()*s.spread
			if _, err := e.store.Insert(s.name, s.category, float64(int(value)), s.unit, ts); err != nil {
				log.Printf("Failed to seed sample metric: %v", err)
			}
		}
	}
}
