package engine

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

// Store owns the metric collection. All reads return copies, so a caller
// iterating a snapshot is never affected by a later insert or delete.
type Store struct {
	mu      sync.RWMutex
	metrics []models.Metric
}

func NewStore() *Store {
	return &Store{}
}

// Insert validates the value, assigns a fresh ID and the given timestamp,
// and appends the record. The only rejection is a non-finite value.
func (s *Store) Insert(name string, category models.Category, value float64, unit string, now time.Time) (models.Metric, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return models.Metric{}, fmt.Errorf("metric value must be finite, got %v", value)
	}

	m := models.Metric{
		ID:        uuid.New().String(),
		Name:      name,
		Category:  category,
		Value:     value,
		Unit:      unit,
		Timestamp: now.UnixMilli(),
	}

	s.mu.Lock()
	s.metrics = append(s.metrics, m)
	s.mu.Unlock()

	return m, nil
}

// Delete removes the record with the given ID and reports whether anything
// was removed. Deleting an unknown ID is a no-op, not an error.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.metrics {
		if m.ID == id {
			s.metrics = append(s.metrics[:i], s.metrics[i+1:]...)
			return true
		}
	}
	return false
}

// All returns a copy of every stored metric in insertion order.
func (s *Store) All() []models.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Metric, len(s.metrics))
	copy(result, s.metrics)
	return result
}

// ByCategory returns all metrics in the category, preserving store order.
func (s *Store) ByCategory(category models.Category) []models.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Metric
	for _, m := range s.metrics {
		if m.Category == category {
			result = append(result, m)
		}
	}
	return result
}

// ByTimeRange returns all metrics with start <= timestamp <= end,
// inclusive on both ends.
func (s *Store) ByTimeRange(start, end int64) []models.Metric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Metric
	for _, m := range s.metrics {
		if m.Timestamp >= start && m.Timestamp <= end {
			result = append(result, m)
		}
	}
	return result
}

// Replace swaps in a restored metric set, used when loading a snapshot.
func (s *Store) Replace(metrics []models.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics = make([]models.Metric, len(metrics))
	copy(s.metrics, metrics)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.metrics)
}
