package models

// Category classifies a metric into one of the fixed life areas.
type Category string

const (
	CategoryProductivity Category = "productivity"
	CategoryHealth       Category = "health"
	CategoryFinance      Category = "finance"
	CategorySocial       Category = "social"
	CategoryLearning     Category = "learning"
)

// Categories lists every category in declared order. Insight generation and
// reports walk this slice, so the order is observable behavior.
var Categories = []Category{
	CategoryProductivity,
	CategoryHealth,
	CategoryFinance,
	CategorySocial,
	CategoryLearning,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Metric is a single time-stamped observation. Records are never mutated
// after creation; the store assigns ID and Timestamp on insert.
type Metric struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	Value     float64  `json:"value"`
	Unit      string   `json:"unit"`
	Timestamp int64    `json:"timestamp"` // epoch milliseconds
}

// Widget is a dashboard panel configuration. The engine only stores and
// round-trips widgets; rendering is the UI's concern.
type Widget struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Type       string   `json:"type"` // "line", "bar", "stat"
	Category   Category `json:"category"`
	Period     string   `json:"period,omitempty"` // aggregation period for chart widgets
	WindowDays int      `json:"window_days,omitempty"`
	Position   int      `json:"position"`
}
