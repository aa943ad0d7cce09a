package models

// Trend classifies the recent direction of a metric series.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Sentiment marks whether an insight reports good or bad news.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Statistics summarizes a category over a trailing window. An empty window
// yields all zeros and a stable trend.
type Statistics struct {
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Max     float64 `json:"max"`
	Min     float64 `json:"min"`
	Trend   Trend   `json:"trend"`
}

// Bucket is one period's summed value in an aggregation. Keys follow the
// period's date format, so chronological order equals string order.
type Bucket struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// ComparisonResult holds the change between two time windows.
// ChangePercent saturates to 0 when the previous window sums to zero.
type ComparisonResult struct {
	Current       float64 `json:"current"`
	Previous      float64 `json:"previous"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
}

// CategoryStats pairs a category with its window statistics and record count,
// used by the dashboard summary endpoint.
type CategoryStats struct {
	Category Category   `json:"category"`
	Count    int        `json:"count"`
	Stats    Statistics `json:"stats"`
}

// Insight is a generated textual observation. Insights are rebuilt wholesale
// whenever the metric set changes; all insights from one pass share a
// generation timestamp.
type Insight struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Sentiment   Sentiment `json:"sentiment"`
	Category    Category  `json:"category"`
	Timestamp   int64     `json:"timestamp"` // epoch milliseconds
}

// Snapshot is the composite state persisted between sessions. Every field
// round-trips losslessly through JSON.
type Snapshot struct {
	Metrics  []Metric  `json:"metrics"`
	Widgets  []Widget  `json:"widgets"`
	Insights []Insight `json:"insights"`
}
