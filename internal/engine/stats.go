package engine

import (
	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

const dayMillis = 24 * 60 * 60 * 1000

// Trend thresholds: the second half of the window must move more than 5%
// against the first half before the series counts as up or down.
const (
	trendUpFactor   = 1.05
	trendDownFactor = 0.95
)

// computeStatistics summarizes all metrics with timestamp >= now-windowDays.
// An empty window yields zeros and a stable trend; that is a defined result,
// not an error.
func computeStatistics(metrics []models.Metric, windowDays int, nowMillis int64) models.Statistics {
	cutoff := nowMillis - int64(windowDays)*dayMillis

	var values []float64
	for _, m := range metrics {
		if m.Timestamp >= cutoff {
			values = append(values, m.Value)
		}
	}

	if len(values) == 0 {
		return models.Statistics{Trend: models.TrendStable}
	}

	stats := models.Statistics{
		Max:   values[0],
		Min:   values[0],
		Trend: classifyTrend(values),
	}
	for _, v := range values {
		stats.Total += v
		if v > stats.Max {
			stats.Max = v
		}
		if v < stats.Min {
			stats.Min = v
		}
	}
	stats.Average = stats.Total / float64(len(values))
	return stats
}

// classifyTrend splits the series at floor(n/2) in store order and compares
// half means. A window too short to yield two non-empty halves is stable;
// short-circuiting here keeps a zero-length half from dividing by zero.
func classifyTrend(values []float64) models.Trend {
	if len(values) < 2 {
		return models.TrendStable
	}

	mid := len(values) / 2
	firstMean := mean(values[:mid])
	secondMean := mean(values[mid:])

	switch {
	case secondMean > firstMean*trendUpFactor:
		return models.TrendUp
	case secondMean < firstMean*trendDownFactor:
		return models.TrendDown
	default:
		return models.TrendStable
	}
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// compareWindows sums a category's values over two inclusive windows and
// reports the change. ChangePercent is 0 whenever the previous window sums
// to zero, even if the current one does not; saturating keeps the field
// finite. The windows may overlap; keeping them disjoint is the caller's job.
func compareWindows(metrics []models.Metric, currentStart, currentEnd, previousStart, previousEnd int64) models.ComparisonResult {
	result := models.ComparisonResult{
		Current:  sumRange(metrics, currentStart, currentEnd),
		Previous: sumRange(metrics, previousStart, previousEnd),
	}
	result.Change = result.Current - result.Previous
	if result.Previous != 0 {
		result.ChangePercent = result.Change / result.Previous * 100
	}
	return result
}

func sumRange(metrics []models.Metric, start, end int64) float64 {
	var sum float64
	for _, m := range metrics {
		if m.Timestamp >= start && m.Timestamp <= end {
			sum += m.Value
		}
	}
	return sum
}
