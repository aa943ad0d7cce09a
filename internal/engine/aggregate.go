package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

// Period selects the calendar granularity for aggregation.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodYear:
		return Period(s), nil
	}
	return "", fmt.Errorf("unknown period %q", s)
}

// aggregate buckets metrics by the calendar key of their timestamp and sums
// values per bucket. Only buckets with at least one record appear; callers
// needing a dense series zero-fill themselves. Buckets come back in
// chronological order, which for these key formats is plain string order.
func aggregate(metrics []models.Metric, period Period, nameFilter string) []models.Bucket {
	sums := make(map[string]float64)
	for _, m := range metrics {
		if nameFilter != "" && m.Name != nameFilter {
			continue
		}
		sums[bucketKey(m.Timestamp, period)] += m.Value
	}

	keys := make([]string, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buckets := make([]models.Bucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, models.Bucket{Key: k, Total: sums[k]})
	}
	return buckets
}

// bucketKey derives the calendar bucket for a timestamp in local time.
// Weeks are anchored on Sunday.
func bucketKey(timestamp int64, period Period) string {
	t := time.UnixMilli(timestamp)
	switch period {
	case PeriodWeek:
		sunday := t.AddDate(0, 0, -int(t.Weekday()))
		return sunday.Format("2006-01-02")
	case PeriodMonth:
		return t.Format("2006-01")
	case PeriodYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}
