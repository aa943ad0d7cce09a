package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

const (
	maxInsights         = 10
	insightWindowDays   = 7
	consistencyMinCount = 6
)

// generateInsights rebuilds the insight list from scratch. Categories are
// walked in declared order, trend insight before consistency insight, and
// the list is truncated to maxInsights afterwards — so categories declared
// later can be starved once the cap is hit. All insights from one pass share
// the generation timestamp.
func generateInsights(store *Store, now time.Time) []models.Insight {
	nowMillis := now.UnixMilli()
	cutoff := nowMillis - insightWindowDays*dayMillis

	var insights []models.Insight
	for _, category := range models.Categories {
		metrics := store.ByCategory(category)
		stats := computeStatistics(metrics, insightWindowDays, nowMillis)

		switch stats.Trend {
		case models.TrendUp:
			insights = append(insights, models.Insight{
				ID:          uuid.New().String(),
				Title:       fmt.Sprintf("%s is trending up", titleCase(category)),
				Description: fmt.Sprintf("Your %s metrics averaged %.1f over the last %d days and are climbing.", category, stats.Average, insightWindowDays),
				Sentiment:   models.SentimentPositive,
				Category:    category,
				Timestamp:   nowMillis,
			})
		case models.TrendDown:
			insights = append(insights, models.Insight{
				ID:          uuid.New().String(),
				Title:       fmt.Sprintf("%s is trending down", titleCase(category)),
				Description: fmt.Sprintf("Your %s metrics averaged %.1f over the last %d days and are declining.", category, stats.Average, insightWindowDays),
				Sentiment:   models.SentimentNegative,
				Category:    category,
				Timestamp:   nowMillis,
			})
		}

		if stats.Average > 0 {
			count := 0
			for _, m := range metrics {
				if m.Timestamp >= cutoff {
					count++
				}
			}
			if count >= consistencyMinCount {
				insights = append(insights, models.Insight{
					ID:          uuid.New().String(),
					Title:       fmt.Sprintf("Consistent %s tracking", category),
					Description: fmt.Sprintf("You logged %d %s entries in the last %d days. Keep it up!", count, category, insightWindowDays),
					Sentiment:   models.SentimentPositive,
					Category:    category,
					Timestamp:   nowMillis,
				})
			}
		}
	}

	if len(insights) > maxInsights {
		insights = insights[:maxInsights]
	}
	return insights
}

func titleCase(c models.Category) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
