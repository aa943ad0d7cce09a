package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/william-franco/my-analytics-dashboard-ssr/internal/models"
)

// buildReport renders a plain-text summary for an inclusive date range.
// Categories with no records in range are skipped entirely. The insight
// footer lists every currently stored insight; insights are global and are
// not re-scoped to the report window.
func buildReport(metrics []models.Metric, insights []models.Insight, from, to time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analytics Report: %s - %s\n", from.Format("Jan 2, 2006"), to.Format("Jan 2, 2006"))
	b.WriteString(strings.Repeat("=", 40) + "\n\n")

	start, end := from.UnixMilli(), to.UnixMilli()
	for _, category := range models.Categories {
		var total float64
		count := 0
		for _, m := range metrics {
			if m.Category == category && m.Timestamp >= start && m.Timestamp <= end {
				total += m.Value
				count++
			}
		}
		if count == 0 {
			continue
		}

		fmt.Fprintf(&b, "%s\n", titleCase(category))
		fmt.Fprintf(&b, "  Entries: %d\n", count)
		fmt.Fprintf(&b, "  Total: %.2f\n", total)
		fmt.Fprintf(&b, "  Average: %.2f\n\n", total/float64(count))
	}

	if len(insights) > 0 {
		b.WriteString("Insights\n")
		b.WriteString(strings.Repeat("-", 40) + "\n")
		for _, in := range insights {
			fmt.Fprintf(&b, "* %s: %s\n", in.Title, in.Description)
		}
	}

	return b.String()
}
