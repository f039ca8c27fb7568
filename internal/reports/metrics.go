package reports

import (
	"sort"

	"github.com/benvon/trackme/internal/models"
)

// MetricStats summarizes the values logged for one metric
type MetricStats struct {
	Count int     `json:"count" yaml:"count"`
	Sum   float64 `json:"sum" yaml:"sum"`
	Avg   float64 `json:"avg" yaml:"avg"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
}

// MetricStatsFor computes stats over logs. No logs yields all zeros.
func MetricStatsFor(logs []models.MetricLog) MetricStats {
	if len(logs) == 0 {
		return MetricStats{}
	}

	stats := MetricStats{Count: len(logs), Min: logs[0].Value, Max: logs[0].Value}
	for _, l := range logs {
		stats.Sum += l.Value
		if l.Value < stats.Min {
			stats.Min = l.Value
		}
		if l.Value > stats.Max {
			stats.Max = l.Value
		}
	}
	stats.Avg = stats.Sum / float64(stats.Count)
	return stats
}

// Point is one chart sample
type Point struct {
	Date  string  `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

// MetricSeries returns the logs as points ordered by date. Logs on the same
// date keep their logged order.
func MetricSeries(logs []models.MetricLog) []Point {
	points := make([]Point, 0, len(logs))
	for _, l := range logs {
		points = append(points, Point{Date: l.Date, Value: l.Value})
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// MetricReport pairs a metric with its stats, chart series and latest logs
type MetricReport struct {
	Metric     models.Metric      `json:"metric" yaml:"metric"`
	Stats      MetricStats        `json:"stats" yaml:"stats"`
	Series     []Point            `json:"series" yaml:"series"`
	RecentLogs []models.MetricLog `json:"recentLogs" yaml:"recentLogs"`
}

const recentLogLimit = 5

// Metrics builds a MetricReport for every metric, in order
func Metrics(metrics []models.Metric, logs []models.MetricLog) []MetricReport {
	byMetric := make(map[string][]models.MetricLog, len(metrics))
	for _, l := range logs {
		byMetric[l.MetricID] = append(byMetric[l.MetricID], l)
	}

	out := make([]MetricReport, 0, len(metrics))
	for _, m := range metrics {
		own := byMetric[m.ID]
		out = append(out, MetricReport{
			Metric:     m,
			Stats:      MetricStatsFor(own),
			Series:     MetricSeries(own),
			RecentLogs: RecentLogs(own, recentLogLimit),
		})
	}
	return out
}

// RecentLogs returns up to n of the most recently added logs, newest first
func RecentLogs(logs []models.MetricLog, n int) []models.MetricLog {
	if n > len(logs) {
		n = len(logs)
	}
	if n < 0 {
		n = 0
	}
	out := make([]models.MetricLog, 0, n)
	for i := len(logs) - 1; i >= len(logs)-n; i-- {
		out = append(out, logs[i])
	}
	return out
}
