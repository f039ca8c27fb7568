// Package reports derives the summary values shown alongside the stored
// collections: goal progress, metric statistics, the dashboard, the task
// board, and the calendar.
package reports

import (
	"fmt"
	"math"
	"time"

	"github.com/benvon/trackme/internal/models"
)

// ETA labels that are not durations
const (
	ETACompleted = "Completed!"
	ETAOverdue   = "Overdue"
	ETAUnknown   = "Unknown"
)

// GoalProgress returns completion as a percentage capped at 100
func GoalProgress(g models.Goal) float64 {
	if g.Target <= 0 {
		return 0
	}
	return math.Min(g.Current/g.Target*100, 100)
}

// GoalETA extrapolates the current pace from the start date to estimate the
// time left until the target is reached.
func GoalETA(g models.Goal, now time.Time) string {
	if g.Current >= g.Target {
		return ETACompleted
	}
	if g.Target <= 0 || g.Current <= 0 {
		return ETAUnknown
	}

	start, err := models.ParseDate(g.StartDate)
	if err != nil {
		return ETAUnknown
	}

	progress := g.Current / g.Target
	daysElapsed := math.Floor(now.Sub(start).Hours() / 24)
	remaining := int(math.Ceil(daysElapsed/progress - daysElapsed))

	switch {
	case remaining <= 0:
		return ETAOverdue
	case remaining == 1:
		return "1 day"
	case remaining < 7:
		return fmt.Sprintf("%d days", remaining)
	case remaining < 30:
		return fmt.Sprintf("%d weeks", ceilDiv(remaining, 7))
	default:
		return fmt.Sprintf("%d months", ceilDiv(remaining, 30))
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// GoalReport pairs a goal with its derived progress
type GoalReport struct {
	Goal     models.Goal `json:"goal" yaml:"goal"`
	Progress float64     `json:"progress" yaml:"progress"`
	ETA      string      `json:"eta" yaml:"eta"`
	Complete bool        `json:"complete" yaml:"complete"`
}

// Goals builds a GoalReport for every goal, in order
func Goals(goals []models.Goal, now time.Time) []GoalReport {
	out := make([]GoalReport, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalReport{
			Goal:     g,
			Progress: GoalProgress(g),
			ETA:      GoalETA(g, now),
			Complete: g.IsComplete(),
		})
	}
	return out
}
