package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/benvon/trackme/internal/models"
)

// Event types
const (
	EventTypeTask = "task"
	EventTypeGoal = "goal"
)

// GoalEventColor is the color of every goal event
const GoalEventColor = "#8b8b8b"

var priorityColors = map[models.TaskPriority]string{
	models.TaskPriorityUrgent: "#ef4444",
	models.TaskPriorityHigh:   "#f97316",
	models.TaskPriorityMedium: "#3b82f6",
}

const lowPriorityColor = "#eab308"

// Event is one calendar entry
type Event struct {
	ID          string              `json:"id" yaml:"id"`
	Type        string              `json:"type" yaml:"type"`
	Title       string              `json:"title" yaml:"title"`
	Date        string              `json:"date" yaml:"date"`
	Color       string              `json:"color" yaml:"color"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Status      models.TaskStatus   `json:"status,omitempty" yaml:"status,omitempty"`
	Priority    models.TaskPriority `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// Day holds the events falling on one date
type Day struct {
	Date   string  `json:"date" yaml:"date"`
	Events []Event `json:"events" yaml:"events"`
}

// PriorityColor returns the display color for a task priority
func PriorityColor(p models.TaskPriority) string {
	if c, ok := priorityColors[p]; ok {
		return c
	}
	return lowPriorityColor
}

// ValidMonth reports whether month is empty or a YYYY-MM value
func ValidMonth(month string) error {
	if month == "" {
		return nil
	}
	if !models.IsDate(month + "-01") {
		return fmt.Errorf("month must be YYYY-MM, got %q", month)
	}
	return nil
}

// Calendar lists upcoming events grouped by date. Open tasks appear on their
// due date and unfinished goals on their start date; anything dated before
// today is left out. A non-empty month (YYYY-MM) restricts the result to
// that month.
func Calendar(tasks []models.Task, goals []models.Goal, month, today string) []Day {
	include := func(date string) bool {
		if date == "" || date < today {
			return false
		}
		return month == "" || strings.HasPrefix(date, month+"-")
	}

	var events []Event
	for _, t := range tasks {
		if t.Status == models.TaskStatusCompleted || !include(t.DueDate) {
			continue
		}
		events = append(events, Event{
			ID:          "task-" + t.ID,
			Type:        EventTypeTask,
			Title:       t.Title,
			Date:        t.DueDate,
			Color:       PriorityColor(t.Priority),
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
		})
	}
	for _, g := range goals {
		if g.IsComplete() || !include(g.StartDate) {
			continue
		}
		events = append(events, Event{
			ID:          "goal-" + g.ID,
			Type:        EventTypeGoal,
			Title:       g.Title,
			Date:        g.StartDate,
			Color:       GoalEventColor,
			Description: g.Description,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})

	days := []Day{}
	for _, e := range events {
		if n := len(days); n > 0 && days[n-1].Date == e.Date {
			days[n-1].Events = append(days[n-1].Events, e)
			continue
		}
		days = append(days, Day{Date: e.Date, Events: []Event{e}})
	}
	return days
}
