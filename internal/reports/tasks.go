package reports

import (
	"strings"

	"github.com/benvon/trackme/internal/models"
)

// FilterAll matches every status or priority
const FilterAll = "all"

// TaskFilter narrows a task list. Empty fields match everything.
type TaskFilter struct {
	Search   string
	Status   string
	Priority string
}

// FilterTasks returns the tasks matching f in their original order. Search is
// a case-insensitive substring match on title or description.
func FilterTasks(tasks []models.Task, f TaskFilter) []models.Task {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if !matchesFilter(f.Status, string(t.Status)) || !matchesFilter(f.Priority, string(t.Priority)) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesFilter(filter, value string) bool {
	return filter == "" || filter == FilterAll || filter == value
}

// Column is one kanban lane
type Column struct {
	Status models.TaskStatus `json:"status" yaml:"status"`
	Title  string            `json:"title" yaml:"title"`
	Tasks  []models.Task     `json:"tasks" yaml:"tasks"`
}

var columnTitles = map[models.TaskStatus]string{
	models.TaskStatusPending:    "To Do",
	models.TaskStatusInProgress: "In Progress",
	models.TaskStatusCompleted:  "Completed",
}

// Board groups tasks into the To Do, In Progress and Completed lanes. Tasks
// with an unknown status are left off the board.
func Board(tasks []models.Task) []Column {
	columns := make([]Column, 0, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		col := Column{Status: status, Title: columnTitles[status], Tasks: []models.Task{}}
		for _, t := range tasks {
			if t.Status == status {
				col.Tasks = append(col.Tasks, t)
			}
		}
		columns = append(columns, col)
	}
	return columns
}
