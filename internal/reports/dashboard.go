package reports

import (
	"math"

	"github.com/benvon/trackme/internal/models"
)

// Summary is the dashboard overview
type Summary struct {
	TotalTasks          int                         `json:"totalTasks" yaml:"totalTasks"`
	CompletedTasks      int                         `json:"completedTasks" yaml:"completedTasks"`
	CompletionPercent   int                         `json:"completionPercent" yaml:"completionPercent"`
	TasksByStatus       map[models.TaskStatus]int   `json:"tasksByStatus" yaml:"tasksByStatus"`
	TasksByPriority     map[models.TaskPriority]int `json:"tasksByPriority" yaml:"tasksByPriority"`
	ActiveGoals         int                         `json:"activeGoals" yaml:"activeGoals"`
	CompletedGoals      int                         `json:"completedGoals" yaml:"completedGoals"`
	AverageGoalProgress float64                     `json:"averageGoalProgress" yaml:"averageGoalProgress"`
	TotalMetrics        int                         `json:"totalMetrics" yaml:"totalMetrics"`
	TotalMetricLogs     int                         `json:"totalMetricLogs" yaml:"totalMetricLogs"`
}

// Dashboard computes the overview counts
func Dashboard(tasks []models.Task, goals []models.Goal, metrics []models.Metric, logs []models.MetricLog) Summary {
	s := Summary{
		TotalTasks:      len(tasks),
		TasksByStatus:   make(map[models.TaskStatus]int, len(models.TaskStatuses)),
		TasksByPriority: make(map[models.TaskPriority]int, len(models.TaskPriorities)),
		TotalMetrics:    len(metrics),
		TotalMetricLogs: len(logs),
	}
	for _, status := range models.TaskStatuses {
		s.TasksByStatus[status] = 0
	}
	for _, priority := range models.TaskPriorities {
		s.TasksByPriority[priority] = 0
	}

	for _, t := range tasks {
		s.TasksByStatus[t.Status]++
		s.TasksByPriority[t.Priority]++
		if t.Status == models.TaskStatusCompleted {
			s.CompletedTasks++
		}
	}
	if s.TotalTasks > 0 {
		s.CompletionPercent = int(math.Round(float64(s.CompletedTasks) / float64(s.TotalTasks) * 100))
	}

	var progress float64
	for _, g := range goals {
		if g.IsComplete() {
			s.CompletedGoals++
		} else {
			s.ActiveGoals++
		}
		progress += GoalProgress(g)
	}
	if len(goals) > 0 {
		s.AverageGoalProgress = math.Round(progress/float64(len(goals))*10) / 10
	}

	return s
}
