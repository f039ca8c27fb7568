package store

import "github.com/benvon/trackme/internal/models"

// Default collections written on first run. Each call returns fresh slices.

func seedTasks() []models.Task {
	return []models.Task{
		{
			ID:          "1",
			Title:       "Complete project proposal",
			Description: "Finish the Q1 project proposal document",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityHigh,
			DueDate:     "2025-01-15",
			Tags:        []string{"work", "documentation"},
			CreatedAt:   "2025-01-15",
		},
		{
			ID:          "2",
			Title:       "Review team performance",
			Description: "Analyze team metrics and prepare report",
			Status:      models.TaskStatusInProgress,
			Priority:    models.TaskPriorityMedium,
			DueDate:     "2025-01-16",
			Tags:        []string{"work", "analysis"},
			CreatedAt:   "2025-01-14",
		},
		{
			ID:          "3",
			Title:       "Update website content",
			Description: "Refresh homepage and about page content",
			Status:      models.TaskStatusCompleted,
			Priority:    models.TaskPriorityLow,
			DueDate:     "2025-01-17",
			Tags:        []string{"work", "content"},
			CreatedAt:   "2025-01-13",
		},
		{
			ID:          "4",
			Title:       "Prepare quarterly review",
			Description: "Compile data and insights for Q4 review",
			Status:      models.TaskStatusPending,
			Priority:    models.TaskPriorityUrgent,
			DueDate:     "2025-01-18",
			Tags:        []string{"work", "review"},
			CreatedAt:   "2025-01-12",
		},
	}
}

func seedGoals() []models.Goal {
	return []models.Goal{
		{
			ID:          "1",
			Title:       "Increase monthly sales",
			Description: "Achieve $50k in monthly sales revenue",
			Target:      50000,
			Current:     35000,
			Unit:        "dollars",
			Cadence:     models.CadenceMonthly,
			StartDate:   "2025-01-01",
			EndDate:     "2025-12-31",
			CreatedAt:   "2025-01-01",
		},
		{
			ID:          "2",
			Title:       "Complete 100 sales calls",
			Description: "Make 100 outbound sales calls this month",
			Target:      100,
			Current:     75,
			Unit:        "calls",
			Cadence:     models.CadenceMonthly,
			StartDate:   "2025-01-01",
			EndDate:     "2025-01-31",
			CreatedAt:   "2025-01-01",
		},
		{
			ID:          "3",
			Title:       "Exercise 5 days per week",
			Description: "Maintain consistent workout routine",
			Target:      5,
			Current:     3,
			Unit:        "days",
			Cadence:     models.CadenceWeekly,
			StartDate:   "2025-01-01",
			CreatedAt:   "2025-01-01",
		},
	}
}

func seedMetrics() []models.Metric {
	return []models.Metric{
		{ID: "1", Name: "Sales Calls", Description: "Number of sales calls made", Unit: "calls", Color: "#3b82f6", CreatedAt: "2024-01-01"},
		{ID: "2", Name: "Revenue", Description: "Daily revenue generated", Unit: "dollars", Color: "#10b981", CreatedAt: "2024-01-01"},
		{ID: "3", Name: "Workout Minutes", Description: "Minutes spent exercising", Unit: "minutes", Color: "#f59e0b", CreatedAt: "2024-01-01"},
	}
}

func seedMetricLogs() []models.MetricLog {
	return []models.MetricLog{
		{ID: "1", MetricID: "1", Value: 15, Date: "2024-01-15", Notes: "Morning calls"},
		{ID: "2", MetricID: "1", Value: 12, Date: "2024-01-16", Notes: "Afternoon calls"},
		{ID: "3", MetricID: "2", Value: 2500, Date: "2024-01-15", Notes: "Product sales"},
		{ID: "4", MetricID: "2", Value: 3200, Date: "2024-01-16", Notes: "Service sales"},
		{ID: "5", MetricID: "3", Value: 45, Date: "2024-01-15", Notes: "Cardio session"},
		{ID: "6", MetricID: "3", Value: 30, Date: "2024-01-16", Notes: "Strength training"},
	}
}
