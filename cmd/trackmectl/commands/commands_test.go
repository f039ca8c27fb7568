package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/benvon/trackme/internal/models"
	"github.com/benvon/trackme/internal/reports"
	"github.com/benvon/trackme/internal/storage"
	"github.com/benvon/trackme/internal/store"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

// memoryOpener hands every command a store over the same in-memory backend
func memoryOpener(kv storage.KV) StoreOpener {
	return func(ctx context.Context, log *zap.Logger) (*store.Store, func(), error) {
		s := store.New(kv, store.WithLogger(log), store.WithClock(func() time.Time { return testNow }))
		if err := s.Hydrate(ctx); err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
}

type cli struct {
	kv storage.KV
}

func newCLI() *cli {
	return &cli{kv: storage.NewMemoryKV()}
}

func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(memoryOpener(c.kv))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	out, err := c.run(t, append(args, "-o", "json")...)
	if err != nil {
		t.Fatalf("Expected %v to succeed, got %v", args, err)
	}
	if err := json.Unmarshal([]byte(out), v); err != nil {
		t.Fatalf("Failed to decode output %q: %v", out, err)
	}
}

func TestTasksList_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"all", nil, []string{"1", "2", "3", "4"}},
		{"pending", []string{"--status", "pending"}, []string{"1", "4"}},
		{"urgent", []string{"--priority", "urgent"}, []string{"4"}},
		{"search", []string{"-q", "REVIEW"}, []string{"2", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newCLI()
			var tasks []models.Task
			c.runJSON(t, &tasks, append([]string{"tasks", "list"}, tt.args...)...)
			var ids []string
			for _, task := range tasks {
				ids = append(ids, task.ID)
			}
			if strings.Join(ids, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Expected ids %v, got %v", tt.want, ids)
			}
		})
	}
}

func TestTasksList_RejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	if _, err := newCLI().run(t, "tasks", "list", "--status", "blocked"); err == nil {
		t.Error("Expected an error for an unknown status")
	}
}

func TestTasksAdd_PersistsAcrossCommands(t *testing.T) {
	t.Parallel()
	c := newCLI()

	var created models.Task
	c.runJSON(t, &created, "tasks", "add", "Write report", "-p", "high", "--due", "2025-02-01", "-t", "work,work")
	if created.Status != models.TaskStatusPending {
		t.Errorf("Expected default status pending, got %s", created.Status)
	}
	if len(created.Tags) != 1 || created.Tags[0] != "work" {
		t.Errorf("Expected tags [work], got %v", created.Tags)
	}
	if created.CreatedAt != "2025-01-01" {
		t.Errorf("Expected createdAt 2025-01-01, got %s", created.CreatedAt)
	}

	var tasks []models.Task
	c.runJSON(t, &tasks, "tasks", "list")
	if len(tasks) != 5 {
		t.Fatalf("Expected 5 tasks, got %d", len(tasks))
	}
	if tasks[4].ID != created.ID {
		t.Errorf("Expected new task last, got %s", tasks[4].ID)
	}
}

func TestTasksAdd_RejectsBadDate(t *testing.T) {
	t.Parallel()
	if _, err := newCLI().run(t, "tasks", "add", "Broken", "--due", "2025-13-01"); err == nil {
		t.Error("Expected an error for an invalid due date")
	}
}

func TestTasksStatus(t *testing.T) {
	t.Parallel()
	c := newCLI()

	var task models.Task
	c.runJSON(t, &task, "tasks", "status", "1", "completed")
	if task.Status != models.TaskStatusCompleted {
		t.Errorf("Expected completed, got %s", task.Status)
	}

	if _, err := c.run(t, "tasks", "status", "1", "done"); err == nil {
		t.Error("Expected an error for an unknown status")
	}
}

func TestTasksUpdate_OnlyChangedFlags(t *testing.T) {
	t.Parallel()
	c := newCLI()

	var task models.Task
	c.runJSON(t, &task, "tasks", "update", "1", "--title", "Renamed", "--due", "")
	if task.Title != "Renamed" {
		t.Errorf("Expected title Renamed, got %s", task.Title)
	}
	if task.DueDate != "" {
		t.Errorf("Expected due date cleared, got %s", task.DueDate)
	}
	if task.Priority != models.TaskPriorityHigh {
		t.Errorf("Expected priority untouched, got %s", task.Priority)
	}
}

func TestTasksDelete_Missing(t *testing.T) {
	t.Parallel()
	_, err := newCLI().run(t, "tasks", "delete", "nope")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGoalsProgress_CompletesGoal(t *testing.T) {
	t.Parallel()
	c := newCLI()

	var report reports.GoalReport
	c.runJSON(t, &report, "goals", "progress", "2", "100")
	if !report.Complete {
		t.Error("Expected goal to be complete")
	}
	if report.ETA != reports.ETACompleted {
		t.Errorf("Expected ETA %q, got %q", reports.ETACompleted, report.ETA)
	}
	if report.Goal.CompletedAt == "" {
		t.Error("Expected completedAt to be stamped")
	}
}

func TestGoalsAdd_RejectsNonNumericTarget(t *testing.T) {
	t.Parallel()
	c := newCLI()

	if _, err := c.run(t, "goals", "add", "Read", "lots"); err == nil {
		t.Error("Expected an error for a non-numeric target")
	}

	var goal models.Goal
	c.runJSON(t, &goal, "goals", "add", "Read", "12", "-u", "books")
	if goal.Target != 12 || goal.Current != 0 {
		t.Errorf("Expected target 12 and current 0, got %v / %v", goal.Target, goal.Current)
	}
	if goal.Cadence != models.CadenceMonthly {
		t.Errorf("Expected default cadence monthly, got %s", goal.Cadence)
	}
}

func TestMetricsLog_UpdatesStats(t *testing.T) {
	t.Parallel()
	c := newCLI()

	var entry models.MetricLog
	c.runJSON(t, &entry, "metrics", "log", "1", "20", "--date", "2025-01-16")
	if entry.MetricID != "1" || entry.Value != 20 {
		t.Errorf("Expected log for metric 1 with value 20, got %+v", entry)
	}

	var stats reports.MetricStats
	c.runJSON(t, &stats, "metrics", "stats", "1")
	want := reports.MetricStats{Count: 3, Sum: 47, Avg: 47.0 / 3, Min: 12, Max: 20}
	if stats.Count != want.Count || stats.Sum != want.Sum || stats.Min != want.Min || stats.Max != want.Max {
		t.Errorf("Expected %+v, got %+v", want, stats)
	}
}

func TestNonFiniteNumbers_Rejected(t *testing.T) {
	t.Parallel()

	tests := [][]string{
		{"goals", "progress", "1", "NaN"},
		{"goals", "add", "Forever", "Inf"},
		{"metrics", "log", "1", "Inf"},
		{"metrics", "log", "1", "-Infinity"},
	}

	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			t.Parallel()
			c := newCLI()
			if _, err := c.run(t, args...); err == nil {
				t.Errorf("Expected %v to fail", args)
			}
			var sum reports.Summary
			c.runJSON(t, &sum, "report", "dashboard")
			if sum.TotalMetricLogs != 6 {
				t.Errorf("Expected 6 metric logs, got %d", sum.TotalMetricLogs)
			}
		})
	}
}

func TestMetricsLog_UnknownMetric(t *testing.T) {
	t.Parallel()
	_, err := newCLI().run(t, "metrics", "log", "99", "5")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestMetricsDelete_CascadesLogs(t *testing.T) {
	t.Parallel()
	c := newCLI()

	if _, err := c.run(t, "metrics", "delete", "1"); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}

	var sum reports.Summary
	c.runJSON(t, &sum, "report", "dashboard")
	if sum.TotalMetrics != 2 || sum.TotalMetricLogs != 4 {
		t.Errorf("Expected 2 metrics and 4 logs, got %d and %d", sum.TotalMetrics, sum.TotalMetricLogs)
	}
}

func TestReportDashboard_YAML(t *testing.T) {
	t.Parallel()
	out, err := newCLI().run(t, "report", "dashboard", "-o", "yaml")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	for _, want := range []string{"totalTasks: 4", "completedTasks: 1", "completionPercent: 25"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestReportCalendar_RejectsBadMonth(t *testing.T) {
	t.Parallel()
	if _, err := newCLI().run(t, "report", "calendar", "--month", "January"); err == nil {
		t.Error("Expected an error for an invalid month")
	}
}

func TestTableOutput(t *testing.T) {
	t.Parallel()
	out, err := newCLI().run(t, "tasks", "list", "--status", "in-progress")
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header and one row, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "ID") || !strings.Contains(lines[0], "PRIORITY") {
		t.Errorf("Unexpected header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "2 ") {
		t.Errorf("Expected row for task 2, got %q", lines[1])
	}
}

func TestUnknownOutputFormat(t *testing.T) {
	t.Parallel()
	if _, err := newCLI().run(t, "tasks", "list", "-o", "xml"); err == nil {
		t.Error("Expected an error for an unknown output format")
	}
}

func TestReset_RequiresConfirmation(t *testing.T) {
	t.Parallel()
	c := newCLI()

	if _, err := c.run(t, "tasks", "delete", "1"); err != nil {
		t.Fatalf("Expected delete to succeed, got %v", err)
	}
	if _, err := c.run(t, "reset"); err == nil {
		t.Error("Expected reset without --yes to fail")
	}

	var counts map[string]int
	c.runJSON(t, &counts, "reset", "--yes")
	if counts["tasks"] != 4 || counts["metricLogs"] != 6 {
		t.Errorf("Expected seeded counts, got %v", counts)
	}
}
