package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/benvon/trackme/internal/models"
	"github.com/benvon/trackme/internal/reports"
	"github.com/benvon/trackme/internal/store"
	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show derived views",
	}
	cmd.AddCommand(newReportDashboardCmd(a))
	cmd.AddCommand(newReportBoardCmd(a))
	cmd.AddCommand(newReportCalendarCmd(a))
	return cmd
}

func newReportDashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the overview counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				sum := reports.Dashboard(s.Tasks(), s.Goals(), s.Metrics(), s.MetricLogs())
				return a.print(cmd, sum, func(w io.Writer) {
					fmt.Fprintf(w, "Tasks\t%d (%d completed, %d%%)\n", sum.TotalTasks, sum.CompletedTasks, sum.CompletionPercent)
					for _, status := range models.TaskStatuses {
						fmt.Fprintf(w, "  %s\t%d\n", status, sum.TasksByStatus[status])
					}
					for _, priority := range models.TaskPriorities {
						fmt.Fprintf(w, "  %s\t%d\n", priority, sum.TasksByPriority[priority])
					}
					fmt.Fprintf(w, "Goals\t%d active, %d completed\n", sum.ActiveGoals, sum.CompletedGoals)
					fmt.Fprintf(w, "Average goal progress\t%s%%\n", formatNumber(sum.AverageGoalProgress))
					fmt.Fprintf(w, "Metrics\t%d (%d logs)\n", sum.TotalMetrics, sum.TotalMetricLogs)
				})
			})
		},
	}
}

func newReportBoardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Show tasks grouped by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				board := reports.Board(s.Tasks())
				return a.print(cmd, board, func(w io.Writer) {
					for _, col := range board {
						fmt.Fprintf(w, "%s\t(%d)\n", col.Title, len(col.Tasks))
						for _, t := range col.Tasks {
							fmt.Fprintf(w, "  %s\t%s\t%s\n", t.ID, t.Title, t.Priority)
						}
					}
				})
			})
		},
	}
}

func newReportCalendarCmd(a *app) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Show dated tasks and goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := reports.ValidMonth(month); err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				days := reports.Calendar(s.Tasks(), s.Goals(), month, models.FormatDate(a.now()))
				return a.print(cmd, days, func(w io.Writer) {
					fmt.Fprintln(w, "DATE\tTYPE\tTITLE")
					for _, d := range days {
						for _, e := range d.Events {
							fmt.Fprintf(w, "%s\t%s\t%s\n", d.Date, e.Type, e.Title)
						}
					}
				})
			})
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Only show this month, YYYY-MM")
	return cmd
}
