package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/benvon/trackme/internal/models"
	"github.com/benvon/trackme/internal/reports"
	"github.com/benvon/trackme/internal/store"
	"github.com/benvon/trackme/internal/validation"
	"github.com/spf13/cobra"
)

func newGoalsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"goal"},
		Short:   "Manage goals",
	}
	cmd.AddCommand(newGoalsListCmd(a))
	cmd.AddCommand(newGoalsAddCmd(a))
	cmd.AddCommand(newGoalsProgressCmd(a))
	cmd.AddCommand(newGoalsDeleteCmd(a))
	return cmd
}

func newGoalsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals with progress and ETA",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				rows := reports.Goals(s.Goals(), a.now())
				return a.print(cmd, rows, func(w io.Writer) { writeGoalTable(w, rows) })
			})
		},
	}
}

func newGoalsAddCmd(a *app) *cobra.Command {
	var (
		in      models.NewGoal
		cadence string
	)

	cmd := &cobra.Command{
		Use:   "add <title> <target>",
		Short: "Create a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := validation.ParseNumber(args[1])
			if err != nil {
				return err
			}
			in.Title = validation.SanitizeText(args[0])
			in.Description = validation.SanitizeText(in.Description)
			in.Target = target
			in.Cadence = models.Cadence(cadence)
			if err := validation.Struct(in); err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				goal, err := s.AddGoal(ctx, in)
				if err != nil {
					return err
				}
				return a.print(cmd, goal, func(w io.Writer) {
					fmt.Fprintf(w, "Created goal %s: %s (target %s %s)\n", goal.ID, goal.Title, formatNumber(goal.Target), goal.Unit)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Goal description")
	cmd.Flags().StringVarP(&in.Unit, "unit", "u", "", "Unit of the target")
	cmd.Flags().StringVar(&cadence, "cadence", "", "daily, weekly or monthly (default monthly)")
	cmd.Flags().StringVar(&in.StartDate, "start", "", "Start date, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&in.EndDate, "end", "", "End date, YYYY-MM-DD")
	return cmd
}

func newGoalsProgressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "progress <id> <current>",
		Short: "Set the current value of a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := validation.ParseNumber(args[1])
			if err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				goal, err := s.UpdateGoal(ctx, args[0], models.GoalPatch{Current: &current})
				if err != nil {
					return err
				}
				rows := reports.Goals([]models.Goal{goal}, a.now())
				return a.print(cmd, rows[0], func(w io.Writer) { writeGoalTable(w, rows) })
			})
		},
	}
}

func newGoalsDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a goal",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				if err := s.DeleteGoal(ctx, args[0]); err != nil {
					return err
				}
				return a.printDeleted(cmd, "goal", args[0])
			})
		},
	}
}

func writeGoalTable(w io.Writer, rows []reports.GoalReport) {
	fmt.Fprintln(w, "ID\tTITLE\tCURRENT\tTARGET\tUNIT\tPROGRESS\tETA")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s%%\t%s\n",
			r.Goal.ID, r.Goal.Title, formatNumber(r.Goal.Current), formatNumber(r.Goal.Target),
			orDash(r.Goal.Unit), formatNumber(r.Progress), r.ETA)
	}
}
