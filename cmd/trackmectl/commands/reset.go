package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/benvon/trackme/internal/store"
	"github.com/spf13/cobra"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Replace all data with the default records",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset discards every task, goal, metric and log; pass --yes to confirm")
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				if err := s.Reset(ctx); err != nil {
					return err
				}
				result := map[string]int{
					"tasks":      len(s.Tasks()),
					"goals":      len(s.Goals()),
					"metrics":    len(s.Metrics()),
					"metricLogs": len(s.MetricLogs()),
				}
				return a.print(cmd, result, func(w io.Writer) {
					fmt.Fprintf(w, "Reset to %d tasks, %d goals, %d metrics and %d logs\n",
						result["tasks"], result["goals"], result["metrics"], result["metricLogs"])
				})
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")
	return cmd
}
