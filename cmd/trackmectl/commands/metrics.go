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

func newMetricsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "metrics",
		Aliases: []string{"metric"},
		Short:   "Manage metrics and their logs",
	}
	cmd.AddCommand(newMetricsListCmd(a))
	cmd.AddCommand(newMetricsAddCmd(a))
	cmd.AddCommand(newMetricsLogCmd(a))
	cmd.AddCommand(newMetricsLogsCmd(a))
	cmd.AddCommand(newMetricsStatsCmd(a))
	cmd.AddCommand(newMetricsDeleteCmd(a))
	return cmd
}

func newMetricsListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				metrics := s.Metrics()
				return a.print(cmd, metrics, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tNAME\tUNIT\tCOLOR\tCREATED")
					for _, m := range metrics {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, orDash(m.Unit), m.Color, m.CreatedAt)
					}
				})
			})
		},
	}
}

func newMetricsAddCmd(a *app) *cobra.Command {
	var in models.NewMetric

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Define a metric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Name = validation.SanitizeText(args[0])
			in.Description = validation.SanitizeText(in.Description)
			if err := validation.Struct(in); err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				metric, err := s.AddMetric(ctx, in)
				if err != nil {
					return err
				}
				return a.print(cmd, metric, func(w io.Writer) {
					fmt.Fprintf(w, "Created metric %s: %s\n", metric.ID, metric.Name)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Metric description")
	cmd.Flags().StringVarP(&in.Unit, "unit", "u", "", "Unit of the logged values")
	cmd.Flags().StringVar(&in.Color, "color", "", "Hex color (default "+models.DefaultMetricColor+")")
	return cmd
}

func newMetricsLogCmd(a *app) *cobra.Command {
	var in models.NewMetricLog

	cmd := &cobra.Command{
		Use:   "log <metric-id> <value>",
		Short: "Record a value for a metric",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := validation.ParseNumber(args[1])
			if err != nil {
				return err
			}
			in.MetricID = args[0]
			in.Value = value
			in.Notes = validation.SanitizeText(in.Notes)
			if err := validation.Struct(in); err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				metric, err := s.Metric(in.MetricID)
				if err != nil {
					return err
				}
				entry, err := s.AddMetricLog(ctx, in)
				if err != nil {
					return err
				}
				return a.print(cmd, entry, func(w io.Writer) {
					fmt.Fprintf(w, "Logged %s %s for %s on %s\n", formatNumber(entry.Value), metric.Unit, metric.Name, entry.Date)
				})
			})
		},
	}

	cmd.Flags().StringVar(&in.Date, "date", "", "Date of the observation, YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&in.Notes, "notes", "n", "", "Free-form notes")
	return cmd
}

func newMetricsLogsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logs <metric-id>",
		Short: "List the values logged for a metric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				if _, err := s.Metric(args[0]); err != nil {
					return err
				}
				logs := s.LogsForMetric(args[0])
				return a.print(cmd, logs, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tDATE\tVALUE\tNOTES")
					for _, l := range logs {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.ID, l.Date, formatNumber(l.Value), orDash(l.Notes))
					}
				})
			})
		},
	}
}

func newMetricsStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats <metric-id>",
		Short: "Show count, sum, average, min and max for a metric",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				metric, err := s.Metric(args[0])
				if err != nil {
					return err
				}
				stats := reports.MetricStatsFor(s.LogsForMetric(metric.ID))
				return a.print(cmd, stats, func(w io.Writer) {
					fmt.Fprintln(w, "METRIC\tCOUNT\tSUM\tAVG\tMIN\tMAX")
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s\n", metric.Name, stats.Count,
						formatNumber(stats.Sum), formatNumber(stats.Avg), formatNumber(stats.Min), formatNumber(stats.Max))
				})
			})
		},
	}
}

func newMetricsDeleteCmd(a *app) *cobra.Command {
	var logID bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a metric and its logs",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				if logID {
					if err := s.DeleteMetricLog(ctx, args[0]); err != nil {
						return err
					}
					return a.printDeleted(cmd, "metric log", args[0])
				}
				if err := s.DeleteMetric(ctx, args[0]); err != nil {
					return err
				}
				return a.printDeleted(cmd, "metric", args[0])
			})
		},
	}

	cmd.Flags().BoolVar(&logID, "log", false, "Treat the id as a metric log id and delete only that entry")
	return cmd
}
