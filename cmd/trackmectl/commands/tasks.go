package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/benvon/trackme/internal/models"
	"github.com/benvon/trackme/internal/reports"
	"github.com/benvon/trackme/internal/store"
	"github.com/benvon/trackme/internal/validation"
	"github.com/spf13/cobra"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(newTasksListCmd(a))
	cmd.AddCommand(newTasksAddCmd(a))
	cmd.AddCommand(newTasksStatusCmd(a))
	cmd.AddCommand(newTasksUpdateCmd(a))
	cmd.AddCommand(newTasksDeleteCmd(a))
	return cmd
}

func newTasksListCmd(a *app) *cobra.Command {
	var filter reports.TaskFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFilter(filter.Status, validation.ValidateTaskStatus); err != nil {
				return err
			}
			if err := validateFilter(filter.Priority, validation.ValidateTaskPriority); err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				tasks := reports.FilterTasks(s.Tasks(), filter)
				return a.print(cmd, tasks, func(w io.Writer) { writeTaskTable(w, tasks) })
			})
		},
	}

	cmd.Flags().StringVarP(&filter.Search, "search", "q", "", "Match title or description")
	cmd.Flags().StringVar(&filter.Status, "status", reports.FilterAll, "Status to show, or all")
	cmd.Flags().StringVar(&filter.Priority, "priority", reports.FilterAll, "Priority to show, or all")
	return cmd
}

func validateFilter(value string, validate func(string) error) error {
	if value == "" || value == reports.FilterAll {
		return nil
	}
	return validate(value)
}

func newTasksAddCmd(a *app) *cobra.Command {
	var (
		in       models.NewTask
		status   string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Title = validation.SanitizeText(args[0])
			in.Description = validation.SanitizeText(in.Description)
			in.Status = models.TaskStatus(status)
			in.Priority = models.TaskPriority(priority)
			if err := validation.Struct(in); err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				task, err := s.AddTask(ctx, in)
				if err != nil {
					return err
				}
				return a.print(cmd, task, func(w io.Writer) {
					fmt.Fprintf(w, "Created task %s: %s\n", task.ID, task.Title)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&in.Description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&status, "status", "", "Initial status (default pending)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (default medium)")
	cmd.Flags().StringVar(&in.DueDate, "due", "", "Due date, YYYY-MM-DD")
	cmd.Flags().StringSliceVarP(&in.Tags, "tag", "t", nil, "Tag (repeatable or comma separated)")
	return cmd
}

func newTasksStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validation.ValidateTaskStatus(args[1]); err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				task, err := s.UpdateTaskStatus(ctx, args[0], models.TaskStatus(args[1]))
				if err != nil {
					return err
				}
				return a.print(cmd, task, func(w io.Writer) {
					fmt.Fprintf(w, "Task %s is now %s\n", task.ID, task.Status)
				})
			})
		},
	}
}

func newTasksUpdateCmd(a *app) *cobra.Command {
	var (
		title, description, priority, due string
		tags                              []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch models.TaskPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				v := validation.SanitizeText(title)
				patch.Title = &v
			}
			if flags.Changed("description") {
				v := validation.SanitizeText(description)
				patch.Description = &v
			}
			if flags.Changed("priority") {
				v := models.TaskPriority(priority)
				patch.Priority = &v
			}
			if flags.Changed("due") {
				patch.DueDate = &due
			}
			if flags.Changed("tag") {
				patch.Tags = &tags
			}
			if err := validation.Struct(patch); err != nil {
				return err
			}
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				task, err := s.UpdateTask(ctx, args[0], patch)
				if err != nil {
					return err
				}
				return a.print(cmd, task, func(w io.Writer) { writeTaskTable(w, []models.Task{task}) })
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "New priority")
	cmd.Flags().StringVar(&due, "due", "", "New due date, YYYY-MM-DD (empty clears it)")
	cmd.Flags().StringSliceVarP(&tags, "tag", "t", nil, "Replace the tags")
	return cmd
}

func newTasksDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd, func(ctx context.Context, s *store.Store) error {
				if err := s.DeleteTask(ctx, args[0]); err != nil {
					return err
				}
				return a.printDeleted(cmd, "task", args[0])
			})
		},
	}
}

func writeTaskTable(w io.Writer, tasks []models.Task) {
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tTAGS")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Status, t.Priority, orDash(t.DueDate), orDash(strings.Join(t.Tags, ",")))
	}
}
