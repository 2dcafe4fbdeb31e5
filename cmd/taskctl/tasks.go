package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0zturkSamet/task-manager/board"
	"github.com/0zturkSamet/task-manager/client"
	"github.com/0zturkSamet/task-manager/domain"
	"github.com/0zturkSamet/task-manager/forms"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage tasks",
	}
	cmd.AddCommand(tasksListCmd(), tasksCreateCmd(), tasksMoveCmd())
	return cmd
}

func tasksListCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks, across all projects or one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var tasks []domain.Task
			var err error
			if projectID != "" {
				tasks, err = apiClient.ProjectTasks(cmd.Context(), projectID)
			} else {
				tasks, err = apiClient.Tasks(cmd.Context())
			}
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("no tasks")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tASSIGNEE\tDUE")
			for _, t := range tasks {
				due := forms.FormatDateForInput(t.DueDate)
				if t.IsOverdue {
					due += " (overdue)"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					t.ID, t.Title, domain.StatusLabel(t.Status), domain.PriorityLabel(t.Priority), t.AssignedToName, due)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "limit to one project")
	return cmd
}

func tasksCreateCmd() *cobra.Command {
	form := forms.TaskForm{Status: string(domain.StatusTodo), Priority: string(domain.PriorityMedium)}
	cmd := &cobra.Command{
		Use:   "create <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form.Title = args[0]
			payload := forms.TransformTaskForm(form)
			task, err := apiClient.CreateTask(cmd.Context(), client.TaskParams{
				Title:          payload.Title,
				Description:    payload.Description,
				Status:         payload.Status,
				Priority:       payload.Priority,
				ProjectID:      payload.ProjectID,
				AssignedToID:   payload.AssignedToID,
				DueDate:        payload.DueDate,
				EstimatedHours: payload.EstimatedHours,
				ActualHours:    payload.ActualHours,
			})
			if err != nil {
				return err
			}
			fmt.Printf("created task %s (%s)\n", task.Title, task.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.ProjectID, "project", "", "project id")
	cmd.Flags().StringVar(&form.Description, "description", "", "task description")
	cmd.Flags().StringVar(&form.Status, "status", form.Status, "TODO, IN_PROGRESS, IN_REVIEW, DONE or CANCELLED")
	cmd.Flags().StringVar(&form.Priority, "priority", form.Priority, "LOW, MEDIUM, HIGH or URGENT")
	cmd.Flags().StringVar(&form.AssignedToID, "assignee", "", "user id to assign the task to")
	cmd.Flags().StringVar(&form.DueDate, "due", "", "due date, YYYY-MM-DD or full timestamp")
	cmd.Flags().StringVar(&form.EstimatedHours, "estimated-hours", "", "estimated hours")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func tasksMoveCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "move <task-id> <target>",
		Short: "Move a task to a column or onto another task",
		Long: `Move resolves the target like a board drop: a status name moves the
task to that column, another task's id moves it to that task's column,
and anything else is a silent no-op.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := apiClient.ProjectTasks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			move := board.ResolveDrop(tasks, board.DropEvent{DraggedID: args[0], DropTargetID: args[1]})
			if move == nil {
				fmt.Println("nothing to do")
				return nil
			}
			task, err := apiClient.MoveTask(cmd.Context(), move.TaskID, move.NewStatus)
			if err != nil {
				return err
			}
			fmt.Printf("moved %s to %s\n", task.Title, domain.StatusLabel(task.Status))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project the task belongs to")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
