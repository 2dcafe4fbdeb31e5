package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/0zturkSamet/task-manager/board"
	"github.com/0zturkSamet/task-manager/domain"
)

const cardWidth = 26

var (
	columnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(cardWidth + 2).
			MarginRight(1)

	columnTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	cardStyle = lipgloss.NewStyle().
			Width(cardWidth).
			MarginTop(1)

	priorityStyles = map[domain.TaskPriority]lipgloss.Style{
		domain.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		domain.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		domain.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		domain.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	}

	overdueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func boardCmd() *cobra.Command {
	var projectID string
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Render a project's kanban board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := apiClient.ProjectTasks(cmd.Context(), projectID)
			if err != nil {
				return err
			}
			fmt.Println(renderBoard(tasks))
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project to render")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func renderBoard(tasks []domain.Task) string {
	columns := make([]string, 0, 4)
	for _, col := range board.Columns() {
		columnTasks := board.TasksByStatus(tasks, col.Status)

		var b strings.Builder
		b.WriteString(columnTitleStyle.Render(fmt.Sprintf("%s (%d)", col.Title, len(columnTasks))))
		for _, t := range columnTasks {
			b.WriteString("\n")
			b.WriteString(cardStyle.Render(renderCard(t)))
		}
		columns = append(columns, columnStyle.Render(b.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func renderCard(t domain.Task) string {
	lines := []string{
		t.Title,
		priorityStyles[t.Priority].Render(domain.PriorityLabel(t.Priority)),
	}
	if t.AssignedToName != "" {
		first, last, _ := strings.Cut(t.AssignedToName, " ")
		lines = append(lines, fmt.Sprintf("[%s] %s", domain.Initials(first, last), t.AssignedToName))
	}
	if t.IsOverdue {
		lines = append(lines, overdueStyle.Render("overdue"))
	}
	return strings.Join(lines, "\n")
}
