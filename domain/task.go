package domain

import (
	"sort"
	"strings"
	"time"
)

// Task is a single work item as it appears on the wire. Position orders
// tasks inside one status column; it is not globally unique.
type Task struct {
	ID                 string       `json:"id"`
	Title              string       `json:"title"`
	Description        string       `json:"description,omitempty"`
	Status             TaskStatus   `json:"status"`
	Priority           TaskPriority `json:"priority"`
	ProjectID          string       `json:"projectId"`
	ProjectName        string       `json:"projectName,omitempty"`
	AssignedToID       string       `json:"assignedToId,omitempty"`
	AssignedToName     string       `json:"assignedToName,omitempty"`
	AssignedToEmail    string       `json:"assignedToEmail,omitempty"`
	CreatedByUserID    string       `json:"createdByUserId,omitempty"`
	CreatedByUserName  string       `json:"createdByUserName,omitempty"`
	CreatedByUserEmail string       `json:"createdByUserEmail,omitempty"`
	EstimatedHours     *float64     `json:"estimatedHours,omitempty"`
	ActualHours        *float64     `json:"actualHours,omitempty"`
	DueDate            string       `json:"dueDate,omitempty"`
	CompletedAt        string       `json:"completedAt,omitempty"`
	CreatedAt          string       `json:"createdAt,omitempty"`
	UpdatedAt          string       `json:"updatedAt,omitempty"`
	Position           int          `json:"position"`
	IsOverdue          bool         `json:"isOverdue"`
	CommentCount       int64        `json:"commentCount"`
}

// Overdue reports whether the task's due date has passed. Completed and
// cancelled tasks are never overdue, and neither are tasks without a due
// date or with one that does not parse.
func (t Task) Overdue(now time.Time) bool {
	if t.Status == StatusDone || t.Status == StatusCancelled {
		return false
	}
	due, ok := ParseTime(t.DueDate)
	if !ok {
		return false
	}
	return due.Before(now)
}

// SortByPriority returns a copy of tasks ordered most urgent first.
func SortByPriority(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return PriorityRank(out[i].Priority) > PriorityRank(out[j].Priority)
	})
	return out
}

// GroupByStatus buckets tasks by their status, preserving input order
// within each bucket.
func GroupByStatus(tasks []Task) map[TaskStatus][]Task {
	groups := make(map[TaskStatus][]Task)
	for _, t := range tasks {
		groups[t.Status] = append(groups[t.Status], t)
	}
	return groups
}

// FilterBySearch returns the tasks whose title or description contains the
// query, case-insensitively. An empty query matches everything.
func FilterBySearch(tasks []Task, query string) []Task {
	if query == "" {
		return tasks
	}
	q := strings.ToLower(query)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), q) || strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}
