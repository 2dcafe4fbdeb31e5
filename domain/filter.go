package domain

import (
	"strings"
	"time"
)

// TaskFilter narrows a task collection. Zero-valued fields do not constrain.
type TaskFilter struct {
	Statuses        []TaskStatus   `json:"statuses,omitempty"`
	Priorities      []TaskPriority `json:"priorities,omitempty"`
	AssignedToID    string         `json:"assignedToId,omitempty"`
	CreatedByUserID string         `json:"createdByUserId,omitempty"`
	DueDateFrom     string         `json:"dueDateFrom,omitempty"`
	DueDateTo       string         `json:"dueDateTo,omitempty"`
	SearchText      string         `json:"searchText,omitempty"`
	Overdue         bool           `json:"overdue,omitempty"`
	Unassigned      bool           `json:"unassigned,omitempty"`
}

// ApplyFilter returns the tasks matching every set criterion. The input
// slice is not modified.
func ApplyFilter(tasks []Task, f TaskFilter, now time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if matchesFilter(t, f, now) {
			out = append(out, t)
		}
	}
	return out
}

func matchesFilter(t Task, f TaskFilter, now time.Time) bool {
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, t.Status) {
		return false
	}
	if len(f.Priorities) > 0 && !containsPriority(f.Priorities, t.Priority) {
		return false
	}
	if f.AssignedToID != "" && t.AssignedToID != f.AssignedToID {
		return false
	}
	if f.CreatedByUserID != "" && t.CreatedByUserID != f.CreatedByUserID {
		return false
	}
	if f.Unassigned && t.AssignedToID != "" {
		return false
	}
	if f.Overdue && !t.Overdue(now) {
		return false
	}
	if f.DueDateFrom != "" || f.DueDateTo != "" {
		due, ok := ParseTime(t.DueDate)
		if !ok {
			return false
		}
		if from, ok := ParseTime(f.DueDateFrom); f.DueDateFrom != "" && (!ok || due.Before(from)) {
			return false
		}
		if to, ok := ParseTime(f.DueDateTo); f.DueDateTo != "" && (!ok || due.After(to)) {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(f.SearchText)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	return true
}

func containsStatus(list []TaskStatus, s TaskStatus) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsPriority(list []TaskPriority, p TaskPriority) bool {
	for _, v := range list {
		if v == p {
			return true
		}
	}
	return false
}
