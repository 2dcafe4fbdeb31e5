// Package forms converts UI form values into API-ready payloads. Form
// fields arrive as strings; the payload carries typed values and omits
// absent optional fields entirely instead of sending empty strings or nulls.
package forms

import (
	"strconv"
	"strings"
)

// TaskForm is the raw form shape: every field a string, exactly as a form
// control produces it.
type TaskForm struct {
	Title          string
	Description    string
	Status         string
	Priority       string
	ProjectID      string
	AssignedToID   string
	DueDate        string
	EstimatedHours string
	ActualHours    string
	Position       string
}

// TaskPayload is the API-ready record. Pointer fields marshal only when
// present.
type TaskPayload struct {
	Title          string   `json:"title,omitempty"`
	Description    string   `json:"description,omitempty"`
	Status         string   `json:"status,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	ProjectID      string   `json:"projectId,omitempty"`
	AssignedToID   string   `json:"assignedToId,omitempty"`
	DueDate        string   `json:"dueDate,omitempty"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	ActualHours    *float64 `json:"actualHours,omitempty"`
	Position       *int     `json:"position,omitempty"`
}

// TransformTaskForm normalizes a form record for submission. Each rule
// applies independently of the others:
//   - dueDate: blank is omitted; a date-only value gets a midnight time
//     component appended; a value already carrying a time component passes
//     through unchanged
//   - estimatedHours/actualHours: blank is omitted, otherwise parsed to a
//     float
//   - assignedToId, description: blank is omitted, never sent empty
func TransformTaskForm(f TaskForm) TaskPayload {
	p := TaskPayload{
		Title:     f.Title,
		Status:    f.Status,
		Priority:  f.Priority,
		ProjectID: f.ProjectID,
	}

	if due := f.DueDate; strings.TrimSpace(due) != "" {
		if !strings.Contains(due, "T") {
			due += "T00:00:00"
		}
		p.DueDate = due
	}

	if h, ok := parseHours(f.EstimatedHours); ok {
		p.EstimatedHours = &h
	}
	if h, ok := parseHours(f.ActualHours); ok {
		p.ActualHours = &h
	}

	if f.AssignedToID != "" {
		p.AssignedToID = f.AssignedToID
	}
	if f.Description != "" {
		p.Description = f.Description
	}
	if f.Position != "" {
		if pos, err := strconv.Atoi(f.Position); err == nil {
			p.Position = &pos
		}
	}

	return p
}

func parseHours(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	h, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return h, true
}

// FormatDateForInput turns a stored wire timestamp back into the date-only
// value a date input expects. The time-of-day is dropped and not recoverable
// from the form.
func FormatDateForInput(dateTime string) string {
	if dateTime == "" {
		return ""
	}
	date, _, _ := strings.Cut(dateTime, "T")
	return date
}
