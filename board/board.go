// Package board derives kanban column views from a flat task collection and
// resolves drag-and-drop drop events into status changes. It is deliberately
// decoupled from any gesture layer: a drop arrives as a plain event value
// and resolves through a pure function, so the board-consistency rules are
// testable on their own.
package board

import (
	"sort"

	"github.com/0zturkSamet/task-manager/domain"
)

// Column describes one display column of the board.
type Column struct {
	Status domain.TaskStatus
	Title  string
}

// Columns returns the display columns in board order. Cancelled tasks are
// not shown as a column, but CANCELLED remains a valid drop-resolution
// status.
func Columns() []Column {
	return []Column{
		{Status: domain.StatusTodo, Title: "To Do"},
		{Status: domain.StatusInProgress, Title: "In Progress"},
		{Status: domain.StatusInReview, Title: "In Review"},
		{Status: domain.StatusDone, Title: "Done"},
	}
}

// TasksByStatus projects the ordered subsequence of tasks belonging to one
// column: filter by status, then stable-sort ascending by position so ties
// keep their original collection order.
func TasksByStatus(tasks []domain.Task, status domain.TaskStatus) []domain.Task {
	column := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			column = append(column, t)
		}
	}
	sort.SliceStable(column, func(i, j int) bool {
		return column[i].Position < column[j].Position
	})
	return column
}

// DropEvent is a completed drag gesture: the dragged task and whatever it
// was released over, either a column key or another task's identifier.
type DropEvent struct {
	DraggedID    string
	DropTargetID string
}

// Move is the single update a resolved drop requires: set NewStatus on
// TaskID, nothing else.
type Move struct {
	TaskID    string
	NewStatus domain.TaskStatus
}

// ResolveDrop computes the move a drop event requires, or nil when the drop
// is a no-op. A nil result means no update call is made: the dragged task is
// unknown, the target resolves to nothing, or the resolved status equals the
// task's current status. Callers must not move the card before the update
// call resolves; the board re-renders from the refreshed authoritative list.
func ResolveDrop(tasks []domain.Task, ev DropEvent) *Move {
	var dragged *domain.Task
	for i := range tasks {
		if tasks[i].ID == ev.DraggedID {
			dragged = &tasks[i]
			break
		}
	}
	if dragged == nil {
		return nil
	}

	newStatus := domain.TaskStatus(ev.DropTargetID)
	if !domain.ValidStatus(newStatus) {
		// Dropped on a task rather than a column: adopt that task's column.
		newStatus = ""
		for _, t := range tasks {
			if t.ID == ev.DropTargetID {
				newStatus = t.Status
				break
			}
		}
		if newStatus == "" {
			return nil
		}
	}

	if dragged.Status == newStatus {
		return nil
	}
	return &Move{TaskID: dragged.ID, NewStatus: newStatus}
}
