package client

import "github.com/0zturkSamet/task-manager/domain"

// List is a mirror of one server-side collection. The client owns it
// exclusively: the whole slice is replaced on refetch, a single item is
// replaced by id after an update, appended after a create, and removed after
// a delete. There is no fine-grained patching.
type List[T any] struct {
	id    func(T) string
	items []T
}

// NewList builds a list keyed by the given id function.
func NewList[T any](id func(T) string) *List[T] {
	return &List[T]{id: id}
}

// Replace swaps the whole collection for the freshly fetched one.
func (l *List[T]) Replace(items []T) {
	l.items = items
}

// Items returns the current collection.
func (l *List[T]) Items() []T { return l.items }

// Len returns the number of items.
func (l *List[T]) Len() int { return len(l.items) }

// Find returns the item with the given id.
func (l *List[T]) Find(id string) (T, bool) {
	for _, item := range l.items {
		if l.id(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Append adds a freshly created item to the end.
func (l *List[T]) Append(item T) {
	l.items = append(l.items, item)
}

// ReplaceByID swaps the item with the same id for the server's updated copy.
// It reports whether a match was found.
func (l *List[T]) ReplaceByID(item T) bool {
	id := l.id(item)
	for i := range l.items {
		if l.id(l.items[i]) == id {
			l.items[i] = item
			return true
		}
	}
	return false
}

// Remove drops the item with the given id, keeping order.
func (l *List[T]) Remove(id string) bool {
	for i := range l.items {
		if l.id(l.items[i]) == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

type (
	TaskList         = List[domain.Task]
	ProjectList      = List[domain.Project]
	MemberList       = List[domain.ProjectMember]
	NotificationList = List[domain.Notification]
	CommentList      = List[domain.Comment]
)

func NewTaskList() *TaskList {
	return NewList(func(t domain.Task) string { return t.ID })
}

func NewProjectList() *ProjectList {
	return NewList(func(p domain.Project) string { return p.ID })
}

// NewMemberList keys members by user id, which is how the member routes
// address them.
func NewMemberList() *MemberList {
	return NewList(func(m domain.ProjectMember) string { return m.UserID })
}

func NewNotificationList() *NotificationList {
	return NewList(func(n domain.Notification) string { return n.ID })
}

func NewCommentList() *CommentList {
	return NewList(func(c domain.Comment) string { return c.ID })
}
