package domain

import (
	"math"
	"time"
)

// TaskStatistics summarizes one project's active tasks.
type TaskStatistics struct {
	TotalTasks           int64   `json:"totalTasks"`
	TodoCount            int64   `json:"todoCount"`
	InProgressCount      int64   `json:"inProgressCount"`
	InReviewCount        int64   `json:"inReviewCount"`
	DoneCount            int64   `json:"doneCount"`
	CancelledCount       int64   `json:"cancelledCount"`
	LowPriorityCount     int64   `json:"lowPriorityCount"`
	MediumPriorityCount  int64   `json:"mediumPriorityCount"`
	HighPriorityCount    int64   `json:"highPriorityCount"`
	UrgentPriorityCount  int64   `json:"urgentPriorityCount"`
	OverdueCount         int64   `json:"overdueCount"`
	DueTodayCount        int64   `json:"dueTodayCount"`
	DueThisWeekCount     int64   `json:"dueThisWeekCount"`
	UnassignedCount      int64   `json:"unassignedCount"`
	AssignedToMeCount    int64   `json:"assignedToMeCount"`
	CompletionRate       float64 `json:"completionRate"`
	OnTimeCompletionRate float64 `json:"onTimeCompletionRate"`
	TotalEstimatedHours  float64 `json:"totalEstimatedHours"`
	TotalActualHours     float64 `json:"totalActualHours"`
}

// UserStatistics summarizes everything visible to one user.
type UserStatistics struct {
	TotalProjects  int64 `json:"totalProjects"`
	OwnedProjects  int64 `json:"ownedProjects"`
	MemberProjects int64 `json:"memberProjects"`

	TotalTasks          int64 `json:"totalTasks"`
	TodoCount           int64 `json:"todoCount"`
	InProgressCount     int64 `json:"inProgressCount"`
	InReviewCount       int64 `json:"inReviewCount"`
	DoneCount           int64 `json:"doneCount"`
	CancelledCount      int64 `json:"cancelledCount"`
	LowPriorityCount    int64 `json:"lowPriorityCount"`
	MediumPriorityCount int64 `json:"mediumPriorityCount"`
	HighPriorityCount   int64 `json:"highPriorityCount"`
	UrgentPriorityCount int64 `json:"urgentPriorityCount"`
	OverdueCount        int64 `json:"overdueCount"`
	DueTodayCount       int64 `json:"dueTodayCount"`
	DueThisWeekCount    int64 `json:"dueThisWeekCount"`
	UnassignedCount     int64 `json:"unassignedCount"`
	AssignedToMeCount   int64 `json:"assignedToMeCount"`
	CreatedByMeCount    int64 `json:"createdByMeCount"`

	CompletionRate        float64 `json:"completionRate"`
	MyTasksCompletionRate float64 `json:"myTasksCompletionRate"`
	TotalEstimatedHours   float64 `json:"totalEstimatedHours"`
	TotalActualHours      float64 `json:"totalActualHours"`
	MyTasksEstimatedHours float64 `json:"myTasksEstimatedHours"`
	MyTasksActualHours    float64 `json:"myTasksActualHours"`
}

// ComputeTaskStatistics derives project statistics from the project's active
// tasks as seen by userID at the given instant.
func ComputeTaskStatistics(tasks []Task, userID string, now time.Time) TaskStatistics {
	s := TaskStatistics{TotalTasks: int64(len(tasks))}

	var completedOnTime int64
	for _, t := range tasks {
		countStatus(&s.TodoCount, &s.InProgressCount, &s.InReviewCount, &s.DoneCount, &s.CancelledCount, t.Status)
		countPriority(&s.LowPriorityCount, &s.MediumPriorityCount, &s.HighPriorityCount, &s.UrgentPriorityCount, t.Priority)

		if t.Overdue(now) {
			s.OverdueCount++
		}
		if dueToday(t, now) {
			s.DueTodayCount++
		}
		if dueThisWeek(t, now) {
			s.DueThisWeekCount++
		}
		if t.AssignedToID == "" {
			s.UnassignedCount++
		}
		if t.AssignedToID == userID {
			s.AssignedToMeCount++
		}
		if t.EstimatedHours != nil {
			s.TotalEstimatedHours += *t.EstimatedHours
		}
		if t.ActualHours != nil {
			s.TotalActualHours += *t.ActualHours
		}
		if t.Status == StatusDone {
			if completed, ok := ParseTime(t.CompletedAt); ok {
				if due, ok := ParseTime(t.DueDate); ok && completed.Before(due) {
					completedOnTime++
				}
			}
		}
	}

	s.CompletionRate = percentage(s.DoneCount, s.TotalTasks)
	s.OnTimeCompletionRate = percentage(completedOnTime, s.DoneCount)
	return s
}

// ComputeUserStatistics derives a user's dashboard statistics from the task
// set visible to them and their project counts.
func ComputeUserStatistics(tasks []Task, userID string, ownedProjects, memberProjects int64, now time.Time) UserStatistics {
	s := UserStatistics{
		TotalProjects:  ownedProjects + memberProjects,
		OwnedProjects:  ownedProjects,
		MemberProjects: memberProjects,
		TotalTasks:     int64(len(tasks)),
	}

	var myTasks, myDone int64
	for _, t := range tasks {
		countStatus(&s.TodoCount, &s.InProgressCount, &s.InReviewCount, &s.DoneCount, &s.CancelledCount, t.Status)
		countPriority(&s.LowPriorityCount, &s.MediumPriorityCount, &s.HighPriorityCount, &s.UrgentPriorityCount, t.Priority)

		if t.Overdue(now) {
			s.OverdueCount++
		}
		if dueToday(t, now) {
			s.DueTodayCount++
		}
		if dueThisWeek(t, now) {
			s.DueThisWeekCount++
		}
		if t.AssignedToID == "" {
			s.UnassignedCount++
		}
		if t.CreatedByUserID == userID {
			s.CreatedByMeCount++
		}
		if t.EstimatedHours != nil {
			s.TotalEstimatedHours += *t.EstimatedHours
		}
		if t.ActualHours != nil {
			s.TotalActualHours += *t.ActualHours
		}
		if t.AssignedToID == userID {
			myTasks++
			if t.Status == StatusDone {
				myDone++
			}
			if t.EstimatedHours != nil {
				s.MyTasksEstimatedHours += *t.EstimatedHours
			}
			if t.ActualHours != nil {
				s.MyTasksActualHours += *t.ActualHours
			}
		}
	}
	s.AssignedToMeCount = myTasks

	s.CompletionRate = percentage(s.DoneCount, s.TotalTasks)
	s.MyTasksCompletionRate = percentage(myDone, myTasks)
	return s
}

func countStatus(todo, inProgress, inReview, done, cancelled *int64, status TaskStatus) {
	switch status {
	case StatusTodo:
		*todo++
	case StatusInProgress:
		*inProgress++
	case StatusInReview:
		*inReview++
	case StatusDone:
		*done++
	case StatusCancelled:
		*cancelled++
	}
}

func countPriority(low, medium, high, urgent *int64, priority TaskPriority) {
	switch priority {
	case PriorityLow:
		*low++
	case PriorityMedium:
		*medium++
	case PriorityHigh:
		*high++
	case PriorityUrgent:
		*urgent++
	}
}

func dueToday(t Task, now time.Time) bool {
	if t.Status == StatusDone || t.Status == StatusCancelled {
		return false
	}
	due, ok := ParseTime(t.DueDate)
	if !ok {
		return false
	}
	y1, m1, d1 := due.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func dueThisWeek(t Task, now time.Time) bool {
	if t.Status == StatusDone || t.Status == StatusCancelled {
		return false
	}
	due, ok := ParseTime(t.DueDate)
	if !ok {
		return false
	}
	return due.After(now) && due.Before(now.AddDate(0, 0, 7))
}

// percentage rounds to two decimals, half away from zero.
func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*10000/float64(total)) / 100
}
