package models

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Matches reports whether the task contains query, case-insensitively, in its
// description or, for detailed tasks, its details
func Matches(t *Task, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.description), query) {
		return true
	}

	switch t.kind {
	case KindDetailed:
		return t.details != nil && strings.Contains(strings.ToLower(*t.details), query)
	case KindPlain, KindDeadline:
	}
	return false
}

// Filter returns the tasks matching query, in order. Completed tasks are
// dropped when hideCompleted is set.
func Filter(tasks []*Task, query string, hideCompleted bool) []*Task {
	var out []*Task
	for _, t := range tasks {
		if hideCompleted && t.completed {
			continue
		}
		if Matches(t, query) {
			out = append(out, t)
		}
	}
	return out
}

// Urgency classifies a task for highlighting
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyDue
	UrgencyOverdue
	UrgencyCompleted
)

// UrgencyOf classifies t relative to now. A reminder on or before today is
// due; a deadline whose date and due time have passed is overdue.
func UrgencyOf(t *Task, now time.Time) Urgency {
	if t.completed {
		return UrgencyCompleted
	}
	if t.reminder == nil {
		return UrgencyNone
	}

	today := civil.DateOf(now)
	if t.reminder.After(today) {
		return UrgencyNone
	}

	switch t.kind {
	case KindDeadline:
		if t.due != nil {
			deadline := civil.DateTime{Date: *t.reminder, Time: *t.due}
			if deadline.Before(civil.DateTimeOf(now)) {
				return UrgencyOverdue
			}
		}
	case KindPlain, KindDetailed:
	}
	return UrgencyDue
}
