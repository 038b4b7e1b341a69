package models

import (
	"strings"

	"cloud.google.com/go/civil"
)

// Kind identifies a task variant. It never changes for a given task;
// switching kinds goes through ChangeKind and yields a new task.
type Kind int

const (
	KindPlain Kind = iota
	KindDetailed
	KindDeadline
)

// Kinds lists every variant in display order
var Kinds = []Kind{KindPlain, KindDetailed, KindDeadline}

// String returns the persisted discriminator for the kind
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "Simple"
	case KindDetailed:
		return "Detailed"
	case KindDeadline:
		return "Deadline"
	}
	return "Unknown"
}

// ParseKind maps a persisted discriminator back to its Kind
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "Simple":
		return KindPlain, true
	case "Detailed":
		return KindDetailed, true
	case "Deadline":
		return KindDeadline, true
	}
	return 0, false
}

// Fields carries the values a task is built from. Details applies only to
// KindDetailed and Due only to KindDeadline.
type Fields struct {
	Description string
	Details     *string
	Reminder    *civil.Date
	Due         *civil.Time
}

// Task is a single to-do entry. Fields are private so that every write goes
// through a validating setter.
type Task struct {
	kind        Kind
	description string
	completed   bool
	reminder    *civil.Date

	details *string     // KindDetailed
	due     *civil.Time // KindDeadline
}

// New builds a task of the given kind
func New(kind Kind, f Fields) (*Task, error) {
	t := &Task{kind: kind}

	switch kind {
	case KindPlain:
		if f.Details != nil {
			return nil, invalid("details", "only detailed tasks have details")
		}
		if f.Due != nil {
			return nil, invalid("due time", "only deadline tasks have a due time")
		}
	case KindDetailed:
		if f.Due != nil {
			return nil, invalid("due time", "only deadline tasks have a due time")
		}
		t.details = trimmed(f.Details)
	case KindDeadline:
		if f.Details != nil {
			return nil, invalid("details", "only detailed tasks have details")
		}
		if f.Due != nil && f.Reminder == nil {
			return nil, invalid("due time", "cannot set a due time without a reminder date")
		}
		t.due = minuteOf(f.Due)
	default:
		return nil, invalid("type", "unknown task type")
	}

	if err := checkDate(f.Reminder); err != nil {
		return nil, err
	}
	if f.Due != nil && !f.Due.IsValid() {
		return nil, invalid("due time", "not a time of day")
	}
	if err := t.SetDescription(f.Description); err != nil {
		return nil, err
	}
	t.reminder = copyDate(f.Reminder)
	return t, nil
}

// NewPlain builds a task with only a description
func NewPlain(description string) (*Task, error) {
	return New(KindPlain, Fields{Description: description})
}

// NewDetailed builds a task with free-text details
func NewDetailed(description string, details *string) (*Task, error) {
	return New(KindDetailed, Fields{Description: description, Details: details})
}

// NewDeadline builds a deadline task. due requires reminder.
func NewDeadline(description string, reminder *civil.Date, due *civil.Time) (*Task, error) {
	return New(KindDeadline, Fields{Description: description, Reminder: reminder, Due: due})
}

func (t *Task) Kind() Kind          { return t.kind }
func (t *Task) Description() string { return t.description }
func (t *Task) Completed() bool     { return t.completed }

// ReminderDate returns a copy of the reminder date, nil if unset
func (t *Task) ReminderDate() *civil.Date { return copyDate(t.reminder) }

// Details returns a copy of the details, nil if unset or not a detailed task
func (t *Task) Details() *string {
	if t.details == nil {
		return nil
	}
	d := *t.details
	return &d
}

// DueTime returns a copy of the due time, nil if unset or not a deadline task
func (t *Task) DueTime() *civil.Time {
	if t.due == nil {
		return nil
	}
	d := *t.due
	return &d
}

// SetDescription stores the trimmed description; blank text is rejected
func (t *Task) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return invalid("description", "cannot be empty")
	}
	t.description = description
	return nil
}

// SetReminderDate sets or clears the reminder date. Clearing it on a deadline
// task that still has a due time is rejected; clear the due time first.
func (t *Task) SetReminderDate(date *civil.Date) error {
	if date == nil && t.kind == KindDeadline && t.due != nil {
		return invalid("reminder date", "clear the due time before clearing the reminder date")
	}
	if err := checkDate(date); err != nil {
		return err
	}
	t.reminder = copyDate(date)
	return nil
}

// SetDueTime sets or clears the due time of a deadline task
func (t *Task) SetDueTime(due *civil.Time) error {
	if t.kind != KindDeadline {
		return invalid("due time", "only deadline tasks have a due time")
	}
	if due != nil && t.reminder == nil {
		return invalid("due time", "cannot set a due time without a reminder date")
	}
	if due != nil && !due.IsValid() {
		return invalid("due time", "not a time of day")
	}
	t.due = minuteOf(due)
	return nil
}

// SetDetails sets or clears the details of a detailed task
func (t *Task) SetDetails(details *string) error {
	if t.kind != KindDetailed {
		return invalid("details", "only detailed tasks have details")
	}
	t.details = trimmed(details)
	return nil
}

func (t *Task) SetCompleted(completed bool) {
	t.completed = completed
}

// Clone returns a deep copy that can be edited without touching t
func (t *Task) Clone() *Task {
	c := *t
	c.reminder = t.ReminderDate()
	c.details = t.Details()
	c.due = t.DueTime()
	return &c
}

// ChangeKind builds a new task of the given kind from t. Description,
// completion and reminder carry over; details and due time carry over only
// when the kind keeps them.
func ChangeKind(t *Task, kind Kind) (*Task, error) {
	f := Fields{
		Description: t.description,
		Reminder:    t.ReminderDate(),
	}
	switch kind {
	case KindPlain:
	case KindDetailed:
		f.Details = t.Details()
	case KindDeadline:
		f.Due = t.DueTime()
	default:
		return nil, invalid("type", "unknown task type")
	}

	n, err := New(kind, f)
	if err != nil {
		return nil, err
	}
	n.completed = t.completed
	return n, nil
}

// Display renders the canonical one-line summary of the task
func (t *Task) Display() string {
	var b strings.Builder

	if t.completed {
		b.WriteString("[COMPLETED] ")
	}
	b.WriteString("(" + t.kind.String() + ") " + t.description)
	if t.reminder != nil {
		b.WriteString(" (Reminder: " + t.reminder.String() + ")")
	}

	switch t.kind {
	case KindPlain:
	case KindDeadline:
		if t.due != nil {
			b.WriteString(" (Due: " + FormatDueTime(*t.due) + ")")
		}
	case KindDetailed:
		details := "N/A"
		if t.details != nil && *t.details != "" {
			details = *t.details
		}
		b.WriteString(" [Details: " + details + "]")
	}

	return b.String()
}

func (t *Task) String() string { return t.Display() }

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// checkDate accepts nil or a calendar date whose year fits YYYY
func checkDate(d *civil.Date) error {
	if d == nil {
		return nil
	}
	if !d.IsValid() {
		return invalid("reminder date", "not a calendar date")
	}
	if d.Year < 1 || d.Year > 9999 {
		return invalid("reminder date", "year must be between 1 and 9999")
	}
	return nil
}

func copyDate(d *civil.Date) *civil.Date {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// minuteOf drops seconds and below; due times are kept at minute granularity
func minuteOf(t *civil.Time) *civil.Time {
	if t == nil {
		return nil
	}
	return &civil.Time{Hour: t.Hour, Minute: t.Minute}
}
