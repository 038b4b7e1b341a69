package views

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tgienger/todo/internal/models"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// messages runs cmd and flattens batches
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, messages(c)...)
	}
	return out
}

func mustTask(t *testing.T, kind models.Kind, f models.Fields) *models.Task {
	t.Helper()
	task, err := models.New(kind, f)
	require.NoError(t, err)
	return task
}

func sample(t *testing.T) []*models.Task {
	t.Helper()
	details := "whole grain"
	jan1 := civil.Date{Year: 2025, Month: time.January, Day: 1}

	milk := mustTask(t, models.KindPlain, models.Fields{Description: "Buy milk"})
	bread := mustTask(t, models.KindDetailed, models.Fields{Description: "Bread", Details: &details})
	rent := mustTask(t, models.KindDeadline, models.Fields{Description: "Pay rent", Reminder: &jan1})
	rent.SetCompleted(true)
	return []*models.Task{milk, bread, rent}
}

func TestSubstringFilter(t *testing.T) {
	tasks := sample(t)
	targets := []string{"Buy milk", "Bread", "Pay rent"}

	ranks := substringFilter(tasks)("GRAIN", targets)
	require.Len(t, ranks, 1)
	assert.Equal(t, 1, ranks[0].Index)

	ranks = substringFilter(tasks)("", targets)
	assert.Len(t, ranks, 3)

	assert.Empty(t, substringFilter(tasks)("nothing", targets))
}

func TestTaskListView_HideCompleted(t *testing.T) {
	v := NewTaskListView(true)
	v.SetTasks(sample(t))
	assert.Len(t, v.list.Items(), 2)

	_, cmd := v.Update(keyMsg("c"))
	assert.False(t, v.HideCompleted())
	assert.Len(t, v.list.Items(), 3)
	assert.Contains(t, messages(cmd), HideCompletedChanged{Hide: false})
}

func TestTaskListView_Actions(t *testing.T) {
	tasks := sample(t)
	v := NewTaskListView(false)
	v.SetTasks(tasks)

	_, cmd := v.Update(keyMsg("n"))
	assert.Equal(t, []tea.Msg{OpenForm{}}, messages(cmd))

	_, cmd = v.Update(keyMsg("e"))
	assert.Equal(t, []tea.Msg{OpenForm{Task: tasks[0]}}, messages(cmd))

	_, cmd = v.Update(keyMsg("x"))
	assert.Equal(t, []tea.Msg{ToggleCompleted{Task: tasks[0]}}, messages(cmd))
}

func TestTaskListView_DeleteConfirm(t *testing.T) {
	tasks := sample(t)
	v := NewTaskListView(false)
	v.SetTasks(tasks)

	_, cmd := v.Update(keyMsg("d"))
	assert.Nil(t, cmd)
	assert.True(t, v.confirmingDelete)
	assert.Contains(t, v.View(), "Delete Task?")

	_, cmd = v.Update(keyMsg("n"))
	assert.Nil(t, cmd)
	assert.False(t, v.confirmingDelete)

	v.Update(keyMsg("d"))
	_, cmd = v.Update(keyMsg("y"))
	assert.Equal(t, []tea.Msg{DeleteTask{Task: tasks[0]}}, messages(cmd))
}

func TestTaskListView_Empty(t *testing.T) {
	v := NewTaskListView(false)
	v.SetTasks(nil)
	assert.Contains(t, v.View(), "No Tasks")

	_, cmd := v.Update(keyMsg("x"))
	assert.Nil(t, cmd)
}

func TestVisibleFields(t *testing.T) {
	assert.NotContains(t, visibleFields(models.KindPlain), fieldDetails)
	assert.NotContains(t, visibleFields(models.KindPlain), fieldDue)
	assert.Contains(t, visibleFields(models.KindDetailed), fieldDetails)
	assert.NotContains(t, visibleFields(models.KindDetailed), fieldDue)
	assert.Contains(t, visibleFields(models.KindDeadline), fieldDue)
	assert.NotContains(t, visibleFields(models.KindDeadline), fieldDetails)
}

func TestTaskForm_KindSelector(t *testing.T) {
	f := NewTaskFormView(nil)
	require.Equal(t, fieldKind, f.focused())

	f.Update(keyMsg("right"))
	assert.Equal(t, models.KindDetailed, f.kind)
	f.Update(keyMsg("right"))
	assert.Equal(t, models.KindDeadline, f.kind)
	f.Update(keyMsg("right"))
	assert.Equal(t, models.KindPlain, f.kind)
	f.Update(keyMsg("left"))
	assert.Equal(t, models.KindDeadline, f.kind)
}

func TestTaskForm_NewDeadline(t *testing.T) {
	f := NewTaskFormView(nil)
	f.kind = models.KindDeadline
	f.description.SetValue("  Pay rent ")
	f.reminder.SetValue("2025-01-01")
	f.due.SetValue("14:30")

	_, cmd := f.Update(keyMsg("ctrl+s"))
	msgs := messages(cmd)
	require.Len(t, msgs, 1)
	save, ok := msgs[0].(SaveTask)
	require.True(t, ok)
	assert.Nil(t, save.Original)
	assert.Equal(t, "(Deadline) Pay rent (Reminder: 2025-01-01) (Due: 14:30)", save.Task.Display())
}

func TestTaskForm_Rejects(t *testing.T) {
	tests := []struct {
		name        string
		kind        models.Kind
		description string
		reminder    string
		due         string
	}{
		{"blank description", models.KindPlain, "   ", "", ""},
		{"bad date", models.KindPlain, "x", "2025-02-30", ""},
		{"bad time", models.KindDeadline, "x", "2025-01-01", "25:00"},
		{"due without reminder", models.KindDeadline, "x", "", "09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTaskFormView(nil)
			f.kind = tt.kind
			f.description.SetValue(tt.description)
			f.reminder.SetValue(tt.reminder)
			f.due.SetValue(tt.due)

			_, cmd := f.Update(keyMsg("ctrl+s"))
			assert.Nil(t, cmd)
			assert.ErrorIs(t, f.err, models.ErrInvalidInput)
			assert.Contains(t, f.View(), "New Task")
		})
	}
}

func TestTaskForm_IgnoresDueTimeOnOtherKinds(t *testing.T) {
	f := NewTaskFormView(nil)
	f.description.SetValue("Buy milk")
	f.due.SetValue("garbage")

	task, err := f.build()
	require.NoError(t, err)
	assert.Equal(t, models.KindPlain, task.Kind())
	assert.Nil(t, task.DueTime())
}

func TestTaskForm_EditClearsDeadline(t *testing.T) {
	jan1 := civil.Date{Year: 2025, Month: time.January, Day: 1}
	due := civil.Time{Hour: 9}
	original := mustTask(t, models.KindDeadline, models.Fields{Description: "Pay rent", Reminder: &jan1, Due: &due})

	f := NewTaskFormView(original)
	assert.Equal(t, fieldDescription, f.focused())
	assert.Equal(t, "2025-01-01", f.reminder.Value())
	assert.Equal(t, "09:00", f.due.Value())

	f.reminder.SetValue("")
	f.due.SetValue("")
	task, err := f.build()
	require.NoError(t, err)
	assert.Nil(t, task.ReminderDate())
	assert.Nil(t, task.DueTime())

	// The original is untouched
	assert.Equal(t, &jan1, original.ReminderDate())
	assert.Equal(t, &due, original.DueTime())
}

func TestTaskForm_EditMovesDeadlineLater(t *testing.T) {
	jan1 := civil.Date{Year: 2025, Month: time.January, Day: 1}
	due := civil.Time{Hour: 9}
	original := mustTask(t, models.KindDeadline, models.Fields{Description: "Pay rent", Reminder: &jan1, Due: &due})

	f := NewTaskFormView(original)
	f.reminder.SetValue("2025-03-01")
	f.due.SetValue("17:45")

	_, cmd := f.Update(keyMsg("ctrl+s"))
	msgs := messages(cmd)
	require.Len(t, msgs, 1)
	save := msgs[0].(SaveTask)
	assert.Same(t, original, save.Original)
	assert.NotSame(t, original, save.Task)
	assert.Equal(t, "(Deadline) Pay rent (Reminder: 2025-03-01) (Due: 17:45)", save.Task.Display())
}

func TestTaskForm_EditChangesKind(t *testing.T) {
	details := "two bags"
	original := mustTask(t, models.KindDetailed, models.Fields{Description: "Shop", Details: &details})
	original.SetCompleted(true)

	f := NewTaskFormView(original)
	f.kind = models.KindDeadline
	f.reminder.SetValue("2025-01-01")
	f.due.SetValue("08:00")

	task, err := f.build()
	require.NoError(t, err)
	assert.Equal(t, models.KindDeadline, task.Kind())
	assert.Nil(t, task.Details())
	assert.True(t, task.Completed())
	assert.Equal(t, models.KindDetailed, original.Kind())
}

func TestTaskForm_Cancel(t *testing.T) {
	f := NewTaskFormView(nil)
	_, cmd := f.Update(keyMsg("esc"))
	assert.Equal(t, []tea.Msg{CancelForm{}}, messages(cmd))
}
