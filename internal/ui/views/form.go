package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

type formField int

const (
	fieldKind formField = iota
	fieldDescription
	fieldDetails
	fieldReminder
	fieldDue
	fieldSave
)

// visibleFields returns the form fields shown for a task kind, in tab order
func visibleFields(kind models.Kind) []formField {
	switch kind {
	case models.KindDetailed:
		return []formField{fieldKind, fieldDescription, fieldDetails, fieldReminder, fieldSave}
	case models.KindDeadline:
		return []formField{fieldKind, fieldDescription, fieldReminder, fieldDue, fieldSave}
	case models.KindPlain:
	}
	return []formField{fieldKind, fieldDescription, fieldReminder, fieldSave}
}

// SaveTask carries a validated task out of the form. Original is the task it
// replaces, nil for a new task.
type SaveTask struct {
	Original *models.Task
	Task     *models.Task
}

// CancelForm closes the form without changes
type CancelForm struct{}

// TaskFormView creates or edits one task
type TaskFormView struct {
	styles *styles.Styles
	keys   keys.KeyMap
	width  int
	height int

	original    *models.Task
	kind        models.Kind
	description textinput.Model
	details     textarea.Model
	reminder    textinput.Model
	due         textinput.Model
	focusIdx    int // index into visibleFields(kind)
	err         error
}

// NewTaskFormView opens the form for task, or for a new task when task is nil
func NewTaskFormView(task *models.Task) *TaskFormView {
	description := textinput.New()
	description.Placeholder = "What needs doing?"
	description.CharLimit = 255

	details := textarea.New()
	details.Placeholder = "Details (optional)"
	details.CharLimit = 1000
	details.SetWidth(50)
	details.SetHeight(3)
	details.ShowLineNumbers = false

	reminder := textinput.New()
	reminder.Placeholder = "YYYY-MM-DD"
	reminder.CharLimit = 10

	due := textinput.New()
	due.Placeholder = "HH:mm"
	due.CharLimit = 5

	v := &TaskFormView{
		styles:      styles.NewStyles(),
		keys:        keys.DefaultKeyMap(),
		original:    task,
		kind:        models.KindPlain,
		description: description,
		details:     details,
		reminder:    reminder,
		due:         due,
	}

	if task != nil {
		v.kind = task.Kind()
		v.description.SetValue(task.Description())
		v.reminder.SetValue(models.FormatDate(task.ReminderDate()))
		if d := task.Details(); d != nil {
			v.details.SetValue(*d)
		}
		if t := task.DueTime(); t != nil {
			v.due.SetValue(models.FormatDueTime(*t))
		}
		// Start on the description when editing
		v.focusIdx = 1
	}
	v.updateFocus()
	return v
}

func (v *TaskFormView) Init() tea.Cmd {
	return textinput.Blink
}

// SetError shows err above the form, e.g. a failed save
func (v *TaskFormView) SetError(err error) {
	v.err = err
}

func (v *TaskFormView) focused() formField {
	fields := visibleFields(v.kind)
	return fields[v.focusIdx%len(fields)]
}

func (v *TaskFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.details.SetWidth(clamp(contentWidth-10, 20, 50))
		return v, nil

	case tea.KeyMsg:
		return v.updateKeys(msg)
	}
	return v, nil
}

func (v *TaskFormView) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := visibleFields(v.kind)

	switch {
	case key.Matches(msg, v.keys.Back):
		return v, func() tea.Msg { return CancelForm{} }

	case key.Matches(msg, v.keys.Save):
		return v, v.submit()

	case key.Matches(msg, v.keys.Tab):
		v.focusIdx = (v.focusIdx + 1) % len(fields)
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.ShiftTab):
		v.focusIdx = (v.focusIdx + len(fields) - 1) % len(fields)
		v.updateFocus()
		return v, nil

	case key.Matches(msg, v.keys.PrevKind), key.Matches(msg, v.keys.NextKind):
		if v.focused() == fieldKind {
			step := 1
			if key.Matches(msg, v.keys.PrevKind) {
				step = len(models.Kinds) - 1
			}
			v.kind = models.Kinds[(int(v.kind)+step)%len(models.Kinds)]
			v.err = nil
			return v, nil
		}

	case key.Matches(msg, v.keys.Enter):
		switch v.focused() {
		case fieldSave:
			return v, v.submit()
		case fieldDetails:
			// newline in the textarea
		default:
			v.focusIdx = (v.focusIdx + 1) % len(fields)
			v.updateFocus()
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.focused() {
	case fieldDescription:
		v.description, cmd = v.description.Update(msg)
	case fieldDetails:
		v.details, cmd = v.details.Update(msg)
	case fieldReminder:
		v.reminder, cmd = v.reminder.Update(msg)
	case fieldDue:
		v.due, cmd = v.due.Update(msg)
	case fieldKind, fieldSave:
	}
	return v, cmd
}

func (v *TaskFormView) updateFocus() {
	v.description.Blur()
	v.details.Blur()
	v.reminder.Blur()
	v.due.Blur()

	switch v.focused() {
	case fieldDescription:
		v.description.Focus()
	case fieldDetails:
		v.details.Focus()
	case fieldReminder:
		v.reminder.Focus()
	case fieldDue:
		v.due.Focus()
	case fieldKind, fieldSave:
	}
}

func (v *TaskFormView) submit() tea.Cmd {
	task, err := v.build()
	if err != nil {
		v.err = err
		return nil
	}
	v.err = nil
	original := v.original
	return func() tea.Msg {
		return SaveTask{Original: original, Task: task}
	}
}

// build validates the form through the model. Edits are applied to a clone
// so a rejected edit leaves the original untouched.
func (v *TaskFormView) build() (*models.Task, error) {
	reminder, err := models.ParseDate(v.reminder.Value())
	if err != nil {
		return nil, err
	}
	details := v.details.Value()
	due, err := models.ParseDueTime(v.due.Value())
	if err != nil && v.kind == models.KindDeadline {
		return nil, err
	}

	if v.original == nil {
		f := models.Fields{Description: v.description.Value(), Reminder: reminder}
		switch v.kind {
		case models.KindPlain:
		case models.KindDetailed:
			f.Details = &details
		case models.KindDeadline:
			f.Due = due
		}
		return models.New(v.kind, f)
	}

	task := v.original.Clone()
	if task.Kind() != v.kind {
		if task, err = models.ChangeKind(task, v.kind); err != nil {
			return nil, err
		}
	}
	if err := task.SetDescription(v.description.Value()); err != nil {
		return nil, err
	}

	switch v.kind {
	case models.KindPlain:
	case models.KindDetailed:
		if err := task.SetDetails(&details); err != nil {
			return nil, err
		}
	case models.KindDeadline:
		// Clear the due time before the date and set the date before the
		// time so each call sees a consistent pair
		if due == nil {
			if err := task.SetDueTime(nil); err != nil {
				return nil, err
			}
		}
		if err := task.SetReminderDate(reminder); err != nil {
			return nil, err
		}
		if due != nil {
			if err := task.SetDueTime(due); err != nil {
				return nil, err
			}
		}
		return task, nil
	}

	if err := task.SetReminderDate(reminder); err != nil {
		return nil, err
	}
	return task, nil
}

// View renders the view
func (v *TaskFormView) View() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	inputWidth := clamp(contentWidth-6, 20, 50)

	formTitle := "New Task"
	if v.original != nil {
		formTitle = "Edit Task"
	}

	styleFor := func(f formField) lipgloss.Style {
		if v.focused() == f {
			return s.InputFocused
		}
		return s.Input
	}

	rows := []string{s.Title.Render(formTitle), ""}
	if v.err != nil {
		rows = append(rows, s.InputError.Width(inputWidth).Render(v.err.Error()), "")
	}

	for _, f := range visibleFields(v.kind) {
		switch f {
		case fieldKind:
			rows = append(rows, "Type:", styleFor(f).Width(inputWidth).Render(v.renderKinds()))
		case fieldDescription:
			rows = append(rows, "Description:", styleFor(f).Width(inputWidth).Render(v.description.View()))
		case fieldDetails:
			rows = append(rows, "Details:", styleFor(f).Render(v.details.View()))
		case fieldReminder:
			rows = append(rows, "Reminder date:", styleFor(f).Width(inputWidth).Render(v.reminder.View()))
		case fieldDue:
			rows = append(rows, "Due time:", styleFor(f).Width(12).Render(v.due.View()))
		case fieldSave:
			btnStyle := s.Button
			if v.focused() == fieldSave {
				btnStyle = s.ButtonFocused
			}
			rows = append(rows, btnStyle.Render(" Save "))
		}
		rows = append(rows, "")
	}
	rows = append(rows, s.TitleMuted.Render("Tab: next • ←→: type • Ctrl+S: save • Esc: cancel"))

	form := lipgloss.JoinVertical(lipgloss.Left, rows...)

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, max(v.height-2, 1),
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskFormView) renderKinds() string {
	s := v.styles
	parts := make([]string, len(models.Kinds))
	for i, k := range models.Kinds {
		if k == v.kind {
			parts[i] = s.HelpKey.Render("[" + k.String() + "]")
		} else {
			parts[i] = s.TitleMuted.Render(" " + k.String() + " ")
		}
	}
	return strings.Join(parts, " ")
}
