package views

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/ui/keys"
	"github.com/tgienger/todo/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

type taskItem struct {
	task *models.Task
}

func (i taskItem) FilterValue() string { return i.task.Description() }

type taskDelegate struct {
	styles *styles.Styles
	width  int
	now    func() time.Time
}

func (d taskDelegate) Height() int                               { return 1 }
func (d taskDelegate) Spacing() int                              { return 1 }
func (d taskDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(taskItem)
	if !ok {
		return
	}

	width := max(d.width-6, 20)
	lineStyle := d.styles.ListItem.Width(width)
	if index == m.Index() {
		lineStyle = d.styles.ListSelected.Width(width)
	}

	fmt.Fprintf(w, "%s%s", d.marker(models.UrgencyOf(i.task, d.now())), lineStyle.Render(i.task.Display()))
}

// marker is a one-cell urgency indicator in front of each task
func (d taskDelegate) marker(u models.Urgency) string {
	switch u {
	case models.UrgencyDue:
		return d.styles.TaskDue.Render("•")
	case models.UrgencyOverdue:
		return d.styles.TaskOverdue.Render("!")
	case models.UrgencyCompleted:
		return d.styles.TaskCompleted.Render("✓")
	case models.UrgencyNone:
	}
	return " "
}

// substringFilter filters the list with models.Matches. tasks must be the
// slice the list items were built from, in the same order.
func substringFilter(tasks []*models.Task) list.FilterFunc {
	return func(term string, targets []string) []list.Rank {
		var ranks []list.Rank
		for i := range targets {
			if i < len(tasks) && models.Matches(tasks[i], term) {
				ranks = append(ranks, list.Rank{Index: i})
			}
		}
		return ranks
	}
}

// OpenForm asks the app to open the task form. Task is nil for a new task.
type OpenForm struct {
	Task *models.Task
}

// ToggleCompleted flips the completion flag of Task
type ToggleCompleted struct {
	Task *models.Task
}

// DeleteTask removes Task from the collection
type DeleteTask struct {
	Task *models.Task
}

// HideCompletedChanged reports the new state of the completed-task filter
type HideCompletedChanged struct {
	Hide bool
}

// TaskListView shows the task collection
type TaskListView struct {
	list     list.Model
	delegate *taskDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int

	tasks         []*models.Task
	hideCompleted bool

	confirmingDelete bool
	deleteTarget     *models.Task

	// Help popup (shown with ? at narrow widths)
	showHelpPopup bool
}

// NewTaskListView creates an empty task list
func NewTaskListView(hideCompleted bool) *TaskListView {
	s := styles.NewStyles()
	km := keys.DefaultKeyMap()

	delegate := &taskDelegate{styles: s, width: 80, now: time.Now}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Tasks"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = s.Title
	l.FilterInput.Placeholder = "Search description or details..."
	l.KeyMap.Filter = km.Search
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ShowFullHelp.SetEnabled(false)
	l.KeyMap.CloseFullHelp.SetEnabled(false)

	return &TaskListView{
		list:          l,
		delegate:      delegate,
		styles:        s,
		keys:          km,
		hideCompleted: hideCompleted,
	}
}

func (v *TaskListView) Init() tea.Cmd { return nil }

// SetTasks replaces the displayed collection. The selection stays on the
// same index when possible.
func (v *TaskListView) SetTasks(tasks []*models.Task) tea.Cmd {
	v.tasks = tasks
	return v.rebuild()
}

func (v *TaskListView) rebuild() tea.Cmd {
	visible := models.Filter(v.tasks, "", v.hideCompleted)

	items := make([]list.Item, len(visible))
	for i, t := range visible {
		items[i] = taskItem{task: t}
	}
	v.list.Filter = substringFilter(visible)
	return v.list.SetItems(items)
}

// HideCompleted reports whether completed tasks are filtered out
func (v *TaskListView) HideCompleted() bool { return v.hideCompleted }

func (v *TaskListView) selected() *models.Task {
	if item, ok := v.list.SelectedItem().(taskItem); ok {
		return item.task
	}
	return nil
}

func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		// Use content width (capped at MaxWidth) for internal layout
		contentWidth := styles.ContentWidth(msg.Width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth-4, max(msg.Height-8, 4))
		return v, nil

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		// While typing a search every key belongs to the filter input
		if v.list.SettingFilter() {
			break
		}

		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Help):
			v.showHelpPopup = true
			return v, nil
		case key.Matches(msg, v.keys.New):
			return v, func() tea.Msg { return OpenForm{} }
		case key.Matches(msg, v.keys.Edit), key.Matches(msg, v.keys.Enter):
			if t := v.selected(); t != nil {
				return v, func() tea.Msg { return OpenForm{Task: t} }
			}
			return v, nil
		case key.Matches(msg, v.keys.Complete):
			if t := v.selected(); t != nil {
				return v, func() tea.Msg { return ToggleCompleted{Task: t} }
			}
			return v, nil
		case key.Matches(msg, v.keys.Delete):
			if t := v.selected(); t != nil {
				v.confirmingDelete = true
				v.deleteTarget = t
			}
			return v, nil
		case key.Matches(msg, v.keys.ToggleFinished):
			v.hideCompleted = !v.hideCompleted
			hide := v.hideCompleted
			return v, tea.Batch(v.rebuild(), func() tea.Msg { return HideCompletedChanged{Hide: hide} })
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		target := v.deleteTarget
		v.confirmingDelete = false
		v.deleteTarget = nil
		return v, func() tea.Msg { return DeleteTask{Task: target} }
	case "n", "N", "esc":
		v.confirmingDelete = false
		v.deleteTarget = nil
		return v, nil
	}
	return v, nil
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderDeleteConfirm()
	}

	if len(v.list.Items()) == 0 {
		return v.renderEmpty()
	}

	content := v.list.View() + "\n" + v.renderHelp()
	return styles.CenterView(content, v.width, v.height)
}

func (v *TaskListView) renderEmpty() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	hint := "Press 'n' to create your first task"
	if len(v.tasks) > 0 {
		hint = "All tasks are completed. Press 'c' to show them"
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Render("No Tasks"),
		"",
		s.TitleMuted.Render(hint),
		"",
		s.ButtonPrimary.Render(" New Task "),
	)

	centered := lipgloss.Place(contentWidth, max(v.height-2, 1),
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 60 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	completedLabel := "hide done"
	if v.hideCompleted {
		completedLabel = "show done"
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s done • %s del • %s search • %s %s • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("x"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("c"),
			completedLabel,
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	completedLabel := "hide completed"
	if v.hideCompleted {
		completedLabel = "show completed"
	}

	helpItems := []string{
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("e/↵") + "    edit task",
		s.HelpKey.Render("x") + "      toggle completed",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("/") + "      search",
		s.HelpKey.Render("c") + "      " + completedLabel,
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TaskDue.Render("•") + " reminder due  " + s.TaskOverdue.Render("!") + " overdue  " + s.TaskCompleted.Render("✓") + " done",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, max(v.height-2, 1),
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderDeleteConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	target := ""
	if v.deleteTarget != nil {
		target = v.deleteTarget.Description()
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Danger.Render("Delete Task?"),
		"",
		s.TitleMuted.Width(clamp(contentWidth-10, 20, 60)).Align(lipgloss.Center).Render(target),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, max(v.height-2, 1),
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
