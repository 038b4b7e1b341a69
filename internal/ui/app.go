package ui

import (
	"fmt"
	"log"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/ui/styles"
	"github.com/tgienger/todo/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewForm
)

const settingHideCompleted = "hide_completed"

// Store is the persistence the app needs
type Store interface {
	LoadAll() ([]*models.Task, error)
	SaveAll(tasks []*models.Task) error
	GetSetting(key string) (string, error)
	SetSetting(key, value string) error
}

// loadedTasks is the result of the initial load
type loadedTasks struct {
	tasks []*models.Task
	err   error
}

type App struct {
	store       Store
	tasks       []*models.Task
	currentView View
	taskList    *views.TaskListView
	form        *views.TaskFormView
	styles      *styles.Styles
	status      string
	statusErr   bool
	width       int
	height      int
}

// Creates a new application. hideCompleted is used until the user toggles
// the filter; after that the stored preference wins.
func NewApp(store Store, hideCompleted bool) *App {
	if v, err := store.GetSetting(settingHideCompleted); err != nil {
		log.Printf("ui: reading %s: %v", settingHideCompleted, err)
	} else if v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			hideCompleted = b
		}
	}

	return &App{
		store:       store,
		currentView: ViewTasks,
		taskList:    views.NewTaskListView(hideCompleted),
		styles:      styles.NewStyles(),
	}
}

func (a *App) Init() tea.Cmd {
	store := a.store
	return func() tea.Msg {
		tasks, err := store.LoadAll()
		return loadedTasks{tasks: tasks, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Reserve a line for the status bar
		inner := tea.WindowSizeMsg{Width: msg.Width, Height: max(msg.Height-1, 1)}
		a.taskList.Update(inner)
		if a.form != nil {
			a.form.Update(inner)
		}
		return a, nil

	case loadedTasks:
		if msg.err != nil {
			log.Printf("ui: loading tasks: %v", msg.err)
			a.setStatus(fmt.Sprintf("Could not load tasks: %v. Saving now replaces the stored tasks", msg.err), true)
			a.tasks = nil
		} else {
			a.tasks = msg.tasks
		}
		return a, a.taskList.SetTasks(a.tasks)

	case views.OpenForm:
		if msg.Task != nil && msg.Task.Completed() {
			a.setStatus("Completed tasks cannot be edited; mark it not done first", true)
			return a, nil
		}
		return a, a.openForm(msg.Task)

	case views.CancelForm:
		a.closeForm()
		return a, nil

	case views.SaveTask:
		var next []*models.Task
		if msg.Original == nil {
			next = appendTask(a.tasks, msg.Task)
		} else {
			next = replaceTask(a.tasks, msg.Original, msg.Task)
		}
		if err := a.commit(next); err != nil {
			a.form.SetError(err)
			a.setStatus(err.Error(), true)
			return a, nil
		}
		a.closeForm()
		a.setStatus("Saved", false)
		return a, a.taskList.SetTasks(a.tasks)

	case views.ToggleCompleted:
		updated := msg.Task.Clone()
		updated.SetCompleted(!msg.Task.Completed())
		if err := a.commit(replaceTask(a.tasks, msg.Task, updated)); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		a.status = ""
		return a, a.taskList.SetTasks(a.tasks)

	case views.DeleteTask:
		if err := a.commit(removeTask(a.tasks, msg.Task)); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		a.setStatus("Deleted", false)
		return a, a.taskList.SetTasks(a.tasks)

	case views.HideCompletedChanged:
		if err := a.store.SetSetting(settingHideCompleted, strconv.FormatBool(msg.Hide)); err != nil {
			log.Printf("ui: saving %s: %v", settingHideCompleted, err)
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewTasks:
		_, cmd = a.taskList.Update(msg)
	case ViewForm:
		if a.form != nil {
			_, cmd = a.form.Update(msg)
		}
	}
	return a, cmd
}

// commit persists next and adopts it only when the save succeeds, so the
// displayed collection always matches the database
func (a *App) commit(next []*models.Task) error {
	if err := a.store.SaveAll(next); err != nil {
		log.Printf("ui: saving tasks: %v", err)
		return err
	}
	a.tasks = next
	return nil
}

func (a *App) openForm(task *models.Task) tea.Cmd {
	a.currentView = ViewForm
	a.form = views.NewTaskFormView(task)
	a.status = ""

	return tea.Batch(
		a.form.Init(),
		func() tea.Msg {
			return tea.WindowSizeMsg{Width: a.width, Height: a.height}
		},
	)
}

func (a *App) closeForm() {
	a.currentView = ViewTasks
	a.form = nil
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) View() string {
	body := a.taskList.View()
	if a.currentView == ViewForm && a.form != nil {
		body = a.form.View()
	}
	return body + "\n" + a.renderStatus()
}

func (a *App) renderStatus() string {
	if a.status == "" {
		return ""
	}
	if a.statusErr {
		return a.styles.StatusError.Render(a.status)
	}
	return a.styles.StatusBar.Render(a.status)
}

// appendTask returns a new slice with task added at the end
func appendTask(tasks []*models.Task, task *models.Task) []*models.Task {
	next := make([]*models.Task, 0, len(tasks)+1)
	next = append(next, tasks...)
	return append(next, task)
}

// replaceTask returns a new slice with old swapped for updated. old is matched
// by identity; the input slice is not modified.
func replaceTask(tasks []*models.Task, old, updated *models.Task) []*models.Task {
	next := make([]*models.Task, len(tasks))
	for i, t := range tasks {
		if t == old {
			next[i] = updated
		} else {
			next[i] = t
		}
	}
	return next
}

// removeTask returns a new slice without task
func removeTask(tasks []*models.Task, task *models.Task) []*models.Task {
	next := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != task {
			next = append(next, t)
		}
	}
	return next
}
