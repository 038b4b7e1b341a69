package styles

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the palette the task views are drawn with
type Theme struct {
	Name string

	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Primary    lipgloss.Color

	// Task states
	Due     lipgloss.Color
	Overdue lipgloss.Color
	Done    lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// TokyoNight is the default color theme
var TokyoNight = Theme{
	Name: "tokyo-night",

	Background: lipgloss.Color("#1a1b26"),
	Text:       lipgloss.Color("#c0caf5"),
	Muted:      lipgloss.Color("#565f89"),
	Primary:    lipgloss.Color("#7aa2f7"),

	Due:     lipgloss.Color("#e0af68"),
	Overdue: lipgloss.Color("#f7768e"),
	Done:    lipgloss.Color("#9ece6a"),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color("#7aa2f7"),
	Selection:   lipgloss.Color("#33467c"),
}

// TokyoNightDay is the light variant for bright terminals
var TokyoNightDay = Theme{
	Name: "tokyo-night-day",

	Background: lipgloss.Color("#e1e2e7"),
	Text:       lipgloss.Color("#3760bf"),
	Muted:      lipgloss.Color("#848cb5"),
	Primary:    lipgloss.Color("#2e7de9"),

	Due:     lipgloss.Color("#8c6c3e"),
	Overdue: lipgloss.Color("#f52a65"),
	Done:    lipgloss.Color("#587539"),

	Border:      lipgloss.Color("#a8aecb"),
	BorderFocus: lipgloss.Color("#2e7de9"),
	Selection:   lipgloss.Color("#b7c1e3"),
}

var themes = map[string]Theme{
	TokyoNight.Name:    TokyoNight,
	TokyoNightDay.Name: TokyoNightDay,
}

// Current holds the active theme
var Current = TokyoNight

// Use makes the named theme current. An empty name keeps the default.
func Use(name string) error {
	if name == "" {
		return nil
	}
	t, ok := themes[name]
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(ThemeNames(), ", "))
	}
	Current = t
	return nil
}

// ThemeNames lists the selectable themes
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	if terminalWidth > MaxWidth {
		return MaxWidth
	}
	return terminalWidth
}

// CenterView wraps content and centers it horizontally if terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style
	Danger     lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Help and delete confirmation
	Popup lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Urgency markers in front of each task
	TaskDue       lipgloss.Style
	TaskOverdue   lipgloss.Style
	TaskCompleted lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputError   lipgloss.Style

	Help    lipgloss.Style
	HelpKey lipgloss.Style

	StatusBar   lipgloss.Style
	StatusError lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current
	bordered := lipgloss.NewStyle().
		Foreground(t.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border)

	return &Styles{
		Title:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		TitleMuted: lipgloss.NewStyle().Foreground(t.Muted),
		Danger:     lipgloss.NewStyle().Foreground(t.Overdue).Bold(true),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Text).
			Padding(0, 1),
		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 1).
			Bold(true),

		Popup: bordered.Padding(0, 1),

		Button: bordered.Padding(0, 2),
		ButtonFocused: bordered.
			Foreground(t.Primary).
			BorderForeground(t.BorderFocus).
			Padding(0, 2).
			Bold(true),
		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		TaskDue:       lipgloss.NewStyle().Foreground(t.Due).Bold(true),
		TaskOverdue:   lipgloss.NewStyle().Foreground(t.Overdue).Bold(true),
		TaskCompleted: lipgloss.NewStyle().Foreground(t.Done),

		Input:        bordered.Padding(0, 1),
		InputFocused: bordered.BorderForeground(t.BorderFocus).Padding(0, 1),
		InputError:   lipgloss.NewStyle().Foreground(t.Overdue),

		Help:    lipgloss.NewStyle().Foreground(t.Muted).Padding(1, 2),
		HelpKey: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),

		StatusBar:   lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		StatusError: lipgloss.NewStyle().Foreground(t.Overdue).Padding(0, 1),
	}
}
