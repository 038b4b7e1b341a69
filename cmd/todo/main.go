package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/todo/internal/config"
	"github.com/tgienger/todo/internal/db"
	"github.com/tgienger/todo/internal/export"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/ui"
	"github.com/tgienger/todo/internal/ui/styles"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	// Handle version flag
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-v") {
		fmt.Fprintf(stdout, "todo %s (commit: %s, built: %s)\n", version, commit, date)
		return nil
	}

	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to config.yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *configPath == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		*configPath = p
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if err := styles.Use(cfg.Theme); err != nil {
		return err
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return runUI(cfg)
	}

	switch rest[0] {
	case "list":
		return runList(cfg, rest[1:], stdout)
	case "export":
		return runExport(cfg, rest[1:], stdout)
	}
	return fmt.Errorf("unknown command %q (want list or export)", rest[0])
}

func openDB(cfg *config.Config) (*db.DB, error) {
	database, err := db.Open(cfg.Database)
	if errors.Is(err, db.ErrLocked) {
		return nil, fmt.Errorf("%s is in use by another todo process", cfg.Database)
	}
	return database, err
}

func runUI(cfg *config.Config) error {
	// The terminal belongs to the UI, so logs go to a file
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return err
	}
	f, err := tea.LogToFile(cfg.LogFile, "todo")
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	app := ui.NewApp(database, cfg.HideCompleted)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running application: %w", err)
	}
	return nil
}

func runList(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	query := fs.String("q", "", "only tasks whose description or details contain this text")
	all := fs.Bool("all", false, "include completed tasks")
	if err := fs.Parse(args); err != nil {
		return err
	}

	log.SetOutput(os.Stderr)
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	tasks, err := database.LoadAll()
	if err != nil {
		return err
	}
	for _, t := range models.Filter(tasks, *query, !*all) {
		if _, err := fmt.Fprintln(stdout, t.Display()); err != nil {
			return err
		}
	}
	return nil
}

func runExport(cfg *config.Config, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	format := fs.String("format", export.FormatJSON, "output format: "+strings.Join(export.Formats, ", "))
	if err := fs.Parse(args); err != nil {
		return err
	}

	log.SetOutput(os.Stderr)
	database, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	tasks, err := database.LoadAll()
	if err != nil {
		return err
	}
	return export.Encode(stdout, *format, tasks)
}
