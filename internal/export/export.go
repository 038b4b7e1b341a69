// Package export writes the task collection in the persisted record shape
// as JSON, YAML or TOML.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/tgienger/todo/internal/models"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists the supported output formats
var Formats = []string{FormatJSON, FormatYAML, FormatTOML}

var ErrUnknownFormat = errors.New("unknown export format")

// Record is one task in the persisted shape. Nullable columns are pointers
// and are omitted when absent.
type Record struct {
	Type         string  `json:"type" yaml:"type" toml:"type"`
	Description  string  `json:"description" yaml:"description" toml:"description"`
	Details      *string `json:"details,omitempty" yaml:"details,omitempty" toml:"details,omitempty"`
	ReminderDate *string `json:"reminder_date,omitempty" yaml:"reminder_date,omitempty" toml:"reminder_date,omitempty"`
	DueTime      *string `json:"due_time,omitempty" yaml:"due_time,omitempty" toml:"due_time,omitempty"`
	Completed    bool    `json:"completed" yaml:"completed" toml:"completed"`
}

type document struct {
	Tasks []Record `json:"tasks" yaml:"tasks" toml:"tasks"`
}

// Records converts tasks to their record shape
func Records(tasks []*models.Task) []Record {
	records := make([]Record, 0, len(tasks))
	for _, t := range tasks {
		r := Record{
			Type:        t.Kind().String(),
			Description: t.Description(),
			Completed:   t.Completed(),
		}
		if d := t.ReminderDate(); d != nil {
			s := d.String()
			r.ReminderDate = &s
		}

		switch t.Kind() {
		case models.KindPlain:
		case models.KindDetailed:
			r.Details = t.Details()
		case models.KindDeadline:
			if due := t.DueTime(); due != nil {
				s := models.FormatDueTime(*due)
				r.DueTime = &s
			}
		}
		records = append(records, r)
	}
	return records
}

// Encode writes tasks to w in the given format
func Encode(w io.Writer, format string, tasks []*models.Task) error {
	doc := document{Tasks: Records(tasks)}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
