package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/tgienger/todo/internal/models"
)

var (
	errUnknownType = errors.New("unknown task type")
	errBadFlag     = errors.New("not a 0/1 flag")
)

// taskRow is one persisted task. details is NULL unless the type is
// Detailed, due_time is NULL unless it is Deadline.
type taskRow struct {
	ID           int64
	Type         string
	Description  string
	Details      sql.NullString
	ReminderDate sql.NullString
	DueTime      sql.NullString
	Completed    any // bool when encoding, the raw cell when scanned
}

func encodeTask(t *models.Task) taskRow {
	r := taskRow{
		Type:         t.Kind().String(),
		Description:  t.Description(),
		ReminderDate: nullString(models.FormatDate(t.ReminderDate())),
		Completed:    t.Completed(),
	}

	switch t.Kind() {
	case models.KindPlain:
	case models.KindDetailed:
		if d := t.Details(); d != nil {
			r.Details = sql.NullString{String: *d, Valid: true}
		}
	case models.KindDeadline:
		if due := t.DueTime(); due != nil {
			r.DueTime = nullString(models.FormatDueTime(*due))
		}
	}
	return r
}

// decodeTask rebuilds a task through the model constructors so a tampered
// row fails the same validation as user input
func decodeTask(r taskRow) (*models.Task, error) {
	kind, ok := models.ParseKind(r.Type)
	if !ok {
		return nil, fmt.Errorf("%w %q", errUnknownType, r.Type)
	}

	f := models.Fields{Description: r.Description}
	if r.ReminderDate.Valid {
		reminder, err := models.ParseDate(r.ReminderDate.String)
		if err != nil {
			return nil, err
		}
		f.Reminder = reminder
	}

	switch kind {
	case models.KindPlain:
	case models.KindDetailed:
		if r.Details.Valid {
			details := r.Details.String
			f.Details = &details
		}
	case models.KindDeadline:
		if r.DueTime.Valid {
			due, err := models.ParseDueTime(r.DueTime.String)
			if err != nil {
				return nil, err
			}
			f.Due = due
		}
	}

	completed, err := parseCompleted(r.Completed)
	if err != nil {
		return nil, err
	}

	t, err := models.New(kind, f)
	if err != nil {
		return nil, err
	}
	t.SetCompleted(completed)
	return t, nil
}

// parseCompleted accepts only the 0 and 1 that SaveAll writes
func parseCompleted(v any) (bool, error) {
	switch v := v.(type) {
	case int64:
		switch v {
		case 0:
			return false, nil
		case 1:
			return true, nil
		}
	case bool:
		return v, nil
	}
	return false, fmt.Errorf("completed: %w: %v", errBadFlag, v)
}

// LoadAll returns every persisted task in saved order. Rows with an unknown
// type or that fail validation are skipped and logged; the rest still load.
func (db *DB) LoadAll() ([]*models.Task, error) {
	rows, err := db.Query(`
		SELECT id, type, description, details, reminder_date, due_time, completed
		FROM tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		var r taskRow
		if err := rows.Scan(&r.ID, &r.Type, &r.Description, &r.Details, &r.ReminderDate, &r.DueTime, &r.Completed); err != nil {
			return nil, &PersistenceError{Op: "load", Err: err}
		}

		t, err := decodeTask(r)
		if err != nil {
			log.Printf("db: skipping task row %d: %v", r.ID, err)
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}

	return tasks, nil
}

// SaveAll replaces the persisted task set with tasks in one transaction.
// On failure nothing changes on disk.
func (db *DB) SaveAll(tasks []*models.Task) error {
	tx, err := db.Begin()
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}

	if err := replaceTasks(tx, tasks); err != nil {
		tx.Rollback()
		return &PersistenceError{Op: "save", Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func replaceTasks(tx *sql.Tx, tasks []*models.Task) error {
	if _, err := tx.Exec("DELETE FROM tasks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO tasks (type, description, details, reminder_date, due_time, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range tasks {
		r := encodeTask(t)
		if _, err := stmt.Exec(r.Type, r.Description, r.Details, r.ReminderDate, r.DueTime, r.Completed); err != nil {
			return fmt.Errorf("insert %q: %w", r.Description, err)
		}
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
