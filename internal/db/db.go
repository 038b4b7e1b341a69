package db

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schema string

// ErrLocked is returned by Open when another process holds the database
var ErrLocked = errors.New("database is in use by another process")

// PersistenceError reports a failed storage operation. Op is "open", "load"
// or "save".
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s tasks: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DB wraps the database connection and the lock that keeps it single-process
type DB struct {
	*sql.DB
	lock *flock.Flock
}

// Open locks and opens the database at path, creating it and its schema if
// needed. The lock is held until Close.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, &PersistenceError{Op: "open", Err: err}
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		lock.Unlock()
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	// Initialize schema
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		lock.Unlock()
		return nil, &PersistenceError{Op: "open", Err: err}
	}

	return &DB{DB: db, lock: lock}, nil
}

// Close closes the connection and releases the lock
func (db *DB) Close() error {
	err := db.DB.Close()
	if uerr := db.lock.Unlock(); err == nil {
		err = uerr
	}
	return err
}

// GetSetting retrieves a setting value by key
func (db *DB) GetSetting(key string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// SetSetting sets a setting value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}
