package models

import (
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// DueTimeLayout is the only accepted due time text form
const DueTimeLayout = "15:04"

// ParseDate parses a YYYY-MM-DD reminder date. Blank text means no date.
func ParseDate(text string) (*civil.Date, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	d, err := civil.ParseDate(text)
	if err != nil {
		return nil, invalid("reminder date", fmt.Sprintf("%q is not a YYYY-MM-DD date", text))
	}
	return &d, nil
}

// ParseDueTime parses a zero-padded 24-hour HH:mm time. Blank text means no time.
func ParseDueTime(text string) (*civil.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	// time.Parse accepts single digit hours, HH:mm does not
	if len(text) != len(DueTimeLayout) {
		return nil, invalid("due time", fmt.Sprintf("%q is not an HH:mm time", text))
	}
	parsed, err := time.Parse(DueTimeLayout, text)
	if err != nil {
		return nil, invalid("due time", fmt.Sprintf("%q is not an HH:mm time", text))
	}
	return &civil.Time{Hour: parsed.Hour(), Minute: parsed.Minute()}, nil
}

// FormatDueTime renders t as HH:mm
func FormatDueTime(t civil.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// FormatDate renders d as YYYY-MM-DD, or "" for nil
func FormatDate(d *civil.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
