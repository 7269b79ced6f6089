package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// DateOnly represents a calendar day without a time component.
// It marshals as YYYY-MM-DD and round-trips through Postgres DATE columns.
type DateOnly struct {
	time.Time
}

// NewDate builds a DateOnly from year, month and day (UTC).
func NewDate(year int, month time.Month, day int) DateOnly {
	return DateOnly{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar day (UTC).
func DateOf(t time.Time) DateOnly {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// UnmarshalJSON parses dates in YYYY-MM-DD format
func (d *DateOnly) UnmarshalJSON(data []byte) error {
	// Handle null or empty
	s := string(data)
	if s == "null" || s == "" || s == `""` {
		d.Time = time.Time{}
		return nil
	}

	// Remove quotes
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return err
	}

	d.Time = t
	return nil
}

// MarshalJSON formats dates in YYYY-MM-DD format
func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`"%s"`, d.Time.Format("2006-01-02"))), nil
}

// Scan implements the Scanner interface for database reading
func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}

	if t, ok := value.(time.Time); ok {
		y, m, day := t.Date()
		d.Time = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
		return nil
	}

	return fmt.Errorf("cannot scan %T into DateOnly", value)
}

// Value implements the Valuer interface for database writing
func (d DateOnly) Value() (driver.Value, error) {
	return d.Time, nil
}

// DaysUntil returns the whole number of days from d to other.
// Negative when other is in the past relative to d.
func (d DateOnly) DaysUntil(other DateOnly) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}
