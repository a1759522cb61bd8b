package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateOnly is a calendar date with no time-of-day and no timezone.
// DATE columns come back either as time.Time or as a raw string depending on
// the driver, so Scan absorbs both; the JSON and SQL representations are
// always the literal "YYYY-MM-DD".
type DateOnly struct {
	t time.Time
}

// NewDateOnly truncates t to its calendar date.
func NewDateOnly(t time.Time) DateOnly {
	return DateOnly{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDateOnly parses a "YYYY-MM-DD" string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return DateOnly{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return DateOnly{t: t}, nil
}

func (d DateOnly) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d DateOnly) IsZero() bool {
	return d.t.IsZero()
}

// Time returns the date at midnight UTC.
func (d DateOnly) Time() time.Time {
	return d.t
}

// Scan implements sql.Scanner.
func (d *DateOnly) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = DateOnly{}
		return nil
	case time.Time:
		*d = NewDateOnly(v)
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into DateOnly", value)
	}
}

func (d *DateOnly) scanString(s string) error {
	if s == "" {
		*d = DateOnly{}
		return nil
	}
	// Some drivers hand back full timestamps for DATE columns; keep only
	// the date part.
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDateOnly(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer.
func (d DateOnly) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.t.Format(dateLayout), nil
}

// MarshalJSON renders the date as "YYYY-MM-DD".
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.t.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD" or null.
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = DateOnly{}
		return nil
	}
	return d.scanString(s)
}

// GormDataType tells GORM to migrate DateOnly fields as DATE columns.
func (DateOnly) GormDataType() string {
	return "date"
}
