package datawarehouse

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator returns a fresh identifier on every call. Warehouses use it for
// the data source fingerprint and for run, measure, and document ids the
// caller did not supply.
type IDGenerator func() string

// NewFingerprint returns a random (version 4) UUID in canonical form.
func NewFingerprint() string {
	return uuid.NewString()
}

// normalizeID trims a caller-supplied id. Non-empty ids must be UUIDs, the
// only form the schema accepts for run and measure ids.
func normalizeID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: id %q is not a UUID", ErrConstruction, id)
	}
	return id, nil
}

const (
	timestampLayout      = "2006-01-02T15:04:05-07:00"
	timestampLayoutMicro = "2006-01-02T15:04:05.000000-07:00"
)

// FormatTimestamp renders t as an xs:dateTime with a numeric offset. UTC is
// written as +00:00, never Z.
//
// A time located in time.Local carries no explicit zone: its wall clock is
// read in loc (time.Local when loc is nil). Any other location is explicit and
// kept as is.
func FormatTimestamp(t time.Time, loc *time.Location) (string, error) {
	if t.IsZero() {
		return "", fmt.Errorf("%w: zero timestamp", ErrFormat)
	}
	if t.Location() == time.Local {
		if loc == nil {
			loc = time.Local
		}
		t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
	}
	if year := t.Year(); year < 1 || year > 9999 {
		return "", fmt.Errorf("%w: year %d out of range", ErrFormat, year)
	}
	t = t.Truncate(time.Microsecond)
	if t.Nanosecond() == 0 {
		return t.Format(timestampLayout), nil
	}
	return t.Format(timestampLayoutMicro), nil
}
