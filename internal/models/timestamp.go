package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// localLayout is a date-time without a zone offset, as sent by clients that
// serialize local date-times.
const localLayout = "2006-01-02T15:04:05.999999999"

// ParseTimestamp accepts RFC 3339 and the zone-less local layout. Zone-less
// values are read as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(localLayout, s, time.UTC); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Timestamp is a time.Time that decodes with ParseTimestamp.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, b)
	}
	v, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = v
	return nil
}

// Ptr returns nil for a nil receiver.
func (t *Timestamp) Ptr() *time.Time {
	if t == nil {
		return nil
	}
	v := t.Time
	return &v
}
