package libcms

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
)

// DateLayout is the layout used to exchange calendar dates.
const DateLayout = "2006-01-02"

// A Date is a calendar date without time of day.
type Date struct {
	time.Time
}

// NewDate returns the Date of the given time.
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date.
// Values starting with a `2006-01-02` date are truncated to it (e.g. `2025-03-14T00:00:00.000Z`),
// other formats are guessed.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, errors.New("empty date")
	}

	if len(s) >= len(DateLayout) {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return NewDate(t), nil
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return Date{}, errors.Wrapf(err, "could not parse date %q", s)
	}
	return NewDate(t), nil
}

// String returns the date formatted with DateLayout or an empty string for the zero date.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "date must be a string")
	}

	if s == nil || *s == "" {
		*d = Date{}
		return nil
	}

	date, err := ParseDate(*s)
	if err != nil {
		return err
	}
	*d = date
	return nil
}
