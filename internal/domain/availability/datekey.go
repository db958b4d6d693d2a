package availability

import (
	"fmt"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// accepted input layouts, tried in order. The calendar day is read as
// written; any offset is dropped, never applied.
var dateKeyLayouts = []string{
	dateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
}

// DateKey identifies a calendar day. The zero value is not a valid key.
// It always wraps midnight UTC.
type DateKey struct {
	t time.Time
}

// ParseDateKey normalizes a date string into a DateKey.
func ParseDateKey(input string) (DateKey, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return DateKey{}, fmt.Errorf("%w: empty date", ErrInvalidDate)
	}

	for _, layout := range dateKeyLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			k := DateKeyFromTime(t)
			if k.IsZero() {
				return DateKey{}, fmt.Errorf("%w: %q is the zero date", ErrInvalidDate, input)
			}
			return k, nil
		}
	}

	return DateKey{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
}

// DateKeyFromTime keeps the wall-clock day of t in its own location.
func DateKeyFromTime(t time.Time) DateKey {
	y, m, d := t.Date()
	return DateKey{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (k DateKey) Time() time.Time { return k.t }

func (k DateKey) IsZero() bool { return k.t.IsZero() }

func (k DateKey) String() string {
	if k.t.IsZero() {
		return ""
	}
	return k.t.Format(dateLayout)
}

func (k DateKey) Equal(o DateKey) bool  { return k.t.Equal(o.t) }
func (k DateKey) Before(o DateKey) bool { return k.t.Before(o.t) }
func (k DateKey) After(o DateKey) bool  { return k.t.After(o.t) }

func (k DateKey) AddDays(n int) DateKey {
	return DateKey{t: k.t.AddDate(0, 0, n)}
}

func (k DateKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k *DateKey) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	parsed, err := ParseDateKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
