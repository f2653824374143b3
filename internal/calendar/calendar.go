package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Day identifies a UTC calendar date. Price observations and user-selected
// comparison dates arrive with differing implicit timezones and embedded
// times; comparing raw timestamps causes off-by-one-day mismatches. All
// date equality in the engine routes through Day keys, which discard the
// time of day and any offset the source representation carried.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf reduces a timestamp to its UTC calendar day.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	return Day{Year: y, Month: m, Date: d}
}

// Time returns UTC midnight of the day.
func (d Day) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Date, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is an earlier calendar day than other.
func (d Day) Before(other Day) bool {
	return d.Time().Before(other.Time())
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Date)
}

// dateLayouts are tried in order when parsing vendor-supplied dates.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses an arbitrary date-like string permissively. The zone
// carried by the input is preserved so DayOf can resolve it correctly.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}
