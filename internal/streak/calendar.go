package streak

import (
	"errors"
	"fmt"
	"time"

	// zone resolution must not depend on the host having a tz database installed
	_ "time/tzdata"
)

const dateLayout = "2006-01-02"

// CalendarDate is a timezone-resolved Y-M-D value, without a time component.
// Two dates are equal iff their year, month and day are equal, so == can be used.
type CalendarDate struct {
	year  int
	month time.Month
	day   int
}

func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	// let time.Date normalize overflowing values, e.g. Feb 30 -> Mar 2
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return CalendarDate{year: y, month: m, day: d}
}

func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("parse calendar date [%s]: %w", s, err)
	}
	return NewCalendarDate(t.Date()), nil
}

// LoadZone resolves an IANA zone name. Unknown or empty names yield a *ConfigurationError;
// there is no silent fallback to UTC.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, &ConfigurationError{Zone: name, Err: errors.New("empty zone name")}
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, &ConfigurationError{Zone: name, Err: err}
	}
	return loc, nil
}

// Normalize returns the calendar date the wall clock reads in loc at the given instant.
func Normalize(instant time.Time, loc *time.Location) CalendarDate {
	y, m, d := instant.In(loc).Date()
	return CalendarDate{year: y, month: m, day: d}
}

func NormalizeIn(instant time.Time, zone string) (CalendarDate, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return CalendarDate{}, err
	}
	return Normalize(instant, loc), nil
}

// DaysBetween returns the absolute number of calendar days separating a and b.
func DaysBetween(a, b CalendarDate) int {
	// both sides are UTC midnights, so the difference is always a whole number of days
	diff := a.midnightUTC().Sub(b.midnightUTC())
	days := int(diff / (24 * time.Hour))
	if days < 0 {
		return -days
	}
	return days
}

func (d CalendarDate) Year() int {
	return d.year
}

func (d CalendarDate) Month() time.Month {
	return d.month
}

func (d CalendarDate) Day() int {
	return d.day
}

func (d CalendarDate) IsZero() bool {
	return d == CalendarDate{}
}

func (d CalendarDate) AddDays(n int) CalendarDate {
	return NewCalendarDate(d.year, d.month, d.day+n)
}

func (d CalendarDate) Weekday() time.Weekday {
	return d.midnightUTC().Weekday()
}

func (d CalendarDate) Before(other CalendarDate) bool {
	return d.midnightUTC().Before(other.midnightUTC())
}

func (d CalendarDate) After(other CalendarDate) bool {
	return d.midnightUTC().After(other.midnightUTC())
}

// StartIn returns the first instant of the date in loc (local midnight, or the first
// valid wall-clock time after it on DST-gap days).
func (d CalendarDate) StartIn(loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc)
}

func (d CalendarDate) String() string {
	return d.midnightUTC().Format(dateLayout)
}

func (d CalendarDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CalendarDate) UnmarshalText(text []byte) error {
	parsed, err := ParseCalendarDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d CalendarDate) midnightUTC() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}
