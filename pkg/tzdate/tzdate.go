// Package tzdate converts between UTC instants and the local calendar days
// of IANA timezones.
//
// Every instant returned by this package is in UTC. The package holds no
// mutable state and performs no I/O beyond reading the embedded timezone
// database, so converters may be shared between goroutines.
package tzdate

import (
	"time"
	_ "time/tzdata"
)

// DateLayout is the layout of the strings returned by DateOnly.
const DateLayout = "2006-01-02"

// Style selects what FormatLocal renders.
type Style int

const (
	StyleDateAndTime Style = iota
	StyleDateOnly
	StyleTimeOnly
)

func (s Style) layout() string {
	switch s {
	case StyleDateOnly:
		return "02 Jan 2006"
	case StyleTimeOnly:
		return "03:04 PM"
	default:
		return "02 Jan 2006, 03:04 PM"
	}
}

// DayBoundary holds the first and last millisecond of a local day, in UTC.
type DayBoundary struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the local day. Instants in the
// sub-millisecond tail of the day are included.
func (b DayBoundary) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End.Add(time.Millisecond))
}

// Converter is bound to one validated timezone.
type Converter struct {
	loc *time.Location
}

// Load validates tz and returns a converter for it. "Local" is rejected:
// callers must name the zone they mean.
func Load(tz string) (*Converter, error) {
	if tz == "" || tz == "Local" {
		return nil, &TimezoneError{Zone: tz}
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, &TimezoneError{Zone: tz, Err: err}
	}
	return &Converter{loc: loc}, nil
}

// MustLoad is like Load but panics on error. Intended for constants in tests
// and package initialization.
func MustLoad(tz string) *Converter {
	c, err := Load(tz)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the IANA identifier of the zone.
func (c *Converter) Name() string { return c.loc.String() }

// Location returns the underlying location.
func (c *Converter) Location() *time.Location { return c.loc }

// DateOnly returns the calendar date t falls on in the zone.
func (c *Converter) DateOnly(t time.Time) string {
	return t.In(c.loc).Format(DateLayout)
}

// StartOfDay returns the first instant of the local day containing t.
func (c *Converter) StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return c.startOfDate(y, m, d)
}

// EndOfDay returns the last millisecond of the local day containing t. On
// days with a DST transition the day is 23 or 25 hours long.
func (c *Converter) EndOfDay(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return c.startOfDate(y, m, d+1).Add(-time.Millisecond)
}

// Boundary returns both ends of the local day containing t.
func (c *Converter) Boundary(t time.Time) DayBoundary {
	return DayBoundary{Start: c.StartOfDay(t), End: c.EndOfDay(t)}
}

// BoundaryOfDate returns the boundary of a "YYYY-MM-DD" local date.
func (c *Converter) BoundaryOfDate(date string) (DayBoundary, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return DayBoundary{}, &DateParseError{Input: date, Err: err}
	}
	start := c.startOfDate(d.Year(), d.Month(), d.Day())
	end := c.startOfDate(d.Year(), d.Month(), d.Day()+1).Add(-time.Millisecond)
	return DayBoundary{Start: start, End: end}, nil
}

// IsSameLocalDay reports whether a and b fall on the same local date.
func (c *Converter) IsSameLocalDay(a, b time.Time) bool {
	return c.DateOnly(a) == c.DateOnly(b)
}

// FormatLocal renders t as local wall-clock text.
func (c *Converter) FormatLocal(t time.Time, style Style) string {
	return t.In(c.loc).Format(style.layout())
}

func (c *Converter) offset(t time.Time) time.Duration {
	_, secs := t.In(c.loc).Zone()
	return time.Duration(secs) * time.Second
}

// startOfDate returns the UTC instant of local 00:00 on y-m-d. When local
// midnight does not exist (a transition at midnight, or a skipped date) it
// returns the first instant at or after it.
func (c *Converter) startOfDate(y int, m time.Month, d int) time.Time {
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	want := midnight.Format(DateLayout)

	// Noon keeps the reference away from transitions scheduled near midnight.
	noon := midnight.Add(12 * time.Hour)
	start := midnight.Add(-c.offset(noon))

	// The noon offset need not hold at midnight on a transition day.
	if off := c.offset(start); off != c.offset(noon) {
		if alt := midnight.Add(-off); c.DateOnly(alt) >= want {
			start = alt
		}
	}

	// Clocks set back onto midnight show 00:00 twice; keep the first one.
	if prev := midnight.Add(-c.offset(start.Add(-time.Millisecond))); prev.Before(start) && c.DateOnly(prev) == want {
		start = prev
	}

	if c.DateOnly(start) < want {
		start = start.Add(24 * time.Hour)
	}
	return start
}

// DateOnly returns the calendar date instant falls on in tz.
func DateOnly(instant time.Time, tz string) (string, error) {
	c, err := Load(tz)
	if err != nil {
		return "", err
	}
	return c.DateOnly(instant), nil
}

// StartOfDay returns the UTC instant of local midnight on DateOnly(instant, tz).
func StartOfDay(instant time.Time, tz string) (time.Time, error) {
	c, err := Load(tz)
	if err != nil {
		return time.Time{}, err
	}
	return c.StartOfDay(instant), nil
}

// EndOfDay returns the last millisecond of the local day containing instant.
func EndOfDay(instant time.Time, tz string) (time.Time, error) {
	c, err := Load(tz)
	if err != nil {
		return time.Time{}, err
	}
	return c.EndOfDay(instant), nil
}

// IsSameLocalDay reports whether a and b share a local date in tz.
func IsSameLocalDay(a, b time.Time, tz string) (bool, error) {
	c, err := Load(tz)
	if err != nil {
		return false, err
	}
	return c.IsSameLocalDay(a, b), nil
}

// FormatLocal renders instant in tz using style.
func FormatLocal(instant time.Time, tz string, style Style) (string, error) {
	c, err := Load(tz)
	if err != nil {
		return "", err
	}
	return c.FormatLocal(instant, style), nil
}
