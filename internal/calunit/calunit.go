// Package calunit is a minimal proleptic-Gregorian day/week arithmetic in UTC.
// It stands in for the real calendar layer in the demo, benchmarks and tests.
package calunit

import "time"

const secondsPerDay = 24 * 60 * 60

// DaysPerWeek is the number of elements in a Week.
const DaysPerWeek = 7

// Day is a calendar day, stored as days since 1970-01-01.
type Day struct {
	ordinal int
}

// DayOf returns the UTC day containing t.
func DayOf(t time.Time) Day {
	y, m, d := t.UTC().Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return Day{ordinal: int(midnight.Unix() / secondsPerDay)}
}

// Date returns the day for a year/month/day triple.
func Date(year int, month time.Month, day int) Day {
	return DayOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Time returns midnight UTC of d.
func (d Day) Time() time.Time {
	return time.Unix(int64(d.ordinal)*secondsPerDay, 0).UTC()
}

func (d Day) String() string {
	return d.Time().Format("2006-01-02")
}

// Week is an ISO week (Monday first), identified by its first day.
type Week struct {
	start Day
}

// WeekOf returns the week containing d.
func WeekOf(d Day) Week {
	offset := (int(d.Time().Weekday()) + 6) % DaysPerWeek
	return Week{start: Day{ordinal: d.ordinal - offset}}
}

// Start returns the Monday of w.
func (w Week) Start() Day {
	return w.start
}

func (w Week) String() string {
	return "week of " + w.start.String()
}

// DayArithmetic implements distance and advance for days.
type DayArithmetic struct{}

func (DayArithmetic) Distance(a, b Day) int {
	return b.ordinal - a.ordinal
}

func (DayArithmetic) Advance(a Day, by int) Day {
	return Day{ordinal: a.ordinal + by}
}

// WeekArithmetic implements distance, advance and day lookup for weeks.
type WeekArithmetic struct{}

func (WeekArithmetic) Distance(a, b Week) int {
	return (b.start.ordinal - a.start.ordinal) / DaysPerWeek
}

func (WeekArithmetic) Advance(a Week, by int) Week {
	return Week{start: Day{ordinal: a.start.ordinal + by*DaysPerWeek}}
}

// ElementAt returns the day at index (0 = Monday). index must be in [0, DaysPerWeek).
func (WeekArithmetic) ElementAt(w Week, index int) Day {
	return Day{ordinal: w.start.ordinal + index}
}

// IndexOf returns the position of d inside w, or false if d is outside w.
func (WeekArithmetic) IndexOf(w Week, d Day) (int, bool) {
	i := d.ordinal - w.start.ordinal
	if i < 0 || i >= DaysPerWeek {
		return 0, false
	}
	return i, true
}
