package calendar

import (
	"time"

	"cloud.google.com/go/civil"
)

const (
	// DefaultWeekStart is the weekday of row 0.
	DefaultWeekStart = time.Sunday
	// MaxWeekSpan is the largest allowed week distance between the first and the last column.
	MaxWeekSpan = 52
	// DaysPerWeek is the number of rows per column.
	DaysPerWeek = 7
)

// Window is the week-aligned date range covered by the graph: one column per
// week start from Start up to and including the week holding Last.
type Window struct {
	Start      civil.Date
	Last       civil.Date
	WeekStart  time.Weekday
	WeekStarts []civil.Date
}

// NewWindow builds the window ending on now's calendar date in loc.
func NewWindow(now time.Time, loc *time.Location, weekStart time.Weekday) Window {
	return BuildWindow(Today(now, loc), weekStart)
}

// BuildWindow builds the trailing twelve-month window ending on last.
//
// Twelve months back does not always land on a week boundary; when the span
// would exceed MaxWeekSpan the start moves forward one week.
func BuildWindow(last civil.Date, weekStart time.Weekday) Window {
	start := StartOfWeek(AddMonths(last, -12), weekStart)
	if CalendarWeeksBetween(last, start, weekStart) > MaxWeekSpan {
		start = start.AddDays(DaysPerWeek)
	}

	var weeks []civil.Date
	for d := start; !d.After(last); d = d.AddDays(DaysPerWeek) {
		weeks = append(weeks, d)
	}
	return Window{
		Start:      start,
		Last:       last,
		WeekStart:  weekStart,
		WeekStarts: weeks,
	}
}

// Columns is the number of week columns.
func (w Window) Columns() int {
	return len(w.WeekStarts)
}

// Week returns the seven dates of column col, row 0 first.
func (w Window) Week(col int) [DaysPerWeek]civil.Date {
	var days [DaysPerWeek]civil.Date
	for r := range days {
		days[r] = w.WeekStarts[col].AddDays(r)
	}
	return days
}

// Dates returns every date of the window in column-major order, including the
// future days that fill the last column.
func (w Window) Dates() []civil.Date {
	dates := make([]civil.Date, 0, len(w.WeekStarts)*DaysPerWeek)
	for col := range w.WeekStarts {
		week := w.Week(col)
		dates = append(dates, week[:]...)
	}
	return dates
}

// IsFuture reports whether d comes after the window's last date.
func (w Window) IsFuture(d civil.Date) bool {
	return d.After(w.Last)
}

// Token is a date-granularity cache key for the window ("20240315").
func (w Window) Token() string {
	return w.Last.In(time.UTC).Format("20060102")
}
