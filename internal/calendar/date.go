package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // scratch コンテナでも IANA 名を解決する

	"cloud.google.com/go/civil"
)

var offsetPattern = regexp.MustCompile(`^(?:UTC|GMT)?([+-])(\d{1,2})(?::?(\d{2}))?$`)

// Today returns the calendar date of now as seen in loc. A nil loc means UTC.
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseLocation accepts an IANA zone name ("Asia/Seoul") or a UTC offset
// ("+09:00", "-0530", "UTC+9"). An empty string yields nil.
func ParseLocation(s string) (*time.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if m := offsetPattern.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[2])
		minutes := 0
		if m[3] != "" {
			minutes, _ = strconv.Atoi(m[3])
		}
		if hours > 14 || minutes > 59 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, s)
		}
		offset := hours*3600 + minutes*60
		if m[1] == "-" {
			offset = -offset
		}
		return time.FixedZone(s, offset), nil
	}
	loc, err := time.LoadLocation(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, s)
	}
	return loc, nil
}

// Weekday returns the day of the week of d.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// StartOfWeek returns the latest date on or before d that falls on weekStart.
func StartOfWeek(d civil.Date, weekStart time.Weekday) civil.Date {
	diff := (int(Weekday(d)) - int(weekStart) + 7) % 7
	return d.AddDays(-diff)
}

// AddMonths moves d by n months. When the target month is shorter the day is
// clamped to its last day (Mar 31 - 1 month = Feb 28/29).
func AddMonths(d civil.Date, n int) civil.Date {
	first := time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	day := d.Day
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return civil.Date{Year: first.Year(), Month: first.Month(), Day: day}
}

// CalendarWeeksBetween counts the week boundaries between earlier and later.
func CalendarWeeksBetween(later, earlier civil.Date, weekStart time.Weekday) int {
	return StartOfWeek(later, weekStart).DaysSince(StartOfWeek(earlier, weekStart)) / 7
}

// SameMonth reports whether a and b share year and month.
func SameMonth(a, b civil.Date) bool {
	return a.Year == b.Year && a.Month == b.Month
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
