package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWindow_Friday(t *testing.T) {
	w := BuildWindow(date(2024, time.March, 15), time.Sunday)

	assert.Equal(t, date(2023, time.March, 12), w.Start)
	assert.Equal(t, date(2024, time.March, 15), w.Last)
	require.Equal(t, 53, w.Columns())
	assert.Equal(t, date(2024, time.March, 10), w.WeekStarts[52])

	last := w.Week(52)
	assert.False(t, w.IsFuture(last[5]))
	assert.True(t, w.IsFuture(last[6]))
}

func TestBuildWindow_AdvancesStartWhenSpanTooLong(t *testing.T) {
	// Sunday: twelve months back is a Friday whose week starts 53 weeks earlier.
	w := BuildWindow(date(2024, time.March, 17), time.Sunday)

	assert.Equal(t, date(2023, time.March, 19), w.Start)
	assert.Equal(t, MaxWeekSpan, CalendarWeeksBetween(w.Last, w.Start, time.Sunday))
	assert.Equal(t, 53, w.Columns())
}

func TestBuildWindow_EveryDayOfTwoYears(t *testing.T) {
	for _, weekStart := range []time.Weekday{time.Sunday, time.Monday} {
		for d := date(2023, time.January, 1); d.Before(date(2025, time.January, 1)); d = d.AddDays(1) {
			w := BuildWindow(d, weekStart)

			require.GreaterOrEqual(t, w.Columns(), 52, d.String())
			require.LessOrEqual(t, w.Columns(), MaxWeekSpan+1, d.String())
			require.Equal(t, weekStart, Weekday(w.Start), d.String())
			require.LessOrEqual(t, CalendarWeeksBetween(w.Last, w.Start, weekStart), MaxWeekSpan, d.String())

			lastWeek := w.Week(w.Columns() - 1)
			require.False(t, lastWeek[0].After(d), d.String())
			require.False(t, lastWeek[6].Before(d), d.String())

			dates := w.Dates()
			require.Len(t, dates, w.Columns()*DaysPerWeek)
			for i := 1; i < len(dates); i++ {
				require.Equal(t, dates[i-1].AddDays(1), dates[i], d.String())
			}
		}
	}
}

func TestNewWindowUsesCallerDate(t *testing.T) {
	loc, err := ParseLocation("+09:00")
	require.NoError(t, err)

	w := NewWindow(time.Date(2024, time.March, 15, 20, 0, 0, 0, time.UTC), loc, DefaultWeekStart)
	assert.Equal(t, date(2024, time.March, 16), w.Last)
	assert.Equal(t, "20240316", w.Token())
}
