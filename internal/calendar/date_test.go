package calendar

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   civil.Date
		n    int
		want civil.Date
	}{
		{"one year back", date(2024, time.October, 19), -12, date(2023, time.October, 19)},
		{"clamp to leap day", date(2024, time.March, 31), -1, date(2024, time.February, 29)},
		{"clamp to non-leap february", date(2023, time.March, 31), -1, date(2023, time.February, 28)},
		{"leap day minus a year", date(2024, time.February, 29), -12, date(2023, time.February, 28)},
		{"forward across year", date(2023, time.November, 30), 3, date(2024, time.February, 29)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestStartOfWeek(t *testing.T) {
	friday := date(2024, time.March, 15)
	assert.Equal(t, time.Friday, Weekday(friday))
	assert.Equal(t, date(2024, time.March, 10), StartOfWeek(friday, time.Sunday))
	assert.Equal(t, date(2024, time.March, 11), StartOfWeek(friday, time.Monday))
	assert.Equal(t, date(2024, time.March, 10), StartOfWeek(date(2024, time.March, 10), time.Sunday))
}

func TestCalendarWeeksBetween(t *testing.T) {
	// Saturday -> next Sunday is one boundary even though only a day apart.
	assert.Equal(t, 1, CalendarWeeksBetween(date(2024, time.March, 17), date(2024, time.March, 16), time.Sunday))
	assert.Equal(t, 0, CalendarWeeksBetween(date(2024, time.March, 16), date(2024, time.March, 10), time.Sunday))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.March, 15), d)

	_, err = ParseDate("15/03/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("")
	require.NoError(t, err)
	assert.Nil(t, loc)

	instant := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.UTC)
	for _, tz := range []string{"+09:00", "+0900", "UTC+9", "GMT+09"} {
		loc, err := ParseLocation(tz)
		require.NoError(t, err, tz)
		assert.Equal(t, date(2024, time.March, 16), Today(instant, loc), tz)
	}

	loc, err = ParseLocation("-05:30")
	require.NoError(t, err)
	_, offset := instant.In(loc).Zone()
	assert.Equal(t, -(5*3600 + 30*60), offset)

	for _, bad := range []string{"+25", "Not/AZone", "+09:75"} {
		_, err := ParseLocation(bad)
		assert.ErrorIs(t, err, ErrInvalidTimezone, bad)
	}
}

func TestTodayDefaultsToUTC(t *testing.T) {
	instant := time.Date(2024, time.March, 15, 23, 30, 0, 0, time.FixedZone("x", -3*3600))
	assert.Equal(t, date(2024, time.March, 16), Today(instant, nil))
}
