package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddDaysCrossesMonthAndYearBoundaries(t *testing.T) {
	tests := []struct {
		name  string
		start string
		n     int
		want  string
	}{
		{"within month", "2024-03-10", 5, "2024-03-15"},
		{"into next month", "2024-03-30", 3, "2024-04-02"},
		{"leap february", "2024-02-28", 1, "2024-02-29"},
		{"into next year", "2024-12-30", 3, "2025-01-02"},
		{"negative", "2024-03-01", -1, "2024-02-29"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddDays(tc.start, tc.n)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddDaysRejectsMalformedDate(t *testing.T) {
	_, err := AddDays("03/01/2024", 1)
	assert.Error(t, err)

	_, err = AddDays("2024-13-01", 1)
	assert.Error(t, err)
}

func TestDayOfWeekSundayIsZero(t *testing.T) {
	wd, err := DayOfWeek("2024-03-03") // a Sunday
	require.NoError(t, err)
	assert.Equal(t, 0, wd)

	wd, err = DayOfWeek("2024-03-04") // Monday
	require.NoError(t, err)
	assert.Equal(t, 1, wd)

	sunday, err := IsSunday("2024-03-03")
	require.NoError(t, err)
	assert.True(t, sunday)
}

func TestBuildMonthGridAlignsAndPads(t *testing.T) {
	// March 2024 starts on a Friday: 5 leading pads, 31 days, 6 trailing.
	grid, err := BuildMonthGrid("2024-03")
	require.NoError(t, err)
	require.Len(t, grid, 42)

	for i := 0; i < 5; i++ {
		assert.Nil(t, grid[i])
	}
	require.NotNil(t, grid[5])
	assert.Equal(t, "2024-03-01", grid[5].Date)
	assert.Equal(t, 1, grid[5].Day)
	require.NotNil(t, grid[35])
	assert.Equal(t, "2024-03-31", grid[35].Date)
	for i := 36; i < 42; i++ {
		assert.Nil(t, grid[i])
	}
}

func TestBuildMonthGridWholeWeeks(t *testing.T) {
	// September 2024 starts on a Sunday and has 30 days: no leading pads.
	grid, err := BuildMonthGrid("2024-09")
	require.NoError(t, err)
	assert.Equal(t, 0, len(grid)%7)
	require.NotNil(t, grid[0])
	assert.Equal(t, "2024-09-01", grid[0].Date)
}

func TestBuildMonthGridRejectsBadKey(t *testing.T) {
	_, err := BuildMonthGrid("March 2024")
	assert.Error(t, err)
}

func TestDateRange(t *testing.T) {
	dates, err := DateRange("2024-02-27", 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, dates)
}

func TestDaysBetween(t *testing.T) {
	diff, err := DaysBetween("2024-03-01", "2024-03-05")
	require.NoError(t, err)
	assert.Equal(t, 4, diff)

	diff, err = DaysBetween("2024-03-05", "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, -4, diff)
}

func TestResolveDateAlias(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

	got, err := ResolveDateAlias("Today", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)

	got, err = ResolveDateAlias("tomorrow", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", got)

	got, err = ResolveDateAlias("2024-04-10", now)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-10", got)

	_, err = ResolveDateAlias("yesterday", now)
	assert.Error(t, err)
}

func TestParseClockTime(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"9:00 AM", 540},
		{"12:00 PM", 720},
		{"12:00 AM", 0},
		{"1:30 PM", 810},
		{"11:59 PM", 1439},
	}
	for _, tc := range tests {
		got, err := ParseClockTime(tc.label)
		require.NoError(t, err, tc.label)
		assert.Equal(t, tc.want, got, tc.label)
	}
}

func TestParseClockTimeRejectsMalformed(t *testing.T) {
	for _, label := range []string{"9:00", "25:00 AM", "9:75 AM", "0:30 PM", "morning"} {
		_, err := ParseClockTime(label)
		assert.Error(t, err, label)
	}
}

func TestParseSlotWindow(t *testing.T) {
	start, end, err := ParseSlotWindow("9:00 AM - 11:00 AM")
	require.NoError(t, err)
	assert.Equal(t, 540, start)
	assert.Equal(t, 660, end)

	_, _, err = ParseSlotWindow("9:00 AM")
	assert.Error(t, err)
}

func TestFormatClockTime(t *testing.T) {
	assert.Equal(t, "9:00 AM", FormatClockTime(540))
	assert.Equal(t, "12:00 PM", FormatClockTime(720))
	assert.Equal(t, "12:00 AM", FormatClockTime(0))
	assert.Equal(t, "1:05 PM", FormatClockTime(785))
}
