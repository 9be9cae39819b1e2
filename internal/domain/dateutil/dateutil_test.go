package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{name: "february leap year", year: 2024, month: time.February, want: 29},
		{name: "february non-leap year", year: 2025, month: time.February, want: 28},
		{name: "february century non-leap", year: 1900, month: time.February, want: 28},
		{name: "february 400 leap", year: 2000, month: time.February, want: 29},
		{name: "april", year: 2025, month: time.April, want: 30},
		{name: "december", year: 2025, month: time.December, want: 31},
		{name: "january", year: 2025, month: time.January, want: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestLastOfMonth(t *testing.T) {
	assert.Equal(t, Date(2024, time.February, 29), LastOfMonth(Date(2024, time.February, 10)))
	assert.Equal(t, Date(2025, time.February, 28), LastOfMonth(Date(2025, time.February, 1)))
	assert.Equal(t, Date(2025, time.October, 31), LastOfMonth(time.Date(2025, time.October, 19, 22, 5, 0, 0, time.UTC)))
}

func TestPreviousMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		ref       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "mid year",
			ref:       Date(2025, time.October, 19),
			wantStart: Date(2025, time.September, 1),
			wantEnd:   Date(2025, time.September, 30),
		},
		{
			name:      "january wraps to previous december",
			ref:       Date(2025, time.January, 3),
			wantStart: Date(2024, time.December, 1),
			wantEnd:   Date(2024, time.December, 31),
		},
		{
			name:      "march resolves leap february",
			ref:       Date(2024, time.March, 31),
			wantStart: Date(2024, time.February, 1),
			wantEnd:   Date(2024, time.February, 29),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := PreviousMonthRange(tt.ref)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestDaysBetweenInclusive(t *testing.T) {
	assert.Equal(t, 1, DaysBetweenInclusive(Date(2025, 1, 1), Date(2025, 1, 1)))
	assert.Equal(t, 8, DaysBetweenInclusive(Date(2025, 1, 1), Date(2025, 1, 8)))
	assert.Equal(t, 366, DaysBetweenInclusive(Date(2024, 1, 1), Date(2024, 12, 31)))
	assert.Equal(t, 0, DaysBetweenInclusive(Date(2025, 1, 2), Date(2025, 1, 1)))
}

func TestIsWeekend(t *testing.T) {
	assert.True(t, IsWeekend(Date(2025, time.October, 18)))
	assert.True(t, IsWeekend(Date(2025, time.October, 19)))
	assert.False(t, IsWeekend(Date(2025, time.October, 20)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-09-30")
	require.NoError(t, err)
	assert.Equal(t, Date(2025, time.September, 30), d)
	assert.Equal(t, "2025-09-30", FormatDate(d))
	assert.Equal(t, "2025-09", MonthLabel(d))

	_, err = ParseDate("2025-13-01")
	assert.Error(t, err)

	_, err = ParseDate("30/09/2025")
	assert.Error(t, err)
}
