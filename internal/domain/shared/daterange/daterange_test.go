package daterange

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISORoundTrip(t *testing.T) {
	for _, s := range []string{"2024-06-10", "2024-02-29", "1999-12-31", "2025-01-01", "0987-03-04"} {
		d, err := ParseISO(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, d.ISO())
	}
}

func TestParseISOInvalid(t *testing.T) {
	for _, s := range []string{"", "2024", "2024-06", "2024/06/10", "2024-06-xx", "2024-06-10-01", "abcd-ef-gh"} {
		_, err := ParseISO(s)
		assert.ErrorIs(t, err, ErrInvalidDateFormat, s)
	}
}

func TestParseISONormalizesOverflow(t *testing.T) {
	d, err := ParseISO("2023-02-30")
	require.NoError(t, err)
	assert.Equal(t, "2023-03-02", d.ISO())
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		date    string
		lastDay string
		days    int
	}{
		{"2023-02-14", "2023-02-28", 28},
		{"2024-02-01", "2024-02-29", 29},
		{"2024-04-30", "2024-04-30", 30},
		{"2024-01-17", "2024-01-31", 31},
		{"2024-12-05", "2024-12-31", 31},
	}
	for _, tt := range tests {
		d := MustParseISO(tt.date)
		start, end := d.StartOfMonth(), d.EndOfMonth()
		assert.Equal(t, 1, start.Day())
		assert.Equal(t, tt.lastDay, end.ISO())
		assert.Equal(t, tt.days, d.DaysInMonth())
		assert.False(t, d.Before(start), tt.date)
		assert.False(t, d.After(end), tt.date)
	}
}

func TestNightsBetween(t *testing.T) {
	x := MustParseISO("2024-03-30")
	assert.Equal(t, 0, NightsBetween(x, x))
	assert.Equal(t, 1, NightsBetween(x, x.AddDays(1)))
	assert.Equal(t, 0, NightsBetween(x.AddDays(3), x))
	assert.Equal(t, 4, NightsBetween(MustParseISO("2024-06-01"), MustParseISO("2024-06-05")))

	n, err := NightsBetweenISO("2024-12-30", "2025-01-02")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = NightsBetweenISO("2024-12-30", "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestMondayIndexAndTitle(t *testing.T) {
	// 2024-06-01 was a Saturday, 2024-07-01 a Monday, 2024-09-01 a Sunday.
	assert.Equal(t, 5, MustParseISO("2024-06-01").MondayIndex())
	assert.Equal(t, 0, MustParseISO("2024-07-01").MondayIndex())
	assert.Equal(t, 6, MustParseISO("2024-09-01").MondayIndex())
	assert.Equal(t, "June 2024", MustParseISO("2024-06-18").MonthTitle())
	assert.Equal(t, "2024-06", MustParseISO("2024-06-18").MonthParam())
}

func TestAddMonthsNormalizesToFirstDay(t *testing.T) {
	d := MustParseISO("2024-01-31")
	assert.Equal(t, "2024-02-01", d.AddMonths(1).ISO())
	assert.Equal(t, "2023-12-01", d.AddMonths(-1).ISO())
	assert.Equal(t, "2025-01-01", MustParseISO("2024-12-15").AddMonths(1).ISO())
}

func TestParseMonth(t *testing.T) {
	d, err := ParseMonth("2024-06")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", d.ISO())

	d, err = ParseMonth("2024-06-18")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", d.ISO())

	_, err = ParseMonth("June")
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestTodayUsesLocalCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC+14", 14*3600)
	now := time.Date(2024, 6, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, "2024-06-10", Today(now).ISO())
}

func TestRangeContainsEndpoints(t *testing.T) {
	r, err := ParseRange("2024-06-12", "2024-06-14")
	require.NoError(t, err)
	assert.True(t, r.Contains(r.Start))
	assert.True(t, r.Contains(r.End))
	assert.True(t, r.Contains(MustParseISO("2024-06-13")))
	assert.False(t, r.Contains(MustParseISO("2024-06-11")))
	assert.False(t, r.Contains(MustParseISO("2024-06-15")))
	assert.Equal(t, "2024-06-15", r.CheckOut().ISO())
}

func TestRangeOverlapsIsSymmetric(t *testing.T) {
	booked, _ := ParseRange("2024-06-12", "2024-06-14")
	tests := []struct {
		start, end string
		want       bool
	}{
		{"2024-06-01", "2024-06-05", false},
		{"2024-06-01", "2024-06-11", false},
		{"2024-06-01", "2024-06-12", true},
		{"2024-06-14", "2024-06-20", true},
		{"2024-06-13", "2024-06-13", true},
		{"2024-06-10", "2024-06-20", true},
		{"2024-06-15", "2024-06-20", false},
	}
	for _, tt := range tests {
		sel, err := ParseRange(tt.start, tt.end)
		require.NoError(t, err)
		assert.Equal(t, tt.want, sel.Overlaps(booked), "%s..%s", tt.start, tt.end)
		assert.Equal(t, tt.want, booked.Overlaps(sel), "swapped %s..%s", tt.start, tt.end)
	}
}

func TestNewRangeRejectsReversed(t *testing.T) {
	_, err := NewRange(MustParseISO("2024-06-10"), MustParseISO("2024-06-09"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	r, err := NewRange(MustParseISO("2024-06-10"), MustParseISO("2024-06-10"))
	require.NoError(t, err)
	assert.Equal(t, 0, r.Nights())
}

func TestRangeJSON(t *testing.T) {
	var r Range
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2024-06-12","end":"2024-06-14"}`), &r))
	assert.Equal(t, "2024-06-12", r.Start.ISO())
	assert.Equal(t, "2024-06-14", r.End.ISO())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2024-06-12","end":"2024-06-14"}`, string(out))

	err = json.Unmarshal([]byte(`{"start":"12/06/2024","end":"2024-06-14"}`), &r)
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
