package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnb/internal/domain/availability"
	"bnb/internal/domain/shared/daterange"
)

func date(s string) daterange.Date { return daterange.MustParseISO(s) }

func juneWidget(t *testing.T, changes *[]Change) *Widget {
	t.Helper()
	booked, err := daterange.ParseRange("2024-06-12", "2024-06-14")
	require.NoError(t, err)
	return New(Options{
		Booked: availability.NewIndex(booked),
		Month:  date("2024-06-01"),
		OnChange: func(c Change) {
			if changes != nil {
				*changes = append(*changes, c)
			}
		},
	})
}

func TestClickOrdersSelectionChronologically(t *testing.T) {
	var changes []Change
	w := juneWidget(t, &changes)

	require.True(t, w.Click(date("2024-06-10")))
	assert.Equal(t, StatePartialStart, w.Selection().State())

	require.True(t, w.Click(date("2024-06-05")))
	sel := w.Selection()
	assert.Equal(t, "2024-06-05", sel.Start.ISO())
	assert.Equal(t, "2024-06-10", sel.End.ISO())
	assert.Equal(t, StateComplete, sel.State())

	require.Len(t, changes, 2)
	assert.Equal(t, "2024-06-10", changes[0].Start.ISO())
	assert.True(t, changes[0].End.IsZero())
	assert.Empty(t, changes[0].Warning)
	assert.Equal(t, "2024-06-05", changes[1].Start.ISO())
	assert.Equal(t, "2024-06-10", changes[1].End.ISO())
}

func TestClickSameDayTwiceCompletesZeroNightRange(t *testing.T) {
	w := juneWidget(t, nil)
	w.Click(date("2024-06-03"))
	w.Click(date("2024-06-03"))
	assert.Equal(t, Selection{Start: date("2024-06-03"), End: date("2024-06-03")}, w.Selection())
}

func TestThirdClickStartsFreshSelection(t *testing.T) {
	var changes []Change
	w := juneWidget(t, &changes)
	w.Click(date("2024-06-01"))
	w.Click(date("2024-06-05"))
	w.Click(date("2024-06-20"))

	sel := w.Selection()
	assert.Equal(t, StatePartialStart, sel.State())
	assert.Equal(t, "2024-06-20", sel.Start.ISO())
	assert.True(t, sel.End.IsZero())
	require.Len(t, changes, 3)
	assert.True(t, changes[2].End.IsZero())
}

func TestBookedDayIsInert(t *testing.T) {
	var changes []Change
	w := juneWidget(t, &changes)
	w.Click(date("2024-06-01"))
	before, month, grid := w.Selection(), w.Month(), w.Grid()

	for _, d := range []string{"2024-06-12", "2024-06-13", "2024-06-14"} {
		assert.False(t, w.Click(date(d)), d)
	}
	assert.Equal(t, before, w.Selection())
	assert.Equal(t, month, w.Month())
	assert.Equal(t, grid, w.Grid())
	assert.Len(t, changes, 1)
}

func TestOverlapWarningOnCompleteSelection(t *testing.T) {
	var changes []Change
	w := juneWidget(t, &changes)
	w.Click(date("2024-06-16"))
	w.Click(date("2024-06-11"))

	require.Len(t, changes, 2)
	assert.Empty(t, changes[0].Warning)
	assert.Equal(t, OverlapWarning, changes[1].Warning)
	assert.Equal(t, OverlapWarning, w.Warning())

	// The overlapping selection stays valid and can be replaced.
	w.Click(date("2024-06-20"))
	assert.Empty(t, changes[2].Warning)
	assert.Empty(t, w.Warning())
}

func TestNavigationKeepsSelection(t *testing.T) {
	w := juneWidget(t, nil)
	w.Click(date("2024-06-03"))
	w.Click(date("2024-06-07"))
	sel := w.Selection()

	w.NextMonth()
	assert.Equal(t, "2024-07-01", w.Month().ISO())
	assert.Equal(t, "July 2024", w.Grid().Title)
	w.PrevMonth()
	w.PrevMonth()
	assert.Equal(t, "2024-05-01", w.Month().ISO())
	assert.Equal(t, sel, w.Selection())
}

func TestSetMonthNormalizesToFirstDay(t *testing.T) {
	w := juneWidget(t, nil)
	require.NoError(t, w.SetMonth("2025-02-17"))
	assert.Equal(t, "2025-02-01", w.Month().ISO())
	assert.ErrorIs(t, w.SetMonth("Feb 2025"), daterange.ErrInvalidDateFormat)
}

func TestSetSelectionBypassesStateMachine(t *testing.T) {
	var changes []Change
	w := juneWidget(t, &changes)

	require.NoError(t, w.SetSelection("2024-06-13", "2024-06-16"))
	assert.Empty(t, changes)
	assert.Equal(t, OverlapWarning, w.Warning())
	assert.Equal(t, StateComplete, w.Selection().State())

	require.NoError(t, w.SetSelection("2024-06-09", "2024-06-02"))
	assert.Equal(t, "2024-06-02", w.Selection().Start.ISO())
	assert.Equal(t, "2024-06-09", w.Selection().End.ISO())

	require.NoError(t, w.SetSelection("", "2024-06-02"))
	assert.Equal(t, StateEmpty, w.Selection().State())

	require.NoError(t, w.SetSelection("", ""))
	assert.Equal(t, Selection{}, w.Selection())

	assert.ErrorIs(t, w.SetSelection("2024-06-xx", ""), daterange.ErrInvalidDateFormat)
}

func TestClickAfterPreSeedContinuesFromSeededState(t *testing.T) {
	w := juneWidget(t, nil)
	require.NoError(t, w.SetSelection("2024-06-02", ""))
	w.Click(date("2024-06-06"))
	assert.Equal(t, Selection{Start: date("2024-06-02"), End: date("2024-06-06")}, w.Selection())
}

func TestClickISO(t *testing.T) {
	w := juneWidget(t, nil)
	ok, err := w.ClickISO("2024-06-20")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = w.ClickISO("2024-06-13")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = w.ClickISO("20-06")
	assert.ErrorIs(t, err, daterange.ErrInvalidDateFormat)
}

func TestDefaultMonthIsCurrentMonth(t *testing.T) {
	w := New(Options{Now: func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.Local) }})
	assert.Equal(t, "2026-10-01", w.Month().ISO())
}

func TestListenerRunsBeforeGridRender(t *testing.T) {
	var w *Widget
	var seen Selection
	var startMarked bool
	w = New(Options{
		Month: date("2024-06-01"),
		OnChange: func(Change) {
			seen = w.Selection()
			for _, cell := range w.Grid().Cells {
				if cell.Start {
					startMarked = true
				}
			}
		},
	})

	require.True(t, w.Click(date("2024-06-05")))
	assert.Equal(t, date("2024-06-05"), seen.Start)
	assert.False(t, startMarked)

	var marked int
	for _, cell := range w.Grid().Cells {
		if cell.Start {
			marked++
		}
	}
	assert.Equal(t, 1, marked)
}
