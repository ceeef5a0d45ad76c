package booking

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnb/internal/domain/availability"
	"bnb/internal/domain/calendar"
	"bnb/internal/domain/shared/daterange"
	"bnb/internal/domain/shared/money"
)

func TestSummarizeStages(t *testing.T) {
	nightly := money.FromInt(100, "£")

	empty := Summarize(calendar.Selection{}, nightly, "")
	assert.Equal(t, PromptPickRange, empty.Dates)
	assert.Equal(t, PromptSelectDates, empty.Prompt)
	assert.False(t, empty.CanConfirm)
	assert.Equal(t, "empty", empty.StageName)

	partial := Summarize(calendar.Selection{Start: daterange.MustParseISO("2024-06-01")}, nightly, "")
	assert.Equal(t, "2024-06-01 → …", partial.Dates)
	assert.Equal(t, PromptChooseEnd, partial.Prompt)
	assert.False(t, partial.CanConfirm)

	one := Summarize(calendar.Selection{
		Start: daterange.MustParseISO("2024-06-01"),
		End:   daterange.MustParseISO("2024-06-02"),
	}, nightly, "")
	assert.Equal(t, "1 night • £100", one.Prompt)
	assert.True(t, one.CanConfirm)
}

// Room at £100 with 12-14 June booked.
func TestSummaryEndToEnd(t *testing.T) {
	booked, err := daterange.ParseRange("2024-06-12", "2024-06-14")
	require.NoError(t, err)
	presenter := NewPresenter(money.FromInt(100, "£"))
	w := calendar.New(calendar.Options{
		Booked:   availability.NewIndex(booked),
		Month:    daterange.MustParseISO("2024-06-01"),
		OnChange: presenter.Listener(),
	})
	assert.Equal(t, PromptPickRange, presenter.Summary().Dates)

	w.Click(daterange.MustParseISO("2024-06-01"))
	w.Click(daterange.MustParseISO("2024-06-05"))
	s := presenter.Summary()
	assert.Equal(t, "2024-06-01 → 2024-06-05", s.Dates)
	assert.Equal(t, 4, s.Nights)
	assert.Equal(t, "£400", s.Total)
	assert.Equal(t, "4 nights • £400", s.Prompt)
	assert.Empty(t, s.Warning)
	assert.True(t, s.CanConfirm)

	// 13 June is booked and cannot be clicked; pre-seed the way checkout does.
	require.NoError(t, w.SetSelection("2024-06-13", "2024-06-16"))
	presenter.Handle(calendar.Change{Selection: w.Selection(), Warning: w.Warning()})
	s = presenter.Summary()
	assert.Equal(t, "2024-06-13 → 2024-06-16", s.Dates)
	assert.Equal(t, 3, s.Nights)
	assert.Equal(t, "£300", s.Total)
	assert.NotEmpty(t, s.Warning)
	assert.False(t, s.CanConfirm)
}

func TestHandoffRoundTrip(t *testing.T) {
	sel := calendar.Selection{
		Start: daterange.MustParseISO("2024-06-01"),
		End:   daterange.MustParseISO("2024-06-05"),
	}
	h := NewHandoff("garden-room", sel)
	assert.True(t, h.Complete())

	u, err := url.Parse(h.CheckoutURL())
	require.NoError(t, err)
	assert.Equal(t, CheckoutPath, u.Path)
	assert.Equal(t, h, ParseHandoff(u.Query()))

	partial := NewHandoff("garden-room", calendar.Selection{Start: sel.Start})
	assert.False(t, partial.Complete())
	assert.Equal(t, "/checkout?room=garden-room&start=2024-06-01", partial.CheckoutURL())
}
