package booking

import (
	"errors"
	"time"
)

// ErrSelectionNotConfirmable is returned when the confirm action would be
// disabled for the selection: dates missing or overlapping a booked range.
var ErrSelectionNotConfirmable = errors.New("booking: selection cannot be confirmed")

// ConfirmationMessage is shown after a request has been sent. No payment is taken.
const ConfirmationMessage = "Demo: Booking request sent (no payment taken)."

// Requested is emitted when a visitor confirms a stay on the checkout page.
type Requested struct {
	RequestID string    `json:"request_id"`
	RoomID    string    `json:"room_id"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	Nights    int       `json:"nights"`
	Total     string    `json:"total"`
	At        time.Time `json:"at"`
}

func (e Requested) EventName() string     { return "booking.requested" }
func (e Requested) AggregateID() string   { return e.RoomID }
func (e Requested) OccurredAt() time.Time { return e.At }
