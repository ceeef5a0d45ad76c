package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"bnb/internal/app/commands"
	"bnb/internal/app/dto"
	availabilityapp "bnb/internal/app/handlers/availability"
	"bnb/internal/app/outbox"
	"bnb/internal/app/policies"
	domainbooking "bnb/internal/domain/booking"
	"bnb/internal/domain/shared/events"
)

const confirmBookingKey = "booking.confirm"

// ConfirmBookingCommand sends a booking request for a checkout selection.
// Nothing is stored; the request only goes out as an event.
type ConfirmBookingCommand struct {
	RoomID string
	Start  string
	End    string
}

func (c ConfirmBookingCommand) Key() string { return confirmBookingKey }

type ConfirmBookingHandler struct {
	Catalog     policies.CatalogStore
	Outbox      outbox.Outbox
	Encoder     outbox.EventEncoder
	Now         func() time.Time
	IDGenerator func() string
}

func (h *ConfirmBookingHandler) Handle(ctx context.Context, cmd ConfirmBookingCommand) (dto.Confirmation, error) {
	catalog, err := h.Catalog.Current(ctx)
	if err != nil {
		return dto.Confirmation{}, err
	}
	room, err := catalog.Room(cmd.RoomID)
	if err != nil {
		return dto.Confirmation{}, err
	}
	session, err := availabilityapp.Open(room, availabilityapp.State{Start: cmd.Start, End: cmd.End}, h.Now)
	if err != nil {
		return dto.Confirmation{}, err
	}
	summary := session.Summary()
	if !summary.CanConfirm {
		return dto.Confirmation{}, domainbooking.ErrSelectionNotConfirmable
	}

	requestID := h.newID()
	var rec events.Recorder
	rec.Record(domainbooking.Requested{
		RequestID: requestID,
		RoomID:    room.ID,
		Start:     summary.Start,
		End:       summary.End,
		Nights:    summary.Nights,
		Total:     summary.Total,
		At:        h.now(),
	})
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, rec.Drain()); err != nil {
		return dto.Confirmation{}, err
	}
	return dto.Confirmation{
		RequestID: requestID,
		RoomID:    room.ID,
		Message:   domainbooking.ConfirmationMessage,
		Summary:   summary,
	}, nil
}

func (h *ConfirmBookingHandler) newID() string {
	if h.IDGenerator != nil {
		return h.IDGenerator()
	}
	return uuid.NewString()
}

func (h *ConfirmBookingHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[ConfirmBookingCommand, dto.Confirmation] = (*ConfirmBookingHandler)(nil)
