package booking

import (
	"context"
	"errors"
	"time"

	"bnb/internal/app/dto"
	availabilityapp "bnb/internal/app/handlers/availability"
	"bnb/internal/app/policies"
	"bnb/internal/app/queries"
	domainlistings "bnb/internal/domain/listings"
)

const getCheckoutKey = "booking.checkout"

// GetCheckoutQuery renders the checkout page for the handed-off room. An
// empty or unknown room id falls back to the first room.
type GetCheckoutQuery struct {
	RoomID string
	State  availabilityapp.State
}

func (q GetCheckoutQuery) Key() string { return getCheckoutKey }

type GetCheckoutHandler struct {
	Catalog policies.CatalogStore
	Now     func() time.Time
}

func (h *GetCheckoutHandler) Handle(ctx context.Context, q GetCheckoutQuery) (dto.CheckoutPage, error) {
	catalog, err := h.Catalog.Current(ctx)
	if err != nil {
		return dto.CheckoutPage{}, err
	}
	page := dto.CheckoutPage{Site: dto.MapSite(catalog)}

	room, err := catalog.RoomOrFirst(q.RoomID)
	if errors.Is(err, domainlistings.ErrNoRooms) {
		return page, nil
	}
	if err != nil {
		return dto.CheckoutPage{}, err
	}
	session, err := availabilityapp.Open(room, q.State, h.Now)
	if err != nil {
		return dto.CheckoutPage{}, err
	}
	card := dto.MapRoom(room)
	cal := session.Calendar()
	page.Room = &card
	page.Calendar = &cal
	return page, nil
}

var _ queries.Handler[GetCheckoutQuery, dto.CheckoutPage] = (*GetCheckoutHandler)(nil)
