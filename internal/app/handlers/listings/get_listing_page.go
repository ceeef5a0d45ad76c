package listings

import (
	"context"
	"time"

	"bnb/internal/app/dto"
	availabilityapp "bnb/internal/app/handlers/availability"
	"bnb/internal/app/policies"
	"bnb/internal/app/queries"
)

const getListingPageKey = "listings.page"

// GetListingPageQuery builds every room card. State is applied only to the
// card whose id is FocusRoomID; the others show the default month with
// nothing selected. Image moves the focused card's carousel and wraps
// around in both directions.
type GetListingPageQuery struct {
	FocusRoomID string
	State       availabilityapp.State
	Image       int
}

func (q GetListingPageQuery) Key() string { return getListingPageKey }

type GetListingPageHandler struct {
	Catalog policies.CatalogStore
	Now     func() time.Time
}

func (h *GetListingPageHandler) Handle(ctx context.Context, q GetListingPageQuery) (dto.ListingPage, error) {
	catalog, err := h.Catalog.Current(ctx)
	if err != nil {
		return dto.ListingPage{}, err
	}
	page := dto.ListingPage{
		Site:  dto.MapSite(catalog),
		Rooms: make([]dto.RoomCard, 0, len(catalog.Rooms)),
	}
	for _, room := range catalog.Rooms {
		focused := q.FocusRoomID != "" && room.ID == q.FocusRoomID
		st := availabilityapp.State{}
		image := 0
		if focused {
			st = q.State
			image = wrapIndex(q.Image, len(room.Images))
		}
		session, err := availabilityapp.Open(room, st, h.Now)
		if err != nil {
			return dto.ListingPage{}, err
		}
		page.Rooms = append(page.Rooms, dto.RoomCard{
			Room:       dto.MapRoom(room),
			Calendar:   session.Calendar(),
			Focused:    focused,
			ImageIndex: image,
		})
	}
	return page, nil
}

func wrapIndex(i, n int) int {
	if n == 0 {
		return 0
	}
	return ((i % n) + n) % n
}

var _ queries.Handler[GetListingPageQuery, dto.ListingPage] = (*GetListingPageHandler)(nil)
