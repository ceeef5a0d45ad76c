package listings

import (
	"context"

	"bnb/internal/app/dto"
	"bnb/internal/app/policies"
	"bnb/internal/app/queries"
	domainlistings "bnb/internal/domain/listings"
)

const (
	getCatalogKey = "listings.catalog"
	listRoomsKey  = "listings.rooms"
	getRoomKey    = "listings.room"
)

// GetCatalogQuery returns the data document exactly as it was loaded.
type GetCatalogQuery struct{}

func (q GetCatalogQuery) Key() string { return getCatalogKey }

type GetCatalogHandler struct {
	Catalog policies.CatalogStore
}

func (h *GetCatalogHandler) Handle(ctx context.Context, _ GetCatalogQuery) (domainlistings.Catalog, error) {
	return h.Catalog.Current(ctx)
}

type ListRoomsQuery struct{}

func (q ListRoomsQuery) Key() string { return listRoomsKey }

type ListRoomsHandler struct {
	Catalog policies.CatalogStore
}

func (h *ListRoomsHandler) Handle(ctx context.Context, _ ListRoomsQuery) ([]dto.Room, error) {
	catalog, err := h.Catalog.Current(ctx)
	if err != nil {
		return nil, err
	}
	return dto.MapRooms(catalog.Rooms), nil
}

// GetRoomQuery looks a room up by id with no fallback.
type GetRoomQuery struct {
	RoomID string
}

func (q GetRoomQuery) Key() string { return getRoomKey }

type GetRoomHandler struct {
	Catalog policies.CatalogStore
}

func (h *GetRoomHandler) Handle(ctx context.Context, q GetRoomQuery) (domainlistings.Room, error) {
	catalog, err := h.Catalog.Current(ctx)
	if err != nil {
		return domainlistings.Room{}, err
	}
	return catalog.Room(q.RoomID)
}

var (
	_ queries.Handler[GetCatalogQuery, domainlistings.Catalog] = (*GetCatalogHandler)(nil)
	_ queries.Handler[ListRoomsQuery, []dto.Room]              = (*ListRoomsHandler)(nil)
	_ queries.Handler[GetRoomQuery, domainlistings.Room]       = (*GetRoomHandler)(nil)
)

const getSiteKey = "listings.site"

// GetSiteQuery returns the brand and contact block with defaults applied.
type GetSiteQuery struct{}

func (q GetSiteQuery) Key() string { return getSiteKey }

type GetSiteHandler struct {
	Catalog policies.CatalogStore
}

func (h *GetSiteHandler) Handle(ctx context.Context, _ GetSiteQuery) (dto.Site, error) {
	catalog, err := h.Catalog.Current(ctx)
	if err != nil {
		return dto.Site{}, err
	}
	return dto.MapSite(catalog), nil
}

var _ queries.Handler[GetSiteQuery, dto.Site] = (*GetSiteHandler)(nil)
