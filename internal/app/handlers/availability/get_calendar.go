package availability

import (
	"context"
	"time"

	"bnb/internal/app/dto"
	"bnb/internal/app/policies"
	"bnb/internal/app/queries"
)

const getCalendarKey = "availability.calendar"

// GetCalendarQuery renders the widget for one room after applying State.
type GetCalendarQuery struct {
	RoomID string
	State  State
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

type GetCalendarHandler struct {
	Catalog policies.CatalogStore
	Now     func() time.Time
}

func (h *GetCalendarHandler) Handle(ctx context.Context, q GetCalendarQuery) (dto.Calendar, error) {
	catalog, err := h.Catalog.Current(ctx)
	if err != nil {
		return dto.Calendar{}, err
	}
	room, err := catalog.Room(q.RoomID)
	if err != nil {
		return dto.Calendar{}, err
	}
	session, err := Open(room, q.State, h.Now)
	if err != nil {
		return dto.Calendar{}, err
	}
	return session.Calendar(), nil
}

var _ queries.Handler[GetCalendarQuery, dto.Calendar] = (*GetCalendarHandler)(nil)
