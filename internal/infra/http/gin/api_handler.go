package ginserver

import (
	"context"
	"net/http"
	"time"

	gin "github.com/gin-gonic/gin"

	"bnb/internal/app/commands"
	"bnb/internal/app/dto"
	availabilityapp "bnb/internal/app/handlers/availability"
	bookingapp "bnb/internal/app/handlers/booking"
	listingapp "bnb/internal/app/handlers/listings"
	"bnb/internal/app/queries"
	domainlistings "bnb/internal/domain/listings"
	"bnb/internal/infra/ics"
)

// RoomsHandler serves the data document, room list, calendars and ICS feeds.
type RoomsHandler struct {
	Queries queries.Bus
	Picks   PickObserver
	Now     func() time.Time
}

// Document returns the data document as loaded.
func (h RoomsHandler) Document(c *gin.Context) {
	catalog, err := queries.Ask[listingapp.GetCatalogQuery, domainlistings.Catalog](c.Request.Context(), h.Queries, listingapp.GetCatalogQuery{})
	if err != nil {
		abortJSON(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, catalog)
}

func (h RoomsHandler) List(c *gin.Context) {
	rooms, err := queries.Ask[listingapp.ListRoomsQuery, []dto.Room](c.Request.Context(), h.Queries, listingapp.ListRoomsQuery{})
	if err != nil {
		abortJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func (h RoomsHandler) Calendar(c *gin.Context) {
	query := availabilityapp.GetCalendarQuery{RoomID: c.Param("id"), State: stateFromQuery(c)}
	result, err := queries.Ask[availabilityapp.GetCalendarQuery, dto.Calendar](c.Request.Context(), h.Queries, query)
	if err != nil {
		abortJSON(c, err)
		return
	}
	if query.State.Pick != "" && h.Picks != nil {
		h.Picks.ObservePick(result.Picked)
	}
	c.JSON(http.StatusOK, result)
}

func (h RoomsHandler) ICS(c *gin.Context) {
	room, err := queries.Ask[listingapp.GetRoomQuery, domainlistings.Room](c.Request.Context(), h.Queries, listingapp.GetRoomQuery{RoomID: c.Param("id")})
	if err != nil {
		abortJSON(c, err)
		return
	}
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	body := ics.ExportRoom(room, c.Request.Host, now())
	c.Header("Content-Disposition", `inline; filename="`+room.ID+`.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

type BookingHandler struct {
	Commands commands.Bus
}

type createBookingRequest struct {
	Room  string `json:"room" binding:"required"`
	Start string `json:"start" binding:"required"`
	End   string `json:"end" binding:"required"`
}

// Create sends a booking request. Nothing is stored, so the answer is 202.
func (h BookingHandler) Create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := bookingapp.ConfirmBookingCommand{RoomID: req.Room, Start: req.Start, End: req.End}
	result, err := commands.Dispatch[bookingapp.ConfirmBookingCommand, dto.Confirmation](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		abortJSON(c, err)
		return
	}
	c.JSON(http.StatusAccepted, result)
}

// AdminHandler exposes operational actions behind basic auth.
type AdminHandler struct {
	Reload func(ctx context.Context) (listingapp.ReloadCatalogResult, error)
}

func (h AdminHandler) ReloadCatalog(c *gin.Context) {
	result, err := h.Reload(c.Request.Context())
	if err != nil {
		abortJSON(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
