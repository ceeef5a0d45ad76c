package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"bnb/internal/app/commands"
	"bnb/internal/app/dto"
	bookingapp "bnb/internal/app/handlers/booking"
	listingapp "bnb/internal/app/handlers/listings"
	"bnb/internal/app/queries"
	domainbooking "bnb/internal/domain/booking"
	domainlistings "bnb/internal/domain/listings"
	"bnb/internal/infra/http/views"
)

// PickObserver is told whether each replayed click landed.
type PickObserver interface {
	ObservePick(accepted bool)
}

// PageHandler serves the server-rendered listing and checkout pages.
type PageHandler struct {
	Queries  queries.Bus
	Commands commands.Bus
	Views    *views.Manager
	Picks    PickObserver
	Logger   *slog.Logger
}

func (h PageHandler) Listing(c *gin.Context) {
	query := listingapp.GetListingPageQuery{
		FocusRoomID: c.Query("room"),
		State:       stateFromQuery(c),
		Image:       intQuery(c, "img"),
	}
	page, err := queries.Ask[listingapp.GetListingPageQuery, dto.ListingPage](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if query.State.Pick != "" {
		for _, card := range page.Rooms {
			if card.Focused {
				h.observePick(card.Calendar.Picked)
			}
		}
	}
	h.render(c, http.StatusOK, views.PageListing, &views.Data{
		Site:  page.Site,
		Cards: views.NewCards(page.Rooms),
	})
}

func (h PageHandler) Checkout(c *gin.Context) {
	query := bookingapp.GetCheckoutQuery{
		RoomID: c.Query("room"),
		State:  stateFromQuery(c),
	}
	page, err := queries.Ask[bookingapp.GetCheckoutQuery, dto.CheckoutPage](c.Request.Context(), h.Queries, query)
	if err != nil {
		h.renderError(c, err)
		return
	}
	if query.State.Pick != "" && page.Calendar != nil {
		h.observePick(page.Calendar.Picked)
	}
	h.render(c, http.StatusOK, views.PageCheckout, &views.Data{
		Title:    "Checkout",
		Site:     page.Site,
		Checkout: views.NewCheckout(page),
	})
}

// Confirm handles the checkout form. A selection that cannot be confirmed
// goes back to checkout, where the panel explains why.
func (h PageHandler) Confirm(c *gin.Context) {
	cmd := bookingapp.ConfirmBookingCommand{
		RoomID: c.PostForm("room"),
		Start:  c.PostForm("start"),
		End:    c.PostForm("end"),
	}
	result, err := commands.Dispatch[bookingapp.ConfirmBookingCommand, dto.Confirmation](c.Request.Context(), h.Commands, cmd)
	if errors.Is(err, domainbooking.ErrSelectionNotConfirmable) {
		back := domainbooking.Handoff{RoomID: cmd.RoomID, Start: cmd.Start, End: cmd.End}
		c.Redirect(http.StatusSeeOther, back.CheckoutURL())
		return
	}
	if err != nil {
		h.renderError(c, err)
		return
	}

	h.render(c, http.StatusOK, views.PageConfirmation, &views.Data{
		Title:        "Booking requested",
		Site:         h.site(c),
		Confirmation: &result,
	})
}

// site is used by pages whose own query does not carry the brand block.
func (h PageHandler) site(c *gin.Context) dto.Site {
	site, err := queries.Ask[listingapp.GetSiteQuery, dto.Site](c.Request.Context(), h.Queries, listingapp.GetSiteQuery{})
	if err != nil {
		return dto.MapSite(domainlistings.Catalog{})
	}
	return site
}

func (h PageHandler) observePick(accepted bool) {
	if h.Picks != nil {
		h.Picks.ObservePick(accepted)
	}
}

func (h PageHandler) render(c *gin.Context, status int, page views.PageName, data *views.Data) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := h.Views.Render(c.Writer, page, data); err != nil {
		_ = c.Error(err)
		if h.Logger != nil {
			h.Logger.Error("render page failed", "page", page, "error", err)
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

func (h PageHandler) renderError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Something went wrong. Please try again."
	}
	h.render(c, status, views.PageError, &views.Data{
		Title:   http.StatusText(status),
		Site:    h.site(c),
		Status:  status,
		Message: msg,
	})
}
