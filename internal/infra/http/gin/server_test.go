package ginserver

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bnb/internal/app/commands"
	availabilityapp "bnb/internal/app/handlers/availability"
	bookingapp "bnb/internal/app/handlers/booking"
	listingapp "bnb/internal/app/handlers/listings"
	"bnb/internal/app/middleware"
	"bnb/internal/app/outbox"
	"bnb/internal/app/policies"
	"bnb/internal/app/queries"
	domainbooking "bnb/internal/domain/booking"
	domainlistings "bnb/internal/domain/listings"
	"bnb/internal/domain/shared/daterange"
	"bnb/internal/infra/http/views"
	"bnb/internal/infra/obs"
	infraoutbox "bnb/internal/infra/outbox"
	"bnb/internal/infra/security"
	"bnb/internal/infra/storage/memory"
)

type published struct {
	topic   string
	key     string
	payload []byte
}

type recordingProducer struct {
	mu   sync.Mutex
	sent []published
}

func (p *recordingProducer) Publish(_ context.Context, topic, key string, payload []byte, _ map[string]string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{topic: topic, key: key, payload: payload})
	return nil
}

func (p *recordingProducer) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, m := range p.sent {
		out = append(out, m.topic)
	}
	return out
}

type staticSource struct {
	catalog domainlistings.Catalog
}

func (s staticSource) Name() string { return "static" }

func (s staticSource) Load(context.Context) (domainlistings.Catalog, error) { return s.catalog, nil }

type harness struct {
	router   *gin.Engine
	store    *memory.CatalogStore
	producer *recordingProducer
}

func testCatalog(t *testing.T) domainlistings.Catalog {
	t.Helper()
	booked, err := daterange.ParseRange("2024-06-12", "2024-06-14")
	require.NoError(t, err)
	return domainlistings.Catalog{
		Brand: domainlistings.Brand{Name: "Harbour House"},
		Rooms: []domainlistings.Room{
			{
				ID:           "garden",
				Name:         "Garden Room",
				Info:         "Opens onto the garden.",
				Currency:     "£",
				Price:        decimal.NewFromInt(100),
				Images:       []string{"/img/g1.jpg", "/img/g2.jpg"},
				BookedRanges: []daterange.Range{booked},
			},
			{
				ID:       "attic",
				Name:     "Attic Suite",
				Currency: "£",
				Price:    decimal.NewFromInt(140),
			},
		},
	}
}

const adminPassword = "s3cret"

func newHarness(t *testing.T, catalog *domainlistings.Catalog) *harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	now := func() time.Time { return time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC) }
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := memory.NewCatalogStore()
	if catalog != nil {
		require.NoError(t, store.Replace(context.Background(), *catalog))
	}
	producer := &recordingProducer{}
	box := memory.NewOutbox(infraoutbox.Relay{Producer: producer})
	encoder := outbox.JSONEventEncoder{RequestID: obs.RequestIDFromContext}

	source := staticSource{catalog: testCatalog(t)}
	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.ConfirmBookingCommand{}.Key(), &bookingapp.ConfirmBookingHandler{
		Catalog: store, Outbox: box, Encoder: encoder, Now: now, IDGenerator: func() string { return "req-1" },
	})
	commands.RegisterHandler(commandBus, listingapp.ReloadCatalogCommand{}.Key(), &listingapp.ReloadCatalogHandler{
		Source: source, Catalog: store, Outbox: box, Encoder: encoder, Now: now,
	})
	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, listingapp.GetCatalogQuery{}.Key(), &listingapp.GetCatalogHandler{Catalog: store})
	queries.RegisterHandler(queryBus, listingapp.GetSiteQuery{}.Key(), &listingapp.GetSiteHandler{Catalog: store})
	queries.RegisterHandler(queryBus, listingapp.ListRoomsQuery{}.Key(), &listingapp.ListRoomsHandler{Catalog: store})
	queries.RegisterHandler(queryBus, listingapp.GetRoomQuery{}.Key(), &listingapp.GetRoomHandler{Catalog: store})
	queries.RegisterHandler(queryBus, listingapp.GetListingPageQuery{}.Key(), &listingapp.GetListingPageHandler{Catalog: store, Now: now})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{Catalog: store, Now: now})
	queries.RegisterHandler(queryBus, bookingapp.GetCheckoutQuery{}.Key(), &bookingapp.GetCheckoutHandler{Catalog: store, Now: now})

	cmds := middleware.ChainCommands(commandBus,
		middleware.Logging(logger),
		middleware.Authorization(policies.AdminAuthorizer{}),
		middleware.OutboxFlush(box),
	)
	qs := middleware.ChainQueries(queryBus, middleware.QueryLogging(logger))

	pages, err := views.NewManager()
	require.NoError(t, err)
	hash, err := security.BcryptHasher{Cost: 4}.Hash(adminPassword)
	require.NoError(t, err)

	router := NewRouter(obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Checks: map[string]func() error{"catalog": store.Ready},
	}, Handlers{
		Pages:   PageHandler{Queries: qs, Commands: cmds, Views: pages, Logger: logger},
		Rooms:   RoomsHandler{Queries: qs, Now: now},
		Booking: BookingHandler{Commands: cmds},
		Admin: AdminHandler{Reload: func(ctx context.Context) (listingapp.ReloadCatalogResult, error) {
			return commands.Dispatch[listingapp.ReloadCatalogCommand, listingapp.ReloadCatalogResult](ctx, cmds, listingapp.ReloadCatalogCommand{})
		}},
		AdminAuth: security.AdminCredentials{User: "admin", PasswordHash: hash}.BasicAuth(),
	})
	return &harness{router: router, store: store, producer: producer}
}

func (h *harness) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.router.ServeHTTP(w, req)
	return w
}

func (h *harness) get(target string) *httptest.ResponseRecorder {
	return h.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func TestListingPageRendersEveryRoom(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	w := h.get("/?room=garden&month=2024-06")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Harbour House")
	assert.Contains(t, body, `id="room-garden"`)
	assert.Contains(t, body, `id="room-attic"`)
	assert.Contains(t, body, "June 2024")
	assert.Contains(t, body, domainbooking.PromptPickRange)
	assert.Contains(t, body, `title="Booked">12</div>`)
	assert.Contains(t, body, `aria-disabled="true">Book now`)
	assert.Contains(t, body, "pick=2024-06-11")
}

func TestListingPageReplaysClicks(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	w := h.get("/?room=garden&month=2024-06&start=2024-06-01&pick=2024-06-05")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "2024-06-01 → 2024-06-05")
	assert.Contains(t, body, "4 nights • £400")
	assert.Contains(t, body, "/checkout?end=2024-06-05&amp;room=garden&amp;start=2024-06-01")
}

func TestListingPageRejectsBadDates(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	w := h.get("/?room=garden&start=June")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid date format")
}

func TestListingPageWithoutCatalog(t *testing.T) {
	h := newHarness(t, nil)

	w := h.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No rooms are available right now.")
	assert.Equal(t, http.StatusServiceUnavailable, h.get("/readyz").Code)
}

func TestCheckoutPage(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	w := h.get("/checkout?room=garden&start=2024-06-01&end=2024-06-05")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Garden Room")
	assert.Contains(t, body, `name="start" value="2024-06-01"`)
	assert.Contains(t, body, `name="end" value="2024-06-05"`)
	assert.Contains(t, body, "4 nights • £400")
	assert.NotContains(t, body, " disabled>Confirm booking")

	overlap := h.get("/checkout?room=garden&start=2024-06-10&end=2024-06-13")
	require.Equal(t, http.StatusOK, overlap.Code)
	assert.Contains(t, overlap.Body.String(), " disabled>Confirm booking")

	fallback := h.get("/checkout?room=cellar")
	require.Equal(t, http.StatusOK, fallback.Code)
	assert.Contains(t, fallback.Body.String(), `name="room" value="garden"`)
}

func TestConfirmBooking(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	form := url.Values{"room": {"garden"}, "start": {"2024-06-01"}, "end": {"2024-06-05"}}
	req := httptest.NewRequest(http.MethodPost, "/checkout/confirm", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := h.do(req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Booking request sent (no payment taken).")
	assert.Contains(t, w.Body.String(), "req-1")
	assert.Equal(t, []string{"booking.events.v1"}, h.producer.topics())
}

func TestConfirmBookingOverlapGoesBackToCheckout(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	form := url.Values{"room": {"garden"}, "start": {"2024-06-10"}, "end": {"2024-06-13"}}
	req := httptest.NewRequest(http.MethodPost, "/checkout/confirm", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := h.do(req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/checkout?end=2024-06-13&room=garden&start=2024-06-10", w.Header().Get("Location"))
	assert.Empty(t, h.producer.topics())
}

func TestCalendarAPI(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	w := h.get("/api/v1/rooms/garden/calendar?month=2024-06&pick=2024-06-12")
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Month     string `json:"month"`
		Picked    bool   `json:"picked"`
		Selection struct {
			State string `json:"state"`
		} `json:"selection"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-06", body.Month)
	assert.False(t, body.Picked)
	assert.Equal(t, "empty", body.Selection.State)

	assert.Equal(t, http.StatusNotFound, h.get("/api/v1/rooms/cellar/calendar").Code)
	assert.Equal(t, http.StatusBadRequest, h.get("/api/v1/rooms/garden/calendar?pick=12-06").Code)
}

func TestRoomsEndpoints(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	doc := h.get("/rooms.json")
	require.Equal(t, http.StatusOK, doc.Code)
	assert.Contains(t, doc.Body.String(), `"price":100`)
	assert.Contains(t, doc.Body.String(), `"bookedRanges"`)

	list := h.get("/api/v1/rooms")
	require.Equal(t, http.StatusOK, list.Code)
	assert.Contains(t, list.Body.String(), `"Attic Suite"`)

	ics := h.get("/rooms/garden/calendar.ics")
	require.Equal(t, http.StatusOK, ics.Code)
	assert.Contains(t, ics.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, ics.Body.String(), "BEGIN:VEVENT")
	assert.Equal(t, http.StatusNotFound, h.get("/rooms/cellar/calendar.ics").Code)
}

func TestBookingsAPI(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		return h.do(req)
	}

	ok := post(`{"room":"garden","start":"2024-06-01","end":"2024-06-05"}`)
	require.Equal(t, http.StatusAccepted, ok.Code)
	assert.Contains(t, ok.Body.String(), `"request_id":"req-1"`)

	assert.Equal(t, http.StatusUnprocessableEntity, post(`{"room":"garden","start":"2024-06-11","end":"2024-06-15"}`).Code)
	assert.Equal(t, http.StatusNotFound, post(`{"room":"cellar","start":"2024-06-01","end":"2024-06-05"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(`{"room":"garden"}`).Code)
}

func TestAdminReloadRequiresCredentials(t *testing.T) {
	h := newHarness(t, nil)

	anon := h.do(httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/reload", nil))
	assert.Equal(t, http.StatusUnauthorized, anon.Code)
	assert.NotEmpty(t, anon.Header().Get("WWW-Authenticate"))

	wrong := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/reload", nil)
	wrong.SetBasicAuth("admin", "nope")
	assert.Equal(t, http.StatusUnauthorized, h.do(wrong).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/catalog/reload", nil)
	req.SetBasicAuth("admin", adminPassword)
	w := h.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"source":"static","rooms":2}`, w.Body.String())
	assert.NoError(t, h.store.Ready())
	assert.Equal(t, []string{"catalog.events.v1"}, h.producer.topics())
}

func TestRequestIDIsEchoed(t *testing.T) {
	catalog := testCatalog(t)
	h := newHarness(t, &catalog)

	req := httptest.NewRequest(http.MethodGet, "/livez", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w := h.do(req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}
