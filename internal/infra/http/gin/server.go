package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"bnb/internal/infra/config"
	"bnb/internal/infra/http/views"
	"bnb/internal/infra/obs"
)

type PagesHTTP interface {
	Listing(c *gin.Context)
	Checkout(c *gin.Context)
	Confirm(c *gin.Context)
}

type RoomsHTTP interface {
	Document(c *gin.Context)
	List(c *gin.Context)
	Calendar(c *gin.Context)
	ICS(c *gin.Context)
}

type BookingHTTP interface {
	Create(c *gin.Context)
}

type AdminHTTP interface {
	ReloadCatalog(c *gin.Context)
}

type Handlers struct {
	Pages   PagesHTTP
	Rooms   RoomsHTTP
	Booking BookingHTTP
	Admin   AdminHTTP
	// AdminAuth guards the admin group; without it the group is not mounted.
	AdminAuth gin.HandlerFunc
	Metrics   *obs.Metrics
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))
	if h.Metrics != nil {
		router.Use(h.Metrics.GinMiddleware())
		router.GET("/metrics", h.Metrics.Handler())
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)
	router.StaticFS("/static", http.FS(views.Static()))

	if h.Pages != nil {
		router.GET("/", h.Pages.Listing)
		router.GET("/checkout", h.Pages.Checkout)
		router.POST("/checkout/confirm", h.Pages.Confirm)
	}
	if h.Rooms != nil {
		router.GET("/rooms.json", h.Rooms.Document)
		router.GET("/rooms/:id/calendar.ics", h.Rooms.ICS)
	}

	api := router.Group("/api/v1")
	if h.Rooms != nil {
		api.GET("/rooms", h.Rooms.List)
		api.GET("/rooms/:id/calendar", h.Rooms.Calendar)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
	}
	if h.Admin != nil && h.AdminAuth != nil {
		admin := api.Group("/admin", h.AdminAuth)
		admin.POST("/catalog/reload", h.Admin.ReloadCatalog)
	}
	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}

var (
	_ PagesHTTP   = PageHandler{}
	_ RoomsHTTP   = RoomsHandler{}
	_ BookingHTTP = BookingHandler{}
	_ AdminHTTP   = AdminHandler{}
)
