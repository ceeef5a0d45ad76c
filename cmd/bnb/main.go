package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"bnb/internal/app/commands"
	availabilityapp "bnb/internal/app/handlers/availability"
	bookingapp "bnb/internal/app/handlers/booking"
	listingapp "bnb/internal/app/handlers/listings"
	"bnb/internal/app/middleware"
	"bnb/internal/app/outbox"
	"bnb/internal/app/policies"
	"bnb/internal/app/queries"
	"bnb/internal/infra/broker/kafka"
	"bnb/internal/infra/broker/logsink"
	infracatalog "bnb/internal/infra/catalog"
	"bnb/internal/infra/config"
	"bnb/internal/infra/db/mongo"
	ginserver "bnb/internal/infra/http/gin"
	"bnb/internal/infra/http/views"
	"bnb/internal/infra/obs"
	infraoutbox "bnb/internal/infra/outbox"
	"bnb/internal/infra/schedule"
	"bnb/internal/infra/security"
	"bnb/internal/infra/storage/memory"
	"bnb/internal/infra/storage/s3"
)

func main() {
	hashPassword := flag.String("hash-password", "", "print a bcrypt hash for ADMIN_PASSWORD_HASH and exit")
	flag.Parse()
	if *hashPassword != "" {
		hash, err := security.BcryptHasher{}.Hash(*hashPassword)
		if err != nil {
			fmt.Fprintln(os.Stderr, "hash password:", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dotenvErr := config.LoadDotEnv()
	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)
	slog.SetDefault(logger)
	if dotenvErr != nil {
		logger.Warn(".env ignored", "error", dotenvErr)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.CatalogRefresh != "" {
		if err := schedule.Validate(cfg.CatalogRefresh); err != nil {
			logger.Error("invalid CATALOG_REFRESH", "error", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(registry)

	source, closeSource, pingSource, err := buildCatalogSource(cfg, logger)
	if err != nil {
		logger.Error("catalog source unavailable", "source", cfg.CatalogSource, "error", err)
		os.Exit(1)
	}
	defer closeSource()

	producer, closeProducer := buildProducer(cfg, logger)
	defer closeProducer()

	app, err := buildApplication(cfg, logger, metrics, source, producer)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}

	if res, err := app.reload(policies.WithAdmin(ctx, "startup")); err != nil {
		logger.Warn("initial catalog load failed, serving an empty catalog", "source", source.Name(), "error", err)
	} else {
		logger.Info("catalog loaded", "source", res.Source, "rooms", res.Rooms, "at", app.store.LoadedAt())
	}
	if cfg.CatalogRefresh != "" {
		refresher := &schedule.Refresher{
			Spec:   cfg.CatalogRefresh,
			Logger: logger,
			Job: func(ctx context.Context) error {
				_, err := app.reload(policies.WithAdmin(ctx, "scheduler"))
				return err
			},
		}
		go func() {
			if err := refresher.Run(ctx); err != nil {
				logger.Error("refresher stopped", "error", err)
			}
		}()
	}

	checks := map[string]func() error{"catalog": app.store.Ready}
	if pingSource != nil {
		checks["catalog_source"] = func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return pingSource(pingCtx)
		}
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Checks: checks}, app.handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "catalog", source.Name())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	store    *memory.CatalogStore
	reload   func(ctx context.Context) (listingapp.ReloadCatalogResult, error)
}

func buildApplication(cfg config.Config, logger *slog.Logger, metrics *obs.Metrics, source policies.CatalogSource, producer infraoutbox.Producer) (application, error) {
	pages, err := views.NewManager()
	if err != nil {
		return application{}, fmt.Errorf("parse templates: %w", err)
	}

	store := memory.NewCatalogStore()
	outboxStore := memory.NewOutbox(infraoutbox.Relay{
		Producer:    producer,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Source:      "app://bnb",
	})
	encoder := outbox.JSONEventEncoder{RequestID: obs.RequestIDFromContext}
	now := time.Now

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.ConfirmBookingCommand{}.Key(), &bookingapp.ConfirmBookingHandler{
		Catalog: store,
		Outbox:  outboxStore,
		Encoder: encoder,
		Now:     now,
	})
	commands.RegisterHandler(commandBus, listingapp.ReloadCatalogCommand{}.Key(), &listingapp.ReloadCatalogHandler{
		Source:  source,
		Catalog: store,
		Outbox:  outboxStore,
		Encoder: encoder,
		Now:     now,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, listingapp.GetCatalogQuery{}.Key(), &listingapp.GetCatalogHandler{Catalog: store})
	queries.RegisterHandler(queryBus, listingapp.GetSiteQuery{}.Key(), &listingapp.GetSiteHandler{Catalog: store})
	queries.RegisterHandler(queryBus, listingapp.ListRoomsQuery{}.Key(), &listingapp.ListRoomsHandler{Catalog: store})
	queries.RegisterHandler(queryBus, listingapp.GetRoomQuery{}.Key(), &listingapp.GetRoomHandler{Catalog: store})
	queries.RegisterHandler(queryBus, listingapp.GetListingPageQuery{}.Key(), &listingapp.GetListingPageHandler{Catalog: store, Now: now})
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), &availabilityapp.GetCalendarHandler{Catalog: store, Now: now})
	queries.RegisterHandler(queryBus, bookingapp.GetCheckoutQuery{}.Key(), &bookingapp.GetCheckoutHandler{Catalog: store, Now: now})
	logger.Debug("buses ready", "commands", commandBus.Keys(), "queries", queryBus.Keys())

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Logging(logger),
		middleware.Authorization(policies.AdminAuthorizer{}),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus, middleware.QueryLogging(logger))

	reload := func(ctx context.Context) (listingapp.ReloadCatalogResult, error) {
		res, err := commands.Dispatch[listingapp.ReloadCatalogCommand, listingapp.ReloadCatalogResult](ctx, commandBusWithMiddleware, listingapp.ReloadCatalogCommand{})
		metrics.ObserveReload(err)
		return res, err
	}

	handlers := ginserver.Handlers{
		Pages: ginserver.PageHandler{
			Queries:  queryBusWithMiddleware,
			Commands: commandBusWithMiddleware,
			Views:    pages,
			Picks:    metrics,
			Logger:   logger,
		},
		Rooms: ginserver.RoomsHandler{
			Queries: queryBusWithMiddleware,
			Picks:   metrics,
			Now:     now,
		},
		Booking: ginserver.BookingHandler{Commands: commandBusWithMiddleware},
		Metrics: metrics,
	}
	if cfg.AdminEnabled() {
		handlers.Admin = ginserver.AdminHandler{Reload: reload}
		handlers.AdminAuth = security.AdminCredentials{User: cfg.AdminUser, PasswordHash: cfg.AdminPassword}.BasicAuth()
	} else {
		logger.Info("admin endpoints disabled, set ADMIN_PASSWORD_HASH to enable them")
	}

	return application{handlers: handlers, store: store, reload: reload}, nil
}

// buildCatalogSource also returns a ping for sources that live behind a
// network connection; it is nil for files.
func buildCatalogSource(cfg config.Config, logger *slog.Logger) (policies.CatalogSource, func(), func(context.Context) error, error) {
	switch cfg.CatalogSource {
	case config.SourceMongo:
		client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Close(ctx); err != nil {
				logger.Warn("mongo disconnect failed", "error", err)
			}
		}
		return mongo.NewCatalogSource(client.DB), closeFn, client.Ping, nil
	case config.SourceS3:
		src, err := s3.NewCatalogSource(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Object, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		return src, func() {}, src.Ping, nil
	default:
		return infracatalog.FileSource{Path: cfg.CatalogPath}, func() {}, nil, nil
	}
}

// buildProducer falls back to logging events when Kafka is not configured
// or cannot be reached at startup.
func buildProducer(cfg config.Config, logger *slog.Logger) (infraoutbox.Producer, func()) {
	fallback := logsink.Producer{Logger: logger}
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no KAFKA_BROKERS set, booking events go to the log")
		return fallback, func() {}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, "bnb")
	if err != nil {
		logger.Warn("kafka unavailable, booking events go to the log", "brokers", cfg.KafkaBrokers, "error", err)
		return fallback, func() {}
	}
	return producer, func() { closeQuietly(logger, "kafka producer", producer) }
}

func closeQuietly(logger *slog.Logger, what string, c io.Closer) {
	if err := c.Close(); err != nil {
		logger.Warn("close failed", "what", what, "error", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
