package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	apiHandlers "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers"
	createAvailabilityHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/create_availability"
	deleteBookingHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/delete_booking"
	discardDraftHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/discard_draft"
	getBookingHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/get_booking"
	getDraftHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/get_draft"
	loadCalendarHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/load_calendar"
	selectSlotHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/select_slot"
	submitBookingHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/submit_booking"
	toggleServiceHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/toggle_service"
	updateBookingHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/update_booking"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-BookingCalendar/internal/config"
	draftRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/draft"
	"github.com/m04kA/SMC-BookingCalendar/internal/integrations/bookingapi"
	bookingsService "github.com/m04kA/SMC-BookingCalendar/internal/service/bookings"
	draftsService "github.com/m04kA/SMC-BookingCalendar/internal/service/drafts"
	loadCalendarUC "github.com/m04kA/SMC-BookingCalendar/internal/usecase/load_calendar"
	selectSlotUC "github.com/m04kA/SMC-BookingCalendar/internal/usecase/select_slot"
	submitBookingUC "github.com/m04kA/SMC-BookingCalendar/internal/usecase/submit_booking"
	toggleServiceUC "github.com/m04kA/SMC-BookingCalendar/internal/usecase/toggle_service"
	"github.com/m04kA/SMC-BookingCalendar/pkg/logger"
	"github.com/m04kA/SMC-BookingCalendar/pkg/metrics"
)

// Clients quiet for this long lose their rate limit bucket
const rateLimitIdle = 10 * time.Minute

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CALENDAR_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BookingCalendar...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Calendar.Location()
	if err != nil {
		log.Fatal("Failed to load time zone %s: %v", cfg.Calendar.TimeZone, err)
	}
	slotSize := cfg.Calendar.SlotDuration()

	// A nil collector records nothing
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	client := bookingapi.NewClient(
		cfg.BookingAPI.URL,
		cfg.BookingAPI.RefreshPath,
		time.Duration(cfg.BookingAPI.Timeout)*time.Second,
		metricsCollector,
		log,
	)
	log.Info("Booking API client initialized (url=%s, timeout=%ds)", cfg.BookingAPI.URL, cfg.BookingAPI.Timeout)

	drafts, closeDrafts := openDraftStore(cfg, log)
	defer closeDrafts()

	stopCleanupCh := make(chan struct{})
	if expiring, ok := drafts.(draftRepo.ExpiringRepository); ok {
		go sweepDrafts(expiring, time.Duration(cfg.Drafts.CleanupInterval)*time.Second, stopCleanupCh, log)
	}

	// Services
	bookingSvc := bookingsService.NewService(client, drafts, location, slotSize, log)
	draftSvc := draftsService.NewService(drafts, log)

	// Use cases
	loadCalendarUseCase := loadCalendarUC.NewUseCase(client, drafts, metricsCollector, location, slotSize, log)
	toggleServiceUseCase := toggleServiceUC.NewUseCase(drafts, log)
	selectSlotUseCase := selectSlotUC.NewUseCase(drafts, metricsCollector, log)
	submitBookingUseCase := submitBookingUC.NewUseCase(client, drafts, metricsCollector, location, log)

	// Handlers
	loadCalendar := loadCalendarHandler.NewHandler(loadCalendarUseCase, log)
	getDraft := getDraftHandler.NewHandler(draftSvc, log)
	discardDraft := discardDraftHandler.NewHandler(draftSvc, log)
	toggleService := toggleServiceHandler.NewHandler(toggleServiceUseCase, log)
	selectSlot := selectSlotHandler.NewHandler(selectSlotUseCase, location, log)
	submitBooking := submitBookingHandler.NewHandler(submitBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, location, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(bookingSvc, location, log)

	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	// Every API route forwards the caller's credentials to the booking API
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Credentials(client, log))

	// --- Reads ---
	api.HandleFunc("/drafts/{draftId}", getDraft.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Mutating draft routes are rate limited per client
	mutating := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log)
		mutating.Use(limiter.Middleware)
		go limiter.Run(time.Minute, rateLimitIdle, stopCleanupCh)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	// --- Calendar drafts ---
	mutating.HandleFunc("/drafts", loadCalendar.Handle).Methods(http.MethodPost)
	mutating.HandleFunc("/drafts/{draftId}", discardDraft.Handle).Methods(http.MethodDelete)
	mutating.HandleFunc("/drafts/{draftId}/refresh", loadCalendar.HandleRefresh).Methods(http.MethodPost)
	mutating.HandleFunc("/drafts/{draftId}/services/{serviceId}/toggle", toggleService.Handle).Methods(http.MethodPost)
	mutating.HandleFunc("/drafts/{draftId}/selection", selectSlot.Handle).Methods(http.MethodPost)
	mutating.HandleFunc("/drafts/{draftId}/selection", selectSlot.HandleClear).Methods(http.MethodDelete)
	mutating.HandleFunc("/drafts/{draftId}/submit", submitBooking.Handle).Methods(http.MethodPost)

	// --- Administration, the booking API decides who is an admin ---
	mutating.HandleFunc("/admin/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	mutating.HandleFunc("/admin/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	mutating.HandleFunc("/admin/availability", createAvailability.Handle).Methods(http.MethodPost)

	handler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.CORS.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Authorization", "Content-Type", middleware.HeaderRefreshToken}),
		gorillaHandlers.ExposedHeaders([]string{middleware.HeaderAccessToken, apiHandlers.HeaderSessionExpired}),
	)(r)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	close(stopCleanupCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// openDraftStore connects the configured draft backend. The returned func releases its connections.
func openDraftStore(cfg *config.Config, log *logger.Logger) (draftRepo.Repository, func()) {
	ttl := cfg.Drafts.TTL()

	switch cfg.Drafts.Backend {
	case config.BackendPostgres:
		db, err := sql.Open("postgres", cfg.Database.DSN())
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}

		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		if err := db.Ping(); err != nil {
			log.Fatal("Failed to ping database: %v", err)
		}
		log.Info("Drafts stored in PostgreSQL (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		return draftRepo.NewPostgresRepository(db, ttl), func() { _ = db.Close() }

	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		log.Info("Drafts stored in Redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

		return draftRepo.NewRedisRepository(rdb, cfg.Redis.KeyPrefix, ttl), func() { _ = rdb.Close() }

	default:
		log.Info("Drafts stored in memory (ttl=%s)", ttl)
		return draftRepo.NewMemoryRepository(ttl), func() {}
	}
}

// sweepDrafts removes expired drafts until stop is closed
func sweepDrafts(repo draftRepo.ExpiringRepository, interval time.Duration, stop <-chan struct{}, log *logger.Logger) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			removed, err := repo.DeleteExpired(ctx)
			cancel()
			if err != nil {
				log.Error("Failed to delete expired drafts: %v", err)
				continue
			}
			if removed > 0 {
				log.Info("Deleted %d expired drafts", removed)
			}
		}
	}
}
