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

	"github.com/go-chi/chi/v5"
	goredis "github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"eventspark/internal/availability"
	availabilityapi "eventspark/internal/availability/api"
	rediscache "eventspark/internal/availability/redis"
	"eventspark/internal/booking"
	bookingapi "eventspark/internal/booking/api"
	bookingdb "eventspark/internal/booking/db"
	"eventspark/internal/config"
	"eventspark/internal/database/migrations"
	"eventspark/internal/events"
	"eventspark/internal/kafka"
	"eventspark/internal/ledger"
	"eventspark/internal/logger"
	"eventspark/internal/reservation"
	"eventspark/internal/tickets"
	"eventspark/internal/utils"
)

func main() {
	_ = godotenv.Load() // Loads .env file if present

	cfg := config.Load()
	log := logger.NewLogger()
	defer log.Close()

	ctx := context.Background()

	// --- PostgreSQL ---
	connector := pgdriver.NewConnector(pgdriver.WithDSN(cfg.Database.DSN()))
	sqldb := sql.OpenDB(connector)
	defer sqldb.Close()

	if err := sqldb.Ping(); err != nil {
		log.Fatal("STARTUP", fmt.Sprintf("failed to connect to Postgres: %v", err))
	}
	bunDB := bun.NewDB(sqldb, pgdialect.New())

	if err := migrations.Init(ctx, bunDB); err != nil {
		log.Fatal("STARTUP", fmt.Sprintf("migrations failed: %v", err))
	}
	if cfg.SeedDemo {
		eventID, err := migrations.SeedDemoData(ctx, bunDB)
		if err != nil {
			log.Fatal("STARTUP", fmt.Sprintf("demo seed failed: %v", err))
		}
		if eventID != "" {
			log.Info("STARTUP", fmt.Sprintf("demo event seeded: %s", eventID))
		}
	}

	// --- Redis (seat map cache, optional) ---
	var seatMapCache *rediscache.Cache
	if cfg.Redis.Enabled {
		redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.Redis.Addr})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Warn("STARTUP", fmt.Sprintf("redis unavailable, seat map cache disabled: %v", err))
		} else {
			seatMapCache = rediscache.NewCache(redisClient, cfg.Redis.CacheTTL)
			defer redisClient.Close()
		}
	}

	// --- Kafka (domain events, optional) ---
	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
	}

	// --- Wire components ---
	seatLedger := ledger.NewSeatLedger(bunDB, cfg.Ledger.ClaimTimeout)
	eventStore := &events.Store{Bun: bunDB}
	bookingStore := &bookingdb.DB{Bun: bunDB}
	issuer := tickets.NewIssuer()

	coordinator := reservation.NewCoordinator(seatLedger, eventStore, log)
	bookingService := booking.NewService(coordinator, bookingStore, issuer, seatLedger, eventStore, log)
	if producer != nil {
		bookingService.Kafka = producer
	}

	availabilityService := availability.NewService(seatLedger, eventStore, nil, log)
	if seatMapCache != nil {
		availabilityService.Cache = seatMapCache
		bookingService.Cache = seatMapCache
	}

	bookingHandler := bookingapi.NewHandler(bookingService, log)
	availabilityHandler := availabilityapi.NewHandler(availabilityService, log)

	// --- Router ---
	r := chi.NewRouter()

	r.Get("/api/events/{eventId}/seats", availabilityHandler.GetEventSeats)
	r.Post("/api/bookings", bookingHandler.CreateBooking)
	r.Get("/api/bookings/{bookingId}", bookingHandler.GetBooking)
	r.Delete("/api/bookings/{bookingId}", bookingHandler.CancelBooking)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ok", nil))
	})

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("STARTUP", fmt.Sprintf("booking service listening on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("STARTUP", fmt.Sprintf("http server error: %v", err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("SHUTDOWN", "signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("SHUTDOWN", fmt.Sprintf("forced shutdown: %v", err))
		return
	}
	log.Info("SHUTDOWN", "server exited gracefully")
}
