package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/CamiloTriana75/ProyectoElden/internal/availability"
	"github.com/CamiloTriana75/ProyectoElden/internal/booking"
	"github.com/CamiloTriana75/ProyectoElden/internal/config"
	"github.com/CamiloTriana75/ProyectoElden/internal/db"
	"github.com/CamiloTriana75/ProyectoElden/internal/facility"
	"github.com/CamiloTriana75/ProyectoElden/internal/logger"
	"github.com/CamiloTriana75/ProyectoElden/internal/notify"
	"github.com/CamiloTriana75/ProyectoElden/internal/obs"
	"github.com/CamiloTriana75/ProyectoElden/internal/reservation"
	"github.com/CamiloTriana75/ProyectoElden/internal/review"
	"github.com/CamiloTriana75/ProyectoElden/internal/server"
	"github.com/CamiloTriana75/ProyectoElden/internal/slot"
)

type stores struct {
	facilities   facility.Repository
	slots        slot.Repository
	reservations reservation.Repository
	ping         server.Check
	close        func() error
}

func openStores(cfg *config.Config) (*stores, error) {
	if cfg.StoreBackend == config.BackendMemory {
		slots := slot.NewMemoryRepository()
		return &stores{
			facilities:   facility.NewMemoryRepository(),
			slots:        slots,
			reservations: reservation.NewMemoryRepository(slots),
			ping:         func(context.Context) error { return nil },
			close:        func() error { return nil },
		}, nil
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connected")

	if err := db.RunMigrations(database, cfg.MigrationsPath); err != nil {
		_ = database.Close()
		return nil, err
	}
	logger.Info("Migrations completed")

	return postgresStores(database), nil
}

func postgresStores(database *sqlx.DB) *stores {
	return &stores{
		facilities:   facility.NewRepository(database),
		slots:        slot.NewRepository(database),
		reservations: reservation.NewRepository(database),
		ping:         database.PingContext,
		close:        database.Close,
	}
}

// @title Elden Scheduling API
// @version 1.0
// @description Reservation and time-slot scheduling for sports facilities.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Info("Starting Elden scheduling service", "backend", cfg.StoreBackend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownTracer, err := obs.InitTracer(ctx, "elden-scheduling", cfg.OTLPEndpoint)
	if err != nil {
		logger.Fatalf("Failed to init tracing: %v", err)
	}

	st, err := openStores(cfg)
	if err != nil {
		logger.Fatalf("Failed to open stores: %v", err)
	}
	defer st.close()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis unreachable, availability cache and review queue degraded", "addr", cfg.RedisAddr, "error", err)
	}

	hub := notify.NewHub()
	if cfg.AMQPURL != "" {
		bridge, err := notify.NewBridge(cfg.AMQPURL, cfg.ChangeExchange, cfg.ChangeQueue, hub)
		if err != nil {
			logger.Fatalf("Failed to connect change bridge: %v", err)
		}
		defer bridge.Close()
		go func() {
			if err := bridge.Run(ctx); err != nil {
				logger.Error("Change bridge stopped", "error", err)
			}
		}()
		logger.Info("Change bridge connected", "exchange", cfg.ChangeExchange)
	}

	facilities := facility.NewService(st.facilities)
	resolver := availability.NewResolver(facilities, st.slots, st.reservations)
	cached := availability.NewCachedResolver(resolver, availability.NewRedisCache(rdb, cfg.AvailabilityCacheTTL))
	unbind := cached.Bind(hub)
	defer unbind()

	queue := review.NewQueue(rdb)
	validator := booking.NewValidator(resolver, booking.BusinessHours{Open: cfg.BusinessOpenHour, Close: cfg.BusinessCloseHour})

	srv := server.New(cfg, server.Handlers{
		Facility:     facility.NewHandler(facilities),
		Slot:         slot.NewHandler(slot.NewService(st.slots, facilities, hub)),
		Availability: availability.NewHandler(cached, resolver),
		Booking:      booking.NewHandler(booking.NewService(validator, st.reservations, hub)),
		Reservation:  reservation.NewHandler(reservation.NewManager(st.reservations, hub, queue)),
		Review:       review.NewHandler(queue),
		Checks: map[string]server.Check{
			"store": st.ping,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Errorf("Error flushing traces: %v", err)
	}

	logger.Info("Server stopped")
}
