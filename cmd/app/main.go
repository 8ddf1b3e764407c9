package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Korolev2000/flightbooking/config"
	"github.com/Korolev2000/flightbooking/internal/bootstrap"
	"github.com/Korolev2000/flightbooking/internal/cache"
	"github.com/Korolev2000/flightbooking/internal/kafka"
	"github.com/Korolev2000/flightbooking/internal/logger"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/Korolev2000/flightbooking/internal/service/auth"
	"github.com/Korolev2000/flightbooking/internal/service/booking"
	"github.com/Korolev2000/flightbooking/internal/service/flights"
	"github.com/Korolev2000/flightbooking/internal/service/reviews"
	"github.com/Korolev2000/flightbooking/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLog := logger.New("app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	migrationDB, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("open postgres for migrations: %v", err)
	}
	if err := migrations.Migrate(migrationDB); err != nil {
		log.Fatalf("run migrations: %v", err)
	}
	if err := migrationDB.Close(); err != nil {
		log.Fatalf("close migration connection: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.FlightsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	userRepo := repository.NewUserRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)

	authService := auth.NewAuthService(
		userRepo,
		redisCache,
		cfg.Auth.Secret,
		time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute,
		appLog,
	)
	flightService := flights.NewFlightService(flightRepo, redisCache, appLog)

	bookingOpts := []booking.BookingServiceOption{
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	}
	if cfg.Booking.ReleaseSeatOnDelete {
		bookingOpts = append(bookingOpts, booking.WithSeatReleaseOnDelete())
	}
	bookingService := booking.NewBookingService(
		bookingRepo,
		flightRepo,
		producer,
		cfg.Kafka.BookingTopic,
		appLog,
		bookingOpts...,
	)
	reviewService := reviews.NewReviewService(flightRepo, appLog)

	err = bootstrap.Run(ctx, cfg, appLog, bootstrap.Services{
		Auth:    authService,
		Flights: flightService,
		Booking: bookingService,
		Reviews: reviewService,
		Users:   userRepo,
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
}
