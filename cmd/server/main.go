package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/train-seat-booking/internal/allocation"
	"github.com/iliyamo/train-seat-booking/internal/config"
	"github.com/iliyamo/train-seat-booking/internal/database"
	"github.com/iliyamo/train-seat-booking/internal/handler"
	"github.com/iliyamo/train-seat-booking/internal/middleware"
	"github.com/iliyamo/train-seat-booking/internal/queue"
	"github.com/iliyamo/train-seat-booking/internal/repository"
	"github.com/iliyamo/train-seat-booking/internal/router"
	queue_publisher "github.com/iliyamo/train-seat-booking/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	seatRepo := repository.NewSeatRepo(db)
	userRepo := repository.NewUserRepo(db)
	reservationRepo := repository.NewReservationRepo(db)

	// Provision the fixed coach layout on first start; a no-op afterwards.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := seatRepo.SeedCoach(ctx, cfg.SeatRows, cfg.SeatsPerRow); err != nil {
		cancel()
		log.Fatalf("seed seats: %v", err)
	}
	cancel()

	alloc := allocation.NewService(seatRepo, cfg.MaxSeatsPerRequest, cfg.AllocRetryAttempts)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Background consumer mirrors reservations into logs/reservation.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo), cfg.JWTSecret)
	router.RegisterSeats(e,
		handler.NewSeatHandler(alloc, seatRepo, reservationRepo, queue_publisher.PublishSeatsReserved),
		cfg.JWTSecret, limiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
