package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/yeep/bus-reservation/internal/config"
	"github.com/yeep/bus-reservation/internal/database"
	"github.com/yeep/bus-reservation/internal/handler"
	"github.com/yeep/bus-reservation/internal/notify"
	"github.com/yeep/bus-reservation/internal/queue"
	"github.com/yeep/bus-reservation/internal/repository"
	"github.com/yeep/bus-reservation/internal/router"
	"github.com/yeep/bus-reservation/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	bookings := repository.NewBookingRepo(db)
	codes := repository.NewCodeRepo(db)
	trips := repository.NewTripRepo(db)
	routes := repository.NewRouteRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	reservations := service.NewReservationService(db, bookings, codes, trips, routes, users)
	availability := service.NewAvailabilityService(trips, bookings)
	schedule := service.NewScheduleService(routes, trips, bookings)

	today := time.Now().UTC().Format("2006-01-02")
	if err := schedule.SeedTrips(ctx, today); err != nil {
		log.Fatalf("seed: %v", err)
	}
	if _, _, err := schedule.Purge(ctx, today); err != nil {
		log.Printf("purge: %v", err)
	}
	if n, err := tokens.PurgeExpired(ctx, 24*time.Hour); err != nil {
		log.Printf("token purge: %v", err)
	} else if n > 0 {
		log.Printf("token purge: removed %d expired rows", n)
	}

	// notification fan-out runs off the queue so booking requests never
	// wait on a provider
	mgr := notify.NewManager(
		notify.EmailNotifier{},
		notify.SMSNotifier{},
		notify.PushNotifier{},
	)
	go queue.StartBookingConsumer(mgr)

	rdb := config.NewRedisClient()
	rlCfg := config.LoadRateLimitConfig()
	cacheCfg := config.LoadCacheConfig()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	authH := handler.NewAuthHandler(cfg, users, tokens)
	tripH := handler.NewTripHandler(schedule, availability)
	bookingH := handler.NewBookingHandler(reservations)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, tripH, cacheCfg, rdb)
	router.RegisterCustomer(e, bookingH, cfg.JWTSecret, rlCfg, rdb)
	router.RegisterDriver(e, bookingH, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
