package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/gigstage/music-event-backend/internal/config"
	"github.com/gigstage/music-event-backend/internal/database"
	"github.com/gigstage/music-event-backend/internal/handler"
	"github.com/gigstage/music-event-backend/internal/middleware"
	"github.com/gigstage/music-event-backend/internal/monitoring"
	"github.com/gigstage/music-event-backend/internal/repository"
	"github.com/gigstage/music-event-backend/internal/router"
	queue_publisher "github.com/gigstage/music-event-backend/internal/service"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	events := repository.NewEventRepo(db)
	bookings := repository.NewBookingRepo(db)
	contracts := repository.NewContractRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Use(monitoring.RequestMetrics())

	// Rate limiting degrades to a no-op when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, rate limiting disabled")
	}
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))

	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users),
		Users:     handler.NewUserHandler(users),
		Events:    handler.NewEventHandler(events, users),
		Bookings:  handler.NewBookingHandler(bookings, events, users, queue_publisher.NewBookingPublisher(cfg.RabbitURL)),
		Contracts: handler.NewContractHandler(contracts, users, events),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
