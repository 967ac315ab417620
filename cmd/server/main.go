package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/venue-table-reservation/internal/availability" // Availability engine
	"github.com/iliyamo/venue-table-reservation/internal/config"       // Internal config loader
	"github.com/iliyamo/venue-table-reservation/internal/database"     // MySQL connection helper
	"github.com/iliyamo/venue-table-reservation/internal/handler"      // HTTP handlers
	"github.com/iliyamo/venue-table-reservation/internal/middleware"   // Rate limit + cache middleware
	"github.com/iliyamo/venue-table-reservation/internal/queue"        // Booking event consumer
	"github.com/iliyamo/venue-table-reservation/internal/repository"   // DB repositories
	"github.com/iliyamo/venue-table-reservation/internal/router"       // Internal router setup
)

func main() {
	// Load .env if present; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	// Redis backs both the token-bucket rate limiter and the response cache.
	rdb := config.NewRedisClient()

	// Repositories share the one connection pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	merchants := repository.NewMerchantRepo(db)
	tables := repository.NewTableRepo(db)
	windows := repository.NewWindowRepo(db)
	policies := repository.NewPolicyRepo(db)
	bookings := repository.NewBookingRepo(db)

	// The availability engine reads tables, windows and booking counts
	// through the repositories.
	engine := availability.NewEngine(tables, windows, bookings)

	authH := handler.NewAuthHandler(cfg, users, tokens, merchants)
	merchantH := handler.NewMerchantHandler(merchants, tables, windows, policies, bookings)
	customerH := handler.NewCustomerHandler(merchants, tables, windows, policies, bookings)
	availH := handler.NewAvailabilityHandler(merchants, policies, engine)

	e := echo.New() // Create Echo instance
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, availH, middleware.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterMerchant(e, merchantH, cfg.JWTSecret)
	router.RegisterCustomer(e, customerH, cfg.JWTSecret)

	// Consume booking events in the background; the consumer reconnects on
	// broker failures and never brings the server down.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
