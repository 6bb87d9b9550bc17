package main // Entry point package

import (
	"log" // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/admin-dashboard/internal/config"
	"github.com/iliyamo/admin-dashboard/internal/database"
	"github.com/iliyamo/admin-dashboard/internal/handler"
	"github.com/iliyamo/admin-dashboard/internal/middleware"
	"github.com/iliyamo/admin-dashboard/internal/queue"
	"github.com/iliyamo/admin-dashboard/internal/repository"
	"github.com/iliyamo/admin-dashboard/internal/router"
)

func main() {
	cfg := config.Load() // Load .env + environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	users := repository.NewUserRepo(db)

	// Redis is optional: when unreachable the limiter becomes a no-op.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	limiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Audit trail consumer runs for the life of the process.
	go queue.StartAuditConsumer()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), users, cfg.JWTSecret, limiter)
	router.RegisterUsers(e, handler.NewUserHandler(users), users, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
