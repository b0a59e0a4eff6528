// Package main is the entry point for the HTTP server.
// It loads configuration, opens the history sink, builds the ledger
// and starts serving the API.
package main

import (
	"context"
	"log"

	"minibank/internal/config"
	"minibank/internal/repositories"
	"minibank/internal/routes"
	"minibank/internal/services/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// Load environment variables
	config.LoadEnv()
	cfg := config.Load()

	store, err := repositories.NewHistoryStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open %s history store: %v", cfg.HistoryBackend, err)
	}
	log.Printf("✅ Transaction history backend: %s", cfg.HistoryBackend)

	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("⚠️ Failed to close history store: %v", err)
		}
	}()

	responses, err := repositories.NewIdempotencyStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to open %s idempotency store: %v", cfg.IdempotencyBackend, err)
	}
	if responses != nil {
		defer func() {
			if err := responses.Close(); err != nil {
				log.Printf("⚠️ Failed to close idempotency store: %v", err)
			}
		}()
	}

	svc := ledger.NewService(store, ledger.Config{}, &ledger.NoopMetricsCollector{})

	// Create Fiber app
	app := fiber.New()

	app.Use(recover.New())

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,HEAD",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, svc, responses, cfg)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("Server stopped: %v", err)
	}
}
