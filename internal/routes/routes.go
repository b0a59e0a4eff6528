// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"time"

	"minibank/internal/config"
	"minibank/internal/handlers"
	"minibank/internal/middleware"
	"minibank/internal/models"
	"minibank/internal/repositories/cache"
	"minibank/internal/services/ledger"
	"minibank/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// SetupRoutes configures all application routes.
// It groups routes by role and applies permission middleware. A nil
// responses store disables Idempotency-Key handling.
func SetupRoutes(app *fiber.App, svc ledger.Service, responses cache.Store, cfg config.Config) {
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	auth := middleware.NewAuthMiddleware(tokens)

	authHandler := handlers.NewAuthHandler(svc, tokens, cfg.AdminUsername, cfg.AdminPassword)
	accountHandler := handlers.NewAccountHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc)

	idempotent := func(c *fiber.Ctx) error { return c.Next() }
	if responses != nil {
		idempotent = middleware.Idempotency(responses, cfg.IdempotencyTTL)
	}

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public routes
	api.Post("/login", loginLimiter(cfg.LoginRateLimit), authHandler.Login)
	api.Post("/admin/login", loginLimiter(cfg.LoginRateLimit), authHandler.AdminLogin)

	// Account holder routes
	account := api.Group("/account")
	account.Get("/", auth.Handler, middleware.HasPermission(models.PermissionAccountRead), accountHandler.GetAccount)
	account.Post("/deposit", auth.Handler, middleware.HasPermission(models.PermissionAccountWrite), idempotent, accountHandler.Deposit)
	account.Post("/withdraw", auth.Handler, middleware.HasPermission(models.PermissionAccountWrite), idempotent, accountHandler.Withdraw)
	account.Post("/transfer", auth.Handler, middleware.HasPermission(models.PermissionTransactionWrite), idempotent, accountHandler.Transfer)
	account.Get("/transactions", auth.Handler, middleware.HasPermission(models.PermissionAccountRead), accountHandler.GetTransactions)

	// Admin routes. Guarded per route so /api/admin/login stays public.
	admin := api.Group("/admin")
	admin.Post("/accounts", auth.Handler, middleware.HasPermission(models.PermissionAccountCreate), adminHandler.CreateAccount)
	admin.Get("/accounts", auth.Handler, middleware.HasPermission(models.PermissionReadAdmin), adminHandler.ListAccounts)
	admin.Get("/accounts/:id", auth.Handler, middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetAccount)
	admin.Get("/transactions/:id", auth.Handler, middleware.HasPermission(models.PermissionReadAdmin), adminHandler.GetTransaction)
}

func loginLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	})
}
