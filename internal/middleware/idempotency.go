package middleware

import (
	"log"
	"time"

	"minibank/internal/repositories/cache"
	"minibank/internal/utils"
	cachekeys "minibank/internal/utils/cache"

	"github.com/gofiber/fiber/v2"
)

const (
	// IdempotencyHeader is the standard HTTP header for idempotency keys
	IdempotencyHeader = "Idempotency-Key"

	// IdempotencyHitHeader marks a replayed response
	IdempotencyHitHeader = "X-Idempotency-Hit"

	// LockTimeout prevents indefinite locks if a request crashes
	LockTimeout = 10 * time.Second
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

// Idempotency replays the stored response when a request repeats an
// Idempotency-Key already seen from the same session on the same route.
// Only 2xx responses are stored. Requests without the header pass straight
// through.
//
// It must run after AuthMiddleware.Handler so keys are scoped per principal.
func Idempotency(store cache.Store, ttl time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get(IdempotencyHeader)
		if key == "" {
			return c.Next()
		}

		principal := "anonymous"
		if claims, ok := Claims(c); ok {
			principal = claims.Subject
		}
		route := c.Path()
		cacheKey := cachekeys.IdempotencyKey(principal, route, key)
		lockKey := cachekeys.LockKey(principal, route, key)
		ctx := c.Context()

		if done, err := replay(c, store, cacheKey); done || err != nil {
			return err
		}

		acquired, err := store.Lock(ctx, lockKey, LockTimeout)
		if err != nil {
			log.Printf("[Idempotency] Lock acquisition error: %v", err)
			return utils.InternalError(c, "Internal server error")
		}
		if !acquired {
			log.Printf("[Idempotency] Concurrent request detected: %s", key)
			return utils.Conflict(c, "A request with this idempotency key is currently being processed")
		}
		defer func() {
			if err := store.Delete(ctx, lockKey); err != nil {
				log.Printf("[Idempotency] Failed to release lock: %v", err)
			}
		}()

		// The first holder may have stored its response and released the
		// lock between our lookup and Lock.
		if done, err := replay(c, store, cacheKey); done || err != nil {
			return err
		}

		if err := c.Next(); err != nil {
			return err
		}

		status := c.Response().StatusCode()
		if status >= fiber.StatusOK && status < fiber.StatusMultipleChoices {
			resp := cachedResponse{Status: status, Body: string(c.Response().Body())}
			if err := store.SetWithTTL(ctx, cacheKey, resp, ttl); err != nil {
				log.Printf("[Idempotency] Failed to cache response: %v", err)
			}
		}
		return nil
	}
}

// replay writes the stored response for cacheKey if there is one and reports
// whether it did.
func replay(c *fiber.Ctx, store cache.Store, cacheKey string) (bool, error) {
	var cached cachedResponse
	found, err := store.Get(c.Context(), cacheKey, &cached)
	if err != nil {
		log.Printf("[Idempotency] Cache lookup error: %v", err)
		return true, utils.InternalError(c, "Internal server error")
	}
	if !found {
		return false, nil
	}
	log.Printf("[Idempotency] Cache hit for key: %s", cacheKey)
	c.Set(IdempotencyHitHeader, "true")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return true, c.Status(cached.Status).SendString(cached.Body)
}
