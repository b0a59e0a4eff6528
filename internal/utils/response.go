package utils

import "github.com/gofiber/fiber/v2"

// Handlers reply with the payload itself on success and with
// {"error": message} on failure. The ledger's error mapping lives in the
// handlers package; these helpers only fix the status and body shape.

// Respond writes data as JSON with the given status.
func Respond(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(data)
}

func Success(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusOK, data)
}

// Created is used for new accounts.
func Created(c *fiber.Ctx, data interface{}) error {
	return Respond(c, fiber.StatusCreated, data)
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return Respond(c, status, fiber.Map{"error": message})
}

// BadRequest covers malformed input and rejected amounts.
func BadRequest(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusBadRequest, message)
}

// Unauthorized covers failed logins and missing or expired tokens.
func Unauthorized(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusUnauthorized, message)
}

// Forbidden is for sessions whose role lacks the route's permission.
func Forbidden(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusForbidden, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusNotFound, message)
}

// Conflict reports a declined ledger operation, a duplicate account, or an
// idempotency key still in flight.
func Conflict(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusConflict, message)
}

// InternalError hides the cause; callers log it first.
func InternalError(c *fiber.Ctx, message string) error {
	return errorResponse(c, fiber.StatusInternalServerError, message)
}
