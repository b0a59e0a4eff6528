package handlers

import (
	"errors"
	"log"

	"minibank/internal/services/ledger"
	"minibank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ledgerError maps ledger errors onto HTTP responses.
func ledgerError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrAccountNotFound):
		return utils.NotFound(c, err.Error())
	case errors.Is(err, ledger.ErrDuplicateAccount):
		return utils.Conflict(c, err.Error())
	case errors.Is(err, ledger.ErrInvalidCredentials):
		return utils.Unauthorized(c, err.Error())
	case errors.Is(err, ledger.ErrInvalidAmount),
		errors.Is(err, ledger.ErrSameAccount),
		errors.Is(err, ledger.ErrInvalidAccountID),
		errors.Is(err, ledger.ErrInvalidCredential):
		return utils.BadRequest(c, err.Error())
	default:
		log.Printf("Unexpected ledger error: %v", err)
		return utils.InternalError(c, "internal error")
	}
}
