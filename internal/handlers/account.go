package handlers

import (
	"minibank/internal/middleware"
	"minibank/internal/models"
	"minibank/internal/services/ledger"
	"minibank/internal/utils"
	"minibank/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type AccountHandler struct {
	ledger ledger.Service
}

func NewAccountHandler(svc ledger.Service) *AccountHandler {
	return &AccountHandler{ledger: svc}
}

type amountInput struct {
	Amount decimal.Decimal `json:"amount"`
}

type transferInput struct {
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
}

// sessionAccount resolves the account id carried by a user session.
func sessionAccount(c *fiber.Ctx) (string, bool) {
	claims, ok := middleware.Claims(c)
	if !ok || claims.AccountID == "" {
		return "", false
	}
	return claims.AccountID, true
}

func (h *AccountHandler) GetAccount(c *fiber.Ctx) error {
	accountID, ok := sessionAccount(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	acc, found := h.ledger.LookupAccount(c.Context(), accountID)
	if !found {
		return ledgerError(c, ledger.ErrAccountNotFound)
	}

	return utils.Success(c, fiber.Map{
		"account": acc,
	})
}

func (h *AccountHandler) Deposit(c *fiber.Ctx) error {
	accountID, ok := sessionAccount(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input amountInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	tx, err := h.ledger.Deposit(c.Context(), accountID, input.Amount)
	if err != nil {
		return ledgerError(c, err)
	}

	return h.respondWithBalance(c, accountID, tx)
}

func (h *AccountHandler) Withdraw(c *fiber.Ctx) error {
	accountID, ok := sessionAccount(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input amountInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}

	tx, applied, err := h.ledger.Withdraw(c.Context(), accountID, input.Amount)
	if err != nil {
		return ledgerError(c, err)
	}
	if !applied {
		return utils.Conflict(c, "Insufficient funds")
	}

	return h.respondWithBalance(c, accountID, tx)
}

func (h *AccountHandler) Transfer(c *fiber.Ctx) error {
	accountID, ok := sessionAccount(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	var input transferInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request format")
	}
	if input.DestinationAccountID == "" {
		return utils.BadRequest(c, "Destination account is required")
	}

	tx, applied, err := h.ledger.Transfer(c.Context(), accountID, input.DestinationAccountID, input.Amount)
	if err != nil {
		return ledgerError(c, err)
	}
	if !applied {
		return utils.Conflict(c, "Insufficient funds")
	}

	return h.respondWithBalance(c, accountID, tx)
}

// GetTransactions returns the session account's history, oldest first.
func (h *AccountHandler) GetTransactions(c *fiber.Ctx) error {
	accountID, ok := sessionAccount(c)
	if !ok {
		return utils.Unauthorized(c, "invalid claims")
	}

	txs, err := h.ledger.History(c.Context(), accountID)
	if err != nil {
		return ledgerError(c, err)
	}

	p := pagination.ParseFromRequest(c)
	page := pagination.Slice(&p, txs)
	return utils.Success(c, pagination.Response(p, page))
}

func (h *AccountHandler) respondWithBalance(c *fiber.Ctx, accountID string, tx *models.Transaction) error {
	acc, found := h.ledger.LookupAccount(c.Context(), accountID)
	if !found {
		return ledgerError(c, ledger.ErrAccountNotFound)
	}
	return utils.Success(c, fiber.Map{
		"transaction": tx,
		"balance":     acc.Balance,
	})
}
