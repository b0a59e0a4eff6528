package handlers

import (
	"strconv"

	"minibank/internal/services/ledger"
	"minibank/internal/utils"
	"minibank/internal/utils/pagination"

	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	ledger ledger.Service
}

func NewAdminHandler(svc ledger.Service) *AdminHandler {
	return &AdminHandler{ledger: svc}
}

func (h *AdminHandler) CreateAccount(c *fiber.Ctx) error {
	var input struct {
		AccountID string `json:"account_id"`
		Password  string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	acc, err := h.ledger.CreateAccount(c.Context(), input.AccountID, input.Password)
	if err != nil {
		return ledgerError(c, err)
	}

	return utils.Created(c, fiber.Map{
		"account": acc,
	})
}

func (h *AdminHandler) ListAccounts(c *fiber.Ctx) error {
	accounts := h.ledger.ListAccounts(c.Context())

	p := pagination.ParseFromRequest(c)
	page := pagination.Slice(&p, accounts)
	return utils.Success(c, pagination.Response(p, page))
}

func (h *AdminHandler) GetAccount(c *fiber.Ctx) error {
	acc, found := h.ledger.LookupAccount(c.Context(), c.Params("id"))
	if !found {
		return ledgerError(c, ledger.ErrAccountNotFound)
	}

	return utils.Success(c, fiber.Map{
		"account": acc,
	})
}

func (h *AdminHandler) GetTransaction(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return utils.BadRequest(c, "Invalid transaction ID")
	}

	tx, found := h.ledger.FindTransaction(c.Context(), id)
	if !found {
		return utils.NotFound(c, "transaction not found")
	}

	return utils.Success(c, fiber.Map{
		"transaction": tx,
	})
}
