package handlers

import (
	"crypto/subtle"
	"errors"
	"log"

	"minibank/internal/models"
	"minibank/internal/services/ledger"
	"minibank/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	ledger        ledger.Service
	tokens        *utils.TokenIssuer
	adminUsername string
	adminPassword string
}

func NewAuthHandler(svc ledger.Service, tokens *utils.TokenIssuer, adminUsername, adminPassword string) *AuthHandler {
	return &AuthHandler{
		ledger:        svc,
		tokens:        tokens,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// Login authenticates an account holder and returns a session token
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		AccountID string `json:"account_id"`
		Password  string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	if input.AccountID == "" || input.Password == "" {
		return utils.BadRequest(c, "Account number and password are required")
	}

	acc, err := h.ledger.Authenticate(c.Context(), input.AccountID, input.Password)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidCredentials) {
			return utils.Unauthorized(c, "Invalid account number or password")
		}
		return utils.InternalError(c, "Authentication failed")
	}

	token, err := h.tokens.GenerateToken(acc.ID, models.RoleUser)
	if err != nil {
		log.Printf("Failed to generate token for account %s: %v", acc.ID, err)
		return utils.InternalError(c, "Authentication failed")
	}

	return utils.Success(c, fiber.Map{
		"access_token": token,
		"account": fiber.Map{
			"account_id":  acc.ID,
			"role":        models.RoleUser,
			"permissions": models.GetDefaultPermissions(models.RoleUser),
		},
	})
}

// AdminLogin checks the configured admin credentials
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	userOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(input.Password), []byte(h.adminPassword)) == 1
	if !userOK || !passOK {
		return utils.Unauthorized(c, "Invalid username or password")
	}

	token, err := h.tokens.GenerateToken("", models.RoleAdmin)
	if err != nil {
		log.Printf("Failed to generate admin token: %v", err)
		return utils.InternalError(c, "Authentication failed")
	}

	return utils.Success(c, fiber.Map{
		"access_token": token,
		"role":         models.RoleAdmin,
		"permissions":  models.GetDefaultPermissions(models.RoleAdmin),
	})
}
