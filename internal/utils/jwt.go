package utils

import (
	"errors"
	"time"

	"minibank/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "minibank"

// TokenIssuer signs and verifies session tokens with an HMAC secret.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), ttl: ttl}
}

// GenerateToken issues a session token for accountID with the given role.
// Admin sessions pass an empty accountID.
func (i *TokenIssuer) GenerateToken(accountID, role string) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}

	now := time.Now()
	subject := accountID
	if subject == "" {
		subject = role
	}

	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   subject,
		},
		AccountID:   accountID,
		Role:        role,
		Permissions: models.GetDefaultPermissions(role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// ParseToken parses and validates a session token string.
func (i *TokenIssuer) ParseToken(tokenStr string) (*models.SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.secret, nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
