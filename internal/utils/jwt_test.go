package utils

import (
	"testing"
	"time"

	"minibank/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)

	token, err := issuer.GenerateToken("A1", models.RoleUser)
	require.NoError(t, err)

	claims, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "A1", claims.AccountID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "A1", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.True(t, claims.HasPermission(models.PermissionAccountWrite))
	assert.False(t, claims.HasPermission(models.PermissionAccountCreate))
}

func TestTokenIssuer_Rejects(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewTokenIssuer("other", time.Minute).GenerateToken("A1", models.RoleUser)
		require.NoError(t, err)
		_, err = issuer.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := NewTokenIssuer("secret", -time.Minute).GenerateToken("A1", models.RoleUser)
		require.NoError(t, err)
		_, err = issuer.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.ParseToken("not-a-token")
		assert.Error(t, err)
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := NewTokenIssuer("", time.Minute).GenerateToken("A1", models.RoleUser)
		assert.Error(t, err)
	})
}

func TestTokenIssuer_AdminSubject(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	token, err := issuer.GenerateToken("", models.RoleAdmin)
	require.NoError(t, err)

	claims, err := issuer.ParseToken(token)
	require.NoError(t, err)
	assert.Empty(t, claims.AccountID)
	assert.Equal(t, models.RoleAdmin, claims.Subject)
	assert.True(t, claims.HasPermission(models.PermissionAccountCreate))
}
