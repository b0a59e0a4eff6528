package models

import "github.com/golang-jwt/jwt/v5"

// Session roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Application permissions
const (
	// User permissions
	PermissionAccountRead      = "account:read"
	PermissionAccountWrite     = "account:write"
	PermissionTransactionRead  = "transaction:read"
	PermissionTransactionWrite = "transaction:write"

	// Admin permissions
	PermissionAccountCreate = "admin:account-create"
	PermissionReadAdmin     = "admin:read"
)

// SessionClaims is the JWT payload issued after a successful login. AccountID
// is empty for admin sessions.
type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID   string   `json:"account_id,omitempty"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions"`
}

// HasPermission checks if the claims include a specific permission
func (c *SessionClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RoleAdmin:
		return []string{
			PermissionReadAdmin,
			PermissionAccountCreate,
			PermissionTransactionRead,
		}
	case RoleUser:
		return []string{
			PermissionAccountRead,
			PermissionAccountWrite,
			PermissionTransactionRead,
			PermissionTransactionWrite,
		}
	default:
		return []string{}
	}
}
