package cache

import (
	"fmt"
	"strings"
)

type EntityType string

const (
	EntityIdempotency EntityType = "idempotency"
	EntityLock        EntityType = "lock"
)

// GenerateKey creates a standardized cache key
func GenerateKey(entity EntityType, parts ...string) string {
	return fmt.Sprintf("%s:%s", entity, strings.Join(parts, ":"))
}

// IdempotencyKey scopes a client supplied key to the principal that sent it
// and the route it was sent to.
func IdempotencyKey(principal, route, key string) string {
	return GenerateKey(EntityIdempotency, principal, route, key)
}

// LockKey guards in-flight processing of an idempotency key.
func LockKey(principal, route, key string) string {
	return GenerateKey(EntityLock, principal, route, key)
}

