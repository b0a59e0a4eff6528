package ledger

import "errors"

// Service errors
var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrSameAccount        = errors.New("cannot transfer to the same account")
	ErrInvalidAccountID   = errors.New("invalid account id")
	ErrInvalidCredential  = errors.New("password must not be empty")
	ErrInvalidCredentials = errors.New("invalid account number or password")
)
