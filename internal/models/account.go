package models

import (
	"crypto/subtle"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveAmount is returned by Account.Deposit for amounts <= 0.
var ErrNonPositiveAmount = errors.New("amount must be greater than zero")

// Account is a single bank account. The balance never goes below zero.
type Account struct {
	ID         string          `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	credential string
}

// NewAccount creates an account with a zero balance.
func NewAccount(id, credential string) *Account {
	return &Account{
		ID:         id,
		Balance:    decimal.Zero,
		credential: credential,
	}
}

func (a *Account) GetID() string {
	return a.ID
}

func (a *Account) GetBalance() decimal.Decimal {
	return a.Balance
}

// Authenticate reports whether candidate matches the stored password.
func (a *Account) Authenticate(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(a.credential), []byte(candidate)) == 1
}

// Deposit adds amount to the balance.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrNonPositiveAmount
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw subtracts amount when the balance covers it. It returns false and
// leaves the balance untouched otherwise.
func (a *Account) Withdraw(amount decimal.Decimal) bool {
	if amount.GreaterThan(a.Balance) {
		return false
	}
	a.Balance = a.Balance.Sub(amount)
	return true
}

// Transfer withdraws amount from a and deposits it into recipient. Nothing
// changes if the withdrawal is declined.
func (a *Account) Transfer(amount decimal.Decimal, recipient *Account) bool {
	if !a.Withdraw(amount) {
		return false
	}
	if err := recipient.Deposit(amount); err != nil {
		a.Balance = a.Balance.Add(amount)
		return false
	}
	return true
}

// Snapshot returns a copy that shares no state with a. The credential is kept
// so the copy can still authenticate.
func (a *Account) Snapshot() Account {
	return *a
}
