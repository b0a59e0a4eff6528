package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction kinds, derived from the endpoints of a record
const (
	TransactionKindDeposit    = "deposit"
	TransactionKindWithdrawal = "withdrawal"
	TransactionKindTransfer   = "transfer"
)

// Transaction is one completed balance change. Records are created by the
// ledger and never modified afterwards.
//
// Amount is positive for deposits and transfers and negative for withdrawals.
// An empty SourceAccountID or DestinationAccountID stands for money entering
// or leaving the bank.
type Transaction struct {
	ID                   uint64          `json:"id"`
	SourceAccountID      string          `json:"source_account_id"`
	DestinationAccountID string          `json:"destination_account_id"`
	Amount               decimal.Decimal `json:"amount"`
	Timestamp            time.Time       `json:"timestamp"`
}

// Kind reports whether the record is a deposit, a withdrawal or a transfer.
func (t Transaction) Kind() string {
	switch {
	case t.DestinationAccountID != "":
		return TransactionKindTransfer
	case t.Amount.IsNegative():
		return TransactionKindWithdrawal
	default:
		return TransactionKindDeposit
	}
}

// Involves reports whether accountID is either endpoint of the record.
func (t Transaction) Involves(accountID string) bool {
	return t.SourceAccountID == accountID || t.DestinationAccountID == accountID
}

// Before orders records by timestamp, breaking ties by id.
func (t Transaction) Before(other Transaction) bool {
	if t.Timestamp.Equal(other.Timestamp) {
		return t.ID < other.ID
	}
	return t.Timestamp.Before(other.Timestamp)
}
