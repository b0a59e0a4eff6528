package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountHistory is one row of an account's persisted history snapshot in
// postgres. Position keeps the snapshot order.
type AccountHistory struct {
	ID                   uint            `gorm:"primarykey"`
	AccountID            string          `gorm:"size:64;not null;index:idx_account_position,priority:1"`
	Position             int             `gorm:"not null;index:idx_account_position,priority:2"`
	TransactionID        uint64          `gorm:"not null"`
	SourceAccountID      string          `gorm:"size:64"`
	DestinationAccountID string          `gorm:"size:64"`
	Amount               decimal.Decimal `gorm:"type:numeric(20,2);not null"`
	Timestamp            time.Time       `gorm:"not null"`
	CreatedAt            time.Time
}

// NewAccountHistory converts a snapshot into rows for accountID.
func NewAccountHistory(accountID string, txs []Transaction) []AccountHistory {
	rows := make([]AccountHistory, 0, len(txs))
	for i, tx := range txs {
		rows = append(rows, AccountHistory{
			AccountID:            accountID,
			Position:             i,
			TransactionID:        tx.ID,
			SourceAccountID:      tx.SourceAccountID,
			DestinationAccountID: tx.DestinationAccountID,
			Amount:               tx.Amount,
			Timestamp:            tx.Timestamp,
		})
	}
	return rows
}
