package ledger

import (
	"context"

	"minibank/internal/models"

	"github.com/shopspring/decimal"
)

// Service defines the ledger contract used by every front end
type Service interface {
	// Account management
	CreateAccount(ctx context.Context, accountID, credential string) (*models.Account, error)
	LookupAccount(ctx context.Context, accountID string) (*models.Account, bool)
	Authenticate(ctx context.Context, accountID, credential string) (*models.Account, error)
	ListAccounts(ctx context.Context) []models.Account

	// Balance operations
	Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*models.Transaction, error)
	Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*models.Transaction, bool, error)
	Transfer(ctx context.Context, sourceID, destinationID string, amount decimal.Decimal) (*models.Transaction, bool, error)

	// Transaction queries
	FindTransaction(ctx context.Context, id uint64) (*models.Transaction, bool)
	History(ctx context.Context, accountID string) ([]models.Transaction, error)
}

// HistoryStore persists the full history snapshot of one account. Save
// replaces whatever was stored for accountID before.
type HistoryStore interface {
	Save(ctx context.Context, accountID string, txs []models.Transaction) error
}
