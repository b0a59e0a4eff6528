package repositories

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"minibank/internal/config"
	"minibank/internal/models"
)

// HistoryStore rewrites the persisted history of one account.
type HistoryStore interface {
	Save(ctx context.Context, accountID string, txs []models.Transaction) error
	Close() error
}

// NewHistoryStore opens the sink selected by cfg.HistoryBackend.
func NewHistoryStore(ctx context.Context, cfg config.Config) (HistoryStore, error) {
	switch cfg.HistoryBackend {
	case "", config.BackendFile:
		return NewFileStore(cfg.HistoryDir), nil
	case config.BackendPostgres:
		db, err := OpenPostgres(cfg.DB)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db), nil
	case config.BackendRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown history backend %q", cfg.HistoryBackend)
	}
}

// FormatHistoryLine renders tx as "id,source,destination,amount,timestamp".
// Empty endpoints stay empty fields. There is no trailing newline.
func FormatHistoryLine(tx models.Transaction) string {
	var b strings.Builder
	b.WriteString(strconv.FormatUint(tx.ID, 10))
	b.WriteByte(',')
	b.WriteString(tx.SourceAccountID)
	b.WriteByte(',')
	b.WriteString(tx.DestinationAccountID)
	b.WriteByte(',')
	b.WriteString(tx.Amount.StringFixed(2))
	b.WriteByte(',')
	b.WriteString(tx.Timestamp.UTC().Format(time.RFC3339Nano))
	return b.String()
}
