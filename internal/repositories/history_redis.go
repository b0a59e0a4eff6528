package repositories

import (
	"context"
	"fmt"

	"minibank/internal/models"

	"github.com/redis/go-redis/v9"
)

// HistoryKeyPrefix namespaces the per-account history lists.
const HistoryKeyPrefix = "history:"

// RedisStore keeps each account's history as a redis list of formatted lines.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Key returns the list key of accountID.
func (s *RedisStore) Key(accountID string) string {
	return HistoryKeyPrefix + accountID
}

// Save replaces the list with DEL and RPUSH inside one MULTI/EXEC.
func (s *RedisStore) Save(ctx context.Context, accountID string, txs []models.Transaction) error {
	key := s.Key(accountID)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(txs) == 0 {
			return nil
		}
		lines := make([]interface{}, 0, len(txs))
		for _, tx := range txs {
			lines = append(lines, FormatHistoryLine(tx))
		}
		pipe.RPush(ctx, key, lines...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save history to redis: %w", err)
	}
	return nil
}

// Load returns the stored lines of accountID in order.
func (s *RedisStore) Load(ctx context.Context, accountID string) ([]string, error) {
	lines, err := s.client.LRange(ctx, s.Key(accountID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load history from redis: %w", err)
	}
	return lines, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
