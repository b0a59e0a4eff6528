package repositories

import (
	"context"
	"fmt"

	"minibank/internal/models"

	"gorm.io/gorm"
)

// GormStore keeps history snapshots in the account_histories table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Save deletes the account's rows and inserts the new snapshot in one
// database transaction.
func (s *GormStore) Save(ctx context.Context, accountID string, txs []models.Transaction) error {
	rows := models.NewAccountHistory(accountID, txs)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&models.AccountHistory{}).Error; err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to insert history: %w", err)
		}
		return nil
	})
}

// Load returns the stored snapshot of accountID in order.
func (s *GormStore) Load(ctx context.Context, accountID string) ([]models.AccountHistory, error) {
	var rows []models.AccountHistory
	err := s.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return rows, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}
