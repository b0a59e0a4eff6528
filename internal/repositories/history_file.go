package repositories

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"minibank/internal/models"
)

// HistoryFileExt is appended to the account id to name its history file.
const HistoryFileExt = ".txt"

// FileStore keeps one text file per account under dir. Every Save replaces
// the file through a temporary file and a rename.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the history file of accountID.
func (s *FileStore) Path(accountID string) string {
	return filepath.Join(s.dir, accountID+HistoryFileExt)
}

func (s *FileStore) Save(ctx context.Context, accountID string, txs []models.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	var buf bytes.Buffer
	for _, tx := range txs {
		buf.WriteString(FormatHistoryLine(tx))
		buf.WriteByte('\n')
	}

	path := s.Path(accountID)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
