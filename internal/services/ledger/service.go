package ledger

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"minibank/internal/models"

	"github.com/shopspring/decimal"
)

type service struct {
	// mu guards accounts, txs and nextID.
	mu       sync.RWMutex
	accounts map[string]*models.Account
	txs      []models.Transaction
	nextID   uint64

	// persistMu serializes history writes. Snapshots are derived while it is
	// held so a slow writer can never overwrite a newer snapshot.
	persistMu sync.Mutex

	store   HistoryStore
	config  Config
	metrics MetricsCollector
}

// NewService creates a new ledger service
func NewService(store HistoryStore, config Config, metrics MetricsCollector) Service {
	if store == nil {
		panic("history store is required")
	}

	if config.Clock == nil {
		config.Clock = time.Now
	}

	// Metrics is optional, create no-op collector if nil
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	return &service{
		accounts: make(map[string]*models.Account),
		store:    store,
		config:   config,
		metrics:  metrics,
	}
}

func (s *service) CreateAccount(ctx context.Context, accountID, credential string) (*models.Account, error) {
	if !accountIDPattern.MatchString(accountID) {
		s.metrics.RecordError(OperationCreateAccount, "invalid_account_id")
		return nil, ErrInvalidAccountID
	}
	if credential == "" {
		s.metrics.RecordError(OperationCreateAccount, "invalid_credential")
		return nil, ErrInvalidCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[accountID]; exists {
		s.metrics.RecordOperationResult(OperationCreateAccount, ResultDeclined)
		return nil, ErrDuplicateAccount
	}

	acc := models.NewAccount(accountID, credential)
	s.accounts[accountID] = acc
	s.metrics.RecordOperationResult(OperationCreateAccount, ResultSuccess)
	log.Printf("Account %s created", accountID)

	snap := acc.Snapshot()
	return &snap, nil
}

func (s *service) LookupAccount(ctx context.Context, accountID string) (*models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, false
	}
	snap := acc.Snapshot()
	return &snap, true
}

func (s *service) Authenticate(ctx context.Context, accountID, credential string) (*models.Account, error) {
	acc, ok := s.LookupAccount(ctx, accountID)
	if !ok || !acc.Authenticate(credential) {
		return nil, ErrInvalidCredentials
	}
	return acc, nil
}

func (s *service) ListAccounts(ctx context.Context) []models.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		out = append(out, acc.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *service) Deposit(ctx context.Context, accountID string, amount decimal.Decimal) (*models.Transaction, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OperationDeposit, time.Since(start)) }()

	tx, err := s.applyDeposit(accountID, amount)
	if err != nil {
		s.recordFailure(OperationDeposit, err)
		return nil, err
	}

	s.metrics.RecordOperationResult(OperationDeposit, ResultSuccess)
	s.metrics.RecordTransaction(tx.Kind(), tx.Amount)
	s.persistHistory(ctx, accountID)
	return &tx, nil
}

func (s *service) Withdraw(ctx context.Context, accountID string, amount decimal.Decimal) (*models.Transaction, bool, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OperationWithdraw, time.Since(start)) }()

	tx, ok, err := s.applyWithdraw(accountID, amount)
	if err != nil {
		s.recordFailure(OperationWithdraw, err)
		return nil, false, err
	}
	if !ok {
		s.metrics.RecordOperationResult(OperationWithdraw, ResultDeclined)
		return nil, false, nil
	}

	s.metrics.RecordOperationResult(OperationWithdraw, ResultSuccess)
	s.metrics.RecordTransaction(tx.Kind(), tx.Amount)
	s.persistHistory(ctx, accountID)
	return &tx, true, nil
}

func (s *service) Transfer(ctx context.Context, sourceID, destinationID string, amount decimal.Decimal) (*models.Transaction, bool, error) {
	start := time.Now()
	defer func() { s.metrics.RecordOperationDuration(OperationTransfer, time.Since(start)) }()

	tx, ok, err := s.applyTransfer(sourceID, destinationID, amount)
	if err != nil {
		s.recordFailure(OperationTransfer, err)
		return nil, false, err
	}
	if !ok {
		s.metrics.RecordOperationResult(OperationTransfer, ResultDeclined)
		return nil, false, nil
	}

	s.metrics.RecordOperationResult(OperationTransfer, ResultSuccess)
	s.metrics.RecordTransaction(tx.Kind(), tx.Amount)
	s.persistHistory(ctx, sourceID, destinationID)
	return &tx, true, nil
}

func (s *service) FindTransaction(ctx context.Context, id uint64) (*models.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tx := range s.txs {
		if tx.ID == id {
			found := tx
			return &found, true
		}
	}
	return nil, false
}

func (s *service) History(ctx context.Context, accountID string) ([]models.Transaction, error) {
	if _, ok := s.LookupAccount(ctx, accountID); !ok {
		return nil, ErrAccountNotFound
	}
	return s.history(accountID), nil
}

func (s *service) applyDeposit(accountID string, amount decimal.Decimal) (models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return models.Transaction{}, ErrAccountNotFound
	}
	if err := validateAmount(amount); err != nil {
		return models.Transaction{}, err
	}
	if err := acc.Deposit(amount); err != nil {
		return models.Transaction{}, ErrInvalidAmount
	}
	return s.record(accountID, "", amount), nil
}

func (s *service) applyWithdraw(accountID string, amount decimal.Decimal) (models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return models.Transaction{}, false, ErrAccountNotFound
	}
	if err := validateAmount(amount); err != nil {
		return models.Transaction{}, false, err
	}
	if !acc.Withdraw(amount) {
		return models.Transaction{}, false, nil
	}
	return s.record(accountID, "", amount.Neg()), true, nil
}

func (s *service) applyTransfer(sourceID, destinationID string, amount decimal.Decimal) (models.Transaction, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	source, ok := s.accounts[sourceID]
	if !ok {
		return models.Transaction{}, false, ErrAccountNotFound
	}
	destination, ok := s.accounts[destinationID]
	if !ok {
		return models.Transaction{}, false, ErrAccountNotFound
	}
	if err := validateAmount(amount); err != nil {
		return models.Transaction{}, false, err
	}
	if sourceID == destinationID {
		return models.Transaction{}, false, ErrSameAccount
	}
	if !source.Transfer(amount, destination) {
		return models.Transaction{}, false, nil
	}
	return s.record(sourceID, destinationID, amount), true, nil
}

// record appends a new transaction. Callers must hold s.mu.
func (s *service) record(sourceID, destinationID string, amount decimal.Decimal) models.Transaction {
	s.nextID++
	tx := models.Transaction{
		ID:                   s.nextID,
		SourceAccountID:      sourceID,
		DestinationAccountID: destinationID,
		Amount:               amount,
		Timestamp:            s.config.Clock(),
	}
	s.txs = append(s.txs, tx)
	return tx
}

// history derives the time-ordered records touching accountID.
func (s *service) history(accountID string) []models.Transaction {
	s.mu.RLock()
	out := make([]models.Transaction, 0)
	for _, tx := range s.txs {
		if tx.Involves(accountID) {
			out = append(out, tx)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// persistHistory rewrites the stored history of each account. Failures are
// logged and never returned.
func (s *service) persistHistory(ctx context.Context, accountIDs ...string) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()

	for _, accountID := range accountIDs {
		start := time.Now()
		snapshot := s.history(accountID)
		if err := s.store.Save(ctx, accountID, snapshot); err != nil {
			log.Printf("Error saving transaction history for account %s: %v", accountID, err)
			s.metrics.RecordError(OperationPersistHistory, "persistence_failure")
			continue
		}
		s.metrics.RecordOperationDuration(OperationPersistHistory, time.Since(start))
	}
}

// recordFailure counts a rejected operation. Bad amounts are input errors,
// everything else is a failed result.
func (s *service) recordFailure(operation string, err error) {
	if errors.Is(err, ErrInvalidAmount) {
		s.metrics.RecordError(operation, "invalid_amount")
		return
	}
	s.metrics.RecordOperationResult(operation, ResultFailed)
}

func validateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Round(AmountPrecision)) {
		return ErrInvalidAmount
	}
	return nil
}
