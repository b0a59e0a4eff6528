package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Config holds configuration for ledger operations
type Config struct {
	// Clock stamps new transaction records. Defaults to time.Now.
	Clock func() time.Time
}

// MetricsCollector defines the interface for collecting ledger metrics
type MetricsCollector interface {
	// Operation metrics
	RecordOperationDuration(operation string, duration time.Duration)
	RecordOperationResult(operation, result string)

	// Error metrics
	RecordError(operation, errType string)

	// Transaction metrics
	RecordTransaction(kind string, amount decimal.Decimal)
}
