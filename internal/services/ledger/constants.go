package ledger

import "regexp"

// AmountPrecision is the number of fractional digits an amount may carry.
const AmountPrecision = 2

// Operation names used for metrics and logs
const (
	OperationCreateAccount  = "create_account"
	OperationDeposit        = "deposit"
	OperationWithdraw       = "withdraw"
	OperationTransfer       = "transfer"
	OperationPersistHistory = "persist_history"
)

// Operation results
const (
	ResultSuccess  = "success"
	ResultDeclined = "declined"
	ResultFailed   = "failed"
)

// Account ids key the history artifact, so they are restricted to a
// filename-safe alphabet.
var accountIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
