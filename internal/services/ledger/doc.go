/*
Package ledger provides the in-memory bank ledger.

The ledger owns every account and the append-only list of transaction records.
It handles:
- Account creation and lookup
- Password checks
- Deposits, withdrawals and transfers
- Transaction lookup by id
- Per-account history snapshots

Usage:

	store := repositories.NewFileStore("Transaction_history")
	svc := ledger.NewService(store, ledger.Config{}, nil)

	acc, err := svc.CreateAccount(ctx, "A1", "pw1")
	tx, err := svc.Deposit(ctx, "A1", decimal.NewFromInt(100))
	tx, ok, err := svc.Withdraw(ctx, "A1", decimal.NewFromInt(30))
	tx, ok, err := svc.Transfer(ctx, "A1", "A2", decimal.NewFromInt(40))

Each operation checks that its accounts exist before it checks the amount,
so an unknown account reports ErrAccountNotFound whatever the amount.

Insufficient funds is not an error: Withdraw and Transfer report it with
ok == false and leave every balance and the record list untouched.

History:

After each committed operation the ledger rewrites the full, time-ordered
history of every account it touched through a HistoryStore. Write failures
are logged and counted but never returned; the in-memory change stands.
*/
package ledger
