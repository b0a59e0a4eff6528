package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"minibank/internal/repositories"
	"minibank/internal/services/ledger"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T) (*Dispatcher, ledger.Service) {
	t.Helper()
	svc := ledger.NewService(repositories.NewFileStore(t.TempDir()), ledger.Config{}, nil)
	return NewDispatcher(svc, "admin", "admin"), svc
}

func run(t *testing.T, d *Dispatcher, script ...string) string {
	t.Helper()
	var out bytes.Buffer
	err := d.Run(context.Background(), strings.NewReader(strings.Join(script, "\n")), &out)
	require.NoError(t, err)
	return out.String()
}

func TestDispatcher_AdminCreatesAccount(t *testing.T) {
	d, svc := newTestDispatcher(t)

	out := run(t, d,
		"admin admin admin",
		"create A1 p1",
		"create A1 p1",
		"accounts",
	)

	assert.Contains(t, out, "Logged in as admin.")
	assert.Contains(t, out, "User account created successfully.")
	assert.Contains(t, out, "Error: account already exists")
	assert.Contains(t, out, "A1")

	_, ok := svc.LookupAccount(context.Background(), "A1")
	assert.True(t, ok)
}

func TestDispatcher_UserSession(t *testing.T) {
	d, svc := newTestDispatcher(t)
	ctx := context.Background()
	_, err := svc.CreateAccount(ctx, "A1", "p1")
	require.NoError(t, err)
	_, err = svc.CreateAccount(ctx, "A2", "p2")
	require.NoError(t, err)

	out := run(t, d,
		"login A1 p1",
		"deposit 100",
		"withdraw 30",
		"withdraw 500",
		"transfer A2 50",
		"transfer A2 500",
		"balance",
		"history",
	)

	assert.Contains(t, out, "Logged in as A1.")
	assert.Contains(t, out, "Deposit successful.")
	assert.Contains(t, out, "Withdrawal successful.")
	assert.Contains(t, out, "Insufficient balance.")
	assert.Contains(t, out, "Transfer successful.")
	assert.Contains(t, out, "Transfer failed: insufficient balance.")
	assert.Contains(t, out, "Balance: 20.00")
	assert.Contains(t, out, "withdrawal")
	assert.Contains(t, out, "-30.00")

	a2, ok := svc.LookupAccount(ctx, "A2")
	require.True(t, ok)
	assert.True(t, a2.Balance.Equal(decimal.NewFromInt(50)))
}

func TestDispatcher_Guards(t *testing.T) {
	d, svc := newTestDispatcher(t)
	_, err := svc.CreateAccount(context.Background(), "A1", "p1")
	require.NoError(t, err)

	out := run(t, d,
		"balance",
		"create A2 p2",
		"login A1 wrong",
		"admin admin nope",
		"login A1 p1",
		"accounts",
		"deposit",
		"deposit abc",
		"deposit -5",
		"transfer A1 5",
		"transfer ZZ 5",
		"bogus",
	)

	assert.Contains(t, out, "Please log in to an account first.")
	assert.Contains(t, out, "Admin login required.")
	assert.Contains(t, out, "Invalid account number or password.")
	assert.Contains(t, out, "Invalid username or password.")
	assert.Contains(t, out, "Usage: deposit <amount>")
	assert.Contains(t, out, "Error: invalid amount")
	assert.Contains(t, out, "Error: cannot transfer to the same account")
	assert.Contains(t, out, "Error: account not found")
	assert.Contains(t, out, "Invalid choice.")

	_, ok := svc.LookupAccount(context.Background(), "A2")
	assert.False(t, ok)
}

func TestDispatcher_TransactionDetails(t *testing.T) {
	d, svc := newTestDispatcher(t)
	ctx := context.Background()
	_, err := svc.CreateAccount(ctx, "A1", "p1")
	require.NoError(t, err)
	_, err = svc.Deposit(ctx, "A1", decimal.NewFromInt(100))
	require.NoError(t, err)

	out := run(t, d,
		"admin admin admin",
		"txn 1",
		"txn 99",
		"txn x",
		"account A1",
		"account nobody",
	)

	assert.Contains(t, out, "Transaction ID: 1")
	assert.Contains(t, out, "Source Account Number: A1")
	assert.Contains(t, out, "Destination Account Number: -")
	assert.Contains(t, out, "Amount: 100.00")
	assert.Contains(t, out, "Transaction not found.")
	assert.Contains(t, out, "Usage: txn <transaction id>")
	assert.Contains(t, out, "Account Number: A1")
	assert.Contains(t, out, "Balance: 100.00")
	assert.Contains(t, out, "Error: account not found")
}

func TestDispatcher_ExitStopsReading(t *testing.T) {
	d, _ := newTestDispatcher(t)

	out := run(t, d, "help", "exit", "admin admin admin")

	assert.Contains(t, out, "transfer <destination> <amount>")
	assert.Contains(t, out, "Exiting...")
	assert.NotContains(t, out, "Logged in as admin.")
}

func TestDispatcher_Logout(t *testing.T) {
	d, svc := newTestDispatcher(t)
	_, err := svc.CreateAccount(context.Background(), "A1", "p1")
	require.NoError(t, err)

	out := run(t, d, "login A1 p1", "logout", "balance")

	assert.Contains(t, out, "Logged out.")
	assert.Contains(t, out, "Please log in to an account first.")
}
