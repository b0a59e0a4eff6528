// Package shell implements the line-oriented console front end. Each input
// line is a command followed by whitespace-separated arguments.
package shell

import (
	"bufio"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"minibank/internal/models"
	"minibank/internal/services/ledger"

	"github.com/shopspring/decimal"
)

const prompt = "> "

var errUsage = errors.New("usage")

// session is the logged-in principal. An empty session has neither field set.
type session struct {
	accountID string
	admin     bool
}

type Dispatcher struct {
	ledger        ledger.Service
	adminUsername string
	adminPassword string

	session session
}

func NewDispatcher(svc ledger.Service, adminUsername, adminPassword string) *Dispatcher {
	return &Dispatcher{
		ledger:        svc,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

// Run reads commands from in until exit, end of input or ctx is done.
func (d *Dispatcher) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Execute(ctx, out, scanner.Text()) {
			return nil
		}
		fmt.Fprint(out, prompt)
	}
	return scanner.Err()
}

// Execute runs a single command line and reports whether the shell should stop.
func (d *Dispatcher) Execute(ctx context.Context, out io.Writer, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	var err error
	switch cmd {
	case "exit", "quit":
		fmt.Fprintln(out, "Exiting...")
		return true
	case "help":
		d.help(out)
	case "login":
		err = d.login(ctx, out, args)
	case "admin":
		err = d.adminLogin(out, args)
	case "logout":
		d.session = session{}
		fmt.Fprintln(out, "Logged out.")
	case "balance":
		err = d.balance(ctx, out)
	case "deposit":
		err = d.deposit(ctx, out, args)
	case "withdraw":
		err = d.withdraw(ctx, out, args)
	case "transfer":
		err = d.transfer(ctx, out, args)
	case "history":
		err = d.history(ctx, out)
	case "create":
		err = d.createAccount(ctx, out, args)
	case "account":
		err = d.accountDetails(ctx, out, args)
	case "txn":
		err = d.transactionDetails(ctx, out, args)
	case "accounts":
		err = d.listAccounts(ctx, out)
	default:
		fmt.Fprintln(out, "Invalid choice. Type 'help' for a list of commands.")
	}

	if err != nil {
		d.reportError(out, cmd, err)
	}
	return false
}

func (d *Dispatcher) reportError(out io.Writer, cmd string, err error) {
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(out, "Usage: %s\n", usage[cmd])
	case errors.Is(err, errNotLoggedIn), errors.Is(err, errNotAdmin):
		fmt.Fprintln(out, capitalize(err.Error())+".")
	default:
		fmt.Fprintf(out, "Error: %v\n", err)
	}
}

var (
	errNotLoggedIn = errors.New("please log in to an account first")
	errNotAdmin    = errors.New("admin login required")
)

var usage = map[string]string{
	"login":    "login <account> <password>",
	"admin":    "admin <username> <password>",
	"deposit":  "deposit <amount>",
	"withdraw": "withdraw <amount>",
	"transfer": "transfer <destination> <amount>",
	"create":   "create <account> <password>",
	"account":  "account <account>",
	"txn":      "txn <transaction id>",
}

func (d *Dispatcher) help(out io.Writer) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "login <account> <password>\tlog in as an account holder")
	fmt.Fprintln(w, "admin <username> <password>\tlog in as admin")
	fmt.Fprintln(w, "logout\tend the current session")
	fmt.Fprintln(w, "balance\tshow the account balance")
	fmt.Fprintln(w, "deposit <amount>\tadd funds")
	fmt.Fprintln(w, "withdraw <amount>\tremove funds")
	fmt.Fprintln(w, "transfer <destination> <amount>\tmove funds to another account")
	fmt.Fprintln(w, "history\tlist the account's transactions")
	fmt.Fprintln(w, "create <account> <password>\t(admin) open an account")
	fmt.Fprintln(w, "account <account>\t(admin) show account details")
	fmt.Fprintln(w, "txn <transaction id>\t(admin) show a transaction")
	fmt.Fprintln(w, "accounts\t(admin) list all accounts")
	fmt.Fprintln(w, "exit\tleave the shell")
	w.Flush()
}

func (d *Dispatcher) login(ctx context.Context, out io.Writer, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	acc, err := d.ledger.Authenticate(ctx, args[0], args[1])
	if err != nil {
		fmt.Fprintln(out, "Invalid account number or password.")
		return nil
	}
	d.session = session{accountID: acc.ID}
	fmt.Fprintf(out, "Logged in as %s.\n", acc.ID)
	return nil
}

func (d *Dispatcher) adminLogin(out io.Writer, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	userOK := subtle.ConstantTimeCompare([]byte(args[0]), []byte(d.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(args[1]), []byte(d.adminPassword)) == 1
	if !userOK || !passOK {
		fmt.Fprintln(out, "Invalid username or password.")
		return nil
	}
	d.session = session{admin: true}
	fmt.Fprintln(out, "Logged in as admin.")
	return nil
}

func (d *Dispatcher) requireAccount() (string, error) {
	if d.session.accountID == "" {
		return "", errNotLoggedIn
	}
	return d.session.accountID, nil
}

func (d *Dispatcher) requireAdmin() error {
	if !d.session.admin {
		return errNotAdmin
	}
	return nil
}

func (d *Dispatcher) balance(ctx context.Context, out io.Writer) error {
	accountID, err := d.requireAccount()
	if err != nil {
		return err
	}
	return d.printAccount(ctx, out, accountID)
}

func (d *Dispatcher) deposit(ctx context.Context, out io.Writer, args []string) error {
	accountID, err := d.requireAccount()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return errUsage
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	if _, err := d.ledger.Deposit(ctx, accountID, amount); err != nil {
		return err
	}
	fmt.Fprintln(out, "Deposit successful.")
	return nil
}

func (d *Dispatcher) withdraw(ctx context.Context, out io.Writer, args []string) error {
	accountID, err := d.requireAccount()
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return errUsage
	}
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}
	_, ok, err := d.ledger.Withdraw(ctx, accountID, amount)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Insufficient balance.")
		return nil
	}
	fmt.Fprintln(out, "Withdrawal successful.")
	return nil
}

func (d *Dispatcher) transfer(ctx context.Context, out io.Writer, args []string) error {
	accountID, err := d.requireAccount()
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return errUsage
	}
	amount, err := parseAmount(args[1])
	if err != nil {
		return err
	}
	_, ok, err := d.ledger.Transfer(ctx, accountID, args[0], amount)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "Transfer failed: insufficient balance.")
		return nil
	}
	fmt.Fprintln(out, "Transfer successful.")
	return nil
}

func (d *Dispatcher) history(ctx context.Context, out io.Writer) error {
	accountID, err := d.requireAccount()
	if err != nil {
		return err
	}
	txs, err := d.ledger.History(ctx, accountID)
	if err != nil {
		return err
	}
	if len(txs) == 0 {
		fmt.Fprintln(out, "No transactions.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tFROM\tTO\tAMOUNT\tTIME")
	for _, tx := range txs {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Kind(), dash(tx.SourceAccountID), dash(tx.DestinationAccountID),
			tx.Amount.StringFixed(ledger.AmountPrecision), tx.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func (d *Dispatcher) createAccount(ctx context.Context, out io.Writer, args []string) error {
	if err := d.requireAdmin(); err != nil {
		return err
	}
	if len(args) != 2 {
		return errUsage
	}
	if _, err := d.ledger.CreateAccount(ctx, args[0], args[1]); err != nil {
		return err
	}
	fmt.Fprintln(out, "User account created successfully.")
	return nil
}

func (d *Dispatcher) accountDetails(ctx context.Context, out io.Writer, args []string) error {
	if err := d.requireAdmin(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errUsage
	}
	return d.printAccount(ctx, out, args[0])
}

func (d *Dispatcher) transactionDetails(ctx context.Context, out io.Writer, args []string) error {
	if err := d.requireAdmin(); err != nil {
		return err
	}
	if len(args) != 1 {
		return errUsage
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return errUsage
	}
	tx, ok := d.ledger.FindTransaction(ctx, id)
	if !ok {
		fmt.Fprintln(out, "Transaction not found.")
		return nil
	}
	printTransaction(out, tx)
	return nil
}

func (d *Dispatcher) listAccounts(ctx context.Context, out io.Writer) error {
	if err := d.requireAdmin(); err != nil {
		return err
	}
	accounts := d.ledger.ListAccounts(ctx)
	if len(accounts) == 0 {
		fmt.Fprintln(out, "No accounts.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ACCOUNT\tBALANCE")
	for _, acc := range accounts {
		fmt.Fprintf(w, "%s\t%s\n", acc.ID, acc.Balance.StringFixed(ledger.AmountPrecision))
	}
	return w.Flush()
}

func (d *Dispatcher) printAccount(ctx context.Context, out io.Writer, accountID string) error {
	acc, ok := d.ledger.LookupAccount(ctx, accountID)
	if !ok {
		return ledger.ErrAccountNotFound
	}
	fmt.Fprintf(out, "Account Number: %s\n", acc.ID)
	fmt.Fprintf(out, "Balance: %s\n", acc.Balance.StringFixed(ledger.AmountPrecision))
	return nil
}

func printTransaction(out io.Writer, tx *models.Transaction) {
	fmt.Fprintf(out, "Transaction ID: %d\n", tx.ID)
	fmt.Fprintf(out, "Source Account Number: %s\n", dash(tx.SourceAccountID))
	fmt.Fprintf(out, "Destination Account Number: %s\n", dash(tx.DestinationAccountID))
	fmt.Fprintf(out, "Amount: %s\n", tx.Amount.StringFixed(ledger.AmountPrecision))
	fmt.Fprintf(out, "Timestamp: %s\n", tx.Timestamp.Format(time.RFC3339))
}

func parseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ledger.ErrInvalidAmount
	}
	return amount, nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
