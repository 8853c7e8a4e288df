// Package ledger applies payment transactions to account balances.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sellsense/ef-sandbox/internal/app/domain/account"
	"github.com/sellsense/ef-sandbox/internal/app/domain/transaction"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
	"github.com/sellsense/ef-sandbox/pkg/logger"
)

// Direction of a balance movement.
type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// Defaults applied to transactions created without explicit counterparties.
const (
	defaultCreditorAccountID = "acc-001"
	defaultDebtorAccountID   = "acc-002"
	defaultCreditorName      = "SellSense Marketplace"
	defaultDebtorName        = "Mock Customer"
	fallbackRecipientName    = "Individual Recipient"
)

// Service owns balance movements and transaction processing.
type Service struct {
	accounts     storage.AccountStore
	balances     storage.BalanceStore
	recipients   storage.RecipientStore
	transactions storage.TransactionStore
	log          *logger.Logger
}

// New constructs a ledger service.
func New(accounts storage.AccountStore, balances storage.BalanceStore, recipients storage.RecipientStore, transactions storage.TransactionStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("ledger")
	}
	return &Service{
		accounts:     accounts,
		balances:     balances,
		recipients:   recipients,
		transactions: transactions,
		log:          log,
	}
}

// ApplyBalanceDelta moves amount in the given direction across every balance
// type of the account, clamping each at zero. Accounts without a balance
// record are skipped with a warning.
func (s *Service) ApplyBalanceDelta(ctx context.Context, accountID string, amount decimal.Decimal, direction Direction) error {
	bal, err := s.balances.GetBalanceByAccount(ctx, accountID)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.WithField("account_id", accountID).Warn("no balance record for account, skipping balance update")
		return nil
	}
	if err != nil {
		return err
	}

	delta := amount
	if direction == DirectionDebit {
		delta = amount.Neg()
	}

	for i := range bal.BalanceTypes {
		next := bal.BalanceTypes[i].Amount.Add(delta)
		if next.IsNegative() {
			next = decimal.Zero
		}
		bal.BalanceTypes[i].Amount = next
	}
	bal.Date = time.Now().UTC().Format("2006-01-02")

	if _, err := s.balances.UpdateBalance(ctx, bal); err != nil {
		return err
	}
	s.log.WithField("account_id", accountID).
		WithField("direction", string(direction)).
		WithField("amount", amount.String()).
		Debug("balance updated")
	return nil
}

// ProcessTransaction reflects a transaction in account balances. Only
// COMPLETED transactions move funds: the creditor account is credited and
// the debtor account is debited.
func (s *Service) ProcessTransaction(ctx context.Context, txn transaction.Transaction) error {
	if txn.Status != transaction.StatusCompleted {
		return nil
	}
	return s.applyTransaction(ctx, txn, false)
}

func (s *Service) applyTransaction(ctx context.Context, txn transaction.Transaction, reverse bool) error {
	amount := txn.Amount
	if reverse {
		amount = amount.Neg()
	}
	if err := s.ApplyBalanceDelta(ctx, txn.CreditorAccountID, amount, DirectionCredit); err != nil {
		return fmt.Errorf("credit %s: %w", txn.CreditorAccountID, err)
	}
	if err := s.ApplyBalanceDelta(ctx, txn.DebtorAccountID, amount, DirectionDebit); err != nil {
		return fmt.Errorf("debit %s: %w", txn.DebtorAccountID, err)
	}
	return nil
}

// CreateInput carries the caller-supplied fields for a new transaction.
// Everything omitted is defaulted.
type CreateInput struct {
	Type              string
	Status            transaction.Status
	Amount            decimal.Decimal
	Currency          string
	RecipientID       string
	CreditorAccountID string
	DebtorAccountID   string
	CreditorName      string
	DebtorName        string
	Reference         string
	Description       string
	PaymentDate       string
}

// CreateTransaction persists a new transaction and, when it completes
// immediately, applies it to account balances. A recipient id resolves the
// creditor account by matching the recipient's bank account number against
// platform account routing information.
func (s *Service) CreateTransaction(ctx context.Context, input CreateInput) (transaction.Transaction, error) {
	if !input.Amount.IsPositive() {
		return transaction.Transaction{}, fmt.Errorf("amount must be positive")
	}

	txn := transaction.Transaction{
		ID:                     fmt.Sprintf("txn-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8]),
		Type:                   input.Type,
		Status:                 input.Status,
		Amount:                 input.Amount,
		Currency:               input.Currency,
		PaymentDate:            input.PaymentDate,
		CreditorAccountID:      input.CreditorAccountID,
		DebtorAccountID:        input.DebtorAccountID,
		CreditorName:           input.CreditorName,
		DebtorName:             input.DebtorName,
		RecipientID:            input.RecipientID,
		PostingVersion:         1,
		TransactionReferenceID: input.Reference,
		Description:            input.Description,
	}

	if txn.Type == "" {
		txn.Type = transaction.TypeACH
	}
	if txn.Status == "" {
		txn.Status = transaction.StatusCompleted
	}
	if txn.Currency == "" {
		txn.Currency = "USD"
	}
	if txn.PaymentDate == "" {
		txn.PaymentDate = time.Now().UTC().Format("2006-01-02")
	}
	if txn.Status == transaction.StatusCompleted {
		txn.EffectiveDate = txn.PaymentDate
	}
	if txn.TransactionReferenceID == "" {
		txn.TransactionReferenceID = fmt.Sprintf("Sale #%05d", rand.Intn(90000)+10000)
	}
	if txn.Description == "" {
		txn.Description = "New transaction"
	}

	if txn.CreditorAccountID == "" {
		txn.CreditorAccountID = defaultCreditorAccountID
	}
	if txn.DebtorAccountID == "" {
		txn.DebtorAccountID = defaultDebtorAccountID
	}

	if input.RecipientID != "" {
		accountID, name, err := s.resolveCreditor(ctx, input.RecipientID)
		if err != nil {
			return transaction.Transaction{}, err
		}
		if accountID != "" {
			txn.CreditorAccountID = accountID
		}
		if name != "" {
			txn.CreditorName = name
		}
	}

	if txn.DebtorName == "" {
		if acct, err := s.accounts.GetAccount(ctx, txn.DebtorAccountID); err == nil && acct.Label != "" {
			txn.DebtorName = acct.Label
		} else {
			txn.DebtorName = defaultDebtorName
		}
	}
	if txn.CreditorName == "" {
		txn.CreditorName = defaultCreditorName
	}

	created, err := s.transactions.CreateTransaction(ctx, txn)
	if err != nil {
		return transaction.Transaction{}, err
	}

	if err := s.ProcessTransaction(ctx, created); err != nil {
		return transaction.Transaction{}, err
	}

	s.log.WithField("transaction_id", created.ID).
		WithField("status", string(created.Status)).
		WithField("amount", created.Amount.String()).
		Info("transaction created")
	return created, nil
}

// resolveCreditor maps a recipient to the platform account its bank account
// number routes to, plus the display name of the counterparty.
func (s *Service) resolveCreditor(ctx context.Context, recipientID string) (string, string, error) {
	rcp, err := s.recipients.GetRecipient(ctx, recipientID)
	if err != nil {
		return "", "", fmt.Errorf("resolve recipient: %w", err)
	}

	name := rcp.DisplayName()
	if name == "" {
		name = fallbackRecipientName
	}

	if rcp.Account == nil || rcp.Account.Number == "" {
		return "", name, nil
	}

	accounts, err := s.accounts.ListAccounts(ctx)
	if err != nil {
		return "", "", err
	}
	for _, acct := range accounts {
		if acct.PaymentRoutingInformation != nil && acct.PaymentRoutingInformation.AccountNumber == rcp.Account.Number {
			return acct.ID, name, nil
		}
	}
	return "", name, nil
}

// UpdateTransactionStatus transitions a transaction. Completing a pending
// transaction applies it to balances; un-completing a completed one reverses
// the movement. Each transition moves funds exactly once.
func (s *Service) UpdateTransactionStatus(ctx context.Context, id string, status transaction.Status) (transaction.Transaction, error) {
	txn, err := s.transactions.GetTransaction(ctx, id)
	if err != nil {
		return transaction.Transaction{}, err
	}

	previous := txn.Status
	txn.Status = status
	if status == transaction.StatusCompleted && txn.EffectiveDate == "" {
		txn.EffectiveDate = time.Now().UTC().Format("2006-01-02")
	}

	updated, err := s.transactions.UpdateTransaction(ctx, txn)
	if err != nil {
		return transaction.Transaction{}, err
	}

	switch {
	case previous != transaction.StatusCompleted && status == transaction.StatusCompleted:
		if err := s.applyTransaction(ctx, updated, false); err != nil {
			return transaction.Transaction{}, err
		}
	case previous == transaction.StatusCompleted && status != transaction.StatusCompleted:
		if err := s.applyTransaction(ctx, updated, true); err != nil {
			return transaction.Transaction{}, err
		}
	}

	s.log.WithField("transaction_id", id).
		WithField("from", string(previous)).
		WithField("to", string(status)).
		Info("transaction status changed")
	return updated, nil
}

// Filter narrows transaction listings.
type Filter struct {
	AccountID string
	Status    string
	Type      string
}

// ListTransactions returns transactions matching the filter. The account
// filter matches either side of the payment.
func (s *Service) ListTransactions(ctx context.Context, filter Filter) ([]transaction.Transaction, error) {
	all, err := s.transactions.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]transaction.Transaction, 0, len(all))
	for _, txn := range all {
		if filter.AccountID != "" && txn.CreditorAccountID != filter.AccountID && txn.DebtorAccountID != filter.AccountID {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(string(txn.Status), filter.Status) {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(txn.Type, filter.Type) {
			continue
		}
		result = append(result, txn)
	}
	return result, nil
}

// GetTransaction fetches a single transaction.
func (s *Service) GetTransaction(ctx context.Context, id string) (transaction.Transaction, error) {
	return s.transactions.GetTransaction(ctx, id)
}

// ListAccounts returns every platform account.
func (s *Service) ListAccounts(ctx context.Context) ([]account.Account, error) {
	return s.accounts.ListAccounts(ctx)
}

// GetAccount fetches a single platform account.
func (s *Service) GetAccount(ctx context.Context, id string) (account.Account, error) {
	return s.accounts.GetAccount(ctx, id)
}

// GetAccountBalance fetches the balance record for an account.
func (s *Service) GetAccountBalance(ctx context.Context, accountID string) (account.Balance, error) {
	return s.balances.GetBalanceByAccount(ctx, accountID)
}
