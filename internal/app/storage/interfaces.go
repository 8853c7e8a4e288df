package storage

import (
	"context"
	"errors"

	"github.com/sellsense/ef-sandbox/internal/app/domain/account"
	"github.com/sellsense/ef-sandbox/internal/app/domain/client"
	"github.com/sellsense/ef-sandbox/internal/app/domain/docrequest"
	"github.com/sellsense/ef-sandbox/internal/app/domain/party"
	"github.com/sellsense/ef-sandbox/internal/app/domain/recipient"
	"github.com/sellsense/ef-sandbox/internal/app/domain/transaction"
)

// Sentinel errors shared by all store implementations. Implementations wrap
// them with %w so callers can classify failures without string matching.
var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicateID = errors.New("already exists")
)

// ClientStore persists onboarding client records.
type ClientStore interface {
	CreateClient(ctx context.Context, c client.Client) (client.Client, error)
	UpdateClient(ctx context.Context, c client.Client) (client.Client, error)
	GetClient(ctx context.Context, id string) (client.Client, error)
	ListClients(ctx context.Context) ([]client.Client, error)
	DeleteAllClients(ctx context.Context) error
}

// PartyStore persists party records.
type PartyStore interface {
	CreateParty(ctx context.Context, p party.Party) (party.Party, error)
	UpdateParty(ctx context.Context, p party.Party) (party.Party, error)
	GetParty(ctx context.Context, id string) (party.Party, error)
	ListParties(ctx context.Context) ([]party.Party, error)
	DeleteAllParties(ctx context.Context) error
}

// DocumentRequestStore persists document requests.
type DocumentRequestStore interface {
	CreateDocumentRequest(ctx context.Context, dr docrequest.DocumentRequest) (docrequest.DocumentRequest, error)
	UpdateDocumentRequest(ctx context.Context, dr docrequest.DocumentRequest) (docrequest.DocumentRequest, error)
	GetDocumentRequest(ctx context.Context, id string) (docrequest.DocumentRequest, error)
	ListDocumentRequests(ctx context.Context, clientID string) ([]docrequest.DocumentRequest, error)
	DeleteAllDocumentRequests(ctx context.Context) error
}

// RecipientStore persists recipients and linked accounts.
type RecipientStore interface {
	CreateRecipient(ctx context.Context, rcp recipient.Recipient) (recipient.Recipient, error)
	UpdateRecipient(ctx context.Context, rcp recipient.Recipient) (recipient.Recipient, error)
	GetRecipient(ctx context.Context, id string) (recipient.Recipient, error)
	ListRecipients(ctx context.Context) ([]recipient.Recipient, error)
	DeleteAllRecipients(ctx context.Context) error
}

// AccountStore persists platform accounts.
type AccountStore interface {
	CreateAccount(ctx context.Context, acct account.Account) (account.Account, error)
	GetAccount(ctx context.Context, id string) (account.Account, error)
	ListAccounts(ctx context.Context) ([]account.Account, error)
	DeleteAllAccounts(ctx context.Context) error
}

// BalanceStore persists account balances, one record per account.
type BalanceStore interface {
	CreateBalance(ctx context.Context, bal account.Balance) (account.Balance, error)
	UpdateBalance(ctx context.Context, bal account.Balance) (account.Balance, error)
	GetBalanceByAccount(ctx context.Context, accountID string) (account.Balance, error)
	ListBalances(ctx context.Context) ([]account.Balance, error)
	DeleteAllBalances(ctx context.Context) error
}

// TransactionStore persists payment transactions.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, txn transaction.Transaction) (transaction.Transaction, error)
	UpdateTransaction(ctx context.Context, txn transaction.Transaction) (transaction.Transaction, error)
	GetTransaction(ctx context.Context, id string) (transaction.Transaction, error)
	ListTransactions(ctx context.Context) ([]transaction.Transaction, error)
	DeleteAllTransactions(ctx context.Context) error
}
