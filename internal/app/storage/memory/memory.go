package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sellsense/ef-sandbox/internal/app/domain/account"
	"github.com/sellsense/ef-sandbox/internal/app/domain/client"
	"github.com/sellsense/ef-sandbox/internal/app/domain/docrequest"
	"github.com/sellsense/ef-sandbox/internal/app/domain/party"
	"github.com/sellsense/ef-sandbox/internal/app/domain/recipient"
	"github.com/sellsense/ef-sandbox/internal/app/domain/transaction"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
)

// Store is an in-memory implementation of the storage interfaces. It is safe
// for concurrent use; all state is lost when the process exits. Lists are
// returned in insertion order.
type Store struct {
	mu sync.RWMutex

	clients     map[string]client.Client
	clientOrder []string

	parties    map[string]party.Party
	partyOrder []string

	docRequests     map[string]docrequest.DocumentRequest
	docRequestOrder []string

	recipients     map[string]recipient.Recipient
	recipientOrder []string

	accounts     map[string]account.Account
	accountOrder []string

	balances     map[string]account.Balance
	balanceOrder []string

	transactions     map[string]transaction.Transaction
	transactionOrder []string
}

var _ storage.ClientStore = (*Store)(nil)
var _ storage.PartyStore = (*Store)(nil)
var _ storage.DocumentRequestStore = (*Store)(nil)
var _ storage.RecipientStore = (*Store)(nil)
var _ storage.AccountStore = (*Store)(nil)
var _ storage.BalanceStore = (*Store)(nil)
var _ storage.TransactionStore = (*Store)(nil)

// New creates an empty store.
func New() *Store {
	return &Store{
		clients:      make(map[string]client.Client),
		parties:      make(map[string]party.Party),
		docRequests:  make(map[string]docrequest.DocumentRequest),
		recipients:   make(map[string]recipient.Recipient),
		accounts:     make(map[string]account.Account),
		balances:     make(map[string]account.Balance),
		transactions: make(map[string]transaction.Transaction),
	}
}

func stamp(createdAt time.Time) (time.Time, time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		createdAt = now
	}
	return createdAt, now
}

// ClientStore implementation --------------------------------------------------

func (s *Store) CreateClient(_ context.Context, c client.Client) (client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.clients[c.ID]; exists {
		return client.Client{}, fmt.Errorf("client %s: %w", c.ID, storage.ErrDuplicateID)
	}

	c.CreatedAt, c.UpdatedAt = stamp(c.CreatedAt)
	c = cloneClient(c)
	s.clients[c.ID] = c
	s.clientOrder = append(s.clientOrder, c.ID)
	return cloneClient(c), nil
}

func (s *Store) UpdateClient(_ context.Context, c client.Client) (client.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.clients[c.ID]
	if !ok {
		return client.Client{}, fmt.Errorf("client %s: %w", c.ID, storage.ErrNotFound)
	}

	c.CreatedAt = original.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	c = cloneClient(c)
	s.clients[c.ID] = c
	return cloneClient(c), nil
}

func (s *Store) GetClient(_ context.Context, id string) (client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.clients[id]
	if !ok {
		return client.Client{}, fmt.Errorf("client %s: %w", id, storage.ErrNotFound)
	}
	return cloneClient(c), nil
}

func (s *Store) ListClients(_ context.Context) ([]client.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]client.Client, 0, len(s.clientOrder))
	for _, id := range s.clientOrder {
		result = append(result, cloneClient(s.clients[id]))
	}
	return result, nil
}

func (s *Store) DeleteAllClients(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clients = make(map[string]client.Client)
	s.clientOrder = nil
	return nil
}

// PartyStore implementation ---------------------------------------------------

func (s *Store) CreateParty(_ context.Context, p party.Party) (party.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.parties[p.ID]; exists {
		return party.Party{}, fmt.Errorf("party %s: %w", p.ID, storage.ErrDuplicateID)
	}

	p.CreatedAt, p.UpdatedAt = stamp(p.CreatedAt)
	p = cloneParty(p)
	s.parties[p.ID] = p
	s.partyOrder = append(s.partyOrder, p.ID)
	return cloneParty(p), nil
}

func (s *Store) UpdateParty(_ context.Context, p party.Party) (party.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.parties[p.ID]
	if !ok {
		return party.Party{}, fmt.Errorf("party %s: %w", p.ID, storage.ErrNotFound)
	}

	p.CreatedAt = original.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	p = cloneParty(p)
	s.parties[p.ID] = p
	return cloneParty(p), nil
}

func (s *Store) GetParty(_ context.Context, id string) (party.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.parties[id]
	if !ok {
		return party.Party{}, fmt.Errorf("party %s: %w", id, storage.ErrNotFound)
	}
	return cloneParty(p), nil
}

func (s *Store) ListParties(_ context.Context) ([]party.Party, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]party.Party, 0, len(s.partyOrder))
	for _, id := range s.partyOrder {
		result = append(result, cloneParty(s.parties[id]))
	}
	return result, nil
}

func (s *Store) DeleteAllParties(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.parties = make(map[string]party.Party)
	s.partyOrder = nil
	return nil
}

// DocumentRequestStore implementation -----------------------------------------

func (s *Store) CreateDocumentRequest(_ context.Context, dr docrequest.DocumentRequest) (docrequest.DocumentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.docRequests[dr.ID]; exists {
		return docrequest.DocumentRequest{}, fmt.Errorf("document request %s: %w", dr.ID, storage.ErrDuplicateID)
	}

	dr.CreatedAt, dr.UpdatedAt = stamp(dr.CreatedAt)
	dr = cloneDocRequest(dr)
	s.docRequests[dr.ID] = dr
	s.docRequestOrder = append(s.docRequestOrder, dr.ID)
	return cloneDocRequest(dr), nil
}

func (s *Store) UpdateDocumentRequest(_ context.Context, dr docrequest.DocumentRequest) (docrequest.DocumentRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.docRequests[dr.ID]
	if !ok {
		return docrequest.DocumentRequest{}, fmt.Errorf("document request %s: %w", dr.ID, storage.ErrNotFound)
	}

	dr.CreatedAt = original.CreatedAt
	dr.UpdatedAt = time.Now().UTC()
	dr = cloneDocRequest(dr)
	s.docRequests[dr.ID] = dr
	return cloneDocRequest(dr), nil
}

func (s *Store) GetDocumentRequest(_ context.Context, id string) (docrequest.DocumentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dr, ok := s.docRequests[id]
	if !ok {
		return docrequest.DocumentRequest{}, fmt.Errorf("document request %s: %w", id, storage.ErrNotFound)
	}
	return cloneDocRequest(dr), nil
}

func (s *Store) ListDocumentRequests(_ context.Context, clientID string) ([]docrequest.DocumentRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]docrequest.DocumentRequest, 0)
	for _, id := range s.docRequestOrder {
		dr := s.docRequests[id]
		if clientID == "" || dr.ClientID == clientID {
			result = append(result, cloneDocRequest(dr))
		}
	}
	return result, nil
}

func (s *Store) DeleteAllDocumentRequests(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docRequests = make(map[string]docrequest.DocumentRequest)
	s.docRequestOrder = nil
	return nil
}

// RecipientStore implementation -----------------------------------------------

func (s *Store) CreateRecipient(_ context.Context, rcp recipient.Recipient) (recipient.Recipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recipients[rcp.ID]; exists {
		return recipient.Recipient{}, fmt.Errorf("recipient %s: %w", rcp.ID, storage.ErrDuplicateID)
	}

	rcp.CreatedAt, rcp.UpdatedAt = stamp(rcp.CreatedAt)
	rcp = cloneRecipient(rcp)
	s.recipients[rcp.ID] = rcp
	s.recipientOrder = append(s.recipientOrder, rcp.ID)
	return cloneRecipient(rcp), nil
}

func (s *Store) UpdateRecipient(_ context.Context, rcp recipient.Recipient) (recipient.Recipient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.recipients[rcp.ID]
	if !ok {
		return recipient.Recipient{}, fmt.Errorf("recipient %s: %w", rcp.ID, storage.ErrNotFound)
	}

	rcp.CreatedAt = original.CreatedAt
	rcp.UpdatedAt = time.Now().UTC()
	rcp = cloneRecipient(rcp)
	s.recipients[rcp.ID] = rcp
	return cloneRecipient(rcp), nil
}

func (s *Store) GetRecipient(_ context.Context, id string) (recipient.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rcp, ok := s.recipients[id]
	if !ok {
		return recipient.Recipient{}, fmt.Errorf("recipient %s: %w", id, storage.ErrNotFound)
	}
	return cloneRecipient(rcp), nil
}

func (s *Store) ListRecipients(_ context.Context) ([]recipient.Recipient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]recipient.Recipient, 0, len(s.recipientOrder))
	for _, id := range s.recipientOrder {
		result = append(result, cloneRecipient(s.recipients[id]))
	}
	return result, nil
}

func (s *Store) DeleteAllRecipients(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipients = make(map[string]recipient.Recipient)
	s.recipientOrder = nil
	return nil
}

// AccountStore implementation -------------------------------------------------

func (s *Store) CreateAccount(_ context.Context, acct account.Account) (account.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[acct.ID]; exists {
		return account.Account{}, fmt.Errorf("account %s: %w", acct.ID, storage.ErrDuplicateID)
	}

	acct.CreatedAt, acct.UpdatedAt = stamp(acct.CreatedAt)
	acct = cloneAccount(acct)
	s.accounts[acct.ID] = acct
	s.accountOrder = append(s.accountOrder, acct.ID)
	return cloneAccount(acct), nil
}

func (s *Store) GetAccount(_ context.Context, id string) (account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acct, ok := s.accounts[id]
	if !ok {
		return account.Account{}, fmt.Errorf("account %s: %w", id, storage.ErrNotFound)
	}
	return cloneAccount(acct), nil
}

func (s *Store) ListAccounts(_ context.Context) ([]account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]account.Account, 0, len(s.accountOrder))
	for _, id := range s.accountOrder {
		result = append(result, cloneAccount(s.accounts[id]))
	}
	return result, nil
}

func (s *Store) DeleteAllAccounts(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accounts = make(map[string]account.Account)
	s.accountOrder = nil
	return nil
}

// BalanceStore implementation -------------------------------------------------

func (s *Store) CreateBalance(_ context.Context, bal account.Balance) (account.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.balances[bal.AccountID]; exists {
		return account.Balance{}, fmt.Errorf("balance for account %s: %w", bal.AccountID, storage.ErrDuplicateID)
	}

	bal.UpdatedAt = time.Now().UTC()
	bal = cloneBalance(bal)
	s.balances[bal.AccountID] = bal
	s.balanceOrder = append(s.balanceOrder, bal.AccountID)
	return cloneBalance(bal), nil
}

func (s *Store) UpdateBalance(_ context.Context, bal account.Balance) (account.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.balances[bal.AccountID]; !ok {
		return account.Balance{}, fmt.Errorf("balance for account %s: %w", bal.AccountID, storage.ErrNotFound)
	}

	bal.UpdatedAt = time.Now().UTC()
	bal = cloneBalance(bal)
	s.balances[bal.AccountID] = bal
	return cloneBalance(bal), nil
}

func (s *Store) GetBalanceByAccount(_ context.Context, accountID string) (account.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bal, ok := s.balances[accountID]
	if !ok {
		return account.Balance{}, fmt.Errorf("balance for account %s: %w", accountID, storage.ErrNotFound)
	}
	return cloneBalance(bal), nil
}

func (s *Store) ListBalances(_ context.Context) ([]account.Balance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]account.Balance, 0, len(s.balanceOrder))
	for _, id := range s.balanceOrder {
		result = append(result, cloneBalance(s.balances[id]))
	}
	return result, nil
}

func (s *Store) DeleteAllBalances(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances = make(map[string]account.Balance)
	s.balanceOrder = nil
	return nil
}

// TransactionStore implementation ---------------------------------------------

func (s *Store) CreateTransaction(_ context.Context, txn transaction.Transaction) (transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.transactions[txn.ID]; exists {
		return transaction.Transaction{}, fmt.Errorf("transaction %s: %w", txn.ID, storage.ErrDuplicateID)
	}

	txn.CreatedAt, txn.UpdatedAt = stamp(txn.CreatedAt)
	s.transactions[txn.ID] = txn
	s.transactionOrder = append(s.transactionOrder, txn.ID)
	return txn, nil
}

func (s *Store) UpdateTransaction(_ context.Context, txn transaction.Transaction) (transaction.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.transactions[txn.ID]
	if !ok {
		return transaction.Transaction{}, fmt.Errorf("transaction %s: %w", txn.ID, storage.ErrNotFound)
	}

	txn.CreatedAt = original.CreatedAt
	txn.UpdatedAt = time.Now().UTC()
	s.transactions[txn.ID] = txn
	return txn, nil
}

func (s *Store) GetTransaction(_ context.Context, id string) (transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[id]
	if !ok {
		return transaction.Transaction{}, fmt.Errorf("transaction %s: %w", id, storage.ErrNotFound)
	}
	return txn, nil
}

func (s *Store) ListTransactions(_ context.Context) ([]transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]transaction.Transaction, 0, len(s.transactionOrder))
	for _, id := range s.transactionOrder {
		result = append(result, s.transactions[id])
	}
	return result, nil
}

func (s *Store) DeleteAllTransactions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.transactions = make(map[string]transaction.Transaction)
	s.transactionOrder = nil
	return nil
}

// Helpers --------------------------------------------------------------------

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	return append([]string(nil), src...)
}

func cloneClient(c client.Client) client.Client {
	c.PartyIDs = cloneStrings(c.PartyIDs)
	c.Products = cloneStrings(c.Products)
	c.Outstanding.DocumentRequestIDs = cloneStrings(c.Outstanding.DocumentRequestIDs)
	c.Outstanding.QuestionIDs = cloneStrings(c.Outstanding.QuestionIDs)
	c.Outstanding.AttestationDocumentIDs = cloneStrings(c.Outstanding.AttestationDocumentIDs)
	c.Outstanding.PartyIDs = cloneStrings(c.Outstanding.PartyIDs)
	c.Outstanding.PartyRoles = cloneStrings(c.Outstanding.PartyRoles)
	c.QuestionResponses = append([]client.QuestionResponse(nil), c.QuestionResponses...)
	for i := range c.QuestionResponses {
		c.QuestionResponses[i].Values = cloneStrings(c.QuestionResponses[i].Values)
	}
	c.Attestations = append([]client.Attestation(nil), c.Attestations...)
	if c.Results != nil {
		results := *c.Results
		c.Results = &results
	}
	return c
}

func cloneParty(p party.Party) party.Party {
	p.Roles = cloneStrings(p.Roles)
	if p.OrganizationDetails != nil {
		details := *p.OrganizationDetails
		details.OrganizationIDs = append([]party.Identification(nil), details.OrganizationIDs...)
		p.OrganizationDetails = &details
	}
	if p.IndividualDetails != nil {
		details := *p.IndividualDetails
		details.IndividualIDs = append([]party.Identification(nil), details.IndividualIDs...)
		p.IndividualDetails = &details
	}
	p.ValidationResponses = append([]party.ValidationResponse(nil), p.ValidationResponses...)
	for i := range p.ValidationResponses {
		p.ValidationResponses[i].DocumentRequestIDs = cloneStrings(p.ValidationResponses[i].DocumentRequestIDs)
	}
	return p
}

func cloneDocRequest(dr docrequest.DocumentRequest) docrequest.DocumentRequest {
	dr.Requirements = append([]docrequest.Requirement(nil), dr.Requirements...)
	for i := range dr.Requirements {
		dr.Requirements[i].DocumentTypes = cloneStrings(dr.Requirements[i].DocumentTypes)
	}
	return dr
}

func cloneRecipient(rcp recipient.Recipient) recipient.Recipient {
	if rcp.PartyDetails != nil {
		details := *rcp.PartyDetails
		rcp.PartyDetails = &details
	}
	if rcp.Account != nil {
		acct := *rcp.Account
		acct.RoutingInformation = append([]recipient.RoutingInformation(nil), acct.RoutingInformation...)
		rcp.Account = &acct
	}
	return rcp
}

func cloneAccount(acct account.Account) account.Account {
	if acct.PaymentRoutingInformation != nil {
		routing := *acct.PaymentRoutingInformation
		routing.RoutingInformation = append([]account.RoutingInformation(nil), routing.RoutingInformation...)
		acct.PaymentRoutingInformation = &routing
	}
	return acct
}

func cloneBalance(bal account.Balance) account.Balance {
	bal.BalanceTypes = append([]account.TypeAmount(nil), bal.BalanceTypes...)
	return bal
}
