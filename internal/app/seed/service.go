// Package seed populates the in-memory stores with scenario fixtures and
// exposes reset/status operations for the sandbox admin endpoints.
package seed

import (
	"context"
	"fmt"

	"github.com/sellsense/ef-sandbox/internal/app/domain/recipient"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
	"github.com/sellsense/ef-sandbox/pkg/logger"
)

// Stores bundles every store the seeder writes to.
type Stores struct {
	Clients          storage.ClientStore
	Parties          storage.PartyStore
	DocumentRequests storage.DocumentRequestStore
	Recipients       storage.RecipientStore
	Accounts         storage.AccountStore
	Balances         storage.BalanceStore
	Transactions     storage.TransactionStore
}

// Service seeds and resets the sandbox dataset.
type Service struct {
	stores      Stores
	descriptors []Descriptor
	log         *logger.Logger
}

// New constructs a seed service.
func New(stores Stores, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("seed")
	}
	return &Service{stores: stores, log: log}
}

// SetDescriptors replaces the scenario catalog exposed to discovery
// endpoints. Descriptors whose id is not a known scenario are dropped.
func (s *Service) SetDescriptors(descriptors []Descriptor) {
	kept := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if !ValidScenario(d.ID) {
			s.log.WithField("scenario", d.ID).Warn("ignoring descriptor for unknown scenario")
			continue
		}
		kept = append(kept, d)
	}
	if len(kept) > 0 {
		s.descriptors = kept
	}
}

// ScenarioDescriptors returns the scenario catalog, honouring any configured
// overrides.
func (s *Service) ScenarioDescriptors() []Descriptor {
	if len(s.descriptors) > 0 {
		return s.descriptors
	}
	return Descriptors()
}

// Initialize seeds the stores with the named scenario. When data already
// exists and force is false the call is a no-op and returns false. Unknown
// scenarios fall back to the default.
func (s *Service) Initialize(ctx context.Context, force bool, scenario string) (bool, error) {
	if scenario == "" {
		scenario = DefaultScenario
	}
	if !ValidScenario(scenario) {
		s.log.WithField("scenario", scenario).Warnf("unknown scenario, using %s", DefaultScenario)
		scenario = DefaultScenario
	}

	existing, err := s.stores.Clients.ListClients(ctx)
	if err != nil {
		return false, fmt.Errorf("inspect clients: %w", err)
	}
	if len(existing) > 0 && !force {
		return false, nil
	}

	if err := s.clearAll(ctx); err != nil {
		return false, err
	}

	for _, p := range seedParties() {
		if _, err := s.stores.Parties.CreateParty(ctx, p); err != nil {
			return false, fmt.Errorf("seed party %s: %w", p.ID, err)
		}
	}
	for _, c := range seedClients() {
		if _, err := s.stores.Clients.CreateClient(ctx, c); err != nil {
			return false, fmt.Errorf("seed client %s: %w", c.ID, err)
		}
	}
	for _, dr := range seedDocumentRequests() {
		if _, err := s.stores.DocumentRequests.CreateDocumentRequest(ctx, dr); err != nil {
			return false, fmt.Errorf("seed document request %s: %w", dr.ID, err)
		}
	}
	for _, rcp := range seedRecipients(scenario) {
		if _, err := s.stores.Recipients.CreateRecipient(ctx, rcp); err != nil {
			return false, fmt.Errorf("seed recipient %s: %w", rcp.ID, err)
		}
	}
	for _, acct := range seedAccounts() {
		if _, err := s.stores.Accounts.CreateAccount(ctx, acct); err != nil {
			return false, fmt.Errorf("seed account %s: %w", acct.ID, err)
		}
	}
	for _, bal := range seedBalances(scenario) {
		if _, err := s.stores.Balances.CreateBalance(ctx, bal); err != nil {
			return false, fmt.Errorf("seed balance %s: %w", bal.ID, err)
		}
	}
	for _, txn := range seedTransactions(scenario) {
		if _, err := s.stores.Transactions.CreateTransaction(ctx, txn); err != nil {
			return false, fmt.Errorf("seed transaction %s: %w", txn.ID, err)
		}
	}

	s.log.WithField("scenario", scenario).Info("sandbox data seeded")
	return true, nil
}

func (s *Service) clearAll(ctx context.Context) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"transactions", s.stores.Transactions.DeleteAllTransactions},
		{"balances", s.stores.Balances.DeleteAllBalances},
		{"accounts", s.stores.Accounts.DeleteAllAccounts},
		{"recipients", s.stores.Recipients.DeleteAllRecipients},
		{"document requests", s.stores.DocumentRequests.DeleteAllDocumentRequests},
		{"clients", s.stores.Clients.DeleteAllClients},
		{"parties", s.stores.Parties.DeleteAllParties},
	}
	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", step.name, err)
		}
	}
	return nil
}

// Result reports the outcome of a reset.
type Result struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Scenario string `json:"scenario"`
}

// Reset forces re-initialization with the named scenario.
func (s *Service) Reset(ctx context.Context, scenario string) Result {
	if scenario == "" || !ValidScenario(scenario) {
		if scenario != "" {
			s.log.WithField("scenario", scenario).Warnf("unknown scenario on reset, using %s", DefaultScenario)
		}
		scenario = DefaultScenario
	}

	if _, err := s.Initialize(ctx, true, scenario); err != nil {
		s.log.WithError(err).Error("reset failed")
		return Result{Success: false, Message: err.Error(), Scenario: scenario}
	}
	return Result{
		Success:  true,
		Message:  fmt.Sprintf("database reset with scenario %q", scenario),
		Scenario: scenario,
	}
}

// TableStatus summarises one table.
type TableStatus struct {
	Count int      `json:"count"`
	IDs   []string `json:"ids"`
}

// Status reports per-table counts and the scenario inferred from the current
// recipient population.
type Status struct {
	Scenario               string                 `json:"scenario"`
	LinkedAccountsCount    int                    `json:"linkedAccountsCount"`
	RegularRecipientsCount int                    `json:"regularRecipientsCount"`
	Tables                 map[string]TableStatus `json:"tables"`
}

// Status inspects the stores.
func (s *Service) Status(ctx context.Context) (Status, error) {
	status := Status{Tables: make(map[string]TableStatus)}

	clients, err := s.stores.Clients.ListClients(ctx)
	if err != nil {
		return Status{}, err
	}
	ids := make([]string, 0, len(clients))
	for _, c := range clients {
		ids = append(ids, c.ID)
	}
	status.Tables["clients"] = TableStatus{Count: len(clients), IDs: ids}

	parties, err := s.stores.Parties.ListParties(ctx)
	if err != nil {
		return Status{}, err
	}
	ids = make([]string, 0, len(parties))
	for _, p := range parties {
		ids = append(ids, p.ID)
	}
	status.Tables["parties"] = TableStatus{Count: len(parties), IDs: ids}

	docRequests, err := s.stores.DocumentRequests.ListDocumentRequests(ctx, "")
	if err != nil {
		return Status{}, err
	}
	ids = make([]string, 0, len(docRequests))
	for _, dr := range docRequests {
		ids = append(ids, dr.ID)
	}
	status.Tables["documentRequests"] = TableStatus{Count: len(docRequests), IDs: ids}

	recipients, err := s.stores.Recipients.ListRecipients(ctx)
	if err != nil {
		return Status{}, err
	}
	ids = make([]string, 0, len(recipients))
	for _, rcp := range recipients {
		ids = append(ids, rcp.ID)
		switch rcp.Type {
		case recipient.TypeLinkedAccount:
			status.LinkedAccountsCount++
		case recipient.TypeRecipient:
			status.RegularRecipientsCount++
		}
	}
	status.Tables["recipients"] = TableStatus{Count: len(recipients), IDs: ids}

	accounts, err := s.stores.Accounts.ListAccounts(ctx)
	if err != nil {
		return Status{}, err
	}
	ids = make([]string, 0, len(accounts))
	for _, acct := range accounts {
		ids = append(ids, acct.ID)
	}
	status.Tables["accounts"] = TableStatus{Count: len(accounts), IDs: ids}

	balances, err := s.stores.Balances.ListBalances(ctx)
	if err != nil {
		return Status{}, err
	}
	ids = make([]string, 0, len(balances))
	for _, bal := range balances {
		ids = append(ids, bal.AccountID)
	}
	status.Tables["accountBalances"] = TableStatus{Count: len(balances), IDs: ids}

	transactions, err := s.stores.Transactions.ListTransactions(ctx)
	if err != nil {
		return Status{}, err
	}
	ids = make([]string, 0, len(transactions))
	for _, txn := range transactions {
		ids = append(ids, txn.ID)
	}
	status.Tables["transactions"] = TableStatus{Count: len(transactions), IDs: ids}

	switch {
	case len(recipients) == 0:
		status.Scenario = ScenarioEmpty
	case status.LinkedAccountsCount > 0 && status.RegularRecipientsCount > 0:
		status.Scenario = ScenarioActiveWithRecipients
	default:
		status.Scenario = ScenarioActive
	}

	return status, nil
}
