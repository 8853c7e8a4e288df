// Package app wires the sandbox services to their stores.
package app

import (
	"github.com/sellsense/ef-sandbox/internal/app/seed"
	"github.com/sellsense/ef-sandbox/internal/app/services/ledger"
	"github.com/sellsense/ef-sandbox/internal/app/services/onboarding"
	"github.com/sellsense/ef-sandbox/internal/app/services/recipients"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
	"github.com/sellsense/ef-sandbox/internal/app/storage/memory"
	"github.com/sellsense/ef-sandbox/pkg/logger"
)

// Stores encapsulates persistence dependencies. Nil stores default to a
// shared in-memory implementation.
type Stores struct {
	Clients          storage.ClientStore
	Parties          storage.PartyStore
	DocumentRequests storage.DocumentRequestStore
	Recipients       storage.RecipientStore
	Accounts         storage.AccountStore
	Balances         storage.BalanceStore
	Transactions     storage.TransactionStore
}

// Application ties the sandbox services together.
type Application struct {
	log *logger.Logger

	Seed       *seed.Service
	Onboarding *onboarding.Service
	Recipients *recipients.Service
	Ledger     *ledger.Service
}

// New builds a fully initialised application with the provided stores.
func New(stores Stores, log *logger.Logger) *Application {
	if log == nil {
		log = logger.NewDefault("app")
	}

	mem := memory.New()
	if stores.Clients == nil {
		stores.Clients = mem
	}
	if stores.Parties == nil {
		stores.Parties = mem
	}
	if stores.DocumentRequests == nil {
		stores.DocumentRequests = mem
	}
	if stores.Recipients == nil {
		stores.Recipients = mem
	}
	if stores.Accounts == nil {
		stores.Accounts = mem
	}
	if stores.Balances == nil {
		stores.Balances = mem
	}
	if stores.Transactions == nil {
		stores.Transactions = mem
	}

	seedService := seed.New(seed.Stores{
		Clients:          stores.Clients,
		Parties:          stores.Parties,
		DocumentRequests: stores.DocumentRequests,
		Recipients:       stores.Recipients,
		Accounts:         stores.Accounts,
		Balances:         stores.Balances,
		Transactions:     stores.Transactions,
	}, log)
	onboardingService := onboarding.New(stores.Clients, stores.Parties, stores.DocumentRequests, log)
	recipientsService := recipients.New(stores.Recipients, log)
	ledgerService := ledger.New(stores.Accounts, stores.Balances, stores.Recipients, stores.Transactions, log)

	return &Application{
		log:        log,
		Seed:       seedService,
		Onboarding: onboardingService,
		Recipients: recipientsService,
		Ledger:     ledgerService,
	}
}
