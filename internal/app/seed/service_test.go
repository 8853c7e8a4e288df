package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sellsense/ef-sandbox/internal/app/storage/memory"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc := New(Stores{
		Clients:          store,
		Parties:          store,
		DocumentRequests: store,
		Recipients:       store,
		Accounts:         store,
		Balances:         store,
		Transactions:     store,
	}, nil)
	return svc, store
}

func TestInitializeIsIdempotentWithoutForce(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	seeded, err := svc.Initialize(ctx, false, DefaultScenario)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = svc.Initialize(ctx, false, DefaultScenario)
	require.NoError(t, err)
	require.False(t, seeded, "second initialize without force must be a no-op")

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, status.Tables["clients"].Count)
	require.Equal(t, ScenarioActiveWithRecipients, status.Scenario)
}

func TestInitializeForceReplacesData(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Initialize(ctx, false, DefaultScenario)
	require.NoError(t, err)

	seeded, err := svc.Initialize(ctx, true, ScenarioEmpty)
	require.NoError(t, err)
	require.True(t, seeded)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, ScenarioEmpty, status.Scenario)
	require.Zero(t, status.Tables["recipients"].Count)
	require.Zero(t, status.Tables["transactions"].Count)
}

func TestEmptyScenarioIsDeterministic(t *testing.T) {
	ctx := context.Background()

	first, firstStore := newService(t)
	_, err := first.Initialize(ctx, true, ScenarioEmpty)
	require.NoError(t, err)

	second, secondStore := newService(t)
	_, err = second.Initialize(ctx, true, ScenarioEmpty)
	require.NoError(t, err)

	firstClients, err := firstStore.ListClients(ctx)
	require.NoError(t, err)
	secondClients, err := secondStore.ListClients(ctx)
	require.NoError(t, err)
	require.Equal(t, len(firstClients), len(secondClients))
	for i := range firstClients {
		require.Equal(t, firstClients[i].ID, secondClients[i].ID)
		require.Equal(t, firstClients[i].Status, secondClients[i].Status)
	}

	firstBalances, err := firstStore.ListBalances(ctx)
	require.NoError(t, err)
	require.Len(t, firstBalances, 1)
	for _, entry := range firstBalances[0].BalanceTypes {
		require.True(t, entry.Amount.IsZero(), "empty scenario must seed zeroed balances")
	}
}

func TestUnknownScenarioFallsBackToDefault(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	result := svc.Reset(ctx, "not-a-scenario")
	require.True(t, result.Success)
	require.Equal(t, DefaultScenario, result.Scenario)

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	require.Equal(t, ScenarioActiveWithRecipients, status.Scenario)
	require.Positive(t, status.LinkedAccountsCount)
	require.Positive(t, status.RegularRecipientsCount)
}

func TestActiveScenarioSeedsLinkedAccountsOnly(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := svc.Initialize(ctx, true, ScenarioActive)
	require.NoError(t, err)

	recipients, err := store.ListRecipients(ctx)
	require.NoError(t, err)
	require.Len(t, recipients, 1)
	require.Equal(t, "linked-account-003", recipients[0].ID)

	balances, err := store.ListBalances(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, AccountPrimary, balances[0].AccountID)
}

func TestOutcomeForTaxID(t *testing.T) {
	require.Equal(t, true, OutcomeForTaxID(TaxIDInformationRequested).RequestDocuments)
	require.Equal(t, "REJECTED", string(OutcomeForTaxID(TaxIDRejected).Status))
	require.True(t, OutcomeForTaxID(TaxIDApproved).RecordIdentityResult)
	require.Equal(t, "REVIEW_IN_PROGRESS", string(OutcomeForTaxID("987654321").Status))
}
