package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sellsense/ef-sandbox/internal/app/domain/transaction"
	"github.com/sellsense/ef-sandbox/internal/app/seed"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
	"github.com/sellsense/ef-sandbox/internal/app/storage/memory"
)

func newSeededService(t *testing.T, scenario string) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	seeder := seed.New(seed.Stores{
		Clients:          store,
		Parties:          store,
		DocumentRequests: store,
		Recipients:       store,
		Accounts:         store,
		Balances:         store,
		Transactions:     store,
	}, nil)
	if _, err := seeder.Initialize(context.Background(), true, scenario); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(store, store, store, store, nil), store
}

func balanceAmount(t *testing.T, store *memory.Store, accountID, typeCode string) decimal.Decimal {
	t.Helper()
	bal, err := store.GetBalanceByAccount(context.Background(), accountID)
	if err != nil {
		t.Fatalf("get balance %s: %v", accountID, err)
	}
	for _, entry := range bal.BalanceTypes {
		if entry.TypeCode == typeCode {
			return entry.Amount
		}
	}
	t.Fatalf("balance type %s missing on %s", typeCode, accountID)
	return decimal.Zero
}

func TestCompletedTransactionMovesBalances(t *testing.T) {
	svc, store := newSeededService(t, seed.ScenarioActiveWithRecipients)
	ctx := context.Background()

	_, err := svc.CreateTransaction(ctx, CreateInput{
		Amount:            decimal.RequireFromString("100.00"),
		CreditorAccountID: seed.AccountPrimary,
		DebtorAccountID:   seed.AccountSecondary,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	checks := []struct {
		account, typeCode, want string
	}{
		{seed.AccountPrimary, "ITAV", "5658.42"},
		{seed.AccountPrimary, "ITBD", "5858.42"},
		{seed.AccountSecondary, "ITAV", "1134.56"},
		{seed.AccountSecondary, "ITBD", "1245.67"},
	}
	for _, check := range checks {
		got := balanceAmount(t, store, check.account, check.typeCode)
		if !got.Equal(decimal.RequireFromString(check.want)) {
			t.Fatalf("%s %s: expected %s, got %s", check.account, check.typeCode, check.want, got)
		}
	}
}

func TestPendingTransactionLeavesBalancesUntouched(t *testing.T) {
	svc, store := newSeededService(t, seed.ScenarioActiveWithRecipients)
	ctx := context.Background()

	before := balanceAmount(t, store, seed.AccountPrimary, "ITAV")

	_, err := svc.CreateTransaction(ctx, CreateInput{
		Amount:            decimal.RequireFromString("250.00"),
		Status:            transaction.StatusPending,
		CreditorAccountID: seed.AccountPrimary,
		DebtorAccountID:   seed.AccountSecondary,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	after := balanceAmount(t, store, seed.AccountPrimary, "ITAV")
	if !after.Equal(before) {
		t.Fatalf("pending transaction moved funds: %s -> %s", before, after)
	}
}

func TestStatusTransitionAppliesAndReversesOnce(t *testing.T) {
	svc, store := newSeededService(t, seed.ScenarioActiveWithRecipients)
	ctx := context.Background()

	baseline := balanceAmount(t, store, seed.AccountPrimary, "ITAV")

	txn, err := svc.CreateTransaction(ctx, CreateInput{
		Amount:            decimal.RequireFromString("40.00"),
		Status:            transaction.StatusPending,
		CreditorAccountID: seed.AccountPrimary,
		DebtorAccountID:   seed.AccountSecondary,
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	if _, err := svc.UpdateTransactionStatus(ctx, txn.ID, transaction.StatusCompleted); err != nil {
		t.Fatalf("complete: %v", err)
	}
	completed := balanceAmount(t, store, seed.AccountPrimary, "ITAV")
	if !completed.Equal(baseline.Add(decimal.RequireFromString("40.00"))) {
		t.Fatalf("expected credit of 40.00, got %s -> %s", baseline, completed)
	}

	// Re-asserting the same status must not double-apply.
	if _, err := svc.UpdateTransactionStatus(ctx, txn.ID, transaction.StatusCompleted); err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if got := balanceAmount(t, store, seed.AccountPrimary, "ITAV"); !got.Equal(completed) {
		t.Fatalf("same-status transition moved funds: %s -> %s", completed, got)
	}

	if _, err := svc.UpdateTransactionStatus(ctx, txn.ID, transaction.StatusReturned); err != nil {
		t.Fatalf("return: %v", err)
	}
	if got := balanceAmount(t, store, seed.AccountPrimary, "ITAV"); !got.Equal(baseline) {
		t.Fatalf("reversal did not restore baseline: expected %s, got %s", baseline, got)
	}
	if got := balanceAmount(t, store, seed.AccountSecondary, "ITAV"); !got.Equal(decimal.RequireFromString("1234.56")) {
		t.Fatalf("debtor not restored, got %s", got)
	}
}

func TestBalanceDeltaClampsAtZero(t *testing.T) {
	svc, store := newSeededService(t, seed.ScenarioActiveWithRecipients)
	ctx := context.Background()

	if err := svc.ApplyBalanceDelta(ctx, seed.AccountSecondary, decimal.RequireFromString("99999.00"), DirectionDebit); err != nil {
		t.Fatalf("apply delta: %v", err)
	}
	if got := balanceAmount(t, store, seed.AccountSecondary, "ITAV"); !got.IsZero() {
		t.Fatalf("expected clamp to zero, got %s", got)
	}
}

func TestMissingBalanceRecordIsSkipped(t *testing.T) {
	svc, _ := newSeededService(t, seed.ScenarioActive)

	// The active scenario has no balance record for the secondary account.
	err := svc.ApplyBalanceDelta(context.Background(), seed.AccountSecondary, decimal.RequireFromString("10.00"), DirectionCredit)
	if err != nil {
		t.Fatalf("expected missing balance to be skipped, got %v", err)
	}
}

func TestCreateTransactionResolvesRecipientCreditor(t *testing.T) {
	svc, _ := newSeededService(t, seed.ScenarioActiveWithRecipients)
	ctx := context.Background()

	// linked-account-003 carries the primary account's number.
	txn, err := svc.CreateTransaction(ctx, CreateInput{
		Amount:      decimal.RequireFromString("10.00"),
		RecipientID: "linked-account-003",
	})
	if err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if txn.CreditorAccountID != seed.AccountPrimary {
		t.Fatalf("expected creditor %s, got %s", seed.AccountPrimary, txn.CreditorAccountID)
	}
	if txn.CreditorName != "Acme Supply Co LLC" {
		t.Fatalf("expected recipient business name, got %q", txn.CreditorName)
	}
	if txn.Type != transaction.TypeACH || txn.Currency != "USD" {
		t.Fatalf("defaults not applied: %+v", txn)
	}
}

func TestUpdateStatusUnknownTransaction(t *testing.T) {
	svc, _ := newSeededService(t, seed.ScenarioActiveWithRecipients)

	_, err := svc.UpdateTransactionStatus(context.Background(), "txn-missing", transaction.StatusCompleted)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListTransactionsFilters(t *testing.T) {
	svc, _ := newSeededService(t, seed.ScenarioActiveWithRecipients)
	ctx := context.Background()

	completed, err := svc.ListTransactions(ctx, Filter{Status: "COMPLETED"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, txn := range completed {
		if txn.Status != transaction.StatusCompleted {
			t.Fatalf("status filter leaked %s", txn.Status)
		}
	}

	byAccount, err := svc.ListTransactions(ctx, Filter{AccountID: seed.AccountPrimary})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(byAccount) == 0 {
		t.Fatalf("expected transactions touching %s", seed.AccountPrimary)
	}
	for _, txn := range byAccount {
		if txn.CreditorAccountID != seed.AccountPrimary && txn.DebtorAccountID != seed.AccountPrimary {
			t.Fatalf("account filter leaked %s/%s", txn.CreditorAccountID, txn.DebtorAccountID)
		}
	}
}
