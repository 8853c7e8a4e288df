package recipients

import (
	"context"
	"errors"
	"testing"

	"github.com/sellsense/ef-sandbox/internal/app/domain/recipient"
	"github.com/sellsense/ef-sandbox/internal/app/seed"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
	"github.com/sellsense/ef-sandbox/internal/app/storage/memory"
)

func newSeededService(t *testing.T) (*Service, *memory.Store) {
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
	if _, err := seeder.Initialize(context.Background(), true, seed.DefaultScenario); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return New(store, nil), store
}

func TestCreateLinkedAccountStartsUnverified(t *testing.T) {
	svc, _ := newSeededService(t)

	created, err := svc.CreateRecipient(context.Background(), recipient.Recipient{
		PartyDetails: &recipient.PartyDetails{Type: "INDIVIDUAL", FirstName: "Maya", LastName: "Okafor"},
		Account:      &recipient.AccountDetails{Number: "7700001111", Type: "CHECKING"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated id")
	}
	if created.Type != recipient.TypeLinkedAccount {
		t.Fatalf("expected default type LINKED_ACCOUNT, got %s", created.Type)
	}
	if created.Status != recipient.StatusMicrodepositsInitiated {
		t.Fatalf("expected MICRODEPOSITS_INITIATED, got %s", created.Status)
	}
	if created.ClientID != "client-001" {
		t.Fatalf("expected default client id, got %s", created.ClientID)
	}
	if created.VerificationAttempts != 0 {
		t.Fatalf("expected zero verification attempts, got %d", created.VerificationAttempts)
	}
}

func TestCreateRegularRecipientDefaultsToActive(t *testing.T) {
	svc, _ := newSeededService(t)

	created, err := svc.CreateRecipient(context.Background(), recipient.Recipient{
		Type:         recipient.TypeRecipient,
		PartyDetails: &recipient.PartyDetails{Type: "ORGANIZATION", BusinessName: "Harbor Freight Co"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != recipient.StatusActive {
		t.Fatalf("expected ACTIVE, got %s", created.Status)
	}

	// A caller-supplied status sticks for non linked accounts.
	created, err = svc.CreateRecipient(context.Background(), recipient.Recipient{
		Type:   recipient.TypeRecipient,
		Status: recipient.StatusInactive,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Status != recipient.StatusInactive {
		t.Fatalf("expected INACTIVE, got %s", created.Status)
	}
}

func TestVerifyMicrodepositActivatesRecipient(t *testing.T) {
	svc, store := newSeededService(t)
	ctx := context.Background()

	for _, amounts := range [][]float64{{0.23, 0.47}, {0.47, 0.23}} {
		created, err := svc.CreateRecipient(ctx, recipient.Recipient{
			Account: &recipient.AccountDetails{Number: "7700002222"},
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		result, err := svc.VerifyMicrodeposit(ctx, created.ID, amounts)
		if err != nil {
			t.Fatalf("verify %v: %v", amounts, err)
		}
		if result.Status != "VERIFIED" {
			t.Fatalf("expected VERIFIED, got %s", result.Status)
		}

		stored, err := store.GetRecipient(ctx, created.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if stored.Status != recipient.StatusActive {
			t.Fatalf("expected ACTIVE after verification, got %s", stored.Status)
		}
		if stored.VerificationAttempts != 1 {
			t.Fatalf("expected one recorded attempt, got %d", stored.VerificationAttempts)
		}
	}
}

func TestVerifyMicrodepositWrongAmountsFail(t *testing.T) {
	svc, store := newSeededService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipient(ctx, recipient.Recipient{
		Account: &recipient.AccountDetails{Number: "7700003333"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.VerifyMicrodeposit(ctx, created.ID, []float64{0.10, 0.20})
	if !errors.Is(err, ErrAmountMismatch) {
		t.Fatalf("expected ErrAmountMismatch, got %v", err)
	}

	stored, err := store.GetRecipient(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != recipient.StatusMicrodepositsInitiated {
		t.Fatalf("failed attempt should not change status, got %s", stored.Status)
	}
	if stored.VerificationAttempts != 1 {
		t.Fatalf("expected one recorded attempt, got %d", stored.VerificationAttempts)
	}

	// The correct amounts still succeed while attempts remain.
	result, err := svc.VerifyMicrodeposit(ctx, created.ID, []float64{0.23, 0.47})
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if result.Status != "VERIFIED" {
		t.Fatalf("expected VERIFIED, got %s", result.Status)
	}
}

func TestVerifyMicrodepositMaxAttemptsRejectsRecipient(t *testing.T) {
	svc, store := newSeededService(t)
	ctx := context.Background()

	created, err := svc.CreateRecipient(ctx, recipient.Recipient{
		Account: &recipient.AccountDetails{Number: "7700004444"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	wrong := []float64{0.10, 0.20}
	for i := 0; i < 2; i++ {
		if _, err := svc.VerifyMicrodeposit(ctx, created.ID, wrong); !errors.Is(err, ErrAmountMismatch) {
			t.Fatalf("attempt %d: expected ErrAmountMismatch, got %v", i+1, err)
		}
	}

	_, err = svc.VerifyMicrodeposit(ctx, created.ID, wrong)
	if !errors.Is(err, ErrMaxAttemptsExceeded) {
		t.Fatalf("third failure: expected ErrMaxAttemptsExceeded, got %v", err)
	}

	stored, err := store.GetRecipient(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != recipient.StatusRejected {
		t.Fatalf("expected REJECTED after exhausting attempts, got %s", stored.Status)
	}
	if stored.VerificationAttempts != 3 {
		t.Fatalf("expected three recorded attempts, got %d", stored.VerificationAttempts)
	}

	// Even the correct amounts are refused once rejected.
	_, err = svc.VerifyMicrodeposit(ctx, created.ID, []float64{0.23, 0.47})
	if !errors.Is(err, ErrMaxAttemptsExceeded) {
		t.Fatalf("expected ErrMaxAttemptsExceeded after rejection, got %v", err)
	}
}

func TestVerifyMicrodepositRejectsWrongAmountCount(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	for _, amounts := range [][]float64{nil, {0.11}, {0.11, 0.32, 0.45}} {
		_, err := svc.VerifyMicrodeposit(ctx, "linked-account-003", amounts)
		if !errors.Is(err, ErrInvalidAmounts) {
			t.Fatalf("amounts %v: expected ErrInvalidAmounts, got %v", amounts, err)
		}
	}
}

func TestVerifyMicrodepositUnknownRecipient(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.VerifyMicrodeposit(context.Background(), "missing", []float64{0.11, 0.32})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListRecipientsFilters(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	linked, err := svc.ListRecipients(ctx, Filter{Type: "LINKED_ACCOUNT"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(linked) != 1 || linked[0].ID != "linked-account-003" {
		t.Fatalf("expected only the seeded linked account, got %+v", linked)
	}

	regular, err := svc.ListRecipients(ctx, Filter{Type: "RECIPIENT"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(regular) != 2 {
		t.Fatalf("expected two payout recipients, got %d", len(regular))
	}
	for _, rcp := range regular {
		if rcp.Type != recipient.TypeRecipient {
			t.Fatalf("type filter leaked %s", rcp.Type)
		}
	}
}

func TestAmendRecipientDeepMerges(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	updated, err := svc.AmendRecipient(ctx, "recipient-001", map[string]interface{}{
		"partyDetails": map[string]interface{}{
			"lastName": "Doe-Smith",
		},
	})
	if err != nil {
		t.Fatalf("amend: %v", err)
	}
	if updated.PartyDetails.LastName != "Doe-Smith" {
		t.Fatalf("patch not applied: %+v", updated.PartyDetails)
	}
	if updated.PartyDetails.FirstName != "John" {
		t.Fatalf("merge dropped untouched field: %+v", updated.PartyDetails)
	}
	if updated.Account == nil || updated.Account.Number != "5500001111" {
		t.Fatalf("merge dropped account details: %+v", updated.Account)
	}
}
