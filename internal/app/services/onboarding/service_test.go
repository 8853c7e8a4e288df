package onboarding

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sellsense/ef-sandbox/internal/app/domain/client"
	"github.com/sellsense/ef-sandbox/internal/app/domain/party"
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
	return New(store, store, store, nil), store
}

func organizationWithEIN(ein string) party.Party {
	return party.Party{
		PartyType: party.TypeOrganization,
		Roles:     []string{"CLIENT"},
		OrganizationDetails: &party.OrganizationDetails{
			OrganizationName: "Test Org LLC",
			OrganizationType: "LIMITED_LIABILITY_COMPANY",
			OrganizationIDs:  []party.Identification{{IDType: party.IDTypeEIN, Value: ein}},
		},
	}
}

func individualWithSSN(first, last, ssn string) party.Party {
	return party.Party{
		PartyType: party.TypeIndividual,
		Roles:     []string{"OWNER"},
		IndividualDetails: &party.IndividualDetails{
			FirstName:     first,
			LastName:      last,
			IndividualIDs: []party.Identification{{IDType: party.IDTypeSSN, Value: ssn}},
		},
	}
}

func TestCreateClientAssignsIDsAndDefaults(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	view, err := svc.CreateClient(ctx, CreateClientInput{
		Parties: []party.Party{
			organizationWithEIN("300019999"),
			individualWithSSN("Tess", "Nakamura", "400019999"),
		},
	})
	require.NoError(t, err)

	require.Len(t, view.ID, 10)
	require.True(t, strings.HasPrefix(view.ID, "00"))
	require.Equal(t, client.StatusNew, view.Status)
	require.Equal(t, []string{"EMBEDDED_PAYMENTS"}, view.Products)

	require.Len(t, view.Parties, 2)
	for _, p := range view.Parties {
		require.Len(t, p.ID, 10)
		require.True(t, strings.HasPrefix(p.ID, "2"))
	}
	require.Equal(t, view.Parties[0].ID, view.PartyID, "organization becomes the root party")
	require.Equal(t, view.PartyID, view.Parties[1].ParentPartyID)

	require.Equal(t, []string{"30005", "30158"}, view.Outstanding.QuestionIDs)
	require.Equal(t, defaultAttestationDocumentIDs, view.Outstanding.AttestationDocumentIDs)
	require.Empty(t, view.Outstanding.DocumentRequestIDs)
}

func TestGetClientExpandsPartiesAndDropsMissing(t *testing.T) {
	svc, store := newSeededService(t)
	ctx := context.Background()

	view, err := svc.GetClient(ctx, seed.ClientLLC)
	require.NoError(t, err)
	require.Len(t, view.Parties, 3)

	// Dangling party ids are silently dropped from the view.
	c, err := store.GetClient(ctx, seed.ClientLLC)
	require.NoError(t, err)
	c.PartyIDs = append(c.PartyIDs, "2999999999")
	_, err = store.UpdateClient(ctx, c)
	require.NoError(t, err)

	view, err = svc.GetClient(ctx, seed.ClientLLC)
	require.NoError(t, err)
	require.Len(t, view.Parties, 3)
}

func TestGetClientNotFound(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.GetClient(context.Background(), "0099999999")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateClientQuestionResponsesClearOutstanding(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	view, err := svc.UpdateClient(ctx, seed.ClientLLC, UpdateClientInput{
		QuestionResponses: []client.QuestionResponse{
			{QuestionID: "30005", Values: []string{"1200000"}},
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"30158"}, view.Outstanding.QuestionIDs)
	require.Len(t, view.QuestionResponses, 1)

	// Answering again replaces rather than duplicates.
	view, err = svc.UpdateClient(ctx, seed.ClientLLC, UpdateClientInput{
		QuestionResponses: []client.QuestionResponse{
			{QuestionID: "30005", Values: []string{"1500000"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, view.QuestionResponses, 1)
	require.Equal(t, []string{"1500000"}, view.QuestionResponses[0].Values)
}

func TestUpdateClientAttestationsRoundTrip(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	attestation := client.Attestation{DocumentID: "abcd1c1d-6635-43ff-a8e5-b252926bddef"}

	view, err := svc.UpdateClient(ctx, seed.ClientLLC, UpdateClientInput{
		AddAttestations: []client.Attestation{attestation},
	})
	require.NoError(t, err)
	require.Len(t, view.Attestations, 1)
	require.Empty(t, view.Outstanding.AttestationDocumentIDs)

	view, err = svc.UpdateClient(ctx, seed.ClientLLC, UpdateClientInput{
		RemoveAttestations: []client.Attestation{attestation},
	})
	require.NoError(t, err)
	require.Empty(t, view.Attestations)
	require.Equal(t, []string{attestation.DocumentID}, view.Outstanding.AttestationDocumentIDs)
}

func TestUpdateClientAddsPartiesUnderRoot(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	view, err := svc.UpdateClient(ctx, seed.ClientLLC, UpdateClientInput{
		AddParties:  []party.Party{individualWithSSN("Nina", "Castellanos", "400018888")},
		AddProducts: []string{"EMBEDDED_PAYMENTS", "MERCHANT_SERVICES"},
	})
	require.NoError(t, err)
	require.Len(t, view.Parties, 4)

	added := view.Parties[3]
	require.Equal(t, "2000000111", added.ParentPartyID)
	require.Equal(t, "ACTIVE", added.Status)
	require.Equal(t, []string{"EMBEDDED_PAYMENTS", "MERCHANT_SERVICES"}, view.Products)
}

func TestAmendPartyDeepMergesAndReplacesRoles(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	updated, err := svc.AmendParty(ctx, "2000000112", map[string]interface{}{
		"roles": []interface{}{"OWNER", "CONTROLLER"},
		"individualDetails": map[string]interface{}{
			"jobTitle": "President",
		},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"OWNER", "CONTROLLER"}, updated.Roles)
	require.Equal(t, "President", updated.IndividualDetails.JobTitle)
	// Untouched nested fields survive the merge.
	require.Equal(t, "Alice", updated.IndividualDetails.FirstName)
	require.Equal(t, "Moreno", updated.IndividualDetails.LastName)
}

func TestAmendPartyCannotChangeID(t *testing.T) {
	svc, _ := newSeededService(t)

	updated, err := svc.AmendParty(context.Background(), "2000000112", map[string]interface{}{
		"id": "2111111111",
	})
	require.NoError(t, err)
	require.Equal(t, "2000000112", updated.ID)
}

func TestVerifyClientInformationRequested(t *testing.T) {
	svc, store := newSeededService(t)
	ctx := context.Background()

	// Tidewater's EIN is the information-requested magic value.
	receipt, err := svc.VerifyClient(ctx, seed.ClientDocsPending, VerificationRequest{
		ConsumerDevice: ConsumerDevice{IPAddress: "203.0.113.7", SessionID: "sess-1"},
	})
	require.NoError(t, err)
	require.False(t, receipt.AcceptedAt.IsZero())
	require.Equal(t, "203.0.113.7", receipt.ConsumerDevice.IPAddress)

	c, err := store.GetClient(ctx, seed.ClientDocsPending)
	require.NoError(t, err)
	require.Equal(t, client.StatusInformationRequested, c.Status)
	require.Len(t, c.Outstanding.DocumentRequestIDs, 1, "regeneration replaces prior outstanding requests")

	dr, err := store.GetDocumentRequest(ctx, c.Outstanding.DocumentRequestIDs[0])
	require.NoError(t, err)
	require.Equal(t, seed.ClientDocsPending, dr.ClientID)
	require.Equal(t, c.PartyID, dr.PartyID)

	p, err := store.GetParty(ctx, "2000000122")
	require.NoError(t, err)
	require.Len(t, p.ValidationResponses, 1)
	require.Equal(t, party.ValidationNeedsInfo, p.ValidationResponses[0].ValidationStatus)
	require.Len(t, p.ValidationResponses[0].DocumentRequestIDs, 1)
}

func TestVerifyClientOutcomes(t *testing.T) {
	svc, store := newSeededService(t)
	ctx := context.Background()

	cases := []struct {
		taxID       string
		wantStatus  client.Status
		wantResults bool
	}{
		{seed.TaxIDReviewInProgress, client.StatusReviewInProgress, false},
		{seed.TaxIDRejected, client.StatusRejected, true},
		{seed.TaxIDApproved, client.StatusApproved, true},
		{"987654321", client.StatusReviewInProgress, false},
	}
	for _, tc := range cases {
		view, err := svc.CreateClient(ctx, CreateClientInput{
			Parties: []party.Party{organizationWithEIN(tc.taxID)},
		})
		require.NoError(t, err)

		_, err = svc.VerifyClient(ctx, view.ID, VerificationRequest{})
		require.NoError(t, err)

		c, err := store.GetClient(ctx, view.ID)
		require.NoError(t, err)
		require.Equal(t, tc.wantStatus, c.Status, "tax id %s", tc.taxID)
		if tc.wantResults {
			require.NotNil(t, c.Results)
			require.Equal(t, string(tc.wantStatus), c.Results.CustomerIdentityStatus)
		} else {
			require.Nil(t, c.Results)
		}
	}
}

func TestVerifyClientUnknownClient(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.VerifyClient(context.Background(), "0099999999", VerificationRequest{})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSubmitDocumentRequestAdvancesClient(t *testing.T) {
	svc, store := newSeededService(t)
	ctx := context.Background()

	// The organization request alone is not enough: the individual party
	// still needs info.
	dr, err := svc.SubmitDocumentRequest(ctx, seed.DocRequestOrganization)
	require.NoError(t, err)
	require.Equal(t, "SUBMITTED", string(dr.Status))

	c, err := store.GetClient(ctx, seed.ClientDocsPending)
	require.NoError(t, err)
	require.Empty(t, c.Outstanding.DocumentRequestIDs)
	require.Equal(t, client.StatusInformationRequested, c.Status)

	_, err = svc.SubmitDocumentRequest(ctx, seed.DocRequestIndividual)
	require.NoError(t, err)

	c, err = store.GetClient(ctx, seed.ClientDocsPending)
	require.NoError(t, err)
	require.Equal(t, client.StatusReviewInProgress, c.Status)

	p, err := store.GetParty(ctx, "2000000122")
	require.NoError(t, err)
	require.Empty(t, p.ValidationResponses, "emptied validation entries are dropped")
}

func TestSubmitDocumentRequestUnknownID(t *testing.T) {
	svc, _ := newSeededService(t)

	_, err := svc.SubmitDocumentRequest(context.Background(), "99999")
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestListDocumentRequestsByClient(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	requests, err := svc.ListDocumentRequests(ctx, seed.ClientDocsPending)
	require.NoError(t, err)
	require.Len(t, requests, 2)

	requests, err = svc.ListDocumentRequests(ctx, seed.ClientSoleProp)
	require.NoError(t, err)
	require.Empty(t, requests)
}

func TestUpsertDocumentRequestFillsDefaults(t *testing.T) {
	svc, _ := newSeededService(t)
	ctx := context.Background()

	dr, err := svc.UpsertDocumentRequest(ctx, seed.IndividualDocumentRequest("", seed.ClientLLC, "2000000112"))
	require.NoError(t, err)
	require.NotEmpty(t, dr.ID)
	require.Equal(t, 30, dr.ValidForDays)

	dr.Description = "updated"
	dr, err = svc.UpsertDocumentRequest(ctx, dr)
	require.NoError(t, err)
	require.Equal(t, "updated", dr.Description)
}

func TestQuestionsFilter(t *testing.T) {
	svc, _ := newSeededService(t)

	all := svc.Questions(nil)
	require.Len(t, all, 3)

	filtered := svc.Questions([]string{"30158", "30159"})
	require.Len(t, filtered, 2)
	require.Equal(t, "30158", filtered[0].ID)
}

func TestDocumentLifecycle(t *testing.T) {
	svc, _ := newSeededService(t)

	doc := svc.CreateDocument(CreateDocumentInput{FileName: "articles.pdf"})
	require.NotEmpty(t, doc.ID)
	require.Equal(t, "ACTIVE", doc.Status)
	require.Equal(t, "articles.pdf", doc.FileName)
	require.Equal(t, "application/pdf", doc.MimeType)

	fetched := svc.GetDocument(doc.ID)
	require.Equal(t, doc.ID, fetched.ID)

	pdf := svc.DocumentFile()
	require.NotEmpty(t, pdf)
	require.Equal(t, "%PDF", string(pdf[:4]))
}
