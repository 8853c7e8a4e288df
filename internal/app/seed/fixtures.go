package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sellsense/ef-sandbox/internal/app/domain/account"
	"github.com/sellsense/ef-sandbox/internal/app/domain/client"
	"github.com/sellsense/ef-sandbox/internal/app/domain/docrequest"
	"github.com/sellsense/ef-sandbox/internal/app/domain/party"
	"github.com/sellsense/ef-sandbox/internal/app/domain/recipient"
	"github.com/sellsense/ef-sandbox/internal/app/domain/transaction"
)

// Named scenarios the sandbox can be seeded with.
const (
	ScenarioActive               = "active"
	ScenarioActiveWithRecipients = "active-with-recipients"
	ScenarioEmpty                = "empty"
)

// DefaultScenario is used when no scenario (or an unknown one) is requested.
const DefaultScenario = ScenarioActiveWithRecipients

// ValidScenario reports whether name is a known scenario.
func ValidScenario(name string) bool {
	switch name {
	case ScenarioActive, ScenarioActiveWithRecipients, ScenarioEmpty:
		return true
	}
	return false
}

// Descriptor describes a scenario for discovery endpoints.
type Descriptor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Descriptors lists every seedable scenario.
func Descriptors() []Descriptor {
	return []Descriptor{
		{
			ID:          ScenarioActive,
			Name:        "Active seller",
			Description: "Onboarded seller with linked accounts only and a funded primary account",
		},
		{
			ID:          ScenarioActiveWithRecipients,
			Name:        "Active seller with recipients",
			Description: "Onboarded seller with payout recipients, linked accounts, balances and transaction history",
		},
		{
			ID:          ScenarioEmpty,
			Name:        "Empty ledger",
			Description: "Seeded clients with no recipients, no transactions and zeroed balances",
		},
	}
}

// Sandbox tax identifiers that steer client verification outcomes. Any other
// value verifies into REVIEW_IN_PROGRESS.
const (
	TaxIDInformationRequested = "111111111"
	TaxIDReviewInProgress     = "222222222"
	TaxIDRejected             = "333333333"
	TaxIDApproved             = "444444444"
)

// VerificationOutcome is the effect a verification run has on a client.
type VerificationOutcome struct {
	Status               client.Status
	RecordIdentityResult bool
	RequestDocuments     bool
}

var outcomesByTaxID = map[string]VerificationOutcome{
	TaxIDInformationRequested: {Status: client.StatusInformationRequested, RequestDocuments: true},
	TaxIDReviewInProgress:     {Status: client.StatusReviewInProgress},
	TaxIDRejected:             {Status: client.StatusRejected, RecordIdentityResult: true},
	TaxIDApproved:             {Status: client.StatusApproved, RecordIdentityResult: true},
}

// OutcomeForTaxID resolves the verification outcome for a tax identifier.
func OutcomeForTaxID(taxID string) VerificationOutcome {
	if outcome, ok := outcomesByTaxID[taxID]; ok {
		return outcome
	}
	return VerificationOutcome{Status: client.StatusReviewInProgress}
}

// Fixture ids referenced across scenarios.
const (
	ClientSoleProp    = "0030000131"
	ClientLLC         = "0030000132"
	ClientDocsPending = "0030000133"
	ClientInReview    = "0030000134"

	AccountPrimary   = "acc-001"
	AccountSecondary = "acc-002"

	// Seeded document requests for the docs-pending client. Fixed ids keep
	// repeated seeding deterministic.
	DocRequestOrganization = "68803"
	DocRequestIndividual   = "68430"
)

func seedParties() []party.Party {
	return []party.Party{
		{
			ID:            "2000000101",
			PartyType:     party.TypeOrganization,
			Roles:         []string{"CLIENT"},
			Email:         "owner@neverlandbooks.test",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			OrganizationDetails: &party.OrganizationDetails{
				OrganizationName:   "Neverland Books",
				OrganizationType:   "SOLE_PROPRIETORSHIP",
				CountryOfFormation: "US",
				OrganizationIDs:    []party.Identification{{IDType: party.IDTypeEIN, Value: "300010001"}},
			},
		},
		{
			ID:            "2000000102",
			PartyType:     party.TypeIndividual,
			Roles:         []string{"OWNER", "CONTROLLER"},
			ParentPartyID: "2000000101",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			IndividualDetails: &party.IndividualDetails{
				FirstName:          "Wendy",
				LastName:           "Darling",
				JobTitle:           "Owner",
				CountryOfResidence: "US",
				IndividualIDs:      []party.Identification{{IDType: party.IDTypeSSN, Value: "400010001"}},
			},
		},
		{
			ID:            "2000000111",
			PartyType:     party.TypeOrganization,
			Roles:         []string{"CLIENT"},
			Email:         "finance@acmesupply.test",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			OrganizationDetails: &party.OrganizationDetails{
				OrganizationName:   "Acme Supply Co LLC",
				OrganizationType:   "LIMITED_LIABILITY_COMPANY",
				CountryOfFormation: "US",
				OrganizationIDs:    []party.Identification{{IDType: party.IDTypeEIN, Value: "300010002"}},
			},
		},
		{
			ID:            "2000000112",
			PartyType:     party.TypeIndividual,
			Roles:         []string{"OWNER"},
			ParentPartyID: "2000000111",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			IndividualDetails: &party.IndividualDetails{
				FirstName:          "Alice",
				LastName:           "Moreno",
				JobTitle:           "CEO",
				CountryOfResidence: "US",
				IndividualIDs:      []party.Identification{{IDType: party.IDTypeSSN, Value: "400010002"}},
			},
		},
		{
			ID:            "2000000113",
			PartyType:     party.TypeIndividual,
			Roles:         []string{"CONTROLLER"},
			ParentPartyID: "2000000111",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			IndividualDetails: &party.IndividualDetails{
				FirstName:          "Bruno",
				LastName:           "Keller",
				JobTitle:           "CFO",
				CountryOfResidence: "US",
				IndividualIDs:      []party.Identification{{IDType: party.IDTypeSSN, Value: "400010003"}},
			},
		},
		{
			ID:            "2000000121",
			PartyType:     party.TypeOrganization,
			Roles:         []string{"CLIENT"},
			Email:         "ops@tidewater.test",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			OrganizationDetails: &party.OrganizationDetails{
				OrganizationName:   "Tidewater Trading LLC",
				OrganizationType:   "LIMITED_LIABILITY_COMPANY",
				CountryOfFormation: "US",
				OrganizationIDs:    []party.Identification{{IDType: party.IDTypeEIN, Value: TaxIDInformationRequested}},
			},
		},
		{
			ID:            "2000000122",
			PartyType:     party.TypeIndividual,
			Roles:         []string{"OWNER", "CONTROLLER"},
			ParentPartyID: "2000000121",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			IndividualDetails: &party.IndividualDetails{
				FirstName:          "Priya",
				LastName:           "Natarajan",
				JobTitle:           "Managing Member",
				CountryOfResidence: "US",
				IndividualIDs:      []party.Identification{{IDType: party.IDTypeSSN, Value: "400010004"}},
			},
			ValidationResponses: []party.ValidationResponse{
				{
					ValidationStatus:   party.ValidationNeedsInfo,
					ValidationType:     "ENTITY_VALIDATION",
					DocumentRequestIDs: []string{DocRequestIndividual},
				},
			},
		},
		{
			ID:            "2000000131",
			PartyType:     party.TypeOrganization,
			Roles:         []string{"CLIENT"},
			Email:         "hello@lumenhome.test",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			OrganizationDetails: &party.OrganizationDetails{
				OrganizationName:   "Lumen Home Goods LLC",
				OrganizationType:   "LIMITED_LIABILITY_COMPANY",
				CountryOfFormation: "US",
				OrganizationIDs:    []party.Identification{{IDType: party.IDTypeEIN, Value: TaxIDReviewInProgress}},
			},
		},
		{
			ID:            "2000000132",
			PartyType:     party.TypeIndividual,
			Roles:         []string{"OWNER"},
			ParentPartyID: "2000000131",
			Active:        true,
			Status:        "ACTIVE",
			ProfileStatus: "COMPLETE",
			Preferences:   party.Preferences{DefaultLanguage: "en-US"},
			IndividualDetails: &party.IndividualDetails{
				FirstName:          "Marcus",
				LastName:           "Oyelaran",
				JobTitle:           "Founder",
				CountryOfResidence: "US",
				IndividualIDs:      []party.Identification{{IDType: party.IDTypeSSN, Value: "400010005"}},
			},
		},
	}
}

func seedClients() []client.Client {
	return []client.Client{
		{
			ID:       ClientSoleProp,
			Status:   client.StatusActive,
			PartyID:  "2000000101",
			PartyIDs: []string{"2000000101", "2000000102"},
			Products: []string{"EMBEDDED_PAYMENTS"},
			Outstanding: client.Outstanding{
				DocumentRequestIDs:     []string{},
				QuestionIDs:            []string{},
				AttestationDocumentIDs: []string{},
				PartyIDs:               []string{},
				PartyRoles:             []string{},
			},
		},
		{
			ID:       ClientLLC,
			Status:   client.StatusNew,
			PartyID:  "2000000111",
			PartyIDs: []string{"2000000111", "2000000112", "2000000113"},
			Products: []string{"EMBEDDED_PAYMENTS"},
			Outstanding: client.Outstanding{
				DocumentRequestIDs:     []string{},
				QuestionIDs:            []string{"30005", "30158"},
				AttestationDocumentIDs: []string{"abcd1c1d-6635-43ff-a8e5-b252926bddef"},
				PartyIDs:               []string{},
				PartyRoles:             []string{},
			},
		},
		{
			ID:       ClientDocsPending,
			Status:   client.StatusInformationRequested,
			PartyID:  "2000000121",
			PartyIDs: []string{"2000000121", "2000000122"},
			Products: []string{"EMBEDDED_PAYMENTS"},
			Outstanding: client.Outstanding{
				DocumentRequestIDs:     []string{DocRequestOrganization},
				QuestionIDs:            []string{},
				AttestationDocumentIDs: []string{},
				PartyIDs:               []string{},
				PartyRoles:             []string{},
			},
		},
		{
			ID:       ClientInReview,
			Status:   client.StatusReviewInProgress,
			PartyID:  "2000000131",
			PartyIDs: []string{"2000000131", "2000000132"},
			Products: []string{"EMBEDDED_PAYMENTS"},
			Outstanding: client.Outstanding{
				DocumentRequestIDs:     []string{},
				QuestionIDs:            []string{},
				AttestationDocumentIDs: []string{},
				PartyIDs:               []string{},
				PartyRoles:             []string{},
			},
		},
	}
}

func seedDocumentRequests() []docrequest.DocumentRequest {
	return []docrequest.DocumentRequest{
		OrganizationDocumentRequest(DocRequestOrganization, ClientDocsPending, "2000000121"),
		IndividualDocumentRequest(DocRequestIndividual, ClientDocsPending, "2000000122"),
	}
}

// OrganizationDocumentRequest builds a formation-documents request for an
// organization party.
func OrganizationDocumentRequest(id, clientID, partyID string) docrequest.DocumentRequest {
	return docrequest.DocumentRequest{
		ID:          id,
		ClientID:    clientID,
		PartyID:     partyID,
		Status:      docrequest.StatusActive,
		Description: "Please provide documents verifying the formation and good standing of the business.",
		Requirements: []docrequest.Requirement{
			{
				DocumentTypes: []string{"ARTICLES_OF_INCORPORATION", "OPERATING_AGREEMENT", "BUSINESS_LICENSE"},
				MinRequired:   1,
			},
		},
		ValidForDays: 30,
	}
}

// IndividualDocumentRequest builds an identity-documents request for an
// individual party.
func IndividualDocumentRequest(id, clientID, partyID string) docrequest.DocumentRequest {
	return docrequest.DocumentRequest{
		ID:          id,
		ClientID:    clientID,
		PartyID:     partyID,
		Status:      docrequest.StatusActive,
		Description: "Please provide a government issued photo ID for the listed individual.",
		Requirements: []docrequest.Requirement{
			{
				DocumentTypes: []string{"GOVERNMENT_ISSUED_ID", "DRIVERS_LICENSE", "PASSPORT"},
				MinRequired:   1,
			},
		},
		ValidForDays: 30,
	}
}

func seedRecipients(scenario string) []recipient.Recipient {
	if scenario == ScenarioEmpty {
		return nil
	}

	linked := recipient.Recipient{
		ID:       "linked-account-003",
		Type:     recipient.TypeLinkedAccount,
		Status:   recipient.StatusActive,
		ClientID: "client-001",
		PartyDetails: &recipient.PartyDetails{
			Type:         "ORGANIZATION",
			BusinessName: "Acme Supply Co LLC",
		},
		Account: &recipient.AccountDetails{
			Number:      "1000000001",
			Type:        "CHECKING",
			CountryCode: "US",
			RoutingInformation: []recipient.RoutingInformation{
				{RoutingCodeType: "USABA", RoutingNumber: "028000024", TransactionType: "ACH"},
			},
		},
	}

	if scenario == ScenarioActive {
		return []recipient.Recipient{linked}
	}

	return []recipient.Recipient{
		{
			ID:       "recipient-001",
			Type:     recipient.TypeRecipient,
			Status:   recipient.StatusActive,
			ClientID: "client-001",
			PartyDetails: &recipient.PartyDetails{
				Type:      "INDIVIDUAL",
				FirstName: "John",
				LastName:  "Doe",
			},
			Account: &recipient.AccountDetails{
				Number:      "5500001111",
				Type:        "CHECKING",
				CountryCode: "US",
				RoutingInformation: []recipient.RoutingInformation{
					{RoutingCodeType: "USABA", RoutingNumber: "021000021", TransactionType: "ACH"},
				},
			},
		},
		{
			ID:       "recipient-002",
			Type:     recipient.TypeRecipient,
			Status:   recipient.StatusActive,
			ClientID: "client-001",
			PartyDetails: &recipient.PartyDetails{
				Type:         "ORGANIZATION",
				BusinessName: "Riverside Packaging Inc",
			},
			Account: &recipient.AccountDetails{
				Number:      "5500002222",
				Type:        "CHECKING",
				CountryCode: "US",
				RoutingInformation: []recipient.RoutingInformation{
					{RoutingCodeType: "USABA", RoutingNumber: "026009593", TransactionType: "ACH"},
				},
			},
		},
		linked,
	}
}

func seedAccounts() []account.Account {
	return []account.Account{
		{
			ID:       AccountPrimary,
			ClientID: "client-001",
			Label:    "SellSense Marketplace",
			State:    "OPEN",
			Category: "LIMITED_DDA_PAYMENTS",
			PaymentRoutingInformation: &account.PaymentRoutingInformation{
				AccountNumber: "1000000001",
				Country:       "US",
				RoutingInformation: []account.RoutingInformation{
					{Type: "ABA", Value: "028000024"},
				},
			},
		},
		{
			ID:       AccountSecondary,
			ClientID: "client-001",
			Label:    "Mock Customer",
			State:    "OPEN",
			Category: "LIMITED_DDA",
			PaymentRoutingInformation: &account.PaymentRoutingInformation{
				AccountNumber: "1000000002",
				Country:       "US",
				RoutingInformation: []account.RoutingInformation{
					{Type: "ABA", Value: "028000024"},
				},
			},
		},
	}
}

func seedBalances(scenario string) []account.Balance {
	today := time.Now().UTC().Format("2006-01-02")

	if scenario == ScenarioEmpty {
		return []account.Balance{
			{
				ID:        "balance-001",
				AccountID: AccountPrimary,
				Date:      today,
				Currency:  "USD",
				BalanceTypes: []account.TypeAmount{
					{TypeCode: account.BalanceTypeAvailable, Amount: decimal.Zero},
					{TypeCode: account.BalanceTypeBooked, Amount: decimal.Zero},
				},
			},
		}
	}

	primary := account.Balance{
		ID:        "balance-001",
		AccountID: AccountPrimary,
		Date:      today,
		Currency:  "USD",
		BalanceTypes: []account.TypeAmount{
			{TypeCode: account.BalanceTypeAvailable, Amount: decimal.RequireFromString("5558.42")},
			{TypeCode: account.BalanceTypeBooked, Amount: decimal.RequireFromString("5758.42")},
		},
	}

	if scenario == ScenarioActive {
		return []account.Balance{primary}
	}

	return []account.Balance{
		primary,
		{
			ID:        "balance-002",
			AccountID: AccountSecondary,
			Date:      today,
			Currency:  "USD",
			BalanceTypes: []account.TypeAmount{
				{TypeCode: account.BalanceTypeAvailable, Amount: decimal.RequireFromString("1234.56")},
				{TypeCode: account.BalanceTypeBooked, Amount: decimal.RequireFromString("1345.67")},
			},
		},
	}
}

func seedTransactions(scenario string) []transaction.Transaction {
	if scenario == ScenarioEmpty {
		return nil
	}

	return []transaction.Transaction{
		{
			ID:                     "txn-001",
			Type:                   transaction.TypeACH,
			Status:                 transaction.StatusCompleted,
			Amount:                 decimal.RequireFromString("1250.00"),
			Currency:               "USD",
			PaymentDate:            "2025-08-01",
			EffectiveDate:          "2025-08-01",
			CreditorAccountID:      AccountPrimary,
			DebtorAccountID:        AccountSecondary,
			CreditorName:           "SellSense Marketplace",
			DebtorName:             "Mock Customer",
			PostingVersion:         1,
			TransactionReferenceID: "Sale #84312",
			Description:            "Marketplace settlement",
		},
		{
			ID:                     "txn-002",
			Type:                   transaction.TypeACH,
			Status:                 transaction.StatusCompleted,
			Amount:                 decimal.RequireFromString("389.99"),
			Currency:               "USD",
			PaymentDate:            "2025-08-04",
			EffectiveDate:          "2025-08-04",
			CreditorAccountID:      AccountPrimary,
			DebtorAccountID:        AccountSecondary,
			CreditorName:           "SellSense Marketplace",
			DebtorName:             "Mock Customer",
			PostingVersion:         1,
			TransactionReferenceID: "Sale #84977",
			Description:            "Marketplace settlement",
		},
		{
			ID:                     "txn-003",
			Type:                   transaction.TypeRTP,
			Status:                 transaction.StatusPending,
			Amount:                 decimal.RequireFromString("75.25"),
			Currency:               "USD",
			PaymentDate:            "2025-08-10",
			CreditorAccountID:      AccountSecondary,
			DebtorAccountID:        AccountPrimary,
			CreditorName:           "Mock Customer",
			DebtorName:             "SellSense Marketplace",
			PostingVersion:         1,
			TransactionReferenceID: "Refund #1204",
			Description:            "Order refund",
		},
		{
			ID:                     "txn-004",
			Type:                   transaction.TypeWire,
			Status:                 transaction.StatusCompleted,
			Amount:                 decimal.RequireFromString("2500.00"),
			Currency:               "USD",
			PaymentDate:            "2025-08-15",
			EffectiveDate:          "2025-08-15",
			CreditorAccountID:      AccountPrimary,
			DebtorAccountID:        AccountSecondary,
			CreditorName:           "SellSense Marketplace",
			DebtorName:             "Mock Customer",
			PostingVersion:         1,
			TransactionReferenceID: "Sale #85210",
			Description:            "Bulk order settlement",
		},
		{
			ID:                     "txn-005",
			Type:                   transaction.TypeACH,
			Status:                 transaction.StatusRejected,
			Amount:                 decimal.RequireFromString("42.00"),
			Currency:               "USD",
			PaymentDate:            "2025-08-20",
			CreditorAccountID:      AccountSecondary,
			DebtorAccountID:        AccountPrimary,
			CreditorName:           "Mock Customer",
			DebtorName:             "SellSense Marketplace",
			PostingVersion:         1,
			TransactionReferenceID: "Refund #1287",
			Description:            "Order refund",
		},
	}
}

// Question is a due-diligence question from the onboarding catalog.
type Question struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	ContentType string   `json:"contentType"`
	Values      []string `json:"values,omitempty"`
}

// Questions returns the static question catalog.
func Questions() []Question {
	return []Question{
		{
			ID:          "30005",
			Content:     "What is the total annual revenue of the business in USD?",
			ContentType: "INTEGER",
		},
		{
			ID:          "30158",
			Content:     "Does the business sell goods or services to customers outside the United States?",
			ContentType: "BOOLEAN",
			Values:      []string{"true", "false"},
		},
		{
			ID:          "30159",
			Content:     "What share of sales is processed through the marketplace?",
			Description: "Approximate percentage of gross sales settled through SellSense.",
			ContentType: "INTEGER",
		},
	}
}

// SampleDocumentPDF returns the placeholder PDF served for document
// downloads.
func SampleDocumentPDF() []byte {
	return []byte("%PDF-1.4\n" +
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n" +
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n" +
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>\nendobj\n" +
		"4 0 obj\n<< /Length 44 >>\nstream\nBT /F1 24 Tf 72 720 Td (Sample Document) Tj ET\nendstream\nendobj\n" +
		"trailer\n<< /Root 1 0 R >>\n%%EOF\n")
}
