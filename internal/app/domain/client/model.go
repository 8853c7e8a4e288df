package client

import "time"

// Status tracks a client's position in the onboarding pipeline.
type Status string

const (
	StatusNew                  Status = "NEW"
	StatusActive               Status = "ACTIVE"
	StatusInformationRequested Status = "INFORMATION_REQUESTED"
	StatusReviewInProgress     Status = "REVIEW_IN_PROGRESS"
	StatusApproved             Status = "APPROVED"
	StatusRejected             Status = "REJECTED"
)

// Outstanding lists the items a client still owes before review can finish.
type Outstanding struct {
	DocumentRequestIDs     []string `json:"documentRequestIds"`
	QuestionIDs            []string `json:"questionIds"`
	AttestationDocumentIDs []string `json:"attestationDocumentIds"`
	PartyIDs               []string `json:"partyIds"`
	PartyRoles             []string `json:"partyRoles"`
}

// QuestionResponse records an answer to a due-diligence question.
type QuestionResponse struct {
	QuestionID string   `json:"questionId"`
	Values     []string `json:"values"`
}

// Attestation records acceptance of an attestation document.
type Attestation struct {
	DocumentID string `json:"documentId"`
}

// VerificationResults carries identity verification outcomes set during
// client verification.
type VerificationResults struct {
	CustomerIdentityStatus string `json:"customerIdentityStatus,omitempty"`
}

// Client is an onboarding client record. PartyID points at the root
// organization party; PartyIDs holds every party attached to the client.
type Client struct {
	ID                string               `json:"id"`
	Status            Status               `json:"status"`
	PartyID           string               `json:"partyId"`
	PartyIDs          []string             `json:"-"`
	Products          []string             `json:"products"`
	Outstanding       Outstanding          `json:"outstanding"`
	QuestionResponses []QuestionResponse   `json:"questionResponses"`
	Attestations      []Attestation        `json:"attestations"`
	Results           *VerificationResults `json:"results,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"-"`
}
