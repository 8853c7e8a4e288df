package recipient

import "time"

// Type distinguishes linked settlement accounts from payout recipients.
type Type string

const (
	TypeLinkedAccount Type = "LINKED_ACCOUNT"
	TypeRecipient     Type = "RECIPIENT"
)

// Status of a recipient.
type Status string

const (
	StatusActive                 Status = "ACTIVE"
	StatusMicrodepositsInitiated Status = "MICRODEPOSITS_INITIATED"
	StatusReadyForValidation     Status = "READY_FOR_VALIDATION"
	StatusPending                Status = "PENDING"
	StatusInactive               Status = "INACTIVE"
	StatusRejected               Status = "REJECTED"
)

// PartyDetails names the counterparty behind a recipient.
type PartyDetails struct {
	Type         string `json:"type"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	BusinessName string `json:"businessName,omitempty"`
}

// RoutingInformation is one routing entry on a recipient account.
type RoutingInformation struct {
	RoutingCodeType string `json:"routingCodeType"`
	RoutingNumber   string `json:"routingNumber"`
	TransactionType string `json:"transactionType,omitempty"`
	CountryCode     string `json:"countryCode,omitempty"`
}

// AccountDetails is the external bank account a recipient is paid into.
type AccountDetails struct {
	Number             string               `json:"number"`
	Type               string               `json:"type,omitempty"`
	CountryCode        string               `json:"countryCode,omitempty"`
	RoutingInformation []RoutingInformation `json:"routingInformation,omitempty"`
}

// Recipient is a payout destination owned by a client.
type Recipient struct {
	ID                   string          `json:"id"`
	Type                 Type            `json:"type"`
	Status               Status          `json:"status"`
	ClientID             string          `json:"clientId"`
	PartyDetails         *PartyDetails   `json:"partyDetails,omitempty"`
	Account              *AccountDetails `json:"account,omitempty"`
	VerificationAttempts int             `json:"verificationAttempts"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// DisplayName derives the human-readable counterparty name.
func (r Recipient) DisplayName() string {
	if r.PartyDetails == nil {
		return ""
	}
	if r.PartyDetails.Type == "ORGANIZATION" && r.PartyDetails.BusinessName != "" {
		return r.PartyDetails.BusinessName
	}
	if r.PartyDetails.FirstName != "" || r.PartyDetails.LastName != "" {
		name := r.PartyDetails.FirstName
		if r.PartyDetails.LastName != "" {
			if name != "" {
				name += " "
			}
			name += r.PartyDetails.LastName
		}
		return name
	}
	return ""
}
