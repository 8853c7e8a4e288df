package docrequest

import "time"

// Status of a document request.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusSubmitted Status = "SUBMITTED"
	StatusClosed    Status = "CLOSED"
	StatusExpired   Status = "EXPIRED"
)

// Requirement describes one acceptable document group.
type Requirement struct {
	DocumentTypes []string `json:"documentTypes"`
	MinRequired   int      `json:"minRequired"`
}

// DocumentRequest asks a client (or one of its parties) to upload
// supporting documents.
type DocumentRequest struct {
	ID           string        `json:"id"`
	ClientID     string        `json:"clientId"`
	PartyID      string        `json:"partyId,omitempty"`
	Status       Status        `json:"status"`
	Description  string        `json:"description"`
	Requirements []Requirement `json:"requirements"`
	ValidForDays int           `json:"validForDays"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"-"`
}
