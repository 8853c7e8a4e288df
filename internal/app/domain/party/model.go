package party

import "time"

// Type distinguishes organization parties from individual ones.
type Type string

const (
	TypeOrganization Type = "ORGANIZATION"
	TypeIndividual   Type = "INDIVIDUAL"
)

// Identification id types carried on party detail blocks.
const (
	IDTypeEIN = "EIN"
	IDTypeSSN = "SSN"
)

// Identification is a government identifier attached to a party.
type Identification struct {
	IDType string `json:"idType"`
	Value  string `json:"value"`
}

// OrganizationDetails describes an organization party.
type OrganizationDetails struct {
	OrganizationName   string           `json:"organizationName"`
	OrganizationType   string           `json:"organizationType,omitempty"`
	CountryOfFormation string           `json:"countryOfFormation,omitempty"`
	OrganizationIDs    []Identification `json:"organizationIds,omitempty"`
}

// IndividualDetails describes an individual party.
type IndividualDetails struct {
	FirstName          string           `json:"firstName"`
	LastName           string           `json:"lastName"`
	JobTitle           string           `json:"jobTitle,omitempty"`
	CountryOfResidence string           `json:"countryOfResidence,omitempty"`
	IndividualIDs      []Identification `json:"individualIds,omitempty"`
}

// Validation statuses reported on parties during review.
const (
	ValidationNeedsInfo = "NEEDS_INFO"
	ValidationValidated = "VALIDATED"
)

// ValidationResponse links a party validation to the document requests it
// spawned.
type ValidationResponse struct {
	ValidationStatus   string   `json:"validationStatus"`
	ValidationType     string   `json:"validationType"`
	DocumentRequestIDs []string `json:"documentRequestIds"`
}

// Preferences holds party-level preferences.
type Preferences struct {
	DefaultLanguage string `json:"defaultLanguage"`
}

// Party is a person or organization attached to a client.
type Party struct {
	ID                  string               `json:"id"`
	PartyType           Type                 `json:"partyType"`
	Roles               []string             `json:"roles"`
	ParentPartyID       string               `json:"parentPartyId,omitempty"`
	Email               string               `json:"email,omitempty"`
	Active              bool                 `json:"active"`
	Status              string               `json:"status"`
	ProfileStatus       string               `json:"profileStatus"`
	Preferences         Preferences          `json:"preferences"`
	OrganizationDetails *OrganizationDetails `json:"organizationDetails,omitempty"`
	IndividualDetails   *IndividualDetails   `json:"individualDetails,omitempty"`
	ValidationResponses []ValidationResponse `json:"validationResponse,omitempty"`
	CreatedAt           time.Time            `json:"createdAt"`
	UpdatedAt           time.Time            `json:"-"`
}

// TaxID returns the party's primary government identifier: the EIN for
// organizations, the SSN for individuals.
func (p Party) TaxID() string {
	if p.OrganizationDetails != nil {
		for _, id := range p.OrganizationDetails.OrganizationIDs {
			if id.IDType == IDTypeEIN {
				return id.Value
			}
		}
	}
	if p.IndividualDetails != nil {
		for _, id := range p.IndividualDetails.IndividualIDs {
			if id.IDType == IDTypeSSN {
				return id.Value
			}
		}
	}
	return ""
}
