// Package onboarding manages clients, parties, document requests and the
// sandbox verification flow.
package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/sellsense/ef-sandbox/internal/app/domain/client"
	"github.com/sellsense/ef-sandbox/internal/app/domain/docrequest"
	"github.com/sellsense/ef-sandbox/internal/app/domain/party"
	"github.com/sellsense/ef-sandbox/internal/app/seed"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
	"github.com/sellsense/ef-sandbox/pkg/logger"
)

// Default outstanding items attached to freshly created clients.
var (
	defaultQuestionIDs            = []string{"30005", "30158"}
	defaultAttestationDocumentIDs = []string{"abcd1c1d-6635-43ff-a8e5-b252926bddef"}
)

// Service owns the onboarding lifecycle.
type Service struct {
	clients     storage.ClientStore
	parties     storage.PartyStore
	docRequests storage.DocumentRequestStore
	log         *logger.Logger
}

// New constructs an onboarding service.
func New(clients storage.ClientStore, parties storage.PartyStore, docRequests storage.DocumentRequestStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("onboarding")
	}
	return &Service{clients: clients, parties: parties, docRequests: docRequests, log: log}
}

// ClientView is a client with its party ids expanded to full party records.
type ClientView struct {
	client.Client
	Parties []party.Party `json:"parties"`
}

func newClientID() string {
	return fmt.Sprintf("00%08d", rand.Intn(100000000))
}

func newPartyID() string {
	return fmt.Sprintf("2%09d", rand.Intn(1000000000))
}

func newDocumentRequestID() string {
	return fmt.Sprintf("%d", rand.Intn(90000)+10000)
}

func applyPartyDefaults(p *party.Party) {
	if p.PartyType == "" {
		p.PartyType = party.TypeOrganization
	}
	if len(p.Roles) == 0 {
		p.Roles = []string{"OWNER"}
	}
	if p.Status == "" {
		p.Status = "ACTIVE"
	}
	if p.ProfileStatus == "" {
		p.ProfileStatus = "COMPLETE"
	}
	if p.Preferences.DefaultLanguage == "" {
		p.Preferences.DefaultLanguage = "en-US"
	}
	p.Active = true
}

// CreateClientInput is the submission payload for a new client.
type CreateClientInput struct {
	Parties  []party.Party `json:"parties"`
	Products []string      `json:"products"`
}

// CreateClient registers a client with its submitted parties. Generated ids
// follow the upstream numbering scheme: clients are 00-prefixed, parties are
// 2-prefixed.
func (s *Service) CreateClient(ctx context.Context, input CreateClientInput) (ClientView, error) {
	if len(input.Parties) == 0 {
		return ClientView{}, fmt.Errorf("at least one party is required")
	}

	products := input.Products
	if len(products) == 0 {
		products = []string{"EMBEDDED_PAYMENTS"}
	}

	rootID := ""
	partyIDs := make([]string, 0, len(input.Parties))
	created := make([]party.Party, 0, len(input.Parties))
	for _, p := range input.Parties {
		if p.ID == "" {
			p.ID = newPartyID()
		}
		applyPartyDefaults(&p)
		if rootID == "" && p.PartyType == party.TypeOrganization {
			rootID = p.ID
		}
		created = append(created, p)
		partyIDs = append(partyIDs, p.ID)
	}
	if rootID == "" {
		rootID = partyIDs[0]
	}
	for i := range created {
		if created[i].ID != rootID && created[i].ParentPartyID == "" {
			created[i].ParentPartyID = rootID
		}
		stored, err := s.parties.CreateParty(ctx, created[i])
		if err != nil {
			return ClientView{}, fmt.Errorf("create party: %w", err)
		}
		created[i] = stored
	}

	c := client.Client{
		ID:       newClientID(),
		Status:   client.StatusNew,
		PartyID:  rootID,
		PartyIDs: partyIDs,
		Products: products,
		Outstanding: client.Outstanding{
			DocumentRequestIDs:     []string{},
			QuestionIDs:            append([]string(nil), defaultQuestionIDs...),
			AttestationDocumentIDs: append([]string(nil), defaultAttestationDocumentIDs...),
			PartyIDs:               []string{},
			PartyRoles:             []string{},
		},
	}

	stored, err := s.clients.CreateClient(ctx, c)
	if err != nil {
		return ClientView{}, err
	}
	s.log.WithField("client_id", stored.ID).
		WithField("parties", len(partyIDs)).
		Info("client created")
	return ClientView{Client: stored, Parties: created}, nil
}

// GetClient fetches a client with expanded parties. Parties that no longer
// resolve are dropped from the view.
func (s *Service) GetClient(ctx context.Context, id string) (ClientView, error) {
	c, err := s.clients.GetClient(ctx, id)
	if err != nil {
		return ClientView{}, err
	}
	return s.expand(ctx, c)
}

func (s *Service) expand(ctx context.Context, c client.Client) (ClientView, error) {
	parties := make([]party.Party, 0, len(c.PartyIDs))
	for _, id := range c.PartyIDs {
		p, err := s.parties.GetParty(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return ClientView{}, err
		}
		parties = append(parties, p)
	}
	return ClientView{Client: c, Parties: parties}, nil
}

// ListClients returns every client with its parties expanded.
func (s *Service) ListClients(ctx context.Context) ([]ClientView, error) {
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]ClientView, 0, len(clients))
	for _, c := range clients {
		view, err := s.expand(ctx, c)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// UpdateClientInput is the partial-update payload for a client.
type UpdateClientInput struct {
	AddParties         []party.Party             `json:"addParties"`
	AddProducts        []string                  `json:"addProducts"`
	QuestionResponses  []client.QuestionResponse `json:"questionResponses"`
	AddAttestations    []client.Attestation      `json:"addAttestations"`
	RemoveAttestations []client.Attestation      `json:"removeAttestations"`
}

// UpdateClient applies a partial update: new parties, products, question
// responses and attestations. Answered questions and provided attestations
// are removed from the outstanding lists; removed attestations go back on.
func (s *Service) UpdateClient(ctx context.Context, id string, input UpdateClientInput) (ClientView, error) {
	c, err := s.clients.GetClient(ctx, id)
	if err != nil {
		return ClientView{}, err
	}

	for _, p := range input.AddParties {
		if p.ID == "" {
			p.ID = newPartyID()
		}
		applyPartyDefaults(&p)
		if p.ParentPartyID == "" {
			p.ParentPartyID = c.PartyID
		}
		if _, err := s.parties.CreateParty(ctx, p); err != nil {
			return ClientView{}, fmt.Errorf("add party: %w", err)
		}
		c.PartyIDs = append(c.PartyIDs, p.ID)
	}

	for _, product := range input.AddProducts {
		if !containsString(c.Products, product) {
			c.Products = append(c.Products, product)
		}
	}

	for _, response := range input.QuestionResponses {
		replaced := false
		for i := range c.QuestionResponses {
			if c.QuestionResponses[i].QuestionID == response.QuestionID {
				c.QuestionResponses[i] = response
				replaced = true
				break
			}
		}
		if !replaced {
			c.QuestionResponses = append(c.QuestionResponses, response)
		}
		c.Outstanding.QuestionIDs = removeString(c.Outstanding.QuestionIDs, response.QuestionID)
	}

	for _, att := range input.AddAttestations {
		exists := false
		for _, existing := range c.Attestations {
			if existing.DocumentID == att.DocumentID {
				exists = true
				break
			}
		}
		if !exists {
			c.Attestations = append(c.Attestations, att)
		}
		c.Outstanding.AttestationDocumentIDs = removeString(c.Outstanding.AttestationDocumentIDs, att.DocumentID)
	}

	for _, att := range input.RemoveAttestations {
		next := c.Attestations[:0]
		for _, existing := range c.Attestations {
			if existing.DocumentID != att.DocumentID {
				next = append(next, existing)
			}
		}
		c.Attestations = next
		if !containsString(c.Outstanding.AttestationDocumentIDs, att.DocumentID) {
			c.Outstanding.AttestationDocumentIDs = append(c.Outstanding.AttestationDocumentIDs, att.DocumentID)
		}
	}

	updated, err := s.clients.UpdateClient(ctx, c)
	if err != nil {
		return ClientView{}, err
	}
	return s.expand(ctx, updated)
}

// AmendParty deep-merges a JSON patch into an existing party. Arrays are
// replaced wholesale, so a patch carrying roles overwrites the previous
// role set.
func (s *Service) AmendParty(ctx context.Context, id string, patch map[string]interface{}) (party.Party, error) {
	existing, err := s.parties.GetParty(ctx, id)
	if err != nil {
		return party.Party{}, err
	}

	raw, err := json.Marshal(existing)
	if err != nil {
		return party.Party{}, err
	}
	base := make(map[string]interface{})
	if err := json.Unmarshal(raw, &base); err != nil {
		return party.Party{}, err
	}

	delete(patch, "id")
	merged := mergeMaps(base, patch)

	buf, err := json.Marshal(merged)
	if err != nil {
		return party.Party{}, err
	}
	var updated party.Party
	if err := json.Unmarshal(buf, &updated); err != nil {
		return party.Party{}, fmt.Errorf("invalid party patch: %w", err)
	}
	updated.ID = id

	stored, err := s.parties.UpdateParty(ctx, updated)
	if err != nil {
		return party.Party{}, err
	}
	s.log.WithField("party_id", id).Info("party amended")
	return stored, nil
}

func mergeMaps(dst, src map[string]interface{}) map[string]interface{} {
	for key, value := range src {
		if srcMap, ok := value.(map[string]interface{}); ok {
			if dstMap, ok := dst[key].(map[string]interface{}); ok {
				dst[key] = mergeMaps(dstMap, srcMap)
				continue
			}
		}
		dst[key] = value
	}
	return dst
}

// ConsumerDevice identifies the device a verification was accepted from.
type ConsumerDevice struct {
	IPAddress string `json:"ipAddress"`
	SessionID string `json:"sessionId"`
}

// VerificationRequest is the verification submission payload.
type VerificationRequest struct {
	ConsumerDevice ConsumerDevice `json:"consumerDevice"`
}

// VerificationReceipt acknowledges an accepted verification run.
type VerificationReceipt struct {
	AcceptedAt     time.Time      `json:"acceptedAt"`
	ConsumerDevice ConsumerDevice `json:"consumerDevice"`
}

// VerifyClient runs the sandbox verification flow. The outcome is steered by
// the root party's tax identifier; unknown identifiers land the client in
// review. An INFORMATION_REQUESTED outcome regenerates document requests for
// the organization and every individual party.
func (s *Service) VerifyClient(ctx context.Context, clientID string, req VerificationRequest) (VerificationReceipt, error) {
	c, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return VerificationReceipt{}, err
	}

	rootID := c.PartyID
	if rootID == "" && len(c.PartyIDs) > 0 {
		rootID = c.PartyIDs[0]
	}
	root, err := s.parties.GetParty(ctx, rootID)
	if err != nil {
		return VerificationReceipt{}, fmt.Errorf("root party: %w", err)
	}

	outcome := seed.OutcomeForTaxID(root.TaxID())
	c.Status = outcome.Status
	if outcome.RecordIdentityResult {
		c.Results = &client.VerificationResults{CustomerIdentityStatus: string(outcome.Status)}
	}

	if outcome.RequestDocuments {
		if err := s.requestDocuments(ctx, &c, root); err != nil {
			return VerificationReceipt{}, err
		}
	}

	if _, err := s.clients.UpdateClient(ctx, c); err != nil {
		return VerificationReceipt{}, err
	}

	s.log.WithField("client_id", clientID).
		WithField("status", string(outcome.Status)).
		Info("client verification completed")
	return VerificationReceipt{
		AcceptedAt:     time.Now().UTC(),
		ConsumerDevice: req.ConsumerDevice,
	}, nil
}

func (s *Service) requestDocuments(ctx context.Context, c *client.Client, root party.Party) error {
	c.Outstanding.DocumentRequestIDs = []string{}

	orgID := newDocumentRequestID()
	orgRequest := seed.OrganizationDocumentRequest(orgID, c.ID, root.ID)
	if _, err := s.docRequests.CreateDocumentRequest(ctx, orgRequest); err != nil {
		return fmt.Errorf("create organization document request: %w", err)
	}
	c.Outstanding.DocumentRequestIDs = append(c.Outstanding.DocumentRequestIDs, orgID)

	for _, partyID := range c.PartyIDs {
		p, err := s.parties.GetParty(ctx, partyID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if p.PartyType != party.TypeIndividual {
			continue
		}

		requestID := newDocumentRequestID()
		request := seed.IndividualDocumentRequest(requestID, c.ID, p.ID)
		if _, err := s.docRequests.CreateDocumentRequest(ctx, request); err != nil {
			return fmt.Errorf("create individual document request: %w", err)
		}

		p.ValidationResponses = []party.ValidationResponse{
			{
				ValidationStatus:   party.ValidationNeedsInfo,
				ValidationType:     "ENTITY_VALIDATION",
				DocumentRequestIDs: []string{requestID},
			},
		}
		if _, err := s.parties.UpdateParty(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// ListDocumentRequests lists document requests for a client.
func (s *Service) ListDocumentRequests(ctx context.Context, clientID string) ([]docrequest.DocumentRequest, error) {
	return s.docRequests.ListDocumentRequests(ctx, clientID)
}

// GetDocumentRequest fetches a single document request.
func (s *Service) GetDocumentRequest(ctx context.Context, id string) (docrequest.DocumentRequest, error) {
	return s.docRequests.GetDocumentRequest(ctx, id)
}

// SubmitDocumentRequest marks a document request submitted and reconciles
// the owning client and party. When nothing else is outstanding the client
// advances to REVIEW_IN_PROGRESS.
func (s *Service) SubmitDocumentRequest(ctx context.Context, id string) (docrequest.DocumentRequest, error) {
	dr, err := s.docRequests.GetDocumentRequest(ctx, id)
	if err != nil {
		return docrequest.DocumentRequest{}, err
	}

	dr.Status = docrequest.StatusSubmitted
	dr, err = s.docRequests.UpdateDocumentRequest(ctx, dr)
	if err != nil {
		return docrequest.DocumentRequest{}, err
	}

	c, err := s.clients.GetClient(ctx, dr.ClientID)
	if err != nil {
		return docrequest.DocumentRequest{}, err
	}
	c.Outstanding.DocumentRequestIDs = removeString(c.Outstanding.DocumentRequestIDs, id)

	if dr.PartyID != "" {
		if err := s.detachFromPartyValidations(ctx, dr.PartyID, id); err != nil {
			return docrequest.DocumentRequest{}, err
		}
	}

	done, err := s.reviewReady(ctx, c)
	if err != nil {
		return docrequest.DocumentRequest{}, err
	}
	if done {
		c.Status = client.StatusReviewInProgress
	}

	if _, err := s.clients.UpdateClient(ctx, c); err != nil {
		return docrequest.DocumentRequest{}, err
	}

	s.log.WithField("document_request_id", id).
		WithField("client_id", c.ID).
		WithField("client_status", string(c.Status)).
		Info("document request submitted")
	return dr, nil
}

func (s *Service) detachFromPartyValidations(ctx context.Context, partyID, requestID string) error {
	p, err := s.parties.GetParty(ctx, partyID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	changed := false
	remaining := p.ValidationResponses[:0]
	for _, validation := range p.ValidationResponses {
		filtered := removeString(validation.DocumentRequestIDs, requestID)
		if len(filtered) != len(validation.DocumentRequestIDs) {
			changed = true
		}
		if len(filtered) == 0 {
			continue
		}
		validation.DocumentRequestIDs = filtered
		remaining = append(remaining, validation)
	}
	if !changed && len(remaining) == len(p.ValidationResponses) {
		return nil
	}
	p.ValidationResponses = remaining

	_, err = s.parties.UpdateParty(ctx, p)
	return err
}

func (s *Service) reviewReady(ctx context.Context, c client.Client) (bool, error) {
	if len(c.Outstanding.DocumentRequestIDs) > 0 {
		return false, nil
	}
	for _, partyID := range c.PartyIDs {
		p, err := s.parties.GetParty(ctx, partyID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return false, err
		}
		for _, validation := range p.ValidationResponses {
			if validation.ValidationStatus == party.ValidationNeedsInfo {
				return false, nil
			}
		}
	}
	return true, nil
}

// UpsertDocumentRequest creates or replaces a document request, filling in
// sandbox defaults.
func (s *Service) UpsertDocumentRequest(ctx context.Context, dr docrequest.DocumentRequest) (docrequest.DocumentRequest, error) {
	if dr.ID == "" {
		dr.ID = newDocumentRequestID()
	}
	if dr.Status == "" {
		dr.Status = docrequest.StatusActive
	}
	if dr.ValidForDays == 0 {
		dr.ValidForDays = 30
	}

	if _, err := s.docRequests.GetDocumentRequest(ctx, dr.ID); err == nil {
		return s.docRequests.UpdateDocumentRequest(ctx, dr)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return docrequest.DocumentRequest{}, err
	}
	return s.docRequests.CreateDocumentRequest(ctx, dr)
}

// Questions returns the catalog entries matching the requested ids; with no
// ids the whole catalog is returned.
func (s *Service) Questions(ids []string) []seed.Question {
	catalog := seed.Questions()
	if len(ids) == 0 {
		return catalog
	}
	result := make([]seed.Question, 0, len(ids))
	for _, q := range catalog {
		if containsString(ids, q.ID) {
			result = append(result, q)
		}
	}
	return result
}

// Document is uploaded document metadata. The sandbox does not retain file
// contents; downloads serve a placeholder.
type Document struct {
	ID           string    `json:"id"`
	Status       string    `json:"status"`
	DocumentType string    `json:"documentType"`
	FileName     string    `json:"fileName"`
	MimeType     string    `json:"mimeType"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateDocumentInput describes an uploaded document.
type CreateDocumentInput struct {
	DocumentType string `json:"documentType"`
	FileName     string `json:"fileName"`
	MimeType     string `json:"mimeType"`
}

// CreateDocument acknowledges a document upload.
func (s *Service) CreateDocument(input CreateDocumentInput) Document {
	doc := Document{
		ID:           uuid.NewString(),
		Status:       "ACTIVE",
		DocumentType: input.DocumentType,
		FileName:     input.FileName,
		MimeType:     input.MimeType,
		CreatedAt:    time.Now().UTC(),
	}
	if doc.DocumentType == "" {
		doc.DocumentType = "GOVERNMENT_ISSUED_ID"
	}
	if doc.FileName == "" {
		doc.FileName = "document.pdf"
	}
	if doc.MimeType == "" {
		doc.MimeType = "application/pdf"
	}
	return doc
}

// GetDocument returns metadata for a stored document id.
func (s *Service) GetDocument(id string) Document {
	return Document{
		ID:           id,
		Status:       "ACTIVE",
		DocumentType: "GOVERNMENT_ISSUED_ID",
		FileName:     "sample-document.pdf",
		MimeType:     "application/pdf",
		CreatedAt:    time.Now().UTC(),
	}
}

// DocumentFile returns the placeholder PDF served for every document.
func (s *Service) DocumentFile() []byte {
	return seed.SampleDocumentPDF()
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func removeString(values []string, target string) []string {
	result := values[:0]
	for _, v := range values {
		if v != target {
			result = append(result, v)
		}
	}
	return result
}
