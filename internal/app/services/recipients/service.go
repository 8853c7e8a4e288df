// Package recipients manages payout recipients and linked accounts,
// including the microdeposit verification flow.
package recipients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sellsense/ef-sandbox/internal/app/domain/recipient"
	"github.com/sellsense/ef-sandbox/internal/app/storage"
	"github.com/sellsense/ef-sandbox/pkg/logger"
)

// ErrInvalidAmounts is returned when a microdeposit verification does not
// carry exactly two amounts.
var ErrInvalidAmounts = errors.New("invalid microdeposit amounts")

// ErrAmountMismatch is returned when the submitted amounts do not match the
// deposited pair and the recipient may still retry.
var ErrAmountMismatch = errors.New("microdeposit amounts do not match")

// ErrMaxAttemptsExceeded is returned once a recipient has exhausted its
// verification attempts; the recipient is marked REJECTED.
var ErrMaxAttemptsExceeded = errors.New("microdeposit verification attempts exceeded")

const defaultClientID = "client-001"

// The sandbox deposits a fixed pair of amounts into every linked account.
// Verification succeeds only for this pair, in either order, within
// maxVerificationAttempts tries.
const (
	microdepositFirst       = 0.23
	microdepositSecond      = 0.47
	maxVerificationAttempts = 3
)

// Service owns the recipient lifecycle.
type Service struct {
	recipients storage.RecipientStore
	log        *logger.Logger
}

// New constructs a recipients service.
func New(recipients storage.RecipientStore, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("recipients")
	}
	return &Service{recipients: recipients, log: log}
}

// CreateRecipient registers a recipient. Linked accounts always start in
// MICRODEPOSITS_INITIATED awaiting microdeposit verification; other
// recipients default to ACTIVE.
func (s *Service) CreateRecipient(ctx context.Context, rcp recipient.Recipient) (recipient.Recipient, error) {
	if rcp.ID == "" {
		rcp.ID = uuid.NewString()
	}
	if rcp.Type == "" {
		rcp.Type = recipient.TypeLinkedAccount
	}
	if rcp.ClientID == "" {
		rcp.ClientID = defaultClientID
	}
	switch {
	case rcp.Type == recipient.TypeLinkedAccount:
		rcp.Status = recipient.StatusMicrodepositsInitiated
	case rcp.Status == "":
		rcp.Status = recipient.StatusActive
	}
	rcp.VerificationAttempts = 0

	created, err := s.recipients.CreateRecipient(ctx, rcp)
	if err != nil {
		return recipient.Recipient{}, err
	}
	s.log.WithField("recipient_id", created.ID).
		WithField("type", string(created.Type)).
		WithField("status", string(created.Status)).
		Info("recipient created")
	return created, nil
}

// GetRecipient fetches a single recipient.
func (s *Service) GetRecipient(ctx context.Context, id string) (recipient.Recipient, error) {
	return s.recipients.GetRecipient(ctx, id)
}

// Filter narrows recipient listings.
type Filter struct {
	Type   string
	Status string
}

// ListRecipients returns recipients matching the filter in creation order.
func (s *Service) ListRecipients(ctx context.Context, filter Filter) ([]recipient.Recipient, error) {
	all, err := s.recipients.ListRecipients(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]recipient.Recipient, 0, len(all))
	for _, rcp := range all {
		if filter.Type != "" && !strings.EqualFold(string(rcp.Type), filter.Type) {
			continue
		}
		if filter.Status != "" && !strings.EqualFold(string(rcp.Status), filter.Status) {
			continue
		}
		result = append(result, rcp)
	}
	return result, nil
}

// AmendRecipient deep-merges a JSON patch into an existing recipient.
// Arrays, including routing information, are replaced wholesale.
func (s *Service) AmendRecipient(ctx context.Context, id string, patch map[string]interface{}) (recipient.Recipient, error) {
	existing, err := s.recipients.GetRecipient(ctx, id)
	if err != nil {
		return recipient.Recipient{}, err
	}

	raw, err := json.Marshal(existing)
	if err != nil {
		return recipient.Recipient{}, err
	}
	base := make(map[string]interface{})
	if err := json.Unmarshal(raw, &base); err != nil {
		return recipient.Recipient{}, err
	}

	delete(patch, "id")
	merged := mergeMaps(base, patch)

	buf, err := json.Marshal(merged)
	if err != nil {
		return recipient.Recipient{}, err
	}
	var updated recipient.Recipient
	if err := json.Unmarshal(buf, &updated); err != nil {
		return recipient.Recipient{}, fmt.Errorf("invalid recipient patch: %w", err)
	}
	updated.ID = id

	stored, err := s.recipients.UpdateRecipient(ctx, updated)
	if err != nil {
		return recipient.Recipient{}, err
	}
	s.log.WithField("recipient_id", id).Info("recipient amended")
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

// MicrodepositResult acknowledges a successful verification.
type MicrodepositResult struct {
	Status string `json:"status"`
}

// VerifyMicrodeposit checks the submitted amounts against the deposited
// pair and activates the recipient on a match. A mismatch consumes one of
// the recipient's verification attempts; the third failure marks the
// recipient REJECTED and every later attempt fails outright.
func (s *Service) VerifyMicrodeposit(ctx context.Context, id string, amounts []float64) (MicrodepositResult, error) {
	rcp, err := s.recipients.GetRecipient(ctx, id)
	if err != nil {
		return MicrodepositResult{}, err
	}

	if len(amounts) != 2 {
		s.log.WithField("recipient_id", id).
			WithField("amounts", len(amounts)).
			Warn("microdeposit verification rejected")
		return MicrodepositResult{}, ErrInvalidAmounts
	}

	if rcp.VerificationAttempts >= maxVerificationAttempts {
		return MicrodepositResult{}, ErrMaxAttemptsExceeded
	}
	rcp.VerificationAttempts++

	if amountsMatch(amounts) {
		rcp.Status = recipient.StatusActive
		if _, err := s.recipients.UpdateRecipient(ctx, rcp); err != nil {
			return MicrodepositResult{}, err
		}
		s.log.WithField("recipient_id", id).Info("microdeposits verified")
		return MicrodepositResult{Status: "VERIFIED"}, nil
	}

	if rcp.VerificationAttempts >= maxVerificationAttempts {
		rcp.Status = recipient.StatusRejected
		if _, err := s.recipients.UpdateRecipient(ctx, rcp); err != nil {
			return MicrodepositResult{}, err
		}
		s.log.WithField("recipient_id", id).Warn("microdeposit attempts exhausted")
		return MicrodepositResult{}, ErrMaxAttemptsExceeded
	}

	if _, err := s.recipients.UpdateRecipient(ctx, rcp); err != nil {
		return MicrodepositResult{}, err
	}
	s.log.WithField("recipient_id", id).
		WithField("attempts", rcp.VerificationAttempts).
		Warn("microdeposit verification failed")
	return MicrodepositResult{}, ErrAmountMismatch
}

func amountsMatch(amounts []float64) bool {
	return (amounts[0] == microdepositFirst && amounts[1] == microdepositSecond) ||
		(amounts[0] == microdepositSecond && amounts[1] == microdepositFirst)
}
