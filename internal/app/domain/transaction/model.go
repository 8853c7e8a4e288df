package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status of a payment transaction.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusRejected  Status = "REJECTED"
	StatusReturned  Status = "RETURNED"
)

// Payment rails supported by the sandbox.
const (
	TypeACH      = "ACH"
	TypeWire     = "WIRE"
	TypeRTP      = "RTP"
	TypeInternal = "INTERNAL"
)

// Transaction is a payment moving funds from the debtor account to the
// creditor account. Completed transactions are reflected in account balances.
type Transaction struct {
	ID                     string          `json:"id"`
	Type                   string          `json:"type"`
	Status                 Status          `json:"status"`
	Amount                 decimal.Decimal `json:"amount"`
	Currency               string          `json:"currency"`
	PaymentDate            string          `json:"paymentDate"`
	EffectiveDate          string          `json:"effectiveDate,omitempty"`
	CreditorAccountID      string          `json:"creditorAccountId"`
	DebtorAccountID        string          `json:"debtorAccountId"`
	CreditorName           string          `json:"creditorName"`
	DebtorName             string          `json:"debtorName"`
	RecipientID            string          `json:"recipientId,omitempty"`
	PostingVersion         int             `json:"postingVersion"`
	TransactionReferenceID string          `json:"transactionReferenceId"`
	Description            string          `json:"description,omitempty"`
	CreatedAt              time.Time       `json:"createdAt"`
	UpdatedAt              time.Time       `json:"-"`
}
