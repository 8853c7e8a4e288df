package account

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance type codes reported by the ledger.
const (
	BalanceTypeAvailable = "ITAV" // interim available
	BalanceTypeBooked    = "ITBD" // interim booked
)

// RoutingInformation is one routing entry on a platform account.
type RoutingInformation struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// PaymentRoutingInformation carries the account and routing numbers payments
// settle against.
type PaymentRoutingInformation struct {
	AccountNumber      string               `json:"accountNumber"`
	Country            string               `json:"country,omitempty"`
	RoutingInformation []RoutingInformation `json:"routingInformation,omitempty"`
}

// Account is a platform ledger account owned by a client.
type Account struct {
	ID                        string                     `json:"id"`
	ClientID                  string                     `json:"clientId"`
	Label                     string                     `json:"label"`
	State                     string                     `json:"state"`
	Category                  string                     `json:"category"`
	PaymentRoutingInformation *PaymentRoutingInformation `json:"paymentRoutingInformation,omitempty"`
	CreatedAt                 time.Time                  `json:"createdAt"`
	UpdatedAt                 time.Time                  `json:"-"`
}

// TypeAmount is a single balance figure keyed by its type code.
type TypeAmount struct {
	TypeCode string          `json:"typeCode"`
	Amount   decimal.Decimal `json:"amount"`
}

// Balance is the current balance record for an account. One balance record
// exists per account.
type Balance struct {
	ID           string       `json:"id"`
	AccountID    string       `json:"accountId"`
	Date         string       `json:"date"`
	Currency     string       `json:"currency"`
	BalanceTypes []TypeAmount `json:"balanceTypes"`
	UpdatedAt    time.Time    `json:"-"`
}
