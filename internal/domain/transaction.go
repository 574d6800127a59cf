package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TxStatus string

const (
	StatusApproved TxStatus = "approved"
	StatusDeclined TxStatus = "declined"
	StatusNSF      TxStatus = "nsf"
	StatusPending  TxStatus = "pending"
)

// Transaction carries the masked card number only; the raw PAN is never
// persisted or returned.
type Transaction struct {
	ID               string
	MaskedCardNumber string
	Amount           decimal.Decimal
	Currency         string
	CustomerEmail    string
	Status           TxStatus
	Metadata         map[string]any
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
