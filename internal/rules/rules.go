package rules

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emashae/payment-gateway-api/internal/domain"
)

// Input holds the validated transaction attributes a rule may inspect.
// Amount is in the transaction currency's major unit.
type Input struct {
	Amount        decimal.Decimal
	Currency      string
	CustomerEmail string
	Metadata      map[string]any
	PriorTxTime   *time.Time
	TxTime        time.Time
}

// A Rule maps transaction attributes to an authorization decision. Rules are
// pure and total: they never fail and always return one of the four statuses.
type Rule func(Input) domain.TxStatus

// Decide resolves the card number against the rule table. Unrecognized card
// numbers are declined.
func Decide(cardNumber string, in Input) domain.TxStatus {
	if rule, ok := cardRules[cardNumber]; ok {
		return rule(in)
	}
	return domain.StatusDeclined
}
