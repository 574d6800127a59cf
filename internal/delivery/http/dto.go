package httpd

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/emashae/payment-gateway-api/internal/domain"
)

// transactionTimeLayout matches the wire format "2024-01-15 14:30:00".
const transactionTimeLayout = "2006-01-02 15:04:05"

type CreateTransactionReq struct {
	CardNumber      string          `json:"card_number" validate:"required,len=16,numeric"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency" validate:"required,len=3"`
	CustomerEmail   string          `json:"customer_email" validate:"required,email"`
	Metadata        map[string]any  `json:"metadata"`
	TransactionTime string          `json:"transaction_time"`
}

type ValidationErrResp struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`
}

type TxItem struct {
	ID               string          `json:"id"`
	MaskedCardNumber string          `json:"masked_card_number"`
	Amount           decimal.Decimal `json:"amount"`
	Currency         string          `json:"currency"`
	CustomerEmail    string          `json:"customer_email"`
	Status           string          `json:"status"`
	Metadata         map[string]any  `json:"metadata"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func toTxItem(t domain.Transaction) TxItem {
	return TxItem{
		ID:               t.ID,
		MaskedCardNumber: t.MaskedCardNumber,
		Amount:           t.Amount,
		Currency:         t.Currency,
		CustomerEmail:    t.CustomerEmail,
		Status:           string(t.Status),
		Metadata:         t.Metadata,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}
