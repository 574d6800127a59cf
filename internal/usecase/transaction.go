package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/emashae/payment-gateway-api/internal/domain"
	"github.com/emashae/payment-gateway-api/internal/rules"
)

// Store is the persistence surface the intake needs. The repository package
// provides the SQLite implementation.
type Store interface {
	InsertTransaction(ctx context.Context, t *domain.Transaction) error
	LatestCardTime(ctx context.Context, maskedCard string) (*time.Time, error)
}

type TransactionUsecase struct {
	repo Store
}

func NewTransactionUsecase(r Store) *TransactionUsecase {
	return &TransactionUsecase{repo: r}
}

// CreateInput is a validated authorization request. CardNumber is the raw
// 16-digit PAN; it is masked before anything is stored.
type CreateInput struct {
	CardNumber      string
	Amount          decimal.Decimal
	Currency        string
	CustomerEmail   string
	Metadata        map[string]any
	TransactionTime *time.Time
}

// CreateTransaction masks the PAN, runs the card rule table and persists the
// resulting record. Exactly one record is written per successful call.
func (u *TransactionUsecase) CreateTransaction(ctx context.Context, in CreateInput) (*domain.Transaction, error) {
	masked := MaskCardNumber(in.CardNumber)

	// The duplicate-window rule needs the previous transaction time for the
	// same card; the lookup goes through the masked form so the raw PAN
	// never reaches storage.
	prior, err := u.repo.LatestCardTime(ctx, masked)
	if err != nil {
		return nil, fmt.Errorf("prior transaction lookup: %w", err)
	}

	txTime := time.Now()
	if in.TransactionTime != nil {
		txTime = *in.TransactionTime
	}
	metadata := in.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	status := rules.Decide(in.CardNumber, rules.Input{
		Amount:        in.Amount,
		Currency:      in.Currency,
		CustomerEmail: in.CustomerEmail,
		Metadata:      metadata,
		PriorTxTime:   prior,
		TxTime:        txTime,
	})

	now := time.Now().UTC()
	tx := &domain.Transaction{
		ID:               uuid.New().String(),
		MaskedCardNumber: masked,
		Amount:           in.Amount,
		Currency:         in.Currency,
		CustomerEmail:    in.CustomerEmail,
		Status:           status,
		Metadata:         metadata,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := u.repo.InsertTransaction(ctx, tx); err != nil {
		return nil, err
	}

	return tx, nil
}

// MaskCardNumber keeps the first six and last four digits and masks the
// middle: 1234567890123456 -> 123456******3456.
func MaskCardNumber(card string) string {
	return card[:6] + "******" + card[len(card)-4:]
}
