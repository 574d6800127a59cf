package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/emashae/payment-gateway-api/internal/domain"
)

var ErrNotFound = errors.New("not found")

// fixed-width so the TEXT column sorts chronologically; RFC3339Nano trims
// trailing zeros and does not
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(dsn string) (*SQLiteRepo, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.Exec("PRAGMA foreign_keys = ON;")
	db.Exec("PRAGMA journal_mode = WAL;")
	db.Exec("PRAGMA busy_timeout = 5000;")

	r := &SQLiteRepo{db: db}
	if err := r.migrate(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepo) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS transactions(
			id TEXT PRIMARY KEY,
			masked_card_number TEXT NOT NULL,
			amount TEXT NOT NULL,
			currency TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			status TEXT NOT NULL,
			metadata TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_tx_masked_card ON transactions(masked_card_number);
		CREATE INDEX IF NOT EXISTS idx_tx_status ON transactions(status);
	`
	_, err := r.db.Exec(schema)
	return err
}

func (r *SQLiteRepo) InsertTransaction(ctx context.Context, t *domain.Transaction) error {
	meta, err := json.Marshal(t.Metadata)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	q := `
		INSERT INTO transactions(
			id,
			masked_card_number,
			amount,
			currency,
			customer_email,
			status,
			metadata,
			created_at,
			updated_at
		)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?);
	`

	_, err = r.db.ExecContext(
		ctx, q,
		t.ID,
		t.MaskedCardNumber,
		t.Amount.String(),
		t.Currency,
		t.CustomerEmail,
		string(t.Status),
		string(meta),
		t.CreatedAt.UTC().Format(timeLayout),
		t.UpdatedAt.UTC().Format(timeLayout),
	)

	return err
}

func (r *SQLiteRepo) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	q := `
		SELECT
			id,
			masked_card_number,
			amount,
			currency,
			customer_email,
			status,
			metadata,
			created_at,
			updated_at
		FROM transactions WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, q, id)
	t, err := scanTx(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return t, err
}

// LatestCardTime returns the creation time of the most recent transaction
// for the masked card, or nil when the card has no history.
func (r *SQLiteRepo) LatestCardTime(ctx context.Context, maskedCard string) (*time.Time, error) {
	q := `
		SELECT created_at FROM transactions
		WHERE masked_card_number = ?
		ORDER BY created_at DESC LIMIT 1
	`

	var createdStr string
	err := r.db.QueryRowContext(ctx, q, maskedCard).Scan(&createdStr)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	ts, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parse created time: %w", err)
	}

	return &ts, nil
}

type TxFilter struct {
	Status   domain.TxStatus
	Currency string
}

func (r *SQLiteRepo) ListTransactions(ctx context.Context, f TxFilter, limit, offset int) ([]domain.Transaction, error) {
	q := `
		SELECT
			id,
			masked_card_number,
			amount,
			currency,
			customer_email,
			status,
			metadata,
			created_at,
			updated_at
		FROM transactions WHERE 1 = 1
	`
	args := []any{}

	if f.Status != "" {
		q += " AND status = ?"
		args = append(args, string(f.Status))
	}

	if f.Currency != "" {
		q += " AND currency = ?"
		args = append(args, f.Currency)
	}

	q += " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []domain.Transaction
	for rows.Next() {
		t, err := scanTx(rows)
		if err != nil {
			return nil, err
		}

		res = append(res, *t)
	}

	return res, rows.Err()
}

func scanTx(scanner interface {
	Scan(dest ...any) error
}) (*domain.Transaction, error) {
	var t domain.Transaction
	var amountStr string
	var status string
	var metaStr string
	var createdStr string
	var updatedStr string

	if err := scanner.Scan(
		&t.ID,
		&t.MaskedCardNumber,
		&amountStr,
		&t.Currency,
		&t.CustomerEmail,
		&status,
		&metaStr,
		&createdStr,
		&updatedStr,
	); err != nil {
		return nil, err
	}

	t.Status = domain.TxStatus(status)

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parse amount: %w", err)
	}
	t.Amount = amount

	if err := json.Unmarshal([]byte(metaStr), &t.Metadata); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	created, err := time.Parse(time.RFC3339Nano, createdStr)
	if err != nil {
		return nil, fmt.Errorf("parse created time: %w", err)
	}
	t.CreatedAt = created

	updated, err := time.Parse(time.RFC3339Nano, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parse updated time: %w", err)
	}
	t.UpdatedAt = updated

	return &t, nil
}
