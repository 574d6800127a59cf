package rules

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/emashae/payment-gateway-api/internal/domain"
)

func input(amount float64, currency string) Input {
	return Input{
		Amount:   decimal.NewFromFloat(amount),
		Currency: currency,
		TxTime:   time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC),
	}
}

func TestDecideCardTable(t *testing.T) {
	withEmail := func(in Input, email string) Input {
		in.CustomerEmail = email
		return in
	}
	withMeta := func(in Input, meta map[string]any) Input {
		in.Metadata = meta
		return in
	}
	atHour := func(in Input, hour int) Input {
		in.TxTime = time.Date(2024, 1, 15, hour, 0, 0, 0, time.UTC)
		return in
	}

	cases := []struct {
		name string
		card string
		in   Input
		want domain.TxStatus
	}{
		{"always approved", "1234567890123456", input(100, "USD"), domain.StatusApproved},
		{"always declined", "1111222233334444", input(100, "USD"), domain.StatusDeclined},
		{"usd only, usd", "9876543210987654", input(100, "USD"), domain.StatusApproved},
		{"usd only, cad", "9876543210987654", input(100, "CAD"), domain.StatusDeclined},
		{"min 50, at threshold", "5678901234567890", input(50, "USD"), domain.StatusApproved},
		{"min 50, below", "5678901234567890", input(49, "USD"), domain.StatusDeclined},
		{"divisible by 10, yes", "5432167890123456", input(100, "USD"), domain.StatusApproved},
		{"divisible by 10, no", "5432167890123456", input(95, "USD"), domain.StatusDeclined},
		{"cad only, cad", "1234432112344321", input(100, "CAD"), domain.StatusApproved},
		{"cad only, usd", "1234432112344321", input(100, "USD"), domain.StatusDeclined},
		{"metadata required, present", "8888888888888888", withMeta(input(10, "USD"), map[string]any{"order": "1"}), domain.StatusApproved},
		{"metadata required, empty", "8888888888888888", withMeta(input(10, "USD"), map[string]any{}), domain.StatusDeclined},
		{"metadata required, nil", "8888888888888888", input(10, "USD"), domain.StatusDeclined},
		{"always pending", "3333333333333333", input(100, "USD"), domain.StatusPending},
		{"example.com email", "1212121212121212", withEmail(input(10, "USD"), "user@example.com"), domain.StatusApproved},
		{"other email domain", "1212121212121212", withEmail(input(10, "USD"), "user@example.org"), domain.StatusDeclined},
		{"test metadata key present", "2222222222222222", withMeta(input(10, "USD"), map[string]any{"test": true}), domain.StatusDeclined},
		{"test metadata key absent", "2222222222222222", withMeta(input(10, "USD"), map[string]any{"prod": true}), domain.StatusApproved},
		{"nsf window, inside", "9999999999999999", input(150, "USD"), domain.StatusNSF},
		{"nsf window, low edge", "9999999999999999", input(100, "USD"), domain.StatusNSF},
		{"nsf window, high edge", "9999999999999999", input(200, "USD"), domain.StatusNSF},
		{"nsf window, below", "9999999999999999", input(50, "USD"), domain.StatusApproved},
		{"nsf window, above", "9999999999999999", input(201, "USD"), domain.StatusApproved},
		{"even amount", "1357913579135791", input(42, "USD"), domain.StatusApproved},
		{"odd amount", "1357913579135791", input(41, "USD"), domain.StatusDeclined},
		{"composite amount approves", "2468024680246802", input(4, "USD"), domain.StatusApproved},
		{"prime amount declines", "2468024680246802", input(3, "USD"), domain.StatusDeclined},
		{"eur over 500", "7777777777777777", input(501, "EUR"), domain.StatusApproved},
		{"eur at 500", "7777777777777777", input(500, "EUR"), domain.StatusDeclined},
		{"usd over 500", "7777777777777777", input(501, "USD"), domain.StatusDeclined},
		{"ends with 7", "6666666666666666", input(47, "USD"), domain.StatusDeclined},
		{"does not end with 7", "6666666666666666", input(48, "USD"), domain.StatusApproved},
		{"max 20, at threshold", "9988776655443322", input(20, "USD"), domain.StatusApproved},
		{"max 20, above", "9988776655443322", input(21, "USD"), domain.StatusDeclined},
		{"usd gate card, usd", "2233445566778899", input(50, "USD"), domain.StatusApproved},
		{"usd gate card, eur", "2233445566778899", input(50, "EUR"), domain.StatusDeclined},
		{"valid metadata key present", "3344556677889900", withMeta(input(50, "USD"), map[string]any{"valid": true}), domain.StatusApproved},
		{"valid metadata key absent", "3344556677889900", withMeta(input(50, "USD"), map[string]any{}), domain.StatusDeclined},
		{"divisible by 3 declines", "5566778899001122", input(99, "USD"), domain.StatusDeclined},
		{"not divisible by 3", "5566778899001122", input(100, "USD"), domain.StatusApproved},
		{"late transaction", "7788990011223344", atHour(input(50, "USD"), 21), domain.StatusDeclined},
		{"cutoff hour", "7788990011223344", atHour(input(50, "USD"), 20), domain.StatusDeclined},
		{"afternoon transaction", "7788990011223344", atHour(input(50, "USD"), 14), domain.StatusApproved},
		{"gbp allowed", "8899001122334455", input(50, "GBP"), domain.StatusApproved},
		{"aud allowed", "8899001122334455", input(50, "AUD"), domain.StatusApproved},
		{"usd not allowed", "8899001122334455", input(50, "USD"), domain.StatusDeclined},
		{"test email declines", "9900112233445566", withEmail(input(50, "USD"), "user@test.com"), domain.StatusDeclined},
		{"clean email approves", "9900112233445566", withEmail(input(50, "USD"), "user@shop.com"), domain.StatusApproved},
		{"explicit zero card", "0000000000000000", input(100, "USD"), domain.StatusDeclined},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Decide(tc.card, tc.in))
		})
	}
}

func TestDecideUnknownCardDeclines(t *testing.T) {
	for _, card := range []string{
		"0000000000000001",
		"4242424242424242",
		"",
		"123",
	} {
		assert.Equal(t, domain.StatusDeclined, Decide(card, input(100, "USD")), "card %q", card)
	}
}

func TestDecideDuplicateWindow(t *testing.T) {
	in := input(100, "USD")
	assert.Equal(t, domain.StatusApproved, Decide("6789012345678901", in), "no prior transaction")

	recent := time.Now().Add(-2 * time.Minute)
	in.PriorTxTime = &recent
	assert.Equal(t, domain.StatusDeclined, Decide("6789012345678901", in), "prior within window")

	old := time.Now().Add(-30 * time.Minute)
	in.PriorTxTime = &old
	assert.Equal(t, domain.StatusApproved, Decide("6789012345678901", in), "prior outside window")
}

func TestDecideIsDeterministic(t *testing.T) {
	in := input(123.45, "EUR")
	in.CustomerEmail = "user@example.com"
	in.Metadata = map[string]any{"valid": 1, "test": 1}

	for card := range cardRules {
		if card == "6789012345678901" {
			continue // wall-clock dependent
		}
		first := Decide(card, in)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Decide(card, in), "card %s", card)
		}
	}
}
