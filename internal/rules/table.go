package rules

import "github.com/emashae/payment-gateway-api/internal/domain"

// cardRules is the fixed authorization table: each known card number binds to
// exactly one rule. The map is never mutated after init; unmatched numbers
// fall through to declined in Decide.
var cardRules = map[string]Rule{
	"1234567890123456": constant(domain.StatusApproved),
	"1111222233334444": constant(domain.StatusDeclined),
	"9876543210987654": currencyEquals("USD"),
	"5678901234567890": amountAtLeast(50),
	"5432167890123456": amountDivisibleBy(10, true),
	"1234432112344321": currencyEquals("CAD"),
	"6789012345678901": duplicateWithinMinutes(10),
	"8888888888888888": metadataNonEmpty(),
	"3333333333333333": constant(domain.StatusPending),
	"1212121212121212": emailDomainIs("example.com"),
	"2222222222222222": metadataHasKey("test", false),
	"9999999999999999": amountBetween(100, 200),
	"1357913579135791": amountParity(true),
	"2468024680246802": amountComposite(),
	"7777777777777777": currencyAndAmountAbove("EUR", 500),
	"6666666666666666": amountLastDigit('7', true),
	"9988776655443322": amountAtMost(20),
	"2233445566778899": currencyEquals("USD"),
	"3344556677889900": metadataHasKey("valid", true),
	"5566778899001122": amountDivisibleBy(3, false),
	"7788990011223344": txHourAtLeast(20),
	"8899001122334455": currencyIn("GBP", "AUD"),
	"9900112233445566": emailContains("test", true),
	// redundant with the Decide default, kept as an explicit table entry
	"0000000000000000": constant(domain.StatusDeclined),
}
