package rules

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/emashae/payment-gateway-api/internal/domain"
)

func approveIf(ok bool) domain.TxStatus {
	if ok {
		return domain.StatusApproved
	}
	return domain.StatusDeclined
}

func constant(status domain.TxStatus) Rule {
	return func(Input) domain.TxStatus { return status }
}

func currencyEquals(code string) Rule {
	return func(in Input) domain.TxStatus {
		return approveIf(in.Currency == code)
	}
}

func currencyIn(codes ...string) Rule {
	return func(in Input) domain.TxStatus {
		for _, c := range codes {
			if in.Currency == c {
				return domain.StatusApproved
			}
		}
		return domain.StatusDeclined
	}
}

func currencyAndAmountAbove(code string, min int64) Rule {
	threshold := decimal.NewFromInt(min)
	return func(in Input) domain.TxStatus {
		return approveIf(in.Currency == code && in.Amount.GreaterThan(threshold))
	}
}

func amountAtLeast(min int64) Rule {
	threshold := decimal.NewFromInt(min)
	return func(in Input) domain.TxStatus {
		return approveIf(!in.Amount.LessThan(threshold))
	}
}

func amountAtMost(max int64) Rule {
	threshold := decimal.NewFromInt(max)
	return func(in Input) domain.TxStatus {
		return approveIf(!in.Amount.GreaterThan(threshold))
	}
}

// amountBetween flags the window as insufficient funds; anything outside
// passes.
func amountBetween(lo, hi int64) Rule {
	low := decimal.NewFromInt(lo)
	high := decimal.NewFromInt(hi)
	return func(in Input) domain.TxStatus {
		if !in.Amount.LessThan(low) && !in.Amount.GreaterThan(high) {
			return domain.StatusNSF
		}
		return domain.StatusApproved
	}
}

// amountDivisibleBy uses the exact decimal remainder: a fractional amount is
// divisible only when the remainder is exactly zero.
func amountDivisibleBy(n int64, approveOnMatch bool) Rule {
	divisor := decimal.NewFromInt(n)
	return func(in Input) domain.TxStatus {
		return approveIf(in.Amount.Mod(divisor).IsZero() == approveOnMatch)
	}
}

func amountParity(wantEven bool) Rule {
	two := decimal.NewFromInt(2)
	return func(in Input) domain.TxStatus {
		return approveIf(in.Amount.Mod(two).IsZero() == wantEven)
	}
}

// amountComposite approves composite amounts and declines primes. The
// inverted naming mirrors the inherited rule semantics: finding a divisor
// approves. Amounts below 2 approve; fractional amounts are truncated to
// their integer part before trial division.
func amountComposite() Rule {
	two := decimal.NewFromInt(2)
	return func(in Input) domain.TxStatus {
		if in.Amount.LessThan(two) {
			return domain.StatusApproved
		}
		n := in.Amount.IntPart()
		for i := int64(2); i*i <= n; i++ {
			if n%i == 0 {
				return domain.StatusApproved
			}
		}
		return domain.StatusDeclined
	}
}

func amountLastDigit(digit byte, declineOnMatch bool) Rule {
	return func(in Input) domain.TxStatus {
		s := in.Amount.String()
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
			s = strings.TrimRight(s, ".")
		}
		match := s[len(s)-1] == digit
		return approveIf(match != declineOnMatch)
	}
}

func metadataNonEmpty() Rule {
	return func(in Input) domain.TxStatus {
		return approveIf(len(in.Metadata) > 0)
	}
}

func metadataHasKey(key string, approveOnPresent bool) Rule {
	return func(in Input) domain.TxStatus {
		_, present := in.Metadata[key]
		return approveIf(present == approveOnPresent)
	}
}

func emailDomainIs(domainName string) Rule {
	marker := "@" + domainName
	return func(in Input) domain.TxStatus {
		return approveIf(strings.Contains(in.CustomerEmail, marker))
	}
}

func emailContains(substr string, declineOnMatch bool) Rule {
	return func(in Input) domain.TxStatus {
		match := strings.Contains(in.CustomerEmail, substr)
		return approveIf(match != declineOnMatch)
	}
}

func txHourAtLeast(hour int) Rule {
	return func(in Input) domain.TxStatus {
		return approveIf(in.TxTime.Hour() < hour)
	}
}

// duplicateWithinMinutes declines when the prior transaction for the same
// card happened within the window. No prior transaction approves. This is
// the only time-dependent rule: elapsed time is measured against the wall
// clock, not the transaction timestamp.
func duplicateWithinMinutes(window float64) Rule {
	return func(in Input) domain.TxStatus {
		if in.PriorTxTime == nil {
			return domain.StatusApproved
		}
		return approveIf(time.Since(*in.PriorTxTime).Minutes() > window)
	}
}
