package core

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DaysUntilExpiry returns the whole-day calendar difference between the
// expiration date and today. Both inputs are truncated to dates first, so a
// batch expiring tomorrow reports 1 regardless of the time of day. Negative
// means already expired.
func DaysUntilExpiry(expiry, today time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t).Hours() / 24)
}

// MatchRule selects the discount rule to apply for a product with the given
// category and days left until expiry.
//
// rules MUST be sorted by priority descending — the persistence gateway
// guarantees this. Because of that ordering, the first rule satisfying both
// predicates is the highest-priority match, and rules sharing that priority
// tie-break on input order.
//
// A rule matches when its category is nil (applies to everything) or equal to
// the product's category, and daysUntilExpiry is within the rule's window.
// Already-expired batches (daysUntilExpiry < 0) never match.
func MatchRule(category *string, daysUntilExpiry int, rules []DiscountRule) *DiscountRule {
	if daysUntilExpiry < 0 {
		return nil
	}
	for i := range rules {
		r := &rules[i]
		if r.Category != nil && (category == nil || *r.Category != *category) {
			continue
		}
		if daysUntilExpiry > r.DaysBeforeExpiry {
			continue
		}
		return r
	}
	return nil
}

// DiscountedPrice computes base × (1 − pct/100) rounded to 2 decimal places.
// Rounding is half away from zero (decimal.Round), which for the non-negative
// prices of this domain behaves as conventional half-up.
// Returns InvalidDiscountError when pct is outside [0,100] or base is negative.
func DiscountedPrice(base, pct decimal.Decimal) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, &InvalidDiscountError{Reason: fmt.Sprintf("base price %s is negative", base)}
	}
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return decimal.Zero, &InvalidDiscountError{Reason: fmt.Sprintf("percentage %s outside [0,100]", pct)}
	}
	factor := decimal.NewFromInt(1).Sub(pct.Div(hundred))
	return base.Mul(factor).Round(2), nil
}
