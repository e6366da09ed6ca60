package core_test

import (
	"errors"
	"testing"
	"time"

	"expiry-discount/internal/core"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func rule(id int, category *string, days int, pct string, priority int) core.DiscountRule {
	return core.DiscountRule{
		RuleID:             id,
		Name:               "rule",
		Category:           category,
		DaysBeforeExpiry:   days,
		DiscountPercentage: decimal.RequireFromString(pct),
		Priority:           priority,
		IsActive:           true,
	}
}

func TestDaysUntilExpiry(t *testing.T) {
	tests := []struct {
		name   string
		expiry time.Time
		today  time.Time
		want   int
	}{
		{
			name:   "two days out",
			expiry: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			today:  time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			want:   2,
		},
		{
			name:   "same day",
			expiry: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			today:  time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC),
			want:   0,
		},
		{
			name:   "expired yesterday",
			expiry: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
			today:  time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC),
			want:   -1,
		},
		{
			name:   "time of day ignored",
			expiry: time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC),
			today:  time.Date(2025, 3, 10, 22, 0, 0, 0, time.UTC),
			want:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := core.DaysUntilExpiry(tt.expiry, tt.today); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMatchRule(t *testing.T) {
	dairy := strPtr("dairy")
	bakery := strPtr("bakery")

	tests := []struct {
		name     string
		category *string
		days     int
		rules    []core.DiscountRule // must be priority-descending
		wantRule int                 // 0 = no match
	}{
		{
			name:     "expired product never matches",
			category: dairy,
			days:     -1,
			rules:    []core.DiscountRule{rule(1, nil, 365, "50", 1)},
			wantRule: 0,
		},
		{
			name:     "no category-null rule and no category match",
			category: dairy,
			days:     1,
			rules: []core.DiscountRule{
				rule(1, bakery, 30, "20", 5),
				rule(2, strPtr("produce"), 30, "20", 1),
			},
			wantRule: 0,
		},
		{
			name:     "outside every window",
			category: dairy,
			days:     10,
			rules: []core.DiscountRule{
				rule(1, dairy, 3, "30", 5),
				rule(2, nil, 7, "10", 1),
			},
			wantRule: 0,
		},
		{
			name:     "nil rule category applies to any product",
			category: bakery,
			days:     5,
			rules:    []core.DiscountRule{rule(1, nil, 7, "10", 1)},
			wantRule: 1,
		},
		{
			name:     "nil product category only matches nil-category rules",
			category: nil,
			days:     2,
			rules: []core.DiscountRule{
				rule(1, dairy, 7, "30", 5),
				rule(2, nil, 7, "10", 1),
			},
			wantRule: 2,
		},
		{
			name:     "higher priority wins",
			category: dairy,
			days:     2,
			rules: []core.DiscountRule{
				rule(2, dairy, 3, "30", 5),
				rule(1, nil, 7, "10", 1),
			},
			wantRule: 2,
		},
		{
			name:     "equal priority: first in input order wins",
			category: dairy,
			days:     2,
			rules: []core.DiscountRule{
				rule(7, dairy, 3, "30", 5),
				rule(8, dairy, 5, "40", 5),
			},
			wantRule: 7,
		},
		{
			name:     "boundary: days equal to window matches",
			category: dairy,
			days:     3,
			rules:    []core.DiscountRule{rule(1, dairy, 3, "30", 5)},
			wantRule: 1,
		},
		{
			name:     "zero days matches any window",
			category: dairy,
			days:     0,
			rules:    []core.DiscountRule{rule(1, nil, 1, "50", 0)},
			wantRule: 1,
		},
		{
			name:     "no rules",
			category: dairy,
			days:     1,
			rules:    nil,
			wantRule: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.MatchRule(tt.category, tt.days, tt.rules)
			if tt.wantRule == 0 {
				if got != nil {
					t.Errorf("expected no match, got rule %d", got.RuleID)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected rule %d, got no match", tt.wantRule)
			}
			if got.RuleID != tt.wantRule {
				t.Errorf("expected rule %d, got rule %d", tt.wantRule, got.RuleID)
			}
		})
	}
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		pct       string
		want      string
		expectErr bool
	}{
		{name: "zero percent keeps base", base: "10.00", pct: "0", want: "10.00"},
		{name: "fifty percent halves", base: "10.00", pct: "50", want: "5.00"},
		{name: "hundred percent free", base: "10.00", pct: "100", want: "0.00"},
		{name: "thirty percent of ten", base: "10.00", pct: "30", want: "7.00"},
		{name: "rounds half up to cents", base: "10.05", pct: "50", want: "5.03"},
		{name: "rounds down below half cent", base: "9.99", pct: "33", want: "6.69"},
		{name: "zero base stays zero", base: "0", pct: "40", want: "0.00"},
		{name: "negative base rejected", base: "-1.00", pct: "10", expectErr: true},
		{name: "percent above hundred rejected", base: "10.00", pct: "100.01", expectErr: true},
		{name: "negative percent rejected", base: "10.00", pct: "-5", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := core.DiscountedPrice(
				decimal.RequireFromString(tt.base),
				decimal.RequireFromString(tt.pct),
			)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("expected error, got %s", got)
				}
				var invalid *core.InvalidDiscountError
				if !errors.As(err, &invalid) {
					t.Errorf("expected InvalidDiscountError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.StringFixed(2) != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got.StringFixed(2))
			}
		})
	}
}

// End-to-end matcher + calculator scenario: a dairy product at 10.00 with a
// batch expiring in 2 days, against a general 7-day 10% rule and a dairy
// 3-day 30% rule at higher priority.
func TestMatchAndPrice_DairyScenario(t *testing.T) {
	dairy := strPtr("dairy")
	rules := []core.DiscountRule{
		rule(2, dairy, 3, "30", 5), // R2, priority 5
		rule(1, nil, 7, "10", 1),   // R1, priority 1
	}

	matched := core.MatchRule(dairy, 2, rules)
	if matched == nil || matched.RuleID != 2 {
		t.Fatalf("expected dairy rule 2 to match, got %+v", matched)
	}

	price, err := core.DiscountedPrice(decimal.RequireFromString("10.00"), matched.DiscountPercentage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price.StringFixed(2) != "7.00" {
		t.Errorf("expected 7.00, got %s", price.StringFixed(2))
	}

	// Same product ten days out: neither window is satisfied.
	if got := core.MatchRule(dairy, 10, rules); got != nil {
		t.Errorf("expected no match at 10 days, got rule %d", got.RuleID)
	}
}
