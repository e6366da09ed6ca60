package core_test

import (
	"context"
	"errors"
	"testing"

	"expiry-discount/internal/core"

	"github.com/shopspring/decimal"
)

func TestRuleService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewRuleService(pool)

	t.Run("create applies defaults", func(t *testing.T) {
		rule, err := svc.CreateRule(ctx, core.RuleInput{
			Name:               "near expiry",
			DaysBeforeExpiry:   7,
			DiscountPercentage: decimal.RequireFromString("10"),
		})
		if err != nil {
			t.Fatalf("CreateRule failed: %v", err)
		}
		if !rule.IsActive {
			t.Error("expected new rule to default to active")
		}
		if rule.Priority != 0 {
			t.Errorf("expected default priority 0, got %d", rule.Priority)
		}
	})

	t.Run("create rejects out-of-range percentage", func(t *testing.T) {
		_, err := svc.CreateRule(ctx, core.RuleInput{
			Name:               "bad",
			DaysBeforeExpiry:   7,
			DiscountPercentage: decimal.RequireFromString("101"),
		})
		if err == nil {
			t.Error("expected error for percentage above 100")
		}
	})

	t.Run("list is priority descending", func(t *testing.T) {
		dairy := "dairy"
		if _, err := svc.CreateRule(ctx, core.RuleInput{
			Name:               "dairy urgent",
			DaysBeforeExpiry:   3,
			DiscountPercentage: decimal.RequireFromString("30"),
			Category:           &dairy,
			Priority:           5,
		}); err != nil {
			t.Fatalf("CreateRule failed: %v", err)
		}

		rules, err := svc.GetRules(ctx)
		if err != nil {
			t.Fatalf("GetRules failed: %v", err)
		}
		if len(rules) < 2 {
			t.Fatalf("expected at least 2 rules, got %d", len(rules))
		}
		if rules[0].Name != "dairy urgent" {
			t.Errorf("expected highest-priority rule first, got %s", rules[0].Name)
		}
	})
}

func TestRuleService_PartialUpdate(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewRuleService(pool)
	created, err := svc.CreateRule(ctx, core.RuleInput{
		Name:               "dairy markdown",
		DaysBeforeExpiry:   3,
		DiscountPercentage: decimal.RequireFromString("30"),
		Priority:           5,
	})
	if err != nil {
		t.Fatalf("CreateRule failed: %v", err)
	}

	t.Run("absent fields are preserved", func(t *testing.T) {
		newPct := decimal.RequireFromString("40")
		updated, err := svc.UpdateRule(ctx, created.RuleID, core.RuleUpdate{
			DiscountPercentage: &newPct,
		})
		if err != nil {
			t.Fatalf("UpdateRule failed: %v", err)
		}
		if !updated.DiscountPercentage.Equal(newPct) {
			t.Errorf("expected percentage 40, got %s", updated.DiscountPercentage)
		}
		if updated.Name != "dairy markdown" || updated.DaysBeforeExpiry != 3 || updated.Priority != 5 {
			t.Errorf("untouched fields changed: %+v", updated)
		}
	})

	t.Run("deactivation hides rule from the gateway", func(t *testing.T) {
		inactive := false
		if _, err := svc.UpdateRule(ctx, created.RuleID, core.RuleUpdate{IsActive: &inactive}); err != nil {
			t.Fatalf("UpdateRule failed: %v", err)
		}
		rules, err := core.NewPricingGateway(pool).FetchActiveRules(ctx)
		if err != nil {
			t.Fatalf("FetchActiveRules failed: %v", err)
		}
		for _, r := range rules {
			if r.RuleID == created.RuleID {
				t.Error("deactivated rule still returned as active")
			}
		}
	})

	t.Run("update rejects invalid merged state", func(t *testing.T) {
		bad := decimal.RequireFromString("-1")
		if _, err := svc.UpdateRule(ctx, created.RuleID, core.RuleUpdate{DiscountPercentage: &bad}); err == nil {
			t.Error("expected error for negative percentage")
		}
	})

	t.Run("missing rule surfaces ErrNotFound", func(t *testing.T) {
		_, err := svc.UpdateRule(ctx, created.RuleID+9999, core.RuleUpdate{})
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
