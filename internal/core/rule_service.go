package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RuleInput is the payload for creating a discount rule.
type RuleInput struct {
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	DaysBeforeExpiry   int             `json:"days_before_expiry"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Category           *string         `json:"category,omitempty"`
	Priority           int             `json:"priority"`
	IsActive           *bool           `json:"is_active,omitempty"` // default true
}

// RuleUpdate is a partial update: nil fields keep their current value.
type RuleUpdate struct {
	Name               *string          `json:"name,omitempty"`
	Description        *string          `json:"description,omitempty"`
	DaysBeforeExpiry   *int             `json:"days_before_expiry,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
	Category           *string          `json:"category,omitempty"`
	Priority           *int             `json:"priority,omitempty"`
	IsActive           *bool            `json:"is_active,omitempty"`
}

// RuleService manages discount rule configuration. Rules are edited
// independently of the pricing cycle, which reads only the active ones.
type RuleService interface {
	CreateRule(ctx context.Context, input RuleInput) (*DiscountRule, error)
	GetRules(ctx context.Context) ([]DiscountRule, error)
	UpdateRule(ctx context.Context, ruleID int, update RuleUpdate) (*DiscountRule, error)
}

type ruleService struct {
	pool *pgxpool.Pool
}

// NewRuleService constructs a RuleService backed by PostgreSQL.
func NewRuleService(pool *pgxpool.Pool) RuleService {
	return &ruleService{pool: pool}
}

const ruleColumns = `rule_id, name, description, days_before_expiry, discount_percentage,
	category, priority, is_active, created_at, updated_at`

func scanRule(row pgx.Row) (*DiscountRule, error) {
	r := &DiscountRule{}
	err := row.Scan(
		&r.RuleID, &r.Name, &r.Description, &r.DaysBeforeExpiry, &r.DiscountPercentage,
		&r.Category, &r.Priority, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func validateRule(days int, pct decimal.Decimal) error {
	if days < 0 {
		return fmt.Errorf("days_before_expiry must not be negative, got %d", days)
	}
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return fmt.Errorf("discount_percentage must be within [0,100], got %s", pct)
	}
	return nil
}

func (s *ruleService) CreateRule(ctx context.Context, input RuleInput) (*DiscountRule, error) {
	if err := validateRule(input.DaysBeforeExpiry, input.DiscountPercentage); err != nil {
		return nil, err
	}
	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	r, err := scanRule(s.pool.QueryRow(ctx, `
		INSERT INTO discount_rules
			(name, description, days_before_expiry, discount_percentage, category, priority, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+ruleColumns,
		input.Name, input.Description, input.DaysBeforeExpiry, input.DiscountPercentage,
		input.Category, input.Priority, isActive,
	))
	if err != nil {
		return nil, fmt.Errorf("create rule %q: %w", input.Name, err)
	}
	return r, nil
}

func (s *ruleService) GetRules(ctx context.Context) ([]DiscountRule, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+ruleColumns+` FROM discount_rules ORDER BY priority DESC, rule_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var rules []DiscountRule
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

// UpdateRule merges the non-nil fields of update into the existing rule inside
// one transaction, locking the row so concurrent edits don't interleave.
func (s *ruleService) UpdateRule(ctx context.Context, ruleID int, update RuleUpdate) (*DiscountRule, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	existing, err := scanRule(tx.QueryRow(ctx,
		`SELECT `+ruleColumns+` FROM discount_rules WHERE rule_id = $1 FOR UPDATE`, ruleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("rule %d: %w", ruleID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch rule %d: %w", ruleID, err)
	}

	if update.Name != nil {
		existing.Name = *update.Name
	}
	if update.Description != nil {
		existing.Description = update.Description
	}
	if update.DaysBeforeExpiry != nil {
		existing.DaysBeforeExpiry = *update.DaysBeforeExpiry
	}
	if update.DiscountPercentage != nil {
		existing.DiscountPercentage = *update.DiscountPercentage
	}
	if update.Category != nil {
		existing.Category = update.Category
	}
	if update.Priority != nil {
		existing.Priority = *update.Priority
	}
	if update.IsActive != nil {
		existing.IsActive = *update.IsActive
	}
	if err := validateRule(existing.DaysBeforeExpiry, existing.DiscountPercentage); err != nil {
		return nil, err
	}

	updated, err := scanRule(tx.QueryRow(ctx, `
		UPDATE discount_rules
		SET name = $1, description = $2, days_before_expiry = $3, discount_percentage = $4,
		    category = $5, priority = $6, is_active = $7, updated_at = NOW()
		WHERE rule_id = $8
		RETURNING `+ruleColumns,
		existing.Name, existing.Description, existing.DaysBeforeExpiry, existing.DiscountPercentage,
		existing.Category, existing.Priority, existing.IsActive, ruleID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update rule %d: %w", ruleID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit rule update: %w", err)
	}
	return updated, nil
}
