package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PricingGateway is the persistence collaborator consumed by the pricing cycle.
// It exists as an interface so the cycle runner can be exercised against an
// in-memory fake instead of a live database.
type PricingGateway interface {
	// FetchProductsWithBatches returns the products × inventory join, one row
	// per (product, batch) pair, ordered by expiration date ascending.
	FetchProductsWithBatches(ctx context.Context) ([]ProductBatch, error)

	// FetchActiveRules returns active discount rules sorted by priority
	// descending. The ordering is a precondition of MatchRule.
	FetchActiveRules(ctx context.Context) ([]DiscountRule, error)

	// ApplyDecisions performs the three-table write for every decision inside
	// one transaction: insert applied_discounts, update the product's current
	// price and discount back-reference, insert discount_history. Any failure
	// rolls the whole batch back.
	ApplyDecisions(ctx context.Context, decisions []Decision) error
}

type pgGateway struct {
	pool *pgxpool.Pool
}

// NewPricingGateway constructs a PricingGateway backed by PostgreSQL.
func NewPricingGateway(pool *pgxpool.Pool) PricingGateway {
	return &pgGateway{pool: pool}
}

func (g *pgGateway) FetchProductsWithBatches(ctx context.Context) ([]ProductBatch, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT p.product_id, p.name, p.category, p.base_price, p.current_price,
		       i.inventory_id, i.batch_id, i.quantity, i.expiration_date
		FROM products p
		JOIN inventory i ON i.product_id = p.product_id
		ORDER BY i.expiration_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products with batches: %w", err)
	}
	defer rows.Close()

	var pairs []ProductBatch
	for rows.Next() {
		var pb ProductBatch
		if err := rows.Scan(
			&pb.ProductID, &pb.Name, &pb.Category, &pb.BasePrice, &pb.CurrentPrice,
			&pb.InventoryID, &pb.BatchID, &pb.Quantity, &pb.ExpirationDate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product batch: %w", err)
		}
		pairs = append(pairs, pb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product batches: %w", err)
	}
	return pairs, nil
}

func (g *pgGateway) FetchActiveRules(ctx context.Context) ([]DiscountRule, error) {
	rows, err := g.pool.Query(ctx, `
		SELECT rule_id, name, description, days_before_expiry, discount_percentage,
		       category, priority, is_active, created_at, updated_at
		FROM discount_rules
		WHERE is_active = true
		ORDER BY priority DESC, rule_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active rules: %w", err)
	}
	defer rows.Close()

	var rules []DiscountRule
	for rows.Next() {
		var r DiscountRule
		if err := rows.Scan(
			&r.RuleID, &r.Name, &r.Description, &r.DaysBeforeExpiry, &r.DiscountPercentage,
			&r.Category, &r.Priority, &r.IsActive, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan discount rule: %w", err)
		}
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating discount rules: %w", err)
	}
	return rules, nil
}

// ApplyDecisions writes all decisions in one transaction. Order per decision:
// applied_discounts insert (RETURNING the new discount_id), products price +
// back-reference update, discount_history insert. A single commit at the end
// means either every decision lands or none do.
func (g *pgGateway) ApplyDecisions(ctx context.Context, decisions []Decision) error {
	tx, err := g.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, d := range decisions {
		var discountID int
		err := tx.QueryRow(ctx, `
			INSERT INTO applied_discounts
				(product_id, inventory_id, rule_id, original_price, discounted_price,
				 discount_percentage, expires_at, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, true)
			RETURNING discount_id
		`, d.ProductID, d.InventoryID, d.RuleID, d.OriginalPrice, d.DiscountedPrice,
			d.DiscountPercentage, d.ExpiresAt,
		).Scan(&discountID)
		if err != nil {
			return fmt.Errorf("failed to insert applied discount for product %s: %w", d.ProductID, err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE products
			SET current_price = $1, discount_id = $2, updated_at = NOW()
			WHERE product_id = $3
		`, d.DiscountedPrice, discountID, d.ProductID)
		if err != nil {
			return fmt.Errorf("failed to update price for product %s: %w", d.ProductID, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO discount_history (discount_id, product_id, previous_price, new_price)
			VALUES ($1, $2, $3, $4)
		`, discountID, d.ProductID, d.OriginalPrice, d.DiscountedPrice)
		if err != nil {
			return fmt.Errorf("failed to insert history for product %s: %w", d.ProductID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit decisions: %w", err)
	}
	return nil
}
