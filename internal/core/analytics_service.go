package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ── Report types ──────────────────────────────────────────────────────────────

// DiscountSummary aggregates all currently active applied discounts.
type DiscountSummary struct {
	TotalDiscountedProducts int             `json:"total_discounted_products"`
	AvgDiscountPercentage   decimal.Decimal `json:"avg_discount_percentage"`
	TotalDiscountValue      decimal.Decimal `json:"total_discount_value"`
}

// CategoryBreakdown is the per-category slice of active discounts.
// Category is nil for products without one.
type CategoryBreakdown struct {
	Category     *string         `json:"category"`
	ProductCount int             `json:"product_count"`
	AvgDiscount  decimal.Decimal `json:"avg_discount"`
}

// ExpiringProduct is a soon-to-expire catalog entry with its markdown so far.
type ExpiringProduct struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	ExpirationDate time.Time       `json:"expiration_date"`
	CurrentPrice   decimal.Decimal `json:"current_price"`
	BasePrice      decimal.Decimal `json:"base_price"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
}

// DiscountAnalytics is the read-only analytics view over applied discounts.
type DiscountAnalytics struct {
	Summary      DiscountSummary     `json:"summary"`
	ByCategory   []CategoryBreakdown `json:"by_category"`
	SoonExpiring []ExpiringProduct   `json:"soon_expiring"`
}

// ── Interface ─────────────────────────────────────────────────────────────────

// AnalyticsService provides read-only aggregate queries over applied discounts
// and the discount history audit table. It is a query view, not cycle logic.
type AnalyticsService interface {
	GetAnalytics(ctx context.Context) (*DiscountAnalytics, error)
	// GetRecentHistory returns the newest price-change audit rows, capped at limit.
	GetRecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error)
}

type analyticsService struct {
	pool *pgxpool.Pool
}

// NewAnalyticsService constructs an AnalyticsService backed by the given pool.
func NewAnalyticsService(pool *pgxpool.Pool) AnalyticsService {
	return &analyticsService{pool: pool}
}

func (s *analyticsService) GetAnalytics(ctx context.Context) (*DiscountAnalytics, error) {
	out := &DiscountAnalytics{}

	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(discount_percentage), 0),
		       COALESCE(SUM(original_price - discounted_price), 0)
		FROM applied_discounts
		WHERE is_active = true
	`).Scan(
		&out.Summary.TotalDiscountedProducts,
		&out.Summary.AvgDiscountPercentage,
		&out.Summary.TotalDiscountValue,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query discount summary: %w", err)
	}
	out.Summary.AvgDiscountPercentage = out.Summary.AvgDiscountPercentage.Round(2)
	out.Summary.TotalDiscountValue = out.Summary.TotalDiscountValue.Round(2)

	rows, err := s.pool.Query(ctx, `
		SELECT p.category, COUNT(*), AVG(ad.discount_percentage)
		FROM applied_discounts ad
		JOIN products p ON p.product_id = ad.product_id
		WHERE ad.is_active = true
		GROUP BY p.category
		ORDER BY p.category NULLS LAST
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category breakdown: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cb CategoryBreakdown
		if err := rows.Scan(&cb.Category, &cb.ProductCount, &cb.AvgDiscount); err != nil {
			return nil, fmt.Errorf("failed to scan category breakdown: %w", err)
		}
		cb.AvgDiscount = cb.AvgDiscount.Round(2)
		out.ByCategory = append(out.ByCategory, cb)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category breakdown: %w", err)
	}

	expRows, err := s.pool.Query(ctx, `
		SELECT p.product_id, p.name, i.expiration_date, p.current_price, p.base_price,
		       p.base_price - p.current_price AS discount_value
		FROM products p
		JOIN inventory i ON i.product_id = p.product_id
		WHERE i.expiration_date <= CURRENT_DATE + INTERVAL '3 days'
		  AND i.expiration_date >= CURRENT_DATE
		ORDER BY i.expiration_date
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query soon-expiring products: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var ep ExpiringProduct
		if err := expRows.Scan(
			&ep.ProductID, &ep.Name, &ep.ExpirationDate,
			&ep.CurrentPrice, &ep.BasePrice, &ep.DiscountValue,
		); err != nil {
			return nil, fmt.Errorf("failed to scan soon-expiring product: %w", err)
		}
		out.SoonExpiring = append(out.SoonExpiring, ep)
	}
	if err := expRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating soon-expiring products: %w", err)
	}

	return out, nil
}

func (s *analyticsService) GetRecentHistory(ctx context.Context, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx, `
		SELECT history_id, discount_id, product_id, previous_price, new_price, changed_at
		FROM discount_history
		ORDER BY changed_at DESC, history_id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query discount history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var h HistoryEntry
		if err := rows.Scan(
			&h.HistoryID, &h.DiscountID, &h.ProductID,
			&h.PreviousPrice, &h.NewPrice, &h.ChangedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}
