package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// BatchInput is the payload for recording an inventory batch.
type BatchInput struct {
	ProductID       string     `json:"product_id"`
	BatchID         string     `json:"batch_id"`
	Quantity        int        `json:"quantity"`
	Location        *string    `json:"location,omitempty"`
	ManufactureDate *time.Time `json:"manufacture_date,omitempty"`
	ExpirationDate  time.Time  `json:"expiration_date"`
}

// InventoryRow is a batch joined with its owning product, as listed by the API.
type InventoryRow struct {
	InventoryBatch
	ProductName  string          `json:"product_name"`
	BasePrice    decimal.Decimal `json:"base_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}

// InventoryService manages dated product batches.
type InventoryService interface {
	CreateBatch(ctx context.Context, input BatchInput) (*InventoryBatch, error)
	GetInventory(ctx context.Context) ([]InventoryRow, error)
	// GetExpiring returns batches expiring within the next `days` days, not
	// counting batches already past their expiration date, soonest first.
	GetExpiring(ctx context.Context, days int) ([]InventoryRow, error)
}

type inventoryService struct {
	pool *pgxpool.Pool
}

// NewInventoryService constructs an InventoryService backed by PostgreSQL.
func NewInventoryService(pool *pgxpool.Pool) InventoryService {
	return &inventoryService{pool: pool}
}

func (s *inventoryService) CreateBatch(ctx context.Context, input BatchInput) (*InventoryBatch, error) {
	if input.Quantity < 0 {
		return nil, fmt.Errorf("quantity must not be negative, got %d", input.Quantity)
	}

	// The owning product must exist; surface a clean not-found instead of an
	// FK violation.
	var exists bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1)", input.ProductID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to check product %s: %w", input.ProductID, err)
	}
	if !exists {
		return nil, fmt.Errorf("product %s: %w", input.ProductID, ErrNotFound)
	}

	b := &InventoryBatch{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO inventory (product_id, batch_id, quantity, location, manufacture_date, expiration_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING inventory_id, product_id, batch_id, quantity, location, manufacture_date, expiration_date, created_at`,
		input.ProductID, input.BatchID, input.Quantity, input.Location,
		input.ManufactureDate, input.ExpirationDate,
	).Scan(
		&b.InventoryID, &b.ProductID, &b.BatchID, &b.Quantity,
		&b.Location, &b.ManufactureDate, &b.ExpirationDate, &b.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create batch %q for product %s: %w", input.BatchID, input.ProductID, err)
	}
	return b, nil
}

func (s *inventoryService) GetInventory(ctx context.Context) ([]InventoryRow, error) {
	return s.queryRows(ctx, `
		SELECT i.inventory_id, i.product_id, i.batch_id, i.quantity, i.location,
		       i.manufacture_date, i.expiration_date, i.created_at,
		       p.name, p.base_price, p.current_price
		FROM inventory i
		JOIN products p ON p.product_id = i.product_id
		ORDER BY i.expiration_date, i.inventory_id
	`)
}

func (s *inventoryService) GetExpiring(ctx context.Context, days int) ([]InventoryRow, error) {
	cutoff := time.Now().AddDate(0, 0, days)
	return s.queryRows(ctx, `
		SELECT i.inventory_id, i.product_id, i.batch_id, i.quantity, i.location,
		       i.manufacture_date, i.expiration_date, i.created_at,
		       p.name, p.base_price, p.current_price
		FROM inventory i
		JOIN products p ON p.product_id = i.product_id
		WHERE i.expiration_date <= $1 AND i.expiration_date >= CURRENT_DATE
		ORDER BY i.expiration_date, i.inventory_id
	`, cutoff)
}

func (s *inventoryService) queryRows(ctx context.Context, sql string, args ...any) ([]InventoryRow, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	var out []InventoryRow
	for rows.Next() {
		var r InventoryRow
		if err := rows.Scan(
			&r.InventoryID, &r.ProductID, &r.BatchID, &r.Quantity, &r.Location,
			&r.ManufactureDate, &r.ExpirationDate, &r.CreatedAt,
			&r.ProductName, &r.BasePrice, &r.CurrentPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan inventory row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
