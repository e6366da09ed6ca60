package app

import (
	"context"

	"expiry-discount/internal/core"
)

// CycleResult reports one completed pricing cycle.
type CycleResult struct {
	Applied   int             `json:"applied"`
	Decisions []core.Decision `json:"decisions"`
}

// ApplicationService is the single interface all adapters (web, CLI) call.
// It decouples presentation from domain services: implementations contain no
// HTTP types and no display logic.
type ApplicationService interface {
	// Products
	CreateProduct(ctx context.Context, input core.ProductInput) (*core.Product, error)
	ListProducts(ctx context.Context) ([]core.Product, error)
	GetProduct(ctx context.Context, productID string) (*core.Product, error)

	// Inventory batches
	CreateBatch(ctx context.Context, input core.BatchInput) (*core.InventoryBatch, error)
	ListInventory(ctx context.Context) ([]core.InventoryRow, error)
	// ListExpiringInventory returns batches expiring within the next `days` days.
	ListExpiringInventory(ctx context.Context, days int) ([]core.InventoryRow, error)

	// Discount rules
	CreateRule(ctx context.Context, input core.RuleInput) (*core.DiscountRule, error)
	ListRules(ctx context.Context) ([]core.DiscountRule, error)
	UpdateRule(ctx context.Context, ruleID int, update core.RuleUpdate) (*core.DiscountRule, error)

	// RunPricingCycle executes one fetch–match–commit pass and returns the
	// applied decisions. Returns core.ErrCycleInFlight when another cycle
	// holds the lock.
	RunPricingCycle(ctx context.Context) (*CycleResult, error)

	// Analytics
	GetDiscountAnalytics(ctx context.Context) (*core.DiscountAnalytics, error)
	ListDiscountHistory(ctx context.Context, limit int) ([]core.HistoryEntry, error)
}
