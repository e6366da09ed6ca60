package app

import (
	"context"

	"expiry-discount/internal/core"
)

type appService struct {
	products  core.ProductService
	inventory core.InventoryService
	rules     core.RuleService
	cycle     core.CycleService
	analytics core.AnalyticsService
}

// NewAppService wires the domain services behind the ApplicationService facade.
func NewAppService(
	products core.ProductService,
	inventory core.InventoryService,
	rules core.RuleService,
	cycle core.CycleService,
	analytics core.AnalyticsService,
) ApplicationService {
	return &appService{
		products:  products,
		inventory: inventory,
		rules:     rules,
		cycle:     cycle,
		analytics: analytics,
	}
}

func (s *appService) CreateProduct(ctx context.Context, input core.ProductInput) (*core.Product, error) {
	return s.products.CreateProduct(ctx, input)
}

func (s *appService) ListProducts(ctx context.Context) ([]core.Product, error) {
	return s.products.GetProducts(ctx)
}

func (s *appService) GetProduct(ctx context.Context, productID string) (*core.Product, error) {
	return s.products.GetProduct(ctx, productID)
}

func (s *appService) CreateBatch(ctx context.Context, input core.BatchInput) (*core.InventoryBatch, error) {
	return s.inventory.CreateBatch(ctx, input)
}

func (s *appService) ListInventory(ctx context.Context) ([]core.InventoryRow, error) {
	return s.inventory.GetInventory(ctx)
}

func (s *appService) ListExpiringInventory(ctx context.Context, days int) ([]core.InventoryRow, error) {
	return s.inventory.GetExpiring(ctx, days)
}

func (s *appService) CreateRule(ctx context.Context, input core.RuleInput) (*core.DiscountRule, error) {
	return s.rules.CreateRule(ctx, input)
}

func (s *appService) ListRules(ctx context.Context) ([]core.DiscountRule, error) {
	return s.rules.GetRules(ctx)
}

func (s *appService) UpdateRule(ctx context.Context, ruleID int, update core.RuleUpdate) (*core.DiscountRule, error) {
	return s.rules.UpdateRule(ctx, ruleID, update)
}

func (s *appService) RunPricingCycle(ctx context.Context) (*CycleResult, error) {
	decisions, err := s.cycle.RunCycle(ctx)
	if err != nil {
		return nil, err
	}
	return &CycleResult{Applied: len(decisions), Decisions: decisions}, nil
}

func (s *appService) GetDiscountAnalytics(ctx context.Context) (*core.DiscountAnalytics, error) {
	return s.analytics.GetAnalytics(ctx)
}

func (s *appService) ListDiscountHistory(ctx context.Context, limit int) ([]core.HistoryEntry, error) {
	return s.analytics.GetRecentHistory(ctx, limit)
}
