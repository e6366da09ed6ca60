package core

import (
	"context"
	"log"
	"time"
)

// CycleService orchestrates one full fetch–match–commit pricing pass.
type CycleService interface {
	// RunCycle loads the product/batch snapshot and the active rules, matches
	// every pair independently, and applies all resulting decisions in a
	// single transaction. Returns the applied decisions for reporting.
	//
	// A run with no matches performs zero writes. Running twice against
	// unchanged data re-applies the same decisions again: the engine does not
	// dedupe already-discounted products.
	RunCycle(ctx context.Context) ([]Decision, error)
}

type cycleService struct {
	gateway PricingGateway
	lock    CycleLock
}

// NewCycleService constructs a CycleService. lock may be nil, in which case
// callers are responsible for serializing invocations themselves.
func NewCycleService(gateway PricingGateway, lock CycleLock) CycleService {
	return &cycleService{gateway: gateway, lock: lock}
}

func (s *cycleService) RunCycle(ctx context.Context) ([]Decision, error) {
	if s.lock != nil {
		release, err := s.lock.Acquire(ctx)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	// Fetching: one consistent snapshot, no row locks until the write tx.
	pairs, err := s.gateway.FetchProductsWithBatches(ctx)
	if err != nil {
		return nil, &DataSourceError{Err: err}
	}
	rules, err := s.gateway.FetchActiveRules(ctx)
	if err != nil {
		return nil, &DataSourceError{Err: err}
	}

	// Matching: each (product, batch) pair is decided independently.
	today := time.Now()
	var decisions []Decision
	for _, pb := range pairs {
		days := DaysUntilExpiry(pb.ExpirationDate, today)
		if days < 0 {
			continue
		}
		rule := MatchRule(pb.Category, days, rules)
		if rule == nil {
			continue
		}
		price, err := DiscountedPrice(pb.BasePrice, rule.DiscountPercentage)
		if err != nil {
			// Bad rule or product data. Fail the cycle before any write.
			return nil, err
		}
		decisions = append(decisions, Decision{
			ProductID:          pb.ProductID,
			InventoryID:        pb.InventoryID,
			RuleID:             rule.RuleID,
			OriginalPrice:      pb.BasePrice,
			DiscountedPrice:    price,
			DiscountPercentage: rule.DiscountPercentage,
			ExpiresAt:          pb.ExpirationDate,
			DaysUntilExpiry:    days,
		})
	}

	// Committing: all decisions in one transaction, or none at all.
	if len(decisions) == 0 {
		log.Printf("pricing cycle: no discounts to apply")
		return []Decision{}, nil
	}
	if err := s.gateway.ApplyDecisions(ctx, decisions); err != nil {
		return nil, &CommitError{Err: err}
	}
	log.Printf("pricing cycle: applied %d discounts", len(decisions))
	return decisions, nil
}
