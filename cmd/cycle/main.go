// Command cycle runs pricing operations directly against the database,
// bypassing the HTTP server. Useful for operations and local inspection.
//
//	cycle run        — execute one pricing cycle and print the applied decisions
//	cycle rules      — list configured discount rules
//	cycle analytics  — print the active-discount summary
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"expiry-discount/internal/core"
	"expiry-discount/internal/db"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	command := "run"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "run":
		gateway := core.NewPricingGateway(pool)
		cycleService := core.NewCycleService(gateway, core.NewCycleLock(pool))
		decisions, err := cycleService.RunCycle(ctx)
		if err != nil {
			log.Fatalf("cycle failed: %v", err)
		}
		printDecisions(decisions)

	case "rules":
		rules, err := core.NewRuleService(pool).GetRules(ctx)
		if err != nil {
			log.Fatalf("failed to list rules: %v", err)
		}
		printRules(rules)

	case "analytics":
		analytics, err := core.NewAnalyticsService(pool).GetAnalytics(ctx)
		if err != nil {
			log.Fatalf("failed to load analytics: %v", err)
		}
		printAnalytics(analytics)

	default:
		log.Fatalf("unknown command %q (want run, rules, or analytics)", command)
	}
}

func printDecisions(decisions []core.Decision) {
	if len(decisions) == 0 {
		fmt.Println("No products to discount at this time")
		return
	}

	fmt.Printf("Applied %d discounts:\n", len(decisions))
	fmt.Printf("%-14s %-8s %10s %10s %6s %8s\n", "PRODUCT", "BATCH", "FROM", "TO", "PCT", "EXPIRES")
	fmt.Println(strings.Repeat("-", 62))
	for _, d := range decisions {
		fmt.Printf("%-14s %-8d %10s %10s %5s%% %5dd\n",
			d.ProductID, d.InventoryID,
			d.OriginalPrice.StringFixed(2), d.DiscountedPrice.StringFixed(2),
			d.DiscountPercentage.String(), d.DaysUntilExpiry)
	}
}

func printRules(rules []core.DiscountRule) {
	fmt.Printf("%-4s %-28s %-10s %6s %5s %8s %s\n", "ID", "NAME", "CATEGORY", "DAYS", "PCT", "PRIORITY", "ACTIVE")
	fmt.Println(strings.Repeat("-", 72))
	for _, r := range rules {
		category := "*"
		if r.Category != nil {
			category = *r.Category
		}
		fmt.Printf("%-4d %-28s %-10s %6d %4s%% %8d %v\n",
			r.RuleID, r.Name, category, r.DaysBeforeExpiry,
			r.DiscountPercentage.String(), r.Priority, r.IsActive)
	}
}

func printAnalytics(a *core.DiscountAnalytics) {
	fmt.Println("--- ACTIVE DISCOUNTS ---")
	fmt.Printf("products discounted: %d\n", a.Summary.TotalDiscountedProducts)
	fmt.Printf("average percentage:  %s%%\n", a.Summary.AvgDiscountPercentage.StringFixed(2))
	fmt.Printf("total markdown:      %s\n", a.Summary.TotalDiscountValue.StringFixed(2))

	if len(a.ByCategory) > 0 {
		fmt.Println("\nBY CATEGORY")
		for _, cb := range a.ByCategory {
			category := "(none)"
			if cb.Category != nil {
				category = *cb.Category
			}
			fmt.Printf("  %-14s %4d products, avg %s%%\n", category, cb.ProductCount, cb.AvgDiscount.StringFixed(2))
		}
	}

	if len(a.SoonExpiring) > 0 {
		fmt.Println("\nEXPIRING WITHIN 3 DAYS")
		for _, ep := range a.SoonExpiring {
			fmt.Printf("  %-14s %-24s %s  %s -> %s\n",
				ep.ProductID, ep.Name, ep.ExpirationDate.Format("2006-01-02"),
				ep.BasePrice.StringFixed(2), ep.CurrentPrice.StringFixed(2))
		}
	}
}
