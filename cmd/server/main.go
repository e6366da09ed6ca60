package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "expiry-discount/internal/adapters/web"
	"expiry-discount/internal/app"
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

	productService := core.NewProductService(pool)
	inventoryService := core.NewInventoryService(pool)
	ruleService := core.NewRuleService(pool)
	analyticsService := core.NewAnalyticsService(pool)

	gateway := core.NewPricingGateway(pool)
	cycleLock := core.NewCycleLock(pool)
	cycleService := core.NewCycleService(gateway, cycleLock)

	svc := app.NewAppService(productService, inventoryService, ruleService, cycleService, analyticsService)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
