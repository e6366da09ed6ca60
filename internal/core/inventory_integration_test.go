package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"expiry-discount/internal/core"

	"github.com/shopspring/decimal"
)

func TestProductService_CRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	svc := core.NewProductService(pool)
	dairy := "dairy"

	created, err := svc.CreateProduct(ctx, core.ProductInput{
		ProductID: "MILK-1",
		Name:      "Whole Milk 1L",
		Category:  &dairy,
		SKU:       "SKU-MILK-1",
		BasePrice: decimal.RequireFromString("10.00"),
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	t.Run("current price starts at base price", func(t *testing.T) {
		if !created.CurrentPrice.Equal(created.BasePrice) {
			t.Errorf("expected current price %s to equal base price %s",
				created.CurrentPrice, created.BasePrice)
		}
		if created.DiscountID != nil {
			t.Error("expected no discount back-reference on a fresh product")
		}
	})

	t.Run("get by id", func(t *testing.T) {
		got, err := svc.GetProduct(ctx, "MILK-1")
		if err != nil {
			t.Fatalf("GetProduct failed: %v", err)
		}
		if got.Name != "Whole Milk 1L" || got.Category == nil || *got.Category != "dairy" {
			t.Errorf("unexpected product: %+v", got)
		}
	})

	t.Run("missing product surfaces ErrNotFound", func(t *testing.T) {
		_, err := svc.GetProduct(ctx, "NOPE")
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("negative base price rejected", func(t *testing.T) {
		_, err := svc.CreateProduct(ctx, core.ProductInput{
			ProductID: "BAD-1",
			Name:      "Bad",
			SKU:       "SKU-BAD",
			BasePrice: decimal.RequireFromString("-1"),
		})
		if err == nil {
			t.Error("expected error for negative base price")
		}
	})
}

func TestInventoryService_Batches(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seedProduct(t, pool, "MILK-1", "dairy", "10.00")
	svc := core.NewInventoryService(pool)

	t.Run("create batch for unknown product fails", func(t *testing.T) {
		_, err := svc.CreateBatch(ctx, core.BatchInput{
			ProductID:      "GHOST",
			BatchID:        "B1",
			Quantity:       5,
			ExpirationDate: time.Now().AddDate(0, 0, 5),
		})
		if !errors.Is(err, core.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("list joins product fields", func(t *testing.T) {
		if _, err := svc.CreateBatch(ctx, core.BatchInput{
			ProductID:      "MILK-1",
			BatchID:        "B1",
			Quantity:       12,
			ExpirationDate: time.Now().AddDate(0, 0, 5),
		}); err != nil {
			t.Fatalf("CreateBatch failed: %v", err)
		}

		rows, err := svc.GetInventory(ctx)
		if err != nil {
			t.Fatalf("GetInventory failed: %v", err)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 row, got %d", len(rows))
		}
		if rows[0].ProductName != "MILK-1" || rows[0].BasePrice.StringFixed(2) != "10.00" {
			t.Errorf("unexpected joined row: %+v", rows[0])
		}
	})
}

func TestInventoryService_Expiring(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()

	seedProduct(t, pool, "MILK-1", "dairy", "10.00")
	seedBatch(t, pool, "MILK-1", "SOON", 2)
	seedBatch(t, pool, "MILK-1", "LATER", 40)
	seedBatch(t, pool, "MILK-1", "GONE", -1)

	svc := core.NewInventoryService(pool)

	t.Run("window excludes expired and far-future batches", func(t *testing.T) {
		rows, err := svc.GetExpiring(ctx, 30)
		if err != nil {
			t.Fatalf("GetExpiring failed: %v", err)
		}
		if len(rows) != 1 || rows[0].BatchID != "SOON" {
			t.Fatalf("expected only SOON within 30 days, got %+v", rows)
		}
	})

	t.Run("wide window still excludes expired", func(t *testing.T) {
		rows, err := svc.GetExpiring(ctx, 90)
		if err != nil {
			t.Fatalf("GetExpiring failed: %v", err)
		}
		if len(rows) != 2 {
			t.Fatalf("expected SOON and LATER, got %d rows", len(rows))
		}
		if rows[0].BatchID != "SOON" || rows[1].BatchID != "LATER" {
			t.Errorf("expected soonest first, got %s,%s", rows[0].BatchID, rows[1].BatchID)
		}
	})
}
