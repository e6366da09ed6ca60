package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. BasePrice is the immutable reference price;
// CurrentPrice starts equal to it and is lowered whenever a discount is applied.
// DiscountID points at the applied_discounts row currently in effect, if any.
type Product struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Category     *string         `json:"category,omitempty"`
	SKU          string          `json:"sku"`
	BasePrice    decimal.Decimal `json:"base_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	DiscountID   *int            `json:"discount_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// InventoryBatch is one dated lot of a product. A product may own several
// batches with distinct expiration dates.
type InventoryBatch struct {
	InventoryID     int        `json:"inventory_id"`
	ProductID       string     `json:"product_id"`
	BatchID         string     `json:"batch_id"`
	Quantity        int        `json:"quantity"`
	Location        *string    `json:"location,omitempty"`
	ManufactureDate *time.Time `json:"manufacture_date,omitempty"`
	ExpirationDate  time.Time  `json:"expiration_date"`
	CreatedAt       time.Time  `json:"created_at"`
}

// DiscountRule configures when and how much to mark a product down.
// A nil Category means the rule applies to every category. Higher Priority
// wins when several rules match the same product.
type DiscountRule struct {
	RuleID             int             `json:"rule_id"`
	Name               string          `json:"name"`
	Description        *string         `json:"description,omitempty"`
	DaysBeforeExpiry   int             `json:"days_before_expiry"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	Category           *string         `json:"category,omitempty"`
	Priority           int             `json:"priority"`
	IsActive           bool            `json:"is_active"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// AppliedDiscount records a markdown currently in effect for one product/batch.
// Rows are created by the pricing cycle only and never updated by it.
type AppliedDiscount struct {
	DiscountID         int             `json:"discount_id"`
	ProductID          string          `json:"product_id"`
	InventoryID        int             `json:"inventory_id"`
	RuleID             int             `json:"rule_id"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	ExpiresAt          time.Time       `json:"expires_at"`
	IsActive           bool            `json:"is_active"`
	AppliedAt          time.Time       `json:"applied_at"`
}

// HistoryEntry is an append-only audit row written alongside each AppliedDiscount.
type HistoryEntry struct {
	HistoryID     int             `json:"history_id"`
	DiscountID    int             `json:"discount_id"`
	ProductID     string          `json:"product_id"`
	PreviousPrice decimal.Decimal `json:"previous_price"`
	NewPrice      decimal.Decimal `json:"new_price"`
	ChangedAt     time.Time       `json:"changed_at"`
}

// ProductBatch is one row of the products × inventory join consumed by the
// pricing cycle: one product paired with one of its batches.
type ProductBatch struct {
	ProductID      string
	Name           string
	Category       *string
	BasePrice      decimal.Decimal
	CurrentPrice   decimal.Decimal
	InventoryID    int
	BatchID        string
	Quantity       int
	ExpirationDate time.Time
}

// Decision is the matcher + calculator output for one product/batch pair:
// the rule that applied and the resulting price.
type Decision struct {
	ProductID          string          `json:"product_id"`
	InventoryID        int             `json:"inventory_id"`
	RuleID             int             `json:"rule_id"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountedPrice    decimal.Decimal `json:"discounted_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	ExpiresAt          time.Time       `json:"expires_at"`
	DaysUntilExpiry    int             `json:"days_until_expiry"`
}
