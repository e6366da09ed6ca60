package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ProductInput is the payload for creating a product. CurrentPrice is not
// accepted: it always starts at the base price.
type ProductInput struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Category  *string         `json:"category,omitempty"`
	SKU       string          `json:"sku"`
	BasePrice decimal.Decimal `json:"base_price"`
}

// ProductService manages the product catalog.
type ProductService interface {
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	GetProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
}

type productService struct {
	pool *pgxpool.Pool
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool *pgxpool.Pool) ProductService {
	return &productService{pool: pool}
}

const productColumns = `product_id, name, category, sku, base_price, current_price, discount_id, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	p := &Product{}
	err := row.Scan(
		&p.ProductID, &p.Name, &p.Category, &p.SKU,
		&p.BasePrice, &p.CurrentPrice, &p.DiscountID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	if input.BasePrice.IsNegative() {
		return nil, fmt.Errorf("base price must not be negative, got %s", input.BasePrice)
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		INSERT INTO products (product_id, name, category, sku, base_price, current_price)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING `+productColumns,
		input.ProductID, input.Name, input.Category, input.SKU, input.BasePrice,
	))
	if err != nil {
		return nil, fmt.Errorf("create product %q: %w", input.ProductID, err)
	}
	return p, nil
}

func (s *productService) GetProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (s *productService) GetProduct(ctx context.Context, productID string) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE product_id = $1`, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch product %s: %w", productID, err)
	}
	return p, nil
}
