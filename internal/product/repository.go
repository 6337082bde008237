package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"serein-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error)
	GetProductVariantByID(ctx context.Context, opts GetVariantOptions) (*Variant, error)
	DecrementStock(ctx context.Context, tx *sql.Tx, variantID string, quantity int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetProductByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	if opts.ProductID == "" {
		return nil, errors.New("product id is required")
	}

	query := `
		SELECT p.id, p.name, p.slug, p.category_id, p.image_url, p.is_active, p.created_at, p.updated_at
		FROM products p
		WHERE p.id = $1
	`
	args := []interface{}{opts.ProductID}

	if opts.OnlyActive {
		query += " AND p.is_active = TRUE"
	}

	var p Product
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.ImageURL,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product failed: %w", err)
	}

	return &p, nil
}

func (r *repository) GetProductVariantByID(ctx context.Context, opts GetVariantOptions) (*Variant, error) {
	if opts.VariantID == "" {
		return nil, errors.New("variant id is required")
	}

	log := logger.FromCtx(ctx).With(
		zap.String("variant_id", opts.VariantID),
	)

	query := `
		SELECT v.id, v.product_id, v.name, v.price, v.stock, v.image_url, v.is_active
		FROM product_variants v
		WHERE v.id = $1
	`

	if opts.OnlyActive {
		query += " AND v.is_active = TRUE"
	}

	var v Variant
	err := r.db.QueryRowContext(ctx, query, opts.VariantID).Scan(
		&v.ID, &v.ProductID, &v.Name, &v.Price, &v.Stock, &v.ImageURL, &v.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		log.Error("DB query failed GetProductVariantByID", zap.Error(err))
		return nil, fmt.Errorf("get variant failed: %w", err)
	}

	return &v, nil
}

// DecrementStock runs inside the order-creation transaction. The guard in
// the WHERE clause keeps stock from going negative under concurrent checkouts.
func (r *repository) DecrementStock(ctx context.Context, tx *sql.Tx, variantID string, quantity int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE product_variants
		SET stock = stock - $1
		WHERE id = $2 AND stock >= $1
	`, quantity, variantID)
	if err != nil {
		return fmt.Errorf("decrement stock failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientStock
	}

	return nil
}
