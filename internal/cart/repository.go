package cart

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"serein-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCartItems(ctx context.Context, userID uint) ([]*CartItem, error)
	GetCartItemByID(ctx context.Context, userID uint, cartItemID string) (*CartItem, error)
	GetCartItemByUserAndVariant(ctx context.Context, userID uint, variantID string) (*CartItem, error)
	CreateCartItem(ctx context.Context, params CreateCartItemParams) (*CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, userID uint, cartItemID string, quantity int) error
	RemoveFromCart(ctx context.Context, params RemoveFromCartParams) error
	RemoveItemsTx(ctx context.Context, tx *sql.Tx, userID uint, cartItemIDs []string) error
	ClearCart(ctx context.Context, userID uint) error

	GetAppliedCouponCode(ctx context.Context, userID uint) (*string, error)
	SetAppliedCouponCode(ctx context.Context, userID uint, code *string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const cartItemColumns = `
	ci.id, ci.user_id, p.id, v.id, p.category_id, p.name, p.image_url,
	v.price, ci.quantity, v.stock, ci.created_at, ci.updated_at
`

const cartItemJoins = `
	FROM cart_items ci
	JOIN product_variants v ON v.id = ci.variant_id
	JOIN products p ON p.id = v.product_id
`

func scanCartItem(row interface{ Scan(...interface{}) error }) (*CartItem, error) {
	var it CartItem
	var variantID string
	err := row.Scan(
		&it.ID, &it.UserID, &it.ProductID, &variantID, &it.CategoryID,
		&it.ProductName, &it.ImageURL,
		&it.Price, &it.Quantity, &it.Stock, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.VariantID = &variantID
	return &it, nil
}

// GetCartItems returns the user's cart lines joined with live product data.
// Price and stock come from the variant row at read time, so line totals
// and stock checks always reflect the current catalog.
func (r *repository) GetCartItems(ctx context.Context, userID uint) ([]*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", userID),
	)

	query := `SELECT ` + cartItemColumns + cartItemJoins + `
		WHERE ci.user_id = $1
		ORDER BY ci.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("DB query failed GetCartItems", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartItem, err)
	}
	defer rows.Close()

	items := make([]*CartItem, 0)
	for rows.Next() {
		it, err := scanCartItem(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return items, nil
}

func (r *repository) GetCartItemByID(ctx context.Context, userID uint, cartItemID string) (*CartItem, error) {
	query := `SELECT ` + cartItemColumns + cartItemJoins + `
		WHERE ci.user_id = $1 AND ci.id = $2
	`

	it, err := scanCartItem(r.db.QueryRowContext(ctx, query, userID, cartItemID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartItem, err)
	}

	return it, nil
}

func (r *repository) GetCartItemByUserAndVariant(ctx context.Context, userID uint, variantID string) (*CartItem, error) {
	query := `SELECT ` + cartItemColumns + cartItemJoins + `
		WHERE ci.user_id = $1 AND ci.variant_id = $2
	`

	it, err := scanCartItem(r.db.QueryRowContext(ctx, query, userID, variantID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartItem, err)
	}

	return it, nil
}

func (r *repository) CreateCartItem(ctx context.Context, params CreateCartItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", params.UserID),
		zap.String("variant_id", params.VariantID),
	)

	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO cart_items (user_id, variant_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`, params.UserID, params.VariantID, params.Quantity).Scan(&id)
	if err != nil {
		log.Error("CreateCartItem DB query failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedCreateCartItem, err)
	}

	return r.GetCartItemByID(ctx, params.UserID, id)
}

func (r *repository) UpdateCartItemQuantity(ctx context.Context, userID uint, cartItemID string, quantity int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cart_items
		SET quantity = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = $3
	`, quantity, userID, cartItemID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateCart, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

func (r *repository) RemoveFromCart(ctx context.Context, params RemoveFromCartParams) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE user_id = $1 AND id = $2
	`, params.UserID, params.CartItemID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedRemoveCart, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// RemoveItemsTx deletes the purchased lines inside the order-creation
// transaction. Unselected lines stay in the cart.
func (r *repository) RemoveItemsTx(ctx context.Context, tx *sql.Tx, userID uint, cartItemIDs []string) error {
	for _, id := range cartItemIDs {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM cart_items WHERE user_id = $1 AND id = $2
		`, userID, id); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedRemoveCart, err)
		}
	}
	return nil
}

func (r *repository) ClearCart(ctx context.Context, userID uint) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items WHERE user_id = $1
	`, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return nil
}

// GetAppliedCouponCode returns the coupon code currently attached to the
// user's cart, nil when none is applied.
func (r *repository) GetAppliedCouponCode(ctx context.Context, userID uint) (*string, error) {
	var code *string
	err := r.db.QueryRowContext(ctx, `
		SELECT coupon_code FROM carts WHERE user_id = $1
	`, userID).Scan(&code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get applied coupon failed: %w", err)
	}
	return code, nil
}

func (r *repository) SetAppliedCouponCode(ctx context.Context, userID uint, code *string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO carts (user_id, coupon_code)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET coupon_code = $2, updated_at = NOW()
	`, userID, code)
	if err != nil {
		return fmt.Errorf("set applied coupon failed: %w", err)
	}
	return nil
}
