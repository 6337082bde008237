package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"serein-be/internal/cart"
	"serein-be/internal/checkout"
	"serein-be/internal/coupon"
	"serein-be/internal/logger"
	"serein-be/internal/product"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateOrderTx(ctx context.Context, o *Order, session *checkout.Session) error
	GetOrderBySessionID(ctx context.Context, sessionID uuid.UUID) (*Order, error)
	GetOrders(ctx context.Context, userID *uint, limit, page int32) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uint, status OrderStatus) error
}

type repository struct {
	db          *sql.DB
	productRepo product.Repository
	cartRepo    cart.Repository
	couponRepo  coupon.Repository
}

func NewRepository(db *sql.DB, productRepo product.Repository, cartRepo cart.Repository, couponRepo coupon.Repository) Repository {
	return &repository{
		db:          db,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		couponRepo:  couponRepo,
	}
}

// CreateOrderTx writes the order, decrements stock, removes the purchased
// cart lines and bumps coupon usage in a single transaction. Either the
// whole purchase lands or none of it does.
func (r *repository) CreateOrderTx(ctx context.Context, o *Order, session *checkout.Session) error {
	log := logger.FromCtx(ctx).With(
		zap.Uint("user_id", o.UserID),
		zap.String("session_id", session.ID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer tx.Rollback()

	// 1. Order header
	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, session_id, address_id, coupon_code,
			subtotal, discount, total, currency, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`,
		o.UserID, o.SessionID, o.AddressID, o.CouponCode,
		o.Subtotal, o.Discount, o.Total, o.Currency, o.Status,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("insert order failed", zap.Error(err))
		return fmt.Errorf("insert order failed: %w", err)
	}

	// 2. Order items + stock decrement
	cartItemIDs := make([]string, 0, len(session.Items))
	for i := range o.Items {
		it := &o.Items[i]
		it.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, variant_id, product_name, price, quantity)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`, it.OrderID, it.ProductID, it.VariantID, it.ProductName, it.Price, it.Quantity).Scan(&it.ID)
		if err != nil {
			log.Error("insert order item failed", zap.Error(err))
			return fmt.Errorf("insert order item failed: %w", err)
		}

		if it.VariantID != nil {
			if err := r.productRepo.DecrementStock(ctx, tx, *it.VariantID, it.Quantity); err != nil {
				return err
			}
		}
	}
	for _, it := range session.Items {
		cartItemIDs = append(cartItemIDs, it.CartItemID)
	}

	// 3. Purchased lines leave the cart; unselected lines stay.
	if err := r.cartRepo.RemoveItemsTx(ctx, tx, o.UserID, cartItemIDs); err != nil {
		return err
	}

	// 4. Coupon usage
	if o.CouponCode != nil {
		if err := r.couponRepo.IncrementUsage(ctx, tx, *o.CouponCode); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *repository) GetOrderBySessionID(ctx context.Context, sessionID uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_id, address_id, coupon_code,
		       subtotal, discount, total, currency, status, created_at, updated_at
		FROM orders
		WHERE session_id = $1
	`, sessionID).Scan(
		&o.ID, &o.UserID, &o.SessionID, &o.AddressID, &o.CouponCode,
		&o.Subtotal, &o.Discount, &o.Total, &o.Currency, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order by session failed: %w", err)
	}

	return &o, nil
}

// GetOrders lists orders newest-first. userID nil means all users (admin).
func (r *repository) GetOrders(ctx context.Context, userID *uint, limit, page int32) ([]*Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	query := `
		SELECT id, user_id, session_id, address_id, coupon_code,
		       subtotal, discount, total, currency, status, created_at, updated_at
		FROM orders
	`
	args := []interface{}{}

	if userID != nil {
		query += " WHERE user_id = $1"
		args = append(args, *userID)
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get orders failed: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.SessionID, &o.AddressID, &o.CouponCode,
			&o.Subtotal, &o.Discount, &o.Total, &o.Currency, &o.Status, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}

	return orders, rows.Err()
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uint) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, session_id, address_id, coupon_code,
		       subtotal, discount, total, currency, status, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.UserID, &o.SessionID, &o.AddressID, &o.CouponCode,
		&o.Subtotal, &o.Discount, &o.Total, &o.Currency, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, variant_id, product_name, price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order items failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.VariantID, &it.ProductName, &it.Price, &it.Quantity,
		); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) UpdateOrderStatus(ctx context.Context, orderID uint, status OrderStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, orderID)
	if err != nil {
		return fmt.Errorf("update order status failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}

	return nil
}
