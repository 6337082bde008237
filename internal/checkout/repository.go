package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"serein-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error)
	UpdateSessionAddress(ctx context.Context, sessionID uuid.UUID, addressID uuid.UUID) error
	MarkConfirmed(ctx context.Context, sessionID uuid.UUID, confirmedAt time.Time) error
	MarkExpired(ctx context.Context, sessionID uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateSession persists the session header and its item snapshot in one
// transaction.
func (r *repository) CreateSession(ctx context.Context, session *Session) error {
	log := logger.FromCtx(ctx).With(
		zap.String("session_id", session.ID.String()),
		zap.Uint("user_id", session.UserID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx failed: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO checkout_sessions (
			id, user_id, status, coupon_code, address_id,
			subtotal, discount, total, total_quantity, currency,
			created_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		session.ID, session.UserID, session.Status, session.CouponCode, session.AddressID,
		session.Subtotal, session.Discount, session.Total, session.TotalQuantity, session.Currency,
		session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		log.Error("insert checkout session failed", zap.Error(err))
		return fmt.Errorf("insert session failed: %w", err)
	}

	for i := range session.Items {
		it := &session.Items[i]
		_, err = tx.ExecContext(ctx, `
			INSERT INTO checkout_session_items (
				id, session_id, cart_item_id, product_id, variant_id,
				category_id, product_name, price, quantity
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
			it.ID, it.SessionID, it.CartItemID, it.ProductID, it.VariantID,
			it.CategoryID, it.ProductName, it.Price, it.Quantity,
		)
		if err != nil {
			log.Error("insert checkout session item failed", zap.Error(err))
			return fmt.Errorf("insert session item failed: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) GetSession(ctx context.Context, sessionID uuid.UUID) (*Session, error) {
	var s Session
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, coupon_code, address_id,
		       subtotal, discount, total, total_quantity, currency,
		       created_at, expires_at, confirmed_at
		FROM checkout_sessions
		WHERE id = $1
	`, sessionID).Scan(
		&s.ID, &s.UserID, &s.Status, &s.CouponCode, &s.AddressID,
		&s.Subtotal, &s.Discount, &s.Total, &s.TotalQuantity, &s.Currency,
		&s.CreatedAt, &s.ExpiresAt, &s.ConfirmedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session failed: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, cart_item_id, product_id, variant_id,
		       category_id, product_name, price, quantity
		FROM checkout_session_items
		WHERE session_id = $1
		ORDER BY product_name ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session items failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it SessionItem
		if err := rows.Scan(
			&it.ID, &it.SessionID, &it.CartItemID, &it.ProductID, &it.VariantID,
			&it.CategoryID, &it.ProductName, &it.Price, &it.Quantity,
		); err != nil {
			return nil, err
		}
		s.Items = append(s.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) UpdateSessionAddress(ctx context.Context, sessionID uuid.UUID, addressID uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE checkout_sessions
		SET address_id = $1
		WHERE id = $2 AND status = $3
	`, addressID, sessionID, SessionStatusPending)
	if err != nil {
		return fmt.Errorf("update session address failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *repository) MarkConfirmed(ctx context.Context, sessionID uuid.UUID, confirmedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE checkout_sessions
		SET status = $1, confirmed_at = $2
		WHERE id = $3 AND status = $4
	`, SessionStatusConfirmed, confirmedAt, sessionID, SessionStatusPending)
	if err != nil {
		return fmt.Errorf("confirm session failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSessionConfirmed
	}

	return nil
}

func (r *repository) MarkExpired(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE checkout_sessions
		SET status = $1
		WHERE id = $2 AND status = $3
	`, SessionStatusExpired, sessionID, SessionStatusPending)
	if err != nil {
		return fmt.Errorf("expire session failed: %w", err)
	}
	return nil
}
