package coupon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"serein-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Coupon, error)
	ListActive(ctx context.Context) ([]*Coupon, error)
	Create(ctx context.Context, input CreateCouponInput) (*Coupon, error)
	SetActive(ctx context.Context, code string, active bool) error
	IncrementUsage(ctx context.Context, tx *sql.Tx, code string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const couponColumns = `
	c.code, c.discount_type, c.discount_value, c.min_order_value,
	c.applies_to, c.applicable_ids, c.is_active,
	c.starts_at, c.expires_at, c.max_uses, c.used_count,
	c.created_at, c.updated_at
`

func scanCoupon(row interface{ Scan(...interface{}) error }) (*Coupon, error) {
	var c Coupon
	var ids pq.StringArray
	err := row.Scan(
		&c.Code, &c.DiscountType, &c.DiscountValue, &c.MinOrderValue,
		&c.AppliesTo, &ids, &c.Active,
		&c.StartsAt, &c.ExpiresAt, &c.MaxUses, &c.UsedCount,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.ApplicableIDs = []string(ids)
	return &c, nil
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	if code == "" {
		return nil, ErrInvalidCode
	}

	query := `SELECT ` + couponColumns + ` FROM coupons c WHERE c.code = $1`

	c, err := scanCoupon(r.db.QueryRowContext(ctx, query, code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get coupon failed: %w", err)
	}

	return c, nil
}

func (r *repository) ListActive(ctx context.Context) ([]*Coupon, error) {
	log := logger.FromCtx(ctx)

	query := `SELECT ` + couponColumns + ` FROM coupons c WHERE c.is_active = TRUE ORDER BY c.code ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("DB query failed ListActive", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var coupons []*Coupon
	for rows.Next() {
		c, err := scanCoupon(rows)
		if err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		coupons = append(coupons, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return coupons, nil
}

func (r *repository) Create(ctx context.Context, input CreateCouponInput) (*Coupon, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("coupon_code", input.Code),
	)
	log.Info("CreateCoupon started")

	query := `
		INSERT INTO coupons (
			code, discount_type, discount_value, min_order_value,
			applies_to, applicable_ids, starts_at, expires_at, max_uses
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING
			code, discount_type, discount_value, min_order_value,
			applies_to, applicable_ids, is_active,
			starts_at, expires_at, max_uses, used_count,
			created_at, updated_at
	`

	row := r.db.QueryRowContext(ctx, query,
		input.Code, input.DiscountType, input.DiscountValue, input.MinOrderValue,
		input.AppliesTo, pq.Array(input.ApplicableIDs),
		input.StartsAt, input.ExpiresAt, input.MaxUses,
	)

	c, err := scanCoupon(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
			return nil, ErrCouponExists
		}
		log.Error("CreateCoupon DB query failed", zap.Error(err))
		return nil, fmt.Errorf("create coupon failed: %w", err)
	}

	log.Info("CreateCoupon success")
	return c, nil
}

func (r *repository) SetActive(ctx context.Context, code string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE coupons SET is_active = $1, updated_at = NOW() WHERE code = $2`, active, code)
	if err != nil {
		return fmt.Errorf("set coupon active failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponNotFound
	}

	return nil
}

// IncrementUsage runs inside the order-creation transaction so a coupon's
// usage count moves together with the order that consumed it.
func (r *repository) IncrementUsage(ctx context.Context, tx *sql.Tx, code string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE coupons
		SET used_count = used_count + 1, updated_at = NOW()
		WHERE code = $1 AND (max_uses IS NULL OR used_count < max_uses)
	`, code)
	if err != nil {
		return fmt.Errorf("increment coupon usage failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCouponExhausted
	}

	return nil
}
