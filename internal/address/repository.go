package address

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, userID uint, input CreateAddressInput) (*Address, error)
	GetByID(ctx context.Context, userID uint, id uuid.UUID) (*Address, error)
	ListByUser(ctx context.Context, userID uint) ([]*Address, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `
	a.id, a.user_id, a.name, a.phone, a.address1, a.address2,
	a.city, a.province, a.postal_code, a.country, a.is_default, a.is_active
`

func scanAddress(row interface{ Scan(...interface{}) error }) (*Address, error) {
	var a Address
	err := row.Scan(
		&a.ID, &a.UserID, &a.Name, &a.Phone, &a.Address1, &a.Address2,
		&a.City, &a.Province, &a.Postal, &a.Country, &a.IsDefault, &a.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Create(ctx context.Context, userID uint, input CreateAddressInput) (*Address, error) {
	if input.Name == "" || input.Phone == "" || input.AddressLine1 == "" {
		return nil, ErrInvalidInput
	}

	if input.SetAsDefault {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE addresses SET is_default = FALSE WHERE user_id = $1`, userID); err != nil {
			return nil, fmt.Errorf("reset default address failed: %w", err)
		}
	}

	query := `
		INSERT INTO addresses (
			user_id, name, phone, address1, address2,
			city, province, postal_code, country, is_default
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING
			id, user_id, name, phone, address1, address2,
			city, province, postal_code, country, is_default, is_active
	`

	row := r.db.QueryRowContext(ctx, query,
		userID, input.Name, input.Phone, input.AddressLine1, input.AddressLine2,
		input.City, input.Province, input.PostalCode, input.Country, input.SetAsDefault,
	)

	a, err := scanAddress(row)
	if err != nil {
		return nil, fmt.Errorf("create address failed: %w", err)
	}
	return a, nil
}

func (r *repository) GetByID(ctx context.Context, userID uint, id uuid.UUID) (*Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses a WHERE a.user_id = $1 AND a.id = $2 AND a.is_active = TRUE`

	a, err := scanAddress(r.db.QueryRowContext(ctx, query, userID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get address failed: %w", err)
	}
	return a, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uint) ([]*Address, error) {
	query := `SELECT ` + addressColumns + ` FROM addresses a
		WHERE a.user_id = $1 AND a.is_active = TRUE
		ORDER BY a.is_default DESC, a.name ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses failed: %w", err)
	}
	defer rows.Close()

	var addresses []*Address
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}

	return addresses, rows.Err()
}
