package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"serein-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetCategories(ctx context.Context, onlyActive bool) ([]*Category, error)
	GetCategoryByID(ctx context.Context, id string) (*Category, error)
	AddCategory(ctx context.Context, name string, parentID *string) (*Category, error)
	SetActive(ctx context.Context, id string, active bool) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// GetCategories returns the full (flat) category list. Checkout pulls the
// whole tree once per computation pass, so there is no pagination here.
func (r *repository) GetCategories(ctx context.Context, onlyActive bool) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.Bool("only_active", onlyActive),
	)

	query := `
		SELECT c.id, c.name, c.parent_id, c.is_active
		FROM categories c
	`

	where := []string{}
	args := []interface{}{}

	if onlyActive {
		where = append(where, "c.is_active = TRUE")
	}

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	query += " ORDER BY c.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("DB query failed GetCategories", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var categories []*Category

	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.ParentID, &c.Active); err != nil {
			log.Error("Row scan failed", zap.Error(err))
			return nil, err
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		log.Error("Rows iteration failed", zap.Error(err))
		return nil, err
	}

	return categories, nil
}

func (r *repository) GetCategoryByID(ctx context.Context, id string) (*Category, error) {
	if id == "" {
		return nil, errors.New("category id is required")
	}

	query := `
		SELECT c.id, c.name, c.parent_id, c.is_active
		FROM categories c
		WHERE c.id = $1
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Name, &c.ParentID, &c.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category failed: %w", err)
	}

	return &c, nil
}

func (r *repository) AddCategory(
	ctx context.Context,
	name string,
	parentID *string,
) (*Category, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("category_name", name),
	)
	log.Info("AddCategory started")

	if name == "" {
		log.Warn("AddCategory validation failed: empty name")
		return nil, errors.New("category name cannot be empty")
	}

	query := `
		INSERT INTO categories (name, parent_id)
		VALUES ($1, $2)
		RETURNING id, name, parent_id, is_active
	`

	var c Category
	err := r.db.QueryRowContext(ctx, query, name, parentID).
		Scan(&c.ID, &c.Name, &c.ParentID, &c.Active)
	if err != nil {
		log.Error("AddCategory DB query failed", zap.Error(err))
		return nil, fmt.Errorf("add category failed: %w", err)
	}

	log.Info("AddCategory success", zap.String("category_id", c.ID))
	return &c, nil
}

func (r *repository) SetActive(ctx context.Context, id string, active bool) error {
	if id == "" {
		return errors.New("category id is required")
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE categories SET is_active = $1 WHERE id = $2`, active, id)
	if err != nil {
		return fmt.Errorf("set category active failed: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
