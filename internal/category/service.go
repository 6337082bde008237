package category

import (
	"context"

	"serein-be/internal/logger"

	"go.uber.org/zap"
)

// Service defines the business logic for categories.
type Service interface {
	GetCategories(ctx context.Context, onlyActive bool) ([]*Category, error)
	GetCategoryMap(ctx context.Context) (map[string]*Category, error)
	GetAncestors(ctx context.Context, categoryID string) ([]string, error)
	AddCategory(ctx context.Context, name string, parentID *string) (*Category, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// service implements the Service interface
type service struct {
	repo Repository
}

// NewService creates a new category service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetCategories(ctx context.Context, onlyActive bool) ([]*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetCategories"),
	)

	categories, err := s.repo.GetCategories(ctx, onlyActive)
	if err != nil {
		log.Error("failed to get categories", zap.Error(err))
		return nil, err
	}

	if len(categories) == 0 {
		return []*Category{}, nil
	}

	return categories, nil
}

// GetCategoryMap returns the full category list indexed by ID. Inactive
// categories are included so ancestor chains through a disabled parent
// still resolve.
func (s *service) GetCategoryMap(ctx context.Context) (map[string]*Category, error) {
	categories, err := s.repo.GetCategories(ctx, false)
	if err != nil {
		return nil, err
	}
	return BuildMap(categories), nil
}

// GetAncestors returns the ancestor chain for one category, nearest first.
func (s *service) GetAncestors(ctx context.Context, categoryID string) ([]string, error) {
	categories, err := s.GetCategoryMap(ctx)
	if err != nil {
		return nil, err
	}
	return AncestorsOf(categoryID, categories), nil
}

func (s *service) AddCategory(ctx context.Context, name string, parentID *string) (*Category, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddCategory"),
		zap.String("name", name),
	)
	log.Info("AddCategory started")

	// Reject dangling parents up front; the resolver tolerates them, but
	// there is no reason to let the tree grow malformed.
	if parentID != nil {
		parent, err := s.repo.GetCategoryByID(ctx, *parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCategoryNotFound
		}
	}

	c, err := s.repo.AddCategory(ctx, name, parentID)
	if err != nil {
		log.Error("failed to add category", zap.Error(err))
		return nil, err
	}

	log.Info("AddCategory success", zap.String("category_id", c.ID))
	return c, nil
}

func (s *service) SetActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetActive(ctx, id, active)
}
