package coupon

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetByCode(ctx context.Context, code string) (*Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *MockRepository) ListActive(ctx context.Context) ([]*Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Coupon), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, input CreateCouponInput) (*Coupon, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Coupon), args.Error(1)
}

func (m *MockRepository) SetActive(ctx context.Context, code string, active bool) error {
	return m.Called(ctx, code, active).Error(0)
}

func (m *MockRepository) IncrementUsage(ctx context.Context, tx *sql.Tx, code string) error {
	return m.Called(ctx, tx, code).Error(0)
}

func timePtr(t time.Time) *time.Time { return &t }
func intPtr(i int) *int              { return &i }

func newTestService(repo Repository, now time.Time) Service {
	return &service{repo: repo, now: func() time.Time { return now }}
}

// --- Tests ---

func TestService_ValidateForUse(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	valid := func() *Coupon {
		return &Coupon{
			Code:          "SAVE10",
			DiscountType:  DiscountPercentage,
			DiscountValue: 10,
			AppliesTo:     ScopeAll,
			Active:        true,
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		mockRepo.On("GetByCode", ctx, "SAVE10").Return(valid(), nil)

		c, err := svc.ValidateForUse(ctx, "SAVE10")
		require.NoError(t, err)
		assert.Equal(t, "SAVE10", c.Code)
	})

	t.Run("EmptyCode", func(t *testing.T) {
		svc := newTestService(new(MockRepository), now)
		_, err := svc.ValidateForUse(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidCode)
	})

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		mockRepo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

		_, err := svc.ValidateForUse(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("Inactive", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		c := valid()
		c.Active = false
		mockRepo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		_, err := svc.ValidateForUse(ctx, "SAVE10")
		assert.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("NotStarted", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		c := valid()
		c.StartsAt = timePtr(now.Add(time.Hour))
		mockRepo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		_, err := svc.ValidateForUse(ctx, "SAVE10")
		assert.ErrorIs(t, err, ErrCouponNotStarted)
	})

	t.Run("Expired", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		c := valid()
		c.ExpiresAt = timePtr(now.Add(-time.Hour))
		mockRepo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		_, err := svc.ValidateForUse(ctx, "SAVE10")
		assert.ErrorIs(t, err, ErrCouponExpired)
	})

	t.Run("Exhausted", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		c := valid()
		c.MaxUses = intPtr(100)
		c.UsedCount = 100
		mockRepo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		_, err := svc.ValidateForUse(ctx, "SAVE10")
		assert.ErrorIs(t, err, ErrCouponExhausted)
	})

	t.Run("ScopedWithNoTargets", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		c := valid()
		c.AppliesTo = ScopeProducts
		c.ApplicableIDs = nil
		mockRepo.On("GetByCode", ctx, "SAVE10").Return(c, nil)

		_, err := svc.ValidateForUse(ctx, "SAVE10")
		assert.ErrorIs(t, err, ErrEmptyScope)
	})
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	input := CreateCouponInput{
		Code:          "SAVE10",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		AppliesTo:     ScopeAll,
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		expected := &Coupon{Code: "SAVE10", Active: true}
		mockRepo.On("Create", ctx, input).Return(expected, nil)

		c, err := svc.Create(ctx, input)
		require.NoError(t, err)
		assert.Equal(t, expected, c)
	})

	t.Run("PercentageOver100", func(t *testing.T) {
		svc := newTestService(new(MockRepository), now)
		bad := input
		bad.DiscountValue = 150

		_, err := svc.Create(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("NonPositiveDiscount", func(t *testing.T) {
		svc := newTestService(new(MockRepository), now)
		bad := input
		bad.DiscountValue = 0

		_, err := svc.Create(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("ScopedWithoutTargets", func(t *testing.T) {
		svc := newTestService(new(MockRepository), now)
		bad := input
		bad.AppliesTo = ScopeCategories
		bad.ApplicableIDs = nil

		_, err := svc.Create(ctx, bad)
		assert.ErrorIs(t, err, ErrEmptyScope)
	})

	t.Run("DuplicateCode", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		mockRepo.On("Create", ctx, input).Return(nil, ErrCouponExists)

		_, err := svc.Create(ctx, input)
		assert.ErrorIs(t, err, ErrCouponExists)
	})
}

func TestService_GetByCode(t *testing.T) {
	ctx := context.Background()
	now := time.Now()

	t.Run("NotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		mockRepo.On("GetByCode", ctx, "NOPE").Return(nil, nil)

		_, err := svc.GetByCode(ctx, "NOPE")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := newTestService(mockRepo, now)
		mockRepo.On("GetByCode", ctx, "SAVE10").Return(nil, errors.New("db error"))

		_, err := svc.GetByCode(ctx, "SAVE10")
		assert.Error(t, err)
	})
}
