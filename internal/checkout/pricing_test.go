package checkout

import (
	"testing"

	"serein-be/internal/cart"
	"serein-be/internal/category"
	"serein-be/internal/coupon"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func selectedFixture() []*cart.CartItem {
	return []*cart.CartItem{
		{ID: "item-1", ProductID: "prod-1", CategoryID: strPtr("cat-shoes"), Price: 50000, Quantity: 2},  // 100000
		{ID: "item-2", ProductID: "prod-2", CategoryID: strPtr("cat-shirts"), Price: 30000, Quantity: 1}, // 30000
		{ID: "item-3", ProductID: "prod-3", CategoryID: nil, Price: 70000, Quantity: 1},                  // 70000
	}
}

func categoryFixture() map[string]*category.Category {
	return category.BuildMap([]*category.Category{
		{ID: "cat-apparel", Name: "Apparel"},
		{ID: "cat-shoes", Name: "Shoes", ParentID: strPtr("cat-apparel")},
		{ID: "cat-shirts", Name: "Shirts", ParentID: strPtr("cat-apparel")},
	})
}

func TestComputeSummary_NoCoupon(t *testing.T) {
	t.Run("EmptySelection", func(t *testing.T) {
		got := ComputeSummary(nil, nil, nil)
		assert.Equal(t, Summary{}, got)
	})

	t.Run("SubtotalIsSumOfLineTotals", func(t *testing.T) {
		got := ComputeSummary(selectedFixture(), nil, nil)
		assert.Equal(t, int64(200000), got.Subtotal)
		assert.Equal(t, int64(0), got.Discount)
		assert.Equal(t, int64(200000), got.FinalTotal)
		assert.Equal(t, 4, got.TotalQuantity)
		assert.Nil(t, got.EffectiveCoupon)
	})
}

func TestComputeSummary_PercentageCoupon(t *testing.T) {
	cpn := &coupon.Coupon{
		Code:          "SAVE10",
		DiscountType:  coupon.DiscountPercentage,
		DiscountValue: 10,
		AppliesTo:     coupon.ScopeAll,
		Active:        true,
	}

	got := ComputeSummary(selectedFixture(), cpn, categoryFixture())
	assert.Equal(t, int64(200000), got.Subtotal)
	assert.Equal(t, int64(20000), got.Discount)
	assert.Equal(t, int64(180000), got.FinalTotal)
	require.NotNil(t, got.EffectiveCoupon)
	assert.Equal(t, "SAVE10", got.EffectiveCoupon.Code)
}

func TestComputeSummary_FixedAmountClamped(t *testing.T) {
	// Fixed discount larger than the eligible subtotal clamps, never negative.
	items := []*cart.CartItem{
		{ID: "item-1", ProductID: "prod-1", Price: 5000, Quantity: 1},
	}
	cpn := &coupon.Coupon{
		Code:          "FLAT20K",
		DiscountType:  coupon.DiscountFixedAmount,
		DiscountValue: 20000,
		AppliesTo:     coupon.ScopeAll,
		Active:        true,
	}

	got := ComputeSummary(items, cpn, nil)
	assert.Equal(t, int64(5000), got.Subtotal)
	assert.Equal(t, int64(5000), got.Discount)
	assert.Equal(t, int64(0), got.FinalTotal)
}

func TestComputeSummary_ProductScope(t *testing.T) {
	cpn := &coupon.Coupon{
		Code:          "PROD1ONLY",
		DiscountType:  coupon.DiscountPercentage,
		DiscountValue: 50,
		AppliesTo:     coupon.ScopeProducts,
		ApplicableIDs: []string{"prod-1"},
		Active:        true,
	}

	// Only item-1 (100000) is eligible; 50% of it comes off the full subtotal.
	got := ComputeSummary(selectedFixture(), cpn, categoryFixture())
	assert.Equal(t, int64(200000), got.Subtotal)
	assert.Equal(t, int64(50000), got.Discount)
	assert.Equal(t, int64(150000), got.FinalTotal)
	assert.NotNil(t, got.EffectiveCoupon)
}

func TestComputeSummary_CategoryScope(t *testing.T) {
	t.Run("MatchesThroughAncestor", func(t *testing.T) {
		// Coupon targets the parent category; items in its child
		// categories are eligible via the ancestor chain.
		cpn := &coupon.Coupon{
			Code:          "APPAREL",
			DiscountType:  coupon.DiscountPercentage,
			DiscountValue: 10,
			AppliesTo:     coupon.ScopeCategories,
			ApplicableIDs: []string{"cat-apparel"},
			Active:        true,
		}

		// item-1 (100000) and item-2 (30000) are eligible; item-3 has
		// no category and never matches.
		got := ComputeSummary(selectedFixture(), cpn, categoryFixture())
		assert.Equal(t, int64(200000), got.Subtotal)
		assert.Equal(t, int64(13000), got.Discount)
		assert.Equal(t, int64(187000), got.FinalTotal)
	})

	t.Run("DirectMatch", func(t *testing.T) {
		cpn := &coupon.Coupon{
			Code:          "SHOES",
			DiscountType:  coupon.DiscountFixedAmount,
			DiscountValue: 10000,
			AppliesTo:     coupon.ScopeCategories,
			ApplicableIDs: []string{"cat-shoes"},
			Active:        true,
		}

		got := ComputeSummary(selectedFixture(), cpn, categoryFixture())
		assert.Equal(t, int64(10000), got.Discount)
		assert.Equal(t, int64(190000), got.FinalTotal)
	})

	t.Run("NothingEligible", func(t *testing.T) {
		cpn := &coupon.Coupon{
			Code:          "ELECTRONICS",
			DiscountType:  coupon.DiscountPercentage,
			DiscountValue: 10,
			AppliesTo:     coupon.ScopeCategories,
			ApplicableIDs: []string{"cat-electronics"},
			Active:        true,
		}

		// Disqualified, not an error: totals fall back to the plain sum
		// and the coupon drops out of the summary.
		got := ComputeSummary(selectedFixture(), cpn, categoryFixture())
		assert.Equal(t, int64(200000), got.Subtotal)
		assert.Equal(t, int64(0), got.Discount)
		assert.Equal(t, int64(200000), got.FinalTotal)
		assert.Nil(t, got.EffectiveCoupon)
	})
}

func TestComputeSummary_MinOrderValue(t *testing.T) {
	cpn := &coupon.Coupon{
		Code:          "BIGSPENDER",
		DiscountType:  coupon.DiscountPercentage,
		DiscountValue: 10,
		MinOrderValue: 500000,
		AppliesTo:     coupon.ScopeAll,
		Active:        true,
	}

	t.Run("BelowMinimum", func(t *testing.T) {
		got := ComputeSummary(selectedFixture(), cpn, nil)
		assert.Equal(t, int64(0), got.Discount)
		assert.Nil(t, got.EffectiveCoupon)
	})

	t.Run("AtMinimum", func(t *testing.T) {
		items := []*cart.CartItem{
			{ID: "item-1", ProductID: "prod-1", Price: 500000, Quantity: 1},
		}
		got := ComputeSummary(items, cpn, nil)
		assert.Equal(t, int64(50000), got.Discount)
		assert.NotNil(t, got.EffectiveCoupon)
	})

	t.Run("MinimumChecksEligibleSubtotalOnly", func(t *testing.T) {
		// Full cart reaches the minimum, but only prod-2 (30000) is
		// eligible, so the coupon does not qualify.
		scoped := &coupon.Coupon{
			Code:          "SHIRTSMIN",
			DiscountType:  coupon.DiscountPercentage,
			DiscountValue: 10,
			MinOrderValue: 100000,
			AppliesTo:     coupon.ScopeProducts,
			ApplicableIDs: []string{"prod-2"},
			Active:        true,
		}

		got := ComputeSummary(selectedFixture(), scoped, categoryFixture())
		assert.Equal(t, int64(0), got.Discount)
		assert.Nil(t, got.EffectiveCoupon)
	})
}

func TestComputeSummary_PercentageRounding(t *testing.T) {
	// 10% of 15 units is 1.5, rounded half away from zero to 2.
	items := []*cart.CartItem{
		{ID: "item-1", ProductID: "prod-1", Price: 15, Quantity: 1},
	}
	cpn := &coupon.Coupon{
		Code:          "SAVE10",
		DiscountType:  coupon.DiscountPercentage,
		DiscountValue: 10,
		AppliesTo:     coupon.ScopeAll,
		Active:        true,
	}

	got := ComputeSummary(items, cpn, nil)
	assert.Equal(t, int64(2), got.Discount)
	assert.Equal(t, int64(13), got.FinalTotal)
}

func TestComputeSummary_UnknownDiscountType(t *testing.T) {
	cpn := &coupon.Coupon{
		Code:          "WEIRD",
		DiscountType:  coupon.DiscountType("bogus"),
		DiscountValue: 10,
		AppliesTo:     coupon.ScopeAll,
		Active:        true,
	}

	got := ComputeSummary(selectedFixture(), cpn, nil)
	assert.Equal(t, int64(0), got.Discount)
	assert.Nil(t, got.EffectiveCoupon)
}
