package checkout

import (
	"serein-be/internal/cart"
	"serein-be/internal/category"
	"serein-be/internal/coupon"
	"serein-be/internal/metrics"

	"github.com/shopspring/decimal"
)

// Summary is the pricing breakdown for a set of selected cart lines. It is
// recomputed from scratch on every input change and never mutated in place.
type Summary struct {
	Subtotal      int64 `json:"subtotal"`
	Discount      int64 `json:"discount"`
	FinalTotal    int64 `json:"finalTotal"`
	TotalQuantity int   `json:"totalQuantity"`

	// EffectiveCoupon is the input coupon, or nil when this pass
	// disqualified it (nothing eligible, or below minimum order value).
	EffectiveCoupon *coupon.Coupon `json:"effectiveCoupon,omitempty"`
}

// ComputeSummary computes subtotal, discount and final total for the
// selected items under the given coupon. It never returns an error: empty
// selection, absent coupon, zero eligible items and below-minimum all
// degrade to well-defined zero/nil values.
//
// The discount is computed against the subtotal of the coupon-eligible
// items only, but subtracted from the full selected subtotal: ineligible
// items are charged in full and the eligible items absorb the discount.
func ComputeSummary(selected []*cart.CartItem, cpn *coupon.Coupon, categories map[string]*category.Category) Summary {
	metrics.SummariesComputed.Inc()

	if len(selected) == 0 {
		return Summary{}
	}

	var subtotal int64
	var quantity int
	for _, it := range selected {
		subtotal += it.LineTotal()
		quantity += it.Quantity
	}

	sum := Summary{
		Subtotal:      subtotal,
		FinalTotal:    subtotal,
		TotalQuantity: quantity,
	}

	if cpn == nil {
		return sum
	}

	var applicable int64
	for _, it := range selected {
		if itemEligible(it, cpn, categories) {
			applicable += it.LineTotal()
		}
	}

	// Disqualified: no eligible line, or the eligible subtotal does not
	// reach the coupon's minimum. Not an error, just no discount.
	if applicable == 0 || applicable < cpn.MinOrderValue {
		metrics.CouponsDisqualified.Inc()
		return sum
	}

	var raw decimal.Decimal
	switch cpn.DiscountType {
	case coupon.DiscountPercentage:
		raw = decimal.NewFromInt(applicable).
			Mul(decimal.NewFromInt(cpn.DiscountValue)).
			Div(decimal.NewFromInt(100))
	case coupon.DiscountFixedAmount:
		raw = decimal.NewFromInt(cpn.DiscountValue)
	default:
		return sum
	}

	// Whole currency units only, and never more than the subtotal the
	// discount is drawn from.
	discount := raw.Round(0).IntPart()
	if discount > applicable {
		discount = applicable
	}
	if discount < 0 {
		discount = 0
	}

	sum.Discount = discount
	sum.FinalTotal = subtotal - discount
	sum.EffectiveCoupon = cpn
	return sum
}

// itemEligible decides whether one cart line falls under the coupon's
// applicability scope.
func itemEligible(it *cart.CartItem, cpn *coupon.Coupon, categories map[string]*category.Category) bool {
	switch cpn.AppliesTo {
	case coupon.ScopeAll:
		return true

	case coupon.ScopeProducts:
		return containsID(cpn.ApplicableIDs, it.ProductID)

	case coupon.ScopeCategories:
		// An item without a category can never match a category scope.
		if it.CategoryID == nil {
			return false
		}
		if containsID(cpn.ApplicableIDs, *it.CategoryID) {
			return true
		}
		for _, ancestor := range category.AncestorsOf(*it.CategoryID, categories) {
			if containsID(cpn.ApplicableIDs, ancestor) {
				return true
			}
		}
		return false
	}

	return false
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}
