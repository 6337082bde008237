package checkout

import "errors"

var (
	// ErrEmptySelection: checkout was initiated with nothing selected.
	ErrEmptySelection = errors.New("no items selected for checkout")

	// ErrStaleSelection: one or more selected IDs no longer resolve to a
	// cart item. The shopper is sent back to the cart to re-select.
	ErrStaleSelection = errors.New("selection references items no longer in the cart")

	// ErrStockShortfall: a selected line's quantity exceeds available
	// stock. Blocks submission until the shopper adjusts the cart.
	ErrStockShortfall = errors.New("selected quantity exceeds available stock")

	// -- Session lifecycle --
	ErrSessionNotFound  = errors.New("checkout session not found")
	ErrSessionExpired   = errors.New("checkout session has expired")
	ErrSessionConfirmed = errors.New("checkout session already confirmed")
	ErrSessionNoAddress = errors.New("checkout session has no shipping address")
	ErrUnauthorized     = errors.New("unauthorized")
)
