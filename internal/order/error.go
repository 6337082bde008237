package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrSessionNotConfirmed = errors.New("checkout session not confirmed")
	ErrInvalidStatus       = errors.New("invalid order status")
)
