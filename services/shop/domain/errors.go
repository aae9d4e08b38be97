package domain

import "errors"

// Sentinel errors for the shop domain. Use errors.Is() to check these.
var (
	// ErrInsufficientStock indicates a stock decrement would drive the
	// item's quantity below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrDeliveryCompleted indicates an order cancellation was attempted
	// after its delivery already completed.
	ErrDeliveryCompleted = errors.New("cannot cancel a completed delivery")

	// ErrDuplicateMember indicates a member with the same name already exists.
	ErrDuplicateMember = errors.New("member name already taken")

	// ErrMemberNotFound indicates the requested member does not exist.
	ErrMemberNotFound = errors.New("member not found")

	// ErrItemNotFound indicates the requested item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyOrder indicates an order was assembled without any lines.
	ErrEmptyOrder = errors.New("order must contain at least one line")
)
