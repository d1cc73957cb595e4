package domain

import "errors"

// Sentinel errors for order placement. Both are detected before any book
// state is mutated, so a rejected call leaves the book untouched.
var (
	ErrDuplicateID  = errors.New("duplicate_order_id")
	ErrZeroQuantity = errors.New("zero_quantity")
)

// ValidationError represents an input validation failure at the service
// or command-line boundary (bad decimal, unknown side, and so on).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
