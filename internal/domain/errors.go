package domain

import "errors"

// Domain errors (no external dependencies). Use cases wrap these with
// fmt.Errorf("%w: ...") to carry the offending entry/quantity; handlers
// match with errors.Is.
var (
	ErrNotFound             = errors.New("resource not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDuplicate            = errors.New("duplicate resource")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("access denied")
	ErrInsufficientQuantity = errors.New("insufficient available quantity")
	ErrPaymentSplitMismatch = errors.New("payment lines do not reconcile with total due")
	ErrAlreadyReversed      = errors.New("transaction already reversed")
	ErrEmailAlreadyExists   = errors.New("email already registered")
)
