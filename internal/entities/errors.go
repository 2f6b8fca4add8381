package entities

import (
	"errors"
	"fmt"
)

// Виды ошибок. Конкретные ошибки ниже оборачивают один из них,
// поэтому проверять нужно через errors.Is(err, ErrNotFound) и т.п.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("not allowed")
	ErrInvalidState = errors.New("invalid state")
	// ErrConflict единственная ошибка, которую безопасно повторять
	ErrConflict = errors.New("conflict, retry later")
)

var (
	ErrOrderNotFound = fmt.Errorf("order %w", ErrNotFound)
	ErrBidNotFound   = fmt.Errorf("bid %w", ErrNotFound)
	ErrInvalidOrder  = fmt.Errorf("%w: malformed order data", ErrValidation)

	ErrNotOrderOwner = fmt.Errorf("%w: caller does not own the order", ErrForbidden)
	ErrOwnOrder      = fmt.Errorf("%w: cannot bid on own order", ErrForbidden)

	ErrOrderClosed   = fmt.Errorf("%w: order is already closed", ErrInvalidState)
	ErrBidNotPending = fmt.Errorf("%w: this offer was already accepted or rejected", ErrInvalidState)
)

// IsRetryable сообщает, стоит ли автоматически повторять операцию
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConflict)
}
