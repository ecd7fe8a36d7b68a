package domain

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("role not allowed to perform this transition")
	ErrInactiveCourier    = errors.New("courier is inactive")
	ErrOrderClosed        = errors.New("order is already delivered or cancelled")
	ErrConflict           = errors.New("order was modified concurrently")
	ErrStorageUnavailable = errors.New("storage unavailable")
)
