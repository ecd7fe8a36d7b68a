package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateRating    = errors.New("rating already exists for this dish and order")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrDishNotInOrder is a validation error.
	ErrDishNotInOrder = fmt.Errorf("%w: dish was not part of this order", ErrValidation)
)
