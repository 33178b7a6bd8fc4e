package bonus

import "errors"

var (
	ErrInvalidAmount = errors.New("bonus amount must be positive")
)
