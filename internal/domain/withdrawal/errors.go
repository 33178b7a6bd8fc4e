package withdrawal

import "errors"

var (
	ErrNotFound            = errors.New("withdrawal not found")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidStatus       = errors.New("invalid withdrawal status")
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	ErrRequestOutstanding  = errors.New("withdrawal request already outstanding")
	ErrAlreadyFinal        = errors.New("withdrawal already in a terminal state")
)
