package wallet

import "errors"

var (
	ErrNotFound        = errors.New("wallet not found")
	ErrAlreadyInactive = errors.New("wallet already inactive")
	ErrInactive        = errors.New("wallet is inactive")
)
