package payment

import "errors"

var (
	ErrNotFound      = errors.New("payment not found")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidMethod = errors.New("invalid payment method")
	ErrInvalidProof  = errors.New("invalid payment proof")
	ErrGateway       = errors.New("payment gateway failure")
)
