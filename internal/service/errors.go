package service

import "errors"

var (
	// ErrInvalidAmount is returned when a payment amount is not strictly positive.
	ErrInvalidAmount = errors.New("Amount must be positive")
)
