package auth

import "errors"

var (
	// ErrMissingCredential is returned when the Authorization header is absent.
	ErrMissingCredential = errors.New("Missing Authorization header")

	// ErrMalformedCredential is returned when the Authorization header is not a bearer credential.
	ErrMalformedCredential = errors.New("Malformed Authorization header")

	// ErrInvalidCredential is returned when the bearer token cannot be decoded into claims.
	ErrInvalidCredential = errors.New("Invalid token")
)
