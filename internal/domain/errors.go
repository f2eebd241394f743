package domain

import "errors"

var (
	// ErrNotFound signals a missing logo.
	ErrNotFound = errors.New("logo not found")
	// ErrSourceUnavailable signals that the index source could not be fetched or parsed.
	ErrSourceUnavailable = errors.New("index source unavailable")
	// ErrInvalidInput signals a missing required request field.
	ErrInvalidInput = errors.New("invalid input")
)
