package service

import "errors"

// Common service errors
var (
	// ErrQuoteNotFound is returned when no quote with the given id exists in
	// the store's collection
	ErrQuoteNotFound = errors.New("quote not found")
)
