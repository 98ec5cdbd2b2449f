package services

import "errors"

// Error taxonomy shared by all services. Every error is detected before any
// mutation, so callers never observe partially-applied state.
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
)
