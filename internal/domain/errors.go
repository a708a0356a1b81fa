package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrFragmentNotFound = errors.New("fragment not found")
	ErrFetch            = errors.New("fetch failed")
	ErrValidation       = errors.New("validation failed")
	ErrUnknownAction    = errors.New("unknown action")
	ErrInvalidKey       = errors.New("invalid key")
)
