package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInvalidConfig signals a search configuration that failed validation.
	ErrInvalidConfig = errors.New("invalid search config")
	// ErrInvalidTerm signals an unusable search term.
	ErrInvalidTerm = errors.New("invalid search term")
)
