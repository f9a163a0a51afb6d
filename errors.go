package wfsquery

import "github.com/kailas-cloud/wfsquery/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound      = domain.ErrNotFound
	ErrInvalidConfig = domain.ErrInvalidConfig
	ErrInvalidTerm   = domain.ErrInvalidTerm
)
