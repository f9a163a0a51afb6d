package chi

import (
	"github.com/kailas-cloud/wfsquery/internal/domain/search/attribute"
	"github.com/kailas-cloud/wfsquery/internal/domain/search/request"
)

// ErrorCode is a machine-readable error code in ErrorResponse.
type ErrorCode string

// Error codes returned by the API.
const (
	ErrorCodeBadRequest      ErrorCode = "bad_request"
	ErrorCodeUnauthorized    ErrorCode = "unauthorized"
	ErrorCodeProfileNotFound ErrorCode = "profile_not_found"
	ErrorCodeInvalidConfig   ErrorCode = "invalid_config"
	ErrorCodeInvalidTerm     ErrorCode = "invalid_term"
	ErrorCodeInternalError   ErrorCode = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// ProfileListResponse lists configured profile names.
type ProfileListResponse struct {
	Items []string `json:"items"`
}

// GetFeatureRequest is the body of POST /v1/getfeature.
type GetFeatureRequest struct {
	Config request.SearchConfig `json:"config"`
	Term   string               `json:"term"`
}

// FilterRequest is the body of POST /v1/filter.
type FilterRequest struct {
	AttributeDetails []attribute.Detail `json:"attribute_details"`
	Term             string             `json:"term"`
	Version          string             `json:"version,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Version  string            `json:"version"`
	Profiles int               `json:"profiles"`
	Checks   map[string]string `json:"checks"`
}

// GetFeatureParams are the query parameters of GET /v1/profiles/{name}/getfeature.
type GetFeatureParams struct {
	Term   string
	Pretty *bool
}

// CombineGetFeatureParams are the query parameters of POST /v1/getfeature.
type CombineGetFeatureParams struct {
	Pretty *bool
}
