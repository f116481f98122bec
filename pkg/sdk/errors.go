package jobmatch

import (
	"fmt"

	"github.com/kailas-cloud/jobmatch/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// API errors unwrap to them; use errors.Is() to check.
var (
	ErrNotFound                 = domain.ErrNotFound
	ErrAlreadyApplied           = domain.ErrAlreadyApplied
	ErrIllegalTransition        = domain.ErrIllegalTransition
	ErrRateLimited              = domain.ErrRateLimited
	ErrAnalyzerUnavailable      = domain.ErrAnalyzerUnavailable
	ErrKeywordSourceUnavailable = domain.ErrKeywordSourceUnavailable
	ErrCatalogUnavailable       = domain.ErrCatalogUnavailable
	ErrInvalidCV                = domain.ErrInvalidCV
)

var codeSentinels = map[string]error{
	"not_found":                  domain.ErrNotFound,
	"already_applied":            domain.ErrAlreadyApplied,
	"illegal_transition":         domain.ErrIllegalTransition,
	"rate_limited":               domain.ErrRateLimited,
	"analyzer_unavailable":       domain.ErrAnalyzerUnavailable,
	"keyword_source_unavailable": domain.ErrKeywordSourceUnavailable,
	"catalog_unavailable":        domain.ErrCatalogUnavailable,
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	// From and To are set for illegal_transition.
	From string
	To   string

	raw []byte
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("jobmatch: http %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("jobmatch: %s (http %d): %s", e.Code, e.StatusCode, e.Message)
}

// Unwrap maps the error code to a domain sentinel, or nil for codes without one.
func (e *APIError) Unwrap() error {
	return codeSentinels[e.Code]
}
