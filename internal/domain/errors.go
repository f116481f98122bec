package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyApplied signals a second application to the same job.
	ErrAlreadyApplied = errors.New("already applied")
	// ErrInvalidStatus signals an unknown application status.
	ErrInvalidStatus = errors.New("invalid status")
	// ErrIllegalTransition signals a transition rejected by a strict policy.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrInvalidApplication signals missing or malformed application fields.
	ErrInvalidApplication = errors.New("invalid application")
	// ErrInvalidJob signals missing or malformed job posting fields.
	ErrInvalidJob = errors.New("invalid job")

	// ErrKeywordSourceUnavailable signals that keywords could not be obtained.
	ErrKeywordSourceUnavailable = errors.New("keyword source unavailable")
	// ErrCatalogUnavailable signals that the job catalog could not be fetched.
	ErrCatalogUnavailable = errors.New("job catalog unavailable")
	// ErrAnalyzerUnavailable signals a CV-analysis provider failure.
	ErrAnalyzerUnavailable = errors.New("cv analyzer unavailable")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
)

// TransitionError wraps ErrIllegalTransition with the rejected edge.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrIllegalTransition.Error(), e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrIllegalTransition }

// NewTransitionError creates an illegal transition error.
func NewTransitionError(from, to string) error {
	return &TransitionError{From: from, To: to}
}
