package application

import "github.com/kailas-cloud/jobmatch/internal/domain"

// Policy decides whether a status change is legal.
type Policy interface {
	Allow(from, to Status) error
}

// PermissivePolicy allows every transition between valid statuses, including re-opening
// terminal applications.
type PermissivePolicy struct{}

// Allow implements Policy.
func (PermissivePolicy) Allow(_, _ Status) error { return nil }

// strictTransitions lists every allowed (from -> to) pair for StrictPolicy.
//
//	applied ──► reviewed ──► interview ──► offer
//	   │            │            │
//	   └────────────┴────────────┴──► rejected | withdrawn
//
// offer, rejected and withdrawn have no outgoing transitions.
var strictTransitions = map[Status][]Status{
	StatusApplied:   {StatusReviewed, StatusInterview, StatusRejected, StatusWithdrawn},
	StatusReviewed:  {StatusInterview, StatusRejected, StatusWithdrawn},
	StatusInterview: {StatusOffer, StatusRejected, StatusWithdrawn},
}

// StrictPolicy allows forward moves only. Setting the current status again is a no-op.
type StrictPolicy struct{}

// Allow implements Policy.
func (StrictPolicy) Allow(from, to Status) error {
	if from == to {
		return nil
	}
	for _, s := range strictTransitions[from] {
		if s == to {
			return nil
		}
	}
	return domain.NewTransitionError(string(from), string(to))
}

// PolicyFor returns StrictPolicy when strict is set, PermissivePolicy otherwise.
func PolicyFor(strict bool) Policy {
	if strict {
		return StrictPolicy{}
	}
	return PermissivePolicy{}
}
