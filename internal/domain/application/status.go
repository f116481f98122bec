package application

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/jobmatch/internal/domain"
)

// Status is the lifecycle position of an application.
type Status string

// Application statuses.
const (
	StatusApplied   Status = "applied"
	StatusReviewed  Status = "reviewed"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

// Columns lists every status in board order.
var Columns = []Status{
	StatusApplied, StatusReviewed, StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn,
}

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	switch s {
	case StatusApplied, StatusReviewed, StatusInterview, StatusOffer, StatusRejected, StatusWithdrawn:
		return true
	}
	return false
}

// IsTerminal reports whether the status ends the application for matching purposes.
func (s Status) IsTerminal() bool {
	return s == StatusOffer || s == StatusRejected || s == StatusWithdrawn
}

// ParseStatus converts raw input to a Status, case-insensitively.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStatus, raw)
	}
	return s, nil
}
