package job

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain"
)

// Status is the catalog visibility of a posting.
type Status string

const (
	// StatusActive postings are shown and matched.
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// IsValid checks if the status is one of the supported values.
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// Details holds the descriptive fields of a posting. All optional.
type Details struct {
	TitleEN      string
	Company      string
	Location     string
	Category     string
	JobType      string
	SalaryRange  string
	Description  string
	Requirements string
}

// Job is a catalog posting (immutable value object).
type Job struct {
	id       string
	title    string
	details  Details
	status   Status
	postedAt time.Time
}

// New validates and creates a Job. Empty status defaults to active.
func New(id, title string, d Details, status Status, postedAt time.Time) (Job, error) {
	id = strings.TrimSpace(id)
	title = strings.TrimSpace(title)
	if id == "" {
		return Job{}, fmt.Errorf("%w: id is required", domain.ErrInvalidJob)
	}
	if len(id) > 128 {
		return Job{}, fmt.Errorf("%w: id too long (max 128)", domain.ErrInvalidJob)
	}
	if title == "" {
		return Job{}, fmt.Errorf("%w: title is required", domain.ErrInvalidJob)
	}
	if status == "" {
		status = StatusActive
	}
	if !status.IsValid() {
		return Job{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidJob, status)
	}
	if postedAt.IsZero() {
		postedAt = time.Now().UTC()
	}
	return Job{id: id, title: title, details: d, status: status, postedAt: postedAt}, nil
}

// Reconstruct restores a Job from storage without validation.
func Reconstruct(id, title string, d Details, status Status, postedAt time.Time) Job {
	return Job{id: id, title: title, details: d, status: status, postedAt: postedAt}
}

// ID returns the posting identifier.
func (j Job) ID() string { return j.id }

// Title returns the display title.
func (j Job) Title() string { return j.title }

// MatchTitle returns the title used for keyword matching: the English title when present.
func (j Job) MatchTitle() string {
	if j.details.TitleEN != "" {
		return j.details.TitleEN
	}
	return j.title
}

// Details returns the descriptive fields.
func (j Job) Details() Details { return j.details }

// Status returns the catalog status.
func (j Job) Status() Status { return j.status }

// IsActive reports whether the posting is visible in the catalog.
func (j Job) IsActive() bool { return j.status == StatusActive }

// PostedAt returns the posting date.
func (j Job) PostedAt() time.Time { return j.postedAt }
