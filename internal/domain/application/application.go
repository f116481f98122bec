package application

import (
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain"
)

// NotSpecified fills optional snapshot fields of manual applications.
const NotSpecified = "Not specified"

// Snapshot describes the job an application refers to, as it looked when applying.
type Snapshot struct {
	Title    string
	Company  string
	Location string
	Salary   string
	JobType  string
}

// Application is one user's application to one job (immutable value object).
type Application struct {
	id          string
	userID      string
	jobID       string
	snapshot    Snapshot
	status      Status
	notes       string
	coverLetter string
	appliedAt   time.Time
	updatedAt   time.Time
}

// NewForJob creates an application to a catalog job. Status is always applied.
func NewForJob(id, userID, jobID string, snap Snapshot, notes, coverLetter string, now time.Time) (Application, error) {
	if err := validateOwner(id, userID); err != nil {
		return Application{}, err
	}
	if strings.TrimSpace(jobID) == "" {
		return Application{}, fmt.Errorf("%w: job id is required", domain.ErrInvalidApplication)
	}
	return Application{
		id:          id,
		userID:      userID,
		jobID:       jobID,
		snapshot:    snap,
		status:      StatusApplied,
		notes:       notes,
		coverLetter: coverLetter,
		appliedAt:   now,
		updatedAt:   now,
	}, nil
}

// NewManual creates an application to a job outside the catalog.
// Title and company are required; other snapshot fields default to NotSpecified.
func NewManual(id, userID string, snap Snapshot, notes string, now time.Time) (Application, error) {
	if err := validateOwner(id, userID); err != nil {
		return Application{}, err
	}
	snap.Title = strings.TrimSpace(snap.Title)
	snap.Company = strings.TrimSpace(snap.Company)
	if snap.Title == "" || snap.Company == "" {
		return Application{}, fmt.Errorf("%w: title and company are required", domain.ErrInvalidApplication)
	}
	snap.Location = orNotSpecified(snap.Location)
	snap.Salary = orNotSpecified(snap.Salary)
	snap.JobType = orNotSpecified(snap.JobType)

	return Application{
		id:        id,
		userID:    userID,
		snapshot:  snap,
		status:    StatusApplied,
		notes:     notes,
		appliedAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct restores an Application from storage without validation.
func Reconstruct(
	id, userID, jobID string, snap Snapshot, status Status,
	notes, coverLetter string, appliedAt, updatedAt time.Time,
) Application {
	return Application{
		id:          id,
		userID:      userID,
		jobID:       jobID,
		snapshot:    snap,
		status:      status,
		notes:       notes,
		coverLetter: coverLetter,
		appliedAt:   appliedAt,
		updatedAt:   updatedAt,
	}
}

func validateOwner(id, userID string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", domain.ErrInvalidApplication)
	}
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidApplication)
	}
	return nil
}

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return NotSpecified
	}
	return s
}

// Transition returns a copy moved to status to, if policy allows it.
func (a Application) Transition(to Status, policy Policy, now time.Time) (Application, error) {
	if !to.IsValid() {
		return Application{}, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, to)
	}
	if policy == nil {
		policy = PermissivePolicy{}
	}
	if err := policy.Allow(a.status, to); err != nil {
		return Application{}, err
	}
	a.status = to
	a.updatedAt = now
	return a, nil
}

// WithNotes returns a copy with replaced notes.
func (a Application) WithNotes(notes string, now time.Time) Application {
	a.notes = notes
	a.updatedAt = now
	return a
}

// WithCoverLetter returns a copy with a replaced cover letter.
func (a Application) WithCoverLetter(coverLetter string, now time.Time) Application {
	a.coverLetter = coverLetter
	a.updatedAt = now
	return a
}

// ID returns the application identifier.
func (a Application) ID() string { return a.id }

// UserID returns the owner.
func (a Application) UserID() string { return a.userID }

// JobID returns the catalog job id, empty for manual applications.
func (a Application) JobID() string { return a.jobID }

// IsManual reports whether the application is not linked to a catalog job.
func (a Application) IsManual() bool { return a.jobID == "" }

// Snapshot returns the job snapshot.
func (a Application) Snapshot() Snapshot { return a.snapshot }

// Status returns the lifecycle status.
func (a Application) Status() Status { return a.status }

// Notes returns free-text notes.
func (a Application) Notes() string { return a.notes }

// CoverLetter returns the cover letter.
func (a Application) CoverLetter() string { return a.coverLetter }

// AppliedAt returns the creation time.
func (a Application) AppliedAt() time.Time { return a.appliedAt }

// UpdatedAt returns the time of the last change.
func (a Application) UpdatedAt() time.Time { return a.updatedAt }
