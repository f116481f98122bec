package savedjob

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	domsaved "github.com/kailas-cloud/jobmatch/internal/domain/savedjob"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

// Service is the server side of the saved-job toggle: idempotent save and unsave.
type Service struct {
	repo Repository
	jobs JobReader
}

// New creates a saved-job service.
func New(repo Repository, jobs JobReader) *Service {
	return &Service{repo: repo, jobs: jobs}
}

// Save marks a catalog job as saved. Saving twice is not an error.
func (s *Service) Save(ctx context.Context, userID, jobID string) error {
	if _, err := s.jobs.Get(ctx, jobID); err != nil {
		s.record(domsaved.ActionSave, err)
		return fmt.Errorf("get job %s: %w", jobID, err)
	}
	err := s.repo.Save(ctx, userID, jobID)
	s.record(domsaved.ActionSave, err)
	if err != nil {
		return fmt.Errorf("save job: %w", err)
	}
	return nil
}

// Unsave removes a job from the saved set. Unsaving a job that is not saved is not an error.
func (s *Service) Unsave(ctx context.Context, userID, jobID string) error {
	err := s.repo.Unsave(ctx, userID, jobID)
	s.record(domsaved.ActionUnsave, err)
	if err != nil {
		return fmt.Errorf("unsave job: %w", err)
	}
	return nil
}

// IDs returns the user's saved set.
func (s *Service) IDs(ctx context.Context, userID string) (domsaved.Set, error) {
	set, err := s.repo.List(ctx, userID)
	if err != nil {
		return domsaved.Set{}, fmt.Errorf("list saved jobs: %w", err)
	}
	return set, nil
}

// Jobs returns the saved postings that still exist in the catalog, in save order.
func (s *Service) Jobs(ctx context.Context, userID string) ([]job.Job, error) {
	set, err := s.IDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]job.Job, 0, set.Len())
	for _, id := range set.IDs() {
		j, err := s.jobs.Get(ctx, id)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get saved job %s: %w", id, err)
		}
		out = append(out, j)
	}
	return out, nil
}

// IsSaved reports whether the user saved jobID.
func (s *Service) IsSaved(ctx context.Context, userID, jobID string) (bool, error) {
	ok, err := s.repo.IsSaved(ctx, userID, jobID)
	if err != nil {
		return false, fmt.Errorf("check saved job: %w", err)
	}
	return ok, nil
}

func (s *Service) record(action domsaved.Action, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.SavedJobTogglesTotal.WithLabelValues(string(action), status).Inc()
}
