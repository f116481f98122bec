package catalog

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// MaxPageSize caps a single listing.
const MaxPageSize = 500

// Service reads and seeds the job catalog.
type Service struct {
	repo       Repository
	pageSize   int
	activeOnly bool
}

// New creates a catalog service. pageSize <= 0 selects job.DefaultPageSize.
func New(repo Repository, pageSize int, activeOnly bool) *Service {
	if pageSize <= 0 {
		pageSize = job.DefaultPageSize
	}
	return &Service{repo: repo, pageSize: min(pageSize, MaxPageSize), activeOnly: activeOnly}
}

// List returns postings newest first. An empty status falls back to the configured
// default (active only, unless disabled); limit is clamped to MaxPageSize.
func (s *Service) List(ctx context.Context, status job.Status, limit int) ([]job.Job, error) {
	if status == "" && s.activeOnly {
		status = job.StatusActive
	}
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("list jobs: unknown status %q: %w", status, domain.ErrInvalidJob)
	}
	if limit <= 0 {
		limit = s.pageSize
	}
	jobs, err := s.repo.List(ctx, job.Filter{Status: status, Limit: min(limit, MaxPageSize)})
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return jobs, nil
}

// Get returns one posting.
func (s *Service) Get(ctx context.Context, id string) (job.Job, error) {
	j, err := s.repo.Get(ctx, id)
	if err != nil {
		return job.Job{}, fmt.Errorf("get job %s: %w", id, err)
	}
	return j, nil
}

// Delete removes a posting permanently. Saved-job sets and applications
// keep their references; readers skip postings that are gone.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete job %s: %w", id, err)
	}
	return nil
}

// Upsert validates and stores a posting.
func (s *Service) Upsert(ctx context.Context, j job.Job) error {
	if err := s.repo.Upsert(ctx, j); err != nil {
		return fmt.Errorf("upsert job %s: %w", j.ID(), err)
	}
	return nil
}
