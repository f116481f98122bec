package catalog

import (
	"context"

	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// Repository defines the storage contract for job postings.
type Repository interface {
	Upsert(ctx context.Context, j job.Job) error
	Get(ctx context.Context, id string) (job.Job, error)
	List(ctx context.Context, f job.Filter) ([]job.Job, error)
	Delete(ctx context.Context, id string) error
}
