package savedjob

import (
	"context"

	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	domsaved "github.com/kailas-cloud/jobmatch/internal/domain/savedjob"
)

// Repository defines the storage contract for saved jobs.
type Repository interface {
	Save(ctx context.Context, userID, jobID string) error
	Unsave(ctx context.Context, userID, jobID string) error
	List(ctx context.Context, userID string) (domsaved.Set, error)
	IsSaved(ctx context.Context, userID, jobID string) (bool, error)
}

// JobReader checks that a saved id refers to a catalog posting.
type JobReader interface {
	Get(ctx context.Context, id string) (job.Job, error)
}
