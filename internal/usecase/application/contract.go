package application

import (
	"context"

	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// Repository defines the storage contract for applications.
type Repository interface {
	Create(ctx context.Context, app domapp.Application) error
	Get(ctx context.Context, id string) (domapp.Application, error)
	Update(ctx context.Context, app domapp.Application) error
	Delete(ctx context.Context, app domapp.Application) error
	ListByUser(ctx context.Context, userID string) ([]domapp.Application, error)
	ForJob(ctx context.Context, userID, jobID string) (domapp.Application, error)
}

// JobReader reads catalog postings to snapshot them on apply.
type JobReader interface {
	Get(ctx context.Context, id string) (job.Job, error)
}

// EventPublisher announces status changes. Publishing is best effort.
type EventPublisher interface {
	StatusChanged(ctx context.Context, app domapp.Application, from domapp.Status) error
}
