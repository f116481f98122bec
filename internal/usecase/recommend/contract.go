package recommend

import (
	"context"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	"github.com/kailas-cloud/jobmatch/internal/domain/keyword"
)

// Catalog reads job postings.
type Catalog interface {
	List(ctx context.Context, f job.Filter) ([]job.Job, error)
}

// KeywordStore reads and replaces a user's active CV keywords.
type KeywordStore interface {
	Active(ctx context.Context, userID string) (keyword.Set, error)
	SetActive(ctx context.Context, userID string, set keyword.Set) error
}

// Analyzer extracts keywords from an uploaded CV.
type Analyzer interface {
	Analyze(ctx context.Context, cv domain.CV) (domain.Analysis, error)
}
