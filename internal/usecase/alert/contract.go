package alert

import (
	"context"
	"time"

	domalert "github.com/kailas-cloud/jobmatch/internal/domain/alert"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	"github.com/kailas-cloud/jobmatch/internal/domain/keyword"
)

// Catalog lists postings newer than a cursor.
type Catalog interface {
	PostedSince(ctx context.Context, t time.Time) ([]job.Job, error)
}

// KeywordStore enumerates users with an active CV and reads their keywords.
type KeywordStore interface {
	Users(ctx context.Context) ([]string, error)
	Active(ctx context.Context, userID string) (keyword.Set, error)
}

// Feed stores alerts and the scan cursor.
type Feed interface {
	Append(ctx context.Context, userID string, alerts []domalert.Alert) error
	Recent(ctx context.Context, userID string, limit int) ([]domalert.Alert, error)
	Cursor(ctx context.Context) (time.Time, error)
	SetCursor(ctx context.Context, t time.Time) error
}
