// Package savedjob stores each user's saved job ids as a Redis set.
package savedjob

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	domsaved "github.com/kailas-cloud/jobmatch/internal/domain/savedjob"
)

// store is the consumer interface for saved jobs (ISP).
type store interface {
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)
}

// Repo implements the saved-job store. Save and Unsave are idempotent.
type Repo struct {
	store store
}

// New creates a saved-job repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Save adds jobID to the user's saved set.
func (r *Repo) Save(ctx context.Context, userID, jobID string) error {
	if err := r.store.SAdd(ctx, savedKey(userID), jobID); err != nil {
		return fmt.Errorf("sadd saved %s: %w", userID, err)
	}
	return nil
}

// Unsave removes jobID from the user's saved set.
func (r *Repo) Unsave(ctx context.Context, userID, jobID string) error {
	if err := r.store.SRem(ctx, savedKey(userID), jobID); err != nil {
		return fmt.Errorf("srem saved %s: %w", userID, err)
	}
	return nil
}

// List returns the user's saved set.
func (r *Repo) List(ctx context.Context, userID string) (domsaved.Set, error) {
	ids, err := r.store.SMembers(ctx, savedKey(userID))
	if err != nil {
		return domsaved.Set{}, fmt.Errorf("smembers saved %s: %w", userID, err)
	}
	return domsaved.NewSet(ids...), nil
}

// IsSaved reports whether jobID is in the user's saved set.
func (r *Repo) IsSaved(ctx context.Context, userID, jobID string) (bool, error) {
	ok, err := r.store.SIsMember(ctx, savedKey(userID), jobID)
	if err != nil {
		return false, fmt.Errorf("sismember saved %s: %w", userID, err)
	}
	return ok, nil
}

func savedKey(userID string) string {
	return fmt.Sprintf("%ssaved:%s", domain.KeyPrefix, userID)
}
