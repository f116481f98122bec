// Package application stores job applications in Redis hashes with
// per-user indexes.
package application

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/jobmatch/internal/db"
	"github.com/kailas-cloud/jobmatch/internal/domain"
	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
)

// store is the consumer interface for applications (ISP).
//
//nolint:interfacebloat // application repo needs hash + set operations
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetNX(ctx context.Context, key, field, value string) (bool, error)
	HGet(ctx context.Context, key, field string) (string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	HDel(ctx context.Context, key string, fields ...string) error
	Del(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, members ...string) error
	SRem(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

// Repo implements usecase/application.Repository.
type Repo struct {
	store store
}

// New creates an application repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Create stores a new application.
// Catalog applications claim the (user, job) pair with HSETNX first;
// a claimed pair yields domain.ErrAlreadyApplied. Later failures roll back the claim.
func (r *Repo) Create(ctx context.Context, app domapp.Application) error {
	claimed := false
	if !app.IsManual() {
		ok, err := r.store.HSetNX(ctx, appliedKey(app.UserID()), app.JobID(), app.ID())
		if err != nil {
			return fmt.Errorf("hsetnx applied %s: %w", app.UserID(), err)
		}
		if !ok {
			return domain.ErrAlreadyApplied
		}
		claimed = true
	}

	if err := r.store.HSet(ctx, appKey(app.ID()), appToHash(app)); err != nil {
		return errors.Join(fmt.Errorf("hset application %s: %w", app.ID(), err), r.release(ctx, app, claimed))
	}

	if err := r.store.SAdd(ctx, userAppsKey(app.UserID()), app.ID()); err != nil {
		cleanupErr := r.store.Del(ctx, appKey(app.ID()))
		return errors.Join(fmt.Errorf("sadd application %s: %w", app.ID(), err), cleanupErr, r.release(ctx, app, claimed))
	}

	return nil
}

func (r *Repo) release(ctx context.Context, app domapp.Application, claimed bool) error {
	if !claimed {
		return nil
	}
	return r.store.HDel(ctx, appliedKey(app.UserID()), app.JobID())
}

// Get retrieves an application by id.
func (r *Repo) Get(ctx context.Context, id string) (domapp.Application, error) {
	m, err := r.store.HGetAll(ctx, appKey(id))
	if err != nil {
		return domapp.Application{}, fmt.Errorf("hgetall application %s: %w", id, err)
	}
	if len(m) == 0 {
		return domapp.Application{}, domain.ErrNotFound
	}
	return appFromHash(m)
}

// Update overwrites the stored application in a single HSET,
// so status and updated date change together.
func (r *Repo) Update(ctx context.Context, app domapp.Application) error {
	if err := r.store.HSet(ctx, appKey(app.ID()), appToHash(app)); err != nil {
		return fmt.Errorf("hset application %s: %w", app.ID(), err)
	}
	return nil
}

// Delete removes the application and its index entries.
func (r *Repo) Delete(ctx context.Context, app domapp.Application) error {
	if err := r.store.Del(ctx, appKey(app.ID())); err != nil {
		return fmt.Errorf("del application %s: %w", app.ID(), err)
	}
	if err := r.store.SRem(ctx, userAppsKey(app.UserID()), app.ID()); err != nil {
		return fmt.Errorf("srem application %s: %w", app.ID(), err)
	}
	if !app.IsManual() {
		if err := r.store.HDel(ctx, appliedKey(app.UserID()), app.JobID()); err != nil {
			return fmt.Errorf("hdel applied %s: %w", app.UserID(), err)
		}
	}
	return nil
}

// ListByUser returns the user's applications, most recent first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]domapp.Application, error) {
	ids, err := r.store.SMembers(ctx, userAppsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("smembers applications %s: %w", userID, err)
	}
	if len(ids) == 0 {
		return []domapp.Application{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = appKey(id)
	}
	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi applications: %w", err)
	}

	apps := make([]domapp.Application, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		app, err := appFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse application %s: %w", ids[i], err)
		}
		apps = append(apps, app)
	}

	sort.Slice(apps, func(i, j int) bool {
		if apps[i].AppliedAt().Equal(apps[j].AppliedAt()) {
			return apps[i].ID() < apps[j].ID()
		}
		return apps[i].AppliedAt().After(apps[j].AppliedAt())
	})

	return apps, nil
}

// ForJob returns the user's application to a catalog job.
func (r *Repo) ForJob(ctx context.Context, userID, jobID string) (domapp.Application, error) {
	id, err := r.store.HGet(ctx, appliedKey(userID), jobID)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domapp.Application{}, domain.ErrNotFound
		}
		return domapp.Application{}, fmt.Errorf("hget applied %s: %w", userID, err)
	}
	return r.Get(ctx, id)
}

// Redis key patterns: jobmatch:app:{id}, jobmatch:apps:{user}, jobmatch:applied:{user}

func appKey(id string) string {
	return fmt.Sprintf("%sapp:%s", domain.KeyPrefix, id)
}

func userAppsKey(userID string) string {
	return fmt.Sprintf("%sapps:%s", domain.KeyPrefix, userID)
}

func appliedKey(userID string) string {
	return fmt.Sprintf("%sapplied:%s", domain.KeyPrefix, userID)
}
