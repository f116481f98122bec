// Package catalog stores job postings in Redis (hashes + a posted-date index)
// or in PostgreSQL.
package catalog

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// store is the consumer interface for the Redis catalog (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, key string) error
	ZAdd(ctx context.Context, key, member string, score float64) error
	ZRem(ctx context.Context, key string, members ...string) error
	ZRevRange(ctx context.Context, key string, offset, limit int64) ([]string, error)
	ZRangeByScore(ctx context.Context, key, minScore, maxScore string) ([]string, error)
}

// Repo implements the job catalog on Redis.
type Repo struct {
	store store
}

// New creates a Redis catalog repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Upsert stores a posting and indexes it by posted date.
func (r *Repo) Upsert(ctx context.Context, j job.Job) error {
	if err := r.store.HSet(ctx, jobKey(j.ID()), jobToHash(j)); err != nil {
		return fmt.Errorf("hset job %s: %w", j.ID(), err)
	}
	if err := r.store.ZAdd(ctx, indexKey(), j.ID(), postedScore(j.PostedAt())); err != nil {
		return fmt.Errorf("zadd job %s: %w", j.ID(), err)
	}
	return nil
}

// Delete removes a posting and its index entry.
func (r *Repo) Delete(ctx context.Context, id string) error {
	ok, err := r.store.Exists(ctx, jobKey(id))
	if err != nil {
		return fmt.Errorf("exists job %s: %w", id, err)
	}
	if !ok {
		return domain.ErrNotFound
	}
	// Index first: a dangling hash is invisible to List, a dangling index entry is skipped by load.
	if err := r.store.ZRem(ctx, indexKey(), id); err != nil {
		return fmt.Errorf("zrem job %s: %w", id, err)
	}
	if err := r.store.Del(ctx, jobKey(id)); err != nil {
		return fmt.Errorf("del job %s: %w", id, err)
	}
	return nil
}

// Get retrieves a posting by id.
func (r *Repo) Get(ctx context.Context, id string) (job.Job, error) {
	m, err := r.store.HGetAll(ctx, jobKey(id))
	if err != nil {
		return job.Job{}, fmt.Errorf("hgetall job %s: %w", id, err)
	}
	if len(m) == 0 {
		return job.Job{}, domain.ErrNotFound
	}
	return jobFromHash(m)
}

// List returns up to f.PageSize() postings passing f, newest first.
// The posted-date index is read in pages until the limit is filled.
func (r *Repo) List(ctx context.Context, f job.Filter) ([]job.Job, error) {
	limit := f.PageSize()
	out := make([]job.Job, 0, limit)

	for offset := int64(0); len(out) < limit; offset += int64(limit) {
		ids, err := r.store.ZRevRange(ctx, indexKey(), offset, int64(limit))
		if err != nil {
			return nil, fmt.Errorf("zrevrange jobs: %w", err)
		}
		if len(ids) == 0 {
			break
		}

		jobs, err := r.load(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, j := range jobs {
			if f.Accepts(j) && len(out) < limit {
				out = append(out, j)
			}
		}

		if len(ids) < limit {
			break
		}
	}

	return out, nil
}

// PostedSince returns active postings posted strictly after t, oldest first.
func (r *Repo) PostedSince(ctx context.Context, t time.Time) ([]job.Job, error) {
	minScore := "(" + strconv.FormatInt(t.UnixMilli(), 10)
	ids, err := r.store.ZRangeByScore(ctx, indexKey(), minScore, "+inf")
	if err != nil {
		return nil, fmt.Errorf("zrangebyscore jobs: %w", err)
	}
	jobs, err := r.load(ctx, ids)
	if err != nil {
		return nil, err
	}
	active := jobs[:0]
	for _, j := range jobs {
		if j.IsActive() {
			active = append(active, j)
		}
	}
	return active, nil
}

// load fetches postings by id, skipping ids whose hash is gone.
func (r *Repo) load(ctx context.Context, ids []string) ([]job.Job, error) {
	if len(ids) == 0 {
		return []job.Job{}, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = jobKey(id)
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi jobs: %w", err)
	}

	jobs := make([]job.Job, 0, len(results))
	for i, m := range results {
		if len(m) == 0 {
			continue
		}
		j, err := jobFromHash(m)
		if err != nil {
			return nil, fmt.Errorf("parse job %s: %w", ids[i], err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// Redis key patterns: jobmatch:job:{id}, jobmatch:jobs

func jobKey(id string) string {
	return fmt.Sprintf("%sjob:%s", domain.KeyPrefix, id)
}

func indexKey() string {
	return domain.KeyPrefix + "jobs"
}
