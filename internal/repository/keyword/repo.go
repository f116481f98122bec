// Package keyword stores each user's active CV keywords as a JSON value.
package keyword

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/db"
	"github.com/kailas-cloud/jobmatch/internal/domain"
	domkw "github.com/kailas-cloud/jobmatch/internal/domain/keyword"
)

// store is the consumer interface for keyword sets (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SAdd(ctx context.Context, key string, members ...string) error
	SMembers(ctx context.Context, key string) ([]string, error)
}

type setRecord struct {
	CVID       string    `json:"cv_id"`
	Keywords   []string  `json:"keywords"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// Repo implements the active-CV keyword store.
type Repo struct {
	store store
}

// New creates a keyword repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Active returns the user's active keyword set.
// Returns domain.ErrNotFound when the user has no analyzed CV.
func (r *Repo) Active(ctx context.Context, userID string) (domkw.Set, error) {
	data, err := r.store.Get(ctx, keywordsKey(userID))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return domkw.Set{}, domain.ErrNotFound
		}
		return domkw.Set{}, fmt.Errorf("get keywords %s: %w", userID, err)
	}

	var rec setRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domkw.Set{}, fmt.Errorf("unmarshal keywords %s: %w", userID, err)
	}
	return domkw.NewSet(rec.CVID, rec.Keywords, rec.AnalyzedAt), nil
}

// SetActive replaces the user's active keyword set and registers the user for alerts.
func (r *Repo) SetActive(ctx context.Context, userID string, set domkw.Set) error {
	data, err := json.Marshal(setRecord{
		CVID:       set.CVID(),
		Keywords:   set.Keywords(),
		AnalyzedAt: set.AnalyzedAt(),
	})
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}
	if err := r.store.Set(ctx, keywordsKey(userID), data); err != nil {
		return fmt.Errorf("set keywords %s: %w", userID, err)
	}
	if err := r.store.SAdd(ctx, usersKey(), userID); err != nil {
		return fmt.Errorf("sadd keyword user %s: %w", userID, err)
	}
	return nil
}

// Users lists every user that has stored keywords.
func (r *Repo) Users(ctx context.Context) ([]string, error) {
	users, err := r.store.SMembers(ctx, usersKey())
	if err != nil {
		return nil, fmt.Errorf("smembers keyword users: %w", err)
	}
	return users, nil
}

// Redis key patterns: jobmatch:keywords:{user}, jobmatch:keyword_users

func keywordsKey(userID string) string {
	return fmt.Sprintf("%skeywords:%s", domain.KeyPrefix, userID)
}

func usersKey() string {
	return domain.KeyPrefix + "keyword_users"
}
