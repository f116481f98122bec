// Package alert keeps per-user alert feeds as capped Redis lists and the
// scheduler cursor as a plain value.
package alert

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/db"
	"github.com/kailas-cloud/jobmatch/internal/domain"
	domalert "github.com/kailas-cloud/jobmatch/internal/domain/alert"
)

// DefaultFeedLength caps each user's alert list.
const DefaultFeedLength = 200

// store is the consumer interface for alerts (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	RPushCapped(ctx context.Context, key string, maxLen int64, values ...string) error
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
}

type alertRecord struct {
	JobID     string    `json:"job_id"`
	Title     string    `json:"title"`
	Company   string    `json:"company,omitempty"`
	Keyword   string    `json:"keyword"`
	Percent   int       `json:"percent"`
	CreatedAt time.Time `json:"created_at"`
}

// Repo implements the alert feed store.
type Repo struct {
	store     store
	maxLength int64
}

// New creates an alert repository. maxLength <= 0 selects DefaultFeedLength.
func New(s store, maxLength int) *Repo {
	if maxLength <= 0 {
		maxLength = DefaultFeedLength
	}
	return &Repo{store: s, maxLength: int64(maxLength)}
}

// Append adds alerts to the end of the user's feed, dropping the oldest beyond the cap.
func (r *Repo) Append(ctx context.Context, userID string, alerts []domalert.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	values := make([]string, len(alerts))
	for i, a := range alerts {
		data, err := json.Marshal(alertRecord{
			JobID:     a.JobID(),
			Title:     a.Title(),
			Company:   a.Company(),
			Keyword:   a.Keyword(),
			Percent:   a.Percent(),
			CreatedAt: a.CreatedAt(),
		})
		if err != nil {
			return fmt.Errorf("marshal alert: %w", err)
		}
		values[i] = string(data)
	}
	if err := r.store.RPushCapped(ctx, feedKey(userID), r.maxLength, values...); err != nil {
		return fmt.Errorf("append alerts %s: %w", userID, err)
	}
	return nil
}

// Recent returns up to limit alerts, newest first.
func (r *Repo) Recent(ctx context.Context, userID string, limit int) ([]domalert.Alert, error) {
	if limit <= 0 || int64(limit) > r.maxLength {
		limit = int(r.maxLength)
	}
	values, err := r.store.LRange(ctx, feedKey(userID), -int64(limit), -1)
	if err != nil {
		return nil, fmt.Errorf("lrange alerts %s: %w", userID, err)
	}

	out := make([]domalert.Alert, 0, len(values))
	for i := len(values) - 1; i >= 0; i-- {
		var rec alertRecord
		if err := json.Unmarshal([]byte(values[i]), &rec); err != nil {
			return nil, fmt.Errorf("unmarshal alert: %w", err)
		}
		out = append(out, domalert.Reconstruct(rec.JobID, rec.Title, rec.Company, rec.Keyword, rec.Percent, rec.CreatedAt))
	}
	return out, nil
}

// Cursor returns the posted date of the last job scanned. Zero if never set.
func (r *Repo) Cursor(ctx context.Context) (time.Time, error) {
	data, err := r.store.Get(ctx, cursorKey())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("get alert cursor: %w", err)
	}
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse alert cursor: %w", err)
	}
	return time.UnixMilli(ms).UTC(), nil
}

// SetCursor stores the posted date of the last job scanned.
func (r *Repo) SetCursor(ctx context.Context, t time.Time) error {
	if err := r.store.Set(ctx, cursorKey(), []byte(strconv.FormatInt(t.UnixMilli(), 10))); err != nil {
		return fmt.Errorf("set alert cursor: %w", err)
	}
	return nil
}

// Redis key patterns: jobmatch:alerts:{user}, jobmatch:alerts_cursor

func feedKey(userID string) string {
	return fmt.Sprintf("%salerts:%s", domain.KeyPrefix, userID)
}

func cursorKey() string {
	return domain.KeyPrefix + "alerts_cursor"
}
