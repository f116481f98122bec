package alert

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	domalert "github.com/kailas-cloud/jobmatch/internal/domain/alert"
	"github.com/kailas-cloud/jobmatch/internal/domain/match"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

// DefaultLookback is how far back the first run looks when no cursor is stored.
const DefaultLookback = 24 * time.Hour

// Options tunes alert generation.
type Options struct {
	// Threshold is the minimum match percentage. Zero selects match.DefaultThreshold.
	Threshold int
	// Lookback bounds the first scan. Zero selects DefaultLookback.
	Lookback time.Duration
}

// RunStats summarizes one alert run.
type RunStats struct {
	Jobs   int
	Users  int
	Alerts int
}

// Service matches newly posted jobs against every user's active keywords.
type Service struct {
	catalog   Catalog
	keywords  KeywordStore
	feed      Feed
	threshold int
	lookback  time.Duration
	logger    *zap.Logger
	now       func() time.Time
}

// New creates an alert service.
func New(catalog Catalog, keywords KeywordStore, feed Feed, opts Options, logger *zap.Logger) *Service {
	if opts.Threshold <= 0 {
		opts.Threshold = match.DefaultThreshold
	}
	if opts.Lookback <= 0 {
		opts.Lookback = DefaultLookback
	}
	return &Service{
		catalog:   catalog,
		keywords:  keywords,
		feed:      feed,
		threshold: opts.Threshold,
		lookback:  opts.Lookback,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run scans postings newer than the stored cursor, appends an alert for every
// (user, job) pair at or above the threshold, then advances the cursor to the
// newest posting seen. Per-user failures are logged and skipped.
func (s *Service) Run(ctx context.Context) (RunStats, error) {
	cursor, err := s.feed.Cursor(ctx)
	if err != nil {
		return RunStats{}, fmt.Errorf("read cursor: %w", err)
	}
	if cursor.IsZero() {
		cursor = s.now().Add(-s.lookback)
	}

	jobs, err := s.catalog.PostedSince(ctx, cursor)
	if err != nil {
		return RunStats{}, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}
	stats := RunStats{Jobs: len(jobs)}
	if len(jobs) == 0 {
		return stats, nil
	}

	users, err := s.keywords.Users(ctx)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", domain.ErrKeywordSourceUnavailable, err)
	}

	at := s.now()
	for _, userID := range users {
		set, err := s.keywords.Active(ctx, userID)
		if err != nil {
			if !errors.Is(err, domain.ErrNotFound) {
				s.logger.Warn("Skipping user alerts", zap.String("user_id", userID), zap.Error(err))
			}
			continue
		}
		if set.IsEmpty() {
			continue
		}
		stats.Users++

		results := match.Rank(jobs, set.Keywords(), s.threshold)
		if len(results) == 0 {
			continue
		}
		alerts := make([]domalert.Alert, len(results))
		for i, r := range results {
			alerts[i] = domalert.FromMatch(r, at)
		}
		if err := s.feed.Append(ctx, userID, alerts); err != nil {
			s.logger.Warn("Failed to append alerts", zap.String("user_id", userID), zap.Error(err))
			continue
		}
		stats.Alerts += len(alerts)
	}
	metrics.AlertsGeneratedTotal.Add(float64(stats.Alerts))

	newest := cursor
	for _, j := range jobs {
		if j.PostedAt().After(newest) {
			newest = j.PostedAt()
		}
	}
	if err := s.feed.SetCursor(ctx, newest); err != nil {
		return stats, fmt.Errorf("advance cursor: %w", err)
	}

	return stats, nil
}

// Recent returns the user's latest alerts, newest first.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]domalert.Alert, error) {
	alerts, err := s.feed.Recent(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recent alerts: %w", err)
	}
	return alerts, nil
}
