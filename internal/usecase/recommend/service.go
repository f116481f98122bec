package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	"github.com/kailas-cloud/jobmatch/internal/domain/keyword"
	"github.com/kailas-cloud/jobmatch/internal/domain/match"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

// Source names where the keywords of a recommendation came from.
type Source string

const (
	// SourceActiveCV uses the keywords stored for the user's active CV.
	SourceActiveCV Source = "active-cv-keywords"
	// SourceFreshAnalysis uses keywords returned by a CV analysis just performed.
	SourceFreshAnalysis Source = "fresh-analysis"
)

// IsValid checks if the source is one of the supported values.
func (s Source) IsValid() bool {
	return s == SourceActiveCV || s == SourceFreshAnalysis
}

// Status tells a ranked outcome apart from one with nothing to rank on.
type Status string

const (
	// Ranked means at least one keyword was available. Results may still be empty.
	Ranked Status = "ranked"
	// NoSignal means there were no keywords (no CV, or the analyzer found none).
	NoSignal Status = "no_signal"
)

// Request asks for recommendations from an explicit keyword list.
type Request struct {
	Source   Source
	Keywords []string
}

// Outcome is a successful recommendation run. Failures are returned as errors.
type Outcome struct {
	Status   Status
	Source   Source
	Keywords []string
	Results  []match.Result
}

// Options tunes the pipeline.
type Options struct {
	// Threshold is the minimum best-match percentage. Zero selects match.DefaultThreshold.
	Threshold int
	// PageSize bounds the catalog fetch. Zero selects job.DefaultPageSize.
	PageSize int
}

// Service runs the recommendation pipeline: keywords in, ranked catalog out.
type Service struct {
	catalog   Catalog
	keywords  KeywordStore
	analyzer  Analyzer
	threshold int
	pageSize  int
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a recommendation service. analyzer may be nil when CV upload is disabled.
func New(catalog Catalog, keywords KeywordStore, analyzer Analyzer, opts Options, logger *zap.Logger) *Service {
	if opts.Threshold <= 0 {
		opts.Threshold = match.DefaultThreshold
	}
	if opts.PageSize <= 0 {
		opts.PageSize = job.DefaultPageSize
	}
	return &Service{
		catalog:   catalog,
		keywords:  keywords,
		analyzer:  analyzer,
		threshold: opts.Threshold,
		pageSize:  opts.PageSize,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Recommend ranks the active catalog against req.Keywords.
// The keyword slice is copied, never modified or stored.
func (s *Service) Recommend(ctx context.Context, req Request) (Outcome, error) {
	keywords := nonBlank(req.Keywords)
	if len(keywords) == 0 {
		s.recordOutcome(req.Source, NoSignal)
		return Outcome{Status: NoSignal, Source: req.Source, Keywords: []string{}, Results: []match.Result{}}, nil
	}

	jobs, err := s.catalog.List(ctx, job.ActiveOnly(s.pageSize))
	if err != nil {
		s.recordOutcome(req.Source, "error")
		return Outcome{}, fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	start := time.Now()
	results := match.Rank(jobs, keywords, s.threshold)
	metrics.RankingDuration.WithLabelValues(string(req.Source)).Observe(time.Since(start).Seconds())
	metrics.CatalogSize.Observe(float64(len(jobs)))
	metrics.MatchedJobs.WithLabelValues(string(req.Source)).Observe(float64(len(results)))
	s.recordOutcome(req.Source, Ranked)

	s.logger.Debug("Ranked catalog",
		zap.String("source", string(req.Source)),
		zap.Int("keywords", len(keywords)),
		zap.Int("catalog_jobs", len(jobs)),
		zap.Int("matched_jobs", len(results)),
		zap.Int("threshold", s.threshold),
	)

	return Outcome{Status: Ranked, Source: req.Source, Keywords: keywords, Results: results}, nil
}

// FromActiveCV recommends jobs for the keywords of the user's active CV.
// A user without an analyzed CV gets a NoSignal outcome.
func (s *Service) FromActiveCV(ctx context.Context, userID string) (Outcome, error) {
	set, err := s.keywords.Active(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.Recommend(ctx, Request{Source: SourceActiveCV})
		}
		s.recordOutcome(SourceActiveCV, "error")
		return Outcome{}, fmt.Errorf("%w: %w", domain.ErrKeywordSourceUnavailable, err)
	}
	return s.Recommend(ctx, Request{Source: SourceActiveCV, Keywords: set.Keywords()})
}

// FromUpload analyzes cv, stores the extracted keywords as the user's
// active set, then recommends jobs for them. The analyzer is called once.
func (s *Service) FromUpload(ctx context.Context, userID string, cv domain.CV) (Outcome, error) {
	if err := cv.Validate(); err != nil {
		return Outcome{}, err
	}
	if s.analyzer == nil {
		s.recordOutcome(SourceFreshAnalysis, "error")
		return Outcome{}, fmt.Errorf("%w: %w", domain.ErrKeywordSourceUnavailable, domain.ErrAnalyzerUnavailable)
	}

	analysis, err := s.analyzer.Analyze(ctx, cv)
	if err != nil {
		s.recordOutcome(SourceFreshAnalysis, "error")
		return Outcome{}, fmt.Errorf("%w: %w", domain.ErrKeywordSourceUnavailable, err)
	}

	cvID := analysis.CVID
	if cvID == "" {
		cvID = uuid.NewString()
	}
	set := keyword.NewSet(cvID, analysis.Keywords, s.now())
	if err := s.keywords.SetActive(ctx, userID, set); err != nil {
		s.logger.Warn("Failed to store CV keywords",
			zap.String("user_id", userID),
			zap.String("cv_id", cvID),
			zap.Error(err),
		)
	}

	return s.Recommend(ctx, Request{Source: SourceFreshAnalysis, Keywords: set.Keywords()})
}

func (s *Service) recordOutcome(source Source, outcome Status) {
	metrics.RecommendationOutcomesTotal.WithLabelValues(string(source), string(outcome)).Inc()
}

func nonBlank(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if strings.TrimSpace(k) != "" {
			out = append(out, k)
		}
	}
	return out
}
