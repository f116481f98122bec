// Package analysis decorates CV analyzers with validation and observability.
package analysis

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

// InstrumentedAnalyzer wraps an Analyzer with input validation and logging.
// Transport metrics (requests, duration, errors) are recorded by the provider client.
// This layer records keyword counts only.
type InstrumentedAnalyzer struct {
	inner    domain.Analyzer
	provider string
	logger   *zap.Logger
}

// NewInstrumented wraps an analyzer.
func NewInstrumented(inner domain.Analyzer, provider string, logger *zap.Logger) *InstrumentedAnalyzer {
	return &InstrumentedAnalyzer{inner: inner, provider: provider, logger: logger}
}

// Analyze validates the upload, delegates to the inner analyzer and records the keyword count.
func (a *InstrumentedAnalyzer) Analyze(ctx context.Context, cv domain.CV) (domain.Analysis, error) {
	if err := cv.Validate(); err != nil {
		return domain.Analysis{}, err
	}

	start := time.Now()
	res, err := a.inner.Analyze(ctx, cv)
	duration := time.Since(start)

	if err != nil {
		a.logger.Error("CV analysis failed",
			zap.String("provider", a.provider),
			zap.String("filename", cv.Filename),
			zap.Int("size", len(cv.Data)),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return domain.Analysis{}, fmt.Errorf("analyze: %w", err)
	}

	metrics.AnalyzerKeywords.WithLabelValues(a.provider).Observe(float64(len(res.Keywords)))
	a.logger.Info("CV analysis completed",
		zap.String("provider", a.provider),
		zap.String("filename", cv.Filename),
		zap.Duration("duration", duration),
		zap.Int("keywords", len(res.Keywords)),
	)
	return res, nil
}

// HealthCheck delegates to the inner analyzer when it supports health checks.
func (a *InstrumentedAnalyzer) HealthCheck(ctx context.Context) error {
	hc, ok := a.inner.(domain.HealthChecker)
	if !ok {
		return nil
	}
	if err := hc.HealthCheck(ctx); err != nil {
		return fmt.Errorf("%s: %w", a.provider, err)
	}
	return nil
}
