package analysis

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

func TestMain(m *testing.M) {
	metrics.RegisterAnalyzerMetrics()
	os.Exit(m.Run())
}

// --- Mocks ---

type mockAnalyzer struct {
	result domain.Analysis
	err    error
	calls  int
}

func (m *mockAnalyzer) Analyze(_ context.Context, _ domain.CV) (domain.Analysis, error) {
	m.calls++
	return m.result, m.err
}

type checkingAnalyzer struct {
	mockAnalyzer
	healthErr error
}

func (c *checkingAnalyzer) HealthCheck(_ context.Context) error { return c.healthErr }

// --- Tests ---

var pdf = domain.CV{Filename: "cv.pdf", ContentType: "application/pdf", Data: []byte("%PDF")}

func TestInstrumented_Success(t *testing.T) {
	inner := &mockAnalyzer{result: domain.Analysis{CVID: "cv-1", Keywords: []string{"Go Developer", "SRE"}}}
	a := NewInstrumented(inner, "test", zap.NewNop())

	before := testutil.CollectAndCount(metrics.AnalyzerKeywords)
	res, err := a.Analyze(context.Background(), pdf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CVID != "cv-1" || len(res.Keywords) != 2 {
		t.Errorf("unexpected result %+v", res)
	}
	if after := testutil.CollectAndCount(metrics.AnalyzerKeywords); after < before || after == 0 {
		t.Errorf("expected keyword histogram to be populated, got %d series", after)
	}
}

func TestInstrumented_InvalidCVSkipsProvider(t *testing.T) {
	inner := &mockAnalyzer{}
	a := NewInstrumented(inner, "test", zap.NewNop())

	_, err := a.Analyze(context.Background(), domain.CV{Filename: "cv.exe", Data: []byte("MZ")})
	if !errors.Is(err, domain.ErrInvalidCV) {
		t.Fatalf("expected ErrInvalidCV, got %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("provider must not be called for invalid uploads, calls = %d", inner.calls)
	}
}

func TestInstrumented_InnerError(t *testing.T) {
	inner := &mockAnalyzer{err: domain.ErrAnalyzerUnavailable}
	a := NewInstrumented(inner, "test", zap.NewNop())

	_, err := a.Analyze(context.Background(), pdf)
	if !errors.Is(err, domain.ErrAnalyzerUnavailable) {
		t.Fatalf("expected ErrAnalyzerUnavailable, got %v", err)
	}
}

func TestInstrumented_HealthCheck(t *testing.T) {
	plain := NewInstrumented(&mockAnalyzer{}, "test", zap.NewNop())
	if err := plain.HealthCheck(context.Background()); err != nil {
		t.Errorf("analyzer without health check should report healthy, got %v", err)
	}

	failing := NewInstrumented(&checkingAnalyzer{healthErr: errors.New("down")}, "test", zap.NewNop())
	if err := failing.HealthCheck(context.Background()); err == nil {
		t.Error("expected health error to propagate")
	}
}
