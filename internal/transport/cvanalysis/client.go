// Package cvanalysis is a client for the ML CV-analysis service. The service takes
// a multipart CV upload and answers with suggested job titles.
package cvanalysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

// Provider is the metrics label for this analyzer.
const Provider = "ml_service"

// DefaultTimeout covers slow OCR on scanned PDFs.
const DefaultTimeout = 180 * time.Second

const maxErrorBody = 4 << 10

// Config holds the ML service client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// RateLimit caps requests per second. Zero disables limiting.
	RateLimit float64
	RateBurst int
	Logger    *zap.Logger
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Client implements domain.Analyzer against the ML service.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// Compile-time checks.
var (
	_ domain.Analyzer      = (*Client)(nil)
	_ domain.HealthChecker = (*Client)(nil)
)

// New creates an ML service client.
func New(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		burst := max(cfg.RateBurst, 1)
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		limiter: limiter,
		logger:  cfg.Logger,
	}
}

type uploadResponse struct {
	CVID            string           `json:"cv_id"`
	Recommendations []recommendation `json:"recommendations"`
}

type recommendation struct {
	JobTitle string `json:"job_title"`
}

// Analyze uploads the CV and returns the suggested job titles in service order.
// A response without recommendations yields zero keywords. Requests are not retried.
func (c *Client) Analyze(ctx context.Context, cv domain.CV) (domain.Analysis, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			metrics.AnalyzerErrorsTotal.WithLabelValues(Provider, "rate_limited").Inc()
			return domain.Analysis{}, fmt.Errorf("%w: %w", domain.ErrRateLimited, err)
		}
	}

	body, contentType, err := encodeUpload(cv)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("encode upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", body)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)
	if err != nil {
		c.fail("transport")
		return domain.Analysis{}, fmt.Errorf("upload %s: %w: %w", cv.Filename, domain.ErrAnalyzerUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		wrap := domain.ErrAnalyzerUnavailable
		if resp.StatusCode == http.StatusTooManyRequests {
			c.fail("rate_limited")
			wrap = errors.Join(domain.ErrAnalyzerUnavailable, domain.ErrRateLimited)
		} else {
			c.fail("http_status")
		}
		return domain.Analysis{}, fmt.Errorf("ml service returned %d: %s: %w",
			resp.StatusCode, strings.TrimSpace(string(detail)), wrap)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.fail("decode")
		return domain.Analysis{}, fmt.Errorf("decode response: %w: %w", domain.ErrAnalyzerUnavailable, err)
	}

	keywords := make([]string, 0, len(parsed.Recommendations))
	for _, r := range parsed.Recommendations {
		keywords = append(keywords, r.JobTitle)
	}

	metrics.AnalyzerRequestsTotal.WithLabelValues(Provider, "success").Inc()
	metrics.AnalyzerRequestDuration.WithLabelValues(Provider).Observe(duration.Seconds())
	c.logger.Debug("cv analyzed",
		zap.String("filename", cv.Filename),
		zap.Int("keywords", len(keywords)),
		zap.Duration("duration", duration),
	)

	return domain.Analysis{CVID: parsed.CVID, Keywords: keywords}, nil
}

// HealthCheck probes the service root.
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("ml service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("ml service returned %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) fail(errType string) {
	metrics.AnalyzerRequestsTotal.WithLabelValues(Provider, "error").Inc()
	metrics.AnalyzerErrorsTotal.WithLabelValues(Provider, errType).Inc()
}

func encodeUpload(cv domain.CV) (io.Reader, string, error) {
	if len(cv.Data) == 0 {
		return nil, "", errors.New("empty file")
	}
	filename := cv.Filename
	if filename == "" {
		filename = "resume.pdf"
	}
	contentType := cv.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(cv.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
