package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

// Provider is the metrics label for this analyzer.
const Provider = "openai"

// DefaultMaxKeywords bounds the titles requested from the model.
const DefaultMaxKeywords = 5

// maxCVRunes keeps prompts within model context.
const maxCVRunes = 12000

const systemPrompt = `You read CVs and suggest job titles the candidate fits.
Answer with JSON only: {"recommendations":[{"job_title":"..."}]}.
Use short English job titles, best fit first, at most %d entries.`

// Analyzer suggests job titles for a plain-text CV through an OpenAI-compatible chat API.
type Analyzer struct {
	client      *openai.Client
	model       string
	maxKeywords int
	logger      *zap.Logger
}

// Config holds the LLM provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxKeywords int
	Logger      *zap.Logger
}

// Compile-time checks.
var (
	_ domain.Analyzer      = (*Analyzer)(nil)
	_ domain.HealthChecker = (*Analyzer)(nil)
)

// NewAnalyzer creates an OpenAI-compatible analyzer.
func NewAnalyzer(cfg *Config) *Analyzer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	maxKeywords := cfg.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		maxKeywords: maxKeywords,
		logger:      logger,
	}
}

type suggestions struct {
	Recommendations []struct {
		JobTitle string `json:"job_title"`
	} `json:"recommendations"`
}

// Analyze implements domain.Analyzer. Only text CVs are accepted; binary
// documents need the ML service, which does its own extraction.
func (a *Analyzer) Analyze(ctx context.Context, cv domain.CV) (domain.Analysis, error) {
	text, err := cvText(cv)
	if err != nil {
		metrics.AnalyzerErrorsTotal.WithLabelValues(Provider, "unsupported_input").Inc()
		return domain.Analysis{}, err
	}

	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: fmt.Sprintf(systemPrompt, a.maxKeywords)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0,
	}

	start := time.Now()
	resp, err := a.client.CreateChatCompletion(ctx, req)
	duration := time.Since(start)

	if err != nil {
		metrics.AnalyzerRequestsTotal.WithLabelValues(Provider, "error").Inc()
		metrics.AnalyzerErrorsTotal.WithLabelValues(Provider, "api_error").Inc()
		return domain.Analysis{}, parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		metrics.AnalyzerRequestsTotal.WithLabelValues(Provider, "error").Inc()
		metrics.AnalyzerErrorsTotal.WithLabelValues(Provider, "empty_response").Inc()
		return domain.Analysis{}, fmt.Errorf("empty completion: %w", domain.ErrAnalyzerUnavailable)
	}

	metrics.AnalyzerRequestsTotal.WithLabelValues(Provider, "success").Inc()
	metrics.AnalyzerRequestDuration.WithLabelValues(Provider).Observe(duration.Seconds())

	keywords := parseSuggestions(resp.Choices[0].Message.Content, a.maxKeywords)
	a.logger.Debug("cv analyzed",
		zap.String("model", a.model),
		zap.Int("keywords", len(keywords)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)
	return domain.Analysis{Keywords: keywords}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	if _, err := a.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseSuggestions reads the model answer. Anything unparsable counts as no suggestions.
func parseSuggestions(content string, limit int) []string {
	var s suggestions
	if err := json.Unmarshal([]byte(content), &s); err != nil {
		return []string{}
	}
	out := make([]string, 0, min(len(s.Recommendations), limit))
	for _, r := range s.Recommendations {
		if len(out) == limit {
			break
		}
		if title := strings.TrimSpace(r.JobTitle); title != "" {
			out = append(out, title)
		}
	}
	return out
}

func cvText(cv domain.CV) (string, error) {
	if len(cv.Data) == 0 {
		return "", fmt.Errorf("empty file: %w", domain.ErrAnalyzerUnavailable)
	}
	ct := strings.ToLower(cv.ContentType)
	if ct != "" && !strings.HasPrefix(ct, "text/") {
		return "", fmt.Errorf("content type %q not supported by %s analyzer: %w",
			cv.ContentType, Provider, domain.ErrAnalyzerUnavailable)
	}
	if !utf8.Valid(cv.Data) {
		return "", fmt.Errorf("cv is not valid UTF-8 text: %w", domain.ErrAnalyzerUnavailable)
	}
	text := string(cv.Data)
	if utf8.RuneCountInString(text) > maxCVRunes {
		text = string([]rune(text)[:maxCVRunes])
	}
	return text, nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with domain.ErrAnalyzerUnavailable for correct 502 mapping.
func parseAPIError(err error) error {
	wrap := domain.ErrAnalyzerUnavailable

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		if reqErr.HTTPStatusCode == 429 {
			wrap = errors.Join(domain.ErrAnalyzerUnavailable, domain.ErrRateLimited)
		}
		if detail := extractDetail(reqErr.Body); detail != "" {
			return fmt.Errorf("analyzer API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("analyzer API error %d: %s: %w", reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == 429 {
			wrap = errors.Join(domain.ErrAnalyzerUnavailable, domain.ErrRateLimited)
		}
		return fmt.Errorf("analyzer API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("analyzer request failed: %w: %w", wrap, err)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
