package jobmatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 200 * time.Second
	userHeader     = "X-User-ID"
)

// Client is the jobmatch SDK entry point. It acts on behalf of one user.
type Client struct {
	baseURL *url.URL
	userID  string
	apiKey  string
	http    *http.Client
	obs     *observer
}

// New creates a Client for userID against the server at baseURL.
func New(baseURL, userID string, opts ...Option) (*Client, error) {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	if baseURL == "" {
		return nil, errors.New("jobmatch: base URL required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("jobmatch: invalid base URL %q", baseURL)
	}
	if userID == "" {
		return nil, errors.New("jobmatch: user id required")
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: u,
		userID:  userID,
		apiKey:  cfg.apiKey,
		http:    hc,
		obs:     obs,
	}, nil
}

// UserID returns the user the client acts for.
func (c *Client) UserID() string { return c.userID }

// Jobs returns the job catalog service.
func (c *Client) Jobs() *JobService { return &JobService{c: c} }

// Recommendations returns the recommendation service.
func (c *Client) Recommendations() *RecommendationService {
	return &RecommendationService{c: c}
}

// SavedJobs returns the saved-job service.
func (c *Client) SavedJobs() *SavedJobService { return &SavedJobService{c: c} }

// Applications returns the application tracker service.
func (c *Client) Applications() *ApplicationService { return &ApplicationService{c: c} }

// Alerts returns the job-alert feed service.
func (c *Client) Alerts() *AlertService { return &AlertService{c: c} }

// request is one API call.
type request struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        any
	rawBody     io.Reader
	contentType string
}

// do sends req and decodes a JSON response into out (if non-nil).
func (c *Client) do(ctx context.Context, req request, out any) (err error) {
	start := time.Now()
	defer func() { c.obs.observe(req.op, start, err) }()

	u := *c.baseURL
	u.Path += req.path
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}

	body, contentType := req.rawBody, req.contentType
	if req.body != nil {
		buf, mErr := json.Marshal(req.body)
		if mErr != nil {
			return fmt.Errorf("jobmatch: encode %s: %w", req.op, mErr)
		}
		body, contentType = bytes.NewReader(buf), "application/json"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, u.String(), body)
	if err != nil {
		return fmt.Errorf("jobmatch: build %s: %w", req.op, err)
	}
	httpReq.Header.Set(userHeader, c.userID)
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("jobmatch: %s: %w", req.op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("jobmatch: decode %s: %w", req.op, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{StatusCode: resp.StatusCode, raw: raw}

	var body struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		From    string `json:"from"`
		To      string `json:"to"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}
	apiErr.Code = body.Code
	apiErr.Message = body.Message
	apiErr.From = body.From
	apiErr.To = body.To
	return apiErr
}

func escape(segment string) string { return url.PathEscape(segment) }
