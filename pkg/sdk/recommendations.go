package jobmatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"sync"

	"github.com/kailas-cloud/jobmatch/pkg/optimistic"
)

// ErrSuperseded is returned by RecommendationFeed when a newer refresh started
// before this one finished. The response was discarded.
var ErrSuperseded = errors.New("jobmatch: superseded by a newer request")

// RecommendationService ranks the catalog against the user's keywords.
type RecommendationService struct {
	c *Client
}

// Active ranks against the keywords of the user's active CV.
func (s *RecommendationService) Active(ctx context.Context) (Recommendations, error) {
	return s.active(ctx, 0)
}

// ForKeywords ranks against caller-supplied keywords.
func (s *RecommendationService) ForKeywords(ctx context.Context, keywords []string) (Recommendations, error) {
	return s.forKeywords(ctx, keywords, 0)
}

// AnalyzeCV uploads a CV, stores its keywords as the user's active CV and ranks against them.
func (s *RecommendationService) AnalyzeCV(ctx context.Context, filename string, cv io.Reader) (Recommendations, error) {
	return s.analyzeCV(ctx, filename, cv, 0)
}

func tokenQuery(token optimistic.Token) url.Values {
	if token == 0 {
		return nil
	}
	return url.Values{"token": {strconv.FormatUint(uint64(token), 10)}}
}

func (s *RecommendationService) active(ctx context.Context, token optimistic.Token) (Recommendations, error) {
	var out Recommendations
	err := s.c.do(ctx, request{
		op: "recommendations.active", method: http.MethodGet, path: "/recommendations", query: tokenQuery(token),
	}, &out)
	return out, err
}

func (s *RecommendationService) forKeywords(
	ctx context.Context, keywords []string, token optimistic.Token,
) (Recommendations, error) {
	body := struct {
		Source   string   `json:"source"`
		Keywords []string `json:"keywords"`
	}{Source: SourceFreshAnalysis, Keywords: keywords}

	var out Recommendations
	err := s.c.do(ctx, request{
		op: "recommendations.keywords", method: http.MethodPost, path: "/recommendations",
		query: tokenQuery(token), body: body,
	}, &out)
	return out, err
}

func (s *RecommendationService) analyzeCV(
	ctx context.Context, filename string, cv io.Reader, token optimistic.Token,
) (Recommendations, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Recommendations{}, fmt.Errorf("jobmatch: build upload: %w", err)
	}
	if _, err := io.Copy(part, cv); err != nil {
		return Recommendations{}, fmt.Errorf("jobmatch: read cv: %w", err)
	}
	if err := mw.Close(); err != nil {
		return Recommendations{}, fmt.Errorf("jobmatch: build upload: %w", err)
	}

	var out Recommendations
	err = s.c.do(ctx, request{
		op: "recommendations.analyze", method: http.MethodPost, path: "/cv/analyze",
		query: tokenQuery(token), rawBody: &buf, contentType: mw.FormDataContentType(),
	}, &out)
	return out, err
}

// RecommendationFeed keeps the latest recommendations for a view.
// Only the response of the most recently started refresh is ever shown.
type RecommendationFeed struct {
	svc      *RecommendationService
	seq      optimistic.Sequencer
	onUpdate func(Recommendations)

	mu      sync.Mutex
	current Recommendations
}

// Feed creates a RecommendationFeed. onUpdate, if set, is called with every accepted response.
func (s *RecommendationService) Feed(onUpdate func(Recommendations)) *RecommendationFeed {
	return &RecommendationFeed{svc: s, onUpdate: onUpdate}
}

// Current returns the last accepted recommendations.
func (f *RecommendationFeed) Current() Recommendations {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Refresh reloads from the active CV.
func (f *RecommendationFeed) Refresh(ctx context.Context) (Recommendations, error) {
	return f.fetch(func(t optimistic.Token) (Recommendations, error) {
		return f.svc.active(ctx, t)
	})
}

// RefreshWithKeywords reloads from explicit keywords.
func (f *RecommendationFeed) RefreshWithKeywords(ctx context.Context, keywords []string) (Recommendations, error) {
	return f.fetch(func(t optimistic.Token) (Recommendations, error) {
		return f.svc.forKeywords(ctx, keywords, t)
	})
}

// RefreshFromCV uploads a CV and reloads from its keywords.
func (f *RecommendationFeed) RefreshFromCV(ctx context.Context, filename string, cv io.Reader) (Recommendations, error) {
	return f.fetch(func(t optimistic.Token) (Recommendations, error) {
		return f.svc.analyzeCV(ctx, filename, cv, t)
	})
}

func (f *RecommendationFeed) fetch(call func(optimistic.Token) (Recommendations, error)) (Recommendations, error) {
	token := f.seq.Next()
	recs, err := call(token)

	f.mu.Lock()
	if !f.seq.IsLatest(token) {
		f.mu.Unlock()
		return Recommendations{}, ErrSuperseded
	}
	if err != nil {
		f.mu.Unlock()
		return Recommendations{}, err
	}
	if recs.Token != nil && uint64(*recs.Token) != uint64(token) {
		f.mu.Unlock()
		return Recommendations{}, fmt.Errorf("jobmatch: response token %d does not match request %d", *recs.Token, token)
	}
	f.current = recs
	f.mu.Unlock()

	if f.onUpdate != nil {
		f.onUpdate(recs)
	}
	return recs, nil
}
