package jobmatch

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// AlertService reads the job-alert feed.
type AlertService struct {
	c *Client
}

// Recent returns the newest alerts first. limit <= 0 uses the server default.
func (s *AlertService) Recent(ctx context.Context, limit int) ([]Alert, error) {
	var q url.Values
	if limit > 0 {
		q = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var resp struct {
		Items []Alert `json:"items"`
	}
	if err := s.c.do(ctx, request{op: "alerts.recent", method: http.MethodGet, path: "/alerts", query: q}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}
