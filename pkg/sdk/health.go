package jobmatch

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
)

// HealthStatus represents the aggregated server health.
type HealthStatus struct {
	Status string            `json:"status"` // "ok", "degraded", "error"
	Checks map[string]string `json:"checks"` // component → "ok"/"error"
}

// Health fetches server health. A degraded server answers 503 with a body;
// that is reported as a status, not an error.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var hs HealthStatus
	err := c.do(ctx, request{op: "health", method: http.MethodGet, path: "/health"}, &hs)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusServiceUnavailable {
		if jsonErr := json.Unmarshal(apiErr.raw, &hs); jsonErr == nil && hs.Status != "" {
			return hs, nil
		}
		return HealthStatus{}, err
	}
	if err != nil {
		return HealthStatus{}, err
	}
	return hs, nil
}
