package jobmatch

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// JobService reads and writes the job catalog.
type JobService struct {
	c *Client
}

// ListOptions filters a catalog listing. Zero values use server defaults.
type ListOptions struct {
	Status  string
	PerPage int
}

// List returns catalog postings in catalog order.
func (s *JobService) List(ctx context.Context, opts ListOptions) ([]Job, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}

	var resp struct {
		Items []Job `json:"items"`
	}
	err := s.c.do(ctx, request{op: "jobs.list", method: http.MethodGet, path: "/jobs", query: q}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Get returns one posting.
func (s *JobService) Get(ctx context.Context, id string) (Job, error) {
	var j Job
	err := s.c.do(ctx, request{op: "jobs.get", method: http.MethodGet, path: "/jobs/" + escape(id)}, &j)
	return j, err
}

// Upsert creates or replaces a posting.
func (s *JobService) Upsert(ctx context.Context, id string, in JobInput) (Job, error) {
	var j Job
	err := s.c.do(ctx, request{
		op: "jobs.upsert", method: http.MethodPut, path: "/jobs/" + escape(id), body: in,
	}, &j)
	return j, err
}

// Delete removes a posting from the catalog.
func (s *JobService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, request{op: "jobs.delete", method: http.MethodDelete, path: "/jobs/" + escape(id)}, nil)
}
