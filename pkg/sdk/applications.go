package jobmatch

import (
	"context"
	"net/http"
	"net/url"
)

// ApplicationService tracks the user's job applications.
type ApplicationService struct {
	c *Client
}

// List returns applications newest first, optionally filtered by status.
func (s *ApplicationService) List(ctx context.Context, status string) ([]Application, error) {
	var q url.Values
	if status != "" {
		q = url.Values{"status": {status}}
	}
	var resp struct {
		Items []Application `json:"items"`
	}
	if err := s.c.do(ctx, request{
		op: "applications.list", method: http.MethodGet, path: "/applications", query: q,
	}, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Board returns applications grouped into one column per status.
func (s *ApplicationService) Board(ctx context.Context) ([]BoardColumn, error) {
	var resp struct {
		Columns []BoardColumn `json:"columns"`
	}
	if err := s.c.do(ctx, request{
		op: "applications.board", method: http.MethodGet, path: "/applications/board",
	}, &resp); err != nil {
		return nil, err
	}
	return resp.Columns, nil
}

// Apply records an application to a catalog job. A second application to the
// same job fails with ErrAlreadyApplied.
func (s *ApplicationService) Apply(ctx context.Context, jobID, notes, coverLetter string) (Application, error) {
	body := map[string]string{"job_id": jobID, "notes": notes, "cover_letter": coverLetter}
	var app Application
	err := s.c.do(ctx, request{
		op: "applications.apply", method: http.MethodPost, path: "/applications", body: body,
	}, &app)
	return app, err
}

// ApplyManual records an application to a job outside the catalog.
func (s *ApplicationService) ApplyManual(ctx context.Context, in ManualApplication) (Application, error) {
	var app Application
	err := s.c.do(ctx, request{
		op: "applications.manual", method: http.MethodPost, path: "/applications/manual", body: in,
	}, &app)
	return app, err
}

// Get returns one application.
func (s *ApplicationService) Get(ctx context.Context, id string) (Application, error) {
	var app Application
	err := s.c.do(ctx, request{
		op: "applications.get", method: http.MethodGet, path: "/applications/" + escape(id),
	}, &app)
	return app, err
}

// Update changes status, notes or cover letter.
func (s *ApplicationService) Update(ctx context.Context, id string, u ApplicationUpdate) (Application, error) {
	var app Application
	err := s.c.do(ctx, request{
		op: "applications.update", method: http.MethodPatch, path: "/applications/" + escape(id), body: u,
	}, &app)
	return app, err
}

// Move sets the status. Servers running strict transitions may answer
// ErrIllegalTransition; the APIError carries From and To.
func (s *ApplicationService) Move(ctx context.Context, id, status string) (Application, error) {
	return s.Update(ctx, id, ApplicationUpdate{Status: &status})
}

// Delete removes an application.
func (s *ApplicationService) Delete(ctx context.Context, id string) error {
	return s.c.do(ctx, request{
		op: "applications.delete", method: http.MethodDelete, path: "/applications/" + escape(id),
	}, nil)
}

// Check returns the user's application to jobID, if any.
func (s *ApplicationService) Check(ctx context.Context, jobID string) (*Application, error) {
	var resp struct {
		Applied     bool         `json:"applied"`
		Application *Application `json:"application"`
	}
	if err := s.c.do(ctx, request{
		op: "applications.check", method: http.MethodGet, path: "/applications/check/" + escape(jobID),
	}, &resp); err != nil {
		return nil, err
	}
	if !resp.Applied {
		return nil, nil
	}
	return resp.Application, nil
}
