package chi

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// ListJobsParams are the query parameters of GET /jobs.
type ListJobsParams struct {
	PerPage *int
	Status  *string
}

// RecommendParams are the query parameters of the recommendation endpoints.
type RecommendParams struct {
	// Token is echoed back so clients can drop responses to superseded requests.
	Token *int64
}

// ListApplicationsParams are the query parameters of GET /applications.
type ListApplicationsParams struct {
	Status *string
}

// ListAlertsParams are the query parameters of GET /alerts.
type ListAlertsParams struct {
	Limit *int
}

// paramError marks a malformed path or query parameter.
type paramError struct {
	name string
	err  error
}

func (e *paramError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %v", e.name, e.err)
}

func (e *paramError) Unwrap() error { return e.err }

func bindPath(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return &paramError{name: name, err: err}
	}
	return nil
}

func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &paramError{name: name, err: err}
	}
	return nil
}

func bindListJobs(r *http.Request) (ListJobsParams, error) {
	var p ListJobsParams
	if err := bindQuery(r, "per_page", &p.PerPage); err != nil {
		return p, err
	}
	if err := bindQuery(r, "status", &p.Status); err != nil {
		return p, err
	}
	if p.PerPage != nil && *p.PerPage < 1 {
		return p, &paramError{name: "per_page", err: fmt.Errorf("must be positive")}
	}
	return p, nil
}

func bindRecommend(r *http.Request) (RecommendParams, error) {
	var p RecommendParams
	if err := bindQuery(r, "token", &p.Token); err != nil {
		return p, err
	}
	if p.Token != nil && *p.Token < 0 {
		return p, &paramError{name: "token", err: fmt.Errorf("must not be negative")}
	}
	return p, nil
}

func bindListApplications(r *http.Request) (ListApplicationsParams, error) {
	var p ListApplicationsParams
	err := bindQuery(r, "status", &p.Status)
	return p, err
}

func bindListAlerts(r *http.Request) (ListAlertsParams, error) {
	var p ListAlertsParams
	if err := bindQuery(r, "limit", &p.Limit); err != nil {
		return p, err
	}
	if p.Limit != nil && *p.Limit < 1 {
		return p, &paramError{name: "limit", err: fmt.Errorf("must be positive")}
	}
	return p, nil
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
