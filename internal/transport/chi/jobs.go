package chi

import (
	"net/http"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// ListJobs handles GET /jobs.
func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	params, err := bindListJobs(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	jobs, err := s.svc.Catalog.List(r.Context(), job.Status(derefString(params.Status)), derefInt(params.PerPage))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]Job, len(jobs))
	for i, j := range jobs {
		items[i] = jobToAPI(j)
	}
	writeJSON(w, http.StatusOK, JobList{Items: items, Count: len(items)})
}

// GetJob handles GET /jobs/{id}.
func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	j, err := s.svc.Catalog.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobToAPI(j))
}

// UpsertJob handles PUT /jobs/{id}.
func (s *Server) UpsertJob(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req UpsertJobRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	var postedAt time.Time
	if req.PostedAt != nil {
		postedAt = req.PostedAt.UTC()
	}
	j, err := job.New(id, req.Title, job.Details{
		TitleEN:      req.TitleEN,
		Company:      req.Company,
		Location:     req.Location,
		Category:     req.Category,
		JobType:      req.JobType,
		SalaryRange:  req.SalaryRange,
		Description:  req.Description,
		Requirements: req.Requirements,
	}, job.Status(req.Status), postedAt)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.svc.Catalog.Upsert(r.Context(), j); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, jobToAPI(j))
}

// DeleteJob handles DELETE /jobs/{id}.
func (s *Server) DeleteJob(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.svc.Catalog.Delete(r.Context(), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
