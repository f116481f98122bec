package chi

import "net/http"

// ListSavedJobs handles GET /saved-jobs.
func (s *Server) ListSavedJobs(w http.ResponseWriter, r *http.Request) {
	userID := UserFromContext(r.Context())

	set, err := s.svc.SavedJobs.IDs(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	jobs, err := s.svc.SavedJobs.Jobs(r.Context(), userID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]Job, len(jobs))
	for i, j := range jobs {
		items[i] = jobToAPI(j)
	}
	writeJSON(w, http.StatusOK, SavedJobsResponse{JobIDs: set.IDs(), Jobs: items})
}

// GetSavedJob handles GET /saved-jobs/{jobID}.
func (s *Server) GetSavedJob(w http.ResponseWriter, r *http.Request) {
	var jobID string
	if err := bindPath(r, "jobID", &jobID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	saved, err := s.svc.SavedJobs.IsSaved(r.Context(), UserFromContext(r.Context()), jobID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SavedStatus{JobID: jobID, Saved: saved})
}

// SaveJob handles PUT /saved-jobs/{jobID}. Idempotent.
func (s *Server) SaveJob(w http.ResponseWriter, r *http.Request) {
	var jobID string
	if err := bindPath(r, "jobID", &jobID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.svc.SavedJobs.Save(r.Context(), UserFromContext(r.Context()), jobID); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SavedStatus{JobID: jobID, Saved: true})
}

// UnsaveJob handles DELETE /saved-jobs/{jobID}. Idempotent.
func (s *Server) UnsaveJob(w http.ResponseWriter, r *http.Request) {
	var jobID string
	if err := bindPath(r, "jobID", &jobID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.svc.SavedJobs.Unsave(r.Context(), UserFromContext(r.Context()), jobID); err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SavedStatus{JobID: jobID, Saved: false})
}
