package chi

import (
	"fmt"
	"net/http"

	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
	appuc "github.com/kailas-cloud/jobmatch/internal/usecase/application"
)

// ListApplications handles GET /applications?status=.
func (s *Server) ListApplications(w http.ResponseWriter, r *http.Request) {
	params, err := bindListApplications(r)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	apps, err := s.svc.Applications.List(r.Context(), UserFromContext(r.Context()), derefString(params.Status))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := applicationsToAPI(apps)
	writeJSON(w, http.StatusOK, ApplicationList{Items: items, Count: len(items)})
}

// GetBoard handles GET /applications/board.
func (s *Server) GetBoard(w http.ResponseWriter, r *http.Request) {
	cols, err := s.svc.Applications.Board(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	board := Board{Columns: make([]BoardColumn, len(cols))}
	for i, c := range cols {
		items := applicationsToAPI(c.Applications)
		board.Columns[i] = BoardColumn{Status: string(c.Status), Items: items, Count: len(items)}
	}
	writeJSON(w, http.StatusOK, board)
}

// CreateApplication handles POST /applications.
func (s *Server) CreateApplication(w http.ResponseWriter, r *http.Request) {
	var req CreateApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.JobID == "" {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed, "job_id is required")
		return
	}

	app, err := s.svc.Applications.Apply(r.Context(), UserFromContext(r.Context()), req.JobID, req.Notes, req.CoverLetter)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/applications/%s", app.ID()))
	writeJSON(w, http.StatusCreated, applicationToAPI(app))
}

// CreateManualApplication handles POST /applications/manual.
func (s *Server) CreateManualApplication(w http.ResponseWriter, r *http.Request) {
	var req ManualApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap := domapp.Snapshot{
		Title:    req.Title,
		Company:  req.Company,
		Location: req.Location,
		Salary:   req.Salary,
		JobType:  req.JobType,
	}
	app, err := s.svc.Applications.ApplyManual(r.Context(), UserFromContext(r.Context()), snap, req.Notes)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.Header().Set("Location", fmt.Sprintf("/applications/%s", app.ID()))
	writeJSON(w, http.StatusCreated, applicationToAPI(app))
}

// GetApplication handles GET /applications/{id}.
func (s *Server) GetApplication(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	app, err := s.svc.Applications.Get(r.Context(), UserFromContext(r.Context()), id)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, applicationToAPI(app))
}

// PatchApplication handles PATCH /applications/{id}.
func (s *Server) PatchApplication(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req PatchApplicationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	p := appuc.Patch{Status: req.Status, Notes: req.Notes, CoverLetter: req.CoverLetter}
	if p.IsEmpty() {
		writeError(w, http.StatusBadRequest, ErrorCodeValidationFailed,
			"at least one of status, notes, cover_letter is required")
		return
	}

	app, err := s.svc.Applications.Update(r.Context(), UserFromContext(r.Context()), id, p)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, applicationToAPI(app))
}

// DeleteApplication handles DELETE /applications/{id}.
func (s *Server) DeleteApplication(w http.ResponseWriter, r *http.Request) {
	var id string
	if err := bindPath(r, "id", &id); err != nil {
		s.handleDomainError(w, err)
		return
	}

	if err := s.svc.Applications.Delete(r.Context(), UserFromContext(r.Context()), id); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CheckApplication handles GET /applications/check/{jobID}.
func (s *Server) CheckApplication(w http.ResponseWriter, r *http.Request) {
	var jobID string
	if err := bindPath(r, "jobID", &jobID); err != nil {
		s.handleDomainError(w, err)
		return
	}

	app, ok, err := s.svc.Applications.ForJob(r.Context(), UserFromContext(r.Context()), jobID)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	resp := ApplicationCheck{Applied: ok}
	if ok {
		a := applicationToAPI(app)
		resp.Application = &a
	}
	writeJSON(w, http.StatusOK, resp)
}
