package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	domalert "github.com/kailas-cloud/jobmatch/internal/domain/alert"
	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	domsaved "github.com/kailas-cloud/jobmatch/internal/domain/savedjob"
	appuc "github.com/kailas-cloud/jobmatch/internal/usecase/application"
	healthuc "github.com/kailas-cloud/jobmatch/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/jobmatch/internal/usecase/recommend"
)

// maxJSONBody bounds JSON request bodies.
const maxJSONBody = 1 << 20

// Catalog serves job postings.
type Catalog interface {
	List(ctx context.Context, status job.Status, limit int) ([]job.Job, error)
	Get(ctx context.Context, id string) (job.Job, error)
	Upsert(ctx context.Context, j job.Job) error
	Delete(ctx context.Context, id string) error
}

// Recommender runs the recommendation pipeline.
type Recommender interface {
	Recommend(ctx context.Context, req recommenduc.Request) (recommenduc.Outcome, error)
	FromActiveCV(ctx context.Context, userID string) (recommenduc.Outcome, error)
	FromUpload(ctx context.Context, userID string, cv domain.CV) (recommenduc.Outcome, error)
}

// SavedJobs is the server side of the saved-job toggle.
type SavedJobs interface {
	Save(ctx context.Context, userID, jobID string) error
	Unsave(ctx context.Context, userID, jobID string) error
	IDs(ctx context.Context, userID string) (domsaved.Set, error)
	Jobs(ctx context.Context, userID string) ([]job.Job, error)
	IsSaved(ctx context.Context, userID, jobID string) (bool, error)
}

// Applications manages the application lifecycle.
type Applications interface {
	Apply(ctx context.Context, userID, jobID, notes, coverLetter string) (domapp.Application, error)
	ApplyManual(ctx context.Context, userID string, snap domapp.Snapshot, notes string) (domapp.Application, error)
	Get(ctx context.Context, userID, id string) (domapp.Application, error)
	List(ctx context.Context, userID, status string) ([]domapp.Application, error)
	Board(ctx context.Context, userID string) ([]domapp.Column, error)
	Update(ctx context.Context, userID, id string, p appuc.Patch) (domapp.Application, error)
	Delete(ctx context.Context, userID, id string) error
	ForJob(ctx context.Context, userID, jobID string) (domapp.Application, bool, error)
}

// Alerts reads the job-alert feed.
type Alerts interface {
	Recent(ctx context.Context, userID string, limit int) ([]domalert.Alert, error)
}

// Health reports component health.
type Health interface {
	Check(ctx context.Context) healthuc.Report
}

// Services bundles the use cases served over HTTP. Alerts may be nil.
type Services struct {
	Catalog      Catalog
	Recommend    Recommender
	SavedJobs    SavedJobs
	Applications Applications
	Alerts       Alerts
	Health       Health
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server is the HTTP API.
type Server struct {
	svc           Services
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	s := &Server{svc: svc, logger: logger}
	s.errorHandlers = []errorHandler{
		paramErrorHandler,
		transitionErrorHandler,
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrAlreadyApplied, http.StatusConflict, ErrorCodeAlreadyApplied),
		sentinelHandler(domain.ErrInvalidStatus, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidApplication, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidJob, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrInvalidCV, http.StatusBadRequest, ErrorCodeValidationFailed),
		sentinelHandler(domain.ErrRateLimited, http.StatusTooManyRequests, ErrorCodeRateLimited),
		sentinelHandler(domain.ErrAnalyzerUnavailable, http.StatusBadGateway, ErrorCodeAnalyzerUnavailable),
		sentinelHandler(domain.ErrKeywordSourceUnavailable,
			http.StatusServiceUnavailable, ErrorCodeKeywordSourceUnavailable),
		sentinelHandler(domain.ErrCatalogUnavailable, http.StatusServiceUnavailable, ErrorCodeCatalogUnavailable),
	}
	return s
}

// RegisterRoutes mounts every API route on r.
func (s *Server) RegisterRoutes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", s.ListJobs)
		r.Get("/{id}", s.GetJob)
		r.Put("/{id}", s.UpsertJob)
		r.Delete("/{id}", s.DeleteJob)
	})

	r.Get("/recommendations", s.GetRecommendations)
	r.Post("/recommendations", s.PostRecommendations)
	r.Post("/cv/analyze", s.AnalyzeCV)

	r.Route("/saved-jobs", func(r chi.Router) {
		r.Get("/", s.ListSavedJobs)
		r.Get("/{jobID}", s.GetSavedJob)
		r.Put("/{jobID}", s.SaveJob)
		r.Delete("/{jobID}", s.UnsaveJob)
	})

	r.Route("/applications", func(r chi.Router) {
		r.Get("/", s.ListApplications)
		r.Post("/", s.CreateApplication)
		r.Post("/manual", s.CreateManualApplication)
		r.Get("/board", s.GetBoard)
		r.Get("/check/{jobID}", s.CheckApplication)
		r.Get("/{id}", s.GetApplication)
		r.Patch("/{id}", s.PatchApplication)
		r.Delete("/{id}", s.DeleteApplication)
	})

	r.Get("/alerts", s.ListAlerts)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{Status: string(report.Status), Checks: checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrNotFound,
		domain.ErrAlreadyApplied,
		domain.ErrInvalidStatus,
		domain.ErrInvalidApplication,
		domain.ErrInvalidJob,
		domain.ErrInvalidCV,
		domain.ErrRateLimited,
		domain.ErrAnalyzerUnavailable,
		domain.ErrKeywordSourceUnavailable,
		domain.ErrCatalogUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// validationMessage keeps the detail of input errors, which only echo what the client sent.
func validationMessage(err error, msg string) string {
	for _, s := range []error{domain.ErrInvalidApplication, domain.ErrInvalidJob, domain.ErrInvalidCV, domain.ErrInvalidStatus} {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return msg
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		if status == http.StatusBadRequest {
			msg = validationMessage(err, msg)
		}
		writeError(w, status, code, msg)
		return true
	}
}

// transitionErrorHandler reports the rejected edge of a strict status policy.
func transitionErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var te *domain.TransitionError
	if !errors.As(err, &te) {
		return false
	}
	writeJSON(w, http.StatusConflict, map[string]any{
		"code":    ErrorCodeIllegalTransition,
		"message": te.Error(),
		"from":    te.From,
		"to":      te.To,
	})
	return true
}

func paramErrorHandler(w http.ResponseWriter, err error, _ string) bool {
	var pe *paramError
	if !errors.As(err, &pe) {
		return false
	}
	writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, pe.Error())
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
