package chi

import "time"

// ErrorCode is a machine-readable error category.
type ErrorCode string

// Error codes returned in ErrorResponse.
const (
	ErrorCodeBadRequest               ErrorCode = "bad_request"
	ErrorCodeValidationFailed         ErrorCode = "validation_failed"
	ErrorCodeUnauthorized             ErrorCode = "unauthorized"
	ErrorCodeNotFound                 ErrorCode = "not_found"
	ErrorCodeAlreadyApplied           ErrorCode = "already_applied"
	ErrorCodeIllegalTransition        ErrorCode = "illegal_transition"
	ErrorCodeRateLimited              ErrorCode = "rate_limited"
	ErrorCodeAnalyzerUnavailable      ErrorCode = "analyzer_unavailable"
	ErrorCodeKeywordSourceUnavailable ErrorCode = "keyword_source_unavailable"
	ErrorCodeCatalogUnavailable       ErrorCode = "catalog_unavailable"
	ErrorCodeInternalError            ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// Job is a catalog posting.
type Job struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	TitleEN      string    `json:"title_en,omitempty"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	Category     string    `json:"category,omitempty"`
	JobType      string    `json:"job_type"`
	SalaryRange  string    `json:"salary_range"`
	Description  string    `json:"description,omitempty"`
	Requirements string    `json:"requirements,omitempty"`
	Status       string    `json:"status"`
	PostedAt     time.Time `json:"posted_at"`
}

// JobList is a page of postings.
type JobList struct {
	Items []Job `json:"items"`
	Count int   `json:"count"`
}

// UpsertJobRequest creates or replaces a posting.
type UpsertJobRequest struct {
	Title        string     `json:"title"`
	TitleEN      string     `json:"title_en"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Category     string     `json:"category"`
	JobType      string     `json:"job_type"`
	SalaryRange  string     `json:"salary_range"`
	Description  string     `json:"description"`
	Requirements string     `json:"requirements"`
	Status       string     `json:"status"`
	PostedAt     *time.Time `json:"posted_at"`
}

// JobMatch is one ranked posting.
type JobMatch struct {
	Job                 Job    `json:"job"`
	BestMatchPercentage int    `json:"best_match_percentage"`
	MatchedKeyword      string `json:"matched_keyword"`
	Strategy            string `json:"strategy"`
}

// RecommendRequest ranks the catalog against caller-supplied keywords.
type RecommendRequest struct {
	Source   string   `json:"source"`
	Keywords []string `json:"keywords"`
}

// Recommendations is a ranking outcome. Status "no_signal" means there were no keywords.
type Recommendations struct {
	Status   string     `json:"status"`
	Source   string     `json:"source"`
	Keywords []string   `json:"keywords"`
	Items    []JobMatch `json:"items"`
	Token    *int64     `json:"token,omitempty"`
}

// SavedJobsResponse lists a user's saved postings.
type SavedJobsResponse struct {
	JobIDs []string `json:"job_ids"`
	Jobs   []Job    `json:"jobs"`
}

// SavedStatus reports whether one job is saved.
type SavedStatus struct {
	JobID string `json:"job_id"`
	Saved bool   `json:"saved"`
}

// Application is a job application.
type Application struct {
	ID          string    `json:"id"`
	JobID       string    `json:"job_id,omitempty"`
	Manual      bool      `json:"manual"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Salary      string    `json:"salary"`
	JobType     string    `json:"job_type"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	CoverLetter string    `json:"cover_letter"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApplicationList is a user's applications, newest first.
type ApplicationList struct {
	Items []Application `json:"items"`
	Count int           `json:"count"`
}

// BoardColumn is one status lane.
type BoardColumn struct {
	Status string        `json:"status"`
	Items  []Application `json:"items"`
	Count  int           `json:"count"`
}

// Board groups applications by status.
type Board struct {
	Columns []BoardColumn `json:"columns"`
}

// CreateApplicationRequest applies to a catalog job.
type CreateApplicationRequest struct {
	JobID       string `json:"job_id"`
	Notes       string `json:"notes"`
	CoverLetter string `json:"cover_letter"`
}

// ManualApplicationRequest records an application to a job outside the catalog.
type ManualApplicationRequest struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	Salary   string `json:"salary"`
	JobType  string `json:"job_type"`
	Notes    string `json:"notes"`
}

// PatchApplicationRequest changes status, notes or cover letter. Absent fields are kept.
type PatchApplicationRequest struct {
	Status      *string `json:"status"`
	Notes       *string `json:"notes"`
	CoverLetter *string `json:"cover_letter"`
}

// ApplicationCheck reports whether the user applied to a job.
type ApplicationCheck struct {
	Applied     bool         `json:"applied"`
	Application *Application `json:"application,omitempty"`
}

// Alert is one job-alert feed entry.
type Alert struct {
	JobID     string    `json:"job_id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Keyword   string    `json:"keyword"`
	Percent   int       `json:"percent"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertList is the newest alerts first.
type AlertList struct {
	Items []Alert `json:"items"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
