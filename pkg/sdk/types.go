package jobmatch

import "time"

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

// JobInput creates or replaces a posting. Empty Status means active.
type JobInput struct {
	Title        string     `json:"title"`
	TitleEN      string     `json:"title_en,omitempty"`
	Company      string     `json:"company"`
	Location     string     `json:"location,omitempty"`
	Category     string     `json:"category,omitempty"`
	JobType      string     `json:"job_type,omitempty"`
	SalaryRange  string     `json:"salary_range,omitempty"`
	Description  string     `json:"description,omitempty"`
	Requirements string     `json:"requirements,omitempty"`
	Status       string     `json:"status,omitempty"`
	PostedAt     *time.Time `json:"posted_at,omitempty"`
}

// Match is one ranked posting with its best keyword score.
type Match struct {
	Job      Job    `json:"job"`
	Percent  int    `json:"best_match_percentage"`
	Keyword  string `json:"matched_keyword"`
	Strategy string `json:"strategy"`
}

// Recommendation outcome statuses.
const (
	StatusRanked   = "ranked"
	StatusNoSignal = "no_signal"
)

// Keyword sources.
const (
	SourceActiveCV      = "active-cv-keywords"
	SourceFreshAnalysis = "fresh-analysis"
)

// Recommendations is a ranking outcome. NoSignal outcomes have no matches.
type Recommendations struct {
	Status   string   `json:"status"`
	Source   string   `json:"source"`
	Keywords []string `json:"keywords"`
	Matches  []Match  `json:"items"`
	Token    *int64   `json:"token,omitempty"`
}

// NoSignal reports whether the server had no keywords to rank on.
func (r Recommendations) NoSignal() bool { return r.Status == StatusNoSignal }

// Application statuses.
const (
	ApplicationApplied   = "applied"
	ApplicationReviewed  = "reviewed"
	ApplicationInterview = "interview"
	ApplicationOffer     = "offer"
	ApplicationRejected  = "rejected"
	ApplicationWithdrawn = "withdrawn"
)

// Application is a tracked job application.
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

// ManualApplication records an application to a job outside the catalog.
// Title and Company are required.
type ManualApplication struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location,omitempty"`
	Salary   string `json:"salary,omitempty"`
	JobType  string `json:"job_type,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// ApplicationUpdate changes an application. Nil fields are kept.
type ApplicationUpdate struct {
	Status      *string `json:"status,omitempty"`
	Notes       *string `json:"notes,omitempty"`
	CoverLetter *string `json:"cover_letter,omitempty"`
}

// BoardColumn is one status lane of the application board.
type BoardColumn struct {
	Status string        `json:"status"`
	Items  []Application `json:"items"`
	Count  int           `json:"count"`
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
