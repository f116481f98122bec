package match

import "github.com/kailas-cloud/jobmatch/internal/domain/job"

// Result is the best pairing of one job with one keyword (immutable value object).
// Results are computed per ranking call and never persisted.
type Result struct {
	job      job.Job
	percent  int
	keyword  string
	strategy Strategy
}

// NewResult creates a Result.
func NewResult(j job.Job, percent int, keyword string, strategy Strategy) Result {
	return Result{job: j, percent: percent, keyword: keyword, strategy: strategy}
}

// Job returns the matched posting.
func (r Result) Job() job.Job { return r.job }

// Percent returns the best match percentage, 0-100.
func (r Result) Percent() int { return r.percent }

// Keyword returns the keyword that produced the best score.
func (r Result) Keyword() string { return r.keyword }

// Strategy returns the rule that produced the best score.
func (r Result) Strategy() Strategy { return r.strategy }
