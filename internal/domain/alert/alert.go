// Package alert describes new-job notifications produced by the alerts scheduler.
package alert

import (
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain/match"
)

// Alert tells a user that a newly posted job matches one of their keywords.
type Alert struct {
	jobID     string
	title     string
	company   string
	keyword   string
	percent   int
	createdAt time.Time
}

// FromMatch builds an alert from a ranking result.
func FromMatch(r match.Result, at time.Time) Alert {
	j := r.Job()
	return Alert{
		jobID:     j.ID(),
		title:     j.Title(),
		company:   j.Details().Company,
		keyword:   r.Keyword(),
		percent:   r.Percent(),
		createdAt: at,
	}
}

// Reconstruct restores an Alert from storage.
func Reconstruct(jobID, title, company, keyword string, percent int, createdAt time.Time) Alert {
	return Alert{
		jobID:     jobID,
		title:     title,
		company:   company,
		keyword:   keyword,
		percent:   percent,
		createdAt: createdAt,
	}
}

func (a Alert) JobID() string        { return a.jobID }
func (a Alert) Title() string        { return a.title }
func (a Alert) Company() string      { return a.company }
func (a Alert) Keyword() string      { return a.keyword }
func (a Alert) Percent() int         { return a.percent }
func (a Alert) CreatedAt() time.Time { return a.createdAt }
