package chi

import (
	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	"github.com/kailas-cloud/jobmatch/internal/domain/keyword"
	recommenduc "github.com/kailas-cloud/jobmatch/internal/usecase/recommend"
)

func jobToAPI(j job.Job) Job {
	d := j.Details()
	return Job{
		ID:           j.ID(),
		Title:        j.Title(),
		TitleEN:      d.TitleEN,
		Company:      d.Company,
		Location:     d.Location,
		Category:     d.Category,
		JobType:      d.JobType,
		SalaryRange:  d.SalaryRange,
		Description:  d.Description,
		Requirements: d.Requirements,
		Status:       string(j.Status()),
		PostedAt:     j.PostedAt(),
	}
}

// recommendationsToAPI renders an outcome. Keywords are cleaned and deduplicated for display;
// ranking already happened on the raw list.
func recommendationsToAPI(out recommenduc.Outcome, token *int64) Recommendations {
	items := make([]JobMatch, len(out.Results))
	for i, res := range out.Results {
		items[i] = JobMatch{
			Job:                 jobToAPI(res.Job()),
			BestMatchPercentage: res.Percent(),
			MatchedKeyword:      res.Keyword(),
			Strategy:            string(res.Strategy()),
		}
	}
	return Recommendations{
		Status:   string(out.Status),
		Source:   string(out.Source),
		Keywords: keyword.Display(out.Keywords),
		Items:    items,
		Token:    token,
	}
}

func applicationToAPI(a domapp.Application) Application {
	snap := a.Snapshot()
	return Application{
		ID:          a.ID(),
		JobID:       a.JobID(),
		Manual:      a.IsManual(),
		Title:       snap.Title,
		Company:     snap.Company,
		Location:    snap.Location,
		Salary:      snap.Salary,
		JobType:     snap.JobType,
		Status:      string(a.Status()),
		Notes:       a.Notes(),
		CoverLetter: a.CoverLetter(),
		AppliedAt:   a.AppliedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func applicationsToAPI(apps []domapp.Application) []Application {
	out := make([]Application, len(apps))
	for i, a := range apps {
		out[i] = applicationToAPI(a)
	}
	return out
}
