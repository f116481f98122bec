package catalog

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// jobToHash converts a domain Job to a map for HSET.
func jobToHash(j job.Job) map[string]string {
	d := j.Details()
	return map[string]string{
		"id":           j.ID(),
		"title":        j.Title(),
		"title_en":     d.TitleEN,
		"company":      d.Company,
		"location":     d.Location,
		"category":     d.Category,
		"job_type":     d.JobType,
		"salary_range": d.SalaryRange,
		"description":  d.Description,
		"requirements": d.Requirements,
		"status":       string(j.Status()),
		"posted_at":    strconv.FormatInt(j.PostedAt().UnixMilli(), 10),
	}
}

// jobFromHash hydrates a domain Job from an HGETALL result map.
func jobFromHash(m map[string]string) (job.Job, error) {
	postedAt, err := strconv.ParseInt(m["posted_at"], 10, 64)
	if err != nil {
		return job.Job{}, fmt.Errorf("invalid posted_at: %w", err)
	}
	status := job.Status(m["status"])
	if status == "" {
		status = job.StatusActive
	}
	return job.Reconstruct(m["id"], m["title"], job.Details{
		TitleEN:      m["title_en"],
		Company:      m["company"],
		Location:     m["location"],
		Category:     m["category"],
		JobType:      m["job_type"],
		SalaryRange:  m["salary_range"],
		Description:  m["description"],
		Requirements: m["requirements"],
	}, status, time.UnixMilli(postedAt).UTC()), nil
}

func postedScore(t time.Time) float64 {
	return float64(t.UnixMilli())
}
