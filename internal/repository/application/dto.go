package application

import (
	"fmt"
	"strconv"
	"time"

	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
)

func appToHash(a domapp.Application) map[string]string {
	snap := a.Snapshot()
	return map[string]string{
		"id":           a.ID(),
		"user_id":      a.UserID(),
		"job_id":       a.JobID(),
		"title":        snap.Title,
		"company":      snap.Company,
		"location":     snap.Location,
		"salary":       snap.Salary,
		"job_type":     snap.JobType,
		"status":       string(a.Status()),
		"notes":        a.Notes(),
		"cover_letter": a.CoverLetter(),
		"applied_at":   strconv.FormatInt(a.AppliedAt().UnixMilli(), 10),
		"updated_at":   strconv.FormatInt(a.UpdatedAt().UnixMilli(), 10),
	}
}

func appFromHash(m map[string]string) (domapp.Application, error) {
	appliedAt, err := parseMillis(m["applied_at"])
	if err != nil {
		return domapp.Application{}, fmt.Errorf("invalid applied_at: %w", err)
	}
	updatedAt, err := parseMillis(m["updated_at"])
	if err != nil {
		return domapp.Application{}, fmt.Errorf("invalid updated_at: %w", err)
	}
	return domapp.Reconstruct(
		m["id"], m["user_id"], m["job_id"],
		domapp.Snapshot{
			Title:    m["title"],
			Company:  m["company"],
			Location: m["location"],
			Salary:   m["salary"],
			JobType:  m["job_type"],
		},
		domapp.Status(m["status"]),
		m["notes"], m["cover_letter"],
		appliedAt, updatedAt,
	), nil
}

func parseMillis(s string) (time.Time, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
