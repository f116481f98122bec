package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
	"github.com/kailas-cloud/jobmatch/internal/metrics"
)

// Patch lists the fields to change on an application. Nil fields are left alone.
type Patch struct {
	Status      *string
	Notes       *string
	CoverLetter *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Status == nil && p.Notes == nil && p.CoverLetter == nil
}

// Service manages the application lifecycle.
type Service struct {
	repo   Repository
	jobs   JobReader
	events EventPublisher
	policy domapp.Policy
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// New creates an application service. events may be nil; a nil policy is permissive.
func New(repo Repository, jobs JobReader, events EventPublisher, policy domapp.Policy, logger *zap.Logger) *Service {
	if policy == nil {
		policy = domapp.PermissivePolicy{}
	}
	return &Service{
		repo:   repo,
		jobs:   jobs,
		events: events,
		policy: policy,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// Apply creates an application to a catalog job, snapshotting the posting.
// A second application by the same user to the same job fails with domain.ErrAlreadyApplied.
func (s *Service) Apply(ctx context.Context, userID, jobID, notes, coverLetter string) (domapp.Application, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return domapp.Application{}, fmt.Errorf("get job %s: %w", jobID, err)
	}

	d := j.Details()
	snap := domapp.Snapshot{
		Title:    j.Title(),
		Company:  d.Company,
		Location: d.Location,
		Salary:   d.SalaryRange,
		JobType:  d.JobType,
	}
	app, err := domapp.NewForJob(s.newID(), userID, j.ID(), snap, notes, coverLetter, s.now())
	if err != nil {
		return domapp.Application{}, err
	}

	if err := s.repo.Create(ctx, app); err != nil {
		return domapp.Application{}, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// ApplyManual creates an application to a job outside the catalog.
func (s *Service) ApplyManual(ctx context.Context, userID string, snap domapp.Snapshot, notes string) (domapp.Application, error) {
	app, err := domapp.NewManual(s.newID(), userID, snap, notes, s.now())
	if err != nil {
		return domapp.Application{}, err
	}
	if err := s.repo.Create(ctx, app); err != nil {
		return domapp.Application{}, fmt.Errorf("create application: %w", err)
	}
	return app, nil
}

// Get returns one of the user's applications. Other users' applications are not found.
func (s *Service) Get(ctx context.Context, userID, id string) (domapp.Application, error) {
	app, err := s.repo.Get(ctx, id)
	if err != nil {
		return domapp.Application{}, fmt.Errorf("get application %s: %w", id, err)
	}
	if app.UserID() != userID {
		return domapp.Application{}, domain.ErrNotFound
	}
	return app, nil
}

// List returns the user's applications, most recent first.
// A non-empty status keeps only applications in that status.
func (s *Service) List(ctx context.Context, userID, status string) ([]domapp.Application, error) {
	var want domapp.Status
	if status != "" {
		parsed, err := domapp.ParseStatus(status)
		if err != nil {
			return nil, err
		}
		want = parsed
	}

	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	if want == "" {
		return apps, nil
	}

	filtered := make([]domapp.Application, 0, len(apps))
	for _, a := range apps {
		if a.Status() == want {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}

// Board groups the user's applications into status columns.
func (s *Service) Board(ctx context.Context, userID string) ([]domapp.Column, error) {
	apps, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return domapp.Board(apps), nil
}

// Transition moves an application to a new status under the configured policy.
func (s *Service) Transition(ctx context.Context, userID, id, status string) (domapp.Application, error) {
	return s.Update(ctx, userID, id, Patch{Status: &status})
}

// Update applies a patch and stores the result in one write.
func (s *Service) Update(ctx context.Context, userID, id string, p Patch) (domapp.Application, error) {
	var to domapp.Status
	if p.Status != nil {
		parsed, err := domapp.ParseStatus(*p.Status)
		if err != nil {
			return domapp.Application{}, err
		}
		to = parsed
	}

	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return domapp.Application{}, err
	}
	from := app.Status()
	now := s.now()

	if to != "" {
		moved, err := app.Transition(to, s.policy, now)
		if err != nil {
			metrics.ApplicationTransitionsTotal.WithLabelValues(string(from), string(to), "rejected").Inc()
			return domapp.Application{}, err
		}
		app = moved
	}
	if p.Notes != nil {
		app = app.WithNotes(*p.Notes, now)
	}
	if p.CoverLetter != nil {
		app = app.WithCoverLetter(*p.CoverLetter, now)
	}

	if err := s.repo.Update(ctx, app); err != nil {
		return domapp.Application{}, fmt.Errorf("update application %s: %w", id, err)
	}

	if to != "" {
		metrics.ApplicationTransitionsTotal.WithLabelValues(string(from), string(to), "ok").Inc()
		if to != from {
			s.publish(ctx, app, from)
		}
	}
	return app, nil
}

func (s *Service) publish(ctx context.Context, app domapp.Application, from domapp.Status) {
	if s.events == nil {
		return
	}
	if err := s.events.StatusChanged(ctx, app, from); err != nil {
		s.logger.Warn("Failed to publish status change",
			zap.String("application_id", app.ID()),
			zap.String("from", string(from)),
			zap.String("to", string(app.Status())),
			zap.Error(err),
		)
	}
}

// Delete permanently removes one of the user's applications.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	app, err := s.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, app); err != nil {
		return fmt.Errorf("delete application %s: %w", id, err)
	}
	return nil
}

// ForJob reports whether the user applied to a catalog job.
// ok is false when there is no application.
func (s *Service) ForJob(ctx context.Context, userID, jobID string) (app domapp.Application, ok bool, err error) {
	app, err = s.repo.ForJob(ctx, userID, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domapp.Application{}, false, nil
		}
		return domapp.Application{}, false, fmt.Errorf("application for job %s: %w", jobID, err)
	}
	return app, true, nil
}
