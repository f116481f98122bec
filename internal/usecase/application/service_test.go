package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
)

// --- Mocks ---

type mockRepo struct {
	apps      map[string]domapp.Application
	updates   int
	createErr error
	updateErr error
	listErr   error
}

func newMockRepo() *mockRepo {
	return &mockRepo{apps: map[string]domapp.Application{}}
}

func (m *mockRepo) Create(_ context.Context, app domapp.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, a := range m.apps {
		if !app.IsManual() && a.UserID() == app.UserID() && a.JobID() == app.JobID() {
			return domain.ErrAlreadyApplied
		}
	}
	m.apps[app.ID()] = app
	return nil
}

func (m *mockRepo) Get(_ context.Context, id string) (domapp.Application, error) {
	a, ok := m.apps[id]
	if !ok {
		return domapp.Application{}, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockRepo) Update(_ context.Context, app domapp.Application) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates++
	m.apps[app.ID()] = app
	return nil
}

func (m *mockRepo) Delete(_ context.Context, app domapp.Application) error {
	delete(m.apps, app.ID())
	return nil
}

func (m *mockRepo) ListByUser(_ context.Context, userID string) ([]domapp.Application, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []domapp.Application{}
	for _, id := range []string{"app-1", "app-2", "app-3", "app-4"} {
		if a, ok := m.apps[id]; ok && a.UserID() == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepo) ForJob(_ context.Context, userID, jobID string) (domapp.Application, error) {
	for _, a := range m.apps {
		if a.UserID() == userID && a.JobID() == jobID {
			return a, nil
		}
	}
	return domapp.Application{}, domain.ErrNotFound
}

type mockJobs struct {
	jobs map[string]job.Job
}

func (m *mockJobs) Get(_ context.Context, id string) (job.Job, error) {
	j, ok := m.jobs[id]
	if !ok {
		return job.Job{}, domain.ErrNotFound
	}
	return j, nil
}

type mockEvents struct {
	from []domapp.Status
	to   []domapp.Status
	err  error
}

func (m *mockEvents) StatusChanged(_ context.Context, app domapp.Application, from domapp.Status) error {
	m.from = append(m.from, from)
	m.to = append(m.to, app.Status())
	return m.err
}

// --- Helpers ---

var now = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, policy domapp.Policy) (*Service, *mockRepo, *mockEvents) {
	t.Helper()
	repo := newMockRepo()
	jobs := &mockJobs{jobs: map[string]job.Job{
		"j1": job.Reconstruct("j1", "Data Analyst", job.Details{
			Company: "Acme", Location: "Lyon", SalaryRange: "45-55k", JobType: "Full-time",
		}, job.StatusActive, now),
	}}
	events := &mockEvents{}
	svc := New(repo, jobs, events, policy, zap.NewNop())
	svc.now = func() time.Time { return now }
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("app-%d", seq)
	}
	return svc, repo, events
}

func strPtr(s string) *string { return &s }

// --- Tests ---

func TestApply_SnapshotsJob(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	app, err := svc.Apply(context.Background(), "u1", "j1", "via website", "Hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if app.ID() != "app-1" || app.Status() != domapp.StatusApplied {
		t.Errorf("unexpected application: %s %s", app.ID(), app.Status())
	}
	snap := app.Snapshot()
	if snap.Title != "Data Analyst" || snap.Company != "Acme" || snap.Salary != "45-55k" || snap.JobType != "Full-time" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if app.CoverLetter() != "Hello" || app.Notes() != "via website" {
		t.Errorf("unexpected texts: %q %q", app.Notes(), app.CoverLetter())
	}
}

func TestApply_Twice(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, "u1", "j1", "", ""); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := svc.Apply(ctx, "u1", "j1", "", "")
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
}

func TestApply_UnknownJob(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.Apply(context.Background(), "u1", "nope", "", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestApplyManual(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)

	app, err := svc.ApplyManual(context.Background(), "u1", domapp.Snapshot{Title: "QA", Company: "Initech"}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !app.IsManual() || app.Snapshot().Location != domapp.NotSpecified {
		t.Errorf("unexpected manual application: %+v", app.Snapshot())
	}
	if _, ok := repo.apps[app.ID()]; !ok {
		t.Error("manual application not stored")
	}

	_, err = svc.ApplyManual(context.Background(), "u1", domapp.Snapshot{Title: "QA"}, "")
	if !errors.Is(err, domain.ErrInvalidApplication) {
		t.Fatalf("expected ErrInvalidApplication, got %v", err)
	}
}

func TestGet_OtherUserIsNotFound(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	app, err := svc.Apply(context.Background(), "u1", "j1", "", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := svc.Get(context.Background(), "u2", app.ID()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTransition_PermissiveAllowsAnything(t *testing.T) {
	svc, repo, events := newTestService(t, nil)
	ctx := context.Background()
	app, err := svc.Apply(ctx, "u1", "j1", "", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	for _, status := range []string{"OFFER", "applied", "Withdrawn", "interview"} {
		moved, err := svc.Transition(ctx, "u1", app.ID(), status)
		if err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		want, _ := domapp.ParseStatus(status)
		if moved.Status() != want {
			t.Errorf("status = %s, want %s", moved.Status(), want)
		}
	}
	if repo.updates != 4 {
		t.Errorf("updates = %d, want 4", repo.updates)
	}
	if len(events.to) != 4 || events.from[0] != domapp.StatusApplied || events.to[0] != domapp.StatusOffer {
		t.Errorf("unexpected events: from=%v to=%v", events.from, events.to)
	}
}

func TestTransition_StrictRejectsBackwards(t *testing.T) {
	svc, repo, events := newTestService(t, domapp.StrictPolicy{})
	ctx := context.Background()
	app, err := svc.Apply(ctx, "u1", "j1", "", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := svc.Transition(ctx, "u1", app.ID(), "rejected"); err != nil {
		t.Fatalf("applied -> rejected: %v", err)
	}

	_, err = svc.Transition(ctx, "u1", app.ID(), "interview")
	if !errors.Is(err, domain.ErrIllegalTransition) {
		t.Fatalf("expected ErrIllegalTransition, got %v", err)
	}
	var te *domain.TransitionError
	if !errors.As(err, &te) || te.From != "rejected" || te.To != "interview" {
		t.Errorf("unexpected transition error: %v", err)
	}
	if repo.apps[app.ID()].Status() != domapp.StatusRejected {
		t.Error("rejected transition must not be stored")
	}
	if len(events.to) != 1 {
		t.Errorf("expected one event, got %d", len(events.to))
	}
}

func TestTransition_InvalidStatus(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)
	app, err := svc.Apply(context.Background(), "u1", "j1", "", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	_, err = svc.Transition(context.Background(), "u1", app.ID(), "hired")
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if repo.updates != 0 {
		t.Error("nothing must be written")
	}
}

func TestTransition_SameStatusPublishesNothing(t *testing.T) {
	svc, _, events := newTestService(t, nil)
	app, err := svc.Apply(context.Background(), "u1", "j1", "", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := svc.Transition(context.Background(), "u1", app.ID(), "applied"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events.to) != 0 {
		t.Errorf("unexpected events: %v", events.to)
	}
}

func TestTransition_PublishFailureIsNotFatal(t *testing.T) {
	svc, _, events := newTestService(t, nil)
	events.err = errors.New("pubsub down")
	app, err := svc.Apply(context.Background(), "u1", "j1", "", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	if _, err := svc.Transition(context.Background(), "u1", app.ID(), "interview"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdate_NotesAndStatusInOneWrite(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)
	app, err := svc.Apply(context.Background(), "u1", "j1", "", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	got, err := svc.Update(context.Background(), "u1", app.ID(), Patch{
		Status:      strPtr("interview"),
		Notes:       strPtr("call on Monday"),
		CoverLetter: strPtr("v2"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.updates != 1 {
		t.Errorf("updates = %d, want 1", repo.updates)
	}
	if got.Status() != domapp.StatusInterview || got.Notes() != "call on Monday" || got.CoverLetter() != "v2" {
		t.Errorf("unexpected application: %+v", got)
	}
}

func TestUpdate_StoreError(t *testing.T) {
	svc, repo, events := newTestService(t, nil)
	app, err := svc.Apply(context.Background(), "u1", "j1", "", "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	repo.updateErr = errors.New("timeout")

	if _, err := svc.Transition(context.Background(), "u1", app.ID(), "offer"); err == nil {
		t.Fatal("expected error")
	}
	if len(events.to) != 0 {
		t.Error("no event must be published for a failed write")
	}
}

func TestList_StatusFilter(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	ctx := context.Background()
	a1, _ := svc.Apply(ctx, "u1", "j1", "", "")
	if _, err := svc.ApplyManual(ctx, "u1", domapp.Snapshot{Title: "QA", Company: "Initech"}, ""); err != nil {
		t.Fatalf("manual: %v", err)
	}
	if _, err := svc.Transition(ctx, "u1", a1.ID(), "interview"); err != nil {
		t.Fatalf("transition: %v", err)
	}

	all, err := svc.List(ctx, "u1", "")
	if err != nil || len(all) != 2 {
		t.Fatalf("List all: %d %v", len(all), err)
	}
	interviews, err := svc.List(ctx, "u1", "Interview")
	if err != nil {
		t.Fatalf("List filtered: %v", err)
	}
	if len(interviews) != 1 || interviews[0].ID() != a1.ID() {
		t.Errorf("unexpected filtered list: %v", interviews)
	}
	if _, err := svc.List(ctx, "u1", "ghosted"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestBoard(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	ctx := context.Background()
	a1, _ := svc.Apply(ctx, "u1", "j1", "", "")
	if _, err := svc.Transition(ctx, "u1", a1.ID(), "offer"); err != nil {
		t.Fatalf("transition: %v", err)
	}

	board, err := svc.Board(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(board) != len(domapp.Columns) {
		t.Fatalf("expected %d columns, got %d", len(domapp.Columns), len(board))
	}
	for _, col := range board {
		want := 0
		if col.Status == domapp.StatusOffer {
			want = 1
		}
		if len(col.Applications) != want {
			t.Errorf("column %s has %d applications, want %d", col.Status, len(col.Applications), want)
		}
	}
}

func TestDelete(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)
	ctx := context.Background()
	app, _ := svc.Apply(ctx, "u1", "j1", "", "")

	if err := svc.Delete(ctx, "u2", app.ID()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("other user delete: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "u1", app.ID()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(repo.apps) != 0 {
		t.Error("application not deleted")
	}
}

func TestForJob(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	ctx := context.Background()

	if _, ok, err := svc.ForJob(ctx, "u1", "j1"); err != nil || ok {
		t.Fatalf("before apply: ok=%v err=%v", ok, err)
	}
	if _, err := svc.Apply(ctx, "u1", "j1", "", ""); err != nil {
		t.Fatalf("apply: %v", err)
	}
	app, ok, err := svc.ForJob(ctx, "u1", "j1")
	if err != nil || !ok || app.JobID() != "j1" {
		t.Fatalf("after apply: app=%v ok=%v err=%v", app.ID(), ok, err)
	}
}

func TestPatch_IsEmpty(t *testing.T) {
	if !(Patch{}).IsEmpty() {
		t.Error("zero patch should be empty")
	}
	if (Patch{Notes: strPtr("")}).IsEmpty() {
		t.Error("patch with notes should not be empty")
	}
}
