package savedjob

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	"github.com/kailas-cloud/jobmatch/internal/domain/job"
	domsaved "github.com/kailas-cloud/jobmatch/internal/domain/savedjob"
)

// --- Mocks ---

type mockRepo struct {
	ids     []string
	saveErr error
}

func (m *mockRepo) Save(_ context.Context, _, jobID string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.ids = domsaved.NewSet(m.ids...).With(jobID).IDs()
	return nil
}

func (m *mockRepo) Unsave(_ context.Context, _, jobID string) error {
	m.ids = domsaved.NewSet(m.ids...).Without(jobID).IDs()
	return nil
}

func (m *mockRepo) List(_ context.Context, _ string) (domsaved.Set, error) {
	return domsaved.NewSet(m.ids...), nil
}

func (m *mockRepo) IsSaved(_ context.Context, _, jobID string) (bool, error) {
	return domsaved.NewSet(m.ids...).Contains(jobID), nil
}

type mockJobs struct {
	err error
}

func (m *mockJobs) Get(_ context.Context, id string) (job.Job, error) {
	if m.err != nil {
		return job.Job{}, m.err
	}
	if id == "gone" {
		return job.Job{}, domain.ErrNotFound
	}
	return job.Reconstruct(id, "Title "+id, job.Details{}, job.StatusActive, time.Time{}), nil
}

// --- Tests ---

func TestSave_Idempotent(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockJobs{})
	ctx := context.Background()

	for range 2 {
		if err := svc.Save(ctx, "u1", "j1"); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	set, err := svc.IDs(ctx, "u1")
	if err != nil {
		t.Fatalf("IDs: %v", err)
	}
	if set.Len() != 1 {
		t.Errorf("expected one saved job, got %v", set.IDs())
	}
}

func TestSave_UnknownJob(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, &mockJobs{})

	err := svc.Save(context.Background(), "u1", "gone")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(repo.ids) != 0 {
		t.Error("unknown job must not be saved")
	}
}

func TestSave_StoreError(t *testing.T) {
	svc := New(&mockRepo{saveErr: errors.New("timeout")}, &mockJobs{})

	if err := svc.Save(context.Background(), "u1", "j1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestUnsave_NotSavedIsNoop(t *testing.T) {
	svc := New(&mockRepo{}, &mockJobs{})

	if err := svc.Unsave(context.Background(), "u1", "j1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestIsSaved(t *testing.T) {
	svc := New(&mockRepo{ids: []string{"j1"}}, &mockJobs{})
	ctx := context.Background()

	if ok, err := svc.IsSaved(ctx, "u1", "j1"); err != nil || !ok {
		t.Errorf("j1: ok=%v err=%v", ok, err)
	}
	if ok, err := svc.IsSaved(ctx, "u1", "j2"); err != nil || ok {
		t.Errorf("j2: ok=%v err=%v", ok, err)
	}
}

func TestJobs_SkipsRemovedPostings(t *testing.T) {
	svc := New(&mockRepo{ids: []string{"j2", "gone", "j1"}}, &mockJobs{})

	jobs, err := svc.Jobs(context.Background(), "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID() != "j2" || jobs[1].ID() != "j1" {
		t.Errorf("unexpected jobs: %v", jobs)
	}
}

func TestJobs_CatalogError(t *testing.T) {
	svc := New(&mockRepo{ids: []string{"j1"}}, &mockJobs{err: errors.New("down")})

	if _, err := svc.Jobs(context.Background(), "u1"); err == nil {
		t.Fatal("expected error")
	}
}
