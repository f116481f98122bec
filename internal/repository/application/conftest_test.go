package application

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/db"
	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
)

// mockStore keeps hashes and sets in memory; fn fields inject failures.
type mockStore struct {
	hashes map[string]map[string]string
	sets   map[string]map[string]struct{}

	hsetFn func(ctx context.Context, key string, fields map[string]string) error
	saddFn func(ctx context.Context, key string, members ...string) error
	hgetFn func(ctx context.Context, key, field string) (string, error)
}

func newMockStore() *mockStore {
	return &mockStore{
		hashes: map[string]map[string]string{},
		sets:   map[string]map[string]struct{}{},
	}
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	if m.hashes[key] == nil {
		m.hashes[key] = map[string]string{}
	}
	for k, v := range fields {
		m.hashes[key][k] = v
	}
	return nil
}

func (m *mockStore) HSetNX(_ context.Context, key, field, value string) (bool, error) {
	if _, ok := m.hashes[key][field]; ok {
		return false, nil
	}
	if m.hashes[key] == nil {
		m.hashes[key] = map[string]string{}
	}
	m.hashes[key][field] = value
	return true, nil
}

func (m *mockStore) HGet(ctx context.Context, key, field string) (string, error) {
	if m.hgetFn != nil {
		return m.hgetFn(ctx, key, field)
	}
	v, ok := m.hashes[key][field]
	if !ok {
		return "", db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	out := map[string]string{}
	for k, v := range m.hashes[key] {
		out[k] = v
	}
	return out, nil
}

func (m *mockStore) HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error) {
	out := make([]map[string]string, len(keys))
	for i, k := range keys {
		out[i], _ = m.HGetAll(ctx, k)
	}
	return out, nil
}

func (m *mockStore) HDel(_ context.Context, key string, fields ...string) error {
	for _, f := range fields {
		delete(m.hashes[key], f)
	}
	return nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	delete(m.hashes, key)
	delete(m.sets, key)
	return nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	if m.sets[key] == nil {
		m.sets[key] = map[string]struct{}{}
	}
	for _, v := range members {
		m.sets[key][v] = struct{}{}
	}
	return nil
}

func (m *mockStore) SRem(_ context.Context, key string, members ...string) error {
	for _, v := range members {
		delete(m.sets[key], v)
	}
	return nil
}

func (m *mockStore) SMembers(_ context.Context, key string) ([]string, error) {
	out := make([]string, 0, len(m.sets[key]))
	for v := range m.sets[key] {
		out = append(out, v)
	}
	return out, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := newMockStore()
	return New(ms), ms
}

var t0 = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func catalogApp(t *testing.T, id, userID, jobID string, appliedAt time.Time) domapp.Application {
	t.Helper()
	app, err := domapp.NewForJob(id, userID, jobID, domapp.Snapshot{Title: "Data Analyst", Company: "Acme"}, "", "", appliedAt)
	if err != nil {
		t.Fatalf("NewForJob: %v", err)
	}
	return app
}

func manualApp(t *testing.T, id, userID string, appliedAt time.Time) domapp.Application {
	t.Helper()
	app, err := domapp.NewManual(id, userID, domapp.Snapshot{Title: "QA Engineer", Company: "Initech"}, "referral", appliedAt)
	if err != nil {
		t.Fatalf("NewManual: %v", err)
	}
	return app
}
