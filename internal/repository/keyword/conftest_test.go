package keyword

import (
	"context"
	"testing"

	"github.com/kailas-cloud/jobmatch/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn      func(ctx context.Context, key string) ([]byte, error)
	setFn      func(ctx context.Context, key string, value []byte) error
	saddFn     func(ctx context.Context, key string, members ...string) error
	smembersFn func(ctx context.Context, key string) ([]string, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	if m.saddFn != nil {
		return m.saddFn(ctx, key, members...)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	if m.smembersFn != nil {
		return m.smembersFn(ctx, key)
	}
	return []string{}, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms), ms
}
