package savedjob

import (
	"context"
	"testing"
)

// mockStore is an in-memory set store; fn fields override behavior.
type mockStore struct {
	sets        map[string]map[string]struct{}
	saddFn      func(ctx context.Context, key string, members ...string) error
	sremFn      func(ctx context.Context, key string, members ...string) error
	sismemberFn func(ctx context.Context, key, member string) (bool, error)
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

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) error {
	if m.sremFn != nil {
		return m.sremFn(ctx, key, members...)
	}
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

func (m *mockStore) SIsMember(ctx context.Context, key, member string) (bool, error) {
	if m.sismemberFn != nil {
		return m.sismemberFn(ctx, key, member)
	}
	_, ok := m.sets[key][member]
	return ok, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{sets: map[string]map[string]struct{}{}}
	return New(ms), ms
}
