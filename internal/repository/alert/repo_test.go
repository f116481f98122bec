package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/db"
	domalert "github.com/kailas-cloud/jobmatch/internal/domain/alert"
)

// --- Mocks ---

type mockStore struct {
	values map[string][]byte
	lists  map[string][]string
	maxLen int64
	pushFn func(ctx context.Context, key string, maxLen int64, values ...string) error
}

func newMockStore() *mockStore {
	return &mockStore{values: map[string][]byte{}, lists: map[string][]string{}}
}

func (m *mockStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.values[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *mockStore) Set(_ context.Context, key string, value []byte) error {
	m.values[key] = value
	return nil
}

func (m *mockStore) RPushCapped(ctx context.Context, key string, maxLen int64, values ...string) error {
	if m.pushFn != nil {
		return m.pushFn(ctx, key, maxLen, values...)
	}
	m.maxLen = maxLen
	l := append(m.lists[key], values...)
	if int64(len(l)) > maxLen {
		l = l[int64(len(l))-maxLen:]
	}
	m.lists[key] = l
	return nil
}

func (m *mockStore) LRange(_ context.Context, key string, start, stop int64) ([]string, error) {
	l := m.lists[key]
	n := int64(len(l))
	if start < 0 {
		start = max(n+start, 0)
	}
	if stop < 0 {
		stop = n + stop
	}
	if start > stop || start >= n {
		return []string{}, nil
	}
	return l[start : stop+1], nil
}

// --- Tests ---

func testAlert(jobID string, percent int) domalert.Alert {
	return domalert.Reconstruct(jobID, "Title "+jobID, "Acme", "data analyst", percent,
		time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC))
}

func TestAppend_ThenRecentNewestFirst(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, 0)
	ctx := context.Background()

	if err := repo.Append(ctx, "u1", []domalert.Alert{testAlert("j1", 40), testAlert("j2", 90)}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := repo.Append(ctx, "u1", []domalert.Alert{testAlert("j3", 55)}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if ms.maxLen != DefaultFeedLength {
		t.Errorf("maxLen = %d, want %d", ms.maxLen, DefaultFeedLength)
	}

	got, err := repo.Recent(ctx, "u1", 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[0].JobID() != "j3" || got[1].JobID() != "j2" {
		t.Fatalf("unexpected alerts: %+v", got)
	}
	if got[1].Percent() != 90 || got[1].Company() != "Acme" {
		t.Errorf("fields not preserved: %+v", got[1])
	}
}

func TestAppend_Capped(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, 2)
	ctx := context.Background()

	for _, id := range []string{"j1", "j2", "j3"} {
		if err := repo.Append(ctx, "u1", []domalert.Alert{testAlert(id, 50)}); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := repo.Recent(ctx, "u1", 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 || got[1].JobID() != "j2" {
		t.Fatalf("unexpected alerts: %+v", got)
	}
}

func TestAppend_EmptyIsNoop(t *testing.T) {
	ms := newMockStore()
	ms.pushFn = func(_ context.Context, _ string, _ int64, _ ...string) error {
		t.Error("RPUSH must not run for no alerts")
		return nil
	}

	if err := New(ms, 0).Append(context.Background(), "u1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAppend_StoreError(t *testing.T) {
	ms := newMockStore()
	ms.pushFn = func(_ context.Context, _ string, _ int64, _ ...string) error {
		return errors.New("oom")
	}

	if err := New(ms, 0).Append(context.Background(), "u1", []domalert.Alert{testAlert("j1", 50)}); err == nil {
		t.Fatal("expected error")
	}
}

func TestCursor(t *testing.T) {
	ms := newMockStore()
	repo := New(ms, 0)
	ctx := context.Background()

	c, err := repo.Cursor(ctx)
	if err != nil {
		t.Fatalf("Cursor: %v", err)
	}
	if !c.IsZero() {
		t.Errorf("expected zero cursor, got %v", c)
	}

	at := time.Date(2025, 6, 1, 8, 30, 0, 0, time.UTC)
	if err := repo.SetCursor(ctx, at); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}
	c, err = repo.Cursor(ctx)
	if err != nil {
		t.Fatalf("Cursor: %v", err)
	}
	if !c.Equal(at) {
		t.Errorf("cursor = %v, want %v", c, at)
	}
}

func TestCursor_Corrupt(t *testing.T) {
	ms := newMockStore()
	ms.values["jobmatch:alerts_cursor"] = []byte("soon")

	if _, err := New(ms, 0).Cursor(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}
