package keyword

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	domkw "github.com/kailas-cloud/jobmatch/internal/domain/keyword"
)

func TestSetActive_ThenActive(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()
	analyzed := time.Date(2025, 4, 2, 10, 0, 0, 0, time.UTC)

	saved := map[string][]byte{}
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		saved[key] = value
		return nil
	}
	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		return saved[key], nil
	}
	var users []string
	ms.saddFn = func(_ context.Context, key string, members ...string) error {
		if key != "jobmatch:keyword_users" {
			t.Errorf("unexpected users key: %s", key)
		}
		users = append(users, members...)
		return nil
	}

	set := domkw.NewSet("cv-9", []string{"Data Analyst", "BI Developer", "Data Analyst"}, analyzed)
	if err := repo.SetActive(ctx, "u1", set); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if _, ok := saved["jobmatch:keywords:u1"]; !ok {
		t.Fatalf("expected value under jobmatch:keywords:u1, got keys %v", saved)
	}
	if len(users) != 1 || users[0] != "u1" {
		t.Errorf("user not registered: %v", users)
	}

	got, err := repo.Active(ctx, "u1")
	if err != nil {
		t.Fatalf("Active: %v", err)
	}
	if got.CVID() != "cv-9" || !got.AnalyzedAt().Equal(analyzed) {
		t.Errorf("unexpected set metadata: %s %v", got.CVID(), got.AnalyzedAt())
	}
	// duplicates survive storage; only display dedupes
	if kw := got.Keywords(); len(kw) != 3 || kw[2] != "Data Analyst" {
		t.Errorf("unexpected keywords: %v", kw)
	}
}

func TestActive_NoCV(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.Active(context.Background(), "u1")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestActive_StoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("timeout")
	}

	_, err := repo.Active(context.Background(), "u1")
	if err == nil || errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestActive_CorruptValue(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte("{not json"), nil
	}

	if _, err := repo.Active(context.Background(), "u1"); err == nil {
		t.Fatal("expected unmarshal error")
	}
}

func TestSetActive_SetError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.setFn = func(_ context.Context, _ string, _ []byte) error {
		return errors.New("readonly replica")
	}
	ms.saddFn = func(_ context.Context, _ string, _ ...string) error {
		t.Error("SADD must not run after SET failure")
		return nil
	}

	if err := repo.SetActive(context.Background(), "u1", domkw.NewSet("cv", nil, time.Now())); err == nil {
		t.Fatal("expected error")
	}
}

func TestUsers(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.smembersFn = func(_ context.Context, _ string) ([]string, error) {
		return []string{"u1", "u2"}, nil
	}

	users, err := repo.Users(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Errorf("unexpected users: %v", users)
	}
}
