package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
)

type mockPublisher struct {
	channel string
	message []byte
	err     error
}

func (m *mockPublisher) Publish(_ context.Context, channel string, message []byte) error {
	m.channel, m.message = channel, message
	return m.err
}

func TestStatusChanged_Payload(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	app := domapp.Reconstruct("a1", "u1", "j1", domapp.Snapshot{}, domapp.StatusOffer, "", "", now, now)
	mp := &mockPublisher{}

	if err := New(mp).StatusChanged(context.Background(), app, domapp.StatusInterview); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mp.channel != "jobmatch:events" {
		t.Errorf("unexpected channel: %s", mp.channel)
	}

	var ev StatusChanged
	if err := json.Unmarshal(mp.message, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Type != TypeStatusChanged || ev.ApplicationID != "a1" || ev.From != "interview" || ev.To != "offer" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestStatusChanged_PublishError(t *testing.T) {
	mp := &mockPublisher{err: errors.New("connection lost")}
	app := domapp.Reconstruct("a1", "u1", "", domapp.Snapshot{}, domapp.StatusRejected, "", "", time.Now(), time.Now())

	if err := New(mp).StatusChanged(context.Background(), app, domapp.StatusApplied); err == nil {
		t.Fatal("expected error")
	}
}
