// Package event publishes application lifecycle events on the Redis events channel.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kailas-cloud/jobmatch/internal/domain"
	domapp "github.com/kailas-cloud/jobmatch/internal/domain/application"
)

// TypeStatusChanged is the event type published after a status transition.
const TypeStatusChanged = "APPLICATION_STATUS_CHANGED"

// StatusChanged is the JSON payload of TypeStatusChanged.
type StatusChanged struct {
	Type          string    `json:"type"`
	ApplicationID string    `json:"applicationId"`
	UserID        string    `json:"userId"`
	JobID         string    `json:"jobId,omitempty"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	At            time.Time `json:"at"`
}

// publisher is the consumer interface for pub/sub (ISP).
type publisher interface {
	Publish(ctx context.Context, channel string, message []byte) error
}

// Publisher writes events to domain.EventsChannel.
type Publisher struct {
	pub publisher
}

// New creates an event publisher.
func New(p publisher) *Publisher {
	return &Publisher{pub: p}
}

// StatusChanged publishes a transition of app from the given status.
func (p *Publisher) StatusChanged(ctx context.Context, app domapp.Application, from domapp.Status) error {
	payload, err := json.Marshal(StatusChanged{
		Type:          TypeStatusChanged,
		ApplicationID: app.ID(),
		UserID:        app.UserID(),
		JobID:         app.JobID(),
		From:          string(from),
		To:            string(app.Status()),
		At:            app.UpdatedAt(),
	})
	if err != nil {
		return fmt.Errorf("marshal %s: %w", TypeStatusChanged, err)
	}
	if err := p.pub.Publish(ctx, domain.EventsChannel, payload); err != nil {
		return fmt.Errorf("publish %s: %w", TypeStatusChanged, err)
	}
	return nil
}
