package river

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/offerforge/internal/domain"
)

// Compile-time check: Publisher implements domain.EventPublisher.
var _ domain.EventPublisher = (*Publisher)(nil)

// EventJobArgs carries the data needed to process a wizard event
// asynchronously. River serializes this as JSON into its job queue
// table. It includes a snapshot of the state the worker cares about at
// publish time, so the worker never touches live sessions.
type EventJobArgs struct {
	Event        string `json:"event"`
	SessionID    string `json:"session_id"`
	Step         int    `json:"step"`
	OfferingType string `json:"offering_type"`
	OfferingName string `json:"offering_name"`
	TierCount    int    `json:"tier_count"`
}

// Kind returns the unique job type identifier used by River's job routing.
func (EventJobArgs) Kind() string { return "wizard.event" }

// Client is the River client type parameterized for SQLite (*sql.Tx).
type Client = river.Client[*sql.Tx]

// Publisher implements domain.EventPublisher by enqueuing River jobs.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher backed by the given River client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Publish enqueues a wizard event as an async job in River.
func (p *Publisher) Publish(ctx context.Context, event domain.Event, sessionID string, o domain.Offering) error {
	_, err := p.client.Insert(ctx, EventJobArgs{
		Event:        string(event),
		SessionID:    sessionID,
		Step:         int(o.Step),
		OfferingType: string(o.OfferingType),
		OfferingName: o.Name,
		TierCount:    len(o.Tiers),
	}, nil)
	if err != nil {
		return fmt.Errorf("enqueuing event job: %w", err)
	}
	return nil
}
