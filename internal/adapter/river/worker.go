package river

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"github.com/neomorfeo/offerforge/internal/domain"
)

// EventWorker processes wizard event jobs from the River queue and
// records them to the event log.
type EventWorker struct {
	river.WorkerDefaults[EventJobArgs]

	log domain.EventLog
}

// NewEventWorker creates a worker appending to the given event log.
func NewEventWorker(log domain.EventLog) *EventWorker {
	return &EventWorker{log: log}
}

// Work processes a single event job.
func (w *EventWorker) Work(ctx context.Context, job *river.Job[EventJobArgs]) error {
	slog.InfoContext(ctx, "processing wizard event",
		"event", job.Args.Event,
		"session_id", job.Args.SessionID,
		"step", job.Args.Step,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)

	err := w.log.Append(ctx, domain.EventEntry{
		SessionID:    job.Args.SessionID,
		Event:        domain.Event(job.Args.Event),
		Step:         domain.Step(job.Args.Step),
		OfferingName: job.Args.OfferingName,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("recording event: %w", err)
	}
	return nil
}
