package domain

import (
	"context"
	"time"
)

// EventPublisher defines the contract for emitting wizard events.
type EventPublisher interface {
	Publish(ctx context.Context, event Event, sessionID string, offering Offering) error
}

// StepValidator defines the contract for validating step navigation.
type StepValidator interface {
	Apply(ctx context.Context, current Step, action NavAction) (Step, error)
}

// MediaKind selects which media slot an upload targets.
type MediaKind string

const (
	MediaThumbnail MediaKind = "thumbnail"
	MediaGallery   MediaKind = "gallery"
)

// ImageUpload is a raw file handed to the image ingestion collaborator.
type ImageUpload struct {
	Filename string
	Data     []byte
}

// ImageIngestor turns an uploaded file into a displayable string
// reference (data URI). Failures are *MediaError values and leave the
// offering untouched.
type ImageIngestor interface {
	Ingest(ctx context.Context, upload ImageUpload) (string, error)
}

// EventEntry is one row of the wizard event log.
type EventEntry struct {
	ID           int64
	SessionID    string
	Event        Event
	Step         Step
	OfferingName string
	OccurredAt   time.Time
}

// EventLog defines the append-only audit trail for wizard events.
type EventLog interface {
	Append(ctx context.Context, entry EventEntry) error
	Recent(ctx context.Context, limit int) ([]EventEntry, error)
}
