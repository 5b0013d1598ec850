package sqlite_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/neomorfeo/offerforge/internal/adapter/sqlite"
	"github.com/neomorfeo/offerforge/internal/domain"
)

// newTestLog creates an in-memory SQLite event log for testing.
func newTestLog(t *testing.T) *sqlite.EventLog {
	t.Helper()
	log, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("creating test log: %v", err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func mustAppend(t *testing.T, log *sqlite.EventLog, e domain.EventEntry) {
	t.Helper()
	if err := log.Append(context.Background(), e); err != nil {
		t.Fatalf("mustAppend failed: %v", err)
	}
}

func TestAppend_And_Recent(t *testing.T) {
	log := newTestLog(t)
	ctx := context.Background()

	occurred := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	mustAppend(t, log, domain.EventEntry{
		SessionID:    "s-1",
		Event:        domain.EventSessionCreated,
		Step:         domain.StepType,
		OfferingName: "",
		OccurredAt:   occurred,
	})

	entries, err := log.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.ID == 0 {
		t.Error("ID should be assigned")
	}
	if e.SessionID != "s-1" {
		t.Errorf("SessionID = %q, want %q", e.SessionID, "s-1")
	}
	if e.Event != domain.EventSessionCreated {
		t.Errorf("Event = %q, want %q", e.Event, domain.EventSessionCreated)
	}
	if e.Step != domain.StepType {
		t.Errorf("Step = %d, want %d", e.Step, domain.StepType)
	}
	if !e.OccurredAt.Equal(occurred) {
		t.Errorf("OccurredAt = %v, want %v", e.OccurredAt, occurred)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	log := newTestLog(t)

	for i := range 3 {
		mustAppend(t, log, domain.EventEntry{
			SessionID:    fmt.Sprintf("s-%d", i),
			Event:        domain.EventStateUpdated,
			Step:         domain.StepDetails,
			OfferingName: "Draft",
			OccurredAt:   time.Now().UTC(),
		})
	}

	entries, err := log.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].SessionID != "s-2" || entries[2].SessionID != "s-0" {
		t.Errorf("order = [%q %q %q], want newest first", entries[0].SessionID, entries[1].SessionID, entries[2].SessionID)
	}
}

func TestRecent_Limit(t *testing.T) {
	log := newTestLog(t)

	for i := range 5 {
		mustAppend(t, log, domain.EventEntry{
			SessionID:  fmt.Sprintf("s-%d", i),
			Event:      domain.EventTiersChanged,
			Step:       domain.StepTiers,
			OccurredAt: time.Now().UTC(),
		})
	}

	entries, err := log.Recent(context.Background(), 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
}

func TestRecent_DefaultLimit(t *testing.T) {
	log := newTestLog(t)

	mustAppend(t, log, domain.EventEntry{
		SessionID:  "s-1",
		Event:      domain.EventStepChanged,
		Step:       domain.StepDetails,
		OccurredAt: time.Now().UTC(),
	})

	entries, err := log.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries, want 1", len(entries))
	}
}

func TestRecent_Empty(t *testing.T) {
	log := newTestLog(t)

	entries, err := log.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
