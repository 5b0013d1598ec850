package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/neomorfeo/offerforge/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Compile-time check: EventLog implements domain.EventLog.
var _ domain.EventLog = (*EventLog)(nil)

// EventLog implements domain.EventLog using SQLite. It is an
// append-only operational audit trail; offering drafts themselves are
// never written here.
type EventLog struct {
	db *sql.DB
}

// New opens a SQLite database, runs migrations, and returns a ready
// event log.
func New(dataSourceName string) (*EventLog, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and
// returns a ready event log. Use this when the *sql.DB has been
// pre-configured (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*EventLog, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}
	return &EventLog{db: db}, nil
}

// Close closes the underlying database connection.
func (l *EventLog) Close() error {
	return l.db.Close()
}

// DB returns the underlying database connection for use by other
// adapters (e.g., river).
func (l *EventLog) DB() *sql.DB {
	return l.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = "2006-01-02T15:04:05Z"

// Append writes one event entry.
func (l *EventLog) Append(ctx context.Context, e domain.EventEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO wizard_events (session_id, event, step, offering_name, occurred_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.SessionID, string(e.Event), int(e.Step), e.OfferingName,
		e.OccurredAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (l *EventLog) Recent(ctx context.Context, limit int) ([]domain.EventEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, session_id, event, step, offering_name, occurred_at
		 FROM wizard_events ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	var entries []domain.EventEntry
	for rows.Next() {
		var e domain.EventEntry
		var event, occurredAt string
		var step int
		if err := rows.Scan(&e.ID, &e.SessionID, &event, &step, &e.OfferingName, &occurredAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Event = domain.Event(event)
		e.Step = domain.Step(step)
		e.OccurredAt, _ = time.Parse(timeFormat, occurredAt)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
