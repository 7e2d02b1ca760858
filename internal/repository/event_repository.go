package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/coad-fablab/printlab-api/internal/models"
)

// EventRepository persists the append-only job event log.
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Create appends an event.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	const query = `INSERT INTO events (job_id, timestamp, event_type, details, triggered_by, workstation_id)
        VALUES (:job_id, :timestamp, :event_type, :details, :triggered_by, :workstation_id)`
	if _, err := r.db.NamedExecContext(ctx, query, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

// ListByJob returns a job's events newest first.
func (r *EventRepository) ListByJob(ctx context.Context, jobID string, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const query = `SELECT id, job_id, timestamp, event_type, details, triggered_by, workstation_id
        FROM events WHERE job_id = $1 ORDER BY timestamp DESC LIMIT $2`
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, jobID, limit); err != nil {
		return nil, fmt.Errorf("list job events: %w", err)
	}
	return events, nil
}

// ListRecent returns the newest events across all jobs.
func (r *EventRepository) ListRecent(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const query = `SELECT id, job_id, timestamp, event_type, details, triggered_by, workstation_id
        FROM events ORDER BY timestamp DESC LIMIT $1`
	var events []models.Event
	if err := r.db.SelectContext(ctx, &events, query, limit); err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	return events, nil
}
