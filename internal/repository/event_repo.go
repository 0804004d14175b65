package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"smartmolding/internal/models"
)

type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

const sqliteTimeLayout = "2006-01-02 15:04:05"

const (
	insertEventSQL = `
		INSERT INTO downtime_events (id, machine_id, start_time, end_time, reason, category, planned)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	closeOpenEventSQL = `
		UPDATE downtime_events SET end_time=? WHERE machine_id=? AND end_time IS NULL
	`

	selectOpenEventSQL = `
		SELECT id, machine_id, start_time, end_time, reason, category, planned
		FROM downtime_events WHERE machine_id=? AND end_time IS NULL
	`

	selectAllEventsSQL = `
		SELECT id, machine_id, start_time, end_time, reason, category, planned
		FROM downtime_events ORDER BY rowid ASC
	`
)

// Append inserts a new downtime event and returns its id. An empty ID gets a
// generated UUID; a zero StartTime gets the current UTC instant.
func (r *EventSQLite) Append(ctx context.Context, e models.DowntimeEvent) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.StartTime.IsZero() {
		e.StartTime = time.Now().UTC()
	} else {
		e.StartTime = e.StartTime.UTC()
	}

	var end any
	if !e.EndTime.IsZero() {
		end = e.EndTime.UTC().Format(sqliteTimeLayout)
	}

	_, err := r.db.ExecContext(ctx, insertEventSQL,
		e.ID,
		e.MachineID,
		e.StartTime.Format(sqliteTimeLayout),
		end,
		e.Reason,
		e.Category,
		e.IsPlanned,
	)
	if err != nil {
		return "", err
	}
	return e.ID, nil
}

// CloseOpen stamps the end time on the machine's open event. ErrNoOpenEvent
// signals an invariant breach, not a user condition.
func (r *EventSQLite) CloseOpen(ctx context.Context, machineID string, end time.Time) error {
	res, err := r.db.ExecContext(ctx, closeOpenEventSQL, end.UTC().Format(sqliteTimeLayout), machineID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoOpenEvent
	}
	return nil
}

// FindOpen returns the machine's unterminated event, or nil when the machine
// is running.
func (r *EventSQLite) FindOpen(ctx context.Context, machineID string) (*models.DowntimeEvent, error) {
	row := r.db.QueryRowContext(ctx, selectOpenEventSQL, machineID)
	ev, err := scanEvent(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &ev, nil
}

// List returns every event in append order.
func (r *EventSQLite) List(ctx context.Context) ([]models.DowntimeEvent, error) {
	rows, err := r.db.QueryContext(ctx, selectAllEventsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.DowntimeEvent, 0, 64)
	for rows.Next() {
		ev, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

func scanEvent(scan func(dest ...any) error) (models.DowntimeEvent, error) {
	var (
		ev  models.DowntimeEvent
		end sql.NullTime
	)
	if err := scan(&ev.ID, &ev.MachineID, &ev.StartTime, &end, &ev.Reason, &ev.Category, &ev.IsPlanned); err != nil {
		return models.DowntimeEvent{}, err
	}
	ev.StartTime = ev.StartTime.UTC()
	if end.Valid {
		ev.EndTime = end.Time.UTC()
	}
	return ev, nil
}
