package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"smartmolding/internal/models"
	"smartmolding/internal/repository/db"
)

// ErrNoOpenEvent reports a CloseOpen call for a machine with no open downtime
// interval. Callers only invoke CloseOpen when the status invariant guarantees
// one, so seeing this error means the invariant was already broken upstream.
var ErrNoOpenEvent = errors.New("no open downtime event for machine")

// MachineRepo is the machine catalog: static identity plus the mutable
// status/reason pair.
type MachineRepo interface {
	Seed(ctx context.Context, machines []models.Machine) error
	Count(ctx context.Context) (int, error)
	Get(ctx context.Context, id string) (models.Machine, error)
	List(ctx context.Context, area int) ([]models.Machine, error)
	SetStatus(ctx context.Context, id, status, reason string) error
	UpdateDetails(ctx context.Context, id string, upd models.MachineUpdate) error
}

// EventRepo is the append-only downtime log. List returns insertion order;
// events are never deleted, and only CloseOpen ever mutates a row.
type EventRepo interface {
	Append(ctx context.Context, e models.DowntimeEvent) (string, error)
	CloseOpen(ctx context.Context, machineID string, end time.Time) error
	FindOpen(ctx context.Context, machineID string) (*models.DowntimeEvent, error)
	List(ctx context.Context) ([]models.DowntimeEvent, error)
}

type Repository struct {
	Machines MachineRepo
	Events   EventRepo
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{
		Machines: NewMachineSQLite(conn),
		Events:   NewEventSQLite(conn),
	}
}

// InitDB opens the SQLite file and applies the schema.
func InitDB(path string) (*sql.DB, error) {
	return db.InitDB(path)
}
