package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"smartmolding/internal/catalog"
	"smartmolding/internal/models"
	"smartmolding/internal/repository"
)

// In-memory repo fakes shared by the service tests.

type memMachineRepo struct {
	machines []models.Machine

	getErr  error
	listErr error
	setErr  error
}

func (f *memMachineRepo) Seed(ctx context.Context, machines []models.Machine) error {
	f.machines = append(f.machines, machines...)
	return nil
}

func (f *memMachineRepo) Count(ctx context.Context) (int, error) {
	return len(f.machines), nil
}

func (f *memMachineRepo) Get(ctx context.Context, id string) (models.Machine, error) {
	if f.getErr != nil {
		return models.Machine{}, f.getErr
	}
	for _, m := range f.machines {
		if m.ID == id {
			return m, nil
		}
	}
	return models.Machine{}, sql.ErrNoRows
}

func (f *memMachineRepo) List(ctx context.Context, area int) ([]models.Machine, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Machine, 0, len(f.machines))
	for _, m := range f.machines {
		if area == 0 || m.Area == area {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *memMachineRepo) SetStatus(ctx context.Context, id, status, reason string) error {
	if f.setErr != nil {
		return f.setErr
	}
	for i := range f.machines {
		if f.machines[i].ID == id {
			f.machines[i].Status = status
			f.machines[i].CurrentDowntimeReason = reason
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *memMachineRepo) UpdateDetails(ctx context.Context, id string, upd models.MachineUpdate) error {
	for i := range f.machines {
		if f.machines[i].ID != id {
			continue
		}
		if upd.Code != nil {
			f.machines[i].Code = *upd.Code
		}
		if upd.Brand != nil {
			f.machines[i].Brand = *upd.Brand
		}
		if upd.Type != nil {
			f.machines[i].Type = *upd.Type
		}
		if upd.Capacity != nil {
			f.machines[i].Capacity = *upd.Capacity
		}
		if upd.Area != nil {
			f.machines[i].Area = *upd.Area
		}
		return nil
	}
	return sql.ErrNoRows
}

type memEventRepo struct {
	events []models.DowntimeEvent
	nextID int

	appendErr error
	listErr   error
}

func (f *memEventRepo) Append(ctx context.Context, e models.DowntimeEvent) (string, error) {
	if f.appendErr != nil {
		return "", f.appendErr
	}
	if e.ID == "" {
		f.nextID++
		e.ID = fmt.Sprintf("ev-%d", f.nextID)
	}
	if e.StartTime.IsZero() {
		e.StartTime = time.Now().UTC()
	}
	f.events = append(f.events, e)
	return e.ID, nil
}

func (f *memEventRepo) CloseOpen(ctx context.Context, machineID string, end time.Time) error {
	for i := range f.events {
		if f.events[i].MachineID == machineID && f.events[i].Open() {
			f.events[i].EndTime = end.UTC()
			return nil
		}
	}
	return repository.ErrNoOpenEvent
}

func (f *memEventRepo) FindOpen(ctx context.Context, machineID string) (*models.DowntimeEvent, error) {
	for i := range f.events {
		if f.events[i].MachineID == machineID && f.events[i].Open() {
			ev := f.events[i]
			return &ev, nil
		}
	}
	return nil, nil
}

func (f *memEventRepo) List(ctx context.Context) ([]models.DowntimeEvent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.DowntimeEvent, len(f.events))
	copy(out, f.events)
	return out, nil
}

// newFloor builds a transition service over in-memory repos seeded with the
// given machines, all classified against the default planned set.
func newFloor(machines ...models.Machine) (*memMachineRepo, *memEventRepo, *TransitionService) {
	mrepo := &memMachineRepo{machines: machines}
	erepo := &memEventRepo{}
	tr := NewTransitionService(mrepo, erepo, plannedSet(catalog.PlannedReasons()))
	return mrepo, erepo, tr
}

func runningMachine(id, code, brand string, area int) models.Machine {
	return models.Machine{
		ID:     id,
		Code:   code,
		Brand:  brand,
		Type:   models.TypeInjection,
		Area:   area,
		Status: models.StatusRunning,
	}
}
