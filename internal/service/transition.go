package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync"
	"time"

	"smartmolding/internal/catalog"
	"smartmolding/internal/models"
	"smartmolding/internal/repository"
)

// TransitionService owns the machine status/open-event pair. A single mutex
// serializes all transitions; with tens of machines and human-paced updates a
// per-machine lock buys nothing.
type TransitionService struct {
	mu          sync.Mutex
	machineRepo repository.MachineRepo
	eventRepo   repository.EventRepo
	planned     map[string]bool
}

func NewTransitionService(machineRepo repository.MachineRepo, eventRepo repository.EventRepo, planned map[string]bool) *TransitionService {
	return &TransitionService{machineRepo: machineRepo, eventRepo: eventRepo, planned: planned}
}

// Set applies one status change. After a successful return the invariant
// holds: STOPPED machines have exactly one open event carrying their displayed
// reason, RUNNING machines have none.
//
// Re-stopping an already stopped machine with a new reason updates the
// displayed reason only; the open event keeps its original reason and no
// second interval is logged.
func (s *TransitionService) Set(ctx context.Context, p TransitionParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := p.At
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	m, err := s.machineRepo.Get(ctx, p.MachineID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownMachine
		}
		return err
	}

	switch p.Status {
	case models.StatusStopped:
		return s.stop(ctx, m, strings.TrimSpace(p.Reason), now)
	case models.StatusRunning:
		return s.resume(ctx, m, now)
	default:
		return ErrInvalidStatus
	}
}

func (s *TransitionService) stop(ctx context.Context, m models.Machine, reason string, now time.Time) error {
	if reason == "" {
		return ErrMissingReason
	}

	open, err := s.eventRepo.FindOpen(ctx, m.ID)
	if err != nil {
		return err
	}
	if err := s.machineRepo.SetStatus(ctx, m.ID, models.StatusStopped, reason); err != nil {
		return err
	}
	if open != nil {
		// Reason change on an already stopped machine; the log is untouched.
		return nil
	}

	_, err = s.eventRepo.Append(ctx, models.DowntimeEvent{
		MachineID: m.ID,
		StartTime: now,
		Reason:    reason,
		Category:  catalog.CategoryOf(reason),
		IsPlanned: s.planned[reason],
	})
	if err != nil {
		// Restore the pre-call status so a stopped machine is never left
		// without its open event. Best effort; the append error is what the
		// caller needs to see.
		_ = s.machineRepo.SetStatus(ctx, m.ID, m.Status, m.CurrentDowntimeReason)
		return err
	}
	return nil
}

func (s *TransitionService) resume(ctx context.Context, m models.Machine, now time.Time) error {
	if m.Status == models.StatusRunning {
		return nil // idempotent
	}
	if err := s.machineRepo.SetStatus(ctx, m.ID, models.StatusRunning, ""); err != nil {
		return err
	}
	// A STOPPED machine always has an open event; ErrNoOpenEvent here means
	// the invariant was already broken and is passed up as a fault.
	return s.eventRepo.CloseOpen(ctx, m.ID, now)
}
