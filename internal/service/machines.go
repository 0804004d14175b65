package service

import (
	"context"
	"database/sql"
	"errors"

	"smartmolding/internal/models"
	"smartmolding/internal/repository"
)

type MachinesService struct {
	machineRepo repository.MachineRepo
	planned     map[string]bool
}

func NewMachinesService(machineRepo repository.MachineRepo, planned map[string]bool) *MachinesService {
	return &MachinesService{machineRepo: machineRepo, planned: planned}
}

func (s *MachinesService) List(ctx context.Context, area int) ([]models.Machine, error) {
	return s.machineRepo.List(ctx, area)
}

func (s *MachinesService) Get(ctx context.Context, id string) (models.Machine, error) {
	m, err := s.machineRepo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Machine{}, ErrUnknownMachine
		}
		return models.Machine{}, err
	}
	return m, nil
}

// UpdateDetails edits descriptive fields only. Status and the downtime reason
// belong to the transition engine and are never touched here.
func (s *MachinesService) UpdateDetails(ctx context.Context, id string, upd models.MachineUpdate) error {
	if err := s.machineRepo.UpdateDetails(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUnknownMachine
		}
		return err
	}
	return nil
}

// Stats counts the header cards for one area: running machines, incident
// stops and planned stops, split by the planned-reason set.
func (s *MachinesService) Stats(ctx context.Context, area int) (FloorStats, error) {
	machines, err := s.machineRepo.List(ctx, area)
	if err != nil {
		return FloorStats{}, err
	}

	stats := FloorStats{Total: len(machines)}
	for _, m := range machines {
		switch {
		case m.Status == models.StatusRunning:
			stats.Running++
		case s.planned[m.CurrentDowntimeReason]:
			stats.Planned++
		default:
			stats.Incident++
		}
	}
	return stats, nil
}
