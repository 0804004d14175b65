package service

import (
	"context"
	"time"

	"smartmolding/internal/models"
	"smartmolding/internal/repository"
)

// AnalyticsService derives availability and downtime aggregates from the
// machine scope and the event log. Everything is recomputed from scratch per
// call; the log is bounded by an operational session, so there is nothing to
// cache.
type AnalyticsService struct {
	machineRepo  repository.MachineRepo
	eventRepo    repository.EventRepo
	shiftMinutes int
}

func NewAnalyticsService(machineRepo repository.MachineRepo, eventRepo repository.EventRepo, shiftMinutes int) *AnalyticsService {
	return &AnalyticsService{machineRepo: machineRepo, eventRepo: eventRepo, shiftMinutes: shiftMinutes}
}

// Compute aggregates over the machines of f.Area (0 = whole floor) and the
// events belonging to them. One reference instant is used for every open
// event so the report is internally consistent.
func (s *AnalyticsService) Compute(ctx context.Context, f AnalyticsFilter) (AnalyticsReport, error) {
	now := f.At
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	machines, err := s.machineRepo.List(ctx, f.Area)
	if err != nil {
		return AnalyticsReport{}, err
	}
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return AnalyticsReport{}, err
	}

	byID := make(map[string]models.Machine, len(machines))
	brands := make(map[string]float64)
	report := AnalyticsReport{
		MachineCount:    len(machines),
		ReasonBreakdown: make(map[string]int),
	}
	for _, m := range machines {
		byID[m.ID] = m
		brands[m.Brand] = 0 // every brand in scope appears, downtime or not
		if m.Status == models.StatusRunning {
			report.RunningCount++
		}
	}

	for _, e := range events {
		m, inScope := byID[e.MachineID]
		if !inScope {
			continue
		}
		mins := downtimeMinutes(e, now)
		report.TotalDowntimeMinutes += mins
		if e.IsPlanned {
			report.PlannedDowntimeMinutes += mins
		} else {
			report.IncidentCount++
		}
		report.ReasonBreakdown[e.Reason]++
		brands[m.Brand] += mins
	}

	report.UnexpectedDowntimeMinutes = report.TotalDowntimeMinutes - report.PlannedDowntimeMinutes
	report.TotalPossibleMinutes = len(machines) * s.shiftMinutes
	report.EffectiveAvailableMinutes = float64(report.TotalPossibleMinutes) - report.PlannedDowntimeMinutes
	report.AvailabilityPct = availability(report.EffectiveAvailableMinutes, report.UnexpectedDowntimeMinutes)
	report.BrandBreakdown = brands
	return report, nil
}

// downtimeMinutes is the fractional length of an event, with open events
// measured against the shared reference instant.
func downtimeMinutes(e models.DowntimeEvent, now time.Time) float64 {
	end := e.EndTime
	if e.Open() {
		end = now
	}
	return end.Sub(e.StartTime).Minutes()
}

// availability degrades to 100 when planned downtime consumes the whole
// reference window. The result is not clamped: negative or >100 values are a
// real signal that downtime exceeded the modeled window.
func availability(effectiveMinutes, unexpectedMinutes float64) float64 {
	if effectiveMinutes <= 0 {
		return 100
	}
	return (effectiveMinutes - unexpectedMinutes) / effectiveMinutes * 100
}
