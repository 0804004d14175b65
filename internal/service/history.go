package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"smartmolding/internal/repository"
)

// Display labels carried over from the floor UI.
const (
	KindPlanned  = "Kế hoạch"
	KindIncident = "Sự cố"
	LabelRunning = "Đang chạy" // end-time cell of a still-open event
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04:05"
)

// HistoryService filters the event log by plant-local date, shift and machine
// code for reporting and export.
type HistoryService struct {
	machineRepo repository.MachineRepo
	eventRepo   repository.EventRepo
	loc         *time.Location
}

func NewHistoryService(machineRepo repository.MachineRepo, eventRepo repository.EventRepo, loc *time.Location) *HistoryService {
	if loc == nil {
		loc = time.Local
	}
	return &HistoryService{machineRepo: machineRepo, eventRepo: eventRepo, loc: loc}
}

// Query returns matching events, most recent start first; ties keep the log's
// insertion order. An event whose machine is gone from the catalog passes
// only when no code filter is given — a dangling reference cannot satisfy a
// code search.
func (s *HistoryService) Query(ctx context.Context, f HistoryFilter) ([]HistoryEntry, error) {
	now := f.At
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	machines, err := s.machineRepo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	codeByID := make(map[string]string, len(machines))
	for _, m := range machines {
		codeByID[m.ID] = m.Code
	}

	needle := strings.ToLower(strings.TrimSpace(f.Code))
	out := make([]HistoryEntry, 0, len(events))
	for _, e := range events {
		local := e.StartTime.In(s.loc)
		if f.Date != "" && local.Format(dateLayout) != f.Date {
			continue
		}
		shift := ShiftOf(local)
		if f.Shift != 0 && shift != f.Shift {
			continue
		}
		code, known := codeByID[e.MachineID]
		if needle != "" && (!known || !strings.Contains(strings.ToLower(code), needle)) {
			continue
		}
		out = append(out, HistoryEntry{
			DowntimeEvent:   e,
			MachineCode:     code,
			Shift:           shift,
			DurationMinutes: e.DurationMinutes(now),
			Kind:            kindLabel(e.IsPlanned),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.After(out[j].StartTime)
	})
	return out, nil
}

// ExportRows flattens a query result into the spreadsheet row tuples. The
// byte-level workbook encoding happens at the boundary that consumes them.
func (s *HistoryService) ExportRows(ctx context.Context, f HistoryFilter) ([]ReportRow, error) {
	entries, err := s.Query(ctx, f)
	if err != nil {
		return nil, err
	}

	rows := make([]ReportRow, 0, len(entries))
	for _, e := range entries {
		local := e.StartTime.In(s.loc)
		end := LabelRunning
		if !e.Open() {
			end = e.EndTime.In(s.loc).Format(clockLayout)
		}
		rows = append(rows, ReportRow{
			Date:        local.Format(dateLayout),
			Shift:       e.Shift,
			MachineCode: e.MachineCode,
			Reason:      e.Reason,
			StartTime:   local.Format(clockLayout),
			EndTime:     end,
			Minutes:     e.DurationMinutes,
			Kind:        e.Kind,
		})
	}
	return rows, nil
}

func kindLabel(planned bool) string {
	if planned {
		return KindPlanned
	}
	return KindIncident
}
