package service

import (
	"context"
	"errors"
	"time"

	"smartmolding/internal/catalog"
	"smartmolding/internal/models"
	"smartmolding/internal/repository"
)

var (
	// ErrUnknownMachine rejects any operation referencing a machine id that
	// is not in the catalog. No state is changed.
	ErrUnknownMachine = errors.New("unknown machine id")
	// ErrMissingReason rejects a STOPPED transition without a stoppage reason.
	ErrMissingReason = errors.New("stoppage reason is required when stopping a machine")
	// ErrInvalidStatus rejects statuses other than RUNNING/STOPPED.
	ErrInvalidStatus = errors.New("status must be RUNNING or STOPPED")
	// ErrNoOpenEvent surfaces a broken status/open-event invariant.
	ErrNoOpenEvent = repository.ErrNoOpenEvent
)

// TransitionParams describes one status change request. A zero At means the
// wall clock; tests pass fixed instants.
type TransitionParams struct {
	MachineID string
	Status    string // RUNNING | STOPPED
	Reason    string // required when Status == STOPPED, ignored otherwise
	At        time.Time
}

// FloorStats are the dashboard header counters for one area (or the whole
// floor). Incident counts machines stopped for an unplanned reason, Planned
// those stopped for a planned one.
type FloorStats struct {
	Total    int `json:"total"`
	Running  int `json:"running"`
	Incident int `json:"incident"`
	Planned  int `json:"planned"`
}

// AnalyticsFilter scopes an aggregate computation. Area 0 means the whole
// floor; a zero At means the wall clock.
type AnalyticsFilter struct {
	Area int
	At   time.Time
}

// AnalyticsReport holds the availability aggregates derived from the event
// log. AvailabilityPct is deliberately unclamped: values outside [0,100] mean
// downtime exceeded the modeled reference window.
type AnalyticsReport struct {
	MachineCount              int                `json:"machine_count"`
	RunningCount              int                `json:"running_count"`
	IncidentCount             int                `json:"incident_count"`
	TotalDowntimeMinutes      float64            `json:"total_downtime_minutes"`
	PlannedDowntimeMinutes    float64            `json:"planned_downtime_minutes"`
	UnexpectedDowntimeMinutes float64            `json:"unexpected_downtime_minutes"`
	TotalPossibleMinutes      int                `json:"total_possible_minutes"`
	EffectiveAvailableMinutes float64            `json:"effective_available_minutes"`
	AvailabilityPct           float64            `json:"availability_pct"`
	ReasonBreakdown           map[string]int     `json:"reason_breakdown"`
	BrandBreakdown            map[string]float64 `json:"brand_breakdown"`
}

// HistoryFilter selects downtime events for reporting. Empty Date means any
// date, Shift 0 means all shifts, empty Code means no code filter. At is the
// reference time for open-event durations.
type HistoryFilter struct {
	Date  string // plant-local calendar day, "2006-01-02"
	Shift int    // 0 | 1 | 2 | 3
	Code  string // case-insensitive machine-code substring
	At    time.Time
}

// HistoryEntry is one filtered log row enriched for display.
type HistoryEntry struct {
	models.DowntimeEvent
	MachineCode     string `json:"machine_code"`
	Shift           int    `json:"shift"`
	DurationMinutes int    `json:"duration_minutes"`
	Kind            string `json:"kind"` // Kế hoạch | Sự cố
}

// ReportRow is the export tuple fed to the spreadsheet boundary.
type ReportRow struct {
	Date        string `json:"date"`
	Shift       int    `json:"shift"`
	MachineCode string `json:"machine_code"`
	Reason      string `json:"reason"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"` // clock time, or "Đang chạy" while open
	Minutes     int    `json:"minutes"`
	Kind        string `json:"kind"`
}

// BulkStopResult reports the per-machine outcome of a batch stoppage. The
// batch is not atomic: a failure on one id never rolls back the others.
type BulkStopResult struct {
	Stopped []string          `json:"stopped"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// Transition validates and applies machine status changes, keeping the
// machine row and the downtime log consistent.
type Transition interface {
	Set(ctx context.Context, p TransitionParams) error
}

// Machines exposes catalog reads, descriptive edits and floor counters.
type Machines interface {
	List(ctx context.Context, area int) ([]models.Machine, error)
	Get(ctx context.Context, id string) (models.Machine, error)
	UpdateDetails(ctx context.Context, id string, upd models.MachineUpdate) error
	Stats(ctx context.Context, area int) (FloorStats, error)
}

// Analytics recomputes availability aggregates from the current log state.
type Analytics interface {
	Compute(ctx context.Context, f AnalyticsFilter) (AnalyticsReport, error)
}

// History filters and orders the event log for reporting and export.
type History interface {
	Query(ctx context.Context, f HistoryFilter) ([]HistoryEntry, error)
	ExportRows(ctx context.Context, f HistoryFilter) ([]ReportRow, error)
}

// Bulk matches externally-parsed machine codes and stops the matches.
type Bulk interface {
	Match(ctx context.Context, codes []string) ([]models.Machine, error)
	StopMatched(ctx context.Context, ids []string, reason string, at time.Time) BulkStopResult
}

// Config carries the plant-level tunables.
type Config struct {
	PlannedReasons []string       // defaults to the catalog planned set
	ShiftMinutes   int            // reference window per machine, default 480
	Location       *time.Location // plant clock, default host-local
}

func (c Config) withDefaults() Config {
	if len(c.PlannedReasons) == 0 {
		c.PlannedReasons = catalog.PlannedReasons()
	}
	if c.ShiftMinutes <= 0 {
		c.ShiftMinutes = 480
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	return c
}

func plannedSet(reasons []string) map[string]bool {
	set := make(map[string]bool, len(reasons))
	for _, r := range reasons {
		set[r] = true
	}
	return set
}

// Service aggregates the sub-services behind one dependency for the HTTP
// layer.
type Service struct {
	Transition
	Machines
	Analytics
	History
	Bulk
}

func NewService(repos *repository.Repository, cfg Config) *Service {
	cfg = cfg.withDefaults()
	planned := plannedSet(cfg.PlannedReasons)
	tr := NewTransitionService(repos.Machines, repos.Events, planned)
	return &Service{
		Transition: tr,
		Machines:   NewMachinesService(repos.Machines, planned),
		Analytics:  NewAnalyticsService(repos.Machines, repos.Events, cfg.ShiftMinutes),
		History:    NewHistoryService(repos.Machines, repos.Events, cfg.Location),
		Bulk:       NewBulkService(repos.Machines, tr),
	}
}
