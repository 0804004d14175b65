package handlers

import (
	"context"
	"time"

	"smartmolding/internal/models"
	"smartmolding/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTransition struct {
	err      error
	calls    int
	lastSet  service.TransitionParams
	perID    map[string]error // overrides err for specific machine ids
	seenByID []string
}

func (m *mockTransition) Set(ctx context.Context, p service.TransitionParams) error {
	m.calls++
	m.lastSet = p
	m.seenByID = append(m.seenByID, p.MachineID)
	if e, ok := m.perID[p.MachineID]; ok {
		return e
	}
	return m.err
}

type mockMachines struct {
	machines   []models.Machine
	machine    models.Machine
	stats      service.FloorStats
	listErr    error
	getErr     error
	updateErr  error
	statsErr   error
	lastArea   int
	getCalls   int
	lastGetID  string
	lastUpdate models.MachineUpdate
}

func (m *mockMachines) List(ctx context.Context, area int) ([]models.Machine, error) {
	m.lastArea = area
	return m.machines, m.listErr
}
func (m *mockMachines) Get(ctx context.Context, id string) (models.Machine, error) {
	m.getCalls++
	m.lastGetID = id
	return m.machine, m.getErr
}
func (m *mockMachines) UpdateDetails(ctx context.Context, id string, upd models.MachineUpdate) error {
	m.lastUpdate = upd
	return m.updateErr
}
func (m *mockMachines) Stats(ctx context.Context, area int) (service.FloorStats, error) {
	m.lastArea = area
	return m.stats, m.statsErr
}

type mockAnalytics struct {
	report     service.AnalyticsReport
	err        error
	lastFilter service.AnalyticsFilter
}

func (m *mockAnalytics) Compute(ctx context.Context, f service.AnalyticsFilter) (service.AnalyticsReport, error) {
	m.lastFilter = f
	return m.report, m.err
}

type mockHistory struct {
	entries    []service.HistoryEntry
	rows       []service.ReportRow
	err        error
	lastFilter service.HistoryFilter
}

func (m *mockHistory) Query(ctx context.Context, f service.HistoryFilter) ([]service.HistoryEntry, error) {
	m.lastFilter = f
	return m.entries, m.err
}
func (m *mockHistory) ExportRows(ctx context.Context, f service.HistoryFilter) ([]service.ReportRow, error) {
	m.lastFilter = f
	return m.rows, m.err
}

type mockBulk struct {
	matched    []models.Machine
	matchErr   error
	stopResult service.BulkStopResult
	lastCodes  []string
	lastIDs    []string
	lastReason string
}

func (m *mockBulk) Match(ctx context.Context, codes []string) ([]models.Machine, error) {
	m.lastCodes = codes
	return m.matched, m.matchErr
}
func (m *mockBulk) StopMatched(ctx context.Context, ids []string, reason string, at time.Time) service.BulkStopResult {
	m.lastIDs = ids
	m.lastReason = reason
	return m.stopResult
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
