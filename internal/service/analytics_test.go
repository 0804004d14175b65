package service

import (
	"context"
	"math"
	"testing"
	"time"

	"smartmolding/internal/models"
)

func approx(t *testing.T, got, want float64, what string) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("%s = %v, want %v", what, got, want)
	}
}

func TestAnalytics_AvailabilityArithmetic(t *testing.T) {
	t.Parallel()

	// Two machines, one open unplanned event running for 60 minutes.
	start := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	now := start.Add(60 * time.Minute)

	mrepo := &memMachineRepo{machines: []models.Machine{
		runningMachine("a1-0", "CLF125-25", models.BrandCLF, 1),
		{ID: "a1-1", Code: "JAD110-03", Brand: models.BrandJAD, Area: 1,
			Status: models.StatusStopped, CurrentDowntimeReason: "Sự cố điện"},
	}}
	erepo := &memEventRepo{events: []models.DowntimeEvent{
		{ID: "e1", MachineID: "a1-1", StartTime: start, Reason: "Sự cố điện", Category: "Sự Cố Kỹ Thuật"},
	}}
	svc := NewAnalyticsService(mrepo, erepo, 480)

	report, err := svc.Compute(context.Background(), AnalyticsFilter{At: now})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if report.TotalPossibleMinutes != 960 {
		t.Fatalf("total possible = %d, want 960", report.TotalPossibleMinutes)
	}
	approx(t, report.TotalDowntimeMinutes, 60, "total downtime")
	approx(t, report.PlannedDowntimeMinutes, 0, "planned downtime")
	approx(t, report.UnexpectedDowntimeMinutes, 60, "unexpected downtime")
	approx(t, report.AvailabilityPct, 100*(960-60)/960.0, "availability") // 93.75
	if report.IncidentCount != 1 {
		t.Fatalf("incident count = %d, want 1", report.IncidentCount)
	}
	if report.RunningCount != 1 {
		t.Fatalf("running count = %d, want 1", report.RunningCount)
	}
}

func TestAnalytics_PlannedExcludedFromUnexpected(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	now := start.Add(30 * time.Minute)

	mrepo := &memMachineRepo{machines: []models.Machine{
		{ID: "a1-0", Code: "CLF125-25", Brand: models.BrandCLF, Area: 1,
			Status: models.StatusStopped, CurrentDowntimeReason: "Bảo trì"},
	}}
	erepo := &memEventRepo{events: []models.DowntimeEvent{
		{ID: "e1", MachineID: "a1-0", StartTime: start, Reason: "Bảo trì",
			Category: "Kế Hoạch & Hệ Thống", IsPlanned: true},
	}}
	svc := NewAnalyticsService(mrepo, erepo, 480)

	report, err := svc.Compute(context.Background(), AnalyticsFilter{At: now})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	approx(t, report.TotalDowntimeMinutes, 30, "total downtime")
	approx(t, report.PlannedDowntimeMinutes, 30, "planned downtime")
	approx(t, report.UnexpectedDowntimeMinutes, 0, "unexpected downtime")
	if report.IncidentCount != 0 {
		t.Fatalf("planned stop counted as incident")
	}
	// 450 effective minutes, zero unexpected: fully available.
	approx(t, report.AvailabilityPct, 100, "availability")
}

func TestAnalytics_AvailabilityGoesNegativeWhenDowntimeExceedsWindow(t *testing.T) {
	t.Parallel()

	// One machine with 600 unplanned minutes against a 480-minute window.
	// The result is left unclamped; -25 tells the reader the window overran.
	start := time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC)
	now := start.Add(600 * time.Minute)

	mrepo := &memMachineRepo{machines: []models.Machine{
		{ID: "a1-0", Code: "CLF125-25", Brand: models.BrandCLF, Area: 1,
			Status: models.StatusStopped, CurrentDowntimeReason: "Sự cố điện"},
	}}
	erepo := &memEventRepo{events: []models.DowntimeEvent{
		{ID: "e1", MachineID: "a1-0", StartTime: start, Reason: "Sự cố điện", Category: "Sự Cố Kỹ Thuật"},
	}}
	svc := NewAnalyticsService(mrepo, erepo, 480)

	report, err := svc.Compute(context.Background(), AnalyticsFilter{At: now})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	approx(t, report.UnexpectedDowntimeMinutes, 600, "unexpected downtime")
	approx(t, report.EffectiveAvailableMinutes, 480, "effective minutes")
	approx(t, report.AvailabilityPct, 100*(480-600)/480.0, "availability") // -25
	if report.AvailabilityPct >= 0 {
		t.Fatalf("availability = %v, want a negative unclamped value", report.AvailabilityPct)
	}
}

func TestAnalytics_EmptyScopeDegradesTo100(t *testing.T) {
	t.Parallel()

	svc := NewAnalyticsService(&memMachineRepo{}, &memEventRepo{}, 480)
	report, err := svc.Compute(context.Background(), AnalyticsFilter{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	approx(t, report.AvailabilityPct, 100, "availability of empty scope")
	if report.TotalPossibleMinutes != 0 {
		t.Fatalf("total possible = %d, want 0", report.TotalPossibleMinutes)
	}
}

func TestAnalytics_ScopedToAreaWithBreakdowns(t *testing.T) {
	t.Parallel()

	start := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	now := start.Add(20 * time.Minute)

	mrepo := &memMachineRepo{machines: []models.Machine{
		{ID: "a1-0", Code: "CLF125-25", Brand: models.BrandCLF, Area: 1,
			Status: models.StatusStopped, CurrentDowntimeReason: "Sự cố khuôn"},
		runningMachine("a1-1", "JAD110-03", models.BrandJAD, 1),
		{ID: "a2-0", Code: "CLF750-12", Brand: models.BrandCLF, Area: 2,
			Status: models.StatusStopped, CurrentDowntimeReason: "Sự cố điện"},
	}}
	erepo := &memEventRepo{events: []models.DowntimeEvent{
		{ID: "e1", MachineID: "a1-0", StartTime: start, Reason: "Sự cố khuôn", Category: "Sự Cố Kỹ Thuật"},
		{ID: "e2", MachineID: "a2-0", StartTime: start, Reason: "Sự cố điện", Category: "Sự Cố Kỹ Thuật"},
	}}
	svc := NewAnalyticsService(mrepo, erepo, 480)

	report, err := svc.Compute(context.Background(), AnalyticsFilter{Area: 1, At: now})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if report.MachineCount != 2 {
		t.Fatalf("machine count = %d, want 2", report.MachineCount)
	}
	// The area-2 event is out of scope.
	approx(t, report.TotalDowntimeMinutes, 20, "total downtime")
	if got := report.ReasonBreakdown["Sự cố khuôn"]; got != 1 {
		t.Fatalf("reason breakdown = %v", report.ReasonBreakdown)
	}
	if _, ok := report.ReasonBreakdown["Sự cố điện"]; ok {
		t.Fatalf("out-of-scope reason leaked into breakdown: %v", report.ReasonBreakdown)
	}
	// Both brands in scope appear, including the one with zero downtime.
	approx(t, report.BrandBreakdown[models.BrandCLF], 20, "CLF downtime")
	approx(t, report.BrandBreakdown[models.BrandJAD], 0, "JAD downtime")
}

// Full scenario: A stops unplanned at t0, B stops planned at t0+10m, analytics
// at t0+30m, then A resumes at t0+40m.
func TestAnalytics_EndToEndScenario(t *testing.T) {
	t.Parallel()

	t0 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	mrepo, erepo, tr := newFloor(
		runningMachine("a1-0", "A", models.BrandCLF, 1),
		runningMachine("a1-1", "B", models.BrandCLF, 1),
		runningMachine("a1-2", "C", models.BrandJAD, 1),
	)
	svc := NewAnalyticsService(mrepo, erepo, 480)

	stoppedAt(t, tr, "a1-0", "Sự cố điện", t0)
	stoppedAt(t, tr, "a1-1", "Bảo trì", t0.Add(10*time.Minute))

	report, err := svc.Compute(context.Background(), AnalyticsFilter{At: t0.Add(30 * time.Minute)})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	approx(t, report.TotalDowntimeMinutes, 50, "total downtime")
	approx(t, report.PlannedDowntimeMinutes, 20, "planned downtime")
	approx(t, report.UnexpectedDowntimeMinutes, 30, "unexpected downtime")
	if report.TotalPossibleMinutes != 1440 {
		t.Fatalf("total possible = %d, want 1440", report.TotalPossibleMinutes)
	}
	approx(t, report.AvailabilityPct, 100*(1420-30)/1420.0, "availability") // ≈97.89

	err = tr.Set(context.Background(), TransitionParams{
		MachineID: "a1-0", Status: models.StatusRunning, At: t0.Add(40 * time.Minute),
	})
	if err != nil {
		t.Fatalf("resume A: %v", err)
	}

	var closed *models.DowntimeEvent
	for i := range erepo.events {
		if erepo.events[i].MachineID == "a1-0" {
			closed = &erepo.events[i]
		}
	}
	if closed == nil || closed.Open() {
		t.Fatalf("A's event not closed: %+v", closed)
	}
	if got := closed.DurationMinutes(t0.Add(time.Hour)); got != 40 {
		t.Fatalf("closed duration = %dm, want 40m", got)
	}
	a, _ := mrepo.Get(context.Background(), "a1-0")
	if a.Status != models.StatusRunning || a.CurrentDowntimeReason != "" {
		t.Fatalf("A not restored: %+v", a)
	}
	assertInvariant(t, mrepo, erepo)
}
