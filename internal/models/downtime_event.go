package models

import "time"

// DowntimeEvent is one stoppage interval. A zero EndTime means the machine is
// still stopped ("open event", at most one per machine). Closed events are
// never mutated again.
type DowntimeEvent struct {
	ID        string    `json:"id"`
	MachineID string    `json:"machine_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time,omitempty"` // zero while ongoing
	Reason    string    `json:"reason"`
	Category  string    `json:"category"`   // taxonomy category of Reason
	IsPlanned bool      `json:"is_planned"` // frozen at creation
}

// Open reports whether the event has no recorded end yet.
func (e DowntimeEvent) Open() bool { return e.EndTime.IsZero() }

// DurationMinutes is the whole-minute length of the event; open events are
// measured against the supplied reference time.
func (e DowntimeEvent) DurationMinutes(now time.Time) int {
	end := e.EndTime
	if e.Open() {
		end = now
	}
	return int(end.Sub(e.StartTime).Round(time.Minute) / time.Minute)
}
