package models

// Machine statuses.
const (
	StatusRunning = "RUNNING"
	StatusStopped = "STOPPED"
)

// Machine types.
const (
	TypeInjection = "INJECTION" // Máy ép
	TypeBlowing   = "BLOWING"   // Máy thổi
)

// Machine brands.
const (
	BrandCLF   = "CLF"
	BrandJAD   = "JAD"
	BrandOther = "OTHER"
)

// Machine is one press on the factory floor. ID is assigned at catalog load
// and never changes; Status and CurrentDowntimeReason are the only fields the
// transition engine mutates.
type Machine struct {
	ID                    string  `json:"id"`
	Code                  string  `json:"code"`     // human-facing label, editable
	Brand                 string  `json:"brand"`    // CLF | JAD | OTHER
	Type                  string  `json:"type"`     // INJECTION | BLOWING
	Capacity              float64 `json:"capacity"` // tonnage
	Area                  int     `json:"area"`     // factory zone 1..3
	Status                string  `json:"status"`   // RUNNING | STOPPED
	CurrentDowntimeReason string  `json:"current_downtime_reason,omitempty"`
}

// MachineUpdate carries descriptive-field edits. Nil fields are left as-is;
// status and reason are owned by the transition engine and cannot be set here.
type MachineUpdate struct {
	Code     *string  `json:"code,omitempty"`
	Brand    *string  `json:"brand,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Capacity *float64 `json:"capacity,omitempty"`
	Area     *int     `json:"area,omitempty"`
}
