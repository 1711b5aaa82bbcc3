package logging

import "time"

// #region audit-entry

// AuditEntry is one JSON line in the alarm audit stream. It captures
// the complete decision context of an alarm or rest event so a run can
// be inspected after the fact without a datastore.
type AuditEntry struct {
	EventID string `json:"event_id,omitempty"`
	Tick    int    `json:"tick"`
	Kind    string `json:"kind"`            // "alarm" | "missed" | "rest"
	Class   string `json:"class,omitempty"` // "valid" | "false" for alarm entries

	Probability float32 `json:"probability"`
	RestBudget  float32 `json:"rest_budget"`
	ContextRisk float32 `json:"context_risk"`

	// Environment context active at decision time.
	Weather   string `json:"weather"`
	Traffic   string `json:"traffic"`
	Road      string `json:"road_type"`
	TimeOfDay string `json:"time_of_day"`

	// Contributions holds the per-signal share of the fatigue score.
	Contributions map[string]float32 `json:"contributions,omitempty"`

	// DriveMinutes is the simulated drive time since the last rest.
	DriveMinutes int `json:"drive_minutes"`

	CreatedAt time.Time `json:"created_at"`
}

// #endregion audit-entry
