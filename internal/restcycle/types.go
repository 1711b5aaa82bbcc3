package restcycle

import (
	"time"

	"github.com/wlgs/fatigue-detection-system/internal/environ"
	"github.com/wlgs/fatigue-detection-system/internal/physio"
	"github.com/wlgs/fatigue-detection-system/internal/scoring"
)

// #region alarm-class

// AlarmClass classifies an alarm event against the ground-truth fatigue
// condition on the rest budget.
type AlarmClass string

const (
	AlarmValid AlarmClass = "valid"
	AlarmFalse AlarmClass = "false"
)

// #endregion alarm-class

// #region alarm-event

// AlarmEvent records the rising edge of the alarm flag.
type AlarmEvent struct {
	ID          string
	Tick        int
	Class       AlarmClass
	Probability float32
	RestBudget  float32 // budget at evaluation time
}

// #endregion alarm-event

// #region config

// Config holds the rest-cycle controller tuning.
type Config struct {
	// LossScale multiplies the fatigue probability into a per-tick rest
	// budget deduction.
	LossScale float32

	// RestThreshold triggers an automatic rest when the budget drops
	// below it. 0 disables automatic rest.
	RestThreshold float32

	// GroundTruthThreshold is the stricter budget level at or below
	// which an alarm is considered justified. Distinct from the scoring
	// model's alarm threshold.
	GroundTruthThreshold float32

	// EnvironmentEnabled gates the stochastic environment advance.
	EnvironmentEnabled bool

	// HistorySize is the capacity of the tick history ring.
	HistorySize int

	// MinutesPerTick is the simulated clock rate, used for drive
	// duration reporting.
	MinutesPerTick int

	// TickInterval paces Run. Ignored by Tick and StepOnce.
	TickInterval time.Duration

	// MaxTicks stops Run after N ticks. 0 means run until cancelled.
	MaxTicks int
}

// DefaultConfig returns the controller defaults.
func DefaultConfig() Config {
	return Config{
		LossScale:            2.2,
		RestThreshold:        30,
		GroundTruthThreshold: 20,
		EnvironmentEnabled:   true,
		HistorySize:          200,
		MinutesPerTick:       5,
		TickInterval:         250 * time.Millisecond,
	}
}

// #endregion config

// #region params

// Params bundles everything needed to construct an engine: one explicit
// configuration object per component plus the scenario, profile and
// seed selecting this run.
type Params struct {
	Engine      Config
	Environment environ.Config
	Risk        environ.RiskConfig
	Physiology  physio.Config
	Scoring     scoring.Config

	Scenario string
	Profile  string
	Seed     int64
}

// DefaultParams returns a fully populated parameter set for the normal
// scenario and the neutral profile.
func DefaultParams() Params {
	return Params{
		Engine:      DefaultConfig(),
		Environment: environ.DefaultConfig(),
		Risk:        environ.DefaultRiskConfig(),
		Physiology:  physio.DefaultConfig(),
		Scoring:     scoring.DefaultConfig(),
		Scenario:    "normal",
		Profile:     "default",
		Seed:        1,
	}
}

// #endregion params

// #region stats

// Stats accumulates alarm-validity counters over a run.
type Stats struct {
	Ticks       int
	AlarmEvents int
	Valid       int
	Missed      int
	False       int
	Rests       int
}

// Accuracy is the fraction of true-fatigue windows correctly alarmed:
// valid / (valid + missed). False alarms are tracked separately and do
// not enter the ratio.
func (s Stats) Accuracy() float32 {
	total := s.Valid + s.Missed
	if total == 0 {
		return 0
	}
	return float32(s.Valid) / float32(total)
}

// #endregion stats

// #region tick-sample

// TickSample is one entry in the fixed-capacity history ring.
type TickSample struct {
	Tick        int
	RestBudget  float32
	Probability float32
	Alarm       bool
}

// #endregion tick-sample

// #region tick-metrics

// TickMetrics is the ephemeral per-tick output read by the dashboard
// collaborator. Recomputed every tick; a torn read of an in-progress
// tick is acceptable for presentation, never used for decisions.
type TickMetrics struct {
	Tick        int
	Probability float32
	Alarm       bool
	RestBudget  float32
	ContextRisk float32
	Context     environ.Context

	// Contributions is the per-signal breakdown behind Probability.
	Contributions []scoring.Contribution

	// Event is set on the tick where the alarm flag rises.
	Event *AlarmEvent

	// Rested is true when this tick triggered an automatic rest reset.
	Rested bool

	// DriveMinutes is the simulated time since the previous rest.
	DriveMinutes int
}

// #endregion tick-metrics
